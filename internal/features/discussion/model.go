package discussion

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reply represents a nested reply stored inside a discussion.
type Reply struct {
	ID         string    `json:"id"`
	AuthorID   uuid.UUID `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Discussion represents a conversation thread inside a forum. Replies are
// embedded as a JSONB document rather than joined rows.
type Discussion struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ForumID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_discussion_forum_created,priority:1" json:"forumId"`
	Title      string          `gorm:"size:120;not null" json:"title"`
	Content    string          `gorm:"size:4000;not null" json:"content"`
	AuthorID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"authorId"`
	AuthorName string          `gorm:"size:60;not null" json:"authorName"`
	Replies    json.RawMessage `gorm:"type:jsonb;default:'[]'" json:"replies"`
	CreatedAt  time.Time       `gorm:"not null;index:idx_discussion_forum_created,priority:2" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updatedAt"`
}

// TableName overrides the default table name.
func (Discussion) TableName() string {
	return "discussions"
}

// GetByForum retrieves discussions for a forum, newest first, paginated.
func GetByForum(db *gorm.DB, forumID uuid.UUID, limit, offset int) ([]Discussion, int64, error) {
	var discussions []Discussion
	var total int64

	query := db.Model(&Discussion{}).Where("forum_id = ?", forumID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&discussions).Error; err != nil {
		return nil, 0, err
	}

	return discussions, total, nil
}

// Get retrieves a single discussion by ID with full replies.
func Get(db *gorm.DB, id uuid.UUID) (*Discussion, error) {
	var disc Discussion
	if err := db.First(&disc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscussionNotFound
		}
		return nil, err
	}
	return &disc, nil
}

// CreateInput defines the payload to create a discussion.
type CreateInput struct {
	ForumID    uuid.UUID
	Title      string
	Content    string
	AuthorID   uuid.UUID
	AuthorName string
}

// Create inserts a new discussion.
func Create(db *gorm.DB, input CreateInput) (*Discussion, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.Content == "" {
		return nil, ErrContentRequired
	}

	disc := Discussion{
		ForumID:    input.ForumID,
		Title:      input.Title,
		Content:    input.Content,
		AuthorID:   input.AuthorID,
		AuthorName: input.AuthorName,
		Replies:    json.RawMessage("[]"),
	}

	if err := db.Create(&disc).Error; err != nil {
		return nil, err
	}

	return &disc, nil
}

// AddReply appends a reply to the discussion's embedded reply list.
func AddReply(db *gorm.DB, id uuid.UUID, reply Reply) (*Discussion, error) {
	disc, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	var replies []Reply
	if len(disc.Replies) > 0 {
		if err := json.Unmarshal(disc.Replies, &replies); err != nil {
			return nil, err
		}
	}

	reply.ID = uuid.NewString()
	reply.CreatedAt = time.Now()
	replies = append(replies, reply)

	encoded, err := json.Marshal(replies)
	if err != nil {
		return nil, err
	}

	if err := db.Model(disc).Update("replies", json.RawMessage(encoded)).Error; err != nil {
		return nil, err
	}

	disc.Replies = encoded
	return disc, nil
}
