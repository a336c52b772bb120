package topic

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Answer represents an answer (or a reply to one) embedded in a topic.
type Answer struct {
	ID         string    `json:"id"`
	AuthorID   uuid.UUID `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Topic represents a question-style post inside a forum. Answers and
// replies are embedded JSONB documents; tags are a Postgres text array.
type Topic struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ForumID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_topic_forum_created,priority:1" json:"forumId"`
	Title      string          `gorm:"size:120;not null" json:"title"`
	Content    string          `gorm:"size:4000;not null" json:"content"`
	AuthorID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"authorId"`
	AuthorName string          `gorm:"size:60;not null" json:"authorName"`
	Tags       pq.StringArray  `gorm:"type:text[]" json:"tags,omitempty"`
	Answers    json.RawMessage `gorm:"type:jsonb;default:'[]'" json:"answers"`
	Replies    json.RawMessage `gorm:"type:jsonb;default:'[]'" json:"replies"`
	CreatedAt  time.Time       `gorm:"not null;index:idx_topic_forum_created,priority:2" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updatedAt"`
}

// TableName overrides the default table name.
func (Topic) TableName() string {
	return "topics"
}

// GetByForum retrieves topics for a forum, newest first, paginated.
func GetByForum(db *gorm.DB, forumID uuid.UUID, limit, offset int) ([]Topic, int64, error) {
	var topics []Topic
	var total int64

	query := db.Model(&Topic{}).Where("forum_id = ?", forumID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&topics).Error; err != nil {
		return nil, 0, err
	}

	return topics, total, nil
}

// Get retrieves a single topic by ID.
func Get(db *gorm.DB, id uuid.UUID) (*Topic, error) {
	var t Topic
	if err := db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}
	return &t, nil
}

// CreateInput defines the payload to create a topic.
type CreateInput struct {
	ForumID    uuid.UUID
	Title      string
	Content    string
	Tags       []string
	AuthorID   uuid.UUID
	AuthorName string
}

// Create inserts a new topic.
func Create(db *gorm.DB, input CreateInput) (*Topic, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.Content == "" {
		return nil, ErrContentRequired
	}

	t := Topic{
		ForumID:    input.ForumID,
		Title:      input.Title,
		Content:    input.Content,
		Tags:       pq.StringArray(input.Tags),
		AuthorID:   input.AuthorID,
		AuthorName: input.AuthorName,
		Answers:    json.RawMessage("[]"),
		Replies:    json.RawMessage("[]"),
	}

	if err := db.Create(&t).Error; err != nil {
		return nil, err
	}

	return &t, nil
}

// AddAnswer appends an answer to the topic's embedded answer list.
func AddAnswer(db *gorm.DB, id uuid.UUID, answer Answer) (*Topic, error) {
	t, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	var answers []Answer
	if len(t.Answers) > 0 {
		if err := json.Unmarshal(t.Answers, &answers); err != nil {
			return nil, err
		}
	}

	answer.ID = uuid.NewString()
	answer.CreatedAt = time.Now()
	answers = append(answers, answer)

	encoded, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	if err := db.Model(t).Update("answers", json.RawMessage(encoded)).Error; err != nil {
		return nil, err
	}

	t.Answers = encoded
	return t, nil
}
