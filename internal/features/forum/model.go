package forum

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/commune-hq/community-server-go/internal/features/discussion"
	"github.com/commune-hq/community-server-go/internal/features/topic"
	"github.com/commune-hq/community-server-go/internal/features/user"
	"github.com/commune-hq/community-server-go/pkg/validation"
)

// Forum represents a named community with an owner, a follower set and
// discussion/topic sub-resources.
type Forum struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:60;not null;uniqueIndex" json:"name"`
	Photo       *string   `gorm:"size:500" json:"photo,omitempty"`
	Description *string   `gorm:"size:600" json:"description,omitempty"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`

	// Relations
	CreatedBy   *user.User              `gorm:"foreignKey:CreatedByID" json:"-"`
	Memberships []Membership            `gorm:"foreignKey:ForumID" json:"-"`
	Discussions []discussion.Discussion `gorm:"foreignKey:ForumID" json:"-"`
	Topics      []topic.Topic           `gorm:"foreignKey:ForumID" json:"-"`
}

// TableName overrides the default table name.
func (Forum) TableName() string {
	return "forums"
}

// Membership is the authoritative follow relation between users and
// forums. A forum's enrolled set and a user's followed-forum set are both
// reads of this table, so the two views cannot diverge, and the composite
// unique index makes a duplicate follow a storage-level conflict instead
// of a check-then-act race.
type Membership struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ForumID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_forum_member,priority:1" json:"forumId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_forum_member,priority:2;index" json:"userId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`

	User *user.User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName overrides the default table name.
func (Membership) TableName() string {
	return "forum_memberships"
}

// CreateInput defines the payload to create a forum.
type CreateInput struct {
	Name        string
	Photo       *string
	Description *string
	CreatedByID uuid.UUID
}

// Create inserts a new forum and enrolls the owner. The name pre-check
// gives a friendly error on the common path; the unique index on name is
// what actually guarantees uniqueness under concurrent writers.
func Create(db *gorm.DB, input CreateInput) (*Forum, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	name, err := validation.NormalizeForumName(input.Name)
	if err != nil {
		return nil, err
	}

	var existing Forum
	err = db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, ErrNameExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	f := Forum{
		Name:        name,
		Photo:       input.Photo,
		Description: input.Description,
		CreatedByID: input.CreatedByID,
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&f).Error; err != nil {
			return err
		}

		// The owner follows their own forum from the start.
		return tx.Create(&Membership{ForumID: f.ID, UserID: input.CreatedByID}).Error
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return nil, ErrNameExists
		}
		return nil, txErr
	}

	return &f, nil
}

// GetByName retrieves a single forum by exact (case-sensitive) name.
func GetByName(db *gorm.DB, name string) (*Forum, error) {
	var f Forum
	if err := db.First(&f, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForumNotFound
		}
		return nil, err
	}
	return &f, nil
}

// ListAll retrieves every forum with its owner and membership relation
// preloaded, for the catalog listing.
func ListAll(db *gorm.DB) ([]Forum, error) {
	var forums []Forum
	err := db.
		Preload("CreatedBy").
		Preload("Memberships").
		Order("created_at ASC").
		Find(&forums).Error
	return forums, err
}

// GetDetail retrieves one forum by name (when non-empty) or id, with
// owner, followers, discussions and topics preloaded. One assembly point
// per response shape instead of ad hoc join lists at call sites.
func GetDetail(db *gorm.DB, name string, id uuid.UUID) (*Forum, error) {
	query := db.
		Preload("CreatedBy").
		Preload("Memberships.User").
		Preload("Discussions").
		Preload("Topics")

	var f Forum
	var err error
	if name != "" {
		err = query.First(&f, "name = ?", name).Error
	} else {
		err = query.First(&f, "id = ?", id).Error
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForumNotFound
		}
		return nil, err
	}

	return &f, nil
}

// ListWithEngagement retrieves every forum with the full join set needed
// by the engagement ranking.
func ListWithEngagement(db *gorm.DB) ([]Forum, error) {
	var forums []Forum
	err := db.
		Preload("CreatedBy").
		Preload("Memberships.User").
		Preload("Discussions").
		Preload("Topics").
		Find(&forums).Error
	return forums, err
}
