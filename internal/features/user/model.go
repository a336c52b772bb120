package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User represents a community member.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FirstName  string    `gorm:"size:30;not null" json:"firstName"`
	LastName   string    `gorm:"size:30;not null" json:"lastName"`
	MiddleName *string   `gorm:"size:30" json:"middleName,omitempty"`
	Occupation *string   `gorm:"size:60" json:"occupation,omitempty"`
	Photo      *string   `gorm:"size:500" json:"photo,omitempty"`
	Email      string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	CreatedAt  time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName overrides the default table name.
func (User) TableName() string { return "users" }

// Profile is the reduced projection joined into forum responses
// (owner and follower listings).
type Profile struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	MiddleName *string   `json:"middleName,omitempty"`
	Occupation *string   `json:"occupation,omitempty"`
	Photo      *string   `json:"photo,omitempty"`
}

// AsProfile projects the user onto its public profile fields.
func (u *User) AsProfile() Profile {
	return Profile{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		MiddleName: u.MiddleName,
		Occupation: u.Occupation,
		Photo:      u.Photo,
	}
}

// CreateInput carries data for creating a new user.
type CreateInput struct {
	FirstName  string
	LastName   string
	MiddleName *string
	Occupation *string
	Photo      *string
	Email      string
	Password   string
}

// Create inserts a new user with a bcrypt password hash.
func Create(db *gorm.DB, input CreateInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newUser := User{
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		MiddleName: input.MiddleName,
		Occupation: input.Occupation,
		Photo:      input.Photo,
		Email:      email,
		Password:   string(hash),
	}

	if err := db.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return &newUser, nil
}

// UpdateInput carries the optional profile fields of a partial update;
// nil means the field is untouched.
type UpdateInput struct {
	FirstName  *string
	LastName   *string
	MiddleName *string
	Occupation *string
	Photo      *string
}

// Update applies a partial profile update and returns the fresh record.
func Update(db *gorm.DB, id uuid.UUID, input UpdateInput) (*User, error) {
	updates := map[string]interface{}{}
	if input.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*input.LastName)
	}
	if input.MiddleName != nil {
		updates["middle_name"] = *input.MiddleName
	}
	if input.Occupation != nil {
		updates["occupation"] = *input.Occupation
	}
	if input.Photo != nil {
		updates["photo"] = *input.Photo
	}

	if len(updates) == 0 {
		return Get(db, id)
	}

	result := db.Model(&User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	return Get(db, id)
}

// Get retrieves a single user by ID.
func Get(db *gorm.DB, id uuid.UUID) (*User, error) {
	var usr User
	if err := db.First(&usr, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &usr, nil
}

// GetByEmail retrieves a single user by email.
func GetByEmail(db *gorm.DB, email string) (*User, error) {
	var usr User
	err := db.First(&usr, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &usr, nil
}

// CheckPassword compares a candidate password against the stored hash.
func (u *User) CheckPassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate)) == nil
}
