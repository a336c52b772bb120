package forum

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow enrolls the viewer in the forum named forumName. Returns the
// forum so the caller can build the confirmation message. A duplicate
// follow is rejected by the unique index on (forum_id, user_id), so two
// racing requests cannot both insert an edge.
func Follow(db *gorm.DB, forumName string, viewerID uuid.UUID) (*Forum, error) {
	f, err := GetByName(db, forumName)
	if err != nil {
		return nil, err
	}

	edge := Membership{ForumID: f.ID, UserID: viewerID}
	if err := db.Create(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	return f, nil
}

// Unfollow removes the viewer's membership edge for the forum named
// forumName. Deleting the single edge updates both the forum's enrolled
// set and the viewer's followed-forum set at once.
func Unfollow(db *gorm.DB, forumName string, viewerID uuid.UUID) error {
	f, err := GetByName(db, forumName)
	if err != nil {
		return err
	}

	result := db.Where("forum_id = ? AND user_id = ?", f.ID, viewerID).Delete(&Membership{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotMember
	}

	return nil
}

// EnrolledIDs returns the ids of all users enrolled in a forum, in
// enrollment order.
func EnrolledIDs(db *gorm.DB, forumID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&Membership{}).
		Where("forum_id = ?", forumID).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

// IsMember reports whether the user currently has a membership edge for
// the forum.
func IsMember(db *gorm.DB, forumID, userID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&Membership{}).
		Where("forum_id = ? AND user_id = ?", forumID, userID).
		Count(&count).Error
	return count > 0, err
}
