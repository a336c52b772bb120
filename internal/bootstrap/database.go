package bootstrap

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/commune-hq/community-server-go/internal/features/discussion"
	"github.com/commune-hq/community-server-go/internal/features/forum"
	"github.com/commune-hq/community-server-go/internal/features/topic"
	"github.com/commune-hq/community-server-go/internal/features/user"
)

// ApplyDatabaseMigrations runs GORM auto-migration for every entity.
// Users migrate before forums so the foreign keys resolve, and the
// membership table comes with the forum since the follow relation is
// owned by that feature.
func ApplyDatabaseMigrations(db *gorm.DB, logger *slog.Logger) error {
	logger.Info("applying database migrations")

	if err := db.AutoMigrate(
		&user.User{},
		&forum.Forum{},
		&forum.Membership{},
		&discussion.Discussion{},
		&topic.Topic{},
	); err != nil {
		return err
	}

	logger.Info("database migrations applied")
	return nil
}
