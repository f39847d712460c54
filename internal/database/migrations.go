package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/list-task-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the users, lists and tasks tables together with
// their unique and lookup indexes.
func Migrate(db *gorm.DB, log *slog.Logger) error {
	log.Info("running database migrations")
	if err := db.AutoMigrate(
		&models.User{},
		&models.List{},
		&models.Task{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database migrations completed")
	return nil
}
