package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// EnsureErrorMessageColumn adds the error_message column the render worker
// writes failure reasons into. Older deployments were created without it,
// which made every failed render also fail its status update.
func EnsureErrorMessageColumn(db *gorm.DB) error {
	err := db.Exec(`ALTER TABLE generated_videos ADD COLUMN IF NOT EXISTS error_message TEXT`).Error
	if err != nil {
		return fmt.Errorf("failed to add error_message column: %w", err)
	}

	log.Printf("✅ Successfully added error_message column to generated_videos table")
	return nil
}
