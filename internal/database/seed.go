package database

import (
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reelforge/reelforge-qa/internal/models"
)

// SeedPlanFixtures upserts the QA user and the fixture project whose
// analysis_result and generation_plan columns hold JSON-encoded *strings*.
// That string-not-JSONB shape is exactly what tripped the backend's column
// parsing, so the fixtures must preserve it.
func SeedPlanFixtures(db *gorm.DB, userID string, sampleVideoURL string) (string, error) {
	analysisJSON, err := json.Marshal(models.SampleAnalysis())
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis fixture: %w", err)
	}
	planJSON, err := json.Marshal(models.SamplePlan())
	if err != nil {
		return "", fmt.Errorf("failed to encode plan fixture: %w", err)
	}

	user := UserRow{
		ID:    userID,
		Email: "qa@reelforge.app",
		Name:  "ReelForge QA",
	}
	project := ProjectRow{
		ID:             FixtureProjectID,
		UserID:         userID,
		Title:          "Plan Parsing Fixture Project",
		Description:    "Fixture rows for the column-parsing regression checks",
		SampleVideoURL: sampleVideoURL,
		AnalysisResult: string(analysisJSON),
		GenerationPlan: string(planJSON),
		Status:         "plan_ready",
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}

		// Re-seeding refreshes the JSON columns so a previous run's edits
		// never leak into the next one
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"analysis_result", "generation_plan", "status"}),
		}).Create(&project).Error; err != nil {
			return fmt.Errorf("failed to seed project: %w", err)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	log.Printf("✅ Fixture data seeded (project: %s)", FixtureProjectID)
	return FixtureProjectID, nil
}
