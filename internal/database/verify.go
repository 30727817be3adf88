package database

import (
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/reelforge/reelforge-qa/internal/models"
)

// FixtureState is the decoded content of the fixture project's JSON columns
type FixtureState struct {
	Plan     *models.GenerationPlan
	Analysis *models.AnalysisResult
}

// VerifyPlanFixtures reads the fixture project back and confirms both JSON
// columns decode and the plan carries what the render pipeline needs
func VerifyPlanFixtures(db *gorm.DB, projectID string) (*FixtureState, error) {
	var row ProjectRow
	err := db.Raw(`
		SELECT id,
		       generation_plan::text AS generation_plan,
		       analysis_result::text AS analysis_result
		FROM projects
		WHERE id = ?
	`, projectID).Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture project %s: %w", projectID, err)
	}
	if row.ID == "" {
		return nil, fmt.Errorf("no fixture project found with id %s", projectID)
	}

	var plan models.GenerationPlan
	if err := json.Unmarshal([]byte(row.GenerationPlan), &plan); err != nil {
		return nil, fmt.Errorf("generation_plan column is not valid JSON: %w", err)
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("stored plan is not usable: %w", err)
	}

	var analysis models.AnalysisResult
	if err := json.Unmarshal([]byte(row.AnalysisResult), &analysis); err != nil {
		return nil, fmt.Errorf("analysis_result column is not valid JSON: %w", err)
	}

	log.Printf("✅ Fixture plan has total_duration=%v and %d segments",
		plan.TotalDuration, len(plan.Segments))
	log.Printf("✅ Fixture analysis decoded (visual_style: %q)", analysis.VisualStyle)

	return &FixtureState{Plan: &plan, Analysis: &analysis}, nil
}

// RenderOutcomes returns the generated_videos rows for one project, newest
// first. Failure reasons land in error_message once the schema patch ran.
func RenderOutcomes(db *gorm.DB, projectID string) ([]GeneratedVideoRow, error) {
	var rows []GeneratedVideoRow
	err := db.Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(10).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read render outcomes for %s: %w", projectID, err)
	}
	return rows, nil
}
