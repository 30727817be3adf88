// Package database holds the direct-Postgres maintenance operations the
// harness runs against the ReelForge database: the one-off schema patch,
// the plan-parsing fixtures, and the fixture verification readback.
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// FixtureProjectID is the well-known project the seed and verify commands
// operate on. The render and planfix suites target the same row.
const FixtureProjectID = "550e8400-e29b-41d4-a716-446655440001"

// Connect opens the managed Postgres instance behind the deployment
func Connect(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Printf("✅ Connected to database")
	return db, nil
}

// UserRow is the slice of the external users table the fixtures touch.
// Only these three columns are written; the backend owns everything else.
type UserRow struct {
	ID    string `gorm:"primarykey"`
	Email string
	Name  string
}

func (UserRow) TableName() string { return "users" }

// ProjectRow is the slice of the external projects table the fixtures
// touch. AnalysisResult and GenerationPlan are read and written as raw
// strings because the backend stores JSON-encoded text in those columns.
type ProjectRow struct {
	ID             string `gorm:"primarykey"`
	UserID         string
	Title          string
	Description    string
	SampleVideoURL string
	AnalysisResult string
	GenerationPlan string
	Status         string
}

func (ProjectRow) TableName() string { return "projects" }

// GeneratedVideoRow is the slice of the external generated_videos table
// the schema patch and the render readback touch
type GeneratedVideoRow struct {
	ID           string `gorm:"primarykey"`
	ProjectID    string
	VideoURL     string
	Status       string
	ErrorMessage string
	CreatedAt    *time.Time
}

func (GeneratedVideoRow) TableName() string { return "generated_videos" }
