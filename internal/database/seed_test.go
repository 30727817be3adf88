package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// dryRunDB opens a gorm handle that renders SQL without touching a database
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=qa dbname=qa",
	}), &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db
}

// The external users table only guarantees id, email, and name; writing any
// other column makes the seed fail against the real schema
func TestSeedUserTouchesOnlyKnownColumns(t *testing.T) {
	db := dryRunDB(t)

	stmt := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&UserRow{
		ID:    "550e8400-e29b-41d4-a716-446655440000",
		Email: "qa@reelforge.app",
		Name:  "ReelForge QA",
	}).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, `INSERT INTO "users"`)
	assert.Contains(t, sql, `"id"`)
	assert.Contains(t, sql, `"email"`)
	assert.Contains(t, sql, `"name"`)
	assert.NotContains(t, sql, "password")
	assert.Contains(t, sql, "ON CONFLICT DO NOTHING")
}

func TestSeedProjectUpsertRefreshesJSONColumns(t *testing.T) {
	db := dryRunDB(t)

	stmt := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"analysis_result", "generation_plan", "status"}),
	}).Create(&ProjectRow{
		ID:             FixtureProjectID,
		UserID:         "550e8400-e29b-41d4-a716-446655440000",
		Title:          "Plan Parsing Fixture Project",
		AnalysisResult: `{"visual_style":"x"}`,
		GenerationPlan: `{"total_duration":30}`,
		Status:         "plan_ready",
	}).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, `INSERT INTO "projects"`)
	assert.Contains(t, sql, `ON CONFLICT ("id") DO UPDATE`)
	assert.Contains(t, sql, `"analysis_result"="excluded"."analysis_result"`)
	assert.Contains(t, sql, `"generation_plan"="excluded"."generation_plan"`)
}
