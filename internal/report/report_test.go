package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	rec := NewQuietRecorder()

	rec.Pass("smoke", "status", 10*time.Millisecond, "ok")
	rec.Pass("smoke", "test_db", 5*time.Millisecond, "")
	rec.Fail("smoke", "analyze", 20*time.Millisecond, fmt.Errorf("boom"))
	rec.Skip("render", "generate_video", "fixtures not seeded")

	assert.Equal(t, 2, rec.Passed())
	assert.Equal(t, 1, rec.Failed())
	assert.False(t, rec.AllPassed())
	assert.Len(t, rec.Results(), 4)
}

func TestSkipsDoNotCountAsFailures(t *testing.T) {
	rec := NewQuietRecorder()
	rec.Pass("smoke", "status", time.Millisecond, "")
	rec.Skip("planfix", "seed_fixtures", "no database")

	assert.True(t, rec.AllPassed())
	assert.Equal(t, 0, rec.Failed())
}

func TestSummaryListsEveryCheck(t *testing.T) {
	rec := NewQuietRecorder()
	rec.Pass("smoke", "status", time.Millisecond, "")
	rec.Fail("workflow", "generate_plan", time.Millisecond, fmt.Errorf("plan missing segments"))
	rec.Skip("render", "verify_fixtures", "no database")

	summary := rec.Summary()
	assert.Contains(t, summary, "smoke/status")
	assert.Contains(t, summary, "SUCCESS")
	assert.Contains(t, summary, "workflow/generate_plan")
	assert.Contains(t, summary, "FAILED")
	assert.Contains(t, summary, "render/verify_fixtures")
	assert.Contains(t, summary, "SKIPPED")
	assert.Contains(t, summary, "Total: 3  Passed: 1  Failed: 1")
}

func TestEmptyRecorderAllPassed(t *testing.T) {
	rec := NewQuietRecorder()
	assert.True(t, rec.AllPassed())
	assert.Equal(t, 0, rec.Passed())
}
