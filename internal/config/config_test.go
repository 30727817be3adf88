package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	// Empty values read as unset
	for _, key := range []string{"ENVIRONMENT", "API_BASE_URL", "REQUEST_TIMEOUT", "BURST_DELAY", "PROGRESS_DEADLINE", "QA_USER_ID"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "http://localhost:3000/api", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.BurstDelay)
	assert.Equal(t, 5*time.Minute, cfg.ProgressDeadline)
	assert.NotEmpty(t, cfg.QAUserID)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("API_BASE_URL", "https://app.reelforge.dev/api/")
	t.Setenv("GEMINI_API_KEYS", "key-a, key-b ,key-c")
	t.Setenv("BURST_DELAY", "500ms")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	// Trailing slash is stripped so path joining stays predictable
	assert.Equal(t, "https://app.reelforge.dev/api", cfg.APIBaseURL)
	assert.Equal(t, []string{"key-a", "key-b", "key-c"}, cfg.GeminiAPIKeys)
	assert.Equal(t, 500*time.Millisecond, cfg.BurstDelay)
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"go duration string", "45s", 45 * time.Second},
		{"bare seconds", "45", 45 * time.Second},
		{"minutes", "2m", 2 * time.Minute},
		{"garbage falls back", "soon", 30 * time.Second},
		{"empty falls back", "", 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, getDuration("TEST_DURATION", 30*time.Second))
		})
	}
}

func TestSplitKeys(t *testing.T) {
	assert.Nil(t, splitKeys(""))
	assert.Equal(t, []string{"one"}, splitKeys("one"))
	assert.Equal(t, []string{"one", "two"}, splitKeys("one,two"))
	assert.Equal(t, []string{"one", "two"}, splitKeys(" one , two , "))
}
