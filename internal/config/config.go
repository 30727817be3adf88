package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the harness configuration
// Note: everything is env-driven - the harness runs against whichever
// ReelForge deployment API_BASE_URL points at
type Config struct {
	// Environment
	Environment string
	Port        string

	// Target deployment
	APIBaseURL string // ReelForge API root, e.g. http://localhost:3000/api

	// Direct database access (maintenance commands only)
	DatabaseURL string

	// AI provider keys (keys command)
	GeminiAPIKeys []string // comma-separated in GEMINI_API_KEYS
	OpenAIAPIKey  string

	// Fixture identities shared with the seeded database rows
	QAUserID       string
	SampleVideoURL string

	// Pacing and deadlines
	RequestTimeout   time.Duration // per HTTP request
	BurstDelay       time.Duration // pause between burst requests
	ProgressPoll     time.Duration // pause between job progress polls
	ProgressDeadline time.Duration // how long to poll a render job

	// Observability
	SentryDSN string

	// Failure notification
	ReportEmail     string // recipient; empty disables email reports
	ReportEmailFrom string
	AWSRegion       string
}

const (
	defaultRequestTimeout   = 30 * time.Second
	defaultBurstDelay       = 2 * time.Second
	defaultProgressPoll     = 5 * time.Second
	defaultProgressDeadline = 5 * time.Minute
)

func Load() *Config {
	return &Config{
		Environment:      getEnv("ENVIRONMENT", "development"),
		Port:             getEnv("PORT", "3000"),
		APIBaseURL:       strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3000/api"), "/"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		GeminiAPIKeys:    splitKeys(getEnv("GEMINI_API_KEYS", "")),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		QAUserID:         getEnv("QA_USER_ID", "550e8400-e29b-41d4-a716-446655440000"),
		SampleVideoURL:   getEnv("SAMPLE_VIDEO_URL", "https://storage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4"),
		RequestTimeout:   getDuration("REQUEST_TIMEOUT", defaultRequestTimeout),
		BurstDelay:       getDuration("BURST_DELAY", defaultBurstDelay),
		ProgressPoll:     getDuration("PROGRESS_POLL", defaultProgressPoll),
		ProgressDeadline: getDuration("PROGRESS_DEADLINE", defaultProgressDeadline),
		SentryDSN:        getEnv("SENTRY_DSN", ""),
		ReportEmail:      getEnv("REPORT_EMAIL", ""),
		ReportEmailFrom:  getEnv("REPORT_EMAIL_FROM", "ReelForge QA <qa@reelforge.app>"),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

// getDuration reads a duration env var, accepting either a Go duration
// string ("30s") or a bare number of seconds ("30")
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func splitKeys(raw string) []string {
	if raw == "" {
		return nil
	}
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// IsProduction reports whether the harness runs in the production account
// (enables CloudWatch metrics, mirrors the API's behavior)
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
