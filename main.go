package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/reelforge/reelforge-qa/internal/config"
	"github.com/reelforge/reelforge-qa/internal/database"
	"github.com/reelforge/reelforge-qa/internal/keycheck"
	"github.com/reelforge/reelforge-qa/internal/metrics"
	"github.com/reelforge/reelforge-qa/internal/notify"
	"github.com/reelforge/reelforge-qa/internal/stub"
	"github.com/reelforge/reelforge-qa/internal/suites"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "reelforge-qa@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0, // the harness is low volume, keep everything
			EnableLogs:       true,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				// Filter out sensitive data
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	var err error

	switch os.Args[1] {
	case "run":
		err = cmdRun(ctx, cfg, os.Args[2:])
	case "db":
		err = cmdDB(cfg, os.Args[2:])
	case "keys":
		err = cmdKeys(ctx, cfg)
	case "stub":
		err = cmdStub(cfg)
	case "version":
		fmt.Println("reelforge-qa " + releaseVersion)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		sentry.CaptureException(err)
		sentry.Flush(sentryFlushTimeout)
		log.Fatalf("❌ %v", err)
	}
}

// cmdRun executes one named suite, or every suite for "all"
func cmdRun(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: reelforge-qa run <suite|all>")
	}

	var names []string
	if args[0] == "all" {
		for _, s := range suites.All() {
			names = append(names, s.Name)
		}
	} else {
		names = []string{args[0]}
	}

	db, err := maybeConnect(cfg)
	if err != nil {
		return err
	}

	cw, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		// Metrics are best effort; the run still counts without them
		log.Printf("⚠️  CloudWatch metrics unavailable: %v", err)
	}

	log.Printf("🚀 Running %d suite(s) against %s", len(names), cfg.APIBaseURL)
	runner := suites.NewRunner(cfg, db, cw)
	rec, err := runner.Run(ctx, names)
	if err != nil {
		return err
	}

	rec.PrintSummary()

	if rec.Failed() > 0 {
		notifier := notify.NewEmailNotifier(cfg)
		if notifier.Enabled() {
			if mailErr := notifier.SendFailureReport(rec, cfg.APIBaseURL); mailErr != nil {
				log.Printf("⚠️  Failed to send failure report email: %v", mailErr)
			} else {
				log.Printf("📧 Failure report sent to %s", cfg.ReportEmail)
			}
		}
		return fmt.Errorf("%d of %d check(s) failed", rec.Failed(), rec.Failed()+rec.Passed())
	}
	return nil
}

// cmdDB runs the one-off database maintenance utilities
func cmdDB(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: reelforge-qa db <patch|seed|verify>")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for db commands")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}

	switch args[0] {
	case "patch":
		return database.EnsureErrorMessageColumn(db)
	case "seed":
		_, err := database.SeedPlanFixtures(db, cfg.QAUserID, cfg.SampleVideoURL)
		return err
	case "verify":
		_, err := database.VerifyPlanFixtures(db, database.FixtureProjectID)
		return err
	default:
		return fmt.Errorf("unknown db command %q (want patch, seed, or verify)", args[0])
	}
}

// cmdKeys probes the configured AI provider keys directly
func cmdKeys(ctx context.Context, cfg *config.Config) error {
	if len(cfg.GeminiAPIKeys) == 0 && cfg.OpenAIAPIKey == "" {
		return fmt.Errorf("no keys configured (set GEMINI_API_KEYS and/or OPENAI_API_KEY)")
	}

	var results []keycheck.KeyResult
	if len(cfg.GeminiAPIKeys) > 0 {
		results = append(results, keycheck.CheckGemini(ctx, cfg.GeminiAPIKeys)...)
	}
	if cfg.OpenAIAPIKey != "" {
		results = append(results, keycheck.CheckOpenAI(ctx, cfg.OpenAIAPIKey))
	}

	if !keycheck.AllOK(results) {
		return fmt.Errorf("one or more provider keys failed their probe")
	}
	log.Printf("✅ All %d provider key(s) passed", len(results))
	return nil
}

// cmdStub serves the local mock backend the suites can run against
func cmdStub(cfg *config.Config) error {
	server := stub.New(stub.Options{})
	router := server.Router()

	log.Printf("🚀 Starting stub backend on port %s", cfg.Port)
	return router.Run(":" + cfg.Port)
}

// maybeConnect opens the database when DATABASE_URL is set; suites that
// need it are skipped otherwise
func maybeConnect(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}
	return database.Connect(cfg.DatabaseURL)
}

func usage() {
	fmt.Fprint(os.Stderr, strings.TrimLeft(`
reelforge-qa - black-box checks and maintenance tools for a ReelForge deployment

Usage:
  reelforge-qa run <suite|all>    run check suites (smoke, workflow, ratelimit, planfix, render)
  reelforge-qa db <patch|seed|verify>
                                  one-off database maintenance
  reelforge-qa keys               probe the configured AI provider keys
  reelforge-qa stub               serve a local mock backend
  reelforge-qa version            print the release version
`, "\n"))
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[k] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
