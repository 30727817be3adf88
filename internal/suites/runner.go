package suites

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"

	"github.com/reelforge/reelforge-qa/internal/client"
	"github.com/reelforge/reelforge-qa/internal/config"
	"github.com/reelforge/reelforge-qa/internal/metrics"
	"github.com/reelforge/reelforge-qa/internal/report"
)

// Runner executes suites and fans results out to metrics and reporting
type Runner struct {
	cfg        *config.Config
	db         *gorm.DB
	cloudwatch *metrics.Client
	sentry     *metrics.SentryMetrics
}

// NewRunner builds a runner. db may be nil; suites that need it are
// skipped with a note.
func NewRunner(cfg *config.Config, db *gorm.DB, cw *metrics.Client) *Runner {
	return &Runner{
		cfg:        cfg,
		db:         db,
		cloudwatch: cw,
		sentry:     metrics.NewSentryMetrics(),
	}
}

// Run executes the named suites in order and returns the filled recorder
func (r *Runner) Run(ctx context.Context, names []string) (*report.Recorder, error) {
	rec := report.NewRecorder()

	for _, name := range names {
		suite, ok := ByName(name)
		if !ok {
			return rec, fmt.Errorf("unknown suite %q", name)
		}
		r.runSuite(ctx, suite, rec)
	}

	return rec, nil
}

func (r *Runner) runSuite(ctx context.Context, suite Suite, rec *report.Recorder) {
	log.Printf("🎬 SUITE %s STARTED (%s)", suite.Name, suite.Description)
	start := time.Now()

	// One Sentry transaction per suite; checks become child spans
	transaction := sentry.StartTransaction(ctx, "qa.suite."+suite.Name)
	defer transaction.Finish()
	transaction.SetTag("suite", suite.Name)
	suiteCtx := transaction.Context()

	env := &Env{
		Cfg:        r.cfg,
		Client:     client.New(r.cfg.APIBaseURL, r.cfg.RequestTimeout),
		Report:     rec,
		DB:         r.db,
		CloudWatch: r.cloudwatch,
		Sentry:     r.sentry,
		suite:      suite.Name,
	}

	if suite.NeedsDB && r.db == nil {
		env.Skip("all", "requires DATABASE_URL")
		transaction.SetTag("skipped", "true")
		log.Printf("⚠️  SUITE %s SKIPPED (no database configured)", suite.Name)
		return
	}

	failedBefore := rec.Failed()
	if err := suite.Run(suiteCtx, env); err != nil {
		// The suite aborted early; the failed check is already recorded
		log.Printf("❌ SUITE %s ABORTED after %v: %v", suite.Name, time.Since(start), err)
	}

	took := time.Since(start)
	passed := rec.Failed() == failedBefore
	transaction.SetTag("success", fmt.Sprintf("%t", passed))

	if r.cloudwatch != nil {
		r.cloudwatch.RecordSuiteRun(suite.Name, passed, took)
	}
	r.sentry.RecordSuiteRun(suiteCtx, suite.Name, passed, took)

	if passed {
		log.Printf("✅ SUITE %s COMPLETED in %v", suite.Name, took)
	} else {
		log.Printf("❌ SUITE %s FINISHED WITH FAILURES in %v", suite.Name, took)
	}
}
