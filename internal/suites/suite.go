// Package suites holds the black-box check suites the harness runs against
// a ReelForge deployment. Each suite is a linear sequence of HTTP checks;
// failures are recorded and the run continues unless a later check depends
// on an artifact an earlier one failed to produce.
package suites

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/reelforge/reelforge-qa/internal/client"
	"github.com/reelforge/reelforge-qa/internal/config"
	"github.com/reelforge/reelforge-qa/internal/logger"
	"github.com/reelforge/reelforge-qa/internal/metrics"
	"github.com/reelforge/reelforge-qa/internal/report"
)

// Suite is one named check sequence
type Suite struct {
	Name        string
	Description string
	NeedsDB     bool // requires DATABASE_URL for fixture seeding/readback
	Run         func(ctx context.Context, env *Env) error
}

// All returns every suite in execution order
func All() []Suite {
	return []Suite{
		Smoke(),
		Workflow(),
		RateLimit(),
		PlanFix(),
		Render(),
	}
}

// ByName looks a suite up by its registry name
func ByName(name string) (Suite, bool) {
	for _, s := range All() {
		if s.Name == name {
			return s, true
		}
	}
	return Suite{}, false
}

// Env carries everything a suite needs for one run
type Env struct {
	Cfg    *config.Config
	Client *client.Client
	Report *report.Recorder
	DB     *gorm.DB // nil unless the run was given a DATABASE_URL

	CloudWatch *metrics.Client
	Sentry     *metrics.SentryMetrics

	suite string
}

// Check runs one named check, records its outcome, and reports whether it
// passed. fn returns an optional human detail for the banner.
func (e *Env) Check(ctx context.Context, name string, fn func(ctx context.Context) (string, error)) bool {
	start := time.Now()
	detail, err := fn(ctx)
	took := time.Since(start)

	passed := err == nil
	if passed {
		e.Report.Pass(e.suite, name, took, detail)
	} else {
		logger.Error("Check failed", err, logger.Fields{
			"suite": e.suite,
			"check": name,
		})
		e.Report.Fail(e.suite, name, took, err)
	}

	if e.CloudWatch != nil {
		e.CloudWatch.RecordCheck(e.suite, name, passed, took)
	}
	if e.Sentry != nil {
		e.Sentry.RecordCheck(ctx, e.suite, name, passed, took)
	}

	return passed
}

// Skip records a check that could not run
func (e *Env) Skip(name, why string) {
	e.Report.Skip(e.suite, name, why)
}

// burstOutcome summarizes a repeated-call burst against one endpoint
type burstOutcome struct {
	successes int
	lastErr   error
}

// burst calls fn n times with the configured pacing delay between calls
// (never after the last one)
func (e *Env) burst(ctx context.Context, n int, fn func(ctx context.Context) error) burstOutcome {
	var out burstOutcome
	for i := 0; i < n; i++ {
		if err := fn(ctx); err != nil {
			out.lastErr = err
		} else {
			out.successes++
			out.lastErr = nil
		}

		if i < n-1 {
			select {
			case <-ctx.Done():
				out.lastErr = ctx.Err()
				return out
			case <-time.After(e.Cfg.BurstDelay):
			}
		}
	}
	return out
}

// evaluate applies the burst acceptance rule: a burst passes when the last
// call succeeded, or when rate limiting kicked in after at least one success
func (b burstOutcome) evaluate(n int) (string, error) {
	if b.lastErr == nil {
		return fmt.Sprintf("%d/%d calls succeeded", b.successes, n), nil
	}
	if client.IsRateLimited(b.lastErr) && b.successes > 0 {
		return fmt.Sprintf("rate limited after %d successful call(s), as expected under load", b.successes), nil
	}
	return "", b.lastErr
}
