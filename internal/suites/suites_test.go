package suites

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge-qa/internal/client"
	"github.com/reelforge/reelforge-qa/internal/config"
	"github.com/reelforge/reelforge-qa/internal/report"
	"github.com/reelforge/reelforge-qa/internal/stub"
)

// newStubEnv wires a suite Env against an in-process stub backend with
// pacing cranked down so bursts and job polling finish quickly
func newStubEnv(t *testing.T, suiteName string, opts stub.Options) *Env {
	t.Helper()

	server := httptest.NewServer(stub.New(opts).Router())
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Environment:      "test",
		APIBaseURL:       server.URL + "/api",
		QAUserID:         "550e8400-e29b-41d4-a716-446655440000",
		SampleVideoURL:   "https://example.com/sample.mp4",
		RequestTimeout:   5 * time.Second,
		BurstDelay:       time.Millisecond,
		ProgressPoll:     time.Millisecond,
		ProgressDeadline: 5 * time.Second,
	}

	return &Env{
		Cfg:    cfg,
		Client: client.New(cfg.APIBaseURL, cfg.RequestTimeout),
		Report: report.NewQuietRecorder(),
		suite:  suiteName,
	}
}

func checkNames(rec *report.Recorder) []string {
	var names []string
	for _, res := range rec.Results() {
		names = append(names, res.Check)
	}
	return names
}

func TestSmokeSuiteAgainstStub(t *testing.T) {
	env := newStubEnv(t, "smoke", stub.Options{})

	err := runSmoke(context.Background(), env)
	require.NoError(t, err)

	assert.True(t, env.Report.AllPassed(), "failures: %v", env.Report.Results())
	assert.Contains(t, checkNames(env.Report), "unknown_endpoint")
	assert.Equal(t, 9, env.Report.Passed())
}

func TestWorkflowSuiteAgainstStub(t *testing.T) {
	env := newStubEnv(t, "workflow", stub.Options{})

	err := runWorkflow(context.Background(), env)
	require.NoError(t, err)

	assert.True(t, env.Report.AllPassed(), "failures: %v", env.Report.Results())
	assert.Contains(t, checkNames(env.Report), "job_progress")
}

func TestRateLimitSuiteCleanBackend(t *testing.T) {
	env := newStubEnv(t, "ratelimit", stub.Options{})

	err := runRateLimit(context.Background(), env)
	require.NoError(t, err)

	assert.True(t, env.Report.AllPassed(), "failures: %v", env.Report.Results())
}

func TestRateLimitSuiteWithQuotaExhaustion(t *testing.T) {
	// Quota runs out partway through the last burst; the suite treats 429
	// after at least one success as the backend behaving correctly under load
	env := newStubEnv(t, "ratelimit", stub.Options{RateLimitAfter: 8})

	err := runRateLimit(context.Background(), env)
	require.NoError(t, err)

	assert.True(t, env.Report.AllPassed(), "failures: %v", env.Report.Results())
}

func TestWorkflowReportsRenderFailure(t *testing.T) {
	env := newStubEnv(t, "workflow", stub.Options{FailRenders: true})

	err := runWorkflow(context.Background(), env)
	require.NoError(t, err)

	assert.Equal(t, 1, env.Report.Failed())
	for _, res := range env.Report.Results() {
		if res.Check == "job_progress" {
			require.Error(t, res.Err)
			assert.Contains(t, res.Err.Error(), "render failed")
			assert.Contains(t, res.Err.Error(), "upstream provider error")
		}
	}
}

func TestWorkflowGivesUpOnStalledRender(t *testing.T) {
	env := newStubEnv(t, "workflow", stub.Options{StallRenders: true})
	env.Cfg.ProgressDeadline = 25 * time.Millisecond

	err := runWorkflow(context.Background(), env)
	require.NoError(t, err)

	assert.Equal(t, 1, env.Report.Failed())
	for _, res := range env.Report.Results() {
		if res.Check == "job_progress" {
			require.Error(t, res.Err)
			assert.Contains(t, res.Err.Error(), "still processing")
		}
	}
}

func TestWorkflowAbortsWithoutProject(t *testing.T) {
	env := newStubEnv(t, "workflow", stub.Options{})
	// Point the client at a port nothing listens on
	env.Client = client.New("http://127.0.0.1:1/api", 100*time.Millisecond)

	err := runWorkflow(context.Background(), env)
	require.Error(t, err)

	assert.Equal(t, 1, env.Report.Failed())
	skipped := 0
	for _, res := range env.Report.Results() {
		if res.Skipped {
			skipped++
		}
	}
	assert.Equal(t, 5, skipped)
}

func TestBurstOutcomeEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		outcome burstOutcome
		wantOK  bool
	}{
		{
			name:    "all succeeded",
			outcome: burstOutcome{successes: 3},
			wantOK:  true,
		},
		{
			name: "rate limited after a success",
			outcome: burstOutcome{
				successes: 1,
				lastErr:   &client.APIError{StatusCode: 429, Body: "Rate limit exceeded"},
			},
			wantOK: true,
		},
		{
			name: "rate limited immediately",
			outcome: burstOutcome{
				successes: 0,
				lastErr:   &client.APIError{StatusCode: 429, Body: "Rate limit exceeded"},
			},
			wantOK: false,
		},
		{
			name: "plain failure",
			outcome: burstOutcome{
				successes: 2,
				lastErr:   &client.APIError{StatusCode: 500, Body: "boom"},
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.outcome.evaluate(3)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestByName(t *testing.T) {
	for _, want := range []string{"smoke", "workflow", "ratelimit", "planfix", "render"} {
		s, ok := ByName(want)
		assert.True(t, ok, want)
		assert.Equal(t, want, s.Name)
	}

	_, ok := ByName("nonexistent")
	assert.False(t, ok)
}

func TestRunnerSkipsDBSuitesWithoutDatabase(t *testing.T) {
	server := httptest.NewServer(stub.New(stub.Options{}).Router())
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Environment:      "test",
		APIBaseURL:       server.URL + "/api",
		QAUserID:         "550e8400-e29b-41d4-a716-446655440000",
		SampleVideoURL:   "https://example.com/sample.mp4",
		RequestTimeout:   5 * time.Second,
		BurstDelay:       time.Millisecond,
		ProgressPoll:     time.Millisecond,
		ProgressDeadline: 5 * time.Second,
	}

	runner := NewRunner(cfg, nil, nil)
	rec, err := runner.Run(context.Background(), []string{"planfix", "render"})
	require.NoError(t, err)

	assert.Equal(t, 0, rec.Failed())
	for _, res := range rec.Results() {
		assert.True(t, res.Skipped)
	}
}

func TestRunnerRejectsUnknownSuite(t *testing.T) {
	cfg := &config.Config{APIBaseURL: "http://localhost:1/api", RequestTimeout: time.Second}
	runner := NewRunner(cfg, nil, nil)

	_, err := runner.Run(context.Background(), []string{"bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}
