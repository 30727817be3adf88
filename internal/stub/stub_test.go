package stub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge-qa/internal/client"
	"github.com/reelforge/reelforge-qa/internal/models"
)

func newStubClient(t *testing.T, opts Options) *client.Client {
	t.Helper()
	server := httptest.NewServer(New(opts).Router())
	t.Cleanup(server.Close)
	return client.New(server.URL+"/api", 5*time.Second)
}

func createProject(t *testing.T, c *client.Client) string {
	t.Helper()
	resp, err := c.CreateProject(context.Background(), &models.CreateProjectRequest{
		Title:  "Stub Test Project",
		UserID: "user-1",
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.NotNil(t, resp.Project)
	return resp.Project.ID
}

func TestFullPipeline(t *testing.T) {
	c := newStubClient(t, Options{})
	ctx := context.Background()

	projectID := createProject(t, c)

	analysis, err := c.Analyze(ctx, projectID)
	require.NoError(t, err)
	assert.True(t, analysis.Success)
	require.NotNil(t, analysis.Analysis)
	assert.True(t, analysis.Analysis.LooksGenerated())

	plan, err := c.GeneratePlan(ctx, projectID, "Upbeat promo")
	require.NoError(t, err)
	require.NotNil(t, plan.Plan)
	require.NoError(t, plan.Plan.Validate())
	assert.Equal(t, "Upbeat promo", plan.Plan.PlanSummary)

	chat, err := c.Chat(ctx, &models.ChatRequest{ProjectID: projectID, Message: "More energy"})
	require.NoError(t, err)
	assert.True(t, chat.Success)
	assert.True(t, chat.PlanUpdated)
	assert.Greater(t, len(chat.Response), 100)

	render, err := c.GenerateVideo(ctx, projectID, nil) // falls back to the stored plan
	require.NoError(t, err)
	assert.True(t, render.Success)
	require.NotEmpty(t, render.JobID)

	// Four polls at 25% each reach completion
	var progress *models.JobProgress
	for i := 0; i < 4; i++ {
		progress, err = c.JobProgress(ctx, render.JobID)
		require.NoError(t, err)
	}
	assert.Equal(t, models.JobStatusCompleted, progress.Status)
	assert.NotEmpty(t, progress.VideoURL)
}

func TestPlanRequiresAnalysis(t *testing.T) {
	c := newStubClient(t, Options{})
	projectID := createProject(t, c)

	_, err := c.GeneratePlan(context.Background(), projectID, "")
	require.Error(t, err)
	assert.True(t, client.IsAnalysisRequired(err))
}

func TestChatRequiresPlan(t *testing.T) {
	c := newStubClient(t, Options{})
	projectID := createProject(t, c)

	_, err := c.Chat(context.Background(), &models.ChatRequest{
		ProjectID: projectID,
		Message:   "hello",
	})
	require.Error(t, err)
	assert.True(t, client.IsPlanRequired(err))
}

func TestRenderRejectsInvalidPlan(t *testing.T) {
	c := newStubClient(t, Options{})
	projectID := createProject(t, c)

	_, err := c.GenerateVideo(context.Background(), projectID, &models.GenerationPlan{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, client.StatusCodeOf(err))
}

func TestRateLimitAfter(t *testing.T) {
	c := newStubClient(t, Options{RateLimitAfter: 2})
	ctx := context.Background()
	projectID := createProject(t, c)

	// First two AI-backed calls pass, the third hits the simulated quota
	_, err := c.Analyze(ctx, projectID)
	require.NoError(t, err)
	_, err = c.Analyze(ctx, projectID)
	require.NoError(t, err)

	_, err = c.Analyze(ctx, projectID)
	require.Error(t, err)
	assert.True(t, client.IsRateLimited(err))
	assert.Equal(t, http.StatusTooManyRequests, client.StatusCodeOf(err))
}

func TestRateLimitStatusReportsKeyPool(t *testing.T) {
	c := newStubClient(t, Options{GeminiKeyCount: 5})

	resp, err := c.RateLimitStatus(context.Background())
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.NotNil(t, resp.Data)

	gemini := resp.Data.Service("gemini")
	require.NotNil(t, gemini)
	assert.Len(t, gemini.KeyStatuses, 5)
}

func TestUnknownEndpointReturns404(t *testing.T) {
	c := newStubClient(t, Options{})

	code, err := c.Probe(context.Background(), "/nonexistent-endpoint")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUnknownProjectReturns404(t *testing.T) {
	c := newStubClient(t, Options{})

	_, err := c.Analyze(context.Background(), "no-such-project")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, client.StatusCodeOf(err))
}
