package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/reelforge/reelforge-qa/internal/models"
)

// ProjectResponse is the envelope for single-project operations
type ProjectResponse struct {
	Success bool            `json:"success"`
	Project *models.Project `json:"project,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ProjectListResponse is the envelope for GET /projects
type ProjectListResponse struct {
	Success  bool             `json:"success"`
	Projects []models.Project `json:"projects,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// AnalyzeResponse is the envelope for POST /analyze
type AnalyzeResponse struct {
	Success  bool                   `json:"success"`
	Analysis *models.AnalysisResult `json:"analysis,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// PlanResponse is the envelope for POST /generate-plan
type PlanResponse struct {
	Success bool                   `json:"success"`
	Plan    *models.GenerationPlan `json:"plan,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// ChatResponse is the envelope for POST /chat
type ChatResponse struct {
	Success     bool                   `json:"success"`
	Response    string                 `json:"response,omitempty"`
	PlanUpdated bool                   `json:"plan_updated,omitempty"`
	Plan        *models.GenerationPlan `json:"plan,omitempty"`
	Error       string                 `json:"error,omitempty"`
}

// RenderResponse is the envelope for POST /generate-video
type RenderResponse struct {
	Success bool   `json:"success"`
	JobID   string `json:"job_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AIStatusResponse is the envelope for GET /ai-status
type AIStatusResponse struct {
	AIServices map[string]models.AIServiceStatus `json:"ai_services"`
}

// HealthyServices returns the names of services reporting healthy
func (r *AIStatusResponse) HealthyServices() []string {
	var healthy []string
	for name, status := range r.AIServices {
		if status.Healthy() {
			healthy = append(healthy, name)
		}
	}
	return healthy
}

// RateLimitStatusResponse is the envelope for GET /rate-limit-status
type RateLimitStatusResponse struct {
	Success bool                    `json:"success"`
	Data    *models.RateLimitReport `json:"data,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

// Status hits GET /status, the deployment's basic liveness endpoint
func (c *Client) Status(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.doJSON(ctx, http.MethodGet, "/status", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TestDB hits GET /test-db, which verifies the backend's own database link
func (c *Client) TestDB(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.doJSON(ctx, http.MethodGet, "/test-db", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProject creates a new video-generation project
func (c *Client) CreateProject(ctx context.Context, req *models.CreateProjectRequest) (*ProjectResponse, error) {
	var out ProjectResponse
	if err := c.doJSON(ctx, http.MethodPost, "/projects", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProjects returns the projects owned by userID
func (c *Client) ListProjects(ctx context.Context, userID string) (*ProjectListResponse, error) {
	var out ProjectListResponse
	path := "/projects?userId=" + url.QueryEscape(userID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Analyze asks the backend to analyze the project's sample video
func (c *Client) Analyze(ctx context.Context, projectID string) (*AnalyzeResponse, error) {
	payload := map[string]string{"projectId": projectID}
	var out AnalyzeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/analyze", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GeneratePlan asks the backend to produce a generation plan from the
// stored analysis and the user's requirements
func (c *Client) GeneratePlan(ctx context.Context, projectID, requirements string) (*PlanResponse, error) {
	payload := map[string]string{
		"projectId":        projectID,
		"userRequirements": requirements,
	}
	var out PlanResponse
	if err := c.doJSON(ctx, http.MethodPost, "/generate-plan", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Chat sends one plan-editing message for the project
func (c *Client) Chat(ctx context.Context, req *models.ChatRequest) (*ChatResponse, error) {
	if req.ChatHistory == nil {
		req.ChatHistory = []models.ChatMessage{}
	}
	var out ChatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateVideo starts rendering. With a nil plan the backend falls back to
// the plan stored on the project, which is how the column-parsing
// regressions are exercised.
func (c *Client) GenerateVideo(ctx context.Context, projectID string, plan *models.GenerationPlan) (*RenderResponse, error) {
	payload := map[string]interface{}{"projectId": projectID}
	if plan != nil {
		payload["plan"] = plan
	}
	var out RenderResponse
	if err := c.doJSON(ctx, http.MethodPost, "/generate-video", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// JobProgress reports the state of one render job
func (c *Client) JobProgress(ctx context.Context, jobID string) (*models.JobProgress, error) {
	var out models.JobProgress
	path := fmt.Sprintf("/jobs/%s/progress", url.PathEscape(jobID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AIStatus reports the health of every upstream AI service the backend uses
func (c *Client) AIStatus(ctx context.Context) (*AIStatusResponse, error) {
	var out AIStatusResponse
	if err := c.doJSON(ctx, http.MethodGet, "/ai-status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RateLimitStatus reports the backend's per-service API key pools
func (c *Client) RateLimitStatus(ctx context.Context) (*RateLimitStatusResponse, error) {
	var out RateLimitStatusResponse
	if err := c.doJSON(ctx, http.MethodGet, "/rate-limit-status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
