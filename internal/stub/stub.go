// Package stub is a deterministic in-process stand-in for the ReelForge
// API. It answers every endpoint the harness exercises with canned model
// output, so suites can be developed and tested without a live deployment
// or AI spend.
package stub

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/reelforge/reelforge-qa/internal/models"
)

const progressPerPoll = 25 // each poll advances a job this much

// Options tune the stub's simulated behavior
type Options struct {
	// RateLimitAfter simulates upstream quota exhaustion: AI-backed
	// endpoints return 429 once they have served this many calls.
	// Zero means never.
	RateLimitAfter int
	// GeminiKeyCount is how many keys the rate-limit report claims
	GeminiKeyCount int
	// FailRenders makes every render job report failed on its first poll
	FailRenders bool
	// StallRenders keeps render jobs in processing forever
	StallRenders bool
}

// Server holds the stub's in-memory state
type Server struct {
	opts Options

	mu       sync.Mutex
	projects map[string]*projectState
	jobs     map[string]*models.JobProgress
	aiCalls  int // calls served by AI-backed endpoints
}

type projectState struct {
	project  models.Project
	analysis *models.AnalysisResult
	plan     *models.GenerationPlan
}

// New creates a stub server with the given options
func New(opts Options) *Server {
	if opts.GeminiKeyCount <= 0 {
		opts.GeminiKeyCount = 3
	}
	return &Server{
		opts:     opts,
		projects: make(map[string]*projectState),
		jobs:     make(map[string]*models.JobProgress),
	}
}

// Router builds the gin engine serving the stubbed API under /api
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(SentryMiddleware())

	// Request tracking and structured logging
	router.Use(RequestTracking())

	api := router.Group("/api")
	{
		api.GET("/status", s.status)
		api.GET("/test-db", s.testDB)
		api.GET("/projects", s.listProjects)
		api.POST("/projects", s.createProject)
		api.POST("/analyze", s.analyze)
		api.POST("/generate-plan", s.generatePlan)
		api.POST("/chat", s.chat)
		api.POST("/generate-video", s.generateVideo)
		api.GET("/jobs/:id/progress", s.jobProgress)
		api.GET("/ai-status", s.aiStatus)
		api.GET("/rate-limit-status", s.rateLimitStatus)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}

// rateLimited burns one simulated AI call and reports whether the caller
// should get a 429
func (s *Server) rateLimited() bool {
	if s.opts.RateLimitAfter <= 0 {
		return false
	}
	s.aiCalls++
	return s.aiCalls > s.opts.RateLimitAfter
}

func rateLimitResponse(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"success": false,
		"error":   "Rate limit exceeded for gemini, please retry later",
	})
}

func (s *Server) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "reelforge-stub",
	})
}

func (s *Server) testDB(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"database": "connected",
	})
}

func (s *Server) listProjects(c *gin.Context) {
	userID := c.Query("userId")

	s.mu.Lock()
	defer s.mu.Unlock()

	projects := []models.Project{}
	for _, st := range s.projects {
		if userID == "" || st.project.UserID == userID {
			projects = append(projects, st.project)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"projects": projects,
	})
}

func (s *Server) createProject(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if req.Title == "" || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "title and userId are required"})
		return
	}

	project := models.Project{
		ID:             uuid.New().String(),
		UserID:         req.UserID,
		Title:          req.Title,
		Description:    req.Description,
		SampleVideoURL: req.SampleVideoURL,
		Status:         "created",
	}

	s.mu.Lock()
	s.projects[project.ID] = &projectState{project: project}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"project": project,
	})
}

func (s *Server) analyze(c *gin.Context) {
	var req struct {
		ProjectID string `json:"projectId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "projectId is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rateLimited() {
		rateLimitResponse(c)
		return
	}

	st, ok := s.projects[req.ProjectID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Project not found"})
		return
	}

	st.analysis = models.SampleAnalysis()
	st.project.Status = "analyzed"

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"analysis": st.analysis,
	})
}

func (s *Server) generatePlan(c *gin.Context) {
	var req struct {
		ProjectID        string `json:"projectId"`
		UserRequirements string `json:"userRequirements"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "projectId is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rateLimited() {
		rateLimitResponse(c)
		return
	}

	st, ok := s.projects[req.ProjectID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Project not found"})
		return
	}
	if st.analysis == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Project needs to be analyzed first",
		})
		return
	}

	plan := models.SamplePlan()
	if req.UserRequirements != "" {
		plan.PlanSummary = req.UserRequirements
	}
	st.plan = plan
	st.project.Status = "plan_ready"

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"plan":    plan,
	})
}

func (s *Server) chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "projectId and message are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rateLimited() {
		rateLimitResponse(c)
		return
	}

	st, ok := s.projects[req.ProjectID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Project not found"})
		return
	}
	if st.plan == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Create a plan first before editing it in chat",
		})
		return
	}

	// The canned reply stays long enough to pass the "real model output"
	// length heuristic the suites apply
	reply := fmt.Sprintf(
		"I've updated the plan based on your request: %q. The segments now lean "+
			"into more saturated colors and faster pacing, the transitions were "+
			"tightened, and the soundtrack brief asks for a higher-energy track. "+
			"Let me know if you want the overlay text adjusted as well.",
		req.Message,
	)
	st.plan.PlanSummary = "Updated: " + req.Message

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"response":     reply,
		"plan_updated": true,
		"plan":         st.plan,
	})
}

func (s *Server) generateVideo(c *gin.Context) {
	var req struct {
		ProjectID string                 `json:"projectId"`
		Plan      *models.GenerationPlan `json:"plan"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "projectId is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.projects[req.ProjectID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Project not found"})
		return
	}

	plan := req.Plan
	if plan == nil {
		plan = st.plan
	}
	if plan == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Project has no generation plan",
		})
		return
	}
	if err := plan.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Invalid plan: %v", err),
		})
		return
	}

	job := &models.JobProgress{
		JobID:       uuid.New().String(),
		Status:      models.JobStatusQueued,
		Progress:    0,
		CurrentStep: "queued",
	}
	s.jobs[job.JobID] = job
	st.project.Status = "rendering"

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"job_id":  job.JobID,
	})
}

func (s *Server) jobProgress(c *gin.Context) {
	jobID := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	// Advance the simulated render one step per poll
	if !job.Terminal() {
		switch {
		case s.opts.FailRenders:
			job.Status = models.JobStatusFailed
			job.CurrentStep = "render aborted"
			job.ErrorMessage = "Video generation failed: upstream provider error"
		case s.opts.StallRenders:
			job.Status = models.JobStatusProcessing
			job.CurrentStep = "rendering segments"
			job.Progress = progressPerPoll
		default:
			job.Progress += progressPerPoll
			job.Status = models.JobStatusProcessing
			job.CurrentStep = "rendering segments"
			if job.Progress >= 100 {
				job.Progress = 100
				job.Status = models.JobStatusCompleted
				job.CurrentStep = "done"
				job.VideoURL = fmt.Sprintf("https://cdn.reelforge.app/videos/%s.mp4", job.JobID)
			}
		}
	}

	c.JSON(http.StatusOK, job)
}

func (s *Server) aiStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ai_services": gin.H{
			"gemini":     models.AIServiceStatus{Status: "healthy"},
			"openai":     models.AIServiceStatus{Status: "healthy"},
			"runway":     models.AIServiceStatus{Status: "healthy"},
			"elevenlabs": models.AIServiceStatus{Status: "healthy"},
		},
	})
}

func (s *Server) rateLimitStatus(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keyStatuses := make([]models.KeyStatus, 0, s.opts.GeminiKeyCount)
	for i := 0; i < s.opts.GeminiKeyCount; i++ {
		keyStatuses = append(keyStatuses, models.KeyStatus{
			KeyID:             fmt.Sprintf("gemini-%d", i+1),
			RequestsUsed:      s.aiCalls / s.opts.GeminiKeyCount,
			RequestsRemaining: 60 - s.aiCalls/s.opts.GeminiKeyCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": models.RateLimitReport{
			Services: []models.ServiceKeys{
				{ServiceName: "gemini", KeyStatuses: keyStatuses},
			},
		},
	})
}
