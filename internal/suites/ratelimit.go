package suites

import (
	"context"
	"fmt"

	"github.com/reelforge/reelforge-qa/internal/client"
	"github.com/reelforge/reelforge-qa/internal/logger"
	"github.com/reelforge/reelforge-qa/internal/models"
)

const (
	burstSize          = 3
	expectedGeminiKeys = 3 // backend is provisioned with at least this many keys
)

// RateLimit probes the backend's multi-key load balancing from outside:
// read the key-pool report, then hammer each AI-backed endpoint and accept
// either full success or rate limiting that kicks in after a success.
func RateLimit() Suite {
	return Suite{
		Name:        "ratelimit",
		Description: "key-pool report and burst behavior of AI endpoints",
		Run:         runRateLimit,
	}
}

func runRateLimit(ctx context.Context, env *Env) error {
	env.Check(ctx, "rate_limit_status", func(ctx context.Context) (string, error) {
		resp, err := env.Client.RateLimitStatus(ctx)
		if err != nil {
			return "", err
		}
		if !resp.Success || resp.Data == nil {
			return "", fmt.Errorf("rate limit report unavailable: %s", resp.Error)
		}

		gemini := resp.Data.Service("gemini")
		if gemini == nil {
			return "", fmt.Errorf("no gemini entry in rate limit report")
		}
		if len(gemini.KeyStatuses) < expectedGeminiKeys {
			return fmt.Sprintf("⚠️ only %d gemini key(s) configured, expected at least %d",
				len(gemini.KeyStatuses), expectedGeminiKeys), nil
		}
		return fmt.Sprintf("%d gemini key(s) in the pool", len(gemini.KeyStatuses)), nil
	})

	geminiHealthy := false
	env.Check(ctx, "ai_status", func(ctx context.Context) (string, error) {
		resp, err := env.Client.AIStatus(ctx)
		if err != nil {
			return "", err
		}
		healthy := resp.HealthyServices()
		if status, ok := resp.AIServices["gemini"]; ok && status.Healthy() {
			geminiHealthy = true
		}
		// Any well-formed report passes; individual providers being down is
		// the report working, not the endpoint failing
		return fmt.Sprintf("healthy services: %v", healthy), nil
	})
	if !geminiHealthy {
		// The bursts will likely fail for provider reasons; keep going so
		// the report says which ones
		logger.Warn("Gemini is not reporting healthy, burst checks may fail upstream", logger.Fields{
			"suite": "ratelimit",
		})
	}

	var projectID string
	created := env.Check(ctx, "create_project", func(ctx context.Context) (string, error) {
		resp, err := env.Client.CreateProject(ctx, &models.CreateProjectRequest{
			Title:          "AI Video Generation Test",
			Description:    "A test project for AI video generation with real AI services",
			UserID:         env.Cfg.QAUserID,
			SampleVideoURL: env.Cfg.SampleVideoURL,
		})
		if err != nil {
			return "", err
		}
		if !resp.Success || resp.Project == nil {
			return "", fmt.Errorf("project creation reported failure: %s", resp.Error)
		}
		projectID = resp.Project.ID
		return "created project " + projectID, nil
	})
	if !created {
		env.Skip("analyze_burst", "no project to work on")
		env.Skip("plan_burst", "no project to work on")
		env.Skip("chat_burst", "no project to work on")
		return fmt.Errorf("project creation failed, cannot run the burst checks")
	}

	env.Check(ctx, "analyze_burst", func(ctx context.Context) (string, error) {
		out := env.burst(ctx, burstSize, func(ctx context.Context) error {
			resp, err := env.Client.Analyze(ctx, projectID)
			if err != nil {
				return err
			}
			if !resp.Success {
				return fmt.Errorf("analysis reported failure: %s", resp.Error)
			}
			return nil
		})
		return out.evaluate(burstSize)
	})

	env.Check(ctx, "plan_burst", func(ctx context.Context) (string, error) {
		out := env.burst(ctx, burstSize, func(ctx context.Context) error {
			resp, err := env.Client.GeneratePlan(ctx, projectID,
				"Create a short promotional video with upbeat music and dynamic transitions. Make it suitable for social media.")
			if err != nil {
				return err
			}
			if !resp.Success || resp.Plan == nil {
				return fmt.Errorf("plan generation reported failure: %s", resp.Error)
			}
			if !resp.Plan.LooksGenerated() {
				return fmt.Errorf("plan response looks mocked: no segments or total_duration")
			}
			return nil
		})
		detail, err := out.evaluate(burstSize)
		if err != nil && client.IsAnalysisRequired(err) {
			return "", fmt.Errorf("project needs analysis before planning (analysis burst likely failed): %w", err)
		}
		return detail, err
	})

	env.Check(ctx, "chat_burst", func(ctx context.Context) (string, error) {
		out := env.burst(ctx, burstSize, func(ctx context.Context) error {
			resp, err := env.Client.Chat(ctx, &models.ChatRequest{
				ProjectID: projectID,
				Message:   "Can you make the video more energetic and add some vibrant colors?",
			})
			if err != nil {
				return err
			}
			if !resp.Success || resp.Response == "" {
				return fmt.Errorf("chat reported failure: %s", resp.Error)
			}
			return nil
		})
		detail, err := out.evaluate(burstSize)
		if err != nil && client.IsPlanRequired(err) {
			return "", fmt.Errorf("project needs a plan before chat (plan burst likely failed): %w", err)
		}
		return detail, err
	})

	return nil
}
