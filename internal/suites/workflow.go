package suites

import (
	"context"
	"fmt"
	"time"

	"github.com/reelforge/reelforge-qa/internal/models"
)

// Workflow walks the full pipeline in order: create, analyze, plan, edit
// the plan in chat, render, poll the job to a terminal state
func Workflow() Suite {
	return Suite{
		Name:        "workflow",
		Description: "complete create, analyze, plan, chat, render walk",
		Run:         runWorkflow,
	}
}

func runWorkflow(ctx context.Context, env *Env) error {
	var projectID string
	created := env.Check(ctx, "create_project", func(ctx context.Context) (string, error) {
		resp, err := env.Client.CreateProject(ctx, &models.CreateProjectRequest{
			Title:          "AI Video Generation Workflow",
			Description:    "End-to-end workflow run against real AI services",
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
		env.Skip("analyze", "no project to work on")
		env.Skip("generate_plan", "no project to work on")
		env.Skip("chat", "no project to work on")
		env.Skip("generate_video", "no project to work on")
		env.Skip("job_progress", "no project to work on")
		return fmt.Errorf("project creation failed, cannot continue the workflow")
	}

	// Analysis failures don't abort: the later steps are exactly where the
	// stored-column parsing used to break, and they deserve their own verdict
	env.Check(ctx, "analyze", func(ctx context.Context) (string, error) {
		resp, err := env.Client.Analyze(ctx, projectID)
		if err != nil {
			return "", err
		}
		if !resp.Success || resp.Analysis == nil {
			return "", fmt.Errorf("analysis reported failure: %s", resp.Error)
		}
		if !resp.Analysis.LooksGenerated() {
			return "analysis succeeded but looks mocked (no visual_style or content_analysis)", nil
		}
		return "model analysis received", nil
	})

	env.Check(ctx, "generate_plan", func(ctx context.Context) (string, error) {
		resp, err := env.Client.GeneratePlan(ctx, projectID,
			"Create a short promotional video with upbeat music and dynamic transitions")
		if err != nil {
			return "", err
		}
		if !resp.Success || resp.Plan == nil {
			return "", fmt.Errorf("plan generation reported failure: %s", resp.Error)
		}
		if err := resp.Plan.Validate(); err != nil {
			return "", fmt.Errorf("generated plan is not usable: %w", err)
		}
		return fmt.Sprintf("plan: %d segment(s), total %v seconds",
			len(resp.Plan.Segments), resp.Plan.TotalDuration), nil
	})

	env.Check(ctx, "chat", func(ctx context.Context) (string, error) {
		resp, err := env.Client.Chat(ctx, &models.ChatRequest{
			ProjectID: projectID,
			Message:   "Can you make the video more energetic and add vibrant colors?",
		})
		if err != nil {
			return "", err
		}
		if !resp.Success || resp.Response == "" {
			return "", fmt.Errorf("chat reported failure: %s", resp.Error)
		}
		return fmt.Sprintf("reply of %d chars, plan_updated=%t", len(resp.Response), resp.PlanUpdated), nil
	})

	var jobID string
	started := env.Check(ctx, "generate_video", func(ctx context.Context) (string, error) {
		resp, err := env.Client.GenerateVideo(ctx, projectID, models.SamplePlan())
		if err != nil {
			return "", err
		}
		if !resp.Success || resp.JobID == "" {
			return "", fmt.Errorf("render start reported failure: %s", resp.Error)
		}
		jobID = resp.JobID
		return "render job " + jobID, nil
	})
	if !started {
		env.Skip("job_progress", "no render job to poll")
		return nil
	}

	env.Check(ctx, "job_progress", func(ctx context.Context) (string, error) {
		return pollJob(ctx, env, jobID)
	})

	return nil
}

// pollJob polls the progress endpoint until the job reaches a terminal
// state or the configured deadline passes
func pollJob(ctx context.Context, env *Env, jobID string) (string, error) {
	deadline := time.Now().Add(env.Cfg.ProgressDeadline)

	for {
		progress, err := env.Client.JobProgress(ctx, jobID)
		if err != nil {
			return "", err
		}

		switch progress.Status {
		case models.JobStatusCompleted:
			if progress.VideoURL == "" {
				return "", fmt.Errorf("job completed without a video_url")
			}
			return "completed: " + progress.VideoURL, nil
		case models.JobStatusFailed:
			return "", fmt.Errorf("render failed: %s", progress.ErrorMessage)
		}

		if time.Now().After(deadline) {
			return "", fmt.Errorf("job %s still %s (%.0f%%) after %v",
				jobID, progress.Status, progress.Progress, env.Cfg.ProgressDeadline)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(env.Cfg.ProgressPoll):
		}
	}
}
