package suites

import (
	"context"
	"fmt"
	"net/http"

	"github.com/reelforge/reelforge-qa/internal/models"
)

// Smoke hits every endpoint once with undemanding inputs. It answers "is
// the deployment up and wired together", not "is the output good".
func Smoke() Suite {
	return Suite{
		Name:        "smoke",
		Description: "one pass over every endpoint",
		Run:         runSmoke,
	}
}

func runSmoke(ctx context.Context, env *Env) error {
	env.Check(ctx, "status", func(ctx context.Context) (string, error) {
		body, err := env.Client.Status(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("status fields: %d", len(body)), nil
	})

	env.Check(ctx, "test_db", func(ctx context.Context) (string, error) {
		_, err := env.Client.TestDB(ctx)
		return "", err
	})

	env.Check(ctx, "list_projects", func(ctx context.Context) (string, error) {
		resp, err := env.Client.ListProjects(ctx, env.Cfg.QAUserID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d project(s) for QA user", len(resp.Projects)), nil
	})

	var projectID string
	created := env.Check(ctx, "create_project", func(ctx context.Context) (string, error) {
		resp, err := env.Client.CreateProject(ctx, &models.CreateProjectRequest{
			Title:          "Smoke Test Project",
			Description:    "A test project",
			UserID:         env.Cfg.QAUserID,
			SampleVideoURL: env.Cfg.SampleVideoURL,
			MockData:       true,
		})
		if err != nil {
			return "", err
		}
		if !resp.Success || resp.Project == nil {
			return "", fmt.Errorf("project creation reported failure: %s", resp.Error)
		}
		projectID = resp.Project.ID
		return "created project " + resp.Project.ID, nil
	})
	if !created {
		return fmt.Errorf("project creation failed, cannot smoke the pipeline endpoints")
	}

	env.Check(ctx, "analyze", func(ctx context.Context) (string, error) {
		resp, err := env.Client.Analyze(ctx, projectID)
		if err != nil {
			return "", err
		}
		if !resp.Success {
			return "", fmt.Errorf("analysis reported failure: %s", resp.Error)
		}
		return "", nil
	})

	env.Check(ctx, "generate_plan", func(ctx context.Context) (string, error) {
		resp, err := env.Client.GeneratePlan(ctx, projectID, "Create a short promotional video")
		if err != nil {
			return "", err
		}
		if !resp.Success || resp.Plan == nil {
			return "", fmt.Errorf("plan generation reported failure: %s", resp.Error)
		}
		return fmt.Sprintf("plan with %d segment(s)", len(resp.Plan.Segments)), nil
	})

	env.Check(ctx, "chat", func(ctx context.Context) (string, error) {
		resp, err := env.Client.Chat(ctx, &models.ChatRequest{
			ProjectID: projectID,
			Message:   "Can you make the video more energetic?",
		})
		if err != nil {
			return "", err
		}
		if !resp.Success {
			return "", fmt.Errorf("chat reported failure: %s", resp.Error)
		}
		return "", nil
	})

	env.Check(ctx, "generate_video", func(ctx context.Context) (string, error) {
		resp, err := env.Client.GenerateVideo(ctx, projectID, models.MinimalPlan())
		if err != nil {
			return "", err
		}
		if !resp.Success || resp.JobID == "" {
			return "", fmt.Errorf("render start reported failure: %s", resp.Error)
		}
		return "job " + resp.JobID, nil
	})

	env.Check(ctx, "unknown_endpoint", func(ctx context.Context) (string, error) {
		code, err := env.Client.Probe(ctx, "/nonexistent-endpoint")
		if err != nil {
			return "", err
		}
		if code != http.StatusNotFound {
			return "", fmt.Errorf("expected 404 for unknown endpoint, got %d", code)
		}
		return "", nil
	})

	return nil
}
