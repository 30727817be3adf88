package suites

import (
	"context"
	"fmt"

	"github.com/reelforge/reelforge-qa/internal/database"
	"github.com/reelforge/reelforge-qa/internal/models"
)

// PlanFix reproduces the JSON-column regression: the backend stores
// generation plans and analysis results as JSON and must read them back
// as objects, not strings. The suite seeds a project directly in the
// database with known JSON content and then hits every endpoint that
// parses those columns.
func PlanFix() Suite {
	return Suite{
		Name:        "planfix",
		Description: "JSON plan/analysis column parsing through seeded fixtures",
		NeedsDB:     true,
		Run:         runPlanFix,
	}
}

func runPlanFix(ctx context.Context, env *Env) error {
	var projectID string
	seeded := env.Check(ctx, "seed_fixtures", func(ctx context.Context) (string, error) {
		id, err := database.SeedPlanFixtures(env.DB, env.Cfg.QAUserID, env.Cfg.SampleVideoURL)
		if err != nil {
			return "", err
		}
		projectID = id
		return "seeded fixture project " + id, nil
	})
	if !seeded {
		env.Skip("generate_plan_parses_analysis", "fixtures not seeded")
		env.Skip("chat_parses_plan", "fixtures not seeded")
		env.Skip("generate_video_parses_plan", "fixtures not seeded")
		return fmt.Errorf("fixture seeding failed, nothing to probe")
	}

	// These three endpoints all read the seeded JSON columns server side.
	// A backend that hands the raw string to its plan logic instead of
	// decoding it fails here with undefined-property style errors.
	env.Check(ctx, "generate_plan_parses_analysis", func(ctx context.Context) (string, error) {
		resp, err := env.Client.GeneratePlan(ctx, projectID,
			"Refresh the plan based on the stored analysis.")
		if err != nil {
			return "", fmt.Errorf("plan generation against seeded analysis failed: %w", err)
		}
		if !resp.Success || resp.Plan == nil {
			return "", fmt.Errorf("plan generation reported failure: %s", resp.Error)
		}
		if err := resp.Plan.Validate(); err != nil {
			return "", fmt.Errorf("returned plan is not usable: %w", err)
		}
		return fmt.Sprintf("plan regenerated with %d segment(s)", len(resp.Plan.Segments)), nil
	})

	env.Check(ctx, "chat_parses_plan", func(ctx context.Context) (string, error) {
		resp, err := env.Client.Chat(ctx, &models.ChatRequest{
			ProjectID: projectID,
			Message:   "Make the first segment a bit longer.",
		})
		if err != nil {
			return "", fmt.Errorf("chat against seeded plan failed: %w", err)
		}
		if !resp.Success || resp.Response == "" {
			return "", fmt.Errorf("chat reported failure: %s", resp.Error)
		}
		return "chat read the stored plan and responded", nil
	})

	env.Check(ctx, "generate_video_parses_plan", func(ctx context.Context) (string, error) {
		// No plan in the request body: the backend must fall back to the
		// seeded generation_plan column and decode it
		resp, err := env.Client.GenerateVideo(ctx, projectID, nil)
		if err != nil {
			return "", fmt.Errorf("render from seeded plan failed: %w", err)
		}
		if !resp.Success || resp.JobID == "" {
			return "", fmt.Errorf("render did not start: %s", resp.Error)
		}
		return "render started from the stored plan, job " + resp.JobID, nil
	})

	return nil
}
