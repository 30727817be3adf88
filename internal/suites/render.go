package suites

import (
	"context"
	"fmt"
	"strings"

	"github.com/reelforge/reelforge-qa/internal/client"
	"github.com/reelforge/reelforge-qa/internal/database"
)

// Render is the narrowest regression suite: confirm the stored fixture plan
// is intact, then kick off a render without an inline plan. The historical
// failure mode was the backend choking on its own generation_plan column
// with "Cannot read properties of undefined (reading 'total_duration')",
// so a clean upstream failure still counts as the parse path working.
func Render() Suite {
	return Suite{
		Name:        "render",
		Description: "video rendering from the stored generation plan",
		NeedsDB:     true,
		Run:         runRender,
	}
}

func runRender(ctx context.Context, env *Env) error {
	verified := env.Check(ctx, "verify_fixtures", func(ctx context.Context) (string, error) {
		state, err := database.VerifyPlanFixtures(env.DB, database.FixtureProjectID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("stored plan: %.0fs total, %d segment(s)",
			state.Plan.TotalDuration, len(state.Plan.Segments)), nil
	})
	if !verified {
		env.Skip("generate_video_stored_plan", "fixture plan not verified, run the planfix suite or `db seed` first")
		env.Skip("render_history", "fixture plan not verified")
		return fmt.Errorf("fixture verification failed")
	}

	env.Check(ctx, "generate_video_stored_plan", func(ctx context.Context) (string, error) {
		resp, err := env.Client.GenerateVideo(ctx, database.FixtureProjectID, nil)
		if err != nil {
			if isPlanParseError(err) {
				return "", fmt.Errorf("backend failed to parse its stored plan: %w", err)
			}
			if client.StatusCodeOf(err) >= 500 {
				// The plan was read fine and the failure happened calling
				// the AI providers, which is outside this suite's scope
				return "render rejected upstream after the plan parsed: " + err.Error(), nil
			}
			return "", err
		}
		if !resp.Success {
			if strings.Contains(resp.Error, "total_duration") {
				return "", fmt.Errorf("backend failed to parse its stored plan: %s", resp.Error)
			}
			if strings.Contains(resp.Error, "Failed to start video generation") {
				return "render rejected upstream after the plan parsed: " + resp.Error, nil
			}
			return "", fmt.Errorf("render did not start: %s", resp.Error)
		}
		return "render started, job " + resp.JobID, nil
	})

	// Read the render table directly: when renders fail, error_message is
	// where the backend records why, and a missing column here means the
	// schema patch never ran
	env.Check(ctx, "render_history", func(ctx context.Context) (string, error) {
		rows, err := database.RenderOutcomes(env.DB, database.FixtureProjectID)
		if err != nil {
			return "", err
		}
		if len(rows) == 0 {
			return "no render rows yet for the fixture project", nil
		}
		latest := rows[0]
		if latest.ErrorMessage != "" {
			return fmt.Sprintf("%d render row(s), latest %s: %s",
				len(rows), latest.Status, latest.ErrorMessage), nil
		}
		return fmt.Sprintf("%d render row(s), latest status %s", len(rows), latest.Status), nil
	})

	return nil
}

// isPlanParseError recognizes the JSON-column regression in any of the
// shapes the backend has reported it
func isPlanParseError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "total_duration") ||
		strings.Contains(msg, "Cannot read properties of undefined")
}
