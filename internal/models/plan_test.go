package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationPlanValidate(t *testing.T) {
	tests := []struct {
		name    string
		plan    GenerationPlan
		wantErr string
	}{
		{
			name: "valid single segment",
			plan: GenerationPlan{
				TotalDuration: 15,
				Segments: []PlanSegment{
					{SegmentNumber: 1, Duration: 15, Prompt: "A product reveal"},
				},
			},
		},
		{
			name:    "zero total duration",
			plan:    GenerationPlan{Segments: []PlanSegment{{Duration: 15, Prompt: "x"}}},
			wantErr: "total_duration",
		},
		{
			name:    "negative total duration",
			plan:    GenerationPlan{TotalDuration: -30, Segments: []PlanSegment{{Duration: 15, Prompt: "x"}}},
			wantErr: "total_duration",
		},
		{
			name:    "no segments",
			plan:    GenerationPlan{TotalDuration: 30},
			wantErr: "no segments",
		},
		{
			name: "segment with zero duration",
			plan: GenerationPlan{
				TotalDuration: 30,
				Segments:      []PlanSegment{{SegmentNumber: 1, Duration: 0, Prompt: "x"}},
			},
			wantErr: "non-positive duration",
		},
		{
			name: "segment with empty prompt",
			plan: GenerationPlan{
				TotalDuration: 30,
				Segments:      []PlanSegment{{SegmentNumber: 1, Duration: 15}},
			},
			wantErr: "empty prompt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSamplePlanIsValid(t *testing.T) {
	plan := SamplePlan()

	require.NoError(t, plan.Validate())
	assert.True(t, plan.LooksGenerated())
	assert.Len(t, plan.Segments, 2)
	assert.Equal(t, plan.TotalDuration, plan.SegmentsDuration())
}

func TestMinimalPlanIsValid(t *testing.T) {
	plan := MinimalPlan()

	require.NoError(t, plan.Validate())
	assert.Len(t, plan.Segments, 1)
}

func TestGenerationPlanJSONShape(t *testing.T) {
	// The stored column and the API payload share this exact shape, so the
	// field names are load bearing
	encoded, err := json.Marshal(SamplePlan())
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &raw))

	assert.Contains(t, raw, "total_duration")
	assert.Contains(t, raw, "segments")
	assert.Contains(t, raw, "audio_strategy")

	segments, ok := raw["segments"].([]interface{})
	require.True(t, ok)
	first, ok := segments[0].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, first, "segment_number")
	assert.Contains(t, first, "ai_model")
	assert.Contains(t, first, "prompt")
}

func TestLooksGenerated(t *testing.T) {
	empty := &GenerationPlan{}
	assert.False(t, empty.LooksGenerated())

	noDuration := &GenerationPlan{Segments: []PlanSegment{{Duration: 10, Prompt: "x"}}}
	assert.False(t, noDuration.LooksGenerated())

	assert.True(t, SamplePlan().LooksGenerated())
}
