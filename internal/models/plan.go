package models

import "fmt"

// GenerationPlan mirrors the plan JSON produced by the planning endpoint
// and stored in the projects.generation_plan column
type GenerationPlan struct {
	PlanSummary   string         `json:"plan_summary,omitempty"`
	TotalDuration float64        `json:"total_duration"`
	Segments      []PlanSegment  `json:"segments"`
	Transitions   []Transition   `json:"transitions,omitempty"`
	AudioStrategy *AudioStrategy `json:"audio_strategy,omitempty"`
}

// PlanSegment describes one AI-rendered clip of the final video
type PlanSegment struct {
	SegmentNumber int     `json:"segment_number"`
	Duration      float64 `json:"duration"`
	Description   string  `json:"description"`
	VisualStyle   string  `json:"visual_style,omitempty"`
	AIModel       string  `json:"ai_model"` // e.g. "runway-gen4", "google-veo-3"
	Prompt        string  `json:"prompt"`
	TextOverlay   string  `json:"text_overlay,omitempty"`
	AudioNotes    string  `json:"audio_notes,omitempty"`
}

// Transition describes how two adjacent segments are joined
type Transition struct {
	BetweenSegments string `json:"between_segments"` // "1-2"
	Type            string `json:"type"`             // "fade", "cut", ...
	Description     string `json:"description,omitempty"`
}

// AudioStrategy describes the soundtrack for the rendered video
type AudioStrategy struct {
	Type              string   `json:"type"` // "generated", "uploaded", "none"
	Description       string   `json:"description,omitempty"`
	VoiceRequirements string   `json:"voice_requirements,omitempty"`
	BackgroundMusic   string   `json:"background_music,omitempty"`
	SoundEffects      []string `json:"sound_effects,omitempty"`
}

// Validate checks the structural invariants every usable plan must satisfy.
// The render pipeline reads total_duration and iterates segments, so a plan
// missing either is the exact shape that used to crash video generation.
func (p *GenerationPlan) Validate() error {
	if p.TotalDuration <= 0 {
		return fmt.Errorf("plan total_duration must be positive, got %v", p.TotalDuration)
	}
	if len(p.Segments) == 0 {
		return fmt.Errorf("plan has no segments")
	}
	for i, seg := range p.Segments {
		if seg.Duration <= 0 {
			return fmt.Errorf("segment %d has non-positive duration %v", i+1, seg.Duration)
		}
		if seg.Prompt == "" {
			return fmt.Errorf("segment %d has an empty prompt", i+1)
		}
	}
	return nil
}

// SegmentsDuration returns the summed duration of all segments
func (p *GenerationPlan) SegmentsDuration() float64 {
	var total float64
	for _, seg := range p.Segments {
		total += seg.Duration
	}
	return total
}

// LooksGenerated reports whether the plan has the structure real model
// output carries, as opposed to a mocked or truncated response
func (p *GenerationPlan) LooksGenerated() bool {
	return len(p.Segments) > 0 && p.TotalDuration > 0
}

// SamplePlan returns the two-segment fixture plan the harness submits to
// the render endpoint and seeds into the database
func SamplePlan() *GenerationPlan {
	return &GenerationPlan{
		PlanSummary:   "Short promotional video with upbeat music and dynamic transitions",
		TotalDuration: 30,
		Segments: []PlanSegment{
			{
				SegmentNumber: 1,
				Duration:      15,
				Description:   "Opening scene",
				VisualStyle:   "Bright and dynamic",
				AIModel:       "runway-gen4",
				Prompt:        "A vibrant opening scene with dynamic lighting",
				TextOverlay:   "Welcome",
				AudioNotes:    "Upbeat music",
			},
			{
				SegmentNumber: 2,
				Duration:      15,
				Description:   "Closing scene",
				VisualStyle:   "Professional and clean",
				AIModel:       "google-veo-3",
				Prompt:        "A professional closing with brand elements",
				TextOverlay:   "Thank You",
				AudioNotes:    "Fade out music",
			},
		},
		Transitions: []Transition{
			{
				BetweenSegments: "1-2",
				Type:            "fade",
				Description:     "Smooth fade transition",
			},
		},
		AudioStrategy: &AudioStrategy{
			Type:              "generated",
			Description:       "Upbeat background music",
			VoiceRequirements: "Professional narrator",
			BackgroundMusic:   "Upbeat electronic",
			SoundEffects:      []string{"whoosh", "fade"},
		},
	}
}

// MinimalPlan returns the smallest plan the render endpoint accepts,
// used by the smoke suite
func MinimalPlan() *GenerationPlan {
	return &GenerationPlan{
		TotalDuration: 15,
		Segments: []PlanSegment{
			{
				SegmentNumber: 1,
				Duration:      15,
				Description:   "Opening scene",
				AIModel:       "runway-gen4",
				Prompt:        "A sleek product reveal",
			},
		},
	}
}
