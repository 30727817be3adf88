package models

// AnalysisResult mirrors the JSON the analysis endpoint returns and the
// projects.analysis_result column stores
type AnalysisResult struct {
	VisualStyle      string            `json:"visual_style,omitempty"`
	ContentAnalysis  *ContentAnalysis  `json:"content_analysis,omitempty"`
	TechnicalDetails *TechnicalDetails `json:"technical_details,omitempty"`
	Recommendations  *Recommendations  `json:"recommendations,omitempty"`
}

// ContentAnalysis summarizes what the model saw in the sample video
type ContentAnalysis struct {
	MainSubjects []string `json:"main_subjects,omitempty"`
	ColorPalette []string `json:"color_palette,omitempty"`
	Mood         string   `json:"mood,omitempty"`
}

// TechnicalDetails carries the measured properties of the sample video
type TechnicalDetails struct {
	Duration   float64 `json:"duration,omitempty"`
	Resolution string  `json:"resolution,omitempty"`
	FPS        int     `json:"fps,omitempty"`
}

// Recommendations carries the model's suggestions for the generated video
type Recommendations struct {
	TargetDuration float64 `json:"target_duration,omitempty"`
	SuggestedStyle string  `json:"suggested_style,omitempty"`
}

// LooksGenerated reports whether the analysis carries the fields real
// model output includes - a mocked response typically has neither
func (a *AnalysisResult) LooksGenerated() bool {
	return a.VisualStyle != "" || a.ContentAnalysis != nil
}

// SampleAnalysis returns the fixture analysis seeded into the database
func SampleAnalysis() *AnalysisResult {
	return &AnalysisResult{
		VisualStyle: "Modern and dynamic",
		ContentAnalysis: &ContentAnalysis{
			MainSubjects: []string{"product", "branding"},
			ColorPalette: []string{"blue", "white", "gray"},
			Mood:         "professional",
		},
		TechnicalDetails: &TechnicalDetails{
			Duration:   45,
			Resolution: "1920x1080",
			FPS:        30,
		},
		Recommendations: &Recommendations{
			TargetDuration: 30,
			SuggestedStyle: "upbeat and engaging",
		},
	}
}
