package models

// Render job statuses reported by the progress endpoint
const (
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// JobProgress mirrors GET /jobs/{id}/progress
type JobProgress struct {
	JobID        string  `json:"job_id"`
	Status       string  `json:"status"`
	Progress     float64 `json:"progress"` // 0-100
	CurrentStep  string  `json:"current_step,omitempty"`
	VideoURL     string  `json:"video_url,omitempty"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

// Terminal reports whether the job has finished, successfully or not
func (j *JobProgress) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// AIServiceStatus is one entry of the ai-status report
type AIServiceStatus struct {
	Status  string `json:"status"` // "healthy" or an error state
	Message string `json:"message,omitempty"`
}

// Healthy reports whether the service passed its liveness probe
func (s AIServiceStatus) Healthy() bool {
	return s.Status == "healthy"
}

// RateLimitReport mirrors the data envelope of GET /rate-limit-status
type RateLimitReport struct {
	Services []ServiceKeys `json:"services"`
}

// ServiceKeys reports the key pool of one upstream AI service
type ServiceKeys struct {
	ServiceName string      `json:"serviceName"`
	KeyStatuses []KeyStatus `json:"keyStatuses"`
}

// KeyStatus reports quota state for a single API key in the pool
type KeyStatus struct {
	KeyID             string `json:"keyId"`
	RequestsUsed      int    `json:"requestsUsed"`
	RequestsRemaining int    `json:"requestsRemaining"`
	ResetAt           string `json:"resetAt,omitempty"`
	Exhausted         bool   `json:"exhausted"`
}

// Service returns the entry for the named service, or nil
func (r *RateLimitReport) Service(name string) *ServiceKeys {
	for i := range r.Services {
		if r.Services[i].ServiceName == name {
			return &r.Services[i]
		}
	}
	return nil
}
