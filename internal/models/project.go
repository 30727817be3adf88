package models

import "time"

// Project is the external application's unit of work: one video-generation
// request from title to rendered clip
type Project struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	SampleVideoURL string     `json:"sample_video_url,omitempty"`
	Status         string     `json:"status,omitempty"` // "created", "analyzed", "plan_ready", "rendering", "completed"
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// CreateProjectRequest is the payload for POST /projects
type CreateProjectRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	UserID         string `json:"userId"`
	SampleVideoURL string `json:"sampleVideoUrl,omitempty"`
	MockData       bool   `json:"mockData,omitempty"`
}

// ChatRequest is the payload for POST /chat
type ChatRequest struct {
	ProjectID   string        `json:"projectId"`
	Message     string        `json:"message"`
	ChatHistory []ChatMessage `json:"chatHistory"`
}

// ChatMessage is one prior turn of the plan-editing conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
