package models

import "time"

// Project statuses.
const (
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
)

// Project is a user-owned workspace for media processing runs.
type Project struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"` // active | archived
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Transcription is a stored transcription result attached to a project.
type Transcription struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	Language       string    `json:"language"`
	FileName       string    `json:"file_name,omitempty"`
	TranscriptText string    `json:"transcript_text,omitempty"`
	SRTContent     string    `json:"srt_content,omitempty"`
	DurationSec    float64   `json:"duration,omitempty"`
	Status         string    `json:"status"` // pending | completed
	CreatedAt      time.Time `json:"created_at"`
}
