package models

import "time"

// Activity action names recorded by the media endpoints.
const (
	ActionTranscription = "transcription"
	ActionTranslation   = "translation"
	ActionVoiceover     = "voiceover"
)

// ActivityEntry is an audit row appended after each media-processing call.
// Writes are best-effort; a failed append is logged and never surfaced.
type ActivityEntry struct {
	Email      string    `json:"email"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"timestamp"`
}
