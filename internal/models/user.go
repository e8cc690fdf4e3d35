package models

import "time"

// Plan tiers assigned to accounts.
const (
	PlanFree = "free"
)

// User is an account record. The password hash is stored for local
// credential checks and never serialized into responses.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	PlanType     string    `json:"plan_type"`
	CreatedAt    time.Time `json:"created_at"`
}
