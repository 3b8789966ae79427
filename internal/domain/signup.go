package domain

import (
	"time"

	"github.com/google/uuid"
)

// Signup is a participation request tied to exactly one Event.
//
// The (EventID, Email) pair is unique: a second sign-up from the same email
// to the same event is rejected, not upserted. Signups are ordered by
// CreatedAt ascending so first-come-first-served order is preserved for
// FCFS trips. Signups cascade-delete with their event and are never mutated
// after creation.
type Signup struct {
	ID         uuid.UUID  `json:"id"`
	EventID    uuid.UUID  `json:"event_id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"` // the submitting account, when authenticated
	FullName   string     `json:"full_name"`
	Email      string     `json:"email"`
	Experience string     `json:"experience,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
