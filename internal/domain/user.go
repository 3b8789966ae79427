package domain

import (
	"time"

	"github.com/google/uuid"
)

// User holds account credentials and authorization flags.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"` // unique
	DisplayName  string    `json:"display_name,omitempty"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileName returns the name the user's profile should carry: the display
// name when set, the username otherwise.
func (u User) ProfileName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// Caller identifies the authenticated account behind a request.
// A nil *Caller means the request is anonymous. Services receive the caller
// from the HTTP layer; they never parse tokens themselves.
type Caller struct {
	ID       uuid.UUID
	Username string
	IsStaff  bool // staff or superuser
}

// Profile holds the extended attributes of a User not stored on the
// credential record. Every user has exactly one profile, created when the
// account is created and refreshed whenever the account is saved.
type Profile struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"` // unique, cascade-deletes with the user
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
