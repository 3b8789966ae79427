package domain

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is a short message displayed on the home page.
// Announcements have no relationships and are listed newest-first.
type Announcement struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	DisplayOnHome bool      `json:"display_on_home"`
	CreatedAt     time.Time `json:"created_at"` // set once at creation, immutable
}
