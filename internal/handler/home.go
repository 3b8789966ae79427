package handler

import (
	"net/http"

	"github.com/anumc/clubsite/internal/domain"
	"github.com/anumc/clubsite/internal/repo"
)

// homeResponse bundles everything the home page renders: announcements
// flagged for display (newest-first) and upcoming events (soonest first)
// with their availability text.
type homeResponse struct {
	Announcements []domain.Announcement `json:"announcements"`
	Events        []eventResponse       `json:"events"`
}

// Home handles GET /home.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	announcements, err := s.announcements.ListHome(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	events, err := s.events.List(r.Context(), repo.EventFilter{})
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := homeResponse{
		Announcements: announcements,
		Events:        make([]eventResponse, len(events)),
	}
	if resp.Announcements == nil {
		resp.Announcements = []domain.Announcement{}
	}
	for i, e := range events {
		resp.Events[i] = eventToResponse(e)
	}

	writeJSON(w, http.StatusOK, resp)
}
