package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anumc/clubsite/internal/domain"
	"github.com/anumc/clubsite/internal/middleware"
)

// signupRequest is the sign-up form payload. The target event comes from the
// URL, never from the body, so a submitter cannot attach the signup to an
// arbitrary event. Blank name/email are pre-filled from the caller's profile.
type signupRequest struct {
	FullName   string `json:"full_name,omitempty"`
	Email      string `json:"email,omitempty"`
	Experience string `json:"experience,omitempty"`
}

// CreateSignup handles POST /events/{slug}/signups.
func (s *Server) CreateSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		requestError(w, "request body is not valid JSON: "+err.Error())
		return
	}

	slug := chi.URLParam(r, "slug")
	created, err := s.signups.Create(r.Context(), middleware.CallerFrom(r.Context()), slug, domain.Signup{
		FullName:   req.FullName,
		Email:      req.Email,
		Experience: req.Experience,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/events/"+slug)
	writeJSON(w, http.StatusCreated, created)
}

// ListSignups handles GET /events/{slug}/signups.
// Only the event's creator or staff may see the list; everyone else gets an
// explicit 403, never an empty list.
func (s *Server) ListSignups(w http.ResponseWriter, r *http.Request) {
	signups, err := s.signups.ListForEvent(r.Context(), middleware.CallerFrom(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if signups == nil {
		signups = []domain.Signup{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": signups})
}
