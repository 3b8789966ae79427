package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/anumc/clubsite/internal/domain"
	"github.com/anumc/clubsite/internal/middleware"
)

// announcementRequest is the create/edit payload for announcements.
type announcementRequest struct {
	Title         string `json:"title"`
	Body          string `json:"body"`
	DisplayOnHome *bool  `json:"display_on_home,omitempty"` // defaults to true
}

func requestToAnnouncement(req announcementRequest) domain.Announcement {
	a := domain.Announcement{Title: req.Title, Body: req.Body, DisplayOnHome: true}
	if req.DisplayOnHome != nil {
		a.DisplayOnHome = *req.DisplayOnHome
	}
	return a
}

// ListAnnouncements handles GET /announcements, the administrative list
// surface. Supports ?display_on_home=, ?page=, and ?limit=.
func (s *Server) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var onHome *bool
	if v := q.Get("display_on_home"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			requestError(w, "display_on_home must be a boolean")
			return
		}
		onHome = &b
	}

	items, total, err := s.announcements.List(r.Context(), middleware.CallerFrom(r.Context()), onHome, paginationFromQuery(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if items == nil {
		items = []domain.Announcement{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": items, "total": total})
}

// CreateAnnouncement handles POST /announcements (staff only).
func (s *Server) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req announcementRequest
	if err := decodeJSON(r, &req); err != nil {
		requestError(w, "request body is not valid JSON: "+err.Error())
		return
	}

	created, err := s.announcements.Create(r.Context(), middleware.CallerFrom(r.Context()), requestToAnnouncement(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateAnnouncement handles PUT /announcements/{id} (staff only).
func (s *Server) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		requestError(w, "id must be a UUID")
		return
	}

	var req announcementRequest
	if err := decodeJSON(r, &req); err != nil {
		requestError(w, "request body is not valid JSON: "+err.Error())
		return
	}

	a := requestToAnnouncement(req)
	a.ID = id

	updated, err := s.announcements.Update(r.Context(), middleware.CallerFrom(r.Context()), a)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteAnnouncement handles DELETE /announcements/{id} (staff only).
func (s *Server) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		requestError(w, "id must be a UUID")
		return
	}

	if err := s.announcements.Delete(r.Context(), middleware.CallerFrom(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// paginationFromQuery reads optional ?page= and ?limit= query parameters.
func paginationFromQuery(r *http.Request) domain.PaginationParams {
	var page, limit *int
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = &v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = &v
	}
	return domain.NewPaginationParams(page, limit)
}
