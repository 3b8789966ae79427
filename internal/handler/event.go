package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/anumc/clubsite/internal/domain"
	"github.com/anumc/clubsite/internal/middleware"
	"github.com/anumc/clubsite/internal/repo"
)

// eventRequest is the trip-creation/edit form payload.
// The slug is optional; when absent it is derived from the title.
type eventRequest struct {
	Title                   string                    `json:"title"`
	Slug                    string                    `json:"slug,omitempty"`
	Category                domain.Category           `json:"category,omitempty"`
	Description             string                    `json:"description"`
	MeetingDatetime         *time.Time                `json:"meeting_datetime,omitempty"`
	MeetingLocation         string                    `json:"meeting_location,omitempty"`
	EmergencyContactDetails string                    `json:"emergency_contact_details,omitempty"`
	RegistrationMethod      domain.RegistrationMethod `json:"registration_method,omitempty"`
	TripCapacity            int                       `json:"trip_capacity,omitempty"`
	TripLocation            string                    `json:"trip_location"`
	StartDatetime           time.Time                 `json:"start_datetime"`
	EndDatetime             time.Time                 `json:"end_datetime"`
	DifficultyLevel         domain.Difficulty         `json:"difficulty_level,omitempty"`
	EstimatedCosts          string                    `json:"estimated_costs,omitempty"`
	RequestedInformation    string                    `json:"requested_information,omitempty"`
	IncludePriorExperience  bool                      `json:"include_prior_experience_checkbox,omitempty"`
	RegularRecurring        bool                      `json:"regular_recurring,omitempty"`
	ApprovalStatus          domain.ApprovalStatus     `json:"approval_status,omitempty"`
	Comment                 string                    `json:"comment,omitempty"`
	ContactDetails          string                    `json:"contact_details"`
	FitnessRequired         string                    `json:"fitness_required,omitempty"`
	ExperienceRequired      string                    `json:"experience_required,omitempty"`
	SpotsTotal              int                       `json:"spots_total,omitempty"`
	SpotsAvailable          int                       `json:"spots_available,omitempty"`
}

// eventResponse is an event plus the derived display values the rendering
// layer consumes verbatim.
type eventResponse struct {
	domain.Event
	IsFull       bool   `json:"is_full"`
	SpotsDisplay string `json:"spots_display"`
}

// eventToResponse attaches the derived capacity values to an event.
func eventToResponse(e domain.Event) eventResponse {
	return eventResponse{Event: e, IsFull: e.IsFull(), SpotsDisplay: e.SpotsDisplay()}
}

// requestToEvent converts the form payload into a domain.Event.
func requestToEvent(req eventRequest) domain.Event {
	return domain.Event{
		Title:                   req.Title,
		Slug:                    req.Slug,
		Category:                req.Category,
		Description:             req.Description,
		MeetingDatetime:         req.MeetingDatetime,
		MeetingLocation:         req.MeetingLocation,
		EmergencyContactDetails: req.EmergencyContactDetails,
		RegistrationMethod:      req.RegistrationMethod,
		TripCapacity:            req.TripCapacity,
		TripLocation:            req.TripLocation,
		StartDatetime:           req.StartDatetime,
		EndDatetime:             req.EndDatetime,
		DifficultyLevel:         req.DifficultyLevel,
		EstimatedCosts:          req.EstimatedCosts,
		RequestedInformation:    req.RequestedInformation,
		IncludePriorExperience:  req.IncludePriorExperience,
		RegularRecurring:        req.RegularRecurring,
		ApprovalStatus:          req.ApprovalStatus,
		Comment:                 req.Comment,
		ContactDetails:          req.ContactDetails,
		FitnessRequired:         req.FitnessRequired,
		ExperienceRequired:      req.ExperienceRequired,
		SpotsTotal:              req.SpotsTotal,
		SpotsAvailable:          req.SpotsAvailable,
	}
}

// CreateEvent handles POST /events.
// On success it answers 201 with the created event and a Location header
// pointing at the detail view.
func (s *Server) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		requestError(w, "request body is not valid JSON: "+err.Error())
		return
	}

	created, err := s.events.Create(r.Context(), middleware.CallerFrom(r.Context()), requestToEvent(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/events/"+created.Slug)
	writeJSON(w, http.StatusCreated, eventToResponse(created))
}

// ListEvents handles GET /events.
// Supports ?category= and ?approval_status= filters; events are ordered by
// start time ascending.
func (s *Server) ListEvents(w http.ResponseWriter, r *http.Request) {
	f := repo.EventFilter{
		Category:       domain.Category(r.URL.Query().Get("category")),
		ApprovalStatus: domain.ApprovalStatus(r.URL.Query().Get("approval_status")),
	}

	events, err := s.events.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]eventResponse, len(events))
	for i, e := range events {
		data[i] = eventToResponse(e)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// GetEvent handles GET /events/{slug}.
func (s *Server) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.events.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eventToResponse(event))
}

// UpdateEvent handles PUT /events/{slug}, a re-submission of the trip form.
func (s *Server) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		requestError(w, "request body is not valid JSON: "+err.Error())
		return
	}

	updated, err := s.events.Update(r.Context(), middleware.CallerFrom(r.Context()), chi.URLParam(r, "slug"), requestToEvent(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eventToResponse(updated))
}
