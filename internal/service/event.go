// Package service contains the business logic for the club site backend.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here; services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"

	"github.com/anumc/clubsite/internal/domain"
	"github.com/anumc/clubsite/internal/repo"
)

// EventService implements business logic for Event (trip) operations:
// slug assignment, structural validation, and enum defaulting.
type EventService struct {
	events repo.EventRepo
}

// NewEventService constructs an EventService backed by the provided EventRepo.
func NewEventService(events repo.EventRepo) *EventService {
	return &EventService{events: events}
}

// Create validates and persists a new event on behalf of caller.
//
// When no slug is supplied one is derived from the title. The derivation is
// not locking: if the derived or supplied slug collides with an existing
// event, the repo reports the unique-constraint failure as a validation
// error and nothing is persisted. ApprovalStatus defaults to pending.
func (s *EventService) Create(ctx context.Context, caller *domain.Caller, event domain.Event) (domain.Event, error) {
	if caller == nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w", domain.ErrUnauthenticated)
	}

	applyEventDefaults(&event)
	if err := validateEvent(event); err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w", err)
	}

	if event.Slug == "" {
		event.Slug = domain.Slugify(event.Title)
	} else if domain.Slugify(event.Slug) != event.Slug {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w: slug must be lowercase letters, digits, and hyphens", domain.ErrValidation)
	}
	if event.Slug == "" {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w: a slug could not be derived from the title", domain.ErrValidation)
	}

	id := caller.ID
	event.CreatedBy = &id

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return domain.Event{}, err
	}
	return created, nil
}

// GetBySlug returns a single event by its slug.
func (s *EventService) GetBySlug(ctx context.Context, slug string) (domain.Event, error) {
	return s.events.GetBySlug(ctx, slug)
}

// List returns events matching the filter ordered by start time ascending.
func (s *EventService) List(ctx context.Context, f repo.EventFilter) ([]domain.Event, error) {
	if f.Category != "" && !f.Category.Valid() {
		return nil, fmt.Errorf("service.EventService.List: %w: unknown category %q", domain.ErrValidation, f.Category)
	}
	if f.ApprovalStatus != "" && !f.ApprovalStatus.Valid() {
		return nil, fmt.Errorf("service.EventService.List: %w: unknown approval status %q", domain.ErrValidation, f.ApprovalStatus)
	}
	return s.events.List(ctx, f)
}

// Update applies a re-submission of the trip form to an existing event.
// Only the event's creator or a staff caller may update it. The slug and
// ownership are immutable; every other form field is overwritten.
func (s *EventService) Update(ctx context.Context, caller *domain.Caller, slug string, event domain.Event) (domain.Event, error) {
	if caller == nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: %w", domain.ErrUnauthenticated)
	}

	existing, err := s.events.GetBySlug(ctx, slug)
	if err != nil {
		return domain.Event{}, err
	}
	if !canManageEvent(caller, existing) {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: %w", domain.ErrForbidden)
	}

	applyEventDefaults(&event)
	if err := validateEvent(event); err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: %w", err)
	}

	event.ID = existing.ID
	event.Slug = existing.Slug
	event.CreatedBy = existing.CreatedBy

	updated, err := s.events.Update(ctx, event)
	if err != nil {
		return domain.Event{}, err
	}
	return updated, nil
}

// canManageEvent reports whether caller may edit the event or view its
// signups: the creator, or any staff account.
func canManageEvent(caller *domain.Caller, event domain.Event) bool {
	if caller == nil {
		return false
	}
	if caller.IsStaff {
		return true
	}
	return event.CreatedBy != nil && *event.CreatedBy == caller.ID
}

// applyEventDefaults fills the enum zero values the trip form may omit.
func applyEventDefaults(e *domain.Event) {
	if e.Category == "" {
		e.Category = domain.CategoryGeneral
	}
	if e.RegistrationMethod == "" {
		e.RegistrationMethod = domain.RegistrationFCFS
	}
	if e.DifficultyLevel == "" {
		e.DifficultyLevel = domain.DifficultyNone
	}
	if e.ApprovalStatus == "" {
		e.ApprovalStatus = domain.ApprovalPending
	}
	if e.TripCapacity == 0 {
		// Absent capacity means unlimited.
		e.TripCapacity = -1
	}
}

// validateEvent checks the structural rules shared by Create and Update.
func validateEvent(e domain.Event) error {
	switch {
	case e.Title == "":
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	case len(e.Title) > 200:
		return fmt.Errorf("%w: title must be at most 200 characters", domain.ErrValidation)
	case e.Description == "":
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	case e.TripLocation == "":
		return fmt.Errorf("%w: trip location is required", domain.ErrValidation)
	case e.ContactDetails == "":
		return fmt.Errorf("%w: contact details are required", domain.ErrValidation)
	case e.StartDatetime.IsZero():
		return fmt.Errorf("%w: start datetime is required", domain.ErrValidation)
	case e.EndDatetime.IsZero():
		return fmt.Errorf("%w: end datetime is required", domain.ErrValidation)
	case e.EndDatetime.Before(e.StartDatetime):
		return fmt.Errorf("%w: end datetime must not be before start datetime", domain.ErrValidation)
	case !e.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, e.Category)
	case !e.RegistrationMethod.Valid():
		return fmt.Errorf("%w: unknown registration method %q", domain.ErrValidation, e.RegistrationMethod)
	case !e.DifficultyLevel.Valid():
		return fmt.Errorf("%w: unknown difficulty level %q", domain.ErrValidation, e.DifficultyLevel)
	case !e.ApprovalStatus.Valid():
		return fmt.Errorf("%w: unknown approval status %q", domain.ErrValidation, e.ApprovalStatus)
	case e.SpotsTotal < 0 || e.SpotsAvailable < 0:
		return fmt.Errorf("%w: spot counters must not be negative", domain.ErrValidation)
	}
	return nil
}
