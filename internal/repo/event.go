package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/anumc/clubsite/internal/domain"
)

// EventFilter narrows event listings. Zero-valued fields are ignored.
type EventFilter struct {
	Category       domain.Category
	ApprovalStatus domain.ApprovalStatus
}

// EventRepo defines the persistence operations for Events.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type EventRepo interface {
	// Create inserts a new event and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	// A slug collision returns an error wrapping domain.ErrValidation.
	Create(ctx context.Context, event domain.Event) (domain.Event, error)

	// GetBySlug retrieves a single event by its unique slug.
	// Returns domain.ErrNotFound if no event with that slug exists.
	GetBySlug(ctx context.Context, slug string) (domain.Event, error)

	// List returns events matching the filter, ordered by start_datetime
	// ascending.
	List(ctx context.Context, f EventFilter) ([]domain.Event, error)

	// Update overwrites the mutable fields of an existing event and returns
	// the updated record. The slug is immutable and is not touched.
	// Returns domain.ErrNotFound if no event with that ID exists.
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
}

// pgEventRepo is the Postgres implementation of EventRepo.
type pgEventRepo struct {
	db db
}

// NewEventRepo constructs an EventRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewEventRepo(db db) EventRepo {
	return &pgEventRepo{db: db}
}

const eventColumns = `
	id, title, slug, category, description,
	meeting_datetime, meeting_location, emergency_contact_details,
	registration_method, trip_capacity, trip_location,
	start_datetime, end_datetime, difficulty_level,
	estimated_costs, requested_information,
	include_prior_experience_checkbox, regular_recurring,
	approval_status, comment, contact_details,
	fitness_required, experience_required,
	spots_total, spots_available, created_by, created_at, updated_at`

// Create inserts a new event row and returns the full persisted record.
// A unique violation on the slug is reported as domain.ErrValidation because
// the constraint, not application code, arbitrates concurrent creations with
// colliding titles.
func (r *pgEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	const q = `
		INSERT INTO events (
			title, slug, category, description,
			meeting_datetime, meeting_location, emergency_contact_details,
			registration_method, trip_capacity, trip_location,
			start_datetime, end_datetime, difficulty_level,
			estimated_costs, requested_information,
			include_prior_experience_checkbox, regular_recurring,
			approval_status, comment, contact_details,
			fitness_required, experience_required,
			spots_total, spots_available, created_by
		)
		VALUES (
			@title, @slug, @category, @description,
			@meeting_datetime, @meeting_location, @emergency_contact_details,
			@registration_method, @trip_capacity, @trip_location,
			@start_datetime, @end_datetime, @difficulty_level,
			@estimated_costs, @requested_information,
			@include_prior_experience_checkbox, @regular_recurring,
			@approval_status, @comment, @contact_details,
			@fitness_required, @experience_required,
			@spots_total, @spots_available, @created_by
		)
		RETURNING` + eventColumns

	row := r.db.QueryRow(ctx, q, eventArgs(event))
	result, err := scanEvent(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Event{}, fmt.Errorf("repo.EventRepo.Create: %w: an event with slug %q already exists", domain.ErrValidation, event.Slug)
		}
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) GetBySlug(ctx context.Context, slug string) (domain.Event, error) {
	const q = `SELECT` + eventColumns + `
		FROM events
		WHERE slug = @slug`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug})
	result, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.GetBySlug: %w", err)
	}
	return result, nil
}

// List returns events ordered by start_datetime ascending (soonest first).
// Empty filter fields are passed as NULL and skipped by the WHERE guards.
func (r *pgEventRepo) List(ctx context.Context, f EventFilter) ([]domain.Event, error) {
	const q = `SELECT` + eventColumns + `
		FROM events
		WHERE (@category::text IS NULL OR category = @category)
		  AND (@approval_status::text IS NULL OR approval_status = @approval_status)
		ORDER BY start_datetime`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"category":        nullIfEmpty(string(f.Category)),
		"approval_status": nullIfEmpty(string(f.ApprovalStatus)),
	})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.List: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.EventRepo.List: scan: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EventRepo.List: rows: %w", err)
	}

	return events, nil
}

// Update overwrites the mutable fields of an event and returns the updated
// record. The slug is deliberately absent from the SET list.
func (r *pgEventRepo) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	const q = `
		UPDATE events
		SET title                             = @title,
		    category                          = @category,
		    description                       = @description,
		    meeting_datetime                  = @meeting_datetime,
		    meeting_location                  = @meeting_location,
		    emergency_contact_details         = @emergency_contact_details,
		    registration_method               = @registration_method,
		    trip_capacity                     = @trip_capacity,
		    trip_location                     = @trip_location,
		    start_datetime                    = @start_datetime,
		    end_datetime                      = @end_datetime,
		    difficulty_level                  = @difficulty_level,
		    estimated_costs                   = @estimated_costs,
		    requested_information             = @requested_information,
		    include_prior_experience_checkbox = @include_prior_experience_checkbox,
		    regular_recurring                 = @regular_recurring,
		    approval_status                   = @approval_status,
		    comment                           = @comment,
		    contact_details                   = @contact_details,
		    fitness_required                  = @fitness_required,
		    experience_required               = @experience_required,
		    spots_total                       = @spots_total,
		    spots_available                   = @spots_available,
		    updated_at                        = now()
		WHERE id = @id
		RETURNING` + eventColumns

	args := eventArgs(event)
	args["id"] = event.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Update: %w", err)
	}
	return result, nil
}

// eventArgs maps the insertable fields of an event to named query arguments.
func eventArgs(e domain.Event) pgx.NamedArgs {
	return pgx.NamedArgs{
		"title":                             e.Title,
		"slug":                              e.Slug,
		"category":                          string(e.Category),
		"description":                       e.Description,
		"meeting_datetime":                  e.MeetingDatetime, // nil becomes NULL
		"meeting_location":                  e.MeetingLocation,
		"emergency_contact_details":         e.EmergencyContactDetails,
		"registration_method":               string(e.RegistrationMethod),
		"trip_capacity":                     e.TripCapacity,
		"trip_location":                     e.TripLocation,
		"start_datetime":                    e.StartDatetime,
		"end_datetime":                      e.EndDatetime,
		"difficulty_level":                  string(e.DifficultyLevel),
		"estimated_costs":                   e.EstimatedCosts,
		"requested_information":             e.RequestedInformation,
		"include_prior_experience_checkbox": e.IncludePriorExperience,
		"regular_recurring":                 e.RegularRecurring,
		"approval_status":                   string(e.ApprovalStatus),
		"comment":                           e.Comment,
		"contact_details":                   e.ContactDetails,
		"fitness_required":                  e.FitnessRequired,
		"experience_required":               e.ExperienceRequired,
		"spots_total":                       e.SpotsTotal,
		"spots_available":                   e.SpotsAvailable,
		"created_by":                        e.CreatedBy,
	}
}

// scanEvent maps a single database row into a domain.Event.
// It handles the UUID and nullable meeting_datetime/created_by conversions.
func scanEvent(s scanner) (domain.Event, error) {
	var (
		e         domain.Event
		id        pgtype.UUID
		meetingAt pgtype.Timestamptz
		createdBy pgtype.UUID
	)

	err := s.Scan(
		&id, &e.Title, &e.Slug, &e.Category, &e.Description,
		&meetingAt, &e.MeetingLocation, &e.EmergencyContactDetails,
		&e.RegistrationMethod, &e.TripCapacity, &e.TripLocation,
		&e.StartDatetime, &e.EndDatetime, &e.DifficultyLevel,
		&e.EstimatedCosts, &e.RequestedInformation,
		&e.IncludePriorExperience, &e.RegularRecurring,
		&e.ApprovalStatus, &e.Comment, &e.ContactDetails,
		&e.FitnessRequired, &e.ExperienceRequired,
		&e.SpotsTotal, &e.SpotsAvailable, &createdBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrNotFound
		}
		return domain.Event{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	if meetingAt.Valid {
		t := meetingAt.Time
		e.MeetingDatetime = &t
	}
	if createdBy.Valid {
		u := uuid.UUID(createdBy.Bytes)
		e.CreatedBy = &u
	}

	return e, nil
}

// nullIfEmpty turns "" into a NULL query argument so optional filters can be
// expressed in a single prepared statement.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
