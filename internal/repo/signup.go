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

// SignupRepo defines the persistence operations for event sign-ups.
type SignupRepo interface {
	// Create inserts a new signup and returns the persisted record.
	// A duplicate (event, email) pair returns an error wrapping
	// domain.ErrValidation; the unique constraint is the arbiter even when
	// two submissions race.
	Create(ctx context.Context, signup domain.Signup) (domain.Signup, error)

	// ListByEvent returns all signups for an event ordered by created_at
	// ascending, preserving first-come-first-served order.
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Signup, error)

	// CountByEvent returns the number of signups recorded for an event.
	CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)
}

// pgSignupRepo is the Postgres implementation of SignupRepo.
type pgSignupRepo struct {
	db db
}

// NewSignupRepo constructs a SignupRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewSignupRepo(db db) SignupRepo {
	return &pgSignupRepo{db: db}
}

func (r *pgSignupRepo) Create(ctx context.Context, signup domain.Signup) (domain.Signup, error) {
	const q = `
		INSERT INTO signups (event_id, user_id, full_name, email, experience)
		VALUES (@event_id, @user_id, @full_name, @email, @experience)
		RETURNING id, event_id, user_id, full_name, email, experience, created_at`

	args := pgx.NamedArgs{
		"event_id":   signup.EventID,
		"user_id":    signup.UserID, // nil becomes NULL for anonymous-era rows
		"full_name":  signup.FullName,
		"email":      signup.Email,
		"experience": signup.Experience,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSignup(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Signup{}, fmt.Errorf("repo.SignupRepo.Create: %w: %s is already signed up for this event", domain.ErrValidation, signup.Email)
		}
		return domain.Signup{}, fmt.Errorf("repo.SignupRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgSignupRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Signup, error) {
	const q = `
		SELECT id, event_id, user_id, full_name, email, experience, created_at
		FROM signups
		WHERE event_id = @event_id
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"event_id": eventID})
	if err != nil {
		return nil, fmt.Errorf("repo.SignupRepo.ListByEvent: %w", err)
	}
	defer rows.Close()

	var signups []domain.Signup
	for rows.Next() {
		s, err := scanSignup(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SignupRepo.ListByEvent: scan: %w", err)
		}
		signups = append(signups, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SignupRepo.ListByEvent: rows: %w", err)
	}

	return signups, nil
}

func (r *pgSignupRepo) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	const q = `SELECT count(*) FROM signups WHERE event_id = @event_id`

	var n int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"event_id": eventID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.SignupRepo.CountByEvent: %w", err)
	}
	return n, nil
}

// scanSignup maps a single database row into a domain.Signup.
func scanSignup(s scanner) (domain.Signup, error) {
	var (
		sg      domain.Signup
		id      pgtype.UUID
		eventID pgtype.UUID
		userID  pgtype.UUID
	)

	err := s.Scan(&id, &eventID, &userID, &sg.FullName, &sg.Email, &sg.Experience, &sg.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Signup{}, domain.ErrNotFound
		}
		return domain.Signup{}, err
	}

	sg.ID = uuid.UUID(id.Bytes)
	sg.EventID = uuid.UUID(eventID.Bytes)
	if userID.Valid {
		u := uuid.UUID(userID.Bytes)
		sg.UserID = &u
	}

	return sg, nil
}
