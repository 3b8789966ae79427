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

// UserRepo defines the persistence operations for user accounts and their
// one-to-one profiles.
type UserRepo interface {
	// Create inserts a new user and returns the persisted record.
	// A duplicate username returns an error wrapping domain.ErrValidation.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByID retrieves a user by primary key.
	// Returns domain.ErrNotFound if no such user exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByUsername retrieves a user by unique username.
	// Returns domain.ErrNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	// UpsertProfile creates the profile row for a user or refreshes it in
	// place. FullName and Email are always overwritten; EmergencyContact is
	// only overwritten when non-empty so the profile-sync step never erases
	// what the registration form collected.
	UpsertProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error)

	// GetProfileByUserID retrieves the profile owned by a user.
	// Returns domain.ErrNotFound if the user has no profile row.
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `
	id, username, display_name, email, password_hash,
	is_staff, is_superuser, created_at, updated_at`

func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (username, display_name, email, password_hash, is_staff, is_superuser)
		VALUES (@username, @display_name, @email, @password_hash, @is_staff, @is_superuser)
		RETURNING` + userColumns

	args := pgx.NamedArgs{
		"username":      user.Username,
		"display_name":  user.DisplayName,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"is_staff":      user.IsStaff,
		"is_superuser":  user.IsSuperuser,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w: username %q is taken", domain.ErrValidation, user.Username)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `SELECT` + userColumns + ` FROM users WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	const q = `SELECT` + userColumns + ` FROM users WHERE username = @username`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"username": username})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByUsername: %w", err)
	}
	return result, nil
}

// UpsertProfile inserts or refreshes the single profile row for a user.
// The CASE on emergency_contact keeps an existing value when the incoming
// one is empty, because account saves refresh name and email only.
func (r *pgUserRepo) UpsertProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	const q = `
		INSERT INTO profiles (user_id, full_name, email, emergency_contact)
		VALUES (@user_id, @full_name, @email, @emergency_contact)
		ON CONFLICT (user_id) DO UPDATE
		SET full_name         = EXCLUDED.full_name,
		    email             = EXCLUDED.email,
		    emergency_contact = CASE
		        WHEN EXCLUDED.emergency_contact <> '' THEN EXCLUDED.emergency_contact
		        ELSE profiles.emergency_contact
		    END,
		    updated_at = now()
		RETURNING id, user_id, full_name, email, emergency_contact, created_at, updated_at`

	args := pgx.NamedArgs{
		"user_id":           profile.UserID,
		"full_name":         profile.FullName,
		"email":             profile.Email,
		"emergency_contact": profile.EmergencyContact,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanProfile(row)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.UserRepo.UpsertProfile: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	const q = `
		SELECT id, user_id, full_name, email, emergency_contact, created_at, updated_at
		FROM profiles
		WHERE user_id = @user_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID})
	result, err := scanProfile(row)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.UserRepo.GetProfileByUserID: %w", err)
	}
	return result, nil
}

// scanUser maps a single database row into a domain.User.
func scanUser(s scanner) (domain.User, error) {
	var (
		u  domain.User
		id pgtype.UUID
	)

	err := s.Scan(&id, &u.Username, &u.DisplayName, &u.Email, &u.PasswordHash,
		&u.IsStaff, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}

// scanProfile maps a single database row into a domain.Profile.
func scanProfile(s scanner) (domain.Profile, error) {
	var (
		p      domain.Profile
		id     pgtype.UUID
		userID pgtype.UUID
	)

	err := s.Scan(&id, &userID, &p.FullName, &p.Email, &p.EmergencyContact, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.UserID = uuid.UUID(userID.Bytes)
	return p, nil
}
