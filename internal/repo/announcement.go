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

// AnnouncementRepo defines the persistence operations for Announcements.
type AnnouncementRepo interface {
	// Create inserts a new announcement and returns the persisted record
	// (with DB-generated id and created_at populated).
	Create(ctx context.Context, a domain.Announcement) (domain.Announcement, error)

	// GetByID retrieves a single announcement by its UUID primary key.
	// Returns domain.ErrNotFound if no announcement with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Announcement, error)

	// List returns announcements ordered newest-first. When displayOnHome is
	// non-nil the result is filtered on the display_on_home flag.
	List(ctx context.Context, displayOnHome *bool) ([]domain.Announcement, error)

	// ListPaged returns one page of announcements newest-first plus the total
	// count, for the administrative list surface.
	ListPaged(ctx context.Context, displayOnHome *bool, p domain.PaginationParams) ([]domain.Announcement, int64, error)

	// Update overwrites the mutable fields (title, body, display_on_home) of
	// an existing announcement. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, a domain.Announcement) (domain.Announcement, error)

	// Delete removes an announcement by ID. Returns domain.ErrNotFound if it
	// does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgAnnouncementRepo is the Postgres implementation of AnnouncementRepo.
type pgAnnouncementRepo struct {
	db db
}

// NewAnnouncementRepo constructs an AnnouncementRepo backed by the provided
// db connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx
// for rollback isolation.
func NewAnnouncementRepo(db db) AnnouncementRepo {
	return &pgAnnouncementRepo{db: db}
}

func (r *pgAnnouncementRepo) Create(ctx context.Context, a domain.Announcement) (domain.Announcement, error) {
	const q = `
		INSERT INTO announcements (title, body, display_on_home)
		VALUES (@title, @body, @display_on_home)
		RETURNING id, title, body, display_on_home, created_at`

	args := pgx.NamedArgs{
		"title":           a.Title,
		"body":            a.Body,
		"display_on_home": a.DisplayOnHome,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanAnnouncement(row)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("repo.AnnouncementRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgAnnouncementRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Announcement, error) {
	const q = `
		SELECT id, title, body, display_on_home, created_at
		FROM announcements
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanAnnouncement(row)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("repo.AnnouncementRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns announcements newest-first, optionally filtered on the
// display_on_home flag. The @on_home IS NULL guard keeps the filter optional
// inside a single prepared statement.
func (r *pgAnnouncementRepo) List(ctx context.Context, displayOnHome *bool) ([]domain.Announcement, error) {
	const q = `
		SELECT id, title, body, display_on_home, created_at
		FROM announcements
		WHERE @on_home::boolean IS NULL OR display_on_home = @on_home
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"on_home": displayOnHome})
	if err != nil {
		return nil, fmt.Errorf("repo.AnnouncementRepo.List: %w", err)
	}
	defer rows.Close()

	return collectAnnouncements(rows, "repo.AnnouncementRepo.List")
}

func (r *pgAnnouncementRepo) ListPaged(ctx context.Context, displayOnHome *bool, p domain.PaginationParams) ([]domain.Announcement, int64, error) {
	const countQ = `
		SELECT count(*) FROM announcements
		WHERE @on_home::boolean IS NULL OR display_on_home = @on_home`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"on_home": displayOnHome}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.AnnouncementRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT id, title, body, display_on_home, created_at
		FROM announcements
		WHERE @on_home::boolean IS NULL OR display_on_home = @on_home
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"on_home": displayOnHome,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.AnnouncementRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	items, err := collectAnnouncements(rows, "repo.AnnouncementRepo.ListPaged")
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *pgAnnouncementRepo) Update(ctx context.Context, a domain.Announcement) (domain.Announcement, error) {
	const q = `
		UPDATE announcements
		SET title           = @title,
		    body            = @body,
		    display_on_home = @display_on_home
		WHERE id = @id
		RETURNING id, title, body, display_on_home, created_at`

	args := pgx.NamedArgs{
		"id":              a.ID,
		"title":           a.Title,
		"body":            a.Body,
		"display_on_home": a.DisplayOnHome,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanAnnouncement(row)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("repo.AnnouncementRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgAnnouncementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM announcements WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.AnnouncementRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.AnnouncementRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanAnnouncement maps a single database row into a domain.Announcement.
func scanAnnouncement(s scanner) (domain.Announcement, error) {
	var (
		a  domain.Announcement
		id pgtype.UUID
	)

	err := s.Scan(&id, &a.Title, &a.Body, &a.DisplayOnHome, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Announcement{}, domain.ErrNotFound
		}
		return domain.Announcement{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	return a, nil
}

func collectAnnouncements(rows pgx.Rows, op string) ([]domain.Announcement, error) {
	var items []domain.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return items, nil
}
