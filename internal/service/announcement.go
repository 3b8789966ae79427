package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/anumc/clubsite/internal/domain"
	"github.com/anumc/clubsite/internal/repo"
)

// AnnouncementService implements the home-page listing and the staff-only
// administrative CRUD for announcements.
type AnnouncementService struct {
	announcements repo.AnnouncementRepo
}

// NewAnnouncementService constructs an AnnouncementService backed by the
// provided AnnouncementRepo.
func NewAnnouncementService(announcements repo.AnnouncementRepo) *AnnouncementService {
	return &AnnouncementService{announcements: announcements}
}

// ListHome returns the announcements flagged for the home page,
// newest-first.
func (s *AnnouncementService) ListHome(ctx context.Context) ([]domain.Announcement, error) {
	onHome := true
	return s.announcements.List(ctx, &onHome)
}

// List returns one page of announcements for the administrative list view,
// optionally filtered on display_on_home. Staff only.
func (s *AnnouncementService) List(ctx context.Context, caller *domain.Caller, displayOnHome *bool, p domain.PaginationParams) ([]domain.Announcement, int64, error) {
	if err := requireStaff(caller, "service.AnnouncementService.List"); err != nil {
		return nil, 0, err
	}
	return s.announcements.ListPaged(ctx, displayOnHome, p)
}

// Create validates and persists a new announcement. Staff only.
func (s *AnnouncementService) Create(ctx context.Context, caller *domain.Caller, a domain.Announcement) (domain.Announcement, error) {
	if err := requireStaff(caller, "service.AnnouncementService.Create"); err != nil {
		return domain.Announcement{}, err
	}
	if err := validateAnnouncement(a); err != nil {
		return domain.Announcement{}, fmt.Errorf("service.AnnouncementService.Create: %w", err)
	}
	return s.announcements.Create(ctx, a)
}

// Update overwrites an existing announcement's title, body, and home-page
// flag. Staff only.
func (s *AnnouncementService) Update(ctx context.Context, caller *domain.Caller, a domain.Announcement) (domain.Announcement, error) {
	if err := requireStaff(caller, "service.AnnouncementService.Update"); err != nil {
		return domain.Announcement{}, err
	}
	if err := validateAnnouncement(a); err != nil {
		return domain.Announcement{}, fmt.Errorf("service.AnnouncementService.Update: %w", err)
	}
	return s.announcements.Update(ctx, a)
}

// Delete removes an announcement. Staff only.
func (s *AnnouncementService) Delete(ctx context.Context, caller *domain.Caller, id uuid.UUID) error {
	if err := requireStaff(caller, "service.AnnouncementService.Delete"); err != nil {
		return err
	}
	return s.announcements.Delete(ctx, id)
}

// requireStaff distinguishes "not signed in" from "signed in but not staff"
// so handlers can answer 401 and 403 respectively.
func requireStaff(caller *domain.Caller, op string) error {
	if caller == nil {
		return fmt.Errorf("%s: %w", op, domain.ErrUnauthenticated)
	}
	if !caller.IsStaff {
		return fmt.Errorf("%s: %w", op, domain.ErrForbidden)
	}
	return nil
}

// validateAnnouncement checks the structural rules for announcements.
func validateAnnouncement(a domain.Announcement) error {
	switch {
	case a.Title == "":
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	case len(a.Title) > 200:
		return fmt.Errorf("%w: title must be at most 200 characters", domain.ErrValidation)
	case a.Body == "":
		return fmt.Errorf("%w: body is required", domain.ErrValidation)
	}
	return nil
}
