package service

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/anumc/clubsite/internal/domain"
	"github.com/anumc/clubsite/internal/repo"
)

// SignupService implements business logic for event sign-ups: pre-filling
// from the caller's profile, structural validation, duplicate rejection, and
// visibility gating on the signup list.
//
// Creating a signup does not decrement the event's spots_available counter
// and does not check trip_capacity; the counters are display state only and
// availability text is derived from them as stored.
type SignupService struct {
	signups repo.SignupRepo
	events  repo.EventRepo
	users   repo.UserRepo
}

// NewSignupService constructs a SignupService backed by the provided repos.
func NewSignupService(signups repo.SignupRepo, events repo.EventRepo, users repo.UserRepo) *SignupService {
	return &SignupService{signups: signups, events: events, users: users}
}

// Create records caller's sign-up for the event identified by eventSlug.
//
// The target event is always resolved from the slug, never from the
// submitted payload, so a submitter cannot attach a signup to an arbitrary
// event. Blank full_name/email are pre-filled from the caller's profile
// before validation; an explicitly provided value always wins. A second
// sign-up from the same email to the same event fails validation.
func (s *SignupService) Create(ctx context.Context, caller *domain.Caller, eventSlug string, signup domain.Signup) (domain.Signup, error) {
	if caller == nil {
		return domain.Signup{}, fmt.Errorf("service.SignupService.Create: %w", domain.ErrUnauthenticated)
	}

	event, err := s.events.GetBySlug(ctx, eventSlug)
	if err != nil {
		return domain.Signup{}, err
	}

	if signup.FullName == "" || signup.Email == "" {
		profile, err := s.users.GetProfileByUserID(ctx, caller.ID)
		if err == nil {
			if signup.FullName == "" {
				signup.FullName = profile.FullName
			}
			if signup.Email == "" {
				signup.Email = profile.Email
			}
		}
		// A missing profile is not fatal here; validation below rejects the
		// submission if the blanks could not be filled.
	}

	if err := validateSignup(signup); err != nil {
		return domain.Signup{}, fmt.Errorf("service.SignupService.Create: %w", err)
	}

	signup.EventID = event.ID
	id := caller.ID
	signup.UserID = &id

	created, err := s.signups.Create(ctx, signup)
	if err != nil {
		return domain.Signup{}, err
	}
	return created, nil
}

// ListForEvent returns the ordered signups for an event, visible only to the
// event's creator or a staff caller. Everyone else gets ErrForbidden, an
// explicit absence rather than an empty list that could be mistaken for "no
// signups yet".
func (s *SignupService) ListForEvent(ctx context.Context, caller *domain.Caller, eventSlug string) ([]domain.Signup, error) {
	event, err := s.events.GetBySlug(ctx, eventSlug)
	if err != nil {
		return nil, err
	}

	if caller == nil {
		return nil, fmt.Errorf("service.SignupService.ListForEvent: %w", domain.ErrUnauthenticated)
	}
	if !canManageEvent(caller, event) {
		return nil, fmt.Errorf("service.SignupService.ListForEvent: %w", domain.ErrForbidden)
	}

	return s.signups.ListByEvent(ctx, event.ID)
}

// validateSignup checks the structural rules for a signup submission.
// Uniqueness of (event, email) is enforced by the store afterwards.
func validateSignup(sg domain.Signup) error {
	switch {
	case sg.FullName == "":
		return fmt.Errorf("%w: full name is required", domain.ErrValidation)
	case len(sg.FullName) > 200:
		return fmt.Errorf("%w: full name must be at most 200 characters", domain.ErrValidation)
	case sg.Email == "":
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(sg.Email); err != nil {
		return fmt.Errorf("%w: email address is not valid", domain.ErrValidation)
	}
	return nil
}
