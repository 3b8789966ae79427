package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"

	"github.com/google/uuid"

	"github.com/anumc/clubsite/internal/auth"
	"github.com/anumc/clubsite/internal/domain"
	"github.com/anumc/clubsite/internal/repo"
)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Username         string
	Password         string
	PasswordConfirm  string
	FullName         string
	Email            string
	EmergencyContact string
}

// UserService implements account registration, login, and the profile-sync
// step that keeps every user's profile mirroring the account record.
type UserService struct {
	users repo.UserRepo
	log   *slog.Logger
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(users repo.UserRepo, log *slog.Logger) *UserService {
	if log == nil {
		log = slog.Default()
	}
	return &UserService{users: users, log: log}
}

// Register validates the registration form, creates the account, and runs
// the profile sync. The returned user is durably persisted even if the
// profile sync fails: a sync failure is logged, not rolled back, because
// the account write must never be lost to a profile defect.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if err := validateRegistration(in); err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: hash password: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Username:     in.Username,
		DisplayName:  in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return domain.User{}, err
	}

	if err := s.SyncProfile(ctx, user, in.EmergencyContact); err != nil {
		s.log.ErrorContext(ctx, "profile sync failed after registration",
			"user_id", user.ID, "error", err)
	}

	return user, nil
}

// Login verifies the username/password pair and returns the account.
// Unknown usernames and wrong passwords both return
// auth.ErrInvalidCredentials so callers cannot probe which accounts exist.
func (s *UserService) Login(ctx context.Context, username, password string) (domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, auth.ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// SyncProfile creates or refreshes the profile owned by user so that its
// full_name and email mirror the current account state. The full name falls
// back to the username when the account has no display name. The operation
// is idempotent and is run after every account write.
func (s *UserService) SyncProfile(ctx context.Context, user domain.User, emergencyContact string) error {
	_, err := s.users.UpsertProfile(ctx, domain.Profile{
		UserID:           user.ID,
		FullName:         user.ProfileName(),
		Email:            user.Email,
		EmergencyContact: emergencyContact,
	})
	if err != nil {
		return fmt.Errorf("service.UserService.SyncProfile: %w", err)
	}
	return nil
}

// GetProfile returns the profile owned by the given user.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	return s.users.GetProfileByUserID(ctx, userID)
}

// validateRegistration checks the structural rules for new accounts.
func validateRegistration(in RegisterInput) error {
	switch {
	case in.Username == "":
		return fmt.Errorf("%w: username is required", domain.ErrValidation)
	case len(in.Username) > 150:
		return fmt.Errorf("%w: username must be at most 150 characters", domain.ErrValidation)
	case in.FullName == "":
		return fmt.Errorf("%w: full name is required", domain.ErrValidation)
	case in.Email == "":
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	case in.Password != in.PasswordConfirm:
		return fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: email address is not valid", domain.ErrValidation)
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}
	return nil
}
