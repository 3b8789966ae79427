// Package bootstrap contains one-time deployment steps that run outside the
// request-handling path.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anumc/clubsite/internal/auth"
	"github.com/anumc/clubsite/internal/domain"
	"github.com/anumc/clubsite/internal/repo"
	"github.com/anumc/clubsite/internal/service"
)

// EnsureDefaultAdmin idempotently seeds the default administrative account:
// it creates a superuser with the given credentials only when no account
// with that username exists, and leaves an existing account untouched.
// Called once at startup, after migrations and before the server accepts
// traffic. A blank password disables seeding entirely.
func EnsureDefaultAdmin(ctx context.Context, users repo.UserRepo, log *slog.Logger, username, password string) error {
	if password == "" {
		return nil
	}
	if log == nil {
		log = slog.Default()
	}

	if _, err := users.GetByUsername(ctx, username); err == nil {
		// Already seeded on a previous deployment.
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("bootstrap.EnsureDefaultAdmin: hash password: %w", err)
	}

	admin, err := users.Create(ctx, domain.User{
		Username:     username,
		PasswordHash: hash,
		IsStaff:      true,
		IsSuperuser:  true,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			// Lost a race with another instance seeding the same account.
			return nil
		}
		return fmt.Errorf("bootstrap.EnsureDefaultAdmin: %w", err)
	}

	// Give the admin the same account/profile pairing every other user has.
	if err := service.NewUserService(users, log).SyncProfile(ctx, admin, ""); err != nil {
		log.WarnContext(ctx, "admin profile sync failed", "error", err)
	}

	log.InfoContext(ctx, "default admin account created", "username", username)
	return nil
}
