package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anumc/clubsite/internal/auth"
	"github.com/anumc/clubsite/internal/domain"
	"github.com/anumc/clubsite/internal/repo"
	"github.com/anumc/clubsite/internal/service"
)

// mockUserRepo is a test double for repo.UserRepo.
type mockUserRepo struct {
	create             func(ctx context.Context, user domain.User) (domain.User, error)
	getByID            func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByUsername      func(ctx context.Context, username string) (domain.User, error)
	upsertProfile      func(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	getProfileByUserID func(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return m.getByUsername(ctx, username)
}
func (m *mockUserRepo) UpsertProfile(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	return m.upsertProfile(ctx, p)
}
func (m *mockUserRepo) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	return m.getProfileByUserID(ctx, userID)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

func registerInput() service.RegisterInput {
	return service.RegisterInput{
		Username:        "alex",
		Password:        "correct-horse-battery",
		PasswordConfirm: "correct-horse-battery",
		FullName:        "Alex Nguyen",
		Email:           "alex@example.com",
	}
}

// ---- Register --------------------------------------------------------------

func TestUserService_Register(t *testing.T) {
	var createdUser domain.User
	var syncedProfile domain.Profile
	users := &mockUserRepo{
		create: func(_ context.Context, u domain.User) (domain.User, error) {
			u.ID = uuid.New()
			createdUser = u
			return u, nil
		},
		upsertProfile: func(_ context.Context, p domain.Profile) (domain.Profile, error) {
			syncedProfile = p
			return p, nil
		},
	}
	svc := service.NewUserService(users, nil)

	got, err := svc.Register(context.Background(), registerInput())

	require.NoError(t, err)
	assert.Equal(t, "alex", got.Username)
	assert.NotEmpty(t, createdUser.PasswordHash)
	assert.NotEqual(t, "correct-horse-battery", createdUser.PasswordHash, "password must be stored hashed")

	// The profile sync mirrors the account record.
	assert.Equal(t, got.ID, syncedProfile.UserID)
	assert.Equal(t, "Alex Nguyen", syncedProfile.FullName)
	assert.Equal(t, "alex@example.com", syncedProfile.Email)
}

func TestUserService_Register_ProfileSyncFailureDoesNotFail(t *testing.T) {
	users := &mockUserRepo{
		create: func(_ context.Context, u domain.User) (domain.User, error) {
			u.ID = uuid.New()
			return u, nil
		},
		upsertProfile: func(_ context.Context, _ domain.Profile) (domain.Profile, error) {
			return domain.Profile{}, fmt.Errorf("storage exploded")
		},
	}
	svc := service.NewUserService(users, nil)

	// The account write is durable even when the sync step fails.
	got, err := svc.Register(context.Background(), registerInput())

	require.NoError(t, err)
	assert.Equal(t, "alex", got.Username)
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	users := &mockUserRepo{
		create: func(_ context.Context, u domain.User) (domain.User, error) {
			return domain.User{}, fmt.Errorf("%w: username %q is already taken", domain.ErrValidation, u.Username)
		},
	}
	svc := service.NewUserService(users, nil)

	_, err := svc.Register(context.Background(), registerInput())

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserService_Register_Validation(t *testing.T) {
	svc := service.NewUserService(&mockUserRepo{}, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*service.RegisterInput)
	}{
		{"missing username", func(in *service.RegisterInput) { in.Username = "" }},
		{"missing full name", func(in *service.RegisterInput) { in.FullName = "" }},
		{"missing email", func(in *service.RegisterInput) { in.Email = "" }},
		{"bad email", func(in *service.RegisterInput) { in.Email = "not-an-email" }},
		{"password mismatch", func(in *service.RegisterInput) { in.PasswordConfirm = "different" }},
		{"short password", func(in *service.RegisterInput) {
			in.Password = "short"
			in.PasswordConfirm = "short"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := registerInput()
			tt.mutate(&in)
			_, err := svc.Register(ctx, in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

// ---- Login -----------------------------------------------------------------

func TestUserService_Login(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse-battery")
	require.NoError(t, err)

	users := &mockUserRepo{
		getByUsername: func(_ context.Context, username string) (domain.User, error) {
			assert.Equal(t, "alex", username)
			return domain.User{Username: "alex", PasswordHash: hash}, nil
		},
	}
	svc := service.NewUserService(users, nil)

	got, err := svc.Login(context.Background(), "alex", "correct-horse-battery")

	require.NoError(t, err)
	assert.Equal(t, "alex", got.Username)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse-battery")
	require.NoError(t, err)

	users := &mockUserRepo{
		getByUsername: func(_ context.Context, _ string) (domain.User, error) {
			return domain.User{Username: "alex", PasswordHash: hash}, nil
		},
	}
	svc := service.NewUserService(users, nil)

	_, err = svc.Login(context.Background(), "alex", "wrong")

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownUsername(t *testing.T) {
	users := &mockUserRepo{
		getByUsername: func(_ context.Context, _ string) (domain.User, error) {
			return domain.User{}, domain.ErrNotFound
		},
	}
	svc := service.NewUserService(users, nil)

	// Unknown usernames are indistinguishable from wrong passwords.
	_, err := svc.Login(context.Background(), "ghost", "whatever")

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

// ---- SyncProfile -----------------------------------------------------------

func TestUserService_SyncProfile_FallsBackToUsername(t *testing.T) {
	var synced domain.Profile
	users := &mockUserRepo{
		upsertProfile: func(_ context.Context, p domain.Profile) (domain.Profile, error) {
			synced = p
			return p, nil
		},
	}
	svc := service.NewUserService(users, nil)

	user := domain.User{ID: uuid.New(), Username: "alex", Email: "alex@example.com"}
	err := svc.SyncProfile(context.Background(), user, "")

	require.NoError(t, err)
	assert.Equal(t, "alex", synced.FullName, "no display name, fall back to username")
}
