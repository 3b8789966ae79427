package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anumc/clubsite/internal/domain"
	"github.com/anumc/clubsite/internal/repo"
	"github.com/anumc/clubsite/internal/service"
)

// mockSignupRepo is a test double for repo.SignupRepo.
type mockSignupRepo struct {
	create       func(ctx context.Context, signup domain.Signup) (domain.Signup, error)
	listByEvent  func(ctx context.Context, eventID uuid.UUID) ([]domain.Signup, error)
	countByEvent func(ctx context.Context, eventID uuid.UUID) (int64, error)
}

func (m *mockSignupRepo) Create(ctx context.Context, s domain.Signup) (domain.Signup, error) {
	return m.create(ctx, s)
}
func (m *mockSignupRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Signup, error) {
	return m.listByEvent(ctx, eventID)
}
func (m *mockSignupRepo) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return m.countByEvent(ctx, eventID)
}

var _ repo.SignupRepo = (*mockSignupRepo)(nil)

// eventRepoReturning returns a mockEventRepo whose GetBySlug always yields
// the given event.
func eventRepoReturning(event domain.Event) *mockEventRepo {
	return &mockEventRepo{
		getBySlug: func(_ context.Context, _ string) (domain.Event, error) { return event, nil },
	}
}

// userRepoWithProfile returns a mockUserRepo whose GetProfileByUserID yields
// the given profile.
func userRepoWithProfile(p domain.Profile) *mockUserRepo {
	return &mockUserRepo{
		getProfileByUserID: func(_ context.Context, _ uuid.UUID) (domain.Profile, error) { return p, nil },
	}
}

// userRepoWithoutProfile returns a mockUserRepo for a user with no profile row.
func userRepoWithoutProfile() *mockUserRepo {
	return &mockUserRepo{
		getProfileByUserID: func(_ context.Context, _ uuid.UUID) (domain.Profile, error) {
			return domain.Profile{}, domain.ErrNotFound
		},
	}
}

func publishedEvent() domain.Event {
	e := eventFixture()
	e.ID = uuid.New()
	e.Slug = "weekend-climb"
	return e
}

// ---- Create ----------------------------------------------------------------

func TestSignupService_Create(t *testing.T) {
	event := publishedEvent()
	caller := memberCaller()

	var persisted domain.Signup
	signups := &mockSignupRepo{
		create: func(_ context.Context, s domain.Signup) (domain.Signup, error) {
			persisted = s
			return s, nil
		},
	}
	svc := service.NewSignupService(signups, eventRepoReturning(event), userRepoWithoutProfile())

	got, err := svc.Create(context.Background(), caller, event.Slug, domain.Signup{
		FullName:   "Alex Nguyen",
		Email:      "alex@example.com",
		Experience: "Led sport up to grade 18.",
	})

	require.NoError(t, err)
	assert.Equal(t, event.ID, got.EventID, "event resolved from slug, not payload")
	require.NotNil(t, persisted.UserID)
	assert.Equal(t, caller.ID, *persisted.UserID)
	assert.Equal(t, "Alex Nguyen", persisted.FullName)
}

func TestSignupService_Create_PrefillsFromProfile(t *testing.T) {
	event := publishedEvent()
	profile := domain.Profile{FullName: "Alex Nguyen", Email: "alex@example.com"}

	var persisted domain.Signup
	signups := &mockSignupRepo{
		create: func(_ context.Context, s domain.Signup) (domain.Signup, error) {
			persisted = s
			return s, nil
		},
	}
	svc := service.NewSignupService(signups, eventRepoReturning(event), userRepoWithProfile(profile))

	_, err := svc.Create(context.Background(), memberCaller(), event.Slug, domain.Signup{})

	require.NoError(t, err)
	assert.Equal(t, "Alex Nguyen", persisted.FullName)
	assert.Equal(t, "alex@example.com", persisted.Email)
}

func TestSignupService_Create_ExplicitValuesWin(t *testing.T) {
	event := publishedEvent()
	profile := domain.Profile{FullName: "Alex Nguyen", Email: "alex@example.com"}

	var persisted domain.Signup
	signups := &mockSignupRepo{
		create: func(_ context.Context, s domain.Signup) (domain.Signup, error) {
			persisted = s
			return s, nil
		},
	}
	svc := service.NewSignupService(signups, eventRepoReturning(event), userRepoWithProfile(profile))

	// A submitted value is never overwritten by the profile.
	_, err := svc.Create(context.Background(), memberCaller(), event.Slug, domain.Signup{
		FullName: "A. Nguyen (guest account)",
		Email:    "other@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "A. Nguyen (guest account)", persisted.FullName)
	assert.Equal(t, "other@example.com", persisted.Email)
}

func TestSignupService_Create_MissingProfileAndBlanks(t *testing.T) {
	event := publishedEvent()
	svc := service.NewSignupService(&mockSignupRepo{}, eventRepoReturning(event), userRepoWithoutProfile())

	// No profile to fill from and nothing submitted: validation rejects it.
	_, err := svc.Create(context.Background(), memberCaller(), event.Slug, domain.Signup{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSignupService_Create_BadEmail(t *testing.T) {
	event := publishedEvent()
	svc := service.NewSignupService(&mockSignupRepo{}, eventRepoReturning(event), userRepoWithoutProfile())

	_, err := svc.Create(context.Background(), memberCaller(), event.Slug, domain.Signup{
		FullName: "Alex Nguyen",
		Email:    "not-an-email",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSignupService_Create_Duplicate(t *testing.T) {
	event := publishedEvent()
	signups := &mockSignupRepo{
		create: func(_ context.Context, s domain.Signup) (domain.Signup, error) {
			return domain.Signup{}, fmt.Errorf("%w: %s is already signed up for this event", domain.ErrValidation, s.Email)
		},
	}
	svc := service.NewSignupService(signups, eventRepoReturning(event), userRepoWithoutProfile())

	_, err := svc.Create(context.Background(), memberCaller(), event.Slug, domain.Signup{
		FullName: "Alex Nguyen",
		Email:    "alex@example.com",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSignupService_Create_Anonymous(t *testing.T) {
	svc := service.NewSignupService(&mockSignupRepo{}, &mockEventRepo{}, &mockUserRepo{})

	_, err := svc.Create(context.Background(), nil, "weekend-climb", domain.Signup{})

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestSignupService_Create_EventNotFound(t *testing.T) {
	events := &mockEventRepo{
		getBySlug: func(_ context.Context, _ string) (domain.Event, error) {
			return domain.Event{}, domain.ErrNotFound
		},
	}
	svc := service.NewSignupService(&mockSignupRepo{}, events, &mockUserRepo{})

	_, err := svc.Create(context.Background(), memberCaller(), "no-such-event", domain.Signup{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- ListForEvent ----------------------------------------------------------

func TestSignupService_ListForEvent_Creator(t *testing.T) {
	caller := memberCaller()
	creatorID := caller.ID
	event := publishedEvent()
	event.CreatedBy = &creatorID

	signups := &mockSignupRepo{
		listByEvent: func(_ context.Context, eventID uuid.UUID) ([]domain.Signup, error) {
			assert.Equal(t, event.ID, eventID)
			return []domain.Signup{{FullName: "Alex Nguyen"}}, nil
		},
	}
	svc := service.NewSignupService(signups, eventRepoReturning(event), &mockUserRepo{})

	got, err := svc.ListForEvent(context.Background(), caller, event.Slug)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSignupService_ListForEvent_Staff(t *testing.T) {
	creatorID := uuid.New()
	event := publishedEvent()
	event.CreatedBy = &creatorID

	signups := &mockSignupRepo{
		listByEvent: func(_ context.Context, _ uuid.UUID) ([]domain.Signup, error) {
			return []domain.Signup{}, nil
		},
	}
	svc := service.NewSignupService(signups, eventRepoReturning(event), &mockUserRepo{})

	_, err := svc.ListForEvent(context.Background(), staffCaller(), event.Slug)

	require.NoError(t, err)
}

func TestSignupService_ListForEvent_ForbiddenForOthers(t *testing.T) {
	creatorID := uuid.New()
	event := publishedEvent()
	event.CreatedBy = &creatorID

	svc := service.NewSignupService(&mockSignupRepo{}, eventRepoReturning(event), &mockUserRepo{})

	_, err := svc.ListForEvent(context.Background(), memberCaller(), event.Slug)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSignupService_ListForEvent_Anonymous(t *testing.T) {
	event := publishedEvent()
	svc := service.NewSignupService(&mockSignupRepo{}, eventRepoReturning(event), &mockUserRepo{})

	_, err := svc.ListForEvent(context.Background(), nil, event.Slug)

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestSignupService_ListForEvent_EventNotFound(t *testing.T) {
	events := &mockEventRepo{
		getBySlug: func(_ context.Context, _ string) (domain.Event, error) {
			return domain.Event{}, domain.ErrNotFound
		},
	}
	svc := service.NewSignupService(&mockSignupRepo{}, events, &mockUserRepo{})

	_, err := svc.ListForEvent(context.Background(), staffCaller(), "no-such-event")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
