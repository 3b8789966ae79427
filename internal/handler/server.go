// Package handler implements the HTTP handlers for the club site API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (event.go, signup.go, etc.) but all share the same Server struct so
// they can access its dependencies. Handlers decode and encode JSON and map
// domain errors to status codes; every business rule lives in the services.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/anumc/clubsite/internal/auth"
	"github.com/anumc/clubsite/internal/domain"
	"github.com/anumc/clubsite/internal/middleware"
	"github.com/anumc/clubsite/internal/repo"
	"github.com/anumc/clubsite/internal/service"
)

// EventServicer defines the business operations the event handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type EventServicer interface {
	Create(ctx context.Context, caller *domain.Caller, event domain.Event) (domain.Event, error)
	GetBySlug(ctx context.Context, slug string) (domain.Event, error)
	List(ctx context.Context, f repo.EventFilter) ([]domain.Event, error)
	Update(ctx context.Context, caller *domain.Caller, slug string, event domain.Event) (domain.Event, error)
}

// SignupServicer defines the business operations the signup handlers depend on.
type SignupServicer interface {
	Create(ctx context.Context, caller *domain.Caller, eventSlug string, signup domain.Signup) (domain.Signup, error)
	ListForEvent(ctx context.Context, caller *domain.Caller, eventSlug string) ([]domain.Signup, error)
}

// AnnouncementServicer defines the business operations the announcement
// handlers depend on.
type AnnouncementServicer interface {
	ListHome(ctx context.Context) ([]domain.Announcement, error)
	List(ctx context.Context, caller *domain.Caller, displayOnHome *bool, p domain.PaginationParams) ([]domain.Announcement, int64, error)
	Create(ctx context.Context, caller *domain.Caller, a domain.Announcement) (domain.Announcement, error)
	Update(ctx context.Context, caller *domain.Caller, a domain.Announcement) (domain.Announcement, error)
	Delete(ctx context.Context, caller *domain.Caller, id uuid.UUID) error
}

// UserServicer defines the business operations the auth handlers depend on.
type UserServicer interface {
	Register(ctx context.Context, in service.RegisterInput) (domain.User, error)
	Login(ctx context.Context, username, password string) (domain.User, error)
}

// Server holds the dependencies shared by all HTTP handlers.
type Server struct {
	events        EventServicer
	signups       SignupServicer
	announcements AnnouncementServicer
	users         UserServicer
	tokens        *auth.JWTManager
}

// NewServer constructs the Server with all its dependencies.
func NewServer(events EventServicer, signups SignupServicer, announcements AnnouncementServicer, users UserServicer, tokens *auth.JWTManager) *Server {
	return &Server{
		events:        events,
		signups:       signups,
		announcements: announcements,
		users:         users,
		tokens:        tokens,
	}
}

// Routes builds the chi router for the full API surface. Token resolution is
// applied to every route; RequireAuth additionally guards the routes whose
// handlers would otherwise always answer 401.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.OptionalAuth(s.tokens))

	r.Get("/health", s.Health)
	r.Get("/home", s.Home)

	r.Post("/auth/register", s.Register)
	r.Post("/auth/login", s.Login)

	r.Get("/events", s.ListEvents)
	r.Get("/events/{slug}", s.GetEvent)
	r.Get("/announcements", s.ListAnnouncements)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(s.tokens))

		r.Post("/events", s.CreateEvent)
		r.Put("/events/{slug}", s.UpdateEvent)
		r.Get("/events/{slug}/signups", s.ListSignups)
		r.Post("/events/{slug}/signups", s.CreateSignup)

		r.Post("/announcements", s.CreateAnnouncement)
		r.Put("/announcements/{id}", s.UpdateAnnouncement)
		r.Delete("/announcements/{id}", s.DeleteAnnouncement)
	})

	return r
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
