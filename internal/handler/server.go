// Package handler implements the HTTP layer of the attendance portal.
// Handlers decode and validate request DTOs, call the services, and translate
// results and sentinel errors into JSON envelopes. No business logic lives here.
package handler

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tagpoint/backend/internal/domain"
)

// DirectoryServicer defines the roster operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type DirectoryServicer interface {
	Register(ctx context.Context, emp domain.Employee) (domain.Employee, error)
	Remove(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Employee, error)
	FindByTag(ctx context.Context, tag string) (domain.Employee, error)
	SearchByName(ctx context.Context, query string) ([]domain.Employee, error)
}

// CheckinServicer defines the check-in and day-log operations the handlers depend on.
type CheckinServicer interface {
	CheckIn(ctx context.Context, employeeID uuid.UUID, category domain.Category) (domain.DayEntry, error)
	Today(ctx context.Context, category domain.Category) ([]domain.DayEntry, error)
}

// Middleware is the standard net/http middleware shape chi composes.
type Middleware = func(http.Handler) http.Handler

// Server holds the handlers' dependencies. Methods live in domain-specific
// files (admin.go, public.go) but all operate on this struct.
type Server struct {
	directory DirectoryServicer
	checkin   CheckinServicer
	validate  *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(directory DirectoryServicer, checkin CheckinServicer) *Server {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report field errors under their JSON names so the SPA can attach
	// messages to form inputs without a translation table.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Server{
		directory: directory,
		checkin:   checkin,
		validate:  v,
	}
}

// Router builds the portal's route tree. The admin group sits behind
// adminGate (JWT verification); the public group sits behind publicLimit
// (per-IP rate limiting). Global middleware is wired by the caller.
func (s *Server) Router(adminGate, publicLimit Middleware) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)

	r.Route("/admin", func(r chi.Router) {
		r.Use(adminGate)
		r.Get("/employees", s.handleListEmployees)
		r.Post("/employees", s.handleRegisterEmployee)
		r.Delete("/employees/{id}", s.handleRemoveEmployee)
	})

	r.Route("/public", func(r chi.Router) {
		r.Use(publicLimit)
		r.Get("/lookup-by-tag", s.handleLookupByTag)
		r.Get("/lookup-by-name", s.handleLookupByName)
		r.Post("/check-in", s.handleCheckIn)
		r.Get("/today", s.handleToday)
	})

	return r
}

// handleHealth reports liveness for load balancers and uptime probes.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
