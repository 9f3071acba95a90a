package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tagpoint/backend/internal/domain"
)

// registerEmployeeRequest is the admin registration DTO. Every constraint is
// declared once, here, and checked before any business logic runs; the service
// re-checks trimmed emptiness so whitespace-only fields cannot sneak through.
type registerEmployeeRequest struct {
	Tag             string  `json:"tag" validate:"required,max=50"`
	GivenName       string  `json:"given_name" validate:"required,max=100"`
	PaternalSurname string  `json:"paternal_surname" validate:"required,max=100"`
	MaternalSurname *string `json:"maternal_surname" validate:"omitempty,max=100"`
}

// flashResponse mirrors the admin SPA's redirect-with-flash flow: the frontend
// shows Message after navigating back to the roster.
type flashResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Employee *domain.Employee `json:"employee,omitempty"`
}

// handleListEmployees handles GET /admin/employees.
// Returns the roster ordered by paternal then maternal surname — the order the
// admin index renders it in.
func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.directory.List(r.Context())
	if err != nil {
		writeDomainError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": employees})
}

// handleRegisterEmployee handles POST /admin/employees.
func (s *Server) handleRegisterEmployee(w http.ResponseWriter, r *http.Request) {
	var req registerEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeValidatorError(w, err)
		return
	}

	created, err := s.directory.Register(r.Context(), domain.Employee{
		Tag:             req.Tag,
		GivenName:       req.GivenName,
		PaternalSurname: req.PaternalSurname,
		MaternalSurname: req.MaternalSurname,
	})
	if err != nil {
		writeDomainError(w, err, "employee not found")
		return
	}

	writeJSON(w, http.StatusCreated, flashResponse{
		Success:  true,
		Message:  "Employee registered successfully.",
		Employee: &created,
	})
}

// handleRemoveEmployee handles DELETE /admin/employees/{id}.
// Removing an employee takes all their attendance events with them — the
// storage cascade guarantees no orphaned events survive.
func (s *Server) handleRemoveEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeRequestError(w, "id must be a valid UUID")
		return
	}

	if err := s.directory.Remove(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeDomainError(w, err, "employee not found")
			return
		}
		writeDomainError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, flashResponse{
		Success: true,
		Message: "Employee removed successfully.",
	})
}
