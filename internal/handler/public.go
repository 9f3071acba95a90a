package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/tagpoint/backend/internal/domain"
)

// timeOfDayLayout is the wall-clock format the kiosk displays next to each
// check-in row.
const timeOfDayLayout = "15:04:05"

// employeeSummary is the public lookup row: just enough for the kiosk to
// confirm an identity, no roster timestamps.
type employeeSummary struct {
	ID              uuid.UUID `json:"id"`
	Tag             string    `json:"tag"`
	GivenName       string    `json:"given_name"`
	PaternalSurname string    `json:"paternal_surname"`
	MaternalSurname *string   `json:"maternal_surname"`
}

// lookupByTagResponse reports presence explicitly: absence of a tag is a
// normal outcome at the kiosk, not an error page.
type lookupByTagResponse struct {
	Found           bool      `json:"found"`
	ID              uuid.UUID `json:"id"`
	Tag             string    `json:"tag"`
	GivenName       string    `json:"given_name"`
	PaternalSurname string    `json:"paternal_surname"`
	MaternalSurname *string   `json:"maternal_surname"`
}

// checkInRequest is the kiosk's check-in DTO. The kiosk resolves identity
// first (by tag or from the name pick list) and always submits a concrete id.
type checkInRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Category   string `json:"category" validate:"required,oneof=attendance tardy visit"`
}

// checkInResponse confirms one recorded event, merging event and employee data.
type checkInResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	ID        uuid.UUID `json:"id"`
	Tag       string    `json:"tag"`
	FullName  string    `json:"full_name"`
	Timestamp string    `json:"timestamp"`
	Category  string    `json:"category"`
}

// todayEntryResponse is one row of the day log the kiosk table polls.
type todayEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	Tag       string    `json:"tag"`
	FullName  string    `json:"full_name"`
	Timestamp string    `json:"timestamp"`
	Category  string    `json:"category"`
}

// handleLookupByTag handles GET /public/lookup-by-tag?tag=.
// Matching is case-insensitive; a miss returns 404 with found:false.
func (s *Server) handleLookupByTag(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")

	emp, err := s.directory.FindByTag(r.Context(), tag)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"found":   false,
				"message": "Tag not found.",
			})
			return
		}
		writeDomainError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, lookupByTagResponse{
		Found:           true,
		ID:              emp.ID,
		Tag:             emp.Tag,
		GivenName:       emp.GivenName,
		PaternalSurname: emp.PaternalSurname,
		MaternalSurname: emp.MaternalSurname,
	})
}

// handleLookupByName handles GET /public/lookup-by-name?name= (min length 2).
// Returns at most 10 candidates; the kiosk presents them and the user picks —
// the server never auto-selects among name matches.
func (s *Server) handleLookupByName(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("name")

	employees, err := s.directory.SearchByName(r.Context(), query)
	if err != nil {
		writeDomainError(w, err, "")
		return
	}

	results := make([]employeeSummary, len(employees))
	for i, emp := range employees {
		results[i] = employeeSummary{
			ID:              emp.ID,
			Tag:             emp.Tag,
			GivenName:       emp.GivenName,
			PaternalSurname: emp.PaternalSurname,
			MaternalSurname: emp.MaternalSurname,
		}
	}
	writeJSON(w, http.StatusOK, results)
}

// handleCheckIn handles POST /public/check-in.
func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeValidatorError(w, err)
		return
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		writeRequestError(w, "employee_id must be a valid UUID")
		return
	}

	entry, err := s.checkin.CheckIn(r.Context(), employeeID, domain.Category(req.Category))
	if err != nil {
		writeDomainError(w, err, "employee not found")
		return
	}

	writeJSON(w, http.StatusCreated, checkInResponse{
		Success:   true,
		Message:   "Check-in recorded successfully!",
		ID:        entry.EventID,
		Tag:       entry.Tag,
		FullName:  entry.FullName,
		Timestamp: entry.RecordedAt.Format(timeOfDayLayout),
		Category:  string(entry.Category),
	})
}

// handleToday handles GET /public/today?category= (default "attendance").
// The kiosk polls this to refresh its day table; the read is side-effect free.
func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("category")
	if raw == "" {
		raw = string(domain.CategoryAttendance)
	}
	category, err := domain.ParseCategory(raw)
	if err != nil {
		writeDomainError(w, err, "")
		return
	}

	entries, err := s.checkin.Today(r.Context(), category)
	if err != nil {
		writeDomainError(w, err, "")
		return
	}

	results := make([]todayEntryResponse, len(entries))
	for i, entry := range entries {
		results[i] = todayEntryResponse{
			ID:        entry.EventID,
			Tag:       entry.Tag,
			FullName:  entry.FullName,
			Timestamp: entry.RecordedAt.Format(timeOfDayLayout),
			Category:  string(entry.Category),
		}
	}
	writeJSON(w, http.StatusOK, results)
}
