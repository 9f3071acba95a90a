package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tagpoint/backend/internal/domain"
	"github.com/tagpoint/backend/internal/repo"
)

// CheckinService implements the check-in workflow and the day-log read side.
// It holds both repos because confirming a check-in merges event and employee
// data, and it takes a Clock so tests can pin "now".
type CheckinService struct {
	employees repo.EmployeeRepo
	events    repo.EventRepo
	clock     domain.Clock
}

// NewCheckinService constructs a CheckinService backed by the provided repos and clock.
func NewCheckinService(employees repo.EmployeeRepo, events repo.EventRepo, clock domain.Clock) *CheckinService {
	return &CheckinService{employees: employees, events: events, clock: clock}
}

// CheckIn records one attendance event for a concrete employee id and returns
// the confirmation row (event id, tag, full name, timestamp, category).
// Identity resolution by tag or name happens before this call — the kiosk
// always submits an id it already resolved.
//
// Returns domain.ErrValidation for an unknown category and domain.ErrNotFound
// when the employee does not exist — including the race where the employee is
// deleted between lookup and insert, which the FK surfaces. No retry: the
// caller must re-identify.
func (s *CheckinService) CheckIn(ctx context.Context, employeeID uuid.UUID, category domain.Category) (domain.DayEntry, error) {
	if _, err := domain.ParseCategory(string(category)); err != nil {
		return domain.DayEntry{}, err
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return domain.DayEntry{}, fmt.Errorf("service.CheckinService.CheckIn: %w", err)
	}

	event := domain.AttendanceEvent{
		EmployeeID: emp.ID,
		Category:   category,
		RecordedAt: s.clock.Now(),
	}
	created, err := s.events.Create(ctx, event)
	if err != nil {
		return domain.DayEntry{}, fmt.Errorf("service.CheckinService.CheckIn: %w", err)
	}

	return domain.DayEntry{
		EventID:    created.ID,
		Tag:        emp.Tag,
		FullName:   emp.FullName(),
		RecordedAt: created.RecordedAt,
		Category:   created.Category,
	}, nil
}

// Today returns the current calendar day's events for one category, newest
// first, join-expanded with employee names. "Today" is evaluated at call time
// from the injected clock's location; the read has no side effects, so kiosk
// UIs can poll it freely.
func (s *CheckinService) Today(ctx context.Context, category domain.Category) ([]domain.DayEntry, error) {
	if _, err := domain.ParseCategory(string(category)); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	entries, err := s.events.ListDay(ctx, midnight, midnight.AddDate(0, 0, 1), category)
	if err != nil {
		return nil, fmt.Errorf("service.CheckinService.Today: %w", err)
	}
	if entries == nil {
		return []domain.DayEntry{}, nil
	}
	return entries, nil
}
