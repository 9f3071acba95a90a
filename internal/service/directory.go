// Package service contains the business logic for the attendance portal.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tagpoint/backend/internal/domain"
	"github.com/tagpoint/backend/internal/repo"
)

// searchLimit caps name-search results; kiosks show a short pick list, not a
// scrollable roster.
const searchLimit = 10

// minSearchQueryLen is the shortest name query accepted; anything shorter
// matches half the roster and is useless for disambiguation.
const minSearchQueryLen = 2

// DirectoryService implements the employee roster operations: registration,
// removal, and the two kiosk lookup modes.
type DirectoryService struct {
	employees repo.EmployeeRepo
}

// NewDirectoryService constructs a DirectoryService backed by the provided EmployeeRepo.
func NewDirectoryService(employees repo.EmployeeRepo) *DirectoryService {
	return &DirectoryService{employees: employees}
}

// Register validates and persists a new employee.
// Returns domain.ErrValidation if a required field is blank or oversized, and
// domain.ErrConflict (from the repo's unique index) on a duplicate tag.
func (s *DirectoryService) Register(ctx context.Context, in domain.Employee) (domain.Employee, error) {
	emp := domain.Employee{
		Tag:             strings.TrimSpace(in.Tag),
		GivenName:       strings.TrimSpace(in.GivenName),
		PaternalSurname: strings.TrimSpace(in.PaternalSurname),
	}
	if in.MaternalSurname != nil {
		if m := strings.TrimSpace(*in.MaternalSurname); m != "" {
			emp.MaternalSurname = &m
		}
	}

	if err := validateEmployee(emp); err != nil {
		return domain.Employee{}, err
	}

	result, err := s.employees.Create(ctx, emp)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("service.DirectoryService.Register: %w", err)
	}
	return result, nil
}

// Remove deletes an employee; the storage cascade removes all owned events in
// the same statement, so a racing check-in can never leave an orphan behind.
// Returns domain.ErrNotFound if the id is unknown.
func (s *DirectoryService) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DirectoryService.Remove: %w", err)
	}
	return nil
}

// List returns the roster ordered by paternal then maternal surname.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DirectoryService) List(ctx context.Context) ([]domain.Employee, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DirectoryService.List: %w", err)
	}
	if employees == nil {
		return []domain.Employee{}, nil
	}
	return employees, nil
}

// FindByTag resolves an employee by exact badge tag, case-insensitively.
// Absence is an expected outcome: the caller gets domain.ErrNotFound, which
// the HTTP layer renders as a {found:false} payload, not an error page.
func (s *DirectoryService) FindByTag(ctx context.Context, tag string) (domain.Employee, error) {
	normalized := domain.NormalizeTag(tag)
	if normalized == "" {
		return domain.Employee{}, fmt.Errorf("%w: tag is required", domain.ErrValidation)
	}
	if len(normalized) > 50 {
		return domain.Employee{}, fmt.Errorf("%w: tag must be at most 50 characters", domain.ErrValidation)
	}

	result, err := s.employees.FindByTag(ctx, normalized)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("service.DirectoryService.FindByTag: %w", err)
	}
	return result, nil
}

// SearchByName splits the query on whitespace and returns employees whose
// lower-cased "given paternal maternal" concatenation contains every token.
// At most 10 results, ordered by surname then id for a deterministic pick list.
func (s *DirectoryService) SearchByName(ctx context.Context, query string) ([]domain.Employee, error) {
	trimmed := strings.TrimSpace(query)
	if len([]rune(trimmed)) < minSearchQueryLen {
		return nil, fmt.Errorf("%w: name query must be at least %d characters", domain.ErrValidation, minSearchQueryLen)
	}
	if len([]rune(trimmed)) > 100 {
		return nil, fmt.Errorf("%w: name query must be at most 100 characters", domain.ErrValidation)
	}

	tokens := strings.Fields(strings.ToLower(trimmed))

	employees, err := s.employees.SearchByName(ctx, tokens, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("service.DirectoryService.SearchByName: %w", err)
	}
	if employees == nil {
		return []domain.Employee{}, nil
	}
	return employees, nil
}

// validateEmployee enforces the roster's field rules for registration.
// Fields arrive already trimmed.
func validateEmployee(emp domain.Employee) error {
	if emp.Tag == "" {
		return fmt.Errorf("%w: tag is required", domain.ErrValidation)
	}
	if len(emp.Tag) > 50 {
		return fmt.Errorf("%w: tag must be at most 50 characters", domain.ErrValidation)
	}
	if emp.GivenName == "" {
		return fmt.Errorf("%w: given name is required", domain.ErrValidation)
	}
	if len(emp.GivenName) > 100 {
		return fmt.Errorf("%w: given name must be at most 100 characters", domain.ErrValidation)
	}
	if emp.PaternalSurname == "" {
		return fmt.Errorf("%w: paternal surname is required", domain.ErrValidation)
	}
	if len(emp.PaternalSurname) > 100 {
		return fmt.Errorf("%w: paternal surname must be at most 100 characters", domain.ErrValidation)
	}
	if emp.MaternalSurname != nil && len(*emp.MaternalSurname) > 100 {
		return fmt.Errorf("%w: maternal surname must be at most 100 characters", domain.ErrValidation)
	}
	return nil
}
