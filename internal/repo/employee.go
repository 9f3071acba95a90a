package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tagpoint/backend/internal/domain"
)

// EmployeeRepo defines the persistence operations for the employee roster.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type EmployeeRepo interface {
	// Create inserts a new employee and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	// Returns domain.ErrConflict if the tag collides, case-insensitively,
	// with an existing employee.
	Create(ctx context.Context, emp domain.Employee) (domain.Employee, error)

	// GetByID retrieves a single employee by its UUID primary key.
	// Returns domain.ErrNotFound if no employee with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Employee, error)

	// List returns the full roster ordered by paternal then maternal surname.
	List(ctx context.Context) ([]domain.Employee, error)

	// FindByTag retrieves the employee whose tag equals the given value,
	// compared case-insensitively. Callers pass the already-normalized tag
	// (see domain.NormalizeTag). Returns domain.ErrNotFound for absence.
	FindByTag(ctx context.Context, tag string) (domain.Employee, error)

	// SearchByName returns at most limit employees whose concatenated
	// lower-cased full name contains every token as a substring.
	// Ordered by paternal surname, maternal surname, then id.
	SearchByName(ctx context.Context, tokens []string, limit int) ([]domain.Employee, error)

	// Delete removes an employee by ID. The schema's ON DELETE CASCADE takes
	// every attendance event the employee owns down with it, atomically.
	// Returns domain.ErrNotFound if no employee with that ID exists.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgEmployeeRepo is the Postgres implementation of EmployeeRepo.
type pgEmployeeRepo struct {
	db db
}

// NewEmployeeRepo constructs an EmployeeRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewEmployeeRepo(db db) EmployeeRepo {
	return &pgEmployeeRepo{db: db}
}

// Create inserts a new employee row and returns the full persisted record.
// A unique-index violation on upper(tag) is mapped to domain.ErrConflict, so
// concurrent registrations of the same tag never race past the database.
func (r *pgEmployeeRepo) Create(ctx context.Context, emp domain.Employee) (domain.Employee, error) {
	const q = `
		INSERT INTO employees (tag, given_name, paternal_surname, maternal_surname)
		VALUES (@tag, @given_name, @paternal_surname, @maternal_surname)
		RETURNING id, tag, given_name, paternal_surname, maternal_surname, created_at, updated_at`

	args := pgx.NamedArgs{
		"tag":              emp.Tag,
		"given_name":       emp.GivenName,
		"paternal_surname": emp.PaternalSurname,
		"maternal_surname": emp.MaternalSurname, // nil becomes NULL
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanEmployee(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.Employee{}, fmt.Errorf("repo.EmployeeRepo.Create: tag %q: %w", emp.Tag, domain.ErrConflict)
		}
		return domain.Employee{}, fmt.Errorf("repo.EmployeeRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an employee by primary key.
func (r *pgEmployeeRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Employee, error) {
	const q = `
		SELECT id, tag, given_name, paternal_surname, maternal_surname, created_at, updated_at
		FROM employees
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanEmployee(row)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("repo.EmployeeRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns the roster in the admin panel's display order.
func (r *pgEmployeeRepo) List(ctx context.Context) ([]domain.Employee, error) {
	const q = `
		SELECT id, tag, given_name, paternal_surname, maternal_surname, created_at, updated_at
		FROM employees
		ORDER BY paternal_surname, maternal_surname NULLS FIRST, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.EmployeeRepo.List: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows, "repo.EmployeeRepo.List")
}

// FindByTag matches the normalized tag against upper(tag), which is exactly
// the expression the unique index covers.
func (r *pgEmployeeRepo) FindByTag(ctx context.Context, tag string) (domain.Employee, error) {
	const q = `
		SELECT id, tag, given_name, paternal_surname, maternal_surname, created_at, updated_at
		FROM employees
		WHERE upper(tag) = @tag`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"tag": tag})
	result, err := scanEmployee(row)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("repo.EmployeeRepo.FindByTag: %w", err)
	}
	return result, nil
}

// SearchByName requires every token to appear as a substring of the
// lower-cased "given paternal maternal" concatenation. An absent maternal
// surname contributes an empty string, not the text "null".
// The WHERE clause is assembled per token because pgx cannot bind a variable
// number of AND conditions from a constant query.
func (r *pgEmployeeRepo) SearchByName(ctx context.Context, tokens []string, limit int) ([]domain.Employee, error) {
	args := pgx.NamedArgs{"limit": limit}

	var conds []string
	for i, tok := range tokens {
		name := fmt.Sprintf("token%d", i)
		conds = append(conds, fmt.Sprintf(
			"lower(concat_ws(' ', given_name, paternal_surname, coalesce(maternal_surname, ''))) LIKE '%%' || @%s || '%%'", name))
		args[name] = strings.ToLower(tok)
	}

	q := `
		SELECT id, tag, given_name, paternal_surname, maternal_surname, created_at, updated_at
		FROM employees`
	if len(conds) > 0 {
		q += "\n\t\tWHERE " + strings.Join(conds, "\n\t\t  AND ")
	}
	q += `
		ORDER BY paternal_surname, maternal_surname NULLS FIRST, id
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.EmployeeRepo.SearchByName: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows, "repo.EmployeeRepo.SearchByName")
}

// Delete removes an employee by primary key; the FK cascade removes its events.
func (r *pgEmployeeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM employees WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.EmployeeRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EmployeeRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// collectEmployees drains rows into a slice, wrapping errors with op.
func collectEmployees(rows pgx.Rows, op string) ([]domain.Employee, error) {
	employees := []domain.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return employees, nil
}

// scanEmployee maps a single database row into a domain.Employee.
// It handles the UUID and nullable maternal_surname conversions.
func scanEmployee(s scanner) (domain.Employee, error) {
	var (
		e        domain.Employee
		id       pgtype.UUID
		maternal pgtype.Text
	)

	err := s.Scan(&id, &e.Tag, &e.GivenName, &e.PaternalSurname, &maternal, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Employee{}, domain.ErrNotFound
		}
		return domain.Employee{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	if maternal.Valid {
		m := maternal.String
		e.MaternalSurname = &m
	}

	return e, nil
}
