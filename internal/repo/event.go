package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tagpoint/backend/internal/domain"
)

// EventRepo defines the persistence operations for the attendance ledger.
// The ledger is append-only: there is no update, and deletion happens only
// through the employee FK cascade.
type EventRepo interface {
	// Create inserts a new attendance event and returns the persisted record.
	// The caller supplies RecordedAt (stamped by the service's clock).
	// Returns domain.ErrNotFound if EmployeeID does not resolve to an
	// existing employee, including when a check-in races a cascade delete.
	Create(ctx context.Context, event domain.AttendanceEvent) (domain.AttendanceEvent, error)

	// ListDay returns day-log entries whose recorded_at falls in [from, to)
	// and whose category matches, newest first. Each entry is join-expanded
	// with the owning employee's tag and name parts.
	ListDay(ctx context.Context, from, to time.Time, category domain.Category) ([]domain.DayEntry, error)

	// ListByEmployee returns all events owned by an employee, newest first.
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]domain.AttendanceEvent, error)
}

// pgEventRepo is the Postgres implementation of EventRepo.
type pgEventRepo struct {
	db db
}

// NewEventRepo constructs an EventRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewEventRepo(db db) EventRepo {
	return &pgEventRepo{db: db}
}

// Create inserts one event row. A foreign-key violation means the employee
// vanished between identify and record, which the domain treats as not found.
func (r *pgEventRepo) Create(ctx context.Context, event domain.AttendanceEvent) (domain.AttendanceEvent, error) {
	const q = `
		INSERT INTO attendance_events (employee_id, category, recorded_at)
		VALUES (@employee_id, @category, @recorded_at)
		RETURNING id, employee_id, category, recorded_at, created_at`

	args := pgx.NamedArgs{
		"employee_id": event.EmployeeID,
		"category":    string(event.Category),
		"recorded_at": event.RecordedAt,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanEvent(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.AttendanceEvent{}, fmt.Errorf("repo.EventRepo.Create: employee %s: %w", event.EmployeeID, domain.ErrNotFound)
		}
		return domain.AttendanceEvent{}, fmt.Errorf("repo.EventRepo.Create: %w", err)
	}
	return result, nil
}

// ListDay performs the explicit join the read side needs, so callers get flat
// rows instead of an object graph to lazily resolve.
func (r *pgEventRepo) ListDay(ctx context.Context, from, to time.Time, category domain.Category) ([]domain.DayEntry, error) {
	const q = `
		SELECT ev.id, emp.tag, emp.given_name, emp.paternal_surname, emp.maternal_surname,
		       ev.recorded_at, ev.category
		FROM attendance_events ev
		JOIN employees emp ON emp.id = ev.employee_id
		WHERE ev.recorded_at >= @from
		  AND ev.recorded_at < @to
		  AND ev.category = @category
		ORDER BY ev.recorded_at DESC`

	args := pgx.NamedArgs{"from": from, "to": to, "category": string(category)}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListDay: %w", err)
	}
	defer rows.Close()

	entries := []domain.DayEntry{}
	for rows.Next() {
		var (
			entry    domain.DayEntry
			id       pgtype.UUID
			emp      domain.Employee
			maternal pgtype.Text
		)
		err := rows.Scan(&id, &emp.Tag, &emp.GivenName, &emp.PaternalSurname, &maternal, &entry.RecordedAt, &entry.Category)
		if err != nil {
			return nil, fmt.Errorf("repo.EventRepo.ListDay: scan: %w", err)
		}
		if maternal.Valid {
			m := maternal.String
			emp.MaternalSurname = &m
		}
		entry.EventID = uuid.UUID(id.Bytes)
		entry.Tag = emp.Tag
		entry.FullName = emp.FullName()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListDay: rows: %w", err)
	}
	return entries, nil
}

// ListByEmployee returns every event an employee owns, newest first.
func (r *pgEventRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]domain.AttendanceEvent, error) {
	const q = `
		SELECT id, employee_id, category, recorded_at, created_at
		FROM attendance_events
		WHERE employee_id = @employee_id
		ORDER BY recorded_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"employee_id": employeeID})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListByEmployee: %w", err)
	}
	defer rows.Close()

	events := []domain.AttendanceEvent{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.EventRepo.ListByEmployee: scan: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListByEmployee: rows: %w", err)
	}
	return events, nil
}

// scanEvent maps a single database row into a domain.AttendanceEvent.
func scanEvent(s scanner) (domain.AttendanceEvent, error) {
	var (
		ev    domain.AttendanceEvent
		id    pgtype.UUID
		empID pgtype.UUID
	)

	err := s.Scan(&id, &empID, &ev.Category, &ev.RecordedAt, &ev.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AttendanceEvent{}, domain.ErrNotFound
		}
		return domain.AttendanceEvent{}, err
	}

	ev.ID = uuid.UUID(id.Bytes)
	ev.EmployeeID = uuid.UUID(empID.Bytes)
	return ev, nil
}
