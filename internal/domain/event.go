package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Category is the kind of attendance event a kiosk records.
type Category string

const (
	// CategoryAttendance is an on-time check-in.
	CategoryAttendance Category = "attendance"
	// CategoryTardy is a late check-in.
	CategoryTardy Category = "tardy"
	// CategoryVisit is a visitor sign-in.
	CategoryVisit Category = "visit"
)

// ParseCategory validates a raw string against the allowed categories.
// There is no default — callers must supply one of the three values.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryAttendance, CategoryTardy, CategoryVisit:
		return Category(s), nil
	}
	return "", fmt.Errorf("%w: category must be one of attendance, tardy, visit", ErrValidation)
}

// AttendanceEvent is one append-only check-in record.
// Events are never updated; they disappear only when their owning employee is
// deleted (storage-level cascade).
type AttendanceEvent struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	Category   Category  `json:"category"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// DayEntry is one row of the day log: an event join-expanded with the owning
// employee's tag and full name. The read side returns these flat rows so the
// HTTP layer never chases relations.
type DayEntry struct {
	EventID    uuid.UUID
	Tag        string
	FullName   string
	RecordedAt time.Time
	Category   Category
}
