// Package domain contains the core data types for the attendance portal.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Employee represents a temporary employee in the roster.
// Tag is the badge identifier staff type (or scan) at the kiosk; it is unique
// across the roster, compared case-insensitively.
// MaternalSurname is nil when the employee did not provide one.
type Employee struct {
	ID              uuid.UUID `json:"id"`
	Tag             string    `json:"tag"`
	GivenName       string    `json:"given_name"`
	PaternalSurname string    `json:"paternal_surname"`
	MaternalSurname *string   `json:"maternal_surname,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FullName joins the given name and surnames with single spaces, omitting the
// maternal surname when absent or blank.
func (e Employee) FullName() string {
	parts := []string{e.GivenName, e.PaternalSurname}
	if e.MaternalSurname != nil {
		if m := strings.TrimSpace(*e.MaternalSurname); m != "" {
			parts = append(parts, m)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// NormalizeTag trims surrounding whitespace and upper-cases a tag for
// case-insensitive comparison. All tag lookups go through this.
func NormalizeTag(tag string) string {
	return strings.ToUpper(strings.TrimSpace(tag))
}
