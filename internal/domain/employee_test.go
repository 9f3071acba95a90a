package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagpoint/backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestEmployee_FullName(t *testing.T) {
	tests := []struct {
		name string
		emp  domain.Employee
		want string
	}{
		{
			name: "both surnames",
			emp: domain.Employee{
				GivenName:       "Juan",
				PaternalSurname: "Pérez",
				MaternalSurname: strPtr("García"),
			},
			want: "Juan Pérez García",
		},
		{
			name: "no maternal surname",
			emp: domain.Employee{
				GivenName:       "Juan",
				PaternalSurname: "Pérez",
			},
			want: "Juan Pérez",
		},
		{
			name: "blank maternal surname",
			emp: domain.Employee{
				GivenName:       "Juan",
				PaternalSurname: "Pérez",
				MaternalSurname: strPtr("   "),
			},
			want: "Juan Pérez",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.emp.FullName())
		})
	}
}

func TestNormalizeTag(t *testing.T) {
	assert.Equal(t, "A100", domain.NormalizeTag("  a100 "))
	assert.Equal(t, "A100", domain.NormalizeTag("A100"))
	assert.Equal(t, "", domain.NormalizeTag("   "))
}

func TestParseCategory(t *testing.T) {
	for _, raw := range []string{"attendance", "tardy", "visit"} {
		got, err := domain.ParseCategory(raw)
		require.NoError(t, err)
		assert.Equal(t, domain.Category(raw), got)
	}
}

func TestParseCategory_Unknown(t *testing.T) {
	_, err := domain.ParseCategory("lunch")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
