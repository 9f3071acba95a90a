package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagpoint/backend/internal/middleware"
)

const testSecret = "test-secret"

// signToken builds an HS256 token for the given subject and expiry.
func signToken(t *testing.T, secret, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// subjectEchoHandler writes the authenticated subject into the response body.
var subjectEchoHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(middleware.SubjectFromContext(r.Context())))
})

func TestAdminAuth_ValidToken_PassesSubject(t *testing.T) {
	h := middleware.NewAdminAuth(testSecret)(subjectEchoHandler)

	req := httptest.NewRequest(http.MethodGet, "/admin/employees", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "admin-1", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin-1", rec.Body.String())
}

func TestAdminAuth_MissingToken_401(t *testing.T) {
	h := middleware.NewAdminAuth(testSecret)(subjectEchoHandler)

	req := httptest.NewRequest(http.MethodGet, "/admin/employees", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestAdminAuth_WrongSecret_401(t *testing.T) {
	h := middleware.NewAdminAuth(testSecret)(subjectEchoHandler)

	req := httptest.NewRequest(http.MethodGet, "/admin/employees", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "admin-1", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuth_ExpiredToken_401(t *testing.T) {
	h := middleware.NewAdminAuth(testSecret)(subjectEchoHandler)

	req := httptest.NewRequest(http.MethodGet, "/admin/employees", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "admin-1", time.Now().Add(-time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
