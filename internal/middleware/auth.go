package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// subjectKey is the context key under which the authenticated subject is stored.
type subjectKey struct{}

// AdminClaims are the claims this server expects on admin bearer tokens.
// Tokens are issued by the login service; this middleware only verifies them.
type AdminClaims struct {
	jwt.RegisteredClaims
}

// NewAdminAuth returns a middleware that gates the admin routes behind an
// HS256 bearer token signed with secret. Missing, malformed, or expired tokens
// get a 401 JSON envelope; handlers behind the gate can read the subject via
// SubjectFromContext.
func NewAdminAuth(secret string) func(http.Handler) http.Handler {
	keyFunc := func(_ *jwt.Token) (any, error) { return []byte(secret), nil }

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			claims := &AdminClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc,
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext returns the token subject stored by NewAdminAuth, or ""
// when the request did not pass through the gate.
func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(subjectKey{}).(string)
	return s
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthorized", "message": message},
	})
}
