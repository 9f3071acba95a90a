// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// AdminJWTSecret is the HS256 secret used to verify bearer tokens on the
	// admin routes. Required. Token issuance belongs to the login service,
	// not this server.
	AdminJWTSecret string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// PublicRateLimit is the limiter rate applied to the public portal
	// routes, in ulule/limiter notation ("60-M" = 60 requests per minute
	// per client IP). Defaults to "60-M".
	PublicRateLimit string

	// Timezone names the location used to compute the kiosk's calendar day.
	// Empty means the server's local timezone. Set TIMEZONE to an IANA name
	// (e.g. "America/Mexico_City") to pin it.
	Timezone *time.Location
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory is loaded first when present, so local
// development does not need exported variables.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	// Ignore the error: a missing .env file simply means the variables come
	// from the real environment.
	_ = godotenv.Load()

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		PublicRateLimit: getEnv("PUBLIC_RATE_LIMIT", "60-M"),
		Timezone:        time.Local,
	}

	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
		}
		cfg.Timezone = loc
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.AdminJWTSecret = os.Getenv("ADMIN_JWT_SECRET")
	if cfg.AdminJWTSecret == "" {
		missing = append(missing, "ADMIN_JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
