package ciutil

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/fullstack-nd/trivia-coffee-api/internal/redact"
)

// Connection defaults of the CI Postgres service container.
const (
	StandardCIUser     = "postgres"
	StandardCIPassword = "postgres"
	StandardCIPort     = "5432"
	StandardCIDatabase = "trivia_test"
	StandardCIOptions  = "sslmode=disable"
)

// GetTestDatabaseURL returns the Postgres URL for integration tests, or ""
// when none is configured. In CI the credentials are replaced with the
// service container's and missing port, database and options are filled in.
func GetTestDatabaseURL(logger *slog.Logger) string {
	dbURL := GetEnvWithFallbacks(
		[]string{EnvTestDBURL, EnvDatabaseURL, EnvTriviaDBURL, EnvCoffeeDBURL},
		"",
		logger,
	)
	if dbURL == "" || !IsCI() {
		return dbURL
	}

	standardized, err := StandardizeDatabaseURL(dbURL)
	if err != nil {
		if logger != nil {
			logger.Error("failed to standardize database URL",
				slog.String("error", err.Error()),
				slog.String("url", redact.String(dbURL)))
		}
		return dbURL
	}
	if standardized != dbURL && logger != nil {
		logger.Info("standardized database URL for CI",
			slog.String("url", redact.String(standardized)))
	}
	return standardized
}

// GetTestRedisURL returns the Redis URL for integration tests, or "".
func GetTestRedisURL(logger *slog.Logger) string {
	return GetEnvWithFallbacks([]string{EnvTestRedisURL, EnvRedisURL}, "", logger)
}

// StandardizeDatabaseURL rewrites a postgres URL to the CI service
// credentials. Non-postgres URLs are returned unchanged.
func StandardizeDatabaseURL(dbURL string) (string, error) {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse database URL: %w", err)
	}
	if parsed.Scheme != "postgres" && parsed.Scheme != "postgresql" {
		return dbURL, nil
	}

	out := *parsed
	out.User = url.UserPassword(StandardCIUser, StandardCIPassword)

	host := parsed.Hostname()
	if parsed.Port() == "" && (host == "" || host == "localhost" || host == "127.0.0.1") {
		if host == "" {
			host = "localhost"
		}
		out.Host = host + ":" + StandardCIPort
	}
	if strings.TrimPrefix(parsed.Path, "/") == "" {
		out.Path = "/" + StandardCIDatabase
	}
	if parsed.RawQuery == "" {
		out.RawQuery = StandardCIOptions
	}
	return out.String(), nil
}
