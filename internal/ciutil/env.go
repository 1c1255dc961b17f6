package ciutil

import (
	"log/slog"
	"os"

	"github.com/fullstack-nd/trivia-coffee-api/internal/redact"
)

// Environment variables read by the test helpers.
const (
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvCircleCI      = "CIRCLECI"

	EnvDatabaseURL  = "DATABASE_URL"
	EnvTestDBURL    = "TRIVIA_TEST_DB_URL"
	EnvTriviaDBURL  = "TRIVIA_DATABASE_URL"
	EnvCoffeeDBURL  = "COFFEE_DATABASE_URL"
	EnvRedisURL     = "REDIS_URL"
	EnvTestRedisURL = "TRIVIA_TEST_REDIS_URL"
)

// IsCI reports whether the process runs under a known CI provider.
func IsCI() bool {
	for _, name := range []string{EnvCI, EnvGitHubActions, EnvGitLabCI, EnvJenkinsURL, EnvCircleCI} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// GetEnvWithFallbacks returns the first non-empty variable in envVars, or
// defaultValue. Using anything but the first name logs a warning.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, name := range envVars {
		val := os.Getenv(name)
		if val == "" {
			continue
		}
		if i > 0 && logger != nil {
			logger.Warn("using fallback environment variable",
				slog.String("used_var", name),
				slog.String("preferred_var", envVars[0]),
				slog.String("value", redact.String(val)))
		}
		return val
	}
	return defaultValue
}
