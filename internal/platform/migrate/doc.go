// Package migrate runs the embedded goose migrations for the trivia and
// coffee-shop databases and routes goose output through slog.
package migrate
