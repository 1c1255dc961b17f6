// Package testutils holds helpers shared by tests across packages: a
// capturing slog handler and bearer token minting.
package testutils
