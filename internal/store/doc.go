// Package store defines the persistence interfaces used by the services,
// the sentinel errors every implementation returns, and transaction helpers.
// Implementations live under internal/platform.
package store
