// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. It handles
// connection setup, query execution, mapping of SQLSTATE codes to store
// errors, and the embedded goose migrations for both databases.
package postgres
