//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/require"

	"github.com/fullstack-nd/trivia-coffee-api/internal/ciutil"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/migrate"
)

// TestTimeout bounds database setup calls.
const TestTimeout = 5 * time.Second

// GetTestDatabaseURL returns the database URL for integration tests.
func GetTestDatabaseURL() string {
	return ciutil.GetTestDatabaseURL(nil)
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// GetTestDBWithT opens the test database, applies both migration sets and
// registers cleanup. The test is skipped when DATABASE_URL is unset.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()
	if ShouldSkipDatabaseTest() {
		t.Skip("no test database configured - skipping integration test")
	}

	db, err := sql.Open("pgx", GetTestDatabaseURL())
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "failed to ping test database")

	for _, src := range []migrate.Source{migrate.Trivia(), migrate.Coffee()} {
		require.NoError(t, migrate.NewRunner(db, src, nil).Up(context.Background()),
			"failed to apply %s migrations", src.Name)
	}
	return db
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			// ALLOW-PANIC
			panic(r)
		}
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
