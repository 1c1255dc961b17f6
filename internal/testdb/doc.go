// Package testdb provides helpers for integration tests that run against a
// real PostgreSQL database.
//
// Tests using this package carry the "integration" build tag and are skipped
// when no test database URL is configured (TRIVIA_TEST_DB_URL or
// DATABASE_URL; see ciutil.GetTestDatabaseURL):
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//		s := postgres.NewPostgresQuestionStore(tx, nil)
//		...
//	})
//
// Every test body runs inside a transaction that is rolled back afterwards.
package testdb
