// Package testdb provides utilities for database integration tests.
//
// Tests run inside a transaction that is rolled back when the test finishes,
// so they can share one database without cleaning up after themselves:
//
//	func TestTaskStore(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        s := postgres.NewPostgresTaskStore(tx, nil)
//	        // ...
//	    })
//	}
//
// GetTestDBWithT skips the test when no database URL is configured, so the
// integration suite is safe to run anywhere with -tags=integration.
package testdb
