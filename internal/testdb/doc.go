// Package testdb provides helpers for tests that run against a real
// PostgreSQL database.
//
// Tests using this package should carry the integration build tag and are
// skipped when DATABASE_URL is not set:
//
//	//go:build integration
//
//	func TestSomething(t *testing.T) {
//		db := testdb.GetTestDBWithT(t)
//		testdb.SetupTestDatabaseSchema(t, db)
//		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//			// tx is rolled back when fn returns
//		})
//	}
package testdb
