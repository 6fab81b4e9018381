// Package pgtest connects integration tests to a PostgreSQL test database.
//
// The DSN comes from the CIRCULATION_TEST_DSN environment variable. Tests calling into this package
// are skipped when it is not set, so the unit test suite runs without a database.
package pgtest
