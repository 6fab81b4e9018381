// Package circulationtest seeds stores with books, members, loans and reservations for handler and query tests.
//
// Fixtures are written through shell.ChangesFrom, the same path command handlers use,
// so seeded documents look exactly like the ones the handlers produce.
package circulationtest
