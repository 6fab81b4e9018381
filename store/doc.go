// Package store provides the storage abstractions used by the circulation service
// to persist catalog, membership and ledger records.
//
// Records are JSON documents keyed by a UUID and kept in one table per record kind.
// The package is agnostic of the concrete storage engine: it defines the record DTO,
// the filter and patch builders, atomic change sets and the observability interfaces,
// which are implemented by engines such as postgresengine and memengine.
//
// A filter combines conditions on document fields:
//   - equality (JSON containment)
//   - numeric comparisons against constants or against other fields
//   - presence/absence of a field
//   - timestamps before/after an instant
//   - case-insensitive substring matches
//   - the record version (optimistic concurrency)
//
// Common usage pattern:
//
//	filter := store.BuildFilter().
//		Where(store.P("id", bookID.String())).
//		And(store.GreaterThan("available_copies", 0)).
//		Finalize()
//
//	patch := store.BuildPatch().
//		Increment("available_copies", -1).
//		Set("status", "checked_out").
//		Finalize()
//
//	err := engine.Apply(ctx,
//		store.InsertChange("transactions", record),
//		store.UpdateChange("books", filter, patch).ExpectingAffected(1),
//	)
//	if errors.Is(err, store.ErrConcurrencyConflict) {
//		// re-read and decide again
//	}
package store
