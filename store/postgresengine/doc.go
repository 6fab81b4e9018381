// Package postgresengine provides a PostgreSQL implementation of the record store.
//
// Each table keeps one JSONB document per record, next to the record id, an optimistic version,
// the creation and update timestamps, and a sequence used for insertion ordering.
// Filters, patches, and change sets from package store are translated into SQL with goqu.
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX)
//   - Atomic change sets with affected-rows expectations, reported as store.ErrConcurrencyConflict
//   - Unique violations reported as store.ErrDuplicateRecord
//   - Read routing to a replica pool (pgx only) via store.WithReadFromReplica
//   - Optional logging, metrics, and tracing
//
// Usage examples:
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	rs, _ := postgresengine.NewStoreFromPGXPool(db, postgresengine.WithLogger(logger))
//	_ = rs.EnsureSchema(ctx, []string{"books", "members", "transactions"})
//
//	records, _ := rs.Select(ctx, "books", store.BuildFilter().Where(store.P("status", "available")).Finalize())
//	err := rs.Apply(ctx, store.InsertChange("transactions", record), bookUpdate.ExpectingAffected(1))
package postgresengine
