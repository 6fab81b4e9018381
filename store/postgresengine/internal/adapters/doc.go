// Package adapters provide database adapter implementations for the PostgreSQL record store.
//
// This package implements the adapter pattern to support multiple PostgreSQL database libraries:
// pgx.Pool, sql.DB, and sqlx.DB. All adapters offer queries, statements, and transactions through
// a common DBAdapter interface, so the record store works the same with any supported connection type.
//
// Only the pgx adapter knows about replicas. It routes reads to the replica pool when the context
// asks for store.ReadFromReplica.
package adapters
