package pgtest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/stretchr/testify/require"
)

// EnvTestDSN names the environment variable holding the test database DSN.
const EnvTestDSN = "CIRCULATION_TEST_DSN"

// DSNOrSkip returns the test DSN or skips the test.
func DSNOrSkip(t testing.TB) string {
	t.Helper()

	dsn := os.Getenv(EnvTestDSN)
	if dsn == "" {
		t.Skipf("%s is not set, skipping PostgreSQL integration test", EnvTestDSN)
	}

	return dsn
}

// NewPGXPool connects a small pgx pool to the test database and closes it on cleanup.
func NewPGXPool(t testing.TB) *pgxpool.Pool {
	t.Helper()

	dbConfig, err := pgxpool.ParseConfig(DSNOrSkip(t))
	require.NoError(t, err, "parsing the test DSN failed")

	dbConfig.MaxConns = 10
	dbConfig.MinConns = 1
	dbConfig.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	require.NoError(t, err, "connecting the pgx pool failed")
	t.Cleanup(pool.Close)

	return pool
}

// NewSQLDB opens a lib/pq backed sql.DB to the test database.
func NewSQLDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("postgres", DSNOrSkip(t))
	require.NoError(t, err, "opening sql.DB failed")
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// NewSQLX opens a lib/pq backed sqlx.DB to the test database.
func NewSQLX(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("postgres", DSNOrSkip(t))
	require.NoError(t, err, "opening sqlx.DB failed")
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// TruncateTables empties the given tables.
func TruncateTables(t testing.TB, pool *pgxpool.Pool, tables ...string) {
	t.Helper()

	for _, table := range tables {
		_, err := pool.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s", table))
		require.NoError(t, err, "truncating %s failed", table)
	}
}
