package postgresengine_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/store"
	"github.com/AntonStoeckl/library-circulation-go/store/postgresengine"
	"github.com/AntonStoeckl/library-circulation-go/testutil/observability/testdoubles"
	"github.com/AntonStoeckl/library-circulation-go/testutil/pgtest"
)

const itTable = "it_records"

func givenPGXStore(t *testing.T, options ...postgresengine.Option) *postgresengine.Store {
	t.Helper()

	pool := pgtest.NewPGXPool(t)

	rs, err := postgresengine.NewStoreFromPGXPool(pool, options...)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, rs.EnsureSchema(ctx, []string{itTable}, postgresengine.UniqueField{Table: itTable, Key: "isbn"}))
	pgtest.TruncateTables(t, pool, itTable)

	return rs
}

func givenRecord(t *testing.T, dataJSON string) store.StorableRecord {
	t.Helper()

	record, err := store.BuildStorableRecord(uuid.NewString(), []byte(dataJSON))
	require.NoError(t, err)

	return record
}

func Test_FactoryFunctions_Fail_WithNilDatabaseConnection(t *testing.T) {
	_, errPGX := postgresengine.NewStoreFromPGXPool(nil)
	_, errReplica := postgresengine.NewStoreFromPGXPoolAndReplica(nil, nil)
	_, errSQL := postgresengine.NewStoreFromSQLDB(nil)
	_, errSQLX := postgresengine.NewStoreFromSQLX(nil)

	assert.ErrorIs(t, errPGX, store.ErrNilDatabaseConnection)
	assert.ErrorIs(t, errReplica, store.ErrNilDatabaseConnection)
	assert.ErrorIs(t, errSQL, store.ErrNilDatabaseConnection)
	assert.ErrorIs(t, errSQLX, store.ErrNilDatabaseConnection)
}

func Test_Insert_Then_Select_RoundTrips(t *testing.T) {
	// setup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rs := givenPGXStore(t)

	// arrange
	record := givenRecord(t, `{"title":"Dune","available":2}`)

	// act
	inserted, insertErr := rs.Insert(ctx, itTable, record)
	selected, selectErr := rs.Select(ctx, itTable, store.BuildFilter().Where(store.P("title", "Dune")).Finalize())

	// assert
	require.NoError(t, insertErr)
	require.NoError(t, selectErr)
	assert.Equal(t, int64(1), inserted.Version)
	assert.False(t, inserted.CreatedAt.IsZero())
	require.Len(t, selected, 1)
	assert.Equal(t, record.ID, selected[0].ID)
	assert.JSONEq(t, `{"title":"Dune","available":2}`, string(selected[0].DataJSON))
}

func Test_Insert_Fails_WithDuplicateUniqueField(t *testing.T) {
	// setup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rs := givenPGXStore(t)

	// arrange
	_, err := rs.Insert(ctx, itTable, givenRecord(t, `{"isbn":"978-0441013593"}`))
	require.NoError(t, err)

	// act
	_, err = rs.Insert(ctx, itTable, givenRecord(t, `{"isbn":"978-0441013593"}`))

	// assert
	assert.ErrorIs(t, err, store.ErrDuplicateRecord)
}

func Test_Update_Increments_And_Bumps_Version(t *testing.T) {
	// setup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rs := givenPGXStore(t)

	// arrange
	_, err := rs.Insert(ctx, itTable, givenRecord(t, `{"code":"b-1","available":2}`))
	require.NoError(t, err)
	filter := store.BuildFilter().Where(store.P("code", "b-1"), store.VersionIs(1), store.GreaterThan("available", 0)).Finalize()

	// act
	affected, err := rs.Update(ctx, itTable, filter, store.BuildPatch().Increment("available", -1).Set("status", "ok").Finalize())

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	selected, err := rs.Select(ctx, itTable, store.BuildFilter().Where(store.P("code", "b-1")).Finalize())
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, int64(2), selected[0].Version)
	assert.JSONEq(t, `{"code":"b-1","available":1,"status":"ok"}`, string(selected[0].DataJSON))
}

func Test_Apply_RollsBack_On_ConcurrencyConflict(t *testing.T) {
	// setup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logHandler := testdoubles.NewLogHandlerSpy(false)
	metrics := testdoubles.NewMetricsCollectorSpy()
	tracing := testdoubles.NewTracingCollectorSpy()
	rs := givenPGXStore(
		t,
		postgresengine.WithLogger(slog.New(logHandler)),
		postgresengine.WithMetrics(metrics),
		postgresengine.WithTracing(tracing),
	)

	// arrange
	_, err := rs.Insert(ctx, itTable, givenRecord(t, `{"code":"b-1","available":0}`))
	require.NoError(t, err)

	// act
	err = rs.Apply(
		ctx,
		store.InsertChange(itTable, givenRecord(t, `{"code":"t-1"}`)),
		store.UpdateChange(
			itTable,
			store.BuildFilter().Where(store.P("code", "b-1"), store.GreaterThan("available", 0)).Finalize(),
			store.BuildPatch().Increment("available", -1).Finalize(),
		).ExpectingAffected(1),
	)

	// assert
	assert.ErrorIs(t, err, store.ErrConcurrencyConflict)

	all, selectErr := rs.Select(ctx, itTable, store.MatchAll())
	require.NoError(t, selectErr)
	assert.Len(t, all, 1, "the insert must have been rolled back")

	assert.True(t, logHandler.HasInfoLogWithMessage("recordstore operation: concurrency conflict detected").WithAttr("expected_rows").Assert())
	assert.True(t, metrics.HasCounterRecordForMetric("recordstore_concurrency_conflicts_total").Assert())
	assert.True(t, tracing.HasFinishedSpan("recordstore.apply", "error"))
}

func Test_Apply_Commits_WithSQLXAndSQLDB(t *testing.T) {
	// setup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	givenPGXStore(t) // creates and empties the table

	sqlStore, err := postgresengine.NewStoreFromSQLDB(pgtest.NewSQLDB(t))
	require.NoError(t, err)
	sqlxStore, err := postgresengine.NewStoreFromSQLX(pgtest.NewSQLX(t))
	require.NoError(t, err)

	for _, rs := range []*postgresengine.Store{sqlStore, sqlxStore} {
		// act
		err = rs.Apply(ctx, store.InsertChange(itTable, givenRecord(t, `{"code":"x"}`)))

		// assert
		require.NoError(t, err)
	}

	all, err := sqlStore.Select(ctx, itTable, store.BuildFilter().Where(store.P("code", "x")).Finalize())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = sqlxStore.Insert(ctx, itTable, givenRecord(t, `{"isbn":"1"}`))
	require.NoError(t, err)
	_, err = sqlxStore.Insert(ctx, itTable, givenRecord(t, `{"isbn":"1"}`))
	assert.ErrorIs(t, err, store.ErrDuplicateRecord)
}
