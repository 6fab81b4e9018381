package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-circulation-go/store"
	"github.com/AntonStoeckl/library-circulation-go/store/postgresengine/internal/adapters"
)

const (
	logMsgBuildQueryFailed       = "failed to build query"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgDBExecFailed           = "database execution failed"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgBuildStorableFailed    = "failed to build storable record from database row"
	logMsgRowsAffectedFailed     = "failed to get rows affected count"
	logMsgBeginTxFailed          = "failed to begin transaction"
	logMsgCommitTxFailed         = "failed to commit transaction"
	logMsgRollbackTxFailed       = "failed to roll back transaction"
	logMsgDuplicateRecord        = "duplicate record rejected"
	logMsgConcurrencyConflict    = "concurrency conflict detected"
	logMsgSelectCompleted        = "select completed"
	logMsgInsertCompleted        = "insert completed"
	logMsgUpdateCompleted        = "update completed"
	logMsgDeleteCompleted        = "delete completed"
	logMsgChangesApplied         = "changes applied"
	logMsgSQLExecuted            = "executed sql for: "
	logMsgOperation              = "recordstore operation: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrTable                 = "table"
	logAttrRecordCount           = "record_count"
	logAttrChangeCount           = "change_count"
	logAttrChangeIndex           = "change_index"
	logAttrDurationMS            = "duration_ms"
	logAttrExpectedRows          = "expected_rows"
	logAttrRowsAffected          = "rows_affected"
	logActionSelect              = "select"
	logActionInsert              = "insert"
	logActionUpdate              = "update"
	logActionDelete              = "delete"
	logActionApply               = "apply"
	logActionEnsureSchema        = "ensure_schema"
	errorTypeBuildQuery          = "build_query"
	errorTypeDatabaseQuery       = "database_query"
	errorTypeDatabaseExec        = "database_exec"
	errorTypeRowScan             = "row_scan"
	errorTypeBuildStorableRecord = "build_storable_record"
	errorTypeRowsAffected        = "rows_affected"
	errorTypeTransaction         = "transaction"
	errorTypeDuplicateRecord     = "duplicate_record"
	errorTypeConcurrencyConflict = "concurrency_conflict"
	errorTypeInvalidInput        = "invalid_input"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
)

// Store is the PostgreSQL record store.
// It leverages a database adapter and supports optional logging, metrics, and tracing.
type Store struct {
	db               adapters.DBAdapter
	logger           store.Logger
	contextualLogger store.ContextualLogger
	metricsCollector store.MetricsCollector
	tracingCollector store.TracingCollector
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil {
		return nil, store.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromPGXPoolAndReplica creates a new Store using a primary and a replica pgx Pool.
// Reads go to the replica only when the context carries store.ReadFromReplica.
func NewStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil || replica == nil {
		return nil, store.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, store.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, store.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (*Store, error) {
	s := &Store{db: db}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Select retrieves the records of table matching filter.
func (s *Store) Select(ctx context.Context, table string, filter store.Filter) (store.StorableRecords, error) {
	observer, ctx := s.startObservation(ctx, logActionSelect, table)

	if err := validateSelect(table, filter); err != nil {
		observer.finishError(errorTypeInvalidInput, 0)
		return nil, err
	}

	sqlQuery, buildQueryErr := s.buildSelectQuery(table, filter)
	if buildQueryErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, buildQueryErr, logAttrTable, table)
		observer.finishError(errorTypeBuildQuery, 0)
		return nil, buildQueryErr
	}

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	s.logQueryWithDuration(ctx, sqlQuery, logActionSelect, time.Since(start))

	if queryErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		observer.finishError(errorTypeDatabaseQuery, time.Since(start))
		return nil, errors.Join(store.ErrQueryingRecordsFailed, queryErr)
	}
	defer s.closeRows(ctx, rows)

	records, errorType, scanErr := s.scanRecords(ctx, rows)
	if scanErr != nil {
		observer.finishError(errorType, time.Since(start))
		return nil, scanErr
	}

	duration := time.Since(start)
	s.logOperation(ctx, logMsgSelectCompleted, logAttrTable, table, logAttrRecordCount, len(records), logAttrDurationMS, toMilliseconds(duration))
	observer.finishSuccess(int64(len(records)), duration)

	return records, nil
}

// Insert stores a new record and returns it with version, timestamps, and normalized data as persisted.
func (s *Store) Insert(ctx context.Context, table string, record store.StorableRecord) (store.StorableRecord, error) {
	observer, ctx := s.startObservation(ctx, logActionInsert, table)

	if err := store.InsertChange(table, record).Validate(); err != nil {
		observer.finishError(errorTypeInvalidInput, 0)
		return store.StorableRecord{}, err
	}

	sqlQuery, buildQueryErr := s.buildInsertQuery(table, record)
	if buildQueryErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, buildQueryErr, logAttrTable, table)
		observer.finishError(errorTypeBuildQuery, 0)
		return store.StorableRecord{}, buildQueryErr
	}

	start := time.Now()
	rows, queryErr := s.db.Query(store.WithReadYourWrites(ctx), sqlQuery)
	s.logQueryWithDuration(ctx, sqlQuery, logActionInsert, time.Since(start))

	if queryErr != nil {
		return store.StorableRecord{}, s.handleWriteError(ctx, observer, queryErr, sqlQuery, time.Since(start))
	}
	defer s.closeRows(ctx, rows)

	records, errorType, scanErr := s.scanRecords(ctx, rows)
	if scanErr != nil {
		if adapters.IsUniqueViolation(scanErr) {
			return store.StorableRecord{}, s.handleWriteError(ctx, observer, scanErr, sqlQuery, time.Since(start))
		}

		observer.finishError(errorType, time.Since(start))
		return store.StorableRecord{}, scanErr
	}

	if len(records) != 1 {
		observer.finishError(errorTypeRowsAffected, time.Since(start))
		return store.StorableRecord{}, store.ErrGettingRowsAffectedFailed
	}

	duration := time.Since(start)
	s.logOperation(ctx, logMsgInsertCompleted, logAttrTable, table, logAttrDurationMS, toMilliseconds(duration))
	observer.finishSuccess(1, duration)

	return records[0], nil
}

// Update patches all records matching filter and returns the number of affected records.
func (s *Store) Update(ctx context.Context, table string, filter store.Filter, patch store.Patch) (int64, error) {
	return s.execSingle(ctx, store.UpdateChange(table, filter, patch), logActionUpdate, logMsgUpdateCompleted)
}

// Delete removes all records matching filter and returns the number of affected records.
func (s *Store) Delete(ctx context.Context, table string, filter store.Filter) (int64, error) {
	return s.execSingle(ctx, store.DeleteChange(table, filter), logActionDelete, logMsgDeleteCompleted)
}

// Apply executes all changes in one database transaction.
//
// When a change affects a different number of rows than it expects, the transaction is rolled back
// and store.ErrConcurrencyConflict is returned. Unique violations roll back with store.ErrDuplicateRecord.
func (s *Store) Apply(ctx context.Context, changes ...store.Change) error {
	observer, ctx := s.startObservation(ctx, logActionApply, "")

	if len(changes) == 0 {
		observer.finishError(errorTypeInvalidInput, 0)
		return store.ErrEmptyChangeSet
	}

	queries := make([]sqlQueryString, 0, len(changes))
	for _, change := range changes {
		if err := change.Validate(); err != nil {
			observer.finishError(errorTypeInvalidInput, 0)
			return err
		}

		sqlQuery, buildQueryErr := s.buildChangeQuery(change)
		if buildQueryErr != nil {
			s.logError(ctx, logMsgBuildQueryFailed, buildQueryErr, logAttrTable, change.Table())
			observer.finishError(errorTypeBuildQuery, 0)
			return buildQueryErr
		}

		queries = append(queries, sqlQuery)
	}

	start := time.Now()

	tx, beginErr := s.db.BeginTx(ctx)
	if beginErr != nil {
		s.logError(ctx, logMsgBeginTxFailed, beginErr)
		observer.finishError(errorTypeTransaction, time.Since(start))
		return errors.Join(store.ErrTransactionFailed, beginErr)
	}

	for i, change := range changes {
		rowsAffected, execErr := s.execInTx(ctx, tx, queries[i])
		if execErr != nil {
			s.rollback(ctx, tx)
			return s.handleWriteError(ctx, observer, execErr, queries[i], time.Since(start))
		}

		if expected, isSet := change.ExpectedAffected(); isSet && rowsAffected != expected {
			s.rollback(ctx, tx)
			s.logOperation(
				ctx,
				logMsgConcurrencyConflict,
				logAttrTable, change.Table(),
				logAttrChangeIndex, i,
				logAttrExpectedRows, expected,
				logAttrRowsAffected, rowsAffected,
			)
			observer.recordConcurrencyConflict()
			observer.finishError(errorTypeConcurrencyConflict, time.Since(start))

			return store.ErrConcurrencyConflict
		}
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		s.logError(ctx, logMsgCommitTxFailed, commitErr)

		if adapters.IsUniqueViolation(commitErr) {
			observer.finishError(errorTypeDuplicateRecord, time.Since(start))
			return errors.Join(store.ErrDuplicateRecord, commitErr)
		}

		observer.finishError(errorTypeTransaction, time.Since(start))
		return errors.Join(store.ErrTransactionFailed, commitErr)
	}

	duration := time.Since(start)
	s.logOperation(ctx, logMsgChangesApplied, logAttrChangeCount, len(changes), logAttrDurationMS, toMilliseconds(duration))
	observer.finishSuccess(int64(len(changes)), duration)

	return nil
}

func (s *Store) execSingle(ctx context.Context, change store.Change, action string, completedMsg string) (int64, error) {
	observer, ctx := s.startObservation(ctx, action, change.Table())

	if err := change.Validate(); err != nil {
		observer.finishError(errorTypeInvalidInput, 0)
		return 0, err
	}

	sqlQuery, buildQueryErr := s.buildChangeQuery(change)
	if buildQueryErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, buildQueryErr, logAttrTable, change.Table())
		observer.finishError(errorTypeBuildQuery, 0)
		return 0, buildQueryErr
	}

	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery)
	s.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if execErr != nil {
		return 0, s.handleWriteError(ctx, observer, execErr, sqlQuery, time.Since(start))
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		observer.finishError(errorTypeRowsAffected, time.Since(start))
		return 0, errors.Join(store.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	duration := time.Since(start)
	s.logOperation(ctx, completedMsg, logAttrTable, change.Table(), logAttrRowsAffected, rowsAffected, logAttrDurationMS, toMilliseconds(duration))
	observer.finishSuccess(rowsAffected, duration)

	return rowsAffected, nil
}

func (s *Store) execInTx(ctx context.Context, tx adapters.DBTx, sqlQuery sqlQueryString) (rowsAffectedInt64, error) {
	start := time.Now()
	result, execErr := tx.Exec(ctx, sqlQuery)
	s.logQueryWithDuration(ctx, sqlQuery, logActionApply, time.Since(start))

	if execErr != nil {
		return 0, execErr
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		return 0, errors.Join(store.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

// handleWriteError maps unique violations to store.ErrDuplicateRecord and everything else to store.ErrWritingRecordsFailed.
func (s *Store) handleWriteError(
	ctx context.Context,
	observer *operationObserver,
	err error,
	sqlQuery sqlQueryString,
	duration time.Duration,
) error {

	if errors.Is(err, store.ErrGettingRowsAffectedFailed) {
		observer.finishError(errorTypeRowsAffected, duration)
		return err
	}

	if adapters.IsUniqueViolation(err) {
		s.logOperation(ctx, logMsgDuplicateRecord, logAttrError, err.Error())
		observer.finishError(errorTypeDuplicateRecord, duration)
		return errors.Join(store.ErrDuplicateRecord, err)
	}

	s.logError(ctx, logMsgDBExecFailed, err, logAttrQuery, sqlQuery)
	observer.finishError(errorTypeDatabaseExec, duration)

	return errors.Join(store.ErrWritingRecordsFailed, err)
}

func (s *Store) rollback(ctx context.Context, tx adapters.DBTx) {
	if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
		s.logWarn(ctx, logMsgRollbackTxFailed, logAttrError, rollbackErr.Error())
	}
}

// scanRecords converts database rows into store.StorableRecords.
func (s *Store) scanRecords(ctx context.Context, rows adapters.DBRows) (store.StorableRecords, string, error) {
	var (
		id        string
		version   int64
		data      []byte
		createdAt time.Time
		updatedAt time.Time
	)

	records := make(store.StorableRecords, 0)

	for rows.Next() {
		if scanErr := rows.Scan(&id, &version, &data, &createdAt, &updatedAt); scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, scanErr)
			return nil, errorTypeRowScan, errors.Join(store.ErrScanningDBRowFailed, scanErr)
		}

		record, buildErr := store.RestoreStorableRecord(id, version, append([]byte(nil), data...), createdAt, updatedAt)
		if buildErr != nil {
			s.logError(ctx, logMsgBuildStorableFailed, buildErr)
			return nil, errorTypeBuildStorableRecord, errors.Join(store.ErrBuildingStorableRecordFailed, buildErr)
		}

		records = append(records, record)
	}

	if iterErr := rows.Err(); iterErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, iterErr)
		return nil, errorTypeDatabaseQuery, errors.Join(store.ErrQueryingRecordsFailed, iterErr)
	}

	return records, "", nil
}

// closeRows safely closes database rows and logs any errors.
func (s *Store) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

func validateSelect(table string, filter store.Filter) error {
	if err := store.ValidateTableName(table); err != nil {
		return err
	}

	return filter.Validate()
}
