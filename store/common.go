package store

import (
	"errors"
	"regexp"
)

var (
	ErrEmptyTableName               = errors.New("empty table name supplied")
	ErrNilDatabaseConnection        = errors.New("database connection must not be nil")
	ErrConcurrencyConflict          = errors.New("concurrency conflict, a guarded change did not affect the expected rows")
	ErrDuplicateRecord              = errors.New("a record with the same unique key already exists")
	ErrEmptyChangeSet               = errors.New("change set must contain at least one change")
	ErrInvalidFieldKey              = errors.New("field key must match [a-z][a-z0-9_]*")
	ErrBuildingQueryFailed          = errors.New("building the query failed")
	ErrQueryingRecordsFailed        = errors.New("querying records failed")
	ErrWritingRecordsFailed         = errors.New("writing records failed")
	ErrScanningDBRowFailed          = errors.New("scanning the database row failed")
	ErrBuildingStorableRecordFailed = errors.New("building the storable record failed")
	ErrGettingRowsAffectedFailed    = errors.New("getting rows affected failed")
	ErrTransactionFailed            = errors.New("database transaction failed")
)

var fieldKeyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidFieldKey reports whether key can safely be used as a document field or table name.
func ValidFieldKey(key string) bool {
	return fieldKeyPattern.MatchString(key)
}

// ValidateTableName checks that table is non-empty and safe to embed in queries.
func ValidateTableName(table string) error {
	if table == "" {
		return ErrEmptyTableName
	}

	if !ValidFieldKey(table) {
		return ErrInvalidFieldKey
	}

	return nil
}
