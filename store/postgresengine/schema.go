package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/store"
)

const (
	createTableStatement = `CREATE TABLE IF NOT EXISTS %[1]s (
	id UUID PRIMARY KEY,
	version BIGINT NOT NULL DEFAULT 1,
	data JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	seq BIGSERIAL NOT NULL
)`
	createDataIndexStatement   = `CREATE INDEX IF NOT EXISTS %[1]s_data_idx ON %[1]s USING GIN (data jsonb_path_ops)`
	createSeqIndexStatement    = `CREATE INDEX IF NOT EXISTS %[1]s_seq_idx ON %[1]s (seq)`
	createUniqueIndexStatement = `CREATE UNIQUE INDEX IF NOT EXISTS %[1]s_%[2]s_key ON %[1]s ((data->>'%[2]s'))`
)

// UniqueField names a document field whose values must be unique within a table.
type UniqueField struct {
	Table string
	Key   string
}

// EnsureSchema creates the record tables, their indexes, and the unique indexes, if they don't exist yet.
func (s *Store) EnsureSchema(ctx context.Context, tables []string, uniqueFields ...UniqueField) error {
	statements := make([]sqlQueryString, 0, len(tables)*3+len(uniqueFields))

	for _, table := range tables {
		if err := store.ValidateTableName(table); err != nil {
			return err
		}

		statements = append(
			statements,
			fmt.Sprintf(createTableStatement, table),
			fmt.Sprintf(createDataIndexStatement, table),
			fmt.Sprintf(createSeqIndexStatement, table),
		)
	}

	for _, field := range uniqueFields {
		if err := store.ValidateTableName(field.Table); err != nil {
			return err
		}

		if !store.ValidFieldKey(field.Key) {
			return store.ErrInvalidFieldKey
		}

		statements = append(statements, fmt.Sprintf(createUniqueIndexStatement, field.Table, field.Key))
	}

	for _, statement := range statements {
		start := time.Now()
		_, execErr := s.db.Exec(ctx, statement)
		s.logQueryWithDuration(ctx, statement, logActionEnsureSchema, time.Since(start))

		if execErr != nil {
			s.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, statement)
			return errors.Join(store.ErrWritingRecordsFailed, execErr)
		}
	}

	return nil
}
