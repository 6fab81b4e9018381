package memengine

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/store"
)

// Option configures a Store.
type Option func(*Store) error

// WithUniqueField declares a document field whose values must be unique within table.
// Inserts and updates violating it fail with store.ErrDuplicateRecord.
func WithUniqueField(table string, key string) Option {
	return func(s *Store) error {
		if err := store.ValidateTableName(table); err != nil {
			return err
		}

		if !store.ValidFieldKey(key) {
			return store.ErrInvalidFieldKey
		}

		s.uniqueFields[table] = append(s.uniqueFields[table], key)

		return nil
	}
}

// WithClock replaces time.Now for the created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) error {
		s.now = now
		return nil
	}
}

// WithLogger sets a logger that receives one debug line per operation.
func WithLogger(logger store.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}
