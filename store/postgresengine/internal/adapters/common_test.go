package adapters_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/store/postgresengine/internal/adapters"
)

func Test_IsUniqueViolation(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "pgx unique violation", err: &pgconn.PgError{Code: "23505"}, expected: true},
		{name: "wrapped pgx unique violation", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), expected: true},
		{name: "pgx other error", err: &pgconn.PgError{Code: "40001"}, expected: false},
		{name: "lib/pq unique violation", err: &pq.Error{Code: "23505"}, expected: true},
		{name: "lib/pq other error", err: &pq.Error{Code: "23503"}, expected: false},
		{name: "plain error", err: errors.New("boom"), expected: false},
		{name: "nil", err: nil, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			actual := adapters.IsUniqueViolation(tc.err)

			// assert
			assert.Equal(t, tc.expected, actual)
		})
	}
}
