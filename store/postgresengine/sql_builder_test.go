package postgresengine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/store"
)

func Test_BuildSelectQuery_TranslatesConditions(t *testing.T) {
	instant := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		condition store.Condition
		expected  string
	}{
		{
			name:      "equals",
			condition: store.P("status", "available"),
			expected:  `data @> '{"status":"available"}'::jsonb`,
		},
		{
			name:      "greater than",
			condition: store.GreaterThan("available", 0),
			expected:  `(data->>'available')::numeric > '0'::numeric`,
		},
		{
			name:      "at least",
			condition: store.AtLeast("fine_amount", decimal.RequireFromString("2.5")),
			expected:  `(data->>'fine_amount')::numeric >= '2.5'::numeric`,
		},
		{
			name:      "less than field",
			condition: store.LessThanField("current_borrowed", "max_books"),
			expected:  `(data->>'current_borrowed')::numeric < (data->>'max_books')::numeric`,
		},
		{
			name:      "absent",
			condition: store.Absent("return_date"),
			expected:  `data->>'return_date' IS NULL`,
		},
		{
			name:      "present",
			condition: store.Present("due_date"),
			expected:  `data->>'due_date' IS NOT NULL`,
		},
		{
			name:      "before",
			condition: store.Before("due_date", instant),
			expected:  `(data->>'due_date')::timestamptz < '2024-03-15T12:00:00Z'::timestamptz`,
		},
		{
			name:      "contains fold",
			condition: store.ContainsFold("title", "dune"),
			expected:  `data->>'title' ILIKE '%dune%'`,
		},
		{
			name:      "version",
			condition: store.VersionIs(3),
			expected:  `"version" = 3`,
		},
	}

	s := &Store{}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			sqlQuery, err := s.buildSelectQuery("books", store.BuildFilter().Where(tc.condition).Finalize())

			// assert
			require.NoError(t, err)
			assert.Contains(t, sqlQuery, `FROM "books"`)
			assert.Contains(t, sqlQuery, tc.expected)
		})
	}
}

func Test_BuildSelectQuery_OrdersAndLimits(t *testing.T) {
	// arrange
	s := &Store{}
	filter := store.BuildFilter().
		OrderBy("title", store.Descending).
		Limit(5).
		Finalize()

	// act
	sqlQuery, err := s.buildSelectQuery("books", filter)

	// assert
	require.NoError(t, err)
	assert.NotContains(t, sqlQuery, "WHERE")
	assert.Contains(t, sqlQuery, `ORDER BY data->'title' DESC, "seq" ASC`)
	assert.Contains(t, sqlQuery, "LIMIT 5")
}

func Test_BuildUpdateQuery_CombinesIncrementsAndSets(t *testing.T) {
	// arrange
	s := &Store{}
	filter := store.BuildFilter().Where(store.P("id", "b-1")).Finalize()
	patch := store.BuildPatch().
		Increment("available", -1).
		Set("status", "checked_out").
		Finalize()

	// act
	sqlQuery, err := s.buildUpdateQuery("books", filter, patch)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `UPDATE "books"`)
	assert.Contains(t, sqlQuery, `jsonb_set(data, '{available}', to_jsonb(COALESCE((data->>'available')::numeric, 0) + -1))`)
	assert.Contains(t, sqlQuery, `|| '{"status":"checked_out"}'::jsonb`)
	assert.Contains(t, sqlQuery, "version + 1")
	assert.Contains(t, sqlQuery, "NOW()")
	assert.Contains(t, sqlQuery, `data @> '{"id":"b-1"}'::jsonb`)
}

func Test_BuildInsertQuery_ReturnsPersistedColumns(t *testing.T) {
	// arrange
	s := &Store{}
	record, err := store.BuildStorableRecord("0b9f1c1e-6a8f-4f43-9c55-1f8f3b2a1d00", []byte(`{"title":"Dune"}`))
	require.NoError(t, err)

	// act
	sqlQuery, err := s.buildInsertQuery("books", record)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `INSERT INTO "books"`)
	assert.Contains(t, sqlQuery, `'0b9f1c1e-6a8f-4f43-9c55-1f8f3b2a1d00'::uuid`)
	assert.Contains(t, sqlQuery, `'{"title":"Dune"}'::jsonb`)
	assert.Contains(t, sqlQuery, "RETURNING id::text")
}

func Test_BuildDeleteQuery(t *testing.T) {
	// arrange
	s := &Store{}

	// act
	sqlQuery, err := s.buildDeleteQuery("books", store.BuildFilter().Where(store.VersionIs(2)).Finalize())

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `DELETE FROM "books"`)
	assert.Contains(t, sqlQuery, `"version" = 2`)
}

func Test_EscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_sale \\ more`, escapeLike(`50% off_sale \ more`))
}
