package expiringmemberships

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	queryType = "ExpiringMemberships"
)

// Query represents the intent to list memberships that need a renewal.
type Query struct {
	At time.Time
}

// BuildQuery creates a new Query with the provided evaluation instant.
func BuildQuery(at time.Time) Query {
	return Query{
		At: core.ToOccurredAt(at),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
