package circulationreport

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	queryType = "CirculationReport"
)

// Query represents the intent to compute the circulation report at an evaluation instant.
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
