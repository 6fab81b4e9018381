package catalogsearch

import (
	"strings"
)

const (
	queryType = "CatalogSearch"
)

// Query represents a search over the catalog. An empty Term lists the whole catalog.
type Query struct {
	Term          string
	AvailableOnly bool
	Limit         int
}

// BuildQuery creates a new Query. A limit of 0 means no limit.
func BuildQuery(term string, availableOnly bool, limit int) Query {
	return Query{
		Term:          strings.TrimSpace(term),
		AvailableOnly: availableOnly,
		Limit:         max(0, limit),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
