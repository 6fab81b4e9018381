package transactionsearch

import (
	"strings"
)

const (
	queryType = "TransactionSearch"

	defaultLimit = 100
)

// Query represents a search over the ledger. An empty Term matches everything,
// an empty TransactionType matches every type.
type Query struct {
	Term            string
	TransactionType string
	Limit           int
}

// BuildQuery creates a new Query. A limit of 0 or less means the default of 100 records.
func BuildQuery(term string, transactionType string, limit int) Query {
	if limit <= 0 {
		limit = defaultLimit
	}

	return Query{
		Term:            strings.TrimSpace(term),
		TransactionType: strings.TrimSpace(transactionType),
		Limit:           limit,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
