package scanlookup

const (
	queryType = "ScanLookup"
)

// Query represents the intent to resolve scanned label content.
type Query struct {
	Content string
}

// BuildQuery creates a new Query with the raw scanned content.
func BuildQuery(content string) Query {
	return Query{
		Content: content,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
