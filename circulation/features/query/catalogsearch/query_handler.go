package catalogsearch

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/store"
)

// QueryHandler pushes the search down to the store and delegates ordering to ProjectCatalog.
type QueryHandler struct {
	recordStore shell.SelectsRecords
}

// NewQueryHandler creates a new QueryHandler reading from the given store.
func NewQueryHandler(recordStore shell.SelectsRecords) QueryHandler {
	return QueryHandler{recordStore: recordStore}
}

// Handle executes the query: Load -> Project. Reads may be served by a replica.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Catalog, error) {
	ctx = store.WithReadFromReplica(ctx)

	fb := store.BuildFilter()

	if query.Term != "" {
		fb = fb.WhereAnyOf(
			store.ContainsFold("title", query.Term),
			store.ContainsFold("isbn", query.Term),
			store.ContainsFold("publisher", query.Term),
		)
	}

	if query.AvailableOnly {
		fb = fb.Where(store.P("status", string(core.BookStatusAvailable)))
	}

	books, err := shell.SelectBooks(ctx, h.recordStore, fb.Finalize())
	if err != nil {
		return Catalog{}, err
	}

	return ProjectCatalog(books, query), nil
}
