package expiringmemberships

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/store"
)

// QueryHandler narrows the members in the store and delegates to ProjectExpiringMemberships.
type QueryHandler struct {
	recordStore shell.SelectsRecords
}

// NewQueryHandler creates a new QueryHandler reading from the given store.
func NewQueryHandler(recordStore shell.SelectsRecords) QueryHandler {
	return QueryHandler{recordStore: recordStore}
}

// Handle executes the query: Load -> Project. Reads may be served by a replica.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ExpiringMemberships, error) {
	ctx = store.WithReadFromReplica(ctx)

	// one day of slack, the projection decides on started days
	horizon := query.At.AddDate(0, 0, core.ExpiringSoonWindowDays+1)

	members, err := shell.SelectMembers(
		ctx,
		h.recordStore,
		store.BuildFilter().
			WhereAnyOf(
				store.Before("expiry_date", horizon),
				store.P("status", string(core.MemberExpired)),
			).
			Finalize(),
	)
	if err != nil {
		return ExpiringMemberships{}, err
	}

	return ProjectExpiringMemberships(members, query.At), nil
}
