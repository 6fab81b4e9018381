package overdueloans

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/store"
)

// QueryHandler loads open loans due before the instant, joins them and delegates to ProjectOverdueLoans.
type QueryHandler struct {
	recordStore shell.SelectsRecords
	fines       core.FinePolicy
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithFinePolicy sets the policy used for the accrued fines.
func WithFinePolicy(fines core.FinePolicy) Option {
	return func(h *QueryHandler) {
		h.fines = fines
	}
}

// NewQueryHandler creates a new QueryHandler reading from the given store.
func NewQueryHandler(recordStore shell.SelectsRecords, opts ...Option) QueryHandler {
	h := QueryHandler{
		recordStore: recordStore,
		fines:       core.DefaultFinePolicy(),
	}

	for _, opt := range opts {
		opt(&h)
	}

	return h
}

// Handle executes the query: Load -> Join -> Project. Reads may be served by a replica.
func (h QueryHandler) Handle(ctx context.Context, query Query) (OverdueLoans, error) {
	ctx = store.WithReadFromReplica(ctx)

	loans, err := shell.SelectTransactions(
		ctx,
		h.recordStore,
		shell.OpenTransactionsFilter(core.TransactionCheckout, "", "").
			And(store.Before("due_date", query.At)).
			Finalize(),
	)
	if err != nil {
		return OverdueLoans{}, err
	}

	books, err := shell.BooksByID(ctx, h.recordStore, shell.UniqueIDs(loans, func(t core.Transaction) string { return t.BookID }))
	if err != nil {
		return OverdueLoans{}, err
	}

	members, err := shell.MembersByID(ctx, h.recordStore, shell.UniqueIDs(loans, func(t core.Transaction) string { return t.MemberID }))
	if err != nil {
		return OverdueLoans{}, err
	}

	return ProjectOverdueLoans(loans, books, members, h.fines, query.At), nil
}
