package circulationreport

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/store"
)

// QueryHandler loads the snapshots and delegates to ProjectCirculationReport.
type QueryHandler struct {
	recordStore shell.SelectsRecords
}

// NewQueryHandler creates a new QueryHandler reading from the given store.
func NewQueryHandler(recordStore shell.SelectsRecords) QueryHandler {
	return QueryHandler{recordStore: recordStore}
}

// Handle executes the query: Load -> Project. Reads may be served by a replica.
func (h QueryHandler) Handle(ctx context.Context, query Query) (CirculationReport, error) {
	ctx = store.WithReadFromReplica(ctx)

	books, err := shell.SelectBooks(ctx, h.recordStore, store.MatchAll())
	if err != nil {
		return CirculationReport{}, err
	}

	members, err := shell.SelectMembers(ctx, h.recordStore, store.MatchAll())
	if err != nil {
		return CirculationReport{}, err
	}

	openLoans, err := shell.SelectTransactions(ctx, h.recordStore, shell.OpenTransactionsFilter(core.TransactionCheckout, "", "").Finalize())
	if err != nil {
		return CirculationReport{}, err
	}

	openReservations, err := shell.SelectTransactions(
		ctx,
		h.recordStore,
		shell.OpenTransactionsFilter(core.TransactionReservation, "", "").Finalize(),
	)
	if err != nil {
		return CirculationReport{}, err
	}

	return ProjectCirculationReport(books, members, openLoans, openReservations, query.At), nil
}
