package transactionsearch

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/store"
)

// QueryHandler narrows the ledger in the store, joins books and members and delegates to ProjectTransactions.
type QueryHandler struct {
	recordStore shell.SelectsRecords
}

// NewQueryHandler creates a new QueryHandler reading from the given store.
func NewQueryHandler(recordStore shell.SelectsRecords) QueryHandler {
	return QueryHandler{recordStore: recordStore}
}

// Handle executes the query: Match -> Load -> Join -> Project. Reads may be served by a replica.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Transactions, error) {
	if query.TransactionType != "" {
		if _, ok := core.ParseTransactionType(query.TransactionType); !ok {
			return Transactions{}, core.NewError(core.KindInvalidInput, fmt.Sprintf("unknown transaction type %q", query.TransactionType))
		}
	}

	ctx = store.WithReadFromReplica(ctx)

	fb := store.BuildFilter()
	if query.TransactionType != "" {
		fb = fb.Where(store.P("transaction_type", query.TransactionType))
	}

	if query.Term != "" {
		referenced, err := h.referencesMatching(ctx, query.Term)
		if err != nil {
			return Transactions{}, err
		}

		if len(referenced) == 0 {
			return ProjectTransactions(nil, nil, nil, query), nil
		}

		fb = fb.WhereAnyOf(referenced...)
	}

	transactions, err := shell.SelectTransactions(ctx, h.recordStore, fb.Finalize())
	if err != nil {
		return Transactions{}, err
	}

	books, err := shell.BooksByID(ctx, h.recordStore, shell.UniqueIDs(transactions, func(t core.Transaction) string { return t.BookID }))
	if err != nil {
		return Transactions{}, err
	}

	members, err := shell.MembersByID(ctx, h.recordStore, shell.UniqueIDs(transactions, func(t core.Transaction) string { return t.MemberID }))
	if err != nil {
		return Transactions{}, err
	}

	return ProjectTransactions(transactions, books, members, query), nil
}

// referencesMatching returns book_id and member_id conditions for all books and members the term matches.
func (h QueryHandler) referencesMatching(ctx context.Context, term string) ([]store.Condition, error) {
	books, err := shell.SelectBooks(
		ctx,
		h.recordStore,
		store.BuildFilter().WhereAnyOf(store.ContainsFold("title", term), store.ContainsFold("isbn", term)).Finalize(),
	)
	if err != nil {
		return nil, err
	}

	members, err := shell.SelectMembers(
		ctx,
		h.recordStore,
		store.BuildFilter().
			WhereAnyOf(store.ContainsFold("full_name", term), store.ContainsFold(shell.FieldMembershipNumber, term)).
			Finalize(),
	)
	if err != nil {
		return nil, err
	}

	conditions := make([]store.Condition, 0, len(books)+len(members))
	for _, book := range books {
		conditions = append(conditions, store.P("book_id", book.ID))
	}
	for _, member := range members {
		conditions = append(conditions, store.P("member_id", member.ID))
	}

	return conditions, nil
}
