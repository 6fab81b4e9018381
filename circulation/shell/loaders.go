package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/store"
)

// ByID builds the filter selecting the document with the given id.
func ByID(id string) store.Filter {
	return store.BuildFilter().Where(store.P("id", id)).Finalize()
}

// ByAnyID builds the filter selecting all documents with one of the ids, used for caller-side joins.
func ByAnyID(ids []string) store.Filter {
	conditions := make([]store.Condition, 0, len(ids))
	for _, id := range ids {
		conditions = append(conditions, store.P("id", id))
	}

	return store.BuildFilter().WhereAnyOf(conditions...).Finalize()
}

// OpenTransactionsFilter selects open ledger records of a type, optionally narrowed by book and member.
func OpenTransactionsFilter(transactionType core.TransactionType, bookID string, memberID string) store.FilterBuilder {
	fb := store.BuildFilter().
		Where(store.P("transaction_type", string(transactionType))).
		And(store.Absent("return_date"))

	if bookID != "" {
		fb = fb.And(store.P("book_id", bookID))
	}

	if memberID != "" {
		fb = fb.And(store.P("member_id", memberID))
	}

	return fb
}

// LoadBook returns the book or nil if it does not exist.
func LoadBook(ctx context.Context, s SelectsRecords, id string) (*core.Book, error) {
	records, err := s.Select(ctx, TableBooks, ByID(id))
	if err != nil {
		return nil, StoreError("selecting the book failed", err)
	}

	if len(records) == 0 {
		return nil, nil //nolint:nilnil // absence is a regular outcome
	}

	book, err := BookFrom(records[0])
	if err != nil {
		return nil, err
	}

	return &book, nil
}

// LoadMember returns the member or nil if it does not exist.
func LoadMember(ctx context.Context, s SelectsRecords, id string) (*core.Member, error) {
	records, err := s.Select(ctx, TableMembers, ByID(id))
	if err != nil {
		return nil, StoreError("selecting the member failed", err)
	}

	if len(records) == 0 {
		return nil, nil //nolint:nilnil // absence is a regular outcome
	}

	member, err := MemberFrom(records[0])
	if err != nil {
		return nil, err
	}

	return &member, nil
}

// LoadTransaction returns the ledger record or nil if it does not exist.
func LoadTransaction(ctx context.Context, s SelectsRecords, id string) (*core.Transaction, error) {
	records, err := s.Select(ctx, TableTransactions, ByID(id))
	if err != nil {
		return nil, StoreError("selecting the transaction failed", err)
	}

	if len(records) == 0 {
		return nil, nil //nolint:nilnil // absence is a regular outcome
	}

	transaction, err := TransactionFrom(records[0])
	if err != nil {
		return nil, err
	}

	return &transaction, nil
}

// SelectBooks returns all books matching filter.
func SelectBooks(ctx context.Context, s SelectsRecords, filter store.Filter) ([]core.Book, error) {
	records, err := s.Select(ctx, TableBooks, filter)
	if err != nil {
		return nil, StoreError("selecting books failed", err)
	}

	return BooksFrom(records)
}

// SelectMembers returns all members matching filter.
func SelectMembers(ctx context.Context, s SelectsRecords, filter store.Filter) ([]core.Member, error) {
	records, err := s.Select(ctx, TableMembers, filter)
	if err != nil {
		return nil, StoreError("selecting members failed", err)
	}

	return MembersFrom(records)
}

// SelectTransactions returns all ledger records matching filter.
func SelectTransactions(ctx context.Context, s SelectsRecords, filter store.Filter) ([]core.Transaction, error) {
	records, err := s.Select(ctx, TableTransactions, filter)
	if err != nil {
		return nil, StoreError("selecting transactions failed", err)
	}

	return TransactionsFrom(records)
}

// BooksByID loads the books with the given ids, keyed by id. Unknown ids are skipped.
func BooksByID(ctx context.Context, s SelectsRecords, ids []string) (map[string]core.Book, error) {
	books := make(map[string]core.Book, len(ids))
	if len(ids) == 0 {
		return books, nil
	}

	found, err := SelectBooks(ctx, s, ByAnyID(ids))
	if err != nil {
		return nil, err
	}

	for _, book := range found {
		books[book.ID] = book
	}

	return books, nil
}

// MembersByID loads the members with the given ids, keyed by id. Unknown ids are skipped.
func MembersByID(ctx context.Context, s SelectsRecords, ids []string) (map[string]core.Member, error) {
	members := make(map[string]core.Member, len(ids))
	if len(ids) == 0 {
		return members, nil
	}

	found, err := SelectMembers(ctx, s, ByAnyID(ids))
	if err != nil {
		return nil, err
	}

	for _, member := range found {
		members[member.ID] = member
	}

	return members, nil
}

// UniqueIDs returns the distinct non-empty values of key over items, in first-seen order.
func UniqueIDs[T any](items []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))

	for _, item := range items {
		id := key(item)
		if id == "" {
			continue
		}

		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids
}
