package transactionsearch

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// TransactionRow is a ledger record with the book and member it refers to.
type TransactionRow struct {
	Transaction      core.Transaction
	BookTitle        string
	ISBN             string
	MemberName       string
	MembershipNumber core.MembershipNumberString
}

// Transactions represents the query result, newest first.
type Transactions struct {
	Rows  []TransactionRow
	Count int
}
