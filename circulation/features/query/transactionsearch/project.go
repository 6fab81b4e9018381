package transactionsearch

import (
	"cmp"
	"slices"
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// ProjectTransactions joins, matches, orders and limits ledger records.
//
//	GIVEN: ledger records and the books and members they reference
//	WHEN:  TransactionSearch query is executed
//	THEN:  matching rows ordered by checkout date, newest first, at most Limit rows
//	MATCH: the term is contained in member name, membership number, book title or isbn, ignoring case
func ProjectTransactions(
	transactions []core.Transaction,
	books map[string]core.Book,
	members map[string]core.Member,
	query Query,
) Transactions {

	term := strings.ToLower(query.Term)
	rows := make([]TransactionRow, 0, len(transactions))

	for _, transaction := range transactions {
		if query.TransactionType != "" && string(transaction.TransactionType) != query.TransactionType {
			continue
		}

		book := books[transaction.BookID]
		member := members[transaction.MemberID]

		row := TransactionRow{
			Transaction:      transaction,
			BookTitle:        book.Title,
			ISBN:             book.ISBN,
			MemberName:       member.FullName,
			MembershipNumber: member.MembershipNumber,
		}

		if term != "" && !row.matches(term) {
			continue
		}

		rows = append(rows, row)
	}

	slices.SortStableFunc(rows, func(a, b TransactionRow) int {
		return cmp.Or(
			b.Transaction.CheckoutDate.Compare(a.Transaction.CheckoutDate),
			strings.Compare(b.Transaction.ID, a.Transaction.ID),
		)
	})

	if query.Limit > 0 && len(rows) > query.Limit {
		rows = rows[:query.Limit]
	}

	return Transactions{
		Rows:  rows,
		Count: len(rows),
	}
}

func (r TransactionRow) matches(lowerTerm string) bool {
	for _, field := range []string{r.MemberName, r.MembershipNumber, r.BookTitle, r.ISBN} {
		if strings.Contains(strings.ToLower(field), lowerTerm) {
			return true
		}
	}

	return false
}
