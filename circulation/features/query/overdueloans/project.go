package overdueloans

import (
	"slices"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// ProjectOverdueLoans joins the overdue loans with their books and members.
//
//	GIVEN: open loans and the books and members they reference
//	WHEN:  OverdueLoans query is executed at an instant
//	THEN:  every loan overdue at that instant, the longest overdue first
//	EXCLUDES: returned loans, loans not yet due, ledger records other than checkouts
func ProjectOverdueLoans(
	loans []core.Transaction,
	books map[string]core.Book,
	members map[string]core.Member,
	fines core.FinePolicy,
	at time.Time,
) OverdueLoans {

	overdue := make([]OverdueLoan, 0, len(loans))

	for _, loan := range loans {
		if !loan.IsOverdueAt(at) {
			continue
		}

		book := books[loan.BookID]
		member := members[loan.MemberID]

		overdue = append(overdue, OverdueLoan{
			LoanID:           loan.ID,
			BookID:           loan.BookID,
			Title:            book.Title,
			ISBN:             book.ISBN,
			MemberID:         loan.MemberID,
			MembershipNumber: member.MembershipNumber,
			MemberName:       member.FullName,
			Email:            member.Email,
			CheckoutDate:     loan.CheckoutDate,
			DueDate:          loan.DueDate,
			DaysOverdue:      core.DaysOverdue(loan.DueDate, at),
			AccruedFine:      fines.LateFine(loan.DueDate, at),
		})
	}

	slices.SortStableFunc(overdue, func(a, b OverdueLoan) int {
		return a.DueDate.Compare(b.DueDate)
	})

	return OverdueLoans{
		Loans: overdue,
		Count: len(overdue),
	}
}
