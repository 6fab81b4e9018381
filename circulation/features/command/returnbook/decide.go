package returnbook

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// State carries the loan to close and its book.
// When the command names book and member, Loan is their open loan, or else their latest returned one.
type State struct {
	Loan                *core.Transaction
	Book                *core.Book
	HasOpenReservations bool
}

// Decide determines the outcome of a return and the late fine.
//
//	GIVEN: an open loan
//	WHEN:  ReturnBook is received
//	THEN:  BookReturned with fine = min(cap, started days late * rate)
//	ERROR: LoanNotFound, BookNotFound
//	ERROR: InvalidInput when the transaction is not a checkout
//	IDEMPOTENCY: the loan is returned already
func Decide(s State, command Command, fines core.FinePolicy) core.DecisionResult {
	if err := validateIDs(command); err != nil {
		return core.ErrorDecision(err)
	}

	if s.Loan == nil {
		return core.ErrorDecision(core.NewError(core.KindLoanNotFound, "no matching loan"))
	}

	loan := *s.Loan
	if loan.TransactionType != core.TransactionCheckout {
		return core.ErrorDecision(core.NewError(core.KindInvalidInput, "transaction "+loan.ID+" is a "+string(loan.TransactionType)))
	}

	if _, err := loan.Return(command.OccurredAt); err != nil {
		return core.IdempotentDecision()
	}

	if s.Book == nil {
		return core.ErrorDecision(core.NewError(core.KindBookNotFound, "book "+loan.BookID+" does not exist"))
	}

	fine := fines.LateFine(loan.DueDate, command.OccurredAt)

	returnRecord := core.Transaction{
		ID:              command.ReturnID,
		TransactionType: core.TransactionReturn,
		BookID:          loan.BookID,
		MemberID:        loan.MemberID,
		LibrarianID:     command.LibrarianID,
		CheckoutDate:    loan.CheckoutDate,
		DueDate:         loan.DueDate,
		ReturnDate:      core.TimePtr(command.OccurredAt),
		FineAmount:      fine,
		RelatedID:       loan.ID,
	}

	statusAfter := core.DeriveBookStatus(s.Book.Hold, s.Book.AvailableCopies+1, s.HasOpenReservations)

	return core.SuccessDecision(core.BuildBookReturned(loan, returnRecord, s.Book.Version, fine, statusAfter, command.OccurredAt))
}

func validateIDs(command Command) *core.CirculationError {
	if command.LoanID != "" {
		return core.FirstInvalidID("return_id", command.ReturnID, "loan_id", command.LoanID)
	}

	return core.FirstInvalidID("return_id", command.ReturnID, "book_id", command.BookID, "member_id", command.MemberID)
}
