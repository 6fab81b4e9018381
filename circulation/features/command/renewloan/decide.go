package renewloan

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// State carries the loan and whether other members wait for its title.
type State struct {
	ExistingRenewal            *core.Transaction
	Loan                       *core.Transaction
	OthersHaveOpenReservations bool
}

// Decide determines whether the loan can be extended.
//
//	GIVEN: an open loan that is not overdue
//	WHEN:  RenewLoan is received
//	THEN:  LoanRenewed with the due date moved by one loan period
//	ERROR: LoanNotFound, InvalidInput when the transaction is not a checkout
//	ERROR: AlreadyReturned, LoanOverdue, RenewalLimitReached
//	ERROR: ReservedForAnotherMember when other members reserved the title
//	IDEMPOTENCY: a renewal record with the command's id exists already
func Decide(s State, command Command, renewalLimit int) core.DecisionResult {
	if err := core.FirstInvalidID("renewal_id", command.RenewalID, "loan_id", command.LoanID); err != nil {
		return core.ErrorDecision(err)
	}

	if s.ExistingRenewal != nil {
		return core.IdempotentDecision()
	}

	if s.Loan == nil {
		return core.ErrorDecision(core.NewError(core.KindLoanNotFound, "loan "+command.LoanID+" does not exist"))
	}

	loan := *s.Loan
	if loan.TransactionType != core.TransactionCheckout {
		return core.ErrorDecision(core.NewError(core.KindInvalidInput, "transaction "+loan.ID+" is a "+string(loan.TransactionType)))
	}

	if !loan.IsOpen() {
		return core.ErrorDecision(core.NewError(core.KindAlreadyReturned, "loan "+loan.ID+" was returned"))
	}

	if loan.IsOverdueAt(command.OccurredAt) {
		return core.ErrorDecision(core.NewError(
			core.KindLoanOverdue,
			fmt.Sprintf("loan is %d days overdue", core.DaysOverdue(loan.DueDate, command.OccurredAt)),
		))
	}

	if loan.RenewalCount >= renewalLimit {
		return core.ErrorDecision(core.NewError(
			core.KindRenewalLimitReached,
			fmt.Sprintf("loan was renewed %d of %d times", loan.RenewalCount, renewalLimit),
		))
	}

	if s.OthersHaveOpenReservations {
		return core.ErrorDecision(core.NewError(core.KindReservedForAnotherMember, "other members are waiting for the book"))
	}

	newDueDate := core.ComputeDueDate(loan.DueDate)

	renewalRecord := core.Transaction{
		ID:              command.RenewalID,
		TransactionType: core.TransactionRenewal,
		BookID:          loan.BookID,
		MemberID:        loan.MemberID,
		LibrarianID:     command.LibrarianID,
		CheckoutDate:    command.OccurredAt,
		DueDate:         newDueDate,
		FineAmount:      decimal.Zero,
		RenewalCount:    loan.RenewalCount + 1,
		RelatedID:       loan.ID,
	}

	return core.SuccessDecision(core.BuildLoanRenewed(loan, newDueDate, renewalRecord, command.OccurredAt))
}
