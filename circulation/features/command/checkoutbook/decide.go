package checkoutbook

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// State is everything the checkout rules look at.
type State struct {
	ExistingLoan      *core.Transaction
	Book              *core.Book
	Member            *core.Member
	MemberHasOpenLoan bool

	// OpenReservations of the book, by any member.
	OpenReservations []core.Transaction
}

// Decide determines whether the book can be checked out by the member.
//
//	GIVEN: an available book and an active member below the borrowing limit
//	WHEN:  CheckOutBook is received
//	THEN:  BookCheckedOut, fulfilling the member's own reservation if there is one
//	ERROR: BookNotFound, MemberNotFound
//	ERROR: BookUnavailable when the book is on maintenance or lost hold
//	ERROR: MembershipExpired, IneligibleMember, BorrowLimitReached
//	ERROR: NoCopiesAvailable, AlreadyBorrowed
//	ERROR: ReservedForAnotherMember when the available copies are promised to earlier reservations
//	IDEMPOTENCY: a transaction with the command's id exists already
func Decide(s State, command Command) core.DecisionResult {
	if err := core.FirstInvalidID(
		"transaction_id", command.TransactionID,
		"book_id", command.BookID,
		"member_id", command.MemberID,
	); err != nil {
		return core.ErrorDecision(err)
	}

	if s.ExistingLoan != nil {
		return core.IdempotentDecision()
	}

	if s.Book == nil {
		return core.ErrorDecision(core.NewError(core.KindBookNotFound, "book "+command.BookID+" does not exist"))
	}

	if s.Member == nil {
		return core.ErrorDecision(core.NewError(core.KindMemberNotFound, "member "+command.MemberID+" does not exist"))
	}

	book, member := *s.Book, *s.Member

	if book.IsOnHold() {
		return core.ErrorDecision(core.NewError(core.KindBookUnavailable, fmt.Sprintf("%q is %s", book.Title, book.Hold)))
	}

	if member.IsEffectivelyExpired(command.OccurredAt) {
		return core.ErrorDecision(core.NewError(core.KindMembershipExpired, "membership "+member.MembershipNumber+" has expired"))
	}

	if member.Status != core.MemberActive {
		return core.ErrorDecision(core.NewError(core.KindIneligibleMember, "membership "+member.MembershipNumber+" is "+string(member.Status)))
	}

	if member.HasReachedBorrowLimit() {
		return core.ErrorDecision(core.NewError(
			core.KindBorrowLimitReached,
			fmt.Sprintf("member has %d of %d books", member.CurrentBooksIssued, member.MaxBooksAllowed),
		))
	}

	if book.AvailableCopies == 0 {
		return core.ErrorDecision(core.NewError(core.KindNoCopiesAvailable, fmt.Sprintf("no copy of %q is on the shelf", book.Title)))
	}

	if s.MemberHasOpenLoan {
		return core.ErrorDecision(core.NewError(core.KindAlreadyBorrowed, fmt.Sprintf("member already has %q", book.Title)))
	}

	ahead, own := queuePosition(s.OpenReservations, member.ID)
	if book.AvailableCopies <= ahead {
		return core.ErrorDecision(core.NewError(
			core.KindReservedForAnotherMember,
			fmt.Sprintf("%d reservations of %q come first", ahead, book.Title),
		))
	}

	loan := core.Transaction{
		ID:              command.TransactionID,
		TransactionType: core.TransactionCheckout,
		BookID:          book.ID,
		MemberID:        member.ID,
		LibrarianID:     command.LibrarianID,
		CheckoutDate:    command.OccurredAt,
		DueDate:         core.ComputeDueDate(command.OccurredAt),
		FineAmount:      decimal.Zero,
	}

	remaining := len(s.OpenReservations)
	fulfilledReservationID := ""
	if own != nil {
		remaining--
		fulfilledReservationID = own.ID
	}

	statusAfter := core.DeriveBookStatus(book.Hold, book.AvailableCopies-1, remaining > 0)

	return core.SuccessDecision(core.BuildBookCheckedOut(loan, book.Version, statusAfter, fulfilledReservationID, command.OccurredAt))
}

// queuePosition counts the reservations of other members placed before the member's own one,
// which is returned too. Without an own reservation every other reservation is ahead.
func queuePosition(reservations []core.Transaction, memberID core.MemberIDString) (int, *core.Transaction) {
	queue := slices.Clone(reservations)
	slices.SortStableFunc(queue, func(a, b core.Transaction) int {
		return a.CheckoutDate.Compare(b.CheckoutDate)
	})

	for i := range queue {
		if queue[i].MemberID == memberID {
			return i, &queue[i]
		}
	}

	return len(queue), nil
}
