package reservebook

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// State is everything the reservation rules look at.
type State struct {
	ExistingReservation      *core.Transaction
	Book                     *core.Book
	Member                   *core.Member
	MemberHasOpenLoan        bool
	MemberHasOpenReservation bool
}

// Decide determines whether the member can reserve the title.
//
//	GIVEN: a title without copies on the shelf and an active member
//	WHEN:  ReserveBook is received
//	THEN:  BookReserved, the title becomes reserved
//	ERROR: BookNotFound, MemberNotFound, BookUnavailable for titles on hold
//	ERROR: MembershipExpired, IneligibleMember
//	ERROR: CopiesAvailable, AlreadyBorrowed, DuplicateReservation
//	IDEMPOTENCY: a reservation with the command's id exists already
func Decide(s State, command Command) core.DecisionResult {
	if err := core.FirstInvalidID(
		"reservation_id", command.ReservationID,
		"book_id", command.BookID,
		"member_id", command.MemberID,
	); err != nil {
		return core.ErrorDecision(err)
	}

	if s.ExistingReservation != nil {
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

	if book.AvailableCopies > 0 {
		return core.ErrorDecision(core.NewError(
			core.KindCopiesAvailable,
			fmt.Sprintf("%d copies of %q are on the shelf", book.AvailableCopies, book.Title),
		))
	}

	if s.MemberHasOpenLoan {
		return core.ErrorDecision(core.NewError(core.KindAlreadyBorrowed, fmt.Sprintf("member already has %q", book.Title)))
	}

	if s.MemberHasOpenReservation {
		return core.ErrorDecision(core.NewError(core.KindDuplicateReservation, fmt.Sprintf("member already waits for %q", book.Title)))
	}

	reservation := core.Transaction{
		ID:              command.ReservationID,
		TransactionType: core.TransactionReservation,
		BookID:          book.ID,
		MemberID:        member.ID,
		LibrarianID:     command.LibrarianID,
		CheckoutDate:    command.OccurredAt,
		DueDate:         command.OccurredAt,
		FineAmount:      decimal.Zero,
	}

	statusAfter := core.DeriveBookStatus(book.Hold, book.AvailableCopies, true)

	return core.SuccessDecision(core.BuildBookReserved(reservation, book.Version, statusAfter, command.OccurredAt))
}
