package core

import (
	"time"
)

// BookCheckedOutEventType is the event type identifier.
const BookCheckedOutEventType = "BookCheckedOut"

// BookCheckedOut represents a copy of a book being lent to a member.
// Loan is the new checkout transaction. FulfilledReservationID is set when the member had an open
// reservation of the book, which is closed in the same change set.
type BookCheckedOut struct {
	Loan                   Transaction
	BookExpectedVersion    int64
	BookStatusAfter        BookStatus
	FulfilledReservationID TransactionIDString
	OccurredAt             OccurredAt
}

// BuildBookCheckedOut creates a new BookCheckedOut event.
func BuildBookCheckedOut(
	loan Transaction,
	bookExpectedVersion int64,
	bookStatusAfter BookStatus,
	fulfilledReservationID string,
	occurredAt time.Time,
) BookCheckedOut {

	return BookCheckedOut{
		Loan:                   loan,
		BookExpectedVersion:    bookExpectedVersion,
		BookStatusAfter:        bookStatusAfter,
		FulfilledReservationID: fulfilledReservationID,
		OccurredAt:             ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookCheckedOut) IsEventType() string {
	return BookCheckedOutEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookCheckedOut) HasOccurredAt() time.Time {
	return e.OccurredAt
}
