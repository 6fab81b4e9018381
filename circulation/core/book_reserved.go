package core

import (
	"time"
)

// BookReservedEventType is the event type identifier.
const BookReservedEventType = "BookReserved"

// BookReserved represents a member queueing for a title without available copies.
type BookReserved struct {
	Reservation         Transaction
	BookExpectedVersion int64
	BookStatusAfter     BookStatus
	OccurredAt          OccurredAt
}

// BuildBookReserved creates a new BookReserved event.
func BuildBookReserved(
	reservation Transaction,
	bookExpectedVersion int64,
	bookStatusAfter BookStatus,
	occurredAt time.Time,
) BookReserved {

	return BookReserved{
		Reservation:         reservation,
		BookExpectedVersion: bookExpectedVersion,
		BookStatusAfter:     bookStatusAfter,
		OccurredAt:          ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookReserved) IsEventType() string {
	return BookReservedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReserved) HasOccurredAt() time.Time {
	return e.OccurredAt
}
