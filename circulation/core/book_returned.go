package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookReturnedEventType is the event type identifier.
const BookReturnedEventType = "BookReturned"

// BookReturned represents a lent copy coming back.
// The loan gets its return date and fine, ReturnRecord is the appended return ledger record.
// BookExpectedVersion guards the book update against a concurrent change of its hold.
type BookReturned struct {
	LoanID              TransactionIDString
	BookID              BookIDString
	BookExpectedVersion int64
	MemberID            MemberIDString
	ReturnedAt          time.Time
	Fine                decimal.Decimal
	BookStatusAfter     BookStatus
	ReturnRecord        Transaction
	OccurredAt          OccurredAt
}

// BuildBookReturned creates a new BookReturned event.
func BuildBookReturned(
	loan Transaction,
	returnRecord Transaction,
	bookExpectedVersion int64,
	fine decimal.Decimal,
	bookStatusAfter BookStatus,
	returnedAt time.Time,
) BookReturned {

	return BookReturned{
		LoanID:              loan.ID,
		BookID:              loan.BookID,
		BookExpectedVersion: bookExpectedVersion,
		MemberID:            loan.MemberID,
		ReturnedAt:          ToOccurredAt(returnedAt),
		Fine:                fine,
		BookStatusAfter:     bookStatusAfter,
		ReturnRecord:        returnRecord,
		OccurredAt:          ToOccurredAt(returnedAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookReturned) IsEventType() string {
	return BookReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}
