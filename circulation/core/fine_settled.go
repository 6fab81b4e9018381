package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// FineSettledEventType is the event type identifier.
const FineSettledEventType = "FineSettled"

// FineSettled represents a member paying down the fine balance.
type FineSettled struct {
	MemberID   MemberIDString
	Amount     decimal.Decimal
	OccurredAt OccurredAt
}

// BuildFineSettled creates a new FineSettled event.
func BuildFineSettled(memberID string, amount decimal.Decimal, occurredAt time.Time) FineSettled {
	return FineSettled{
		MemberID:   memberID,
		Amount:     amount,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e FineSettled) IsEventType() string {
	return FineSettledEventType
}

// HasOccurredAt returns when this event occurred.
func (e FineSettled) HasOccurredAt() time.Time {
	return e.OccurredAt
}
