package core

import (
	"time"
)

// LoanRenewedEventType is the event type identifier.
const LoanRenewedEventType = "LoanRenewed"

// LoanRenewed represents an active loan being extended by one loan period.
type LoanRenewed struct {
	LoanID              TransactionIDString
	LoanExpectedVersion int64
	NewDueDate          time.Time
	RenewalCount        int
	RenewalRecord       Transaction
	OccurredAt          OccurredAt
}

// BuildLoanRenewed creates a new LoanRenewed event.
func BuildLoanRenewed(
	loan Transaction,
	newDueDate time.Time,
	renewalRecord Transaction,
	occurredAt time.Time,
) LoanRenewed {

	return LoanRenewed{
		LoanID:              loan.ID,
		LoanExpectedVersion: loan.Version,
		NewDueDate:          ToOccurredAt(newDueDate),
		RenewalCount:        loan.RenewalCount + 1,
		RenewalRecord:       renewalRecord,
		OccurredAt:          ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LoanRenewed) IsEventType() string {
	return LoanRenewedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanRenewed) HasOccurredAt() time.Time {
	return e.OccurredAt
}
