package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinePolicy determines the late fine of a returned loan.
type FinePolicy struct {
	RatePerDay decimal.Decimal
	Cap        decimal.Decimal
}

// DefaultFinePolicy charges 0.50 per started day late, at most 20.00 per loan.
func DefaultFinePolicy() FinePolicy {
	return FinePolicy{
		RatePerDay: decimal.RequireFromString("0.50"),
		Cap:        decimal.RequireFromString("20.00"),
	}
}

// LateFine computes min(cap, days late * rate) for a loan due at dueDate and returned at returnedAt.
func (p FinePolicy) LateFine(dueDate time.Time, returnedAt time.Time) decimal.Decimal {
	daysLate := DaysOverdue(dueDate, returnedAt)
	if daysLate == 0 {
		return decimal.Zero
	}

	fine := p.RatePerDay.Mul(decimal.NewFromInt(int64(daysLate)))
	if fine.GreaterThan(p.Cap) {
		return p.Cap
	}

	return fine
}
