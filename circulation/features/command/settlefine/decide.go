package settlefine

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// State is the paying member.
type State struct {
	Member *core.Member
}

// Decide determines whether the payment can be booked.
//
//	GIVEN: a member with a fine balance of at least the amount
//	WHEN:  SettleFine is received
//	THEN:  FineSettled
//	ERROR: InvalidInput for amounts of zero or less
//	ERROR: MemberNotFound, FineExceedsBalance
func Decide(s State, command Command) core.DecisionResult {
	if err := core.ValidateID("member_id", command.MemberID); err != nil {
		return core.ErrorDecision(err)
	}

	if !command.Amount.IsPositive() {
		return core.ErrorDecision(core.NewError(core.KindInvalidInput, "amount must be positive, got "+command.Amount.String()))
	}

	if s.Member == nil {
		return core.ErrorDecision(core.NewError(core.KindMemberNotFound, "member "+command.MemberID+" does not exist"))
	}

	if command.Amount.GreaterThan(s.Member.FineAmount) {
		return core.ErrorDecision(core.NewError(
			core.KindFineExceedsBalance,
			"amount "+command.Amount.StringFixed(2)+" exceeds the balance of "+s.Member.FineAmount.StringFixed(2),
		))
	}

	return core.SuccessDecision(core.BuildFineSettled(s.Member.ID, command.Amount, command.OccurredAt))
}
