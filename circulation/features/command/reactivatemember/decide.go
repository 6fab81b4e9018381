package reactivatemember

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// State is the member to reactivate.
type State struct {
	Member *core.Member
}

// Decide determines whether the member can borrow again.
//
//	GIVEN: a suspended member whose membership did not expire
//	WHEN:  ReactivateMember is received
//	THEN:  MemberReactivated
//	ERROR: MemberNotFound, MembershipExpired
//	IDEMPOTENCY: the member is active already
func Decide(s State, command Command) core.DecisionResult {
	if err := core.ValidateID("member_id", command.MemberID); err != nil {
		return core.ErrorDecision(err)
	}

	if s.Member == nil {
		return core.ErrorDecision(core.NewError(core.KindMemberNotFound, "member "+command.MemberID+" does not exist"))
	}

	if s.Member.IsEffectivelyExpired(command.OccurredAt) {
		return core.ErrorDecision(core.NewError(core.KindMembershipExpired, "membership "+s.Member.MembershipNumber+" has expired"))
	}

	if s.Member.Status == core.MemberActive {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildMemberReactivated(s.Member.ID, s.Member.Version, command.OccurredAt))
}
