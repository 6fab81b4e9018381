package suspendmember

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// State is the member to suspend.
type State struct {
	Member *core.Member
}

// Decide determines whether the member can be suspended.
//
//	GIVEN: an active member
//	WHEN:  SuspendMember is received
//	THEN:  MemberSuspended
//	ERROR: MemberNotFound, MembershipExpired
//	IDEMPOTENCY: the member is suspended already
func Decide(s State, command Command) core.DecisionResult {
	if err := core.ValidateID("member_id", command.MemberID); err != nil {
		return core.ErrorDecision(err)
	}

	if s.Member == nil {
		return core.ErrorDecision(core.NewError(core.KindMemberNotFound, "member "+command.MemberID+" does not exist"))
	}

	if s.Member.Status == core.MemberSuspended {
		return core.IdempotentDecision()
	}

	if s.Member.IsEffectivelyExpired(command.OccurredAt) {
		return core.ErrorDecision(core.NewError(core.KindMembershipExpired, "membership "+s.Member.MembershipNumber+" has expired"))
	}

	return core.SuccessDecision(core.BuildMemberSuspended(s.Member.ID, s.Member.Version, command.OccurredAt))
}
