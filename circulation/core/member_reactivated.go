package core

import (
	"time"
)

// MemberReactivatedEventType is the event type identifier.
const MemberReactivatedEventType = "MemberReactivated"

// MemberReactivated represents a suspended membership becoming active again.
type MemberReactivated struct {
	MemberID        MemberIDString
	ExpectedVersion int64
	OccurredAt      OccurredAt
}

// BuildMemberReactivated creates a new MemberReactivated event.
func BuildMemberReactivated(memberID string, expectedVersion int64, occurredAt time.Time) MemberReactivated {
	return MemberReactivated{
		MemberID:        memberID,
		ExpectedVersion: expectedVersion,
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e MemberReactivated) IsEventType() string {
	return MemberReactivatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberReactivated) HasOccurredAt() time.Time {
	return e.OccurredAt
}
