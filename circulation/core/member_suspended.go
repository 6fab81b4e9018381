package core

import (
	"time"
)

// MemberSuspendedEventType is the event type identifier.
const MemberSuspendedEventType = "MemberSuspended"

// MembershipSuspended represents an active membership being suspended.
type MembershipSuspended struct {
	MemberID        MemberIDString
	ExpectedVersion int64
	OccurredAt      OccurredAt
}

// BuildMemberSuspended creates a new MembershipSuspended event.
func BuildMemberSuspended(memberID string, expectedVersion int64, occurredAt time.Time) MembershipSuspended {
	return MembershipSuspended{
		MemberID:        memberID,
		ExpectedVersion: expectedVersion,
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e MembershipSuspended) IsEventType() string {
	return MemberSuspendedEventType
}

// HasOccurredAt returns when this event occurred.
func (e MembershipSuspended) HasOccurredAt() time.Time {
	return e.OccurredAt
}
