package core

import (
	"time"
)

// MemberRegisteredEventType is the event type identifier.
const MemberRegisteredEventType = "MemberRegistered"

// MemberRegistered represents a new member joining the library.
type MemberRegistered struct {
	Member     Member
	OccurredAt OccurredAt
}

// BuildMemberRegistered creates a new MemberRegistered event.
func BuildMemberRegistered(member Member, occurredAt time.Time) MemberRegistered {
	return MemberRegistered{
		Member:     member,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e MemberRegistered) IsEventType() string {
	return MemberRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}
