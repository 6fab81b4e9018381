package core

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// BookIDString represents a book identifier
type BookIDString = string

// MemberIDString represents a member identifier
type MemberIDString = string

// TransactionIDString represents a ledger transaction identifier
type TransactionIDString = string

// MembershipNumberString represents a human-readable membership number like LIB20240042
type MembershipNumberString = string

// OccurredAt represents when something happened in the domain
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

// TimePtr returns a pointer to the normalized instant, for optional timestamps like a return date.
func TimePtr(t time.Time) *time.Time {
	normalized := ToOccurredAt(t)
	return &normalized
}
