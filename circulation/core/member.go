package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// MembershipType determines the default borrowing limit of a member.
type MembershipType string

const (
	MembershipStandard MembershipType = "standard"
	MembershipPremium  MembershipType = "premium"
	MembershipStudent  MembershipType = "student"
)

// ParseMembershipType validates a membership type given as text, the empty string means standard.
func ParseMembershipType(s string) (MembershipType, bool) {
	switch MembershipType(s) {
	case "":
		return MembershipStandard, true
	case MembershipStandard, MembershipPremium, MembershipStudent:
		return MembershipType(s), true
	default:
		return "", false
	}
}

// MemberStatus is the status of a membership.
type MemberStatus string

const (
	MemberActive    MemberStatus = "active"
	MemberSuspended MemberStatus = "suspended"
	MemberExpired   MemberStatus = "expired"
)

// Member is a library patron.
//
// Invariants: 0 <= CurrentBooksIssued <= MaxBooksAllowed, FineAmount >= 0.
type Member struct {
	ID                 MemberIDString         `json:"id"`
	MembershipNumber   MembershipNumberString `json:"membership_number"`
	MembershipType     MembershipType         `json:"membership_type"`
	Status             MemberStatus           `json:"status"`
	JoinDate           time.Time              `json:"join_date"`
	ExpiryDate         time.Time              `json:"expiry_date"`
	MaxBooksAllowed    int                    `json:"max_books_allowed"`
	CurrentBooksIssued int                    `json:"current_books_issued"`
	FineAmount         decimal.Decimal        `json:"fine_amount"`
	ProfileID          string                 `json:"profile_id,omitempty"`
	FullName           string                 `json:"full_name,omitempty"`
	Email              string                 `json:"email,omitempty"`

	// Version is the store version the member was read at, used to guard updates.
	Version int64 `json:"-"`
}

// IsEffectivelyExpired reports whether the membership is expired by status or by date.
func (m Member) IsEffectivelyExpired(now time.Time) bool {
	return m.Status == MemberExpired || IsExpired(m.ExpiryDate, now)
}

// HasReachedBorrowLimit reports whether the member may not borrow another book.
func (m Member) HasReachedBorrowLimit() bool {
	return m.CurrentBooksIssued >= m.MaxBooksAllowed
}
