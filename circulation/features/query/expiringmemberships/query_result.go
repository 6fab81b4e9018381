package expiringmemberships

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// MembershipInfo describes one membership and how many days it has left.
// DaysLeft is negative for memberships that already expired.
type MembershipInfo struct {
	MemberID         core.MemberIDString
	MembershipNumber core.MembershipNumberString
	FullName         string
	Email            string
	Status           core.MemberStatus
	ExpiryDate       time.Time
	DaysLeft         int
}

// ExpiringMemberships represents the query result, each list ordered by expiry date.
type ExpiringMemberships struct {
	ExpiringSoon []MembershipInfo
	Expired      []MembershipInfo
}
