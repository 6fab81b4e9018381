package expiringmemberships

import (
	"slices"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// ProjectExpiringMemberships classifies members by their expiry at the given instant.
//
//	GIVEN: members
//	WHEN:  ExpiringMemberships query is executed at an instant
//	THEN:  expiring soon: 0 < started days until expiry <= 30 and not flagged expired
//	THEN:  expired: expiry date before the instant or status expired
func ProjectExpiringMemberships(members []core.Member, at time.Time) ExpiringMemberships {
	result := ExpiringMemberships{
		ExpiringSoon: make([]MembershipInfo, 0),
		Expired:      make([]MembershipInfo, 0),
	}

	for _, member := range members {
		info := MembershipInfo{
			MemberID:         member.ID,
			MembershipNumber: member.MembershipNumber,
			FullName:         member.FullName,
			Email:            member.Email,
			Status:           member.Status,
			ExpiryDate:       member.ExpiryDate,
			DaysLeft:         core.DaysUntil(member.ExpiryDate, at),
		}

		switch {
		case member.IsEffectivelyExpired(at):
			result.Expired = append(result.Expired, info)
		case core.IsExpiringSoon(member.ExpiryDate, at):
			result.ExpiringSoon = append(result.ExpiringSoon, info)
		}
	}

	byExpiry := func(a, b MembershipInfo) int { return a.ExpiryDate.Compare(b.ExpiryDate) }
	slices.SortStableFunc(result.ExpiringSoon, byExpiry)
	slices.SortStableFunc(result.Expired, byExpiry)

	return result
}
