// Package expiringmemberships implements the Expiring Memberships query use case.
//
// Memberships ending within the next 30 days are listed as expiring soon, memberships past their
// expiry date or flagged expired are listed as expired.
package expiringmemberships
