package core

import (
	"math"
	"time"
)

const (
	// LoanPeriodDays is the length of a loan in calendar days.
	LoanPeriodDays = 14

	// ExpiringSoonWindowDays is how many days ahead a membership counts as expiring soon.
	ExpiringSoonWindowDays = 30

	hoursPerDay = 24
)

// CanCheckout reports whether member may borrow a copy of book.
// It checks the member status, the borrowing limit and the available copies, and never fails.
func CanCheckout(member Member, book Book) bool {
	return member.Status == MemberActive &&
		member.CurrentBooksIssued < member.MaxBooksAllowed &&
		book.AvailableCopies > 0
}

// ComputeDueDate returns the due date of a loan started at checkoutAt: 14 calendar days later,
// without any business day adjustment.
func ComputeDueDate(checkoutAt time.Time) time.Time {
	return checkoutAt.AddDate(0, 0, LoanPeriodDays)
}

// IsOverdue reports whether a loan is not returned and its due date is before now.
func IsOverdue(dueDate time.Time, returnDate *time.Time, now time.Time) bool {
	return returnDate == nil && dueDate.Before(now)
}

// IsExpiringSoon reports whether the expiry date is within the next 30 days,
// counting partial days as whole days. An already expired membership is not expiring soon.
func IsExpiringSoon(expiryDate time.Time, now time.Time) bool {
	days := ceilDays(expiryDate.Sub(now))

	return days > 0 && days <= ExpiringSoonWindowDays
}

// IsExpired reports whether the expiry date is before now.
func IsExpired(expiryDate time.Time, now time.Time) bool {
	return expiryDate.Before(now)
}

// DaysOverdue returns the number of started days past the due date, 0 if not late.
func DaysOverdue(dueDate time.Time, at time.Time) int {
	if !at.After(dueDate) {
		return 0
	}

	return int(ceilDays(at.Sub(dueDate)))
}

// DaysUntil returns the number of started days until the instant, negative when it has passed.
func DaysUntil(instant time.Time, now time.Time) int {
	return int(ceilDays(instant.Sub(now)))
}

func ceilDays(d time.Duration) float64 {
	return math.Ceil(d.Hours() / hoursPerDay)
}
