package circulationreport_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/circulationreport"
	"github.com/AntonStoeckl/library-circulation-go/testutil/circulationtest"
)

func Test_ProjectCirculationReport_ReturnsZeros_ForEmptyLibrary(t *testing.T) {
	// act
	report := circulationreport.ProjectCirculationReport(nil, nil, nil, nil, circulationtest.FakeClock)

	// assert
	assert.Zero(t, report.TotalBooks)
	assert.True(t, report.TotalFines.IsZero())
	assert.Zero(t, report.IssuedPercent)
	assert.Zero(t, report.OverduePercent)
	assert.Zero(t, report.IssuedPerActiveMember)
}

func Test_ProjectCirculationReport_CountsAndRatios(t *testing.T) {
	// arrange
	now := circulationtest.FakeClock
	books := []core.Book{{TotalCopies: 3}, {TotalCopies: 1}}
	members := []core.Member{
		{Status: core.MemberActive, FineAmount: decimal.RequireFromString("1.50")},
		{Status: core.MemberActive, FineAmount: decimal.Zero},
		{Status: core.MemberSuspended, FineAmount: decimal.RequireFromString("4.00")},
	}
	openLoans := []core.Transaction{
		{TransactionType: core.TransactionCheckout, DueDate: now.Add(-time.Hour)},
		{TransactionType: core.TransactionCheckout, DueDate: now.AddDate(0, 0, 3)},
	}
	openReservations := []core.Transaction{{TransactionType: core.TransactionReservation}}

	// act
	report := circulationreport.ProjectCirculationReport(books, members, openLoans, openReservations, now)

	// assert
	assert.Equal(t, 2, report.TotalBooks)
	assert.Equal(t, 4, report.TotalCopies)
	assert.Equal(t, 2, report.BooksIssued)
	assert.Equal(t, 2, report.ActiveMembers)
	assert.Equal(t, "5.5", report.TotalFines.String())
	assert.Equal(t, 1, report.OverdueBooks)
	assert.Equal(t, 1, report.TotalReservations)
	assert.InDelta(t, 50.0, report.IssuedPercent, 0.001)
	assert.InDelta(t, 50.0, report.OverduePercent, 0.001)
	assert.InDelta(t, 2.0, report.CopiesPerActiveMember, 0.001)
	assert.InDelta(t, 1.0, report.IssuedPerActiveMember, 0.001)
}
