package circulationreport

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// ProjectCirculationReport derives the report from current snapshots.
// This is a pure function: openLoans and openReservations are the checkout and reservation
// records without a return date.
//
//	GIVEN: all books, all members, the open loans and the open reservations
//	WHEN:  CirculationReport query is executed at an instant
//	THEN:  counts, the fine sum and the derived ratios are returned
//	RATIOS: divisors are at least 1, so an empty library reports zeros
func ProjectCirculationReport(
	books []core.Book,
	members []core.Member,
	openLoans []core.Transaction,
	openReservations []core.Transaction,
	at time.Time,
) CirculationReport {

	report := CirculationReport{
		TotalBooks:        len(books),
		BooksIssued:       len(openLoans),
		TotalFines:        decimal.Zero,
		TotalReservations: len(openReservations),
	}

	for _, book := range books {
		report.TotalCopies += book.TotalCopies
	}

	for _, member := range members {
		if member.Status == core.MemberActive {
			report.ActiveMembers++
		}
		report.TotalFines = report.TotalFines.Add(member.FineAmount)
	}

	for _, loan := range openLoans {
		if loan.IsOverdueAt(at) {
			report.OverdueBooks++
		}
	}

	report.IssuedPercent = percent(report.BooksIssued, report.TotalCopies)
	report.OverduePercent = percent(report.OverdueBooks, report.BooksIssued)
	report.CopiesPerActiveMember = ratio(report.TotalCopies, report.ActiveMembers)
	report.IssuedPerActiveMember = ratio(report.BooksIssued, report.ActiveMembers)

	return report
}

func percent(part int, whole int) float64 {
	return 100 * ratio(part, whole)
}

func ratio(part int, whole int) float64 {
	return float64(part) / float64(max(1, whole))
}
