package circulationreport

import (
	"github.com/shopspring/decimal"
)

// CirculationReport holds the summary statistics of the library.
type CirculationReport struct {
	TotalBooks        int
	TotalCopies       int
	BooksIssued       int
	ActiveMembers     int
	TotalFines        decimal.Decimal
	OverdueBooks      int
	TotalReservations int

	// IssuedPercent is issued loans per copy, OverduePercent overdue loans per issued loan.
	IssuedPercent  float64
	OverduePercent float64

	CopiesPerActiveMember float64
	IssuedPerActiveMember float64
}
