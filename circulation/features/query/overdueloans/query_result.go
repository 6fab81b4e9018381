package overdueloans

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// OverdueLoan is one late loan with the details a librarian needs to chase it.
type OverdueLoan struct {
	LoanID           core.TransactionIDString
	BookID           core.BookIDString
	Title            string
	ISBN             string
	MemberID         core.MemberIDString
	MembershipNumber core.MembershipNumberString
	MemberName       string
	Email            string
	CheckoutDate     time.Time
	DueDate          time.Time
	DaysOverdue      int
	AccruedFine      decimal.Decimal
}

// OverdueLoans represents the query result, the longest overdue first.
type OverdueLoans struct {
	Loans []OverdueLoan
	Count int
}
