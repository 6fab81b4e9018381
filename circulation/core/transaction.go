package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger record.
type TransactionType string

const (
	// TransactionCheckout is a loan. It is open until its return date is set.
	TransactionCheckout TransactionType = "checkout"
	// TransactionReturn records the return of a loan.
	TransactionReturn TransactionType = "return"
	// TransactionRenewal records the extension of a loan.
	TransactionRenewal TransactionType = "renewal"
	// TransactionReservation is a hold request. It is open until fulfilled or canceled,
	// both of which set its return date.
	TransactionReservation TransactionType = "reservation"
)

// ParseTransactionType validates a transaction type given as text.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch TransactionType(s) {
	case TransactionCheckout, TransactionReturn, TransactionRenewal, TransactionReservation:
		return TransactionType(s), true
	default:
		return "", false
	}
}

// Transaction is a ledger record. Transactions are never deleted.
type Transaction struct {
	ID              TransactionIDString `json:"id"`
	TransactionType TransactionType     `json:"transaction_type"`
	BookID          BookIDString        `json:"book_id"`
	MemberID        MemberIDString      `json:"member_id"`
	LibrarianID     string              `json:"librarian_id,omitempty"`
	CheckoutDate    time.Time           `json:"checkout_date"`
	DueDate         time.Time           `json:"due_date"`
	ReturnDate      *time.Time          `json:"return_date,omitempty"`
	FineAmount      decimal.Decimal     `json:"fine_amount"`
	Notes           string              `json:"notes,omitempty"`
	RenewalCount    int                 `json:"renewal_count,omitempty"`
	RelatedID       TransactionIDString `json:"related_id,omitempty"`

	// Version is the store version the transaction was read at, used to guard updates.
	Version int64 `json:"-"`
}

// LoanState is the lifecycle state of a loan or reservation.
type LoanState string

const (
	// LoanActive is an open loan or reservation.
	LoanActive LoanState = "active"
	// LoanReturned is terminal.
	LoanReturned LoanState = "returned"
)

// State derives the lifecycle state from the presence of the return date.
func (t Transaction) State() LoanState {
	if t.ReturnDate != nil {
		return LoanReturned
	}

	return LoanActive
}

// IsOpen reports whether the transaction has no return date.
func (t Transaction) IsOpen() bool {
	return t.State() == LoanActive
}

// IsOverdueAt classifies an active loan whose due date passed. Overdue is never stored.
func (t Transaction) IsOverdueAt(now time.Time) bool {
	return t.TransactionType == TransactionCheckout && IsOverdue(t.DueDate, t.ReturnDate, now)
}

// Return moves the transaction to the terminal state.
// It fails with KindAlreadyReturned when the transaction is already terminal.
func (t Transaction) Return(at time.Time) (Transaction, error) {
	if t.State() == LoanReturned {
		return t, NewError(KindAlreadyReturned, "transaction "+t.ID+" was already returned")
	}

	t.ReturnDate = TimePtr(at)

	return t, nil
}
