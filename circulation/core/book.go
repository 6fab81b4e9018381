package core

// BookStatus is the circulation status of a catalog title.
type BookStatus string

const (
	BookStatusAvailable   BookStatus = "available"
	BookStatusCheckedOut  BookStatus = "checked_out"
	BookStatusReserved    BookStatus = "reserved"
	BookStatusMaintenance BookStatus = "maintenance"
	BookStatusLost        BookStatus = "lost"
)

// BookHold takes all copies of a title out of circulation regardless of the counters.
type BookHold string

const (
	BookHoldNone        BookHold = ""
	BookHoldMaintenance BookHold = "maintenance"
	BookHoldLost        BookHold = "lost"
)

// DefaultLanguage is used when a title is added without a language.
const DefaultLanguage = "English"

// Book is a catalog title with a number of physical copies.
//
// Invariant: 0 <= AvailableCopies <= TotalCopies.
type Book struct {
	ID              BookIDString `json:"id"`
	Title           string       `json:"title"`
	ISBN            string       `json:"isbn,omitempty"`
	Publisher       string       `json:"publisher,omitempty"`
	PublicationYear int          `json:"publication_year,omitempty"`
	Pages           int          `json:"pages,omitempty"`
	Language        string       `json:"language"`
	TotalCopies     int          `json:"total_copies"`
	AvailableCopies int          `json:"available_copies"`
	Status          BookStatus   `json:"status"`
	Hold            BookHold     `json:"hold,omitempty"`

	// Version is the store version the book was read at, used to guard updates.
	Version int64 `json:"-"`
}

// CopiesOut returns the number of copies currently lent.
func (b Book) CopiesOut() int {
	return b.TotalCopies - b.AvailableCopies
}

// IsOnHold reports whether the title is in maintenance or lost.
func (b Book) IsOnHold() bool {
	return b.Hold != BookHoldNone
}

// DeriveBookStatus computes the status of a title from its hold and counters.
// A hold wins, then available copies, then open reservations.
func DeriveBookStatus(hold BookHold, availableCopies int, hasOpenReservations bool) BookStatus {
	switch hold {
	case BookHoldMaintenance:
		return BookStatusMaintenance
	case BookHoldLost:
		return BookStatusLost
	}

	if availableCopies > 0 {
		return BookStatusAvailable
	}

	if hasOpenReservations {
		return BookStatusReserved
	}

	return BookStatusCheckedOut
}

// ParseBookHold validates a hold given as text, the empty string clears the hold.
func ParseBookHold(s string) (BookHold, bool) {
	switch BookHold(s) {
	case BookHoldNone, BookHoldMaintenance, BookHoldLost:
		return BookHold(s), true
	default:
		return BookHoldNone, false
	}
}
