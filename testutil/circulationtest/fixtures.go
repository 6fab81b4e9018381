package circulationtest

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/store/memengine"
)

var membershipSuffix atomic.Int64

// FakeClock is the evaluation instant fixtures are placed around.
var FakeClock = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

// GivenUniqueID returns a fresh time-ordered uuid.
func GivenUniqueID(t testing.TB) string {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id.String()
}

// NewMemoryStore creates an in-memory store with the unique index on membership numbers.
func NewMemoryStore(t testing.TB) *memengine.Store {
	t.Helper()

	s, err := memengine.NewStore(memengine.WithUniqueField(shell.TableMembers, shell.FieldMembershipNumber))
	require.NoError(t, err, "error in arranging test data")

	return s
}

// GivenEventApplied makes an accepted event durable.
func GivenEventApplied(t testing.TB, s shell.AppliesChanges, event core.DomainEvent) {
	t.Helper()

	changes, err := shell.ChangesFrom(event)
	require.NoError(t, err, "error in arranging test data")
	require.NoError(t, s.Apply(context.Background(), changes...), "error in arranging test data")
}

// BookOption adjusts a fixture book.
type BookOption func(*core.Book)

// WithCopies sets total and available copies.
func WithCopies(total int, available int) BookOption {
	return func(b *core.Book) {
		b.TotalCopies = total
		b.AvailableCopies = available
	}
}

// WithHold puts the book on maintenance or lost hold.
func WithHold(hold core.BookHold) BookOption {
	return func(b *core.Book) {
		b.Hold = hold
	}
}

// WithTitle sets title and isbn.
func WithTitle(title string, isbn string) BookOption {
	return func(b *core.Book) {
		b.Title = title
		b.ISBN = isbn
	}
}

// GivenBook adds a book with one available copy unless options say otherwise.
func GivenBook(t testing.TB, s shell.RecordStore, opts ...BookOption) core.Book {
	t.Helper()

	book := core.Book{
		ID:              GivenUniqueID(t),
		Title:           "Learning Domain-Driven Design",
		ISBN:            "978-1-098-10013-1",
		Publisher:       "O'Reilly Media, Inc.",
		PublicationYear: 2021,
		Language:        core.DefaultLanguage,
		TotalCopies:     1,
		AvailableCopies: 1,
	}

	for _, opt := range opts {
		opt(&book)
	}

	book.Status = core.DeriveBookStatus(book.Hold, book.AvailableCopies, false)

	GivenEventApplied(t, s, core.BuildBookAddedToCatalog(book, FakeClock.AddDate(0, -6, 0)))

	return MustLoadBook(t, s, book.ID)
}

// MemberOption adjusts a fixture member.
type MemberOption func(*core.Member)

// WithStatus sets the member status.
func WithStatus(status core.MemberStatus) MemberOption {
	return func(m *core.Member) {
		m.Status = status
	}
}

// WithExpiry sets the membership expiry date.
func WithExpiry(expiry time.Time) MemberOption {
	return func(m *core.Member) {
		m.ExpiryDate = expiry
	}
}

// WithBorrowing sets the borrowing limit and the number of books issued.
func WithBorrowing(maxBooks int, issued int) MemberOption {
	return func(m *core.Member) {
		m.MaxBooksAllowed = maxBooks
		m.CurrentBooksIssued = issued
	}
}

// WithFine sets the fine balance.
func WithFine(amount string) MemberOption {
	return func(m *core.Member) {
		m.FineAmount = decimal.RequireFromString(amount)
	}
}

// WithName sets full name and membership number.
func WithName(fullName string, membershipNumber string) MemberOption {
	return func(m *core.Member) {
		m.FullName = fullName
		m.MembershipNumber = membershipNumber
	}
}

// GivenMember registers an active standard member whose membership runs for another half year.
func GivenMember(t testing.TB, s shell.RecordStore, opts ...MemberOption) core.Member {
	t.Helper()

	id := GivenUniqueID(t)
	member := core.Member{
		ID:               id,
		MembershipNumber: core.FormatMembershipNumber(2024, int(membershipSuffix.Add(1)%10000)),
		MembershipType:   core.MembershipStandard,
		Status:           core.MemberActive,
		JoinDate:         FakeClock.AddDate(0, -6, 0),
		ExpiryDate:       FakeClock.AddDate(0, 6, 0),
		MaxBooksAllowed:  5,
		FineAmount:       decimal.Zero,
		FullName:         "Jane Doe",
	}

	for _, opt := range opts {
		opt(&member)
	}

	GivenEventApplied(t, s, core.BuildMemberRegistered(member, member.JoinDate))

	return MustLoadMember(t, s, member.ID)
}

// GivenLoan checks the book out to the member at checkoutAt, moving the counters like the checkout handler does.
func GivenLoan(t testing.TB, s shell.RecordStore, book core.Book, member core.Member, checkoutAt time.Time) core.Transaction {
	t.Helper()

	current := MustLoadBook(t, s, book.ID)
	loan := core.Transaction{
		ID:              GivenUniqueID(t),
		TransactionType: core.TransactionCheckout,
		BookID:          book.ID,
		MemberID:        member.ID,
		CheckoutDate:    core.ToOccurredAt(checkoutAt),
		DueDate:         core.ToOccurredAt(core.ComputeDueDate(checkoutAt)),
		FineAmount:      decimal.Zero,
	}

	statusAfter := core.DeriveBookStatus(current.Hold, current.AvailableCopies-1, false)
	GivenEventApplied(t, s, core.BuildBookCheckedOut(loan, current.Version, statusAfter, "", checkoutAt))

	return MustLoadTransaction(t, s, loan.ID)
}

// GivenReservation places an open reservation of the book for the member.
func GivenReservation(t testing.TB, s shell.RecordStore, book core.Book, member core.Member, reservedAt time.Time) core.Transaction {
	t.Helper()

	current := MustLoadBook(t, s, book.ID)
	reservation := core.Transaction{
		ID:              GivenUniqueID(t),
		TransactionType: core.TransactionReservation,
		BookID:          book.ID,
		MemberID:        member.ID,
		CheckoutDate:    core.ToOccurredAt(reservedAt),
		DueDate:         core.ToOccurredAt(reservedAt),
		FineAmount:      decimal.Zero,
	}

	statusAfter := core.DeriveBookStatus(current.Hold, current.AvailableCopies, true)
	GivenEventApplied(t, s, core.BuildBookReserved(reservation, current.Version, statusAfter, reservedAt))

	return MustLoadTransaction(t, s, reservation.ID)
}

// MustLoadBook loads a book that must exist.
func MustLoadBook(t testing.TB, s shell.SelectsRecords, id string) core.Book {
	t.Helper()

	book, err := shell.LoadBook(context.Background(), s, id)
	require.NoError(t, err)
	require.NotNil(t, book, "book %s must exist", id)

	return *book
}

// MustLoadMember loads a member that must exist.
func MustLoadMember(t testing.TB, s shell.SelectsRecords, id string) core.Member {
	t.Helper()

	member, err := shell.LoadMember(context.Background(), s, id)
	require.NoError(t, err)
	require.NotNil(t, member, "member %s must exist", id)

	return *member
}

// MustLoadTransaction loads a ledger record that must exist.
func MustLoadTransaction(t testing.TB, s shell.SelectsRecords, id string) core.Transaction {
	t.Helper()

	transaction, err := shell.LoadTransaction(context.Background(), s, id)
	require.NoError(t, err)
	require.NotNil(t, transaction, "transaction %s must exist", id)

	return *transaction
}
