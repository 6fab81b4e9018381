package shell_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/store"
	"github.com/AntonStoeckl/library-circulation-go/store/memengine"
)

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func givenStore(t *testing.T) *memengine.Store {
	t.Helper()

	s, err := memengine.NewStore(memengine.WithUniqueField(shell.TableMembers, shell.FieldMembershipNumber))
	require.NoError(t, err)

	return s
}

func givenApplied(t *testing.T, s *memengine.Store, event core.DomainEvent) {
	t.Helper()

	changes, err := shell.ChangesFrom(event)
	require.NoError(t, err)
	require.NoError(t, s.Apply(context.Background(), changes...))
}

func givenBookAndMember(t *testing.T, s *memengine.Store, copies int) (core.Book, core.Member) {
	t.Helper()

	book := core.Book{
		ID:              uuid.NewString(),
		Title:           "The Pragmatic Programmer",
		Language:        core.DefaultLanguage,
		TotalCopies:     copies,
		AvailableCopies: copies,
		Status:          core.BookStatusAvailable,
	}
	member := core.Member{
		ID:               uuid.NewString(),
		MembershipNumber: "LIB20240001",
		MembershipType:   core.MembershipStandard,
		Status:           core.MemberActive,
		JoinDate:         now.AddDate(0, -1, 0),
		ExpiryDate:       now.AddDate(0, 11, 0),
		MaxBooksAllowed:  5,
		FineAmount:       decimal.Zero,
	}

	givenApplied(t, s, core.BuildBookAddedToCatalog(book, now))
	givenApplied(t, s, core.BuildMemberRegistered(member, now))

	return mustLoadBook(t, s, book.ID), mustLoadMember(t, s, member.ID)
}

func givenLoan(book core.Book, member core.Member, checkoutAt time.Time) core.Transaction {
	return core.Transaction{
		ID:              uuid.NewString(),
		TransactionType: core.TransactionCheckout,
		BookID:          book.ID,
		MemberID:        member.ID,
		CheckoutDate:    checkoutAt,
		DueDate:         core.ComputeDueDate(checkoutAt),
		FineAmount:      decimal.Zero,
	}
}

func mustLoadBook(t *testing.T, s shell.SelectsRecords, id string) core.Book {
	t.Helper()

	book, err := shell.LoadBook(context.Background(), s, id)
	require.NoError(t, err)
	require.NotNil(t, book)

	return *book
}

func mustLoadMember(t *testing.T, s shell.SelectsRecords, id string) core.Member {
	t.Helper()

	member, err := shell.LoadMember(context.Background(), s, id)
	require.NoError(t, err)
	require.NotNil(t, member)

	return *member
}

func mustLoadTransaction(t *testing.T, s shell.SelectsRecords, id string) core.Transaction {
	t.Helper()

	transaction, err := shell.LoadTransaction(context.Background(), s, id)
	require.NoError(t, err)
	require.NotNil(t, transaction)

	return *transaction
}

func Test_ChangesFrom_BookCheckedOut_MovesCountersAndAppendsLoan(t *testing.T) {
	// arrange
	s := givenStore(t)
	book, member := givenBookAndMember(t, s, 2)
	loan := givenLoan(book, member, now)

	// act
	givenApplied(t, s, core.BuildBookCheckedOut(loan, book.Version, core.BookStatusAvailable, "", now))

	// assert
	bookAfter := mustLoadBook(t, s, book.ID)
	memberAfter := mustLoadMember(t, s, member.ID)
	loanAfter := mustLoadTransaction(t, s, loan.ID)

	assert.Equal(t, 1, bookAfter.AvailableCopies)
	assert.Equal(t, 2, bookAfter.TotalCopies)
	assert.Equal(t, book.Version+1, bookAfter.Version)
	assert.Equal(t, 1, memberAfter.CurrentBooksIssued)
	assert.Equal(t, core.TransactionCheckout, loanAfter.TransactionType)
	assert.True(t, loanAfter.IsOpen())
	assert.True(t, loanAfter.DueDate.Equal(now.AddDate(0, 0, 14)))
}

func Test_ChangesFrom_BookCheckedOut_Conflicts_WhenBookVersionIsStale(t *testing.T) {
	// arrange
	s := givenStore(t)
	book, member := givenBookAndMember(t, s, 2)
	givenApplied(t, s, core.BuildBookCheckedOut(givenLoan(book, member, now), book.Version, core.BookStatusAvailable, "", now))

	staleChanges, err := shell.ChangesFrom(
		core.BuildBookCheckedOut(givenLoan(book, member, now), book.Version, core.BookStatusCheckedOut, "", now),
	)
	require.NoError(t, err)

	// act
	err = s.Apply(context.Background(), staleChanges...)

	// assert
	assert.ErrorIs(t, err, store.ErrConcurrencyConflict)
	assert.Equal(t, 1, mustLoadBook(t, s, book.ID).AvailableCopies, "nothing of the stale change set is applied")
	assert.Equal(t, 1, mustLoadMember(t, s, member.ID).CurrentBooksIssued)
}

func Test_ChangesFrom_BookCheckedOut_Conflicts_WhenNoCopyIsLeft(t *testing.T) {
	// arrange
	s := givenStore(t)
	book, member := givenBookAndMember(t, s, 1)
	givenApplied(t, s, core.BuildBookCheckedOut(givenLoan(book, member, now), book.Version, core.BookStatusCheckedOut, "", now))
	current := mustLoadBook(t, s, book.ID)

	changes, err := shell.ChangesFrom(
		core.BuildBookCheckedOut(givenLoan(current, member, now), current.Version, core.BookStatusCheckedOut, "", now),
	)
	require.NoError(t, err)

	// act
	err = s.Apply(context.Background(), changes...)

	// assert
	assert.ErrorIs(t, err, store.ErrConcurrencyConflict)
	assert.Equal(t, 0, mustLoadBook(t, s, book.ID).AvailableCopies)
}

func Test_ChangesFrom_BookReturned_RestoresCountersAndChargesFine(t *testing.T) {
	// arrange
	s := givenStore(t)
	book, member := givenBookAndMember(t, s, 1)
	loan := givenLoan(book, member, now.AddDate(0, 0, -20))
	givenApplied(t, s, core.BuildBookCheckedOut(loan, book.Version, core.BookStatusCheckedOut, "", now))

	fine := decimal.RequireFromString("3.00")
	returnRecord := core.Transaction{
		ID:              uuid.NewString(),
		TransactionType: core.TransactionReturn,
		BookID:          book.ID,
		MemberID:        member.ID,
		CheckoutDate:    loan.CheckoutDate,
		DueDate:         loan.DueDate,
		ReturnDate:      core.TimePtr(now),
		FineAmount:      fine,
		RelatedID:       loan.ID,
	}

	// act
	givenApplied(t, s, core.BuildBookReturned(loan, returnRecord, mustLoadBook(t, s, book.ID).Version, fine, core.BookStatusAvailable, now))

	// assert
	bookAfter := mustLoadBook(t, s, book.ID)
	memberAfter := mustLoadMember(t, s, member.ID)
	loanAfter := mustLoadTransaction(t, s, loan.ID)

	assert.Equal(t, 1, bookAfter.AvailableCopies)
	assert.Equal(t, core.BookStatusAvailable, bookAfter.Status)
	assert.Equal(t, 0, memberAfter.CurrentBooksIssued)
	assert.True(t, fine.Equal(memberAfter.FineAmount), "member fine is %s", memberAfter.FineAmount)
	assert.Equal(t, core.LoanReturned, loanAfter.State())
	assert.True(t, fine.Equal(loanAfter.FineAmount))
	assert.Equal(t, core.TransactionReturn, mustLoadTransaction(t, s, returnRecord.ID).TransactionType)
}

func Test_ChangesFrom_BookReturned_Conflicts_WhenReturnedTwice(t *testing.T) {
	// arrange
	s := givenStore(t)
	book, member := givenBookAndMember(t, s, 1)
	loan := givenLoan(book, member, now.AddDate(0, 0, -2))
	givenApplied(t, s, core.BuildBookCheckedOut(loan, book.Version, core.BookStatusCheckedOut, "", now))

	versionAtReturn := mustLoadBook(t, s, book.ID).Version
	returned := func() core.BookReturned {
		record := core.Transaction{ID: uuid.NewString(), TransactionType: core.TransactionReturn, BookID: book.ID, MemberID: member.ID}
		return core.BuildBookReturned(loan, record, versionAtReturn, decimal.Zero, core.BookStatusAvailable, now)
	}
	givenApplied(t, s, returned())

	changes, err := shell.ChangesFrom(returned())
	require.NoError(t, err)

	// act
	err = s.Apply(context.Background(), changes...)

	// assert
	assert.ErrorIs(t, err, store.ErrConcurrencyConflict)
	assert.Equal(t, 1, mustLoadBook(t, s, book.ID).AvailableCopies)
	assert.Equal(t, 0, mustLoadMember(t, s, member.ID).CurrentBooksIssued)
}

func Test_ChangesFrom_FineSettled_Conflicts_WhenAmountExceedsBalance(t *testing.T) {
	// arrange
	s := givenStore(t)
	_, member := givenBookAndMember(t, s, 1)

	changes, err := shell.ChangesFrom(core.BuildFineSettled(member.ID, decimal.RequireFromString("1.00"), now))
	require.NoError(t, err)

	// act
	err = s.Apply(context.Background(), changes...)

	// assert
	assert.ErrorIs(t, err, store.ErrConcurrencyConflict)
}

func Test_ChangesFrom_MemberRegistered_Fails_OnDuplicateMembershipNumber(t *testing.T) {
	// arrange
	s := givenStore(t)
	_, member := givenBookAndMember(t, s, 1)

	other := member
	other.ID = uuid.NewString()

	changes, err := shell.ChangesFrom(core.BuildMemberRegistered(other, now))
	require.NoError(t, err)

	// act
	err = s.Apply(context.Background(), changes...)

	// assert
	assert.ErrorIs(t, err, store.ErrDuplicateRecord)
}

func Test_ChangesFrom_BookRemoved_CancelsOpenReservations(t *testing.T) {
	// arrange
	s := givenStore(t)
	book, member := givenBookAndMember(t, s, 0)
	reservation := core.Transaction{
		ID:              uuid.NewString(),
		TransactionType: core.TransactionReservation,
		BookID:          book.ID,
		MemberID:        member.ID,
		CheckoutDate:    now,
		DueDate:         now,
	}
	givenApplied(t, s, core.BuildBookReserved(reservation, book.Version, core.BookStatusReserved, now))
	current := mustLoadBook(t, s, book.ID)

	// act
	givenApplied(t, s, core.BuildBookRemovedFromCatalog(book.ID, current.Version, now))

	// assert
	removed, err := shell.LoadBook(context.Background(), s, book.ID)
	assert.NoError(t, err)
	assert.Nil(t, removed)
	assert.False(t, mustLoadTransaction(t, s, reservation.ID).IsOpen())
}

func Test_ChangesFrom_FailsForUnknownEvents(t *testing.T) {
	// act
	_, err := shell.ChangesFrom(unknownEvent{})

	// assert
	assert.ErrorIs(t, err, shell.ErrUnknownDomainEvent)
}

type unknownEvent struct{}

func (unknownEvent) IsEventType() string      { return "Unknown" }
func (unknownEvent) HasOccurredAt() time.Time { return time.Time{} }
