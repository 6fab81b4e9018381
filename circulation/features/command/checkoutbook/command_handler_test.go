package checkoutbook_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/checkoutbook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/testutil/circulationtest"
)

func Test_CommandHandler_Handle_Success_MovesCounters(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	book := circulationtest.GivenBook(t, s, circulationtest.WithCopies(2, 2))
	member := circulationtest.GivenMember(t, s)
	handler := checkoutbook.NewCommandHandler(s)
	loanID := circulationtest.GivenUniqueID(t)

	// act
	result, err := handler.Handle(
		context.Background(),
		checkoutbook.BuildCommand(loanID, book.ID, member.ID, "front-desk", circulationtest.FakeClock),
	)

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, 1, circulationtest.MustLoadBook(t, s, book.ID).AvailableCopies)
	assert.Equal(t, 1, circulationtest.MustLoadMember(t, s, member.ID).CurrentBooksIssued)

	loan := circulationtest.MustLoadTransaction(t, s, loanID)
	assert.Equal(t, core.LoanActive, loan.State())
	assert.True(t, loan.DueDate.Equal(core.ComputeDueDate(circulationtest.FakeClock)))
}

func Test_CommandHandler_Handle_Success_FulfillsOwnReservation(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	book := circulationtest.GivenBook(t, s)
	borrower := circulationtest.GivenMember(t, s)
	member := circulationtest.GivenMember(t, s)
	loan := circulationtest.GivenLoan(t, s, book, borrower, circulationtest.FakeClock.AddDate(0, 0, -10))
	reservation := circulationtest.GivenReservation(t, s, book, member, circulationtest.FakeClock.AddDate(0, 0, -5))
	circulationtest.GivenEventApplied(t, s, core.BuildBookReturned(
		loan,
		core.Transaction{ID: circulationtest.GivenUniqueID(t), TransactionType: core.TransactionReturn, BookID: book.ID, MemberID: borrower.ID},
		circulationtest.MustLoadBook(t, s, book.ID).Version,
		loan.FineAmount,
		core.BookStatusAvailable,
		circulationtest.FakeClock.AddDate(0, 0, -1),
	))
	handler := checkoutbook.NewCommandHandler(s)
	loanID := circulationtest.GivenUniqueID(t)

	// act
	_, err := handler.Handle(context.Background(), checkoutbook.BuildCommand(loanID, book.ID, member.ID, "", circulationtest.FakeClock))

	// assert
	require.NoError(t, err)
	fulfilled := circulationtest.MustLoadTransaction(t, s, reservation.ID)
	assert.False(t, fulfilled.IsOpen())
	assert.Equal(t, loanID, fulfilled.RelatedID)
	assert.Equal(t, core.BookStatusCheckedOut, circulationtest.MustLoadBook(t, s, book.ID).Status)
}

func Test_CommandHandler_Handle_Error_WritesNothing_WhenIneligible(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	book := circulationtest.GivenBook(t, s)
	member := circulationtest.GivenMember(t, s, circulationtest.WithStatus(core.MemberSuspended))
	handler := checkoutbook.NewCommandHandler(s)
	loanID := circulationtest.GivenUniqueID(t)

	// act
	_, err := handler.Handle(context.Background(), checkoutbook.BuildCommand(loanID, book.ID, member.ID, "", circulationtest.FakeClock))

	// assert
	assert.True(t, core.IsKind(err, core.KindIneligibleMember))
	assert.Equal(t, book, circulationtest.MustLoadBook(t, s, book.ID))
	assert.Equal(t, 0, circulationtest.MustLoadMember(t, s, member.ID).CurrentBooksIssued)

	loan, loadErr := shell.LoadTransaction(context.Background(), s, loanID)
	assert.NoError(t, loadErr)
	assert.Nil(t, loan)
}

func Test_CommandHandler_Handle_Idempotent_WhenRepeated(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	book := circulationtest.GivenBook(t, s, circulationtest.WithCopies(3, 3))
	member := circulationtest.GivenMember(t, s)
	handler := checkoutbook.NewCommandHandler(s)
	command := checkoutbook.BuildCommand(circulationtest.GivenUniqueID(t), book.ID, member.ID, "", circulationtest.FakeClock)
	_, err := handler.Handle(context.Background(), command)
	require.NoError(t, err)

	// act
	result, err := handler.Handle(context.Background(), command)

	// assert
	assert.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Equal(t, 2, circulationtest.MustLoadBook(t, s, book.ID).AvailableCopies)
}

func Test_CommandHandler_Handle_LendsTheLastCopyOnlyOnce(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	book := circulationtest.GivenBook(t, s, circulationtest.WithCopies(1, 1))
	members := []core.Member{circulationtest.GivenMember(t, s), circulationtest.GivenMember(t, s)}
	handler := checkoutbook.NewCommandHandler(s)
	loanIDs := []string{circulationtest.GivenUniqueID(t), circulationtest.GivenUniqueID(t)}

	// act
	errs := make([]error, len(members))
	var wg sync.WaitGroup
	for i, member := range members {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = handler.Handle(
				context.Background(),
				checkoutbook.BuildCommand(loanIDs[i], book.ID, member.ID, "", circulationtest.FakeClock),
			)
		}()
	}
	wg.Wait()

	// assert
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, core.IsKind(err, core.KindNoCopiesAvailable), "got %v", err)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 0, circulationtest.MustLoadBook(t, s, book.ID).AvailableCopies)
}
