package checkoutbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/checkoutbook"
	"github.com/AntonStoeckl/library-circulation-go/testutil/circulationtest"
)

func givenState() checkoutbook.State {
	return checkoutbook.State{
		Book: &core.Book{
			ID:              uuid.NewString(),
			Title:           "Refactoring",
			TotalCopies:     2,
			AvailableCopies: 2,
			Status:          core.BookStatusAvailable,
			Version:         3,
		},
		Member: &core.Member{
			ID:               uuid.NewString(),
			MembershipNumber: "LIB20240001",
			Status:           core.MemberActive,
			ExpiryDate:       circulationtest.FakeClock.AddDate(0, 3, 0),
			MaxBooksAllowed:  5,
		},
	}
}

func commandFor(s checkoutbook.State) checkoutbook.Command {
	return checkoutbook.BuildCommand(uuid.NewString(), s.Book.ID, s.Member.ID, "front-desk", circulationtest.FakeClock)
}

func reservationOf(s checkoutbook.State, memberID string, reservedAt time.Time) core.Transaction {
	return core.Transaction{
		ID:              uuid.NewString(),
		TransactionType: core.TransactionReservation,
		BookID:          s.Book.ID,
		MemberID:        memberID,
		CheckoutDate:    reservedAt,
		DueDate:         reservedAt,
	}
}

func Test_Decide_Success_CreatesLoanDueInTwoWeeks(t *testing.T) {
	// arrange
	s := givenState()
	command := commandFor(s)

	// act
	result := checkoutbook.Decide(s, command)

	// assert
	require.True(t, result.HasChangesToApply())
	event, ok := result.Event.(core.BookCheckedOut)
	require.True(t, ok)
	assert.Equal(t, command.TransactionID, event.Loan.ID)
	assert.Equal(t, core.TransactionCheckout, event.Loan.TransactionType)
	assert.Equal(t, "front-desk", event.Loan.LibrarianID)
	assert.True(t, event.Loan.DueDate.Equal(circulationtest.FakeClock.AddDate(0, 0, 14)))
	assert.Nil(t, event.Loan.ReturnDate)
	assert.Equal(t, int64(3), event.BookExpectedVersion)
	assert.Equal(t, core.BookStatusAvailable, event.BookStatusAfter)
	assert.Empty(t, event.FulfilledReservationID)
}

func Test_Decide_Success_StatusAfterLastCopy(t *testing.T) {
	testCases := []struct {
		name             string
		otherReservation bool
		wantStatus       core.BookStatus
	}{
		{name: "nobody waiting", wantStatus: core.BookStatusCheckedOut},
		{name: "someone waiting", otherReservation: true, wantStatus: core.BookStatusReserved},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			s := givenState()
			s.Book.TotalCopies, s.Book.AvailableCopies = 1, 1
			own := reservationOf(s, s.Member.ID, circulationtest.FakeClock.AddDate(0, 0, -2))
			s.OpenReservations = []core.Transaction{own}
			if tc.otherReservation {
				s.OpenReservations = append(s.OpenReservations, reservationOf(s, uuid.NewString(), circulationtest.FakeClock.AddDate(0, 0, -1)))
			}

			// act
			result := checkoutbook.Decide(s, commandFor(s))

			// assert
			require.True(t, result.HasChangesToApply())
			event, ok := result.Event.(core.BookCheckedOut)
			require.True(t, ok)
			assert.Equal(t, tc.wantStatus, event.BookStatusAfter)
			assert.Equal(t, own.ID, event.FulfilledReservationID)
		})
	}
}

func Test_Decide_Idempotent_WhenLoanExists(t *testing.T) {
	// arrange
	s := givenState()
	command := commandFor(s)
	s.ExistingLoan = &core.Transaction{ID: command.TransactionID}

	// act
	result := checkoutbook.Decide(s, command)

	// assert
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_Error(t *testing.T) {
	testCases := []struct {
		name     string
		arrange  func(s *checkoutbook.State)
		wantKind core.ErrorKind
	}{
		{
			name:     "unknown book",
			arrange:  func(s *checkoutbook.State) { s.Book = nil },
			wantKind: core.KindBookNotFound,
		},
		{
			name:     "unknown member",
			arrange:  func(s *checkoutbook.State) { s.Member = nil },
			wantKind: core.KindMemberNotFound,
		},
		{
			name:     "book in maintenance",
			arrange:  func(s *checkoutbook.State) { s.Book.Hold = core.BookHoldMaintenance },
			wantKind: core.KindBookUnavailable,
		},
		{
			name:     "book lost",
			arrange:  func(s *checkoutbook.State) { s.Book.Hold = core.BookHoldLost },
			wantKind: core.KindBookUnavailable,
		},
		{
			name:     "membership past expiry date",
			arrange:  func(s *checkoutbook.State) { s.Member.ExpiryDate = circulationtest.FakeClock.Add(-time.Minute) },
			wantKind: core.KindMembershipExpired,
		},
		{
			name:     "membership expired by status",
			arrange:  func(s *checkoutbook.State) { s.Member.Status = core.MemberExpired },
			wantKind: core.KindMembershipExpired,
		},
		{
			name:     "member suspended",
			arrange:  func(s *checkoutbook.State) { s.Member.Status = core.MemberSuspended },
			wantKind: core.KindIneligibleMember,
		},
		{
			name:     "borrowing limit reached",
			arrange:  func(s *checkoutbook.State) { s.Member.CurrentBooksIssued = 5 },
			wantKind: core.KindBorrowLimitReached,
		},
		{
			name:     "no copy on the shelf",
			arrange:  func(s *checkoutbook.State) { s.Book.AvailableCopies = 0 },
			wantKind: core.KindNoCopiesAvailable,
		},
		{
			name:     "member holds a copy already",
			arrange:  func(s *checkoutbook.State) { s.MemberHasOpenLoan = true },
			wantKind: core.KindAlreadyBorrowed,
		},
		{
			name: "copies promised to earlier reservations",
			arrange: func(s *checkoutbook.State) {
				s.OpenReservations = []core.Transaction{
					reservationOf(*s, uuid.NewString(), circulationtest.FakeClock.AddDate(0, 0, -3)),
					reservationOf(*s, uuid.NewString(), circulationtest.FakeClock.AddDate(0, 0, -2)),
				}
			},
			wantKind: core.KindReservedForAnotherMember,
		},
		{
			name: "own reservation behind the available copies",
			arrange: func(s *checkoutbook.State) {
				s.Book.AvailableCopies = 1
				s.OpenReservations = []core.Transaction{
					reservationOf(*s, s.Member.ID, circulationtest.FakeClock.AddDate(0, 0, -1)),
					reservationOf(*s, uuid.NewString(), circulationtest.FakeClock.AddDate(0, 0, -3)),
				}
			},
			wantKind: core.KindReservedForAnotherMember,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			s := givenState()
			command := commandFor(s)
			tc.arrange(&s)

			// act
			result := checkoutbook.Decide(s, command)

			// assert
			assert.True(t, core.IsKind(result.HasError(), tc.wantKind), "got %v", result.HasError())
		})
	}
}

func Test_Decide_Error_ForMalformedTransactionID(t *testing.T) {
	// arrange
	s := givenState()

	// act
	result := checkoutbook.Decide(s, checkoutbook.BuildCommand("loan-1", s.Book.ID, s.Member.ID, "", circulationtest.FakeClock))

	// assert
	assert.True(t, core.IsKind(result.HasError(), core.KindInvalidInput))
}
