package returnbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/testutil/circulationtest"
)

func givenState(dueDate time.Time) returnbook.State {
	bookID := uuid.NewString()

	return returnbook.State{
		Loan: &core.Transaction{
			ID:              uuid.NewString(),
			TransactionType: core.TransactionCheckout,
			BookID:          bookID,
			MemberID:        uuid.NewString(),
			CheckoutDate:    dueDate.AddDate(0, 0, -14),
			DueDate:         dueDate,
			FineAmount:      decimal.Zero,
		},
		Book: &core.Book{ID: bookID, TotalCopies: 1, AvailableCopies: 0, Status: core.BookStatusCheckedOut},
	}
}

func Test_Decide_Success_ComputesLateFine(t *testing.T) {
	testCases := []struct {
		name     string
		dueDate  time.Time
		wantFine string
	}{
		{name: "on time", dueDate: circulationtest.FakeClock, wantFine: "0"},
		{name: "early", dueDate: circulationtest.FakeClock.AddDate(0, 0, 3), wantFine: "0"},
		{name: "one hour late counts as a day", dueDate: circulationtest.FakeClock.Add(-time.Hour), wantFine: "0.5"},
		{name: "three days late", dueDate: circulationtest.FakeClock.AddDate(0, 0, -3), wantFine: "1.5"},
		{name: "capped", dueDate: circulationtest.FakeClock.AddDate(0, 0, -100), wantFine: "20"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			s := givenState(tc.dueDate)
			returnID := uuid.NewString()

			// act
			result := returnbook.Decide(
				s,
				returnbook.BuildCommand(returnID, s.Loan.ID, "front-desk", circulationtest.FakeClock),
				core.DefaultFinePolicy(),
			)

			// assert
			require.True(t, result.HasChangesToApply())
			event, ok := result.Event.(core.BookReturned)
			require.True(t, ok)
			assert.True(t, decimal.RequireFromString(tc.wantFine).Equal(event.Fine), "got %s", event.Fine)
			assert.Equal(t, s.Loan.ID, event.LoanID)
			assert.Equal(t, returnID, event.ReturnRecord.ID)
			assert.Equal(t, core.TransactionReturn, event.ReturnRecord.TransactionType)
			assert.Equal(t, s.Loan.ID, event.ReturnRecord.RelatedID)
			assert.True(t, event.Fine.Equal(event.ReturnRecord.FineAmount))
		})
	}
}

func Test_Decide_Success_DerivesBookStatus(t *testing.T) {
	// arrange
	s := givenState(circulationtest.FakeClock)
	s.HasOpenReservations = true

	// act
	result := returnbook.Decide(s, returnbook.BuildCommand(uuid.NewString(), s.Loan.ID, "", circulationtest.FakeClock), core.DefaultFinePolicy())

	// assert
	require.True(t, result.HasChangesToApply())
	event, ok := result.Event.(core.BookReturned)
	require.True(t, ok)
	assert.Equal(t, core.BookStatusAvailable, event.BookStatusAfter)
}

func Test_Decide_Success_UsesConfiguredFinePolicy(t *testing.T) {
	// arrange
	s := givenState(circulationtest.FakeClock.AddDate(0, 0, -2))
	fines := core.FinePolicy{RatePerDay: decimal.RequireFromString("1.25"), Cap: decimal.RequireFromString("2.00")}

	// act
	result := returnbook.Decide(s, returnbook.BuildCommand(uuid.NewString(), s.Loan.ID, "", circulationtest.FakeClock), fines)

	// assert
	require.True(t, result.HasChangesToApply())
	event, ok := result.Event.(core.BookReturned)
	require.True(t, ok)
	assert.Equal(t, "2", event.Fine.String())
}

func Test_Decide_Idempotent_WhenAlreadyReturned(t *testing.T) {
	// arrange
	s := givenState(circulationtest.FakeClock)
	s.Loan.ReturnDate = core.TimePtr(circulationtest.FakeClock.AddDate(0, 0, -1))
	s.Book = nil

	// act
	result := returnbook.Decide(s, returnbook.BuildCommand(uuid.NewString(), s.Loan.ID, "", circulationtest.FakeClock), core.DefaultFinePolicy())

	// assert
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_Error(t *testing.T) {
	testCases := []struct {
		name     string
		arrange  func(s *returnbook.State)
		command  func(s returnbook.State) returnbook.Command
		wantKind core.ErrorKind
	}{
		{
			name:    "no loan",
			arrange: func(s *returnbook.State) { s.Loan = nil },
			command: func(returnbook.State) returnbook.Command {
				return returnbook.BuildCommand(uuid.NewString(), uuid.NewString(), "", circulationtest.FakeClock)
			},
			wantKind: core.KindLoanNotFound,
		},
		{
			name:     "reservation instead of a loan",
			arrange:  func(s *returnbook.State) { s.Loan.TransactionType = core.TransactionReservation },
			wantKind: core.KindInvalidInput,
		},
		{
			name:     "book gone",
			arrange:  func(s *returnbook.State) { s.Book = nil },
			wantKind: core.KindBookNotFound,
		},
		{
			name:    "neither loan nor member given",
			arrange: func(*returnbook.State) {},
			command: func(s returnbook.State) returnbook.Command {
				return returnbook.BuildCommandForBookAndMember(uuid.NewString(), s.Book.ID, "", "", circulationtest.FakeClock)
			},
			wantKind: core.KindInvalidInput,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			s := givenState(circulationtest.FakeClock)
			command := returnbook.BuildCommand(uuid.NewString(), s.Loan.ID, "", circulationtest.FakeClock)
			if tc.command != nil {
				command = tc.command(s)
			}
			tc.arrange(&s)

			// act
			result := returnbook.Decide(s, command, core.DefaultFinePolicy())

			// assert
			assert.True(t, core.IsKind(result.HasError(), tc.wantKind), "got %v", result.HasError())
		})
	}
}
