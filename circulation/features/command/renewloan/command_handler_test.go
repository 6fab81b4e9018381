package renewloan_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/renewloan"
	"github.com/AntonStoeckl/library-circulation-go/testutil/circulationtest"
)

func Test_CommandHandler_Handle_Success_AppendsRenewalRecord(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	book := circulationtest.GivenBook(t, s)
	member := circulationtest.GivenMember(t, s)
	loan := circulationtest.GivenLoan(t, s, book, member, circulationtest.FakeClock.AddDate(0, 0, -7))
	handler := renewloan.NewCommandHandler(s)
	renewalID := circulationtest.GivenUniqueID(t)

	// act
	result, err := handler.Handle(context.Background(), renewloan.BuildCommand(renewalID, loan.ID, "", circulationtest.FakeClock))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)

	renewed := circulationtest.MustLoadTransaction(t, s, loan.ID)
	assert.True(t, renewed.DueDate.Equal(loan.DueDate.AddDate(0, 0, 14)))
	assert.Equal(t, 1, renewed.RenewalCount)
	assert.Equal(t, core.TransactionRenewal, circulationtest.MustLoadTransaction(t, s, renewalID).TransactionType)
}

func Test_CommandHandler_Handle_Error_AtConfiguredLimit(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	loan := circulationtest.GivenLoan(t, s, circulationtest.GivenBook(t, s), circulationtest.GivenMember(t, s), circulationtest.FakeClock)
	handler := renewloan.NewCommandHandler(s, renewloan.WithRenewalLimit(1))
	_, err := handler.Handle(context.Background(), renewloan.BuildCommand(circulationtest.GivenUniqueID(t), loan.ID, "", circulationtest.FakeClock))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(context.Background(), renewloan.BuildCommand(circulationtest.GivenUniqueID(t), loan.ID, "", circulationtest.FakeClock))

	// assert
	assert.True(t, core.IsKind(err, core.KindRenewalLimitReached))
	assert.Equal(t, 1, circulationtest.MustLoadTransaction(t, s, loan.ID).RenewalCount)
}

func Test_CommandHandler_Handle_Error_WhenOthersReserved(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	book := circulationtest.GivenBook(t, s)
	loan := circulationtest.GivenLoan(t, s, book, circulationtest.GivenMember(t, s), circulationtest.FakeClock.AddDate(0, 0, -3))
	circulationtest.GivenReservation(t, s, book, circulationtest.GivenMember(t, s), circulationtest.FakeClock.AddDate(0, 0, -1))
	handler := renewloan.NewCommandHandler(s)

	// act
	_, err := handler.Handle(context.Background(), renewloan.BuildCommand(circulationtest.GivenUniqueID(t), loan.ID, "", circulationtest.FakeClock))

	// assert
	assert.True(t, core.IsKind(err, core.KindReservedForAnotherMember))
}

func Test_CommandHandler_Handle_Idempotent_WhenRepeated(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	loan := circulationtest.GivenLoan(t, s, circulationtest.GivenBook(t, s), circulationtest.GivenMember(t, s), circulationtest.FakeClock)
	handler := renewloan.NewCommandHandler(s)
	command := renewloan.BuildCommand(circulationtest.GivenUniqueID(t), loan.ID, "", circulationtest.FakeClock)
	_, err := handler.Handle(context.Background(), command)
	require.NoError(t, err)

	// act
	result, err := handler.Handle(context.Background(), command)

	// assert
	assert.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Equal(t, 1, circulationtest.MustLoadTransaction(t, s, loan.ID).RenewalCount)
}
