package circulationreport_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/circulationreport"
	"github.com/AntonStoeckl/library-circulation-go/testutil/circulationtest"
)

func Test_QueryHandler_Handle_ReflectsCurrentState(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	book := circulationtest.GivenBook(t, s, circulationtest.WithCopies(2, 2))
	other := circulationtest.GivenBook(t, s)
	lateMember := circulationtest.GivenMember(t, s, circulationtest.WithFine("3.00"))
	circulationtest.GivenLoan(t, s, book, lateMember, circulationtest.FakeClock.AddDate(0, 0, -20))
	circulationtest.GivenLoan(t, s, other, circulationtest.GivenMember(t, s), circulationtest.FakeClock.AddDate(0, 0, -1))
	circulationtest.GivenReservation(t, s, other, circulationtest.GivenMember(t, s), circulationtest.FakeClock)
	handler := circulationreport.NewQueryHandler(s)

	// act
	report, err := handler.Handle(context.Background(), circulationreport.BuildQuery(circulationtest.FakeClock))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalBooks)
	assert.Equal(t, 3, report.TotalCopies)
	assert.Equal(t, 2, report.BooksIssued)
	assert.Equal(t, 3, report.ActiveMembers)
	assert.Equal(t, "3", report.TotalFines.String())
	assert.Equal(t, 1, report.OverdueBooks)
	assert.Equal(t, 1, report.TotalReservations)
}
