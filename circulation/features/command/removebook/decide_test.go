package removebook_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/removebook"
	"github.com/AntonStoeckl/library-circulation-go/testutil/circulationtest"
)

func Test_Decide_Success_WhenAllCopiesAreBack(t *testing.T) {
	// arrange
	book := core.Book{ID: uuid.NewString(), TotalCopies: 2, AvailableCopies: 2, Version: 7}

	// act
	result := removebook.Decide(removebook.State{Book: &book}, removebook.BuildCommand(book.ID, circulationtest.FakeClock))

	// assert
	require.True(t, result.HasChangesToApply())
	event, ok := result.Event.(core.BookRemovedFromCatalog)
	require.True(t, ok)
	assert.Equal(t, int64(7), event.ExpectedVersion)
}

func Test_Decide_Error_WhenCopiesAreOut(t *testing.T) {
	// arrange
	book := core.Book{ID: uuid.NewString(), TotalCopies: 2, AvailableCopies: 1}

	// act
	result := removebook.Decide(removebook.State{Book: &book}, removebook.BuildCommand(book.ID, circulationtest.FakeClock))

	// assert
	assert.True(t, core.IsKind(result.HasError(), core.KindBookHasOpenLoans))
}

func Test_Decide_Idempotent_WhenBookIsGone(t *testing.T) {
	// act
	result := removebook.Decide(removebook.State{}, removebook.BuildCommand(uuid.NewString(), circulationtest.FakeClock))

	// assert
	assert.True(t, result.IsIdempotent())
}
