package addbook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/testutil/circulationtest"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	handler := addbook.NewCommandHandler(s)
	bookID := circulationtest.GivenUniqueID(t)
	command := addbook.BuildCommand(bookID, "Release It!", "978-1680502398", "Pragmatic Bookshelf", 2018, 376, "English", 2, circulationtest.FakeClock)

	// act
	result, err := handler.Handle(context.Background(), command)

	// assert
	assert.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, 1, result.RetryAttempts)

	book := circulationtest.MustLoadBook(t, s, bookID)
	assert.Equal(t, "Release It!", book.Title)
	assert.Equal(t, 2, book.AvailableCopies)
	assert.Equal(t, int64(1), book.Version)
}

func Test_CommandHandler_Handle_Idempotent_WhenRepeated(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	handler := addbook.NewCommandHandler(s)
	command := addbook.BuildCommand(circulationtest.GivenUniqueID(t), "Release It!", "", "", 0, 0, "", 2, circulationtest.FakeClock)
	_, err := handler.Handle(context.Background(), command)
	assert.NoError(t, err)

	// act
	result, err := handler.Handle(context.Background(), command)

	// assert
	assert.NoError(t, err)
	assert.True(t, result.Idempotent)
}

func Test_CommandHandler_Handle_Error_WritesNothing_ForInvalidInput(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	handler := addbook.NewCommandHandler(s)
	bookID := circulationtest.GivenUniqueID(t)

	// act
	_, err := handler.Handle(context.Background(), addbook.BuildCommand(bookID, "", "", "", 0, 0, "", 1, circulationtest.FakeClock))

	// assert
	assert.True(t, core.IsKind(err, core.KindInvalidInput))
	book, loadErr := shell.LoadBook(context.Background(), s, bookID)
	assert.NoError(t, loadErr)
	assert.Nil(t, book)
}
