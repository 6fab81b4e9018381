package scanlookup_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/scanlookup"
	"github.com/AntonStoeckl/library-circulation-go/testutil/circulationtest"
)

func Test_QueryHandler_Handle_ResolvesBookLabel(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	book := circulationtest.GivenBook(t, s)
	label, err := scanlookup.EncodeBookPayload(book)
	require.NoError(t, err)
	handler := scanlookup.NewQueryHandler(s)

	// act
	resolution, err := handler.Handle(context.Background(), scanlookup.BuildQuery(label))

	// assert
	require.NoError(t, err)
	assert.False(t, resolution.IsOpaqueText())
	require.NotNil(t, resolution.Book)
	assert.Equal(t, book.ID, resolution.Book.ID)
	assert.Nil(t, resolution.Member)
}

func Test_QueryHandler_Handle_ResolvesMemberLabel(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	member := circulationtest.GivenMember(t, s)
	label, err := scanlookup.EncodeMemberPayload(member)
	require.NoError(t, err)
	handler := scanlookup.NewQueryHandler(s)

	// act
	resolution, err := handler.Handle(context.Background(), scanlookup.BuildQuery(label))

	// assert
	require.NoError(t, err)
	require.NotNil(t, resolution.Member)
	assert.Equal(t, member.MembershipNumber, resolution.Member.MembershipNumber)
}

func Test_QueryHandler_Handle_DegradesToOpaqueText(t *testing.T) {
	// arrange
	handler := scanlookup.NewQueryHandler(circulationtest.NewMemoryStore(t))

	// act
	resolution, err := handler.Handle(context.Background(), scanlookup.BuildQuery("ISBN 978-0132350884"))

	// assert
	require.NoError(t, err)
	assert.True(t, resolution.IsOpaqueText())
	assert.Equal(t, "ISBN 978-0132350884", resolution.Text)
	assert.True(t, core.IsKind(resolution.DegradeReason, core.KindMalformedPayload))
}

func Test_QueryHandler_Handle_Error_ForUnknownBook(t *testing.T) {
	// arrange
	handler := scanlookup.NewQueryHandler(circulationtest.NewMemoryStore(t))

	// act
	_, err := handler.Handle(context.Background(), scanlookup.BuildQuery(`{"type":"book","id":"`+uuid.NewString()+`"}`))

	// assert
	assert.True(t, core.IsKind(err, core.KindBookNotFound))
}
