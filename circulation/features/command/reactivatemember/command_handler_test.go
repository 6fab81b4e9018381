package reactivatemember_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/reactivatemember"
	"github.com/AntonStoeckl/library-circulation-go/testutil/circulationtest"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	member := circulationtest.GivenMember(t, s, circulationtest.WithStatus(core.MemberSuspended))
	handler := reactivatemember.NewCommandHandler(s)

	// act
	result, err := handler.Handle(context.Background(), reactivatemember.BuildCommand(member.ID, circulationtest.FakeClock))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, core.MemberActive, circulationtest.MustLoadMember(t, s, member.ID).Status)
}

func Test_CommandHandler_Handle_Error_WhenExpired(t *testing.T) {
	// arrange
	s := circulationtest.NewMemoryStore(t)
	member := circulationtest.GivenMember(
		t,
		s,
		circulationtest.WithStatus(core.MemberSuspended),
		circulationtest.WithExpiry(circulationtest.FakeClock.AddDate(0, -1, 0)),
	)
	handler := reactivatemember.NewCommandHandler(s)

	// act
	_, err := handler.Handle(context.Background(), reactivatemember.BuildCommand(member.ID, circulationtest.FakeClock))

	// assert
	assert.True(t, core.IsKind(err, core.KindMembershipExpired))
	assert.Equal(t, core.MemberSuspended, circulationtest.MustLoadMember(t, s, member.ID).Status)
}
