package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

func Test_DecisionResult_Factories(t *testing.T) {
	// arrange
	event := core.BuildMemberSuspended("m-1", 3, time.Now())
	rejection := core.NewError(core.KindIneligibleMember, "member is suspended")

	// act
	idempotent := core.IdempotentDecision()
	success := core.SuccessDecision(event)
	failure := core.ErrorDecision(rejection)

	// assert
	assert.True(t, idempotent.IsIdempotent())
	assert.False(t, idempotent.HasChangesToApply())
	assert.NoError(t, idempotent.HasError())

	assert.True(t, success.HasChangesToApply())
	assert.Equal(t, core.MemberSuspendedEventType, success.Event.IsEventType())
	assert.NoError(t, success.HasError())

	assert.False(t, failure.HasChangesToApply())
	assert.Nil(t, failure.Event)
	assert.Equal(t, core.KindIneligibleMember, core.KindOf(failure.HasError()))
}
