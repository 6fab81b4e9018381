package observable_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell/observable"
	"github.com/AntonStoeckl/library-circulation-go/testutil/observability/testdoubles"
)

func Test_QueryWrapper_Handle_RecordsSuccess(t *testing.T) {
	// arrange
	metrics := testdoubles.NewMetricsCollectorSpy()
	tracing := testdoubles.NewTracingCollectorSpy()
	logger := testdoubles.NewContextualLoggerSpy(true)

	wrapper, err := observable.NewQueryWrapper[testQuery, []string](
		queryHandlerStub{result: []string{"a", "b"}},
		observable.WithQueryMetrics[testQuery, []string](metrics),
		observable.WithQueryTracing[testQuery, []string](tracing),
		observable.WithQueryContextualLogging[testQuery, []string](logger),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), testQuery{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, result)
	assert.True(t, metrics.HasDurationRecordForMetric(shell.QueryHandlerDurationMetric).
		WithLabel(shell.LogAttrQueryType, "TestQuery").
		WithLabel(shell.LogAttrStatus, shell.StatusSuccess).
		Assert())
	assert.True(t, tracing.HasFinishedSpan(shell.SpanNameQueryHandle, shell.StatusSuccess))
	assert.True(t, logger.HasLog("info", shell.LogMsgQueryCompleted))
}

func Test_QueryWrapper_Handle_RecordsCancellation(t *testing.T) {
	// arrange
	metrics := testdoubles.NewMetricsCollectorSpy()
	logger := testdoubles.NewContextualLoggerSpy(true)

	wrapper, err := observable.NewQueryWrapper[testQuery, []string](
		queryHandlerStub{err: context.Canceled},
		observable.WithQueryMetrics[testQuery, []string](metrics),
		observable.WithQueryContextualLogging[testQuery, []string](logger),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), testQuery{})

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, metrics.HasCounterRecordForMetric(shell.QueryHandlerCanceledMetric).Assert())
	assert.True(t, logger.HasLog("error", shell.LogMsgQueryFailed))
}

func Test_QueryWrapper_Handle_RecordsFailure(t *testing.T) {
	// arrange
	tracing := testdoubles.NewTracingCollectorSpy()
	failure := errors.New("replica unavailable")

	wrapper, err := observable.NewQueryWrapper[testQuery, []string](
		queryHandlerStub{err: failure},
		observable.WithQueryTracing[testQuery, []string](tracing),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), testQuery{})

	// assert
	assert.ErrorIs(t, err, failure)
	assert.True(t, tracing.HasFinishedSpan(shell.SpanNameQueryHandle, shell.StatusError))
}
