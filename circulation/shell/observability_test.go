package shell_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/store"
	"github.com/AntonStoeckl/library-circulation-go/testutil/observability/testdoubles"
)

func Test_ClassifyError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: shell.StatusSuccess},
		{name: "canceled", err: fmt.Errorf("wrapped: %w", context.Canceled), want: shell.StatusCanceled},
		{name: "deadline", err: context.DeadlineExceeded, want: shell.StatusTimeout},
		{name: "conflict", err: shell.StoreError("apply", store.ErrConcurrencyConflict), want: shell.StatusConcurrencyConflict},
		{name: "duplicate", err: store.ErrDuplicateRecord, want: shell.StatusConcurrencyConflict},
		{name: "rejection", err: core.NewError(core.KindNoCopiesAvailable, "none left"), want: shell.StatusRejected},
		{name: "store unavailable", err: shell.StoreError("select", errors.New("down")), want: shell.StatusError},
		{name: "plain error", err: errors.New("boom"), want: shell.StatusError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, shell.ClassifyError(tc.err))
		})
	}
}

func Test_RecordCommandMetrics_RecordsStatusCounter(t *testing.T) {
	// arrange
	metrics := testdoubles.NewMetricsCollectorSpy()

	// act
	shell.RecordCommandMetrics(context.Background(), metrics, "CheckoutBook", shell.StatusRejected, 3*time.Millisecond)

	// assert
	assert.True(t, metrics.HasDurationRecordForMetric(shell.CommandHandlerDurationMetric).
		WithLabel(shell.LogAttrCommandType, "CheckoutBook").
		WithLabel(shell.LogAttrStatus, shell.StatusRejected).
		Assert())
	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).Assert())
	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerRejectedMetric).Assert())
	assert.False(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerIdempotentMetric).Assert())
	assert.Positive(t, metrics.GetContextualCallCount())
}

func Test_RecordCommandMetrics_RecordsNoStatusCounter_OnSuccess(t *testing.T) {
	// arrange
	metrics := testdoubles.NewMetricsCollectorSpy()

	// act
	shell.RecordCommandMetrics(context.Background(), metrics, "AddBook", shell.StatusSuccess, time.Millisecond)

	// assert
	assert.Equal(t, 1, metrics.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).Count())
	assert.Equal(t, 0, metrics.HasCounterRecordForMetric(shell.CommandHandlerRejectedMetric).Count())
}

func Test_RecordQueryMetrics_RecordsCanceledCounter(t *testing.T) {
	// arrange
	metrics := testdoubles.NewMetricsCollectorSpy()

	// act
	shell.RecordQueryMetrics(context.Background(), metrics, "OverdueLoans", shell.StatusCanceled, time.Millisecond)

	// assert
	assert.True(t, metrics.HasDurationRecordForMetric(shell.QueryHandlerDurationMetric).
		WithLabel(shell.LogAttrQueryType, "OverdueLoans").
		Assert())
	assert.True(t, metrics.HasCounterRecordForMetric(shell.QueryHandlerCanceledMetric).Assert())
}

func Test_FinishSpan_AddsErrorKind(t *testing.T) {
	// arrange
	tracing := testdoubles.NewTracingCollectorSpy()
	_, span := shell.StartCommandSpan(context.Background(), tracing, "ReturnBook")

	// act
	shell.FinishSpan(tracing, span, shell.StatusRejected, time.Millisecond, core.NewError(core.KindLoanNotFound, "no loan"))

	// assert
	assert.True(t, tracing.HasFinishedSpan(shell.SpanNameCommandHandle, shell.StatusRejected))
	errorKind, ok := tracing.GetFinishedSpanAttribute(shell.SpanNameCommandHandle, shell.LogAttrErrorKind)
	assert.True(t, ok)
	assert.Equal(t, core.KindLoanNotFound.String(), errorKind)
}

func Test_LogCommandRejected_LogsWarning(t *testing.T) {
	// arrange
	logger := testdoubles.NewContextualLoggerSpy(true)

	// act
	shell.LogCommandRejected(context.Background(), nil, logger, "ReserveBook", core.NewError(core.KindCopiesAvailable, "copies on the shelf"))

	// assert
	assert.True(t, logger.HasLog("warn", shell.LogMsgCommandRejected))
	assert.False(t, logger.HasLog("error", shell.LogMsgCommandFailed))
}
