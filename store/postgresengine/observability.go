package postgresengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/store"
)

const (
	metricOperationDuration    = "recordstore_operation_duration_seconds"
	metricRecordsProcessed     = "recordstore_records_processed_total"
	metricConcurrencyConflicts = "recordstore_concurrency_conflicts_total"
	metricDatabaseErrors       = "recordstore_database_errors_total"
	spanNamePrefix             = "recordstore."
	spanAttrOperation          = "operation"
	spanAttrTable              = "table"
	spanAttrRecordCount        = "record_count"
	spanAttrDurationMS         = "duration_ms"
	spanAttrErrorType          = "error_type"
	labelStatus                = "status"
	labelConflictType          = "conflict_type"
	statusSuccess              = "success"
	statusError                = "error"
)

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (s *Store) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level.
func (s *Store) logOperation(ctx context.Context, action string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

func (s *Store) logWarn(ctx context.Context, message string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(message, args...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, message, args...)
	}
}

// logError logs error information at the error level.
func (s *Store) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// === Observer ===
// operationObserver bundles the span and the metrics of one store operation.

type operationObserver struct {
	s         *Store
	ctx       context.Context
	span      store.SpanContext
	operation string
	table     string
}

// startObservation opens a span (if tracing is configured) and returns the context carrying it.
func (s *Store) startObservation(ctx context.Context, operation string, table string) (*operationObserver, context.Context) {
	observer := &operationObserver{s: s, ctx: ctx, operation: operation, table: table}

	if s.tracingCollector != nil {
		attrs := map[string]string{spanAttrOperation: operation}
		if table != "" {
			attrs[spanAttrTable] = table
		}

		observer.ctx, observer.span = s.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, attrs)
	}

	return observer, observer.ctx
}

func (o *operationObserver) labels(status string) map[string]string {
	labels := map[string]string{
		spanAttrOperation: o.operation,
		labelStatus:       status,
	}

	if o.table != "" {
		labels[spanAttrTable] = o.table
	}

	return labels
}

// finishSuccess records duration and record count, and closes the span.
func (o *operationObserver) finishSuccess(recordCount int64, duration time.Duration) {
	o.recordDuration(duration, statusSuccess)
	o.recordValue(metricRecordsProcessed, float64(recordCount), statusSuccess)

	if o.span != nil {
		o.span.SetStatus(statusSuccess)
		o.span.AddAttribute(spanAttrRecordCount, fmt.Sprintf("%d", recordCount))
		o.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", toMilliseconds(duration)))
		o.s.tracingCollector.FinishSpan(o.span, statusSuccess, map[string]string{
			spanAttrRecordCount: fmt.Sprintf("%d", recordCount),
		})
	}
}

// finishError records the error counter and closes the span with the error type.
func (o *operationObserver) finishError(errorType string, duration time.Duration) {
	if duration > 0 {
		o.recordDuration(duration, statusError)
	}

	if o.s.metricsCollector != nil {
		labels := o.labels(statusError)
		labels[spanAttrErrorType] = errorType

		if contextual, ok := o.s.metricsCollector.(store.ContextualMetricsCollector); ok {
			contextual.IncrementCounterContext(o.ctx, metricDatabaseErrors, labels)
		} else {
			o.s.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
		}
	}

	if o.span != nil {
		o.span.SetStatus(statusError)
		o.span.AddAttribute(spanAttrErrorType, errorType)

		if duration > 0 {
			o.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", toMilliseconds(duration)))
		}

		o.s.tracingCollector.FinishSpan(o.span, statusError, map[string]string{spanAttrErrorType: errorType})
	}
}

func (o *operationObserver) recordConcurrencyConflict() {
	if o.s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: o.operation,
		labelConflictType: "concurrency",
	}

	if contextual, ok := o.s.metricsCollector.(store.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(o.ctx, metricConcurrencyConflicts, labels)
	} else {
		o.s.metricsCollector.IncrementCounter(metricConcurrencyConflicts, labels)
	}
}

func (o *operationObserver) recordDuration(duration time.Duration, status string) {
	if o.s.metricsCollector == nil {
		return
	}

	if contextual, ok := o.s.metricsCollector.(store.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(o.ctx, metricOperationDuration, duration, o.labels(status))
	} else {
		o.s.metricsCollector.RecordDuration(metricOperationDuration, duration, o.labels(status))
	}
}

func (o *operationObserver) recordValue(metric string, value float64, status string) {
	if o.s.metricsCollector == nil {
		return
	}

	if contextual, ok := o.s.metricsCollector.(store.ContextualMetricsCollector); ok {
		contextual.RecordValueContext(o.ctx, metric, value, o.labels(status))
	} else {
		o.s.metricsCollector.RecordValue(metric, value, o.labels(status))
	}
}
