// Package testdoubles provides test doubles (spies) for the observability interfaces of package store.
//
//   - LogHandlerSpy: a slog.Handler capturing log records, plug it into slog.New for store.Logger
//   - ContextualLoggerSpy: captures context-aware logging calls
//   - MetricsCollectorSpy: captures durations, counters and values
//   - TracingCollectorSpy: captures started and finished spans
//
// They enable testing the instrumentation of the record stores and the feature handlers
// without a telemetry backend.
package testdoubles
