// Package oteladapters provides OpenTelemetry implementations of the observability interfaces of package store.
//
// The record stores and the feature handlers only depend on store.Logger, store.ContextualLogger,
// store.MetricsCollector and store.TracingCollector. This package plugs those into OpenTelemetry:
//
//	tracing := oteladapters.NewTracingCollector(otel.Tracer("library-circulation"))
//	metrics := oteladapters.NewMetricsCollector(otel.Meter("library-circulation"))
//	logger := oteladapters.NewSlogBridgeLogger("library-circulation")
package oteladapters
