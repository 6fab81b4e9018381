package main

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell/observable"
	"github.com/AntonStoeckl/library-circulation-go/store/oteladapters"
)

const instrumentationName = "library-circulation-librarian"

// telemetry holds the collectors handed to the store engine and the handler wrappers.
// Without --otlp only the plain logger is set.
type telemetry struct {
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	metrics          shell.MetricsCollector
	tracing          shell.TracingCollector
}

func (a *app) openTelemetry(ctx context.Context) error {
	if !a.opts.otlp {
		level := slog.LevelWarn
		if a.opts.verbose {
			level = slog.LevelDebug
		}

		a.telemetry = telemetry{
			logger: slog.New(slog.NewTextHandler(a.env.err, &slog.HandlerOptions{Level: level})),
		}

		return nil
	}

	obsConfig := config.DefaultObservabilityConfig()
	obsConfig.TraceEndpoint = a.opts.otlpEndpoint
	obsConfig.MetricEndpoint = a.opts.otlpEndpoint

	providers, err := config.NewObservabilityProviders(ctx, obsConfig)
	if err != nil {
		return err
	}
	a.onClose(providers.Shutdown)

	a.telemetry = telemetry{
		contextualLogger: oteladapters.NewSlogBridgeLogger(instrumentationName),
		metrics:          oteladapters.NewMetricsCollector(otel.Meter(instrumentationName)),
		tracing:          oteladapters.NewTracingCollector(otel.Tracer(instrumentationName)),
	}

	return nil
}

func instrumentCommand[C shell.Command](
	a *app,
	handler shell.CoreCommandHandler[C],
) (*observable.CommandWrapper[C], error) {

	opts := make([]observable.CommandOption[C], 0, 4)

	if a.telemetry.logger != nil {
		opts = append(opts, observable.WithCommandLogging[C](a.telemetry.logger))
	}

	if a.telemetry.contextualLogger != nil {
		opts = append(opts, observable.WithCommandContextualLogging[C](a.telemetry.contextualLogger))
	}

	if a.telemetry.metrics != nil {
		opts = append(opts, observable.WithCommandMetrics[C](a.telemetry.metrics))
	}

	if a.telemetry.tracing != nil {
		opts = append(opts, observable.WithCommandTracing[C](a.telemetry.tracing))
	}

	return observable.NewCommandWrapper(handler, opts...)
}

func instrumentQuery[Q shell.Query, R any](
	a *app,
	handler shell.CoreQueryHandler[Q, R],
) (*observable.QueryWrapper[Q, R], error) {

	opts := make([]observable.QueryOption[Q, R], 0, 4)

	if a.telemetry.logger != nil {
		opts = append(opts, observable.WithQueryLogging[Q, R](a.telemetry.logger))
	}

	if a.telemetry.contextualLogger != nil {
		opts = append(opts, observable.WithQueryContextualLogging[Q, R](a.telemetry.contextualLogger))
	}

	if a.telemetry.metrics != nil {
		opts = append(opts, observable.WithQueryMetrics[Q, R](a.telemetry.metrics))
	}

	if a.telemetry.tracing != nil {
		opts = append(opts, observable.WithQueryTracing[Q, R](a.telemetry.tracing))
	}

	return observable.NewQueryWrapper(handler, opts...)
}

// runCommand instruments the handler and executes the command.
func runCommand[C shell.Command](
	ctx context.Context,
	a *app,
	handler shell.CoreCommandHandler[C],
	command C,
) (shell.HandlerResult, error) {

	wrapper, err := instrumentCommand(a, handler)
	if err != nil {
		return shell.HandlerResult{}, err
	}

	return wrapper.Handle(ctx, command)
}

// runQuery instruments the handler and executes the query.
func runQuery[Q shell.Query, R any](
	ctx context.Context,
	a *app,
	handler shell.CoreQueryHandler[Q, R],
	query Q,
) (R, error) {

	wrapper, err := instrumentQuery(a, handler)
	if err != nil {
		var zero R
		return zero, err
	}

	return wrapper.Handle(ctx, query)
}
