package main

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell/config"
)

const (
	exitFailure  = 1
	exitRejected = 2
)

// environment holds what a process gets from the outside world.
type environment struct {
	out   io.Writer
	err   io.Writer
	now   func() time.Time
	newID func() string

	// records replaces the adapter selection when set.
	records shell.RecordStore
}

func defaultEnvironment() environment {
	return environment{
		out:   os.Stdout,
		err:   os.Stderr,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

type rootOptions struct {
	adapter      string
	policyPath   string
	otlp         bool
	otlpEndpoint string
	verbose      bool
}

// app is the per-invocation wiring shared by all subcommands.
type app struct {
	env       environment
	opts      rootOptions
	policy    core.CirculationPolicy
	records   shell.RecordStore
	schema    schemaEnsurer
	telemetry telemetry
	closers   []func(context.Context) error
}

func newRootCommand(env environment) *cobra.Command {
	a := &app{env: env}

	root := &cobra.Command{
		Use:           "librarian",
		Short:         "Run circulation operations against the library's record store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close(cmd.Context())
		},
	}

	root.SetOut(env.out)
	root.SetErr(env.err)

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.adapter, "adapter", adapterPGX, "record store adapter: pgx, sql, sqlx or memory")
	flags.StringVar(&a.opts.policyPath, "policy", "", "YAML file overriding the circulation policy")
	flags.BoolVar(&a.opts.otlp, "otlp", false, "export traces, metrics and logs via OTLP gRPC")
	flags.StringVar(&a.opts.otlpEndpoint, "otlp-endpoint", config.DefaultOTLPEndpoint, "OTLP collector endpoint")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newSchemaCommand(a),
		newBookCommand(a),
		newMemberCommand(a),
		newLoanCommand(a),
		newFineCommand(a),
		newReportCommand(a),
		newScanCommand(a),
		newLabelCommand(a),
	)

	return root
}

func (a *app) open(ctx context.Context) error {
	policy, err := config.LoadPolicy(a.opts.policyPath)
	if err != nil {
		return err
	}
	a.policy = policy

	if err := a.openTelemetry(ctx); err != nil {
		return err
	}

	if a.env.records != nil {
		a.records = a.env.records
		return nil
	}

	return a.openStore(ctx)
}

func (a *app) close(ctx context.Context) error {
	var errs []error

	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](context.WithoutCancel(ctx)))
	}
	a.closers = nil

	return errors.Join(errs...)
}

func (a *app) onClose(closer func(context.Context) error) {
	a.closers = append(a.closers, closer)
}

// exitCode separates refused operations from failures of the process or the store.
func exitCode(err error) int {
	if core.KindOf(err).IsRejection() {
		return exitRejected
	}

	return exitFailure
}
