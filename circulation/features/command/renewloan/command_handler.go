package renewloan

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/store"
)

// CommandHandler orchestrates the workflow Load -> Decide -> Apply with retry.
type CommandHandler struct {
	recordStore  shell.RecordStore
	renewalLimit int
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithRenewalLimit sets how often a loan may be renewed.
func WithRenewalLimit(limit int) Option {
	return func(h *CommandHandler) {
		h.renewalLimit = limit
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(recordStore shell.RecordStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		recordStore:  recordStore,
		renewalLimit: core.DefaultCirculationPolicy().RenewalLimit,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command with retry on concurrency conflicts.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	return shell.ExecuteWithRetry(ctx, func(retryCtx context.Context) (bool, error) {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	ctx = store.WithReadYourWrites(ctx)

	s, err := h.loadState(ctx, command)
	if err != nil {
		return false, err
	}

	return shell.ApplyDecision(ctx, h.recordStore, Decide(s, command, h.renewalLimit))
}

func (h CommandHandler) loadState(ctx context.Context, command Command) (State, error) {
	var s State
	var err error

	if s.ExistingRenewal, err = shell.LoadTransaction(ctx, h.recordStore, command.RenewalID); err != nil {
		return State{}, err
	}

	if s.ExistingRenewal != nil {
		return s, nil
	}

	if s.Loan, err = shell.LoadTransaction(ctx, h.recordStore, command.LoanID); err != nil {
		return State{}, err
	}

	if s.Loan == nil {
		return s, nil
	}

	reservations, err := shell.SelectTransactions(
		ctx,
		h.recordStore,
		shell.OpenTransactionsFilter(core.TransactionReservation, s.Loan.BookID, "").Finalize(),
	)
	if err != nil {
		return State{}, err
	}

	for _, reservation := range reservations {
		if reservation.MemberID != s.Loan.MemberID {
			s.OthersHaveOpenReservations = true
			break
		}
	}

	return s, nil
}
