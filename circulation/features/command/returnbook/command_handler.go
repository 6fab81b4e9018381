package returnbook

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/store"
)

// CommandHandler orchestrates the workflow Load -> Decide -> Apply with retry.
type CommandHandler struct {
	recordStore  shell.RecordStore
	fines        core.FinePolicy
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

// WithFinePolicy sets rate and cap of late fines.
func WithFinePolicy(fines core.FinePolicy) Option {
	return func(h *CommandHandler) {
		h.fines = fines
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(recordStore shell.RecordStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		recordStore: recordStore,
		fines:       core.DefaultFinePolicy(),
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

	return shell.ApplyDecision(ctx, h.recordStore, Decide(s, command, h.fines))
}

func (h CommandHandler) loadState(ctx context.Context, command Command) (State, error) {
	var s State

	loan, err := h.loadLoan(ctx, command)
	if err != nil || loan == nil || !loan.IsOpen() {
		return State{Loan: loan}, err
	}
	s.Loan = loan

	if s.Book, err = shell.LoadBook(ctx, h.recordStore, loan.BookID); err != nil {
		return State{}, err
	}

	reservations, err := shell.SelectTransactions(
		ctx,
		h.recordStore,
		shell.OpenTransactionsFilter(core.TransactionReservation, loan.BookID, "").Limit(1).Finalize(),
	)
	if err != nil {
		return State{}, err
	}
	s.HasOpenReservations = len(reservations) > 0

	return s, nil
}

func (h CommandHandler) loadLoan(ctx context.Context, command Command) (*core.Transaction, error) {
	if command.LoanID != "" {
		return shell.LoadTransaction(ctx, h.recordStore, command.LoanID)
	}

	if command.BookID == "" || command.MemberID == "" {
		return nil, nil //nolint:nilnil // Decide rejects the command
	}

	open, err := shell.SelectTransactions(
		ctx,
		h.recordStore,
		shell.OpenTransactionsFilter(core.TransactionCheckout, command.BookID, command.MemberID).Limit(1).Finalize(),
	)
	if err != nil || len(open) > 0 {
		return first(open), err
	}

	latestReturned, err := shell.SelectTransactions(
		ctx,
		h.recordStore,
		store.BuildFilter().
			Where(
				store.P("transaction_type", string(core.TransactionCheckout)),
				store.P("book_id", command.BookID),
				store.P("member_id", command.MemberID),
				store.Present("return_date"),
			).
			OrderByCreation(store.Descending).
			Limit(1).
			Finalize(),
	)

	return first(latestReturned), err
}

func first(transactions []core.Transaction) *core.Transaction {
	if len(transactions) == 0 {
		return nil
	}

	return &transactions[0]
}
