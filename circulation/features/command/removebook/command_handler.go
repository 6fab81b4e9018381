package removebook

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/store"
)

// CommandHandler orchestrates the workflow Load -> Decide -> Apply with retry.
type CommandHandler struct {
	recordStore  shell.RecordStore
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

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(recordStore shell.RecordStore, opts ...Option) CommandHandler {
	handler := CommandHandler{recordStore: recordStore}

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

	book, err := shell.LoadBook(ctx, h.recordStore, command.BookID)
	if err != nil {
		return false, err
	}

	return shell.ApplyDecision(ctx, h.recordStore, Decide(State{Book: book}, command))
}
