package registermember

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/store"
)

const defaultMaxNumberDraws = 20

// MembershipNumbers draws candidate membership numbers.
type MembershipNumbers interface {
	Next(joinDate time.Time) core.MembershipNumberString
}

// CommandHandler orchestrates the workflow Load -> Draw number -> Decide -> Apply with retry.
type CommandHandler struct {
	recordStore    shell.RecordStore
	numbers        MembershipNumbers
	policy         core.CirculationPolicy
	maxNumberDraws int
	retryOptions   []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithPolicy sets the membership defaults.
func WithPolicy(policy core.CirculationPolicy) Option {
	return func(h *CommandHandler) {
		h.policy = policy
	}
}

// WithMembershipNumbers replaces the random number generator.
func WithMembershipNumbers(numbers MembershipNumbers) Option {
	return func(h *CommandHandler) {
		h.numbers = numbers
	}
}

// WithMaxNumberDraws bounds how many numbers are drawn before giving up.
func WithMaxNumberDraws(draws int) Option {
	return func(h *CommandHandler) {
		if draws > 0 {
			h.maxNumberDraws = draws
		}
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(recordStore shell.RecordStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		recordStore:    recordStore,
		numbers:        core.NewRandomMembershipNumberGenerator(),
		policy:         core.DefaultCirculationPolicy(),
		maxNumberDraws: defaultMaxNumberDraws,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command with retry on concurrency conflicts and duplicate membership numbers.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	return shell.ExecuteWithRetry(ctx, func(retryCtx context.Context) (bool, error) {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	ctx = store.WithReadYourWrites(ctx)

	var s State

	existing, err := shell.LoadMember(ctx, h.recordStore, command.MemberID)
	if err != nil {
		return false, err
	}
	s.ExistingMember = existing

	if existing == nil {
		if invalid := validateInput(command); invalid != nil {
			return shell.ApplyDecision(ctx, h.recordStore, core.ErrorDecision(invalid))
		}

		number, drawErr := h.drawFreeNumber(ctx, command.OccurredAt)
		if drawErr != nil {
			return false, drawErr
		}
		s.MembershipNumber = number
	}

	return shell.ApplyDecision(ctx, h.recordStore, Decide(s, command, h.policy))
}

// drawFreeNumber returns a number no member holds yet, or "" after maxNumberDraws collisions.
func (h CommandHandler) drawFreeNumber(ctx context.Context, joinDate time.Time) (core.MembershipNumberString, error) {
	for range h.maxNumberDraws {
		candidate := h.numbers.Next(joinDate)

		holders, err := shell.SelectMembers(
			ctx,
			h.recordStore,
			store.BuildFilter().Where(store.P(shell.FieldMembershipNumber, candidate)).Limit(1).Finalize(),
		)
		if err != nil {
			return "", err
		}

		if len(holders) == 0 {
			return candidate, nil
		}
	}

	return "", nil
}
