package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// ExecutableFunc runs one attempt of a command: load the state, decide, apply.
// It reports whether the command turned out to be idempotent.
type ExecutableFunc func(ctx context.Context) (idempotent bool, err error)

// ExecuteWithRetry runs fn with exponential backoff on concurrency conflicts and
// builds the HandlerResult with business outcome and retry metadata.
func ExecuteWithRetry(ctx context.Context, fn ExecutableFunc, retryOptions ...RetryOption) (HandlerResult, error) {
	var isIdempotent bool

	retryMetrics, err := RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := fn(retryCtx)
		isIdempotent = idempotent

		return execErr
	}, retryOptions...)

	if isIdempotent && err == nil {
		return NewIdempotentResult(retryMetrics), nil
	}

	if err != nil {
		return NewErrorResult(retryMetrics), err
	}

	return NewSuccessResult(retryMetrics), nil
}

// ApplyDecision makes a decision durable.
// Idempotent decisions and rejections write nothing, accepted ones apply their change set atomically.
func ApplyDecision(ctx context.Context, s AppliesChanges, result core.DecisionResult) (bool, error) {
	if result.IsIdempotent() {
		return true, nil
	}

	if err := result.HasError(); err != nil {
		return false, err
	}

	changes, err := ChangesFrom(result.Event)
	if err != nil {
		return false, err
	}

	if applyErr := s.Apply(ctx, changes...); applyErr != nil {
		return false, StoreError("applying "+result.Event.IsEventType()+" failed", applyErr)
	}

	return false, nil
}
