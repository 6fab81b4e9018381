package shell

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/store"
)

var (
	// ErrIdempotentOperation is a sentinel error to indicate an idempotent operation that should be recorded in metrics.
	ErrIdempotentOperation = errors.New("idempotent operation - no state change needed")

	// ErrUnknownDomainEvent is returned when no change set is defined for an event.
	ErrUnknownDomainEvent = errors.New("no change set defined for domain event")
)

// StoreError classifies a store failure.
//
// Concurrency conflicts and unique violations keep their sentinel in the chain so the retry loop
// recognizes them. Context cancellation and deadlines are passed through untouched.
func StoreError(reason string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, store.ErrConcurrencyConflict), errors.Is(err, store.ErrDuplicateRecord):
		return core.WrapError(core.KindConcurrencyConflict, reason, err)
	default:
		return core.WrapError(core.KindStoreUnavailable, reason, err)
	}
}
