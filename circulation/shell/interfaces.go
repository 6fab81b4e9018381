package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/store"
)

// SelectsRecords is the read side of a store engine, used by query handlers.
type SelectsRecords interface {
	Select(ctx context.Context, table string, filter store.Filter) (store.StorableRecords, error)
}

// AppliesChanges is the write side of a store engine.
type AppliesChanges interface {
	Apply(ctx context.Context, changes ...store.Change) error
}

// RecordStore is what command handlers need: read the current state, then apply a change set.
// Both postgresengine.Store and memengine.Store implement it.
type RecordStore interface {
	SelectsRecords
	AppliesChanges
}

// Query represents the contract for all query types.
// The QueryType method enables polymorphic handling and observability instrumentation.
type Query interface {
	QueryType() string
}

// CoreQueryHandler defines the contract for components that process queries with pure business logic.
// Implementations should focus purely on business logic without observability or infrastructure concerns.
// This interface is designed to be wrapped with observability decorators for complete functionality.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CoreCommandHandler defines the contract for components that process commands with pure business logic.
// Handlers orchestrate the complete command workflow: loading state, deciding, and applying changes.
// Handlers return HandlerResult containing business outcomes (idempotency) and execution metadata (retry info).
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}
