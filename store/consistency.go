package store

import "context"

// ReadConsistency tells an engine where reads may be served from.
type ReadConsistency int

const (
	// ReadYourWrites routes reads to the primary database. Command handlers use it for their
	// read-decide-write cycle, so a retry after a conflict sees the change that caused it.
	ReadYourWrites ReadConsistency = iota

	// ReadFromReplica allows reads from a replica. Reports and searches tolerate slightly stale data.
	ReadFromReplica
)

type consistencyKey struct{}

// WithReadYourWrites marks ctx so that reads go to the primary database.
//
//	ctx = store.WithReadYourWrites(ctx)
//	members, err := engine.Select(ctx, "members", filter)
func WithReadYourWrites(ctx context.Context) context.Context {
	return context.WithValue(ctx, consistencyKey{}, ReadYourWrites)
}

// WithReadFromReplica marks ctx so that reads may be served by a replica, when one is configured.
func WithReadFromReplica(ctx context.Context) context.Context {
	return context.WithValue(ctx, consistencyKey{}, ReadFromReplica)
}

// ReadConsistencyFrom returns the consistency requested in ctx, ReadYourWrites if none was set.
func ReadConsistencyFrom(ctx context.Context) ReadConsistency {
	if level, ok := ctx.Value(consistencyKey{}).(ReadConsistency); ok {
		return level
	}

	return ReadYourWrites
}

func (c ReadConsistency) String() string {
	switch c {
	case ReadYourWrites:
		return "read_your_writes"
	case ReadFromReplica:
		return "read_from_replica"
	default:
		return "unknown"
	}
}
