package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/store/memengine"
	"github.com/AntonStoeckl/library-circulation-go/store/postgresengine"
)

const (
	adapterPGX    = "pgx"
	adapterSQL    = "sql"
	adapterSQLX   = "sqlx"
	adapterMemory = "memory"
)

// ErrUnknownAdapter is returned for an --adapter value that names no store engine.
var ErrUnknownAdapter = errors.New("unknown store adapter")

// schemaEnsurer is implemented by engines that need their tables created up front.
type schemaEnsurer interface {
	EnsureSchema(ctx context.Context, tables []string, uniqueFields ...postgresengine.UniqueField) error
}

func (a *app) openStore(ctx context.Context) error {
	adapter := strings.ToLower(a.opts.adapter)

	if adapter == adapterMemory {
		records, err := memengine.NewStore(a.memoryOptions()...)
		if err != nil {
			return err
		}

		a.records = records

		return nil
	}

	var (
		pgStore *postgresengine.Store
		err     error
	)

	switch adapter {
	case adapterPGX:
		pgStore, err = a.openPGXStore(ctx)
	case adapterSQL, "sql.db":
		pgStore, err = a.openSQLDBStore(ctx)
	case adapterSQLX:
		pgStore, err = a.openSQLXStore(ctx)
	default:
		return fmt.Errorf("%w: %s (supported: pgx, sql, sqlx, memory)", ErrUnknownAdapter, a.opts.adapter)
	}

	if err != nil {
		return err
	}

	a.records = pgStore
	a.schema = pgStore

	return nil
}

// openPGXStore connects the primary pool and, when a replica DSN is configured, a replica pool.
func (a *app) openPGXStore(ctx context.Context) (*postgresengine.Store, error) {
	primary, err := connectPGXPool(ctx, config.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to the primary database failed: %w", err)
	}
	a.onClose(closePool(primary))

	replicaDSN := config.PostgresReplicaDSN()
	if replicaDSN == "" {
		return postgresengine.NewStoreFromPGXPool(primary, a.postgresOptions()...)
	}

	replica, err := connectPGXPool(ctx, replicaDSN)
	if err != nil {
		return nil, fmt.Errorf("connecting to the replica database failed: %w", err)
	}
	a.onClose(closePool(replica))

	return postgresengine.NewStoreFromPGXPoolAndReplica(primary, replica, a.postgresOptions()...)
}

func (a *app) openSQLDBStore(ctx context.Context) (*postgresengine.Store, error) {
	db, err := config.PostgresSQLDB(ctx, config.PostgresDSN())
	if err != nil {
		return nil, err
	}
	a.onClose(func(context.Context) error { return db.Close() })

	return postgresengine.NewStoreFromSQLDB(db, a.postgresOptions()...)
}

func (a *app) openSQLXStore(ctx context.Context) (*postgresengine.Store, error) {
	db, err := config.PostgresSQLX(ctx, config.PostgresDSN())
	if err != nil {
		return nil, err
	}
	a.onClose(func(context.Context) error { return db.Close() })

	return postgresengine.NewStoreFromSQLX(db, a.postgresOptions()...)
}

func connectPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := config.PostgresPGXPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Join(config.ErrDatabaseUnreachable, err)
	}

	return pool, nil
}

func closePool(pool *pgxpool.Pool) func(context.Context) error {
	return func(context.Context) error {
		pool.Close()
		return nil
	}
}

func (a *app) postgresOptions() []postgresengine.Option {
	var options []postgresengine.Option

	if a.telemetry.logger != nil {
		options = append(options, postgresengine.WithLogger(a.telemetry.logger))
	}

	if a.telemetry.contextualLogger != nil {
		options = append(options, postgresengine.WithContextualLogger(a.telemetry.contextualLogger))
	}

	if a.telemetry.metrics != nil {
		options = append(options, postgresengine.WithMetrics(a.telemetry.metrics))
	}

	if a.telemetry.tracing != nil {
		options = append(options, postgresengine.WithTracing(a.telemetry.tracing))
	}

	return options
}

func (a *app) memoryOptions() []memengine.Option {
	options := []memengine.Option{
		memengine.WithUniqueField(shell.TableMembers, shell.FieldMembershipNumber),
		memengine.WithClock(a.env.now),
	}

	if a.telemetry.logger != nil {
		options = append(options, memengine.WithLogger(a.telemetry.logger))
	}

	return options
}
