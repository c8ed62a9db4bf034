package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/stardust-engine/internal/config"
	"github.com/osse101/stardust-engine/internal/database"
	"github.com/osse101/stardust-engine/internal/database/memory"
	"github.com/osse101/stardust-engine/internal/database/postgres"
	"github.com/osse101/stardust-engine/internal/eventlog"
	"github.com/osse101/stardust-engine/internal/repository"
)

// Storage holds the selected backend. Pool is nil for the memory backend.
type Storage struct {
	Store    repository.Store
	EventLog eventlog.Repository
	Pool     *pgxpool.Pool
}

// Close releases the database pool, if any
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// InitializeStorage opens the configured backend. For postgres it connects the
// pool and applies pending migrations before returning.
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		slog.Info(LogMsgStorageReady, "storage", cfg.Storage)
		return &Storage{
			Store:    memory.NewStore(),
			EventLog: eventlog.NewMemoryRepository(),
		}, nil

	case config.StoragePostgres:
		pool, err := ConnectDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, pool, database.MigrateUp); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateDB, err)
		}
		slog.Info(LogMsgStorageReady, "storage", cfg.Storage, "db_host", cfg.DBHost, "db_name", cfg.DBName)
		return &Storage{
			Store:    postgres.NewStore(pool),
			EventLog: postgres.NewEventLogRepository(pool),
			Pool:     pool,
		}, nil

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorageKind, cfg.Storage)
	}
}

// ConnectDatabase opens the PostgreSQL pool described by cfg
func ConnectDatabase(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: DBMaxConnIdleTime,
		MaxConnLifetime: DBMaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}
	return pool, nil
}
