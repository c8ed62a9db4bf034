package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/stardust-engine/internal/database/migrations"
)

// Migrate runs a goose command against the embedded migrations.
// Supported commands are up, down, status and version.
func Migrate(ctx context.Context, pool *pgxpool.Pool, command string) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLoadMigrations, err)
	}

	log := slog.Default()

	switch command {
	case MigrateUp:
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
		}
		for _, r := range results {
			log.Info(LogMsgMigrationApplied, "version", r.Source.Version, "direction", r.Direction, "duration", r.Duration)
		}
	case MigrateDown:
		r, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
		}
		log.Info(LogMsgMigrationApplied, "version", r.Source.Version, "direction", r.Direction, "duration", r.Duration)
	case MigrateStatus:
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
		}
		for _, s := range statuses {
			log.Info(LogMsgMigrationStatus, "version", s.Source.Version, "state", s.State, "applied_at", s.AppliedAt)
		}
	case MigrateVersion:
		v, err := provider.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
		}
		log.Info(LogMsgDatabaseVersion, "version", v)
	default:
		return fmt.Errorf("%s: %q", ErrMsgUnknownMigrateCommand, command)
	}
	return nil
}
