package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/osse101/stardust-engine/internal/bootstrap"
	"github.com/osse101/stardust-engine/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status|version]",
	Short:     "Run database migrations",
	Long:      `Apply or inspect the embedded PostgreSQL migrations. Defaults to up.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{database.MigrateUp, database.MigrateDown, database.MigrateStatus, database.MigrateVersion},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	command := database.MigrateUp
	if len(args) == 1 {
		command = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	bootstrap.InitLogger(cfg, os.Stdout)

	pool, err := bootstrap.ConnectDatabase(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	return database.Migrate(cmd.Context(), pool, command)
}
