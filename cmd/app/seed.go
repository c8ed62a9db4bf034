package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osse101/stardust-engine/internal/bootstrap"
)

var seedMissionsCmd = &cobra.Command{
	Use:   "seed-missions",
	Short: "Load the chapter missions into the catalog",
	Long:  `Create the chapter mission templates from MISSION_CATALOG_PATH (or the built-in set). Existing templates are skipped.`,
	Args:  cobra.NoArgs,
	RunE:  runSeedMissions,
}

func runSeedMissions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	bootstrap.InitLogger(cfg, os.Stdout)

	app, err := bootstrap.Build(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	created, err := bootstrap.SeedMissionCatalog(cmd.Context(), app.Services.Catalog, cfg.AdminAddress)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %d mission(s): %v\n", len(created), created)
	return nil
}
