package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osse101/stardust-engine/internal/bootstrap"
	"github.com/osse101/stardust-engine/internal/event"
)

var replayEventsCmd = &cobra.Command{
	Use:   "replay-events [path]",
	Short: "Re-publish dead-lettered events to the configured sinks",
	Long: `Read a dead-letter file (DEAD_LETTER_PATH by default) and publish each event once
through the event log, metrics and stream sinks. The file is not modified.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplayEvents,
}

func runReplayEvents(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	bootstrap.InitLogger(cfg, os.Stdout)

	path := cfg.DeadLetterPath
	if len(args) == 1 {
		path = args[0]
	}

	app, err := bootstrap.Build(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	res, err := event.ReplayDeadLetters(cmd.Context(), path, app.Bus)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "replayed %d event(s), %d failed\n", res.Replayed, res.Failed)
	return nil
}
