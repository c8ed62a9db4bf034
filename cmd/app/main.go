// Package main is the entry point for the StardustEngine rules service
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "stardust-engine",
	Short:        "StardustEngine rules service",
	Long:         `StardustEngine runs the player, asset, battle and mission rules behind an HTTP API.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedMissionsCmd)
	rootCmd.AddCommand(replayEventsCmd)
}
