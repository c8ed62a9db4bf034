package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/stardust-engine/internal/bootstrap"
	"github.com/osse101/stardust-engine/internal/config"
)

const shutdownTimeout = 30 * time.Second

var (
	servePort   int
	seedOnStart bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the StardustEngine HTTP API with the configured storage and event sinks.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "HTTP port (overrides PORT)")
	serveCmd.Flags().BoolVar(&seedOnStart, "seed", false, "seed the chapter missions before serving")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if warnings, err := config.ValidateEnvWithWarnings(); err != nil {
		slog.Warn(bootstrap.LogMsgEnvWarning, "error", err)
	} else {
		for _, w := range warnings {
			slog.Warn(bootstrap.LogMsgEnvWarning, "warning", w)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return err
	}

	if seedOnStart {
		if _, err := bootstrap.SeedMissionCatalog(ctx, app.Services.Catalog, cfg.AdminAddress); err != nil {
			app.Close(context.Background())
			return err
		}
	}

	errChan := make(chan error, 1)
	go func() {
		if err := app.Server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		slog.Info("Received shutdown signal")
	case serveErr = <-errChan:
		slog.Error("Server failed", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             app.Server,
		Scheduler:          app.Scheduler,
		Hub:                app.Hub,
		Workers:            app.Workers,
		ResilientPublisher: app.Publisher,
		Redis:              app.Redis,
		Storage:            app.Storage,
	})

	return serveErr
}
