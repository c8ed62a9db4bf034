package bootstrap

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/stardust-engine/internal/event"
	"github.com/osse101/stardust-engine/internal/scheduler"
	"github.com/osse101/stardust-engine/internal/server"
	"github.com/osse101/stardust-engine/internal/sse"
	"github.com/osse101/stardust-engine/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	Hub                *sse.Hub
	Workers            *worker.Pool
	ResilientPublisher *event.ResilientPublisher
	Redis              *redis.Client
	Storage            *Storage
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler and live feed (no new background work)
// 3. Event publisher (flush pending events to the subscribers)
// 4. Worker pool (drain queued stream appends)
// 5. Connections (Redis, database)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	if c.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Workers != nil {
		c.Workers.Stop()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			slog.Error(LogMsgCloseFailed, "component", "redis", "error", err)
		}
	}
	if c.Storage != nil {
		c.Storage.Close()
	}

	slog.Info(LogMsgServerStopped)
}
