package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/stardust-engine/internal/admin"
	"github.com/osse101/stardust-engine/internal/asset"
	"github.com/osse101/stardust-engine/internal/battle"
	"github.com/osse101/stardust-engine/internal/catalog"
	"github.com/osse101/stardust-engine/internal/concurrency"
	"github.com/osse101/stardust-engine/internal/config"
	"github.com/osse101/stardust-engine/internal/event"
	"github.com/osse101/stardust-engine/internal/eventlog"
	"github.com/osse101/stardust-engine/internal/eventstream"
	"github.com/osse101/stardust-engine/internal/player"
	"github.com/osse101/stardust-engine/internal/quest"
	"github.com/osse101/stardust-engine/internal/reward"
	"github.com/osse101/stardust-engine/internal/scheduler"
	"github.com/osse101/stardust-engine/internal/server"
	"github.com/osse101/stardust-engine/internal/sse"
	"github.com/osse101/stardust-engine/internal/worker"
)

// App is the fully wired service
type App struct {
	Config    *config.Config
	Storage   *Storage
	Bus       event.Bus
	Publisher *event.ResilientPublisher
	Services  server.Services
	Server    *server.Server
	Hub       *sse.Hub
	Workers   *worker.Pool
	Scheduler *scheduler.Scheduler
	Redis     *redis.Client
}

// Build wires storage, the event system, the rule engines and the HTTP server.
// Background workers are started; the HTTP listener is not.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	storage, err := InitializeStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	bus, publisher, err := InitializeEventSystem(cfg)
	if err != nil {
		storage.Close()
		return nil, err
	}

	app := &App{
		Config:    cfg,
		Storage:   storage,
		Bus:       bus,
		Publisher: publisher,
		Hub:       sse.NewHub(),
		Workers:   worker.NewPool(cfg.EventWorkers, cfg.EventQueueSize),
	}
	app.Workers.Start()

	var stream *eventstream.Sink
	if cfg.RedisAddr != "" {
		client, err := eventstream.NewClient(cfg.RedisAddr)
		if err != nil {
			app.Close(ctx)
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
		}
		app.Redis = client
		stream = eventstream.NewSink(client, app.Workers, eventstream.Options{Stream: cfg.RedisStream})
		if err := stream.Ping(ctx); err != nil {
			app.Close(ctx)
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
		}
	}

	events := eventlog.NewService(storage.EventLog)
	if err := RegisterEventHandlers(EventHandlerDependencies{
		EventBus:        bus,
		EventLogService: events,
		Hub:             app.Hub,
		Stream:          stream,
	}); err != nil {
		app.Close(ctx)
		return nil, err
	}

	gate := admin.NewGate(cfg.AdminAddress)
	locks := concurrency.NewLockManager()
	app.Services = server.Services{
		Players: player.NewService(storage.Store, gate, publisher, locks),
		Assets:  asset.NewService(storage.Store, publisher, locks),
		Battles: battle.NewService(storage.Store, publisher, locks),
		Catalog: catalog.NewService(storage.Store, gate, publisher, catalog.Options{
			SeedPath:  cfg.MissionCatalogPath,
			CacheSize: cfg.CatalogCacheSize,
			CacheTTL:  cfg.CatalogCacheTTL,
		}),
		Quests:   quest.NewService(storage.Store, publisher, locks, reward.NewDispatcher()),
		EventLog: events,
		Gate:     gate,
	}

	app.Scheduler = scheduler.New(app.Workers)
	app.Scheduler.Schedule(JobNameEventLogCleanup, EventLogCleanupInterval, eventlog.RetentionJob(events, cfg.EventLogRetention))

	app.Server = server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Storage:        cfg.Storage,
		ServiceName:    cfg.ServiceName,
		Version:        cfg.Version,
		Environment:    cfg.Environment,
	}, app.Services, storage.Store, app.Hub)

	return app, nil
}

// Close stops background work and releases connections. The HTTP server is
// stopped separately by GracefulShutdown.
func (a *App) Close(ctx context.Context) {
	GracefulShutdown(ctx, ShutdownComponents{
		Scheduler:          a.Scheduler,
		Hub:                a.Hub,
		Workers:            a.Workers,
		ResilientPublisher: a.Publisher,
		Redis:              a.Redis,
		Storage:            a.Storage,
	})
}
