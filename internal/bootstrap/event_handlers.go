package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/stardust-engine/internal/event"
	"github.com/osse101/stardust-engine/internal/eventlog"
	"github.com/osse101/stardust-engine/internal/eventstream"
	"github.com/osse101/stardust-engine/internal/metrics"
	"github.com/osse101/stardust-engine/internal/sse"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	EventLogService eventlog.Service
	Hub             *sse.Hub
	Stream          *eventstream.Sink // nil when REDIS_ADDR is unset
}

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (battle and mission counters)
// - Event logger (persists events for the admin query)
// - Live feed (SSE clients)
// - Redis stream sink, when configured
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
	}
	slog.Info(LogMsgEventLoggerInitialized)

	sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
	slog.Info(LogMsgLiveFeedInitialized)

	if deps.Stream != nil {
		deps.Stream.Subscribe(deps.EventBus)
		slog.Info(LogMsgEventStreamInitialized)
	}

	return nil
}
