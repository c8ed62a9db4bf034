package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/stardust-engine/internal/event"
	"github.com/osse101/stardust-engine/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	event.SubscribeAll(bus, e.HandleEvent)
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch p := evt.Payload.(type) {
	case event.PlayerRegisteredPayloadV1:
		PlayersRegistered.Inc()
	case event.ExperienceGainedPayloadV1:
		ExperienceGranted.Add(float64(p.Amount))
	case event.AssetMintedPayloadV1:
		AssetsMinted.WithLabelValues(p.Source, string(p.Rarity)).Inc()
	case event.AssetTransferredPayloadV1:
		AssetsTransferred.Inc()
	case event.BattleInitiatedPayloadV1:
		BattlesInitiated.WithLabelValues(string(p.BattleType)).Inc()
	case event.BattleAcceptedPayloadV1:
	case event.BattleMoveMadePayloadV1:
		BattleMoves.WithLabelValues(string(p.MoveType)).Inc()
	case event.BattleResolvedPayloadV1:
		BattlesResolved.WithLabelValues(string(p.BattleType)).Inc()
		BattleLength.Observe(float64(p.Moves))
	case event.MissionCreatedPayloadV1:
	case event.MissionStartedPayloadV1:
		MissionsStarted.Inc()
	case event.ObjectiveCompletedPayloadV1:
		ObjectivesCompleted.Inc()
	case event.MissionCompletedPayloadV1:
		MissionsCompleted.WithLabelValues(strconv.FormatUint(uint64(p.Chapter), 10)).Inc()
	default:
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
