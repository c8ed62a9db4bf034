// Package eventlog persists every published game event for audit and replay.
package eventlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/osse101/stardust-engine/internal/event"
	"github.com/osse101/stardust-engine/internal/logger"
)

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the event logger to listen to all events
	Subscribe(bus event.Bus) error

	// GetEvents returns logged events matching the filter
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// Prune drops events older than retention
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// Subscribe registers event handlers for all event types
func (s *service) Subscribe(bus event.Bus) error {
	event.SubscribeAll(bus, s.handleEvent)
	return nil
}

// handleEvent flattens the typed payload and stores it
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := toMap(evt.Payload)
	if err != nil {
		log.Warn(LogMsgPayloadNotEncodable, LogFieldType, evt.Type, LogFieldError, err)
		return nil
	}

	var player *string
	if p := evt.Player(); p != "" {
		player = &p
	}

	var metadata map[string]interface{}
	if len(evt.Metadata) > 0 {
		metadata = make(map[string]interface{}, len(evt.Metadata))
		for k, v := range evt.Metadata {
			metadata[k] = v
		}
	}
	if err := s.repo.LogEvent(ctx, string(evt.Type), player, payload, metadata); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldPlayer, evt.Player())
	return nil
}

func (s *service) GetEvents(ctx context.Context, filter EventFilter) ([]Event, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultQueryLimit
	}
	if filter.Limit > MaxQueryLimit {
		filter.Limit = MaxQueryLimit
	}
	return s.repo.GetEvents(ctx, filter)
}

func (s *service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	return s.repo.DeleteBefore(ctx, s.now().Add(-retention))
}

func toMap(payload interface{}) (map[string]interface{}, error) {
	if m, ok := payload.(map[string]interface{}); ok {
		return m, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
