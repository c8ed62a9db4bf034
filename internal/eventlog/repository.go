package eventlog

import (
	"context"
	"time"
)

// Event is one row of the audit log
type Event struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	Player    *string                `json:"player,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// EventFilter narrows GetEvents. Nil fields match everything; Limit <= 0 means
// no limit at the repository level.
type EventFilter struct {
	Player    *string
	EventType *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
}

// Repository stores the audit log
type Repository interface {
	LogEvent(ctx context.Context, eventType string, player *string, payload, metadata map[string]interface{}) error
	// GetEvents returns matching events newest first
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)
	// DeleteBefore removes events created strictly before cutoff
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
