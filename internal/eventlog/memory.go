package eventlog

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps the event log in process memory
type MemoryRepository struct {
	mu     sync.RWMutex
	events []Event
	nextID int64
	now    func() time.Time
}

// NewMemoryRepository creates an empty in-memory event log
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

func (r *MemoryRepository) LogEvent(_ context.Context, eventType string, player *string, payload, metadata map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.events = append(r.events, Event{
		ID:        r.nextID,
		EventType: eventType,
		Player:    player,
		Payload:   payload,
		Metadata:  metadata,
		CreatedAt: r.now(),
	})
	return nil
}

func (r *MemoryRepository) GetEvents(_ context.Context, filter EventFilter) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Event{}
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		if filter.Player != nil && (e.Player == nil || *e.Player != *filter.Player) {
			continue
		}
		if filter.EventType != nil && e.EventType != *filter.EventType {
			continue
		}
		if filter.Since != nil && e.CreatedAt.Before(*filter.Since) {
			continue
		}
		if filter.Until != nil && e.CreatedAt.After(*filter.Until) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryRepository) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.events[:0]
	var removed int64
	for _, e := range r.events {
		if e.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.events = kept
	return removed, nil
}
