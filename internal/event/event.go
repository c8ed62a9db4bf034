// Package event carries game events from the engines to the sinks that record,
// stream and count them.
package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Type names an event, e.g. "battle.resolved"
type Type string

// Metadata holds string attributes sinks can index without decoding the payload
type Metadata map[string]string

// Event is the envelope every sink receives
type Event struct {
	Version  string      `json:"version"`
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// Player returns the address the event concerns, or ""
func (e Event) Player() string {
	return e.Metadata[MetadataKeyPlayer]
}

// Handler consumes one event
type Handler func(ctx context.Context, event Event) error

// Bus delivers events to subscribed handlers
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the fire-and-forget side used by the engines.
// Delivery failures never reach the caller.
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus delivers synchronously, in subscription order
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewMemoryBus returns a bus with no subscribers
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[Type][]Handler)}
}

// Publish runs every handler for the event type. A failing or panicking
// handler does not stop the rest; all failures are joined into the result.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for i, h := range handlers {
		if err := invoke(ctx, h, event); err != nil {
			errs = append(errs, fmt.Errorf("handler %d: %w", i, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s %s: %w", ErrMsgHandlersFailed, event.Type, errors.Join(errs...))
}

func invoke(ctx context.Context, h Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return h(ctx, event)
}

func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes handler to every game event type
func SubscribeAll(bus Bus, handler Handler) {
	for _, t := range AllTypes() {
		bus.Subscribe(t, handler)
	}
}
