// Package sse streams game events to browsers over server-sent events.
package sse

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Event is one frame on the stream
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Player    string      `json:"player,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Filter selects which events a client receives. Zero value matches all.
type Filter struct {
	Types  map[string]bool
	Player string
}

// NewFilter builds a Filter from a list of event types and a player address
func NewFilter(types []string, player string) Filter {
	f := Filter{Player: player}
	if len(types) > 0 {
		f.Types = make(map[string]bool, len(types))
		for _, t := range types {
			f.Types[t] = true
		}
	}
	return f
}

// Match reports whether e passes the filter
func (f Filter) Match(e Event) bool {
	if f.Types != nil && !f.Types[e.Type] {
		return false
	}
	return f.Player == "" || f.Player == e.Player
}

// Client is one open stream
type Client struct {
	ID           string
	EventChannel chan Event
	Filter       Filter
	dropped      atomic.Int64
}

// Dropped returns how many events were skipped because the client was slow
func (c *Client) Dropped() int64 {
	return c.dropped.Load()
}

// Hub fans events out to registered clients. Delivery never blocks the
// publisher: a full client buffer drops the event for that client only.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	closed  bool
	seq     atomic.Uint64
	now     func() time.Time
}

// NewHub returns an empty hub ready to register clients
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		now:     time.Now,
	}
}

// Register opens a client. On a stopped hub the returned channel is already closed.
func (h *Hub) Register(filter Filter) *Client {
	client := &Client{
		ID:           uuid.NewString(),
		EventChannel: make(chan Event, ClientEventBuffer),
		Filter:       filter,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(client.EventChannel)
		return client
	}
	h.clients[client.ID] = client
	return client
}

// Unregister closes and forgets a client. Unknown ids are ignored.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[clientID]; ok {
		delete(h.clients, clientID)
		close(c.EventChannel)
	}
}

// Broadcast stamps an event and hands it to every matching client
func (h *Hub) Broadcast(eventType, player string, payload interface{}) {
	e := Event{
		ID:        strconv.FormatUint(h.seq.Add(1), 10),
		Type:      eventType,
		Player:    player,
		Timestamp: h.now().Unix(),
		Payload:   payload,
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if !c.Filter.Match(e) {
			continue
		}
		select {
		case c.EventChannel <- e:
		default:
			if c.dropped.Add(1) == 1 {
				slog.Warn(LogMsgClientLagging, "client_id", c.ID, "event_type", eventType)
			}
		}
	}
}

// Stop closes every client. Later registrations get a closed channel.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, c := range h.clients {
		close(c.EventChannel)
		delete(h.clients, id)
	}
}

// ClientCount returns the number of open clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage renders e in text/event-stream framing
func FormatSSEMessage(e Event) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("id: %s\nevent: %s\ndata: %s\n\n", e.ID, e.Type, data)), nil
}
