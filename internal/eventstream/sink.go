// Package eventstream fans published events out to a Redis stream so other
// services can follow the game without polling the API.
package eventstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/stardust-engine/internal/event"
	"github.com/osse101/stardust-engine/internal/logger"
	"github.com/osse101/stardust-engine/internal/worker"
)

// Defaults
const (
	DefaultStream = "stardust:events"
	DefaultMaxLen = 10000
)

// Stream entry fields
const (
	FieldType    = "type"
	FieldVersion = "version"
	FieldPlayer  = "player"
	FieldData    = "data"
)

// Log messages
const (
	LogMsgQueueFull    = "Event stream queue full, dropping event"
	LogMsgAppendFailed = "Failed to append event to stream"
)

// Options configures the sink
type Options struct {
	Stream string
	MaxLen int64
}

// Sink appends every event to a capped Redis stream on the worker pool
type Sink struct {
	client redis.UniversalClient
	pool   *worker.Pool
	stream string
	maxLen int64
}

// NewClient creates a Redis client for a single instance
func NewClient(addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("redis: address is required")
	}
	return redis.NewClient(&redis.Options{Addr: addr}), nil
}

// NewSink creates a sink writing through pool
func NewSink(client redis.UniversalClient, pool *worker.Pool, opts Options) *Sink {
	if opts.Stream == "" {
		opts.Stream = DefaultStream
	}
	if opts.MaxLen <= 0 {
		opts.MaxLen = DefaultMaxLen
	}
	return &Sink{client: client, pool: pool, stream: opts.Stream, maxLen: opts.MaxLen}
}

// Subscribe registers the sink for every event type
func (s *Sink) Subscribe(bus event.Bus) {
	event.SubscribeAll(bus, s.handleEvent)
}

// handleEvent never fails the publisher: stream delivery is best effort
func (s *Sink) handleEvent(ctx context.Context, evt event.Event) error {
	values, err := entryValues(evt)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgAppendFailed, "type", evt.Type, "error", err)
		return nil
	}
	job := worker.JobFunc(func(ctx context.Context) error {
		return s.Append(ctx, values)
	})
	if !s.pool.TryEnqueue(job) {
		logger.FromContext(ctx).Warn(LogMsgQueueFull, "type", evt.Type)
	}
	return nil
}

// Append writes one entry to the stream, trimming it to roughly maxLen entries
func (s *Sink) Append(ctx context.Context, values map[string]interface{}) error {
	err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: values,
	}).Err()
	if err != nil {
		return fmt.Errorf("%s: %w", LogMsgAppendFailed, err)
	}
	return nil
}

// Ping checks the Redis connection
func (s *Sink) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func entryValues(evt event.Event) (map[string]interface{}, error) {
	data, err := json.Marshal(evt.Payload)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		FieldType:    string(evt.Type),
		FieldVersion: evt.Version,
		FieldPlayer:  evt.Player(),
		FieldData:    string(data),
	}, nil
}
