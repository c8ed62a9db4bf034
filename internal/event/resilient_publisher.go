package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/stardust-engine/internal/logger"
)

type pending struct {
	event   Event
	attempt int
	err     error
	due     time.Time
}

// ResilientPublisher wraps a Bus so that publishing never fails the caller.
// A failed publish is retried with exponential backoff by one background
// goroutine. Events that exhaust their retries, or that find the retry queue
// full, go to the dead-letter file.
//
// Delivery is at least once per handler. A retry republishes the whole event
// on the bus, so handlers that already succeeded see it again; the same holds
// for ReplayDeadLetters. Handlers must tolerate duplicates.
type ResilientPublisher struct {
	bus        Bus
	queue      chan pending
	maxRetries int
	baseDelay  time.Duration
	deadLetter *DeadLetterWriter

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewResilientPublisher opens the dead-letter file and starts the retry loop
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dead letter file: %w", err)
	}
	return newResilientPublisher(bus, maxRetries, retryDelay, dl, RetryQueueBufferSize), nil
}

func newResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, dl *DeadLetterWriter, queueSize int) *ResilientPublisher {
	p := &ResilientPublisher{
		bus:        bus,
		queue:      make(chan pending, queueSize),
		maxRetries: maxRetries,
		baseDelay:  retryDelay,
		deadLetter: dl,
		done:       make(chan struct{}),
	}
	p.wg.Add(1)
	go p.loop()
	return p
}

// Publish satisfies Bus and never returns an error
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// Subscribe delegates to the wrapped bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

// PublishWithRetry delivers synchronously and hands failures to the retry loop
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.bus.Publish(ctx, event)
	if err == nil {
		return
	}
	log := logger.FromContext(ctx)
	log.Warn(LogMsgEventPublishFailed, "event_type", event.Type, "error", err)

	if p.maxRetries < 1 {
		p.bury(pending{event: event, attempt: 1, err: err})
		return
	}
	if !p.enqueue(p.next(pending{event: event, err: err})) {
		log.Error(LogMsgRetryQueueFull, "event_type", event.Type)
	}
}

// next advances attempt and schedules it after the backoff delay
func (p *ResilientPublisher) next(item pending) pending {
	item.attempt++
	item.due = time.Now().Add(CalculateRetryDelay(p.baseDelay, item.attempt))
	return item
}

// enqueue dead-letters item when the queue is full
func (p *ResilientPublisher) enqueue(item pending) bool {
	select {
	case p.queue <- item:
		return true
	default:
		p.bury(item)
		return false
	}
}

func (p *ResilientPublisher) loop() {
	defer p.wg.Done()
	for {
		select {
		case item := <-p.queue:
			if !p.sleepUntil(item.due) {
				p.flush(item)
				return
			}
			p.attempt(item)
		case <-p.done:
			p.flush()
			return
		}
	}
}

// sleepUntil returns false if shutdown interrupted the wait
func (p *ResilientPublisher) sleepUntil(t time.Time) bool {
	d := time.Until(t)
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-p.done:
		return false
	}
}

func (p *ResilientPublisher) attempt(item pending) {
	ctx := context.Background()
	log := logger.FromContext(ctx).With("event_type", item.event.Type, "attempt", item.attempt)

	err := p.bus.Publish(ctx, item.event)
	if err == nil {
		log.Info(LogMsgEventRetrySucceeded)
		return
	}
	item.err = err
	if item.attempt >= p.maxRetries {
		log.Error(LogMsgEventRetryExhausted, "error", err)
		p.bury(item)
		return
	}
	log.Debug(LogMsgEventRetryFailed, "error", err)
	p.enqueue(p.next(item))
}

// flush makes one last undelayed attempt for carried and queued events
func (p *ResilientPublisher) flush(carried ...pending) {
	ctx := context.Background()
	count := 0
	try := func(item pending) {
		count++
		if err := p.bus.Publish(ctx, item.event); err != nil {
			item.err = err
			p.bury(item)
		}
	}
	for _, item := range carried {
		try(item)
	}
	for {
		select {
		case item := <-p.queue:
			try(item)
		default:
			if count > 0 {
				logger.FromContext(ctx).Info(LogMsgQueueDrainedShutdown, "count", count)
			}
			return
		}
	}
}

func (p *ResilientPublisher) bury(item pending) {
	if p.deadLetter == nil {
		return
	}
	if err := p.deadLetter.Write(item.event, item.attempt, item.err); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Shutdown flushes the retry queue and closes the dead-letter file. It
// returns ctx.Err() if the flush outlives ctx.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.done) })

	finished := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
	if p.deadLetter != nil {
		return p.deadLetter.Close()
	}
	return nil
}
