package event

import (
	"errors"
	"time"
)

// EventSchemaVersion is stamped on every envelope
const EventSchemaVersion = "1.0"

// MetadataKeyPlayer is the metadata key holding the address an event concerns
const MetadataKeyPlayer = "player"

const (
	// RetryQueueBufferSize bounds events waiting for another delivery attempt
	RetryQueueBufferSize = 1000

	DeadLetterFilePermissions = 0644
	DeadLetterSchemaVersion   = "1.0"
)

var ErrHandlerPanic = errors.New("event handler panicked")

const ErrMsgHandlersFailed = "handlers failed for"

const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventDeadLettered     = "Event dead-lettered"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
	LogMsgReplaySkipped         = "Dead letter could not be replayed"
)

// CalculateRetryDelay doubles baseDelay for each attempt after the first
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay << (attempt - 1)
}
