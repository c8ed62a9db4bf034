package eventlog

// Log messages - service events
const (
	LogMsgPayloadNotEncodable = "Event payload could not be encoded, skipping log"
	LogMsgFailedToLogEvent    = "Failed to log event"
	LogMsgEventLogged         = "Event logged"
)

// Log messages - retention
const (
	LogMsgPruneFailed = "Event log prune failed"
	LogMsgPruned      = "Event log pruned"
)

// Log field keys - structured logging fields
const (
	LogFieldType         = "type"
	LogFieldPlayer       = "player"
	LogFieldError        = "error"
	LogFieldRetention    = "retention"
	LogFieldDuration     = "duration"
	LogFieldDeletedCount = "deleted"
)

// Query limits
const (
	DefaultQueryLimit = 100
	MaxQueryLimit     = 1000
)
