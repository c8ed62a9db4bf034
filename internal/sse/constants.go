package sse

import "time"

const (
	// ClientEventBuffer is how many undelivered events a client may hold
	ClientEventBuffer = 64

	KeepaliveInterval = 30 * time.Second
)

// Stream-only event types
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

const (
	QueryParamTypes  = "types"
	QueryParamPlayer = "player"
)

const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgClientLagging      = "SSE client buffer full, dropping events"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSubscribed         = "SSE subscriber registered"
	LogMsgNotFlushable       = "SSE not supported"
)
