package middleware

// HeaderPlayerAddress carries the caller identity on authenticated requests
const HeaderPlayerAddress = "X-Player-Address"

// Default Values
const (
	// EmptyPlayer represents an absent caller
	EmptyPlayer = ""
)

// Log Messages
const (
	// LogMsgCallerIdentified is logged once the caller is attached to the request
	LogMsgCallerIdentified = "Caller identified"
)
