package catalog

import "time"

// Cache defaults
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 30 * time.Minute
)

// Log messages
const (
	LogMsgMissionCreated     = "Mission template created"
	LogMsgMissionSkipped     = "Mission template already exists, skipping"
	LogMsgCatalogInitialized = "Chapter missions initialized"
	LogMsgCatalogRejected    = "Catalog operation rejected"
)
