package config

import "time"

const (
	// Configuration file paths
	ConfigPathMissionCatalog = "configs/missions/chapter1.json"
)

// Defaults applied when the variable is unset
const (
	DefaultPort              = 8080
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultLogDir            = "logs"
	DefaultServiceName       = "stardust-engine"
	DefaultVersion           = "dev"
	DefaultEnvironment       = "dev"
	DefaultDBMaxConns        = 10
	DefaultRedisStream       = "stardust:events"
	DefaultCatalogCacheSize  = 256
	DefaultCatalogCacheTTL   = 30 * time.Minute
	DefaultEventWorkers      = 4
	DefaultEventQueueSize    = 256
	DefaultEventMaxRetries   = 5
	DefaultEventRetryDelay   = 2 * time.Second
	DefaultDeadLetterPath    = "logs/event_deadletter.jsonl"
	DefaultEventLogRetention = 30 * 24 * time.Hour
)
