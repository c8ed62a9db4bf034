package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of log files kept, including the new session
	LogFileRetentionCount = 10
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting StardustEngine"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgEnvWarning          = "Environment warning"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Storage
// =============================================================================

const (
	// DBMaxConnIdleTime closes pooled connections idle longer than this
	DBMaxConnIdleTime = 5 * time.Minute

	// DBMaxConnLifetime recycles pooled connections
	DBMaxConnLifetime = time.Hour
)

const (
	LogMsgStorageReady       = "Storage ready"
	ErrMsgFailedConnectDB    = "failed to connect to database"
	ErrMsgFailedMigrateDB    = "failed to migrate database"
	ErrMsgUnknownStorageKind = "unknown storage backend"
)

// =============================================================================
// Event System Configuration
// =============================================================================

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	LogMsgLiveFeedInitialized        = "Live event feed initialized"
	LogMsgEventStreamInitialized     = "Redis event stream initialized"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event logger"
	ErrMsgFailedConnectRedis         = "failed to connect to redis"
)

// =============================================================================
// Mission Catalog
// =============================================================================

const (
	LogMsgSeedingMissions = "Seeding mission catalog"
	LogMsgMissionsSeeded  = "Mission catalog seeded"
	ErrMsgFailedSeed      = "failed to seed mission catalog"
)

// =============================================================================
// Background Jobs
// =============================================================================

const (
	// EventLogCleanupInterval is how often expired event log rows are purged
	EventLogCleanupInterval = 24 * time.Hour

	JobNameEventLogCleanup = "eventlog-cleanup"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgCloseFailed                = "Close failed"
)
