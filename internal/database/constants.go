package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToLoadMigrations  = "failed to load migrations"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
	ErrMsgUnknownMigrateCommand   = "unknown migrate command"
)

// Migrate commands
const (
	MigrateUp      = "up"
	MigrateDown    = "down"
	MigrateStatus  = "status"
	MigrateVersion = "version"
)

// Log Messages
const (
	LogMsgConnected        = "Connected to database"
	LogMsgMigrationApplied = "Migration applied"
	LogMsgMigrationStatus  = "Migration status"
	LogMsgDatabaseVersion  = "Database version"
)
