package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/stardust-engine/internal/logger"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	Port         int
	APIKey       string // API key for authentication
	AdminAddress string // Only address allowed to create missions and grant experience

	TrustedProxies []string // Remote IPs whose X-Forwarded-For is honored

	LogLevel    string
	LogFormat   string
	LogDir      string
	ServiceName string
	Version     string
	Environment string

	Storage    string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBMaxConns int

	RedisAddr   string // Empty disables the Redis event stream
	RedisStream string

	MissionCatalogPath string
	CatalogCacheSize   int
	CatalogCacheTTL    time.Duration

	EventWorkers      int
	EventQueueSize    int
	EventMaxRetries   int
	EventRetryDelay   time.Duration
	DeadLetterPath    string
	EventLogRetention time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:             getEnv("API_KEY", ""),
		AdminAddress:       strings.TrimSpace(getEnv("ADMIN_ADDRESS", "")),
		LogLevel:           getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:          getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:             getEnv("LOG_DIR", DefaultLogDir),
		ServiceName:        getEnv("SERVICE_NAME", DefaultServiceName),
		Version:            getEnv("VERSION", DefaultVersion),
		Environment:        getEnv("ENVIRONMENT", DefaultEnvironment),
		Storage:            strings.ToLower(getEnv("STORAGE", StorageMemory)),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBName:             getEnv("DB_NAME", "stardust"),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisStream:        getEnv("REDIS_STREAM", DefaultRedisStream),
		MissionCatalogPath: getEnv("MISSION_CATALOG_PATH", ConfigPathMissionCatalog),
		DeadLetterPath:     getEnv("DEAD_LETTER_PATH", DefaultDeadLetterPath),
		TrustedProxies:     splitList(getEnv("TRUSTED_PROXIES", "")),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.DBMaxConns, err = getEnvInt("DB_MAX_CONNS", DefaultDBMaxConns); err != nil {
		return nil, err
	}
	if cfg.CatalogCacheSize, err = getEnvInt("CATALOG_CACHE_SIZE", DefaultCatalogCacheSize); err != nil {
		return nil, err
	}
	if cfg.CatalogCacheTTL, err = getEnvDuration("CATALOG_CACHE_TTL", DefaultCatalogCacheTTL); err != nil {
		return nil, err
	}
	if cfg.EventWorkers, err = getEnvInt("EVENT_WORKERS", DefaultEventWorkers); err != nil {
		return nil, err
	}
	if cfg.EventQueueSize, err = getEnvInt("EVENT_QUEUE_SIZE", DefaultEventQueueSize); err != nil {
		return nil, err
	}
	if cfg.EventMaxRetries, err = getEnvInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries); err != nil {
		return nil, err
	}
	if cfg.EventRetryDelay, err = getEnvDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay); err != nil {
		return nil, err
	}
	if cfg.EventLogRetention, err = getEnvDuration("EVENT_LOG_RETENTION", DefaultEventLogRetention); err != nil {
		return nil, err
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if cfg.AdminAddress == "" {
		return nil, fmt.Errorf("ADMIN_ADDRESS environment variable must be set")
	}

	return cfg, nil
}

// Validate reports settings that cannot work together
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if !logger.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown LOG_LEVEL %q", c.LogLevel))
	}
	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.DBHost == "" || c.DBName == "" {
			errs = append(errs, errors.New("DB_HOST and DB_NAME are required for postgres storage"))
		}
		if c.DBMaxConns <= 0 {
			errs = append(errs, fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE %q (want %s or %s)", c.Storage, StorageMemory, StoragePostgres))
	}
	if c.EventWorkers <= 0 {
		errs = append(errs, fmt.Errorf("EVENT_WORKERS must be positive, got %d", c.EventWorkers))
	}
	if c.EventQueueSize <= 0 {
		errs = append(errs, fmt.Errorf("EVENT_QUEUE_SIZE must be positive, got %d", c.EventQueueSize))
	}
	if c.EventMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("EVENT_MAX_RETRIES cannot be negative, got %d", c.EventMaxRetries))
	}
	if c.CatalogCacheSize <= 0 {
		errs = append(errs, fmt.Errorf("CATALOG_CACHE_SIZE must be positive, got %d", c.CatalogCacheSize))
	}
	if c.RedisAddr != "" && c.RedisStream == "" {
		errs = append(errs, errors.New("REDIS_STREAM is required when REDIS_ADDR is set"))
	}
	return errors.Join(errs...)
}

// UsePostgres reports whether the PostgreSQL store is selected
func (c *Config) UsePostgres() bool {
	return c.Storage == StoragePostgres
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// splitList parses a comma separated list, dropping empty entries
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
