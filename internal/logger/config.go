package logger

import (
	"log/slog"
	"strings"
)

// Attribute keys stamped on every record or added from the request context
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyPlayer      = "player"
)

const (
	formatJSON = "json"
	formatText = "text"
)

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// Config selects the handler and the attributes every record carries
type Config struct {
	Level       string
	Format      string // json or text
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// DefaultConfig is used for the window before application config is loaded
func DefaultConfig() Config {
	return NewConfig("info", formatText, "stardust-engine", "dev", "dev", false)
}

// LogLevel maps Level onto slog, falling back to info for unknown names
func (c Config) LogLevel() slog.Level {
	if l, ok := levels[strings.ToLower(c.Level)]; ok {
		return l
	}
	return slog.LevelInfo
}

// ValidLevel reports whether name is a level LogLevel understands
func ValidLevel(name string) bool {
	_, ok := levels[strings.ToLower(name)]
	return ok
}

func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, formatJSON)
}

// BaseAttributes are attached to the root handler
func (c Config) BaseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
