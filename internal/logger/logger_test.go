package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestJSONLogging(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	InitLoggerWithWriter(NewConfig("info", "json", "test-service", "1.0.0", "test", false), &buf)
	Info("battle resolved", "battle_id", 7, "winner", "erd1alice")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "test-service", entry["service"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "battle resolved", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, float64(7), entry["battle_id"])
	assert.Equal(t, "erd1alice", entry["winner"])
}

func TestLevelFiltering(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	InitLoggerWithWriter(NewConfig("warn", "text", "svc", "dev", "dev", false), &buf)
	Debug("hidden")
	Info("hidden")
	Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestConfig_LogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, Config{Level: in}.LogLevel(), in)
	}
	assert.True(t, Config{Format: "JSON"}.IsJSON())
	assert.False(t, DefaultConfig().IsJSON())
}

func TestRequestIDContext(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	InitLoggerWithWriter(NewConfig("info", "text", "svc", "dev", "dev", false), &buf)

	ctx := WithRequestID(context.Background(), "req-123")
	ctx = WithPlayer(ctx, "erd1bob")
	assert.Equal(t, "req-123", GetRequestID(ctx))

	FromContext(ctx).Info("hello")
	assert.True(t, strings.Contains(buf.String(), "request_id=req-123"))
	assert.True(t, strings.Contains(buf.String(), "player=erd1bob"))

	_, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)
	assert.Len(t, GenerateRequestID(), 36)
}

func TestValidLevel(t *testing.T) {
	for _, l := range []string{"debug", "Info", "WARN", "warning", "error"} {
		assert.True(t, ValidLevel(l), l)
	}
	assert.False(t, ValidLevel("verbose"))
	assert.False(t, ValidLevel(""))
}
