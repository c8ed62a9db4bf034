package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerContext(t *testing.T) {
	t.Run("Header populates context", func(t *testing.T) {
		var seen string
		handler := PlayerContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = PlayerFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/players/register", nil)
		req.Header.Set(HeaderPlayerAddress, "  erd1alice ")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "erd1alice", seen)
	})

	t.Run("Missing header leaves context empty", func(t *testing.T) {
		seen := "sentinel"
		handler := PlayerContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = PlayerFromContext(r.Context())
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/missions", nil))

		assert.Equal(t, EmptyPlayer, seen)
	})

	t.Run("Caller appears in request logs", func(t *testing.T) {
		prev := slog.Default()
		t.Cleanup(func() { slog.SetDefault(prev) })

		var buf bytes.Buffer
		slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

		handler := PlayerContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/battles/1", nil)
		req.Header.Set(HeaderPlayerAddress, "erd1bob")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Contains(t, buf.String(), "player=erd1bob")
		assert.Contains(t, buf.String(), LogMsgCallerIdentified)
	})
}

func TestPlayerFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), PlayerKey, 42)
	assert.Equal(t, EmptyPlayer, PlayerFromContext(ctx))
}
