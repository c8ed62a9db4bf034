// Package middleware holds HTTP middleware shared by the API routes
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/osse101/stardust-engine/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// PlayerKey is the context key for the calling player's address
const PlayerKey contextKey = "player"

// PlayerContext attaches the X-Player-Address caller to the request context
// and to every log line written through logger.FromContext. Requests without
// the header pass through unchanged; read endpoints do not need a caller.
func PlayerContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		address := strings.TrimSpace(r.Header.Get(HeaderPlayerAddress))
		if address == EmptyPlayer {
			next.ServeHTTP(w, r)
			return
		}

		ctx := WithPlayer(r.Context(), address)
		logger.FromContext(ctx).Debug(LogMsgCallerIdentified, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithPlayer adds the caller address to ctx for both lookups and logging
func WithPlayer(ctx context.Context, address string) context.Context {
	ctx = logger.WithPlayer(ctx, address)
	return context.WithValue(ctx, PlayerKey, address)
}

// PlayerFromContext returns the caller address, or EmptyPlayer when unset
func PlayerFromContext(ctx context.Context) string {
	if address, ok := ctx.Value(PlayerKey).(string); ok {
		return address
	}
	return EmptyPlayer
}
