package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/stardust-engine/internal/logger"
)

// ReadinessTimeout bounds the storage ping behind /readyz
const ReadinessTimeout = 2 * time.Second

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
	Message string `json:"message,omitempty"`
}

// Pinger is any storage backend that can report connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz provides a readiness check that validates storage connectivity
// @Summary Readiness check
// @Description Returns OK if the service is ready to accept traffic (storage reachable)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(store Pinger, storage string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.FromContext(r.Context()).Error("Readiness check failed", "storage", storage, "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Storage: storage,
				Message: ErrMsgReadinessCheckFailed,
			})
			return
		}

		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", Storage: storage})
	}
}
