package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing messages for failures that must not leak internals
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgForbiddenError     = "Only the administrator can do that"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and messages.
// Precondition messages are safe to show; integrity faults and unknown errors are not.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrDataIntegrity):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrNotAdmin):
		return http.StatusForbidden, ErrMsgForbiddenError
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrAlreadyRegistered),
		errors.Is(err, domain.ErrMissionExists),
		errors.Is(err, domain.ErrMissionAlreadyActive),
		errors.Is(err, domain.ErrObjectiveAlreadyCompleted),
		errors.Is(err, domain.ErrBattleNotWaiting):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrPrecondition):
		return http.StatusBadRequest, err.Error()
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs a failed service call and writes the mapped response.
// Rejected preconditions are expected traffic and log at debug.
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(action, "error", err)
	} else {
		log.Debug(action, "error", err, "status", status)
	}
	respondError(w, status, message)
}
