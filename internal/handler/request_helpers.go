package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/stardust-engine/internal/logger"
	"github.com/osse101/stardust-engine/internal/middleware"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// It logs the operation and returns a standardized error response to the client.
//
// Parameters:
//   - r: The HTTP request containing the JSON body
//   - w: The HTTP response writer to send error responses
//   - req: Pointer to the request struct to decode into (must implement validation tags)
//   - actionName: Human-readable name for the action (e.g., "Mint asset", "Submit move")
//
// Returns:
//   - error: nil if successful, error if decoding or validation failed
//
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req MintAssetRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Mint asset"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		validationErrs := FormatValidationError(err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: validationErrs,
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// RequireCaller returns the authenticated player address, set by middleware.PlayerContext
// or read from the X-Player-Address header when the middleware did not run.
// If ok is false, the HTTP response has already been written and the handler should return.
func RequireCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := middleware.PlayerFromContext(r.Context())
	if caller == middleware.EmptyPlayer {
		caller = strings.TrimSpace(r.Header.Get(HeaderPlayerAddress))
	}
	if caller == "" {
		logger.FromContext(r.Context()).Warn("Missing caller header")
		respondError(w, http.StatusBadRequest, ErrMsgMissingCaller)
		return "", false
	}
	return caller, true
}

// GetIDParam parses a positive numeric chi URL parameter.
// If ok is false, the HTTP response has already been written and the handler should return.
func GetIDParam(w http.ResponseWriter, r *http.Request, name string) (uint64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidPathParam, name))
		return 0, false
	}
	return id, true
}

// GetAddressParam returns the {address} URL parameter.
// If ok is false, the HTTP response has already been written and the handler should return.
func GetAddressParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	address := strings.TrimSpace(chi.URLParam(r, ParamAddress))
	if !validAddress(address) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidPathParam, ParamAddress))
		return "", false
	}
	return address, true
}

// LogRequestFields is a helper to log common request fields in a structured way.
//
// Example usage:
//
//	LogRequestFields(log, "battle_id", id, "asset_id", req.AssetID)
func LogRequestFields(log *slog.Logger, keyvals ...interface{}) {
	if len(keyvals)%2 != 0 {
		log.Warn("LogRequestFields called with odd number of arguments")
		return
	}
	log.Debug("Request details", keyvals...)
}
