package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/osse101/stardust-engine/internal/admin"
	"github.com/osse101/stardust-engine/internal/eventlog"
)

// AdminEventsHandler handles admin event log queries
type AdminEventsHandler struct {
	eventlogService eventlog.Service
	gate            *admin.Gate
}

// NewAdminEventsHandler creates a new admin events handler
func NewAdminEventsHandler(eventlogService eventlog.Service, gate *admin.Gate) *AdminEventsHandler {
	return &AdminEventsHandler{eventlogService: eventlogService, gate: gate}
}

// EventsResponse contains event log query results
type EventsResponse struct {
	Events []EventLogEntry `json:"events"`
}

// EventLogEntry represents a single event log entry
type EventLogEntry struct {
	ID        int64       `json:"id"`
	EventType string      `json:"event_type"`
	Player    *string     `json:"player,omitempty"`
	Payload   interface{} `json:"payload"`
	Metadata  interface{} `json:"metadata,omitempty"`
	CreatedAt string      `json:"created_at"`
}

// HandleGetEvents retrieves logged events, newest first
// GET /api/v1/admin/events?player=X&event_type=Y&since=Z&until=W&limit=N
// @Summary Query the event log
// @Tags admin
// @Produce json
// @Param X-Player-Address header string true "Admin address"
// @Success 200 {object} EventsResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/admin/events [get]
func (h *AdminEventsHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	caller, ok := RequireCaller(w, r)
	if !ok {
		return
	}
	if err := h.gate.RequireAdmin(caller); err != nil {
		respondServiceError(w, r, ErrMsgGetEventsFailed, err)
		return
	}

	query := r.URL.Query()
	filter := eventlog.EventFilter{Limit: DefaultEventLimit}

	if p := query.Get(QueryParamPlayer); p != "" {
		filter.Player = &p
	}

	if eventType := query.Get(QueryParamEventType); eventType != "" {
		filter.EventType = &eventType
	}

	if sinceStr := query.Get(QueryParamSince); sinceStr != "" {
		since, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidSince)
			return
		}
		filter.Since = &since
	}

	if untilStr := query.Get(QueryParamUntil); untilStr != "" {
		until, err := time.Parse(time.RFC3339, untilStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidUntil)
			return
		}
		filter.Until = &until
	}

	if limitStr := query.Get(QueryParamLimit); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > MaxEventLimit {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}
		filter.Limit = limit
	}

	events, err := h.eventlogService.GetEvents(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetEventsFailed, err)
		return
	}

	entries := make([]EventLogEntry, len(events))
	for i, evt := range events {
		entries[i] = EventLogEntry{
			ID:        evt.ID,
			EventType: evt.EventType,
			Player:    evt.Player,
			Payload:   evt.Payload,
			Metadata:  evt.Metadata,
			CreatedAt: evt.CreatedAt.Format(time.RFC3339),
		}
	}

	respondJSON(w, http.StatusOK, EventsResponse{Events: entries})
}
