package sse

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Handler serves the event stream. ?types=a,b and ?player=<address> narrow it.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, LogMsgNotFlushable, http.StatusInternalServerError)
			return
		}

		filter, types := parseFilter(r)
		client := hub.Register(filter)
		log := slog.With("client_id", client.ID)
		log.Info(LogMsgClientConnected, "types", types, "player", filter.Player)
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "dropped", client.Dropped())
		}()

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")

		send := func(e Event) bool {
			msg, err := FormatSSEMessage(e)
			if err != nil {
				log.Error(LogMsgWriteError, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				log.Warn(LogMsgWriteError, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		hello := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload:   map[string]interface{}{"client_id": client.ID, "types": types, "player": filter.Player},
		}
		if !send(hello) {
			return
		}

		keepalive := time.NewTicker(KeepaliveInterval)
		defer keepalive.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case e, open := <-client.EventChannel:
				if !open || !send(e) {
					return
				}
			case <-keepalive.C:
				if !send(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}

func parseFilter(r *http.Request) (Filter, []string) {
	q := r.URL.Query()
	var types []string
	for _, t := range strings.Split(q.Get(QueryParamTypes), ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return NewFilter(types, strings.TrimSpace(q.Get(QueryParamPlayer))), types
}
