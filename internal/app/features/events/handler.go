// internal/app/features/events/handler.go

// Package events streams realtime updates to clients over server-sent
// events. One long-lived GET per client; the hub fans events in.
package events

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/quangoinc/qscore/internal/app/system/realtime"
	"go.uber.org/zap"
)

// heartbeatInterval keeps intermediaries from closing idle streams.
const heartbeatInterval = 25 * time.Second

// Handler serves GET /api/events.
type Handler struct {
	Hub *realtime.Hub
	Log *zap.Logger
}

func NewHandler(hub *realtime.Hub, logger *zap.Logger) *Handler {
	return &Handler{Hub: hub, Log: logger}
}

// ServeStream handles GET /api/events: subscribe the client and relay
// hub events until the client disconnects or the hub shuts down.
func (h *Handler) ServeStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	events, cancel := h.Hub.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// An initial comment confirms the stream is open before any event.
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case ev, open := <-events:
			if !open {
				return
			}
			if err := writeEvent(w, ev); err != nil {
				h.Log.Debug("sse write failed, dropping client", zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, ev realtime.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
	return err
}
