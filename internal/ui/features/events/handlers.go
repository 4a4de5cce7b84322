// Package events is the HTTP ingress for platform notifications. The
// AutonomOS backend posts here when its state changes or when a graph
// event fires, and the handlers republish on the internal bus.
package events

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ilyacantor/autonomos-dash/internal/bus"
	"github.com/ilyacantor/autonomos-dash/internal/graph"
)

// GraphEventRequest is the body of POST /api/events/graph.
type GraphEventRequest struct {
	Type     string `json:"type"`
	SourceID string `json:"sourceId,omitempty"`
	TargetID string `json:"targetId,omitempty"`
}

// Handlers provides the event ingress handlers.
type Handlers struct {
	bus    *bus.Bus
	logger *slog.Logger
}

// NewHandlers creates a Handlers instance.
func NewHandlers(b *bus.Bus, logger *slog.Logger) *Handlers {
	return &Handlers{bus: b, logger: logger}
}

// StateChanged announces that platform state was replaced. The feed
// picks this up and re-fetches, debounced.
func (h *Handlers) StateChanged(w http.ResponseWriter, r *http.Request) {
	h.bus.Publish(bus.StateChanged{})
	w.WriteHeader(http.StatusAccepted)
}

// GraphEvent publishes a typed graph event. Unknown event types are
// rejected so a misbehaving backend surfaces loudly instead of being
// silently dropped downstream.
func (h *Handlers) GraphEvent(w http.ResponseWriter, r *http.Request) {
	var req GraphEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid event body", http.StatusBadRequest)
		return
	}
	if !graph.KnownEventType(req.Type) {
		h.logger.Warn("rejected graph event", "type", req.Type)
		http.Error(w, "unknown event type", http.StatusBadRequest)
		return
	}

	ev := bus.NewGraphEvent(req.Type, req.SourceID, req.TargetID)
	h.bus.Publish(ev)
	h.logger.Debug("graph event published", "id", ev.ID, "type", ev.Type)
	w.WriteHeader(http.StatusAccepted)
}
