package events

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/ilyacantor/autonomos-dash/internal/bus"
)

// SetupRoutes registers the event ingress routes.
func SetupRoutes(router chi.Router, b *bus.Bus, logger *slog.Logger) error {
	handlers := NewHandlers(b, logger)

	router.Post("/api/events/state-changed", handlers.StateChanged)
	router.Post("/api/events/graph", handlers.GraphEvent)

	return nil
}
