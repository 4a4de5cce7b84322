package hitl

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/ilyacantor/autonomos-dash/internal/backend"
)

// SetupRoutes registers the review queue routes.
func SetupRoutes(router chi.Router, client *backend.Client, logger *slog.Logger, isDev bool) error {
	handlers := NewHandlers(client, logger, isDev)

	router.Get("/hitl", handlers.QueuePage)
	router.Get("/hitl/updates", handlers.Updates)

	return nil
}
