package connections

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ilyacantor/autonomos-dash/internal/backend"
)

// SetupRoutes registers the connections feature routes.
func SetupRoutes(
	router chi.Router,
	client *backend.Client,
	sessionStore sessions.Store,
	logger *slog.Logger,
	isDev bool,
) error {
	handlers := NewHandlers(client, sessionStore, logger, isDev)

	router.Get("/connections", handlers.ConnectionsPage)
	router.Get("/connections/updates", handlers.Updates)

	return nil
}
