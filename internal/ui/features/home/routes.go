package home

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/ilyacantor/autonomos-dash/internal/bus"
	"github.com/ilyacantor/autonomos-dash/internal/ui/feed"
)

// SetupRoutes registers the overview routes.
func SetupRoutes(router chi.Router, f *feed.StateFeed, b *bus.Bus, logger *slog.Logger, isDev bool) error {
	handlers := NewHandlers(f, b, logger, isDev)

	router.Get("/", handlers.HomePage)
	router.Get("/updates", handlers.Updates)

	return nil
}
