package sankey

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ilyacantor/autonomos-dash/internal/backend"
	"github.com/ilyacantor/autonomos-dash/internal/bus"
	"github.com/ilyacantor/autonomos-dash/internal/config"
	"github.com/ilyacantor/autonomos-dash/internal/graph"
	"github.com/ilyacantor/autonomos-dash/internal/ui/feed"
)

// SetupRoutes registers the sankey feature routes.
func SetupRoutes(
	router chi.Router,
	f *feed.StateFeed,
	client *backend.Client,
	b *bus.Bus,
	highlights *graph.Highlighter,
	sessionStore sessions.Store,
	canvas config.CanvasConfig,
	logger *slog.Logger,
	isDev bool,
) error {
	handlers := NewHandlers(f, client, b, highlights, sessionStore, canvas, logger, isDev)

	router.Get("/sankey", handlers.SankeyPage)
	router.Get("/sankey/updates", handlers.Updates)
	router.Get("/sankey/preview/{id}", handlers.Preview)

	return nil
}
