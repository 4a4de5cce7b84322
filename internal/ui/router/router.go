// Package router sets up HTTP routes for the dashboard server.
package router

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/ilyacantor/autonomos-dash/internal/backend"
	"github.com/ilyacantor/autonomos-dash/internal/bus"
	"github.com/ilyacantor/autonomos-dash/internal/config"
	"github.com/ilyacantor/autonomos-dash/internal/graph"
	connectionsFeature "github.com/ilyacantor/autonomos-dash/internal/ui/features/connections"
	eventsFeature "github.com/ilyacantor/autonomos-dash/internal/ui/features/events"
	hitlFeature "github.com/ilyacantor/autonomos-dash/internal/ui/features/hitl"
	homeFeature "github.com/ilyacantor/autonomos-dash/internal/ui/features/home"
	sankeyFeature "github.com/ilyacantor/autonomos-dash/internal/ui/features/sankey"
	"github.com/ilyacantor/autonomos-dash/internal/ui/feed"
	"github.com/ilyacantor/autonomos-dash/internal/ui/resources"
)

// Deps carries everything the feature routes need.
type Deps struct {
	Feed         *feed.StateFeed
	Client       *backend.Client
	Bus          *bus.Bus
	Highlights   *graph.Highlighter
	SessionStore *sessions.CookieStore
	Canvas       config.CanvasConfig
	Logger       *slog.Logger
	IsDev        bool

	// Reload carries dev hot-reload pokes from the asset watcher. Left
	// nil outside dev mode.
	Reload chan struct{}
}

// SetupRoutes configures all routes for the dashboard server.
func SetupRoutes(router chi.Router, d Deps) error {
	// Hot reload endpoint for dev mode
	if d.IsDev {
		if d.Reload == nil {
			d.Reload = make(chan struct{}, 1)
		}
		setupReload(router, d.Reload)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	if err := homeFeature.SetupRoutes(router, d.Feed, d.Bus, d.Logger, d.IsDev); err != nil {
		return err
	}

	if err := sankeyFeature.SetupRoutes(router, d.Feed, d.Client, d.Bus, d.Highlights, d.SessionStore, d.Canvas, d.Logger, d.IsDev); err != nil {
		return err
	}

	if err := connectionsFeature.SetupRoutes(router, d.Client, d.SessionStore, d.Logger, d.IsDev); err != nil {
		return err
	}

	if err := hitlFeature.SetupRoutes(router, d.Client, d.Logger, d.IsDev); err != nil {
		return err
	}

	if err := eventsFeature.SetupRoutes(router, d.Bus, d.Logger); err != nil {
		return err
	}

	return nil
}

func setupReload(router chi.Router, reloadChan chan struct{}) {
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
