// Package ui provides the web dashboard server for the AutonomOS
// data connectivity layer.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/ilyacantor/autonomos-dash/internal/backend"
	"github.com/ilyacantor/autonomos-dash/internal/bus"
	"github.com/ilyacantor/autonomos-dash/internal/config"
	"github.com/ilyacantor/autonomos-dash/internal/graph"
	"github.com/ilyacantor/autonomos-dash/internal/ui/feed"
	"github.com/ilyacantor/autonomos-dash/internal/ui/resources"
	"github.com/ilyacantor/autonomos-dash/internal/ui/router"
)

// Server is the main dashboard server.
type Server struct {
	client       *backend.Client
	bus          *bus.Bus
	feed         *feed.StateFeed
	highlights   *graph.Highlighter
	sessionStore *sessions.CookieStore
	port         int
	canvas       config.CanvasConfig
	dev          bool
	logger       *slog.Logger
	reload       chan struct{}
}

// Config holds configuration for the dashboard server.
type Config struct {
	Client        *backend.Client
	Port          int
	SessionSecret string
	Debounce      time.Duration
	Canvas        config.CanvasConfig
	Dev           bool
	Logger        *slog.Logger
}

// NewServer creates a new dashboard server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	b := bus.New()

	s := &Server{
		client:       cfg.Client,
		bus:          b,
		feed:         feed.NewStateFeed(cfg.Client, b, cfg.Logger, cfg.Debounce),
		highlights:   graph.NewHighlighter(graph.DefaultHighlightTTL),
		sessionStore: sessionStore,
		port:         cfg.Port,
		canvas:       cfg.Canvas,
		dev:          cfg.Dev,
		logger:       cfg.Logger,
	}
	if s.dev {
		s.reload = make(chan struct{}, 1)
	}
	return s
}

// Bus returns the server's event bus.
func (s *Server) Bus() *bus.Bus {
	return s.bus
}

// Serve starts the dashboard server and blocks until the context is
// cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting dashboard server", "addr", fmt.Sprintf("http://localhost:%d", s.port), "dev", s.dev)

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	err := router.SetupRoutes(r, router.Deps{
		Feed:         s.feed,
		Client:       s.client,
		Bus:          s.bus,
		Highlights:   s.highlights,
		SessionStore: s.sessionStore,
		Canvas:       s.canvas,
		Logger:       s.logger,
		IsDev:        s.dev,
		Reload:       s.reload,
	})
	if err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Keep the snapshot current behind the handlers.
	eg.Go(func() error {
		return s.feed.Run(egctx)
	})

	// Reload browsers when static assets change under dev mode.
	if s.dev {
		eg.Go(func() error {
			return s.watchAssets(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down dashboard server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// watchAssets watches the static directory and pokes the hot-reload
// channel on changes.
func (s *Server) watchAssets(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(resources.StaticDirectoryPath); err != nil {
		s.logger.Error("failed to watch static directory", "error", err)
		// Don't fail - continue without watching
		<-ctx.Done()
		return nil
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			ext := filepath.Ext(event.Name)
			if ext != ".css" && ext != ".js" {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("asset changed, reloading", "file", event.Name)
				select {
				case s.reload <- struct{}{}:
				default:
				}
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}
