// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/ilyacantor/autonomos-dash/internal/backend"
	"github.com/ilyacantor/autonomos-dash/internal/bus"
	"github.com/ilyacantor/autonomos-dash/internal/config"
	"github.com/ilyacantor/autonomos-dash/internal/graph"
	"github.com/ilyacantor/autonomos-dash/internal/testutil"
	"github.com/ilyacantor/autonomos-dash/internal/ui/feed"
)

// FakePlatform is a stub AutonomOS backend serving canned responses.
type FakePlatform struct {
	mu sync.Mutex

	State       graph.State
	StateErr    bool
	Preview     map[string]string
	Connections []backend.Connection
	Queue       []backend.ReviewItem
}

// SetState swaps the canned state payload.
func (p *FakePlatform) SetState(s graph.State) {
	p.mu.Lock()
	p.State = s
	p.mu.Unlock()
}

func (p *FakePlatform) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.StateErr {
			http.Error(w, "unavailable", http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(p.State)
	})
	mux.HandleFunc("/preview", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()
		body, ok := p.Preview[r.URL.Query().Get("node")]
		if !ok {
			http.Error(w, "unknown node", http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	})
	mux.HandleFunc("/connections", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()
		_ = json.NewEncoder(w).Encode(p.Connections)
	})
	mux.HandleFunc("/hitl/queue", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()
		_ = json.NewEncoder(w).Encode(p.Queue)
	})
	return mux
}

// TestFixture holds the dependencies feature handler tests need.
type TestFixture struct {
	Platform     *FakePlatform
	Client       *backend.Client
	Bus          *bus.Bus
	Feed         *feed.StateFeed
	Highlights   *graph.Highlighter
	SessionStore *sessions.CookieStore
	Canvas       config.CanvasConfig
}

// SetupTestFixture starts a fake platform and wires a feed around it.
// The feed is refreshed once so handlers see a snapshot.
func SetupTestFixture(t *testing.T, state graph.State) *TestFixture {
	t.Helper()

	platform := &FakePlatform{State: state, Preview: map[string]string{}}
	srv := httptest.NewServer(platform.handler())
	t.Cleanup(srv.Close)

	logger := testutil.NewTestLogger(t)
	b := bus.New()
	client := backend.New(srv.URL, srv.Client(), logger)
	f := feed.NewStateFeed(client, b, logger, 10*time.Millisecond)
	require.NoError(t, f.Refresh(context.Background()))

	return &TestFixture{
		Platform:     platform,
		Client:       client,
		Bus:          b,
		Feed:         f,
		Highlights:   graph.NewHighlighter(0),
		SessionStore: sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!")),
		Canvas:       config.CanvasConfig{Width: 1200, Height: 600},
	}
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
