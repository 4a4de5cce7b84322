// Package feed owns the current graph snapshot: it fetches platform
// state on start and on change events, and announces replacements on
// the bus.
package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ilyacantor/autonomos-dash/internal/backend"
	"github.com/ilyacantor/autonomos-dash/internal/bus"
	"github.com/ilyacantor/autonomos-dash/internal/graph"
)

// StateFeed fetches platform state and holds the current normalized
// snapshot. It is the only writer; feature handlers read through
// Snapshot. Fetch failures keep the previous snapshot in place.
type StateFeed struct {
	client   *backend.Client
	bus      *bus.Bus
	logger   *slog.Logger
	debounce time.Duration

	mu      sync.RWMutex
	snap    *graph.Snapshot
	devMode bool
}

// NewStateFeed creates a feed. debounce bounds how often bursts of
// state-changed events trigger a re-fetch.
func NewStateFeed(client *backend.Client, b *bus.Bus, logger *slog.Logger, debounce time.Duration) *StateFeed {
	if debounce <= 0 {
		debounce = 150 * time.Millisecond
	}
	return &StateFeed{
		client:   client,
		bus:      b,
		logger:   logger,
		debounce: debounce,
	}
}

// Snapshot returns the current snapshot, or nil before the first
// successful fetch.
func (f *StateFeed) Snapshot() *graph.Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snap
}

// DevMode reports the dev_mode flag from the last successful fetch.
func (f *StateFeed) DevMode() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.devMode
}

// Refresh fetches, normalizes, and atomically replaces the snapshot,
// then announces the update on the bus. On error the previous snapshot
// stays visible; the error is logged only.
func (f *StateFeed) Refresh(ctx context.Context) error {
	state, err := f.client.FetchState(ctx)
	if err != nil {
		f.logger.Error("state fetch failed", "error", err)
		return err
	}

	snap := graph.Normalize(state.Graph)

	f.mu.Lock()
	f.snap = snap
	f.devMode = state.DevMode
	f.mu.Unlock()

	f.logger.Debug("snapshot replaced", "nodes", len(snap.Nodes), "edges", len(snap.Edges))
	f.bus.Publish(bus.SnapshotUpdated{})
	return nil
}

// Run fetches once, then re-fetches on StateChanged events until the
// context is cancelled. Bursts are collapsed by the debounce window.
func (f *StateFeed) Run(ctx context.Context) error {
	_ = f.Refresh(ctx)

	sub := f.bus.Subscribe()
	defer f.bus.Unsubscribe(sub)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-sub:
			if _, ok := ev.(bus.StateChanged); !ok {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(f.debounce, func() {
				_ = f.Refresh(ctx)
			})
		}
	}
}
