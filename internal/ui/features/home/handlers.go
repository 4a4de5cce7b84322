// Package home is the landing page: a summary of the current graph
// snapshot.
package home

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/ilyacantor/autonomos-dash/internal/bus"
	"github.com/ilyacantor/autonomos-dash/internal/graph"
	"github.com/ilyacantor/autonomos-dash/internal/ui/features/common"
	"github.com/ilyacantor/autonomos-dash/internal/ui/feed"
)

// laneLabels name the four bands in display order.
var laneLabels = [graph.LaneCount]string{"Source Systems", "Sources", "Ontology", "Agents"}

// Handlers provides HTTP handlers for the overview feature.
type Handlers struct {
	feed   *feed.StateFeed
	bus    *bus.Bus
	logger *slog.Logger
	isDev  bool
}

// NewHandlers creates a Handlers instance.
func NewHandlers(f *feed.StateFeed, b *bus.Bus, logger *slog.Logger, isDev bool) *Handlers {
	return &Handlers{feed: f, bus: b, logger: logger, isDev: isDev}
}

// HomePage renders the page shell.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	shell := common.Shell{Title: "Overview", CurrentPath: "/", Dev: h.isDev}
	if err := common.Page(shell, overviewCard()).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Updates streams the summary card. It patches once per snapshot
// replacement so the numbers track the live graph.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	if err := sse.PatchElementTempl(h.summary()); err != nil {
		return
	}

	sub := h.bus.Subscribe()
	defer h.bus.Unsubscribe(sub)

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-sub:
			if _, ok := ev.(bus.SnapshotUpdated); !ok {
				continue
			}
			if err := sse.PatchElementTempl(h.summary()); err != nil {
				return
			}
		}
	}
}

func (h *Handlers) summary() templ.Component {
	snap := h.feed.Snapshot()
	if snap == nil || snap.Empty() {
		return overviewEmpty()
	}
	hierarchy, dataflow := snap.EdgeKindCounts()
	return overviewView(snap.LaneCounts(), hierarchy, dataflow, h.feed.DevMode())
}
