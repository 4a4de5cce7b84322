package sankey

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/ilyacantor/autonomos-dash/internal/backend"
	"github.com/ilyacantor/autonomos-dash/internal/bus"
	"github.com/ilyacantor/autonomos-dash/internal/config"
	"github.com/ilyacantor/autonomos-dash/internal/graph"
	"github.com/ilyacantor/autonomos-dash/internal/layout"
	"github.com/ilyacantor/autonomos-dash/internal/render"
	"github.com/ilyacantor/autonomos-dash/internal/ui/features/common"
	"github.com/ilyacantor/autonomos-dash/internal/ui/feed"
)

// PreviewPath is the click-action prefix baked into node rectangles.
const PreviewPath = "/sankey/preview"

// revertSlack pads the highlight TTL so the reverting render runs just
// after the window closes.
const revertSlack = 50 * time.Millisecond

// Handlers provides HTTP handlers for the sankey feature.
type Handlers struct {
	feed       *feed.StateFeed
	client     *backend.Client
	bus        *bus.Bus
	highlights *graph.Highlighter
	sessions   sessions.Store
	canvas     config.CanvasConfig
	logger     *slog.Logger
	isDev      bool
}

// NewHandlers creates a Handlers instance.
func NewHandlers(
	f *feed.StateFeed,
	client *backend.Client,
	b *bus.Bus,
	highlights *graph.Highlighter,
	sessionStore sessions.Store,
	canvas config.CanvasConfig,
	logger *slog.Logger,
	isDev bool,
) *Handlers {
	return &Handlers{
		feed:       f,
		client:     client,
		bus:        b,
		highlights: highlights,
		sessions:   sessionStore,
		canvas:     canvas,
		logger:     logger,
		isDev:      isDev,
	}
}

// SankeyPage renders the page shell with an empty canvas; the updates
// stream patches the real drawing in.
func (h *Handlers) SankeyPage(w http.ResponseWriter, r *http.Request) {
	card := sankeyCard(int(h.canvas.Width), int(h.canvas.Height), h.renderOrEmpty(ViewSignals{}))
	shell := common.Shell{Title: "Data Flow", CurrentPath: "/sankey", Dev: h.isDev}
	if err := common.Page(shell, card).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Updates streams SVG re-renders: on snapshot replacement, on graph
// events (highlight on, then off after the window), and once on open.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	var signals ViewSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		h.logger.Debug("sankey signals unreadable, using defaults", "error", err)
	}

	sse := datastar.NewSSE(w, r)
	h.patch(sse, signals)

	sub := h.bus.Subscribe()
	defer h.bus.Unsubscribe(sub)

	var revert <-chan time.Time
	for {
		select {
		case <-r.Context().Done():
			return

		case ev := <-sub:
			switch ev := ev.(type) {
			case bus.SnapshotUpdated:
				h.patch(sse, signals)
			case bus.GraphEvent:
				if !h.highlights.Mark(ev.Type, ev.SourceID, ev.TargetID) {
					continue
				}
				h.patch(sse, signals)
				revert = time.After(h.highlights.TTL() + revertSlack)
			}

		case <-revert:
			revert = nil
			h.patch(sse, signals)
		}
	}
}

// Preview fetches the node preview and republishes it for other
// components; the payload is not rendered here. Stale responses from
// superseded clicks are dropped.
func (h *Handlers) Preview(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "id")
	sse := datastar.NewSSE(w, r)

	payload, err := h.client.FetchPreview(r.Context(), nodeID)
	if errors.Is(err, backend.ErrStalePreview) {
		return
	}
	if err != nil {
		h.logger.Error("preview fetch failed", "node", nodeID, "error", err)
		_ = sse.ConsoleError(err)
		return
	}

	h.bus.Publish(bus.PreviewReady{NodeID: nodeID, Payload: payload})
	_ = sse.ExecuteScript(fmt.Sprintf(
		"window.dispatchEvent(new CustomEvent('sankey-node-click', {detail: %s}))", string(payload)))
}

func (h *Handlers) patch(sse *datastar.ServerSentEventGenerator, signals ViewSignals) {
	svg, err := h.renderSVG(signals)
	if err != nil {
		// Canvas not measured yet; wait for the next trigger.
		return
	}
	if err := sse.PatchElements(svg); err != nil {
		h.logger.Debug("sankey patch failed", "error", err)
	}
}

func (h *Handlers) renderSVG(signals ViewSignals) (string, error) {
	snap := h.feed.Snapshot()
	if snap == nil {
		snap = graph.Normalize(graph.RawGraph{})
	}

	width, height := signals.Width, signals.Height
	if width <= 0 {
		width = h.canvas.Width
	}
	if height <= 0 {
		height = h.canvas.Height
	}

	l, err := layout.Compute(snap, width, height)
	if err != nil {
		return "", err
	}
	return render.SVG(l, render.Options{
		Animating:   h.highlights.Active(),
		PreviewPath: PreviewPath,
	}), nil
}

// renderOrEmpty is the initial page body; a canvas that cannot be laid
// out yet renders as an empty placeholder.
func (h *Handlers) renderOrEmpty(signals ViewSignals) string {
	svg, err := h.renderSVG(signals)
	if err != nil {
		return `<svg id="sankey-canvas" xmlns="http://www.w3.org/2000/svg"></svg>`
	}
	return svg
}
