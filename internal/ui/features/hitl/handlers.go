// Package hitl shows the human-in-the-loop review queue.
package hitl

import (
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/ilyacantor/autonomos-dash/internal/backend"
	"github.com/ilyacantor/autonomos-dash/internal/ui/features/common"
)

// Handlers provides HTTP handlers for the review queue feature.
type Handlers struct {
	client *backend.Client
	logger *slog.Logger
	isDev  bool
}

// NewHandlers creates a Handlers instance.
func NewHandlers(client *backend.Client, logger *slog.Logger, isDev bool) *Handlers {
	return &Handlers{client: client, logger: logger, isDev: isDev}
}

// QueuePage renders the page shell.
func (h *Handlers) QueuePage(w http.ResponseWriter, r *http.Request) {
	shell := common.Shell{Title: "Review Queue", CurrentPath: "/hitl", Dev: h.isDev}
	if err := common.Page(shell, queueCard()).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Updates fetches the queue and patches the table, with a retry banner
// on failure.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	items, err := h.client.HITLQueue(r.Context())
	if err != nil {
		h.logger.Error("hitl queue fetch failed", "error", err)
		_ = sse.PatchElementTempl(common.RetryBanner("hitl-queue", "Failed to load review queue.", "/hitl/updates"))
		return
	}

	pending := 0
	for _, item := range items {
		if item.Status == "pending" {
			pending++
		}
	}

	rows := make([][]common.Cell, 0, len(items))
	for _, item := range items {
		rows = append(rows, []common.Cell{
			{Text: item.ID},
			{Text: item.Kind},
			{Text: item.Subject},
			{Text: item.Status, Class: common.StatusClass(item.Status)},
			{Text: item.CreatedAt},
		})
	}

	_ = sse.PatchElementTempl(queueView(pending, len(items), rows))
}
