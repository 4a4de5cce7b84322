// Package connections lists the platform's source connections with a
// server-side search filter.
package connections

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/ilyacantor/autonomos-dash/internal/backend"
	"github.com/ilyacantor/autonomos-dash/internal/ui/features/common"
)

const (
	sessionName = "autonomos-dash"
	searchKey   = "connections_search"
)

// SearchSignals carries the filter text typed in the search box.
type SearchSignals struct {
	Search string `json:"search"`
}

// Handlers provides HTTP handlers for the connections feature.
type Handlers struct {
	client   *backend.Client
	sessions sessions.Store
	logger   *slog.Logger
	isDev    bool
}

// NewHandlers creates a Handlers instance.
func NewHandlers(client *backend.Client, sessionStore sessions.Store, logger *slog.Logger, isDev bool) *Handlers {
	return &Handlers{client: client, sessions: sessionStore, logger: logger, isDev: isDev}
}

// ConnectionsPage renders the page shell. The last search filter is
// restored from the cookie session.
func (h *Handlers) ConnectionsPage(w http.ResponseWriter, r *http.Request) {
	search := h.savedSearch(r)

	shell := common.Shell{Title: "Connections", CurrentPath: "/connections", Dev: h.isDev}
	if err := common.Page(shell, searchCard(search)).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Updates fetches the connection list, applies the filter, and patches
// the table. Failures render a retry banner, unlike the graph view.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	var signals SearchSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		signals.Search = h.savedSearch(r)
	}

	sse := datastar.NewSSE(w, r)

	conns, err := h.client.Connections(r.Context())
	if err != nil {
		h.logger.Error("connections fetch failed", "error", err)
		_ = sse.PatchElementTempl(common.RetryBanner("connections-table", "Failed to load connections.", "/connections/updates"))
		return
	}

	h.saveSearch(w, r, signals.Search)

	filtered := filter(conns, signals.Search)
	_ = sse.PatchElementTempl(connectionsView(filtered))
}

func filter(conns []backend.Connection, search string) []backend.Connection {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return conns
	}
	var out []backend.Connection
	for _, c := range conns {
		if strings.Contains(strings.ToLower(c.Name), search) ||
			strings.Contains(strings.ToLower(c.System), search) ||
			strings.Contains(strings.ToLower(c.ID), search) {
			out = append(out, c)
		}
	}
	return out
}

func connectionRows(conns []backend.Connection) [][]common.Cell {
	rows := make([][]common.Cell, 0, len(conns))
	for _, c := range conns {
		rows = append(rows, []common.Cell{
			{Text: c.ID},
			{Text: c.Name},
			{Text: c.System},
			{Text: c.Status, Class: common.StatusClass(c.Status)},
			{Text: c.LastSync},
		})
	}
	return rows
}

func (h *Handlers) savedSearch(r *http.Request) string {
	session, err := h.sessions.Get(r, sessionName)
	if err != nil {
		return ""
	}
	if s, ok := session.Values[searchKey].(string); ok {
		return s
	}
	return ""
}

func (h *Handlers) saveSearch(w http.ResponseWriter, r *http.Request, search string) {
	session, err := h.sessions.Get(r, sessionName)
	if err != nil {
		return
	}
	session.Values[searchKey] = search
	_ = session.Save(r, w)
}
