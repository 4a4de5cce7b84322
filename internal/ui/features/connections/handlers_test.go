package connections

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyacantor/autonomos-dash/internal/backend"
	"github.com/ilyacantor/autonomos-dash/internal/graph"
	"github.com/ilyacantor/autonomos-dash/internal/testutil"
	"github.com/ilyacantor/autonomos-dash/internal/ui/features"
)

func setupHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()
	fixture := features.SetupTestFixture(t, graph.State{})
	fixture.Platform.Connections = []backend.Connection{
		{ID: "c1", Name: "Billing CRM", System: "salesforce", Status: "active", LastSync: "2026-08-30T12:00:00Z"},
		{ID: "c2", Name: "HR Feed", System: "workday", Status: "error", LastSync: "2026-08-29T08:00:00Z"},
	}
	h := NewHandlers(fixture.Client, fixture.SessionStore, testutil.NewTestLogger(t), false)
	return h, fixture
}

func TestConnectionsPage(t *testing.T) {
	h, _ := setupHandlers(t)

	rec := httptest.NewRecorder()
	h.ConnectionsPage(rec, httptest.NewRequest(http.MethodGet, "/connections", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Connections - AutonomOS</title>")
	assert.Contains(t, body, `id="connections-table"`)
	assert.Contains(t, body, "data-bind-search")
}

func TestUpdates_RendersAllRows(t *testing.T) {
	h, _ := setupHandlers(t)

	rec := httptest.NewRecorder()
	h.Updates(rec, httptest.NewRequest(http.MethodGet, "/connections/updates", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "Billing CRM")
	assert.Contains(t, body, "HR Feed")
	assert.Contains(t, body, "status-active")
	assert.Contains(t, body, "status-error")
}

func TestFilter(t *testing.T) {
	conns := []backend.Connection{
		{ID: "c1", Name: "Billing CRM", System: "salesforce"},
		{ID: "c2", Name: "HR Feed", System: "workday"},
	}

	tests := []struct {
		name   string
		search string
		want   int
	}{
		{"empty returns all", "", 2},
		{"matches name", "billing", 1},
		{"matches system", "workday", 1},
		{"matches id", "c2", 1},
		{"no match", "oracle", 0},
		{"whitespace trimmed", "  billing  ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, filter(conns, tt.search), tt.want)
		})
	}
}

func TestUpdates_FailureShowsRetryBanner(t *testing.T) {
	fixture := features.SetupTestFixture(t, graph.State{})
	// Point the handler at a dead server to force a fetch error.
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer dead.Close()
	client := backend.New(dead.URL, dead.Client(), testutil.NewTestLogger(t))
	h := NewHandlers(client, fixture.SessionStore, testutil.NewTestLogger(t), false)

	rec := httptest.NewRecorder()
	h.Updates(rec, httptest.NewRequest(http.MethodGet, "/connections/updates", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "error-banner")
	assert.Contains(t, body, "Retry")
}
