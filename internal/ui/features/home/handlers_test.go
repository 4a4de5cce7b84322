package home

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyacantor/autonomos-dash/internal/graph"
	"github.com/ilyacantor/autonomos-dash/internal/testutil"
	"github.com/ilyacantor/autonomos-dash/internal/ui/features"
)

func summaryState() graph.State {
	return graph.State{Graph: graph.RawGraph{
		Nodes: []graph.Node{
			{ID: "sf", Label: "Salesforce", Type: "source_parent"},
			{ID: "sf-acct", Label: "Accounts", Type: "source", ParentID: "sf"},
			{ID: "customer", Label: "Customer", Type: "ontology"},
			{ID: "churn", Label: "Churn Agent", Type: "agent"},
		},
		Edges: []graph.Edge{
			{Source: "sf", Target: "sf-acct", EdgeType: "hierarchy"},
			{Source: "sf-acct", Target: "customer", EdgeType: "dataflow"},
			{Source: "customer", Target: "churn", EdgeType: "dataflow"},
		},
	}}
}

func runUpdates(t *testing.T, h *Handlers) string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/updates", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		h.Updates(rec, req)
		close(done)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Updates did not exit on context cancel")
	}
	return rec.Body.String()
}

func TestHomePage(t *testing.T) {
	fixture := features.SetupTestFixture(t, summaryState())
	h := NewHandlers(fixture.Feed, fixture.Bus, testutil.NewTestLogger(t), false)

	rec := httptest.NewRecorder()
	h.HomePage(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Overview - AutonomOS</title>")
}

func TestUpdates_SummaryCounts(t *testing.T) {
	fixture := features.SetupTestFixture(t, summaryState())
	h := NewHandlers(fixture.Feed, fixture.Bus, testutil.NewTestLogger(t), false)

	body := runUpdates(t, h)

	assert.Contains(t, body, `<span class="stat-value">1</span> <span class="stat-label">Source Systems</span>`)
	assert.Contains(t, body, `<span class="stat-value">1</span> <span class="stat-label">Sources</span>`)
	assert.Contains(t, body, `<span class="stat-value">1</span> <span class="stat-label">Ontology</span>`)
	assert.Contains(t, body, `<span class="stat-value">1</span> <span class="stat-label">Agents</span>`)
	assert.Contains(t, body, `<span class="stat-value">1</span> <span class="stat-label">hierarchy edges</span>`)
	assert.Contains(t, body, `<span class="stat-value">2</span> <span class="stat-label">dataflow edges</span>`)
}

func TestUpdates_EmptySnapshotPlaceholder(t *testing.T) {
	fixture := features.SetupTestFixture(t, graph.State{})
	h := NewHandlers(fixture.Feed, fixture.Bus, testutil.NewTestLogger(t), false)

	body := runUpdates(t, h)

	assert.Contains(t, body, "No data available")
}

func TestUpdates_DevModeBadge(t *testing.T) {
	state := summaryState()
	state.DevMode = true
	fixture := features.SetupTestFixture(t, state)
	h := NewHandlers(fixture.Feed, fixture.Bus, testutil.NewTestLogger(t), false)

	body := runUpdates(t, h)

	assert.Contains(t, body, "dev mode")
}
