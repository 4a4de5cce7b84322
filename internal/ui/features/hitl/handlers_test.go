package hitl

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

func TestQueuePage(t *testing.T) {
	fixture := features.SetupTestFixture(t, graph.State{})
	h := NewHandlers(fixture.Client, testutil.NewTestLogger(t), false)

	rec := httptest.NewRecorder()
	h.QueuePage(rec, httptest.NewRequest(http.MethodGet, "/hitl", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Review Queue - AutonomOS</title>")
}

func TestUpdates_PendingCount(t *testing.T) {
	fixture := features.SetupTestFixture(t, graph.State{})
	fixture.Platform.Queue = []backend.ReviewItem{
		{ID: "r1", Kind: "mapping", Subject: "acct -> customer", Status: "pending"},
		{ID: "r2", Kind: "mapping", Subject: "ord -> order", Status: "approved"},
		{ID: "r3", Kind: "drift", Subject: "schema change", Status: "pending"},
	}
	h := NewHandlers(fixture.Client, testutil.NewTestLogger(t), false)

	rec := httptest.NewRecorder()
	h.Updates(rec, httptest.NewRequest(http.MethodGet, "/hitl/updates", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "2 pending of 3 total")
	assert.Contains(t, body, "acct -&gt; customer")
}

func TestUpdates_FailureShowsRetryBanner(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer dead.Close()
	client := backend.New(dead.URL, dead.Client(), testutil.NewTestLogger(t))
	h := NewHandlers(client, testutil.NewTestLogger(t), false)

	rec := httptest.NewRecorder()
	h.Updates(rec, httptest.NewRequest(http.MethodGet, "/hitl/updates", nil))

	assert.Contains(t, rec.Body.String(), "error-banner")
}
