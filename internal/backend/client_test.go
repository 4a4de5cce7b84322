package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyacantor/autonomos-dash/internal/graph"
	"github.com/ilyacantor/autonomos-dash/internal/testutil"
)

func TestClient_FetchState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/state", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"graph": {
				"nodes": [{"id":"a","label":"A","type":"source"}],
				"edges": []
			},
			"dev_mode": true
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), testutil.NewTestLogger(t))
	state, err := c.FetchState(context.Background())
	require.NoError(t, err)

	assert.True(t, state.DevMode)
	require.Len(t, state.Graph.Nodes, 1)
	assert.Equal(t, graph.TypeSource, state.Graph.Nodes[0].Type)
}

func TestClient_FetchState_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), testutil.NewTestLogger(t))
	_, err := c.FetchState(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_FetchState_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"graph": [`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), testutil.NewTestLogger(t))
	_, err := c.FetchState(context.Background())
	assert.Error(t, err)
}

func TestClient_FetchPreview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/preview", r.URL.Path)
		assert.Equal(t, "n1", r.URL.Query().Get("node"))
		_, _ = w.Write([]byte(`{"rows": 12}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), testutil.NewTestLogger(t))
	payload, err := c.FetchPreview(context.Background(), "n1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"rows": 12}`, string(payload))
}

func TestClient_FetchPreview_StaleResponseDropped(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("node") == "slow" {
			close(started)
			<-release
		}
		_, _ = w.Write([]byte(`{"node":"` + r.URL.Query().Get("node") + `"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), testutil.NewTestLogger(t))

	var wg sync.WaitGroup
	wg.Add(1)
	var slowErr error
	go func() {
		defer wg.Done()
		_, slowErr = c.FetchPreview(context.Background(), "slow")
	}()
	<-started

	// A newer click arrives while the first request is in flight.
	payload, err := c.FetchPreview(context.Background(), "fast")
	require.NoError(t, err)
	assert.JSONEq(t, `{"node":"fast"}`, string(payload))

	close(release)
	wg.Wait()
	assert.ErrorIs(t, slowErr, ErrStalePreview)
}

func TestClient_TrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/connections", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"c1","system":"salesforce","status":"active"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", srv.Client(), testutil.NewTestLogger(t))
	conns, err := c.Connections(context.Background())
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, "salesforce", conns[0].System)
}

func TestClient_HITLQueue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hitl/queue", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"r1","kind":"mapping","status":"pending"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), testutil.NewTestLogger(t))
	items, err := c.HITLQueue(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "pending", items[0].Status)
}
