// Package backend is the HTTP client for the AutonomOS platform
// endpoints the dashboard consumes. It performs no retries: a failed
// state fetch leaves the previous snapshot in place.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/ilyacantor/autonomos-dash/internal/graph"
)

// ErrStalePreview is returned when a preview response arrives after a
// newer preview request was issued. Callers drop the stale payload so
// the last click wins, not the last network response.
var ErrStalePreview = errors.New("backend: preview response superseded")

// Client talks to the platform REST API.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger

	previewSeq atomic.Uint64
}

// New creates a Client for the given base URL. A nil httpc uses
// http.DefaultClient.
func New(baseURL string, httpc *http.Client, logger *slog.Logger) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
		logger:  logger,
	}
}

// FetchState retrieves the full DCL graph state.
func (c *Client) FetchState(ctx context.Context) (graph.State, error) {
	var state graph.State
	if err := c.getJSON(ctx, c.baseURL+"/state", &state); err != nil {
		return graph.State{}, fmt.Errorf("fetch state: %w", err)
	}
	return state, nil
}

// FetchPreview retrieves the preview payload for a node. Requests are
// sequenced: if a newer preview request starts before this one's
// response is decoded, the result is discarded with ErrStalePreview.
func (c *Client) FetchPreview(ctx context.Context, nodeID string) (json.RawMessage, error) {
	seq := c.previewSeq.Add(1)

	u := c.baseURL + "/preview?node=" + url.QueryEscape(nodeID)
	var payload json.RawMessage
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("fetch preview for %s: %w", nodeID, err)
	}

	if c.previewSeq.Load() != seq {
		c.logger.Debug("dropping stale preview response", "node", nodeID)
		return nil, ErrStalePreview
	}
	return payload, nil
}

// Connections retrieves the source connection list for the connections
// page.
func (c *Client) Connections(ctx context.Context) ([]Connection, error) {
	var conns []Connection
	if err := c.getJSON(ctx, c.baseURL+"/connections", &conns); err != nil {
		return nil, fmt.Errorf("fetch connections: %w", err)
	}
	return conns, nil
}

// HITLQueue retrieves the pending human-in-the-loop review items.
func (c *Client) HITLQueue(ctx context.Context) ([]ReviewItem, error) {
	var items []ReviewItem
	if err := c.getJSON(ctx, c.baseURL+"/hitl/queue", &items); err != nil {
		return nil, fmt.Errorf("fetch hitl queue: %w", err)
	}
	return items, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: status %d: %s", u, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", u, err)
	}
	return nil
}
