package graph

import (
	"sync"
	"time"
)

// Graph event types the platform pushes at the dashboard. A recognized
// event marks the matching node/edge pair as animating for a fixed window.
const (
	EventNewSource     = "new_source"
	EventSourceRemoved = "source_removed"
	EventFault         = "fault"
	EventSchemaDrift   = "schema_drift"
)

// DefaultHighlightTTL is how long an edge stays in the animating state.
const DefaultHighlightTTL = 2 * time.Second

// KnownEventType reports whether t is one of the recognized graph
// event types. Unknown types are ignored entirely.
func KnownEventType(t string) bool {
	switch t {
	case EventNewSource, EventSourceRemoved, EventFault, EventSchemaDrift:
		return true
	}
	return false
}

// EdgeKey identifies an edge by its endpoint ids.
type EdgeKey struct {
	Source string
	Target string
}

// Highlighter tracks time-boxed "animating" marks on edges. Marks are
// transient: they expire on read after the TTL and never touch the
// underlying snapshot.
type Highlighter struct {
	mu     sync.Mutex
	ttl    time.Duration
	active map[EdgeKey]time.Time
	now    func() time.Time
}

// NewHighlighter creates a Highlighter with the given TTL. A zero ttl
// uses DefaultHighlightTTL.
func NewHighlighter(ttl time.Duration) *Highlighter {
	if ttl <= 0 {
		ttl = DefaultHighlightTTL
	}
	return &Highlighter{
		ttl:    ttl,
		active: make(map[EdgeKey]time.Time),
		now:    time.Now,
	}
}

// Mark flags the source/target pair as animating. Returns false if the
// event type is not recognized.
func (h *Highlighter) Mark(eventType, sourceID, targetID string) bool {
	if !KnownEventType(eventType) {
		return false
	}
	h.mu.Lock()
	h.active[EdgeKey{Source: sourceID, Target: targetID}] = h.now().Add(h.ttl)
	h.mu.Unlock()
	return true
}

// Active returns the currently animating edge keys, dropping expired
// marks as a side effect.
func (h *Highlighter) Active() map[EdgeKey]bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	out := make(map[EdgeKey]bool, len(h.active))
	for k, expiry := range h.active {
		if now.After(expiry) {
			delete(h.active, k)
			continue
		}
		out[k] = true
	}
	return out
}

// TTL returns the configured highlight duration.
func (h *Highlighter) TTL() time.Duration {
	return h.ttl
}
