// Package bus provides the in-process event bus the dashboard's
// components communicate over. It replaces ambient cross-component
// signalling with typed payloads published through a single instance
// owned by the composition root.
package bus

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Event is a marker for payloads carried on the bus.
type Event interface {
	isEvent()
}

// StateChanged signals that the platform's DCL state moved and the
// graph should be re-fetched.
type StateChanged struct{}

// GraphEvent is a platform-originated node/edge event that triggers a
// transient highlight.
type GraphEvent struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
}

// SnapshotUpdated signals that a new graph snapshot was stored and
// views should re-render.
type SnapshotUpdated struct{}

// PreviewReady republishes a node preview payload for any interested
// component. The sankey view itself does not render it.
type PreviewReady struct {
	NodeID  string          `json:"nodeId"`
	Payload json.RawMessage `json:"payload"`
}

func (StateChanged) isEvent()    {}
func (GraphEvent) isEvent()      {}
func (SnapshotUpdated) isEvent() {}
func (PreviewReady) isEvent()    {}

// NewGraphEvent builds a GraphEvent with a fresh id.
func NewGraphEvent(eventType, sourceID, targetID string) GraphEvent {
	return GraphEvent{
		ID:       uuid.NewString(),
		Type:     eventType,
		SourceID: sourceID,
		TargetID: targetID,
	}
}

// subscriberBuffer bounds how many undelivered events a slow subscriber
// can hold before publishes to it are dropped.
const subscriberBuffer = 16

// Bus broadcasts events to all subscribers. Publishing never blocks:
// a subscriber with a full channel misses the event and catches up on
// the next one.
type Bus struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[chan Event]struct{})}
}

// Subscribe returns a channel receiving all subsequent events. The
// caller must Unsubscribe when done to avoid leaking the channel.
func (b *Bus) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (b *Bus) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
	close(ch)
}

// Publish broadcasts ev to every subscriber without blocking.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// Subscriber is backed up, skip.
		}
	}
}
