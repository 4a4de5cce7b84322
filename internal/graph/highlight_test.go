package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownEventType(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		want      bool
	}{
		{"new source", EventNewSource, true},
		{"source removed", EventSourceRemoved, true},
		{"fault", EventFault, true},
		{"schema drift", EventSchemaDrift, true},
		{"unknown", "rebalance", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KnownEventType(tt.eventType))
		})
	}
}

func TestHighlighter_MarkAndExpire(t *testing.T) {
	h := NewHighlighter(0)
	require.Equal(t, DefaultHighlightTTL, h.TTL())

	// Inject a controllable clock.
	now := time.Unix(1000, 0)
	h.now = func() time.Time { return now }

	require.True(t, h.Mark(EventSchemaDrift, "b", "c"))

	active := h.Active()
	assert.True(t, active[EdgeKey{Source: "b", Target: "c"}])

	// Still active just inside the window.
	now = now.Add(DefaultHighlightTTL - time.Millisecond)
	assert.Len(t, h.Active(), 1)

	// Gone after the window elapses.
	now = now.Add(2 * time.Millisecond)
	assert.Empty(t, h.Active())
}

func TestHighlighter_RejectsUnknownType(t *testing.T) {
	h := NewHighlighter(time.Second)

	assert.False(t, h.Mark("not_a_thing", "a", "b"))
	assert.Empty(t, h.Active())
}

func TestHighlighter_RemarkExtendsWindow(t *testing.T) {
	h := NewHighlighter(time.Second)
	now := time.Unix(0, 0)
	h.now = func() time.Time { return now }

	h.Mark(EventFault, "a", "b")
	now = now.Add(900 * time.Millisecond)
	h.Mark(EventFault, "a", "b")
	now = now.Add(900 * time.Millisecond)

	assert.Len(t, h.Active(), 1)
}
