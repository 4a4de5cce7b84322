package bus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_SubscribeUnsubscribe(t *testing.T) {
	b := New()

	ch := b.Subscribe()
	require.NotNil(t, ch)

	b.mu.RLock()
	assert.Len(t, b.subs, 1)
	b.mu.RUnlock()

	b.Unsubscribe(ch)

	b.mu.RLock()
	assert.Len(t, b.subs, 0)
	b.mu.RUnlock()
}

func TestBus_PublishReachesAllSubscribers(t *testing.T) {
	b := New()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	defer b.Unsubscribe(ch1)
	defer b.Unsubscribe(ch2)

	want := NewGraphEvent("fault", "a", "b")
	b.Publish(want)

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			ge, ok := ev.(GraphEvent)
			require.True(t, ok)
			assert.Equal(t, want, ge)
		case <-time.After(100 * time.Millisecond):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestBus_PublishNonBlocking(t *testing.T) {
	b := New()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Fill the subscriber buffer.
	for i := 0; i < subscriberBuffer; i++ {
		b.Publish(StateChanged{})
	}

	done := make(chan bool)
	go func() {
		b.Publish(StateChanged{})
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Error("Publish blocked on full subscriber")
	}
}

func TestBus_Concurrent(t *testing.T) {
	b := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := b.Subscribe()
			b.Publish(SnapshotUpdated{})
			b.Unsubscribe(ch)
		}()
	}
	wg.Wait()

	b.mu.RLock()
	assert.Len(t, b.subs, 0)
	b.mu.RUnlock()
}

func TestNewGraphEvent_AssignsID(t *testing.T) {
	ev := NewGraphEvent("schema_drift", "s", "o")
	assert.NotEmpty(t, ev.ID)
	assert.NotEqual(t, ev.ID, NewGraphEvent("schema_drift", "s", "o").ID)
}
