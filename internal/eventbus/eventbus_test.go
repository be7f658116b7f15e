package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan PageChangedEvent, 1)
	b.Subscribe(EventPageChanged, func(e DomainEvent) {
		got <- e.(PageChangedEvent)
	})
	b.Publish(PageChangedEvent{Index: 3, Direction: 1})

	select {
	case e := <-got:
		assert.Equal(t, 3, e.Index)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	defer b.Close()

	var first, second atomic.Int32
	unsub := b.Subscribe(EventDeckChanged, func(DomainEvent) { first.Add(1) })
	b.Subscribe(EventDeckChanged, func(DomainEvent) { second.Add(1) })
	unsub()

	b.Publish(DeckChangedEvent{Paths: []string{"a.md"}})
	require.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, first.Load())
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	b := New()
	defer b.Close()

	var ok atomic.Bool
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(DomainEvent) { ok.Store(true) })
	b.Publish(ErrorEvent{Message: "x"})
	require.Eventually(t, ok.Load, time.Second, 5*time.Millisecond)
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()
	var calls atomic.Int32
	b.Subscribe(EventConfigSaved, func(DomainEvent) { calls.Add(1) })
	b.Close()
	b.Close()
	b.Publish(ConfigSavedEvent{})
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, calls.Load())
}
