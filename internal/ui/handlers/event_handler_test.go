package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pageloop/internal/domain"
	"pageloop/internal/eventbus"
	"pageloop/internal/ui/state"
)

func TestScanLifecycle(t *testing.T) {
	s := state.NewAppState("/deck")
	h := NewEventHandler(s)

	effect, cmd := h.HandleEvent(eventbus.ScanStartedEvent{Dir: "/deck"})
	assert.Equal(t, None, effect)
	assert.NotNil(t, cmd, "spinner starts")
	assert.True(t, s.Scanning)

	h.HandleEvent(eventbus.SlideDiscoveredEvent{})
	h.HandleEvent(eventbus.SlideDiscoveredEvent{})
	assert.Equal(t, 2, s.Found)

	effect, _ = h.HandleEvent(eventbus.ScanCompletedEvent{
		Dir:    "/deck",
		Slides: []domain.Slide{{Path: "/deck/a.md"}, {Path: "/deck/b.md"}},
	})
	assert.Equal(t, Reload, effect)
	assert.False(t, s.Scanning)
	assert.Equal(t, 2, s.Deck.Len())
	assert.Equal(t, "Loaded 2 slides", s.StatusMessage)
}

func TestEmptyScan(t *testing.T) {
	s := state.NewAppState("/deck")
	h := NewEventHandler(s)
	h.HandleEvent(eventbus.ScanStartedEvent{})
	effect, _ := h.HandleEvent(eventbus.ScanCompletedEvent{Dir: "/deck"})
	assert.True(t, effect.Has(Reload))
	assert.Equal(t, "No slides found in /deck", s.StatusMessage)
	assert.Equal(t, state.StatusInfo, s.StatusKind)
}

func TestChangeDuringScanQueuesRescan(t *testing.T) {
	s := state.NewAppState("/deck")
	h := NewEventHandler(s)

	effect, _ := h.HandleEvent(eventbus.DeckChangedEvent{})
	assert.Equal(t, Rescan, effect)

	h.HandleEvent(eventbus.ScanStartedEvent{})
	effect, _ = h.HandleEvent(eventbus.DeckChangedEvent{})
	assert.Equal(t, None, effect)
	require.True(t, s.RescanQueued)

	effect, _ = h.HandleEvent(eventbus.ScanCompletedEvent{Cancelled: true})
	assert.Equal(t, Rescan, effect, "cancelled scans still honour the queued rescan")
	assert.False(t, effect.Has(Reload))
	assert.False(t, s.RescanQueued)

	h.HandleEvent(eventbus.ScanStartedEvent{})
	h.HandleEvent(eventbus.DeckChangedEvent{})
	effect, _ = h.HandleEvent(eventbus.ScanCompletedEvent{})
	assert.True(t, effect.Has(Reload))
	assert.True(t, effect.Has(Rescan))
}

func TestErrorStatus(t *testing.T) {
	s := state.NewAppState("/deck")
	h := NewEventHandler(s)

	h.HandleEvent(eventbus.ErrorEvent{Message: "watch failed", Err: errors.New("too many files")})
	assert.Equal(t, "Error: watch failed: too many files", s.StatusMessage)
	assert.Equal(t, state.StatusError, s.StatusKind)
}

func TestConfigEvents(t *testing.T) {
	s := state.NewAppState("")
	h := NewEventHandler(s)

	h.HandleEvent(eventbus.ConfigLoadedEvent{Path: "c.toml", DeckDir: "/slides"})
	assert.Equal(t, "/slides", s.DeckDir)
	h.HandleEvent(eventbus.ConfigLoadedEvent{Path: "c.toml", DeckDir: "/other"})
	assert.Equal(t, "/slides", s.DeckDir, "an explicit directory wins")

	h.HandleEvent(eventbus.ConfigSavedEvent{Path: "c.toml"})
	assert.Equal(t, "Config saved to c.toml", s.StatusMessage)
	assert.Equal(t, state.StatusSuccess, s.StatusKind)
}
