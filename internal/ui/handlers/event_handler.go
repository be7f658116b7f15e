package handlers

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pageloop/internal/eventbus"
	"pageloop/internal/ui/state"
)

// spinnerInterval paces the scan spinner
const spinnerInterval = 80 * time.Millisecond

// TickMsg animates the scan spinner
type TickMsg time.Time

// Effect tells the model what an event requires beyond the state change
type Effect int

const (
	// Reload installs a new deck snapshot in the carousel
	Reload Effect = 1 << iota
	// Rescan starts another scan of the deck directory
	Rescan

	None Effect = 0
)

// Has reports whether e includes f
func (e Effect) Has(f Effect) bool {
	return e&f != 0
}

// EventHandler handles domain events and updates state
type EventHandler struct {
	state *state.AppState
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState) *EventHandler {
	return &EventHandler{state: appState}
}

// HandleEvent processes a domain event. It returns the follow-up the model
// must perform and any command to run.
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) (Effect, tea.Cmd) {
	switch e := event.(type) {
	case eventbus.ScanStartedEvent:
		h.state.BeginScan()
		return None, Tick()

	case eventbus.SlideDiscoveredEvent:
		if h.state.Scanning {
			h.state.Found++
		}

	case eventbus.ScanCompletedEvent:
		rescan := h.state.EndScan()
		if e.Cancelled {
			h.state.SetStatus(state.StatusInfo, "Scan cancelled")
			if rescan {
				return Rescan, nil
			}
			return None, nil
		}
		h.state.Deck.Replace(e.Slides)
		switch {
		case len(e.Slides) == 0:
			h.state.SetStatus(state.StatusInfo, fmt.Sprintf("No slides found in %s", e.Dir))
		default:
			h.state.SetStatus(state.StatusSuccess, fmt.Sprintf("Loaded %d slides", len(e.Slides)))
		}
		if rescan {
			return Reload | Rescan, nil
		}
		return Reload, nil

	case eventbus.DeckChangedEvent:
		if h.state.Scanning {
			h.state.RescanQueued = true
			return None, nil
		}
		return Rescan, nil

	case eventbus.ErrorEvent:
		msg := e.Message
		if e.Err != nil {
			msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		h.state.SetStatus(state.StatusError, "Error: "+msg)

	case eventbus.ConfigSavedEvent:
		h.state.SetStatus(state.StatusSuccess, fmt.Sprintf("Config saved to %s", e.Path))

	case eventbus.ConfigLoadedEvent:
		if e.DeckDir != "" && h.state.DeckDir == "" {
			h.state.DeckDir = e.DeckDir
		}
	}

	return None, nil
}

// Tick schedules the next spinner frame
func Tick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
