package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSlideDiscovered EventType = "SlideDiscovered"
	EventScanStarted     EventType = "ScanStarted"
	EventScanCompleted   EventType = "ScanCompleted"
	EventDeckChanged     EventType = "DeckChanged"
	EventPageChanged     EventType = "PageChanged"
	EventPageTapped      EventType = "PageTapped"
	EventError           EventType = "Error"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SlideDiscoveredEvent is emitted when a scan finds a slide file
type SlideDiscoveredEvent struct {
	Slide Slide
}

func (e SlideDiscoveredEvent) Type() EventType { return EventSlideDiscovered }

// ScanStartedEvent is emitted when a deck scan begins
type ScanStartedEvent struct {
	Dir string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ScanCompletedEvent is emitted when a deck scan finishes. Slides holds
// every slide found, in discovery order.
type ScanCompletedEvent struct {
	Dir       string
	Slides    []Slide
	Cancelled bool
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// DeckChangedEvent is emitted when files in the deck directory change
type DeckChangedEvent struct {
	Paths []string
}

func (e DeckChangedEvent) Type() EventType { return EventDeckChanged }

// PageChangedEvent is emitted when the carousel settles on another page
type PageChangedEvent struct {
	Index     int
	Direction int // +1 next, -1 previous
}

func (e PageChangedEvent) Type() EventType { return EventPageChanged }

// PageTappedEvent is emitted when the visible page is clicked
type PageTappedEvent struct {
	Index int
}

func (e PageTappedEvent) Type() EventType { return EventPageTapped }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	DeckDir string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
