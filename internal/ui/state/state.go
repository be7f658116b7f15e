package state

import (
	"pageloop/internal/deck"
)

// StatusKind selects how the status line is styled
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusError
)

// AppState contains all the application state outside the carousel widget
type AppState struct {
	// Deck data
	Deck    *deck.Store
	DeckDir string
	Found   int // slides discovered by the scan in progress

	// Scan state
	Scanning     bool
	RescanQueued bool

	// UI state
	StatusMessage string
	StatusKind    StatusKind
	LoadingState  string
	InPagerMode   bool
	ShowHelp      bool
}

// NewAppState creates a new application state
func NewAppState(dir string) *AppState {
	return &AppState{
		Deck:     deck.NewStore(),
		DeckDir:  dir,
		ShowHelp: true,
	}
}

// SetStatus replaces the status line
func (s *AppState) SetStatus(kind StatusKind, msg string) {
	s.StatusKind = kind
	s.StatusMessage = msg
}

// ClearStatus empties the status line
func (s *AppState) ClearStatus() {
	s.StatusKind = StatusInfo
	s.StatusMessage = ""
}

// BeginScan marks a scan as running
func (s *AppState) BeginScan() {
	s.Scanning = true
	s.Found = 0
	s.LoadingState = "Scanning for slides..."
}

// EndScan marks the scan finished. It reports whether another scan was
// requested while this one ran.
func (s *AppState) EndScan() (rescan bool) {
	s.Scanning = false
	s.LoadingState = ""
	s.Found = 0
	rescan = s.RescanQueued
	s.RescanQueued = false
	return rescan
}
