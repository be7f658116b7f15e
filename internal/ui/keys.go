package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"pageloop/internal/ui/carousel"
)

// KeyMap holds the application bindings. Carousel navigation lives in the
// carousel's own map.
type KeyMap struct {
	Carousel    carousel.KeyMap
	Quit        key.Binding
	Help        key.Binding
	Open        key.Binding
	Wrap        key.Binding
	Orientation key.Binding
	Rescan      key.Binding
	Save        key.Binding
	Search      key.Binding
	Goto        key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Carousel: carousel.DefaultKeyMap(),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter", "open page"),
		),
		Wrap: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle wrap"),
		),
		Orientation: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "toggle vertical"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Save: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "save settings"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search slides"),
		),
		Goto: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "go to slide"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return append(k.Carousel.ShortHelp(), k.Open, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return append(k.Carousel.FullHelp(),
		[]key.Binding{k.Wrap, k.Orientation},
		[]key.Binding{k.Search, k.Goto, k.Open},
		[]key.Binding{k.Rescan, k.Save},
		[]key.Binding{k.Help, k.Quit},
	)
}
