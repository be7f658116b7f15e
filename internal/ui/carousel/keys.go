package carousel

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the carousel navigation bindings
type KeyMap struct {
	Next       key.Binding
	Previous   key.Binding
	First      key.Binding
	Last       key.Binding
	AutoScroll key.Binding
}

// DefaultKeyMap returns the default bindings. Both arrow pairs move in
// either orientation.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "down", "l", "j", "pgdown", "n"),
			key.WithHelp("→/l", "next"),
		),
		Previous: key.NewBinding(
			key.WithKeys("left", "up", "h", "k", "pgup", "p"),
			key.WithHelp("←/h", "previous"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last"),
		),
		AutoScroll: key.NewBinding(
			key.WithKeys(" ", "a"),
			key.WithHelp("space", "auto-scroll"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Previous, k.Next, k.AutoScroll}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Previous, k.Next, k.First, k.Last, k.AutoScroll}}
}
