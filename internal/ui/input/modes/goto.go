package modes

import (
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pageloop/internal/ui/input/types"
)

// GotoMode jumps to a slide by its number
type GotoMode struct {
	TextInputMode
}

func NewGotoMode(ti *textinput.Model) *GotoMode {
	return &GotoMode{
		TextInputMode: NewTextInputMode(types.ModeGoto, "goto", "Go to slide: ", ti),
	}
}

// HandleKey swallows anything but digits and the editing keys
func (m *GotoMode) HandleKey(msg tea.KeyMsg) ([]types.Action, bool) {
	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if !unicode.IsDigit(r) {
				return nil, true
			}
		}
	}
	return m.TextInputMode.HandleKey(msg)
}
