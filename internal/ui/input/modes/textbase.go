package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pageloop/internal/ui/input/types"
)

// TextInputMode is a base for modes that accept text input
type TextInputMode struct {
	mode      types.Mode
	name      string
	prompt    string
	textInput *textinput.Model
}

func NewTextInputMode(mode types.Mode, name, prompt string, ti *textinput.Model) TextInputMode {
	return TextInputMode{
		mode:      mode,
		name:      name,
		prompt:    prompt,
		textInput: ti,
	}
}

func (m TextInputMode) Name() string {
	return m.name
}

func (m TextInputMode) Prompt() string {
	return m.prompt
}

func (m TextInputMode) Enter() {
	m.textInput.Reset()
	m.textInput.Prompt = "" // Prompt is handled in the UI layer
	m.textInput.Focus()
}

func (m TextInputMode) Exit() {
	m.textInput.Blur()
	m.textInput.Reset()
}

func (m TextInputMode) HandleKey(msg tea.KeyMsg) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true
	case "esc":
		return []types.Action{
			types.PromptCancelledAction{},
			types.SwitchModeAction{Mode: types.ModeNormal},
		}, true
	case "enter":
		return []types.Action{
			types.PromptSubmittedAction{Text: m.textInput.Value(), Mode: m.mode},
			types.SwitchModeAction{Mode: types.ModeNormal},
		}, true
	default:
		// Let the handler update the text input
		return nil, false
	}
}
