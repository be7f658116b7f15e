package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pageloop/internal/ui/input/modes"
	"pageloop/internal/ui/input/types"
)

// Handler routes keys to the active text mode. In normal mode it consumes
// nothing and the model's own bindings apply.
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
}

func New() *Handler {
	ti := textinput.New()
	ti.CharLimit = 64

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeSearch] = modes.NewSearchMode(h.textInput)
	h.modes[types.ModeGoto] = modes.NewGotoMode(h.textInput)

	return h
}

// Active reports whether a text mode owns the keyboard
func (h *Handler) Active() bool {
	return h.currentMode != types.ModeNormal
}

// Start enters mode
func (h *Handler) Start(mode types.Mode) tea.Cmd {
	h.changeMode(mode)
	if h.Active() {
		return textinput.Blink
	}
	return nil
}

func (h *Handler) HandleKey(msg tea.KeyMsg) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg)
	if !consumed {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return []types.Action{types.PromptEditedAction{Text: h.textInput.Value(), Mode: h.currentMode}}, cmd
	}

	var out []types.Action
	for _, action := range actions {
		if change, ok := action.(types.SwitchModeAction); ok {
			h.changeMode(change.Mode)
			continue
		}
		out = append(out, action)
	}
	return out, nil
}

// Update handles non-keyboard messages for the text input, such as the
// cursor blink
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if !h.Active() {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// View renders the prompt and the text typed so far, or "" in normal mode
func (h *Handler) View() string {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return ""
	}
	return handler.Prompt() + h.textInput.View()
}

// Reset returns to normal mode
func (h *Handler) Reset() {
	h.changeMode(types.ModeNormal)
}

func (h *Handler) changeMode(mode types.Mode) {
	if old := h.modes[h.currentMode]; old != nil {
		old.Exit()
	}
	h.currentMode = mode
	if next := h.modes[mode]; next != nil {
		next.Enter()
	}
}
