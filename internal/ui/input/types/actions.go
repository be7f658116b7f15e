package types

// SwitchModeAction moves input handling to Mode
type SwitchModeAction struct {
	Mode Mode
}

func (a SwitchModeAction) Type() string { return "switch_mode" }

// PromptEditedAction carries the prompt text after every keystroke
type PromptEditedAction struct {
	Text string
	Mode Mode
}

func (a PromptEditedAction) Type() string { return "prompt_edited" }

// PromptSubmittedAction is a search query or slide number confirmed with
// enter. Mode tells the two apart.
type PromptSubmittedAction struct {
	Text string
	Mode Mode
}

func (a PromptSubmittedAction) Type() string { return "prompt_submitted" }

// PromptCancelledAction closes the prompt without acting on it
type PromptCancelledAction struct{}

func (a PromptCancelledAction) Type() string { return "prompt_cancelled" }

// QuitAction leaves the application from any mode
type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
