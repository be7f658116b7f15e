package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"pageloop/internal/ui/input/types"
)

// SearchMode looks for a slide by its text
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}
