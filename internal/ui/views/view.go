package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinner = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Status kinds, matching the state package
const (
	StatusInfo = iota
	StatusSuccess
	StatusError
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	DeckDir       string
	Scanning      bool
	Found         int
	Slides        int
	Current       int
	AutoScrolling bool
	Wrap          bool
	Orientation   string
	StatusMessage string
	StatusKind    int
	ShowBorder    bool
	Carousel      string // page area and indicator, already rendered
	HelpView      string // empty hides the footer
	Prompt        string // open search or goto prompt, replaces the status
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	if styles == nil {
		styles = NewStyles()
	}
	return &Renderer{styles: styles}
}

// Styles returns the styles in use
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Chrome is the number of rows and columns the frame around the carousel
// takes: title, status and help rows plus the border
func (r *Renderer) Chrome(state ViewState) (cols, rows int) {
	rows = 2 // title and status
	if state.HelpView != "" {
		rows++
	}
	if state.ShowBorder {
		cols += r.styles.Frame.GetHorizontalFrameSize()
		rows += r.styles.Frame.GetVerticalFrameSize()
	}
	return cols, rows
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.Width <= 0 || state.Height <= 0 {
		return "Loading..."
	}

	lines := []string{r.titleLine(state)}

	body := state.Carousel
	if state.ShowBorder {
		body = r.styles.Frame.Render(body)
	}
	lines = append(lines, body)
	lines = append(lines, r.statusLine(state))
	if state.HelpView != "" {
		lines = append(lines, r.styles.Help.Render(state.HelpView))
	}

	return lipgloss.NewStyle().MaxHeight(state.Height).Render(strings.Join(lines, "\n"))
}

// titleLine shows the app name on the left and scan and mode indicators on
// the right
func (r *Renderer) titleLine(state ViewState) string {
	logo := r.styles.Title.Render("pageloop")
	if state.DeckDir != "" {
		logo += " " + r.styles.Dim.Render(state.DeckDir)
	}

	var indicators []string
	if state.Scanning {
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		indicators = append(indicators, r.styles.Scan.Render(fmt.Sprintf("%s Scanning %d", spinner[frame], state.Found)))
	}
	if state.AutoScrolling {
		indicators = append(indicators, r.styles.StatusAuto.Render("▶ auto"))
	}
	if !state.Wrap {
		indicators = append(indicators, r.styles.Dim.Render("no-wrap"))
	}
	if state.Orientation != "" {
		indicators = append(indicators, r.styles.Dim.Render(state.Orientation))
	}
	if len(indicators) == 0 {
		return logo
	}

	right := strings.Join(indicators, r.styles.Dim.Render(" | "))
	padding := state.Width - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		return logo + "  " + right
	}
	return logo + strings.Repeat(" ", padding) + right
}

// statusLine shows the latest message and the current position
func (r *Renderer) statusLine(state ViewState) string {
	var left string
	switch {
	case state.Prompt != "":
		left = state.Prompt
	case state.StatusMessage != "":
		switch state.StatusKind {
		case StatusError:
			left = r.styles.StatusError.Render(state.StatusMessage)
		case StatusSuccess:
			left = r.styles.StatusSuccess.Render(state.StatusMessage)
		default:
			left = r.styles.Status.Render(state.StatusMessage)
		}
	case state.Scanning && state.Slides == 0:
		left = r.styles.Dim.Render("Looking for slides...")
	case state.Slides == 0:
		left = r.styles.Dim.Render("No slides. Press r to rescan.")
	}
	if state.Slides == 0 {
		return left
	}

	// the position stays visible while a message is shown
	right := r.styles.Status.Render(fmt.Sprintf("Slide %d of %d", state.Current+1, state.Slides))
	padding := state.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 2 {
		return left + "  " + right
	}
	return left + strings.Repeat(" ", padding) + right
}
