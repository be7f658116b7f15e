package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// pagerMsg reports the end of a pager session
type pagerMsg struct {
	what string
	err  error
}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	sections []helpSection
}

type helpSection struct {
	title    string
	bindings []key.Binding
}

// NewHelpRenderer creates a help renderer for the given key maps
func NewHelpRenderer(keys KeyMap) *HelpRenderer {
	c := keys.Carousel
	return &HelpRenderer{sections: []helpSection{
		{"Navigation", []key.Binding{c.Next, c.Previous, c.First, c.Last}},
		{"Carousel", []key.Binding{c.AutoScroll, keys.Wrap, keys.Orientation}},
		{"Deck", []key.Binding{keys.Search, keys.Goto, keys.Open, keys.Rescan, keys.Save}},
		{"Other", []key.Binding{keys.Help, keys.Quit}},
	}}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("pageloop Help"))
	help.WriteString("\n")

	for _, s := range r.sections {
		help.WriteString(sectionStyle.Render(s.title))
		help.WriteString("\n")
		for _, b := range s.bindings {
			if !b.Enabled() {
				continue
			}
			help.WriteString(fmt.Sprintf("  %s%s\n", keyStyle.Render(strings.Join(b.Keys(), ", ")), descStyle.Render(b.Help().Desc)))
		}
		help.WriteString("\n")
	}

	mouseStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString(mouseStyle.Render("  Mouse: drag or flick to change pages, wheel scrolls, click opens the page"))
	help.WriteString("\n")

	return help.String()
}

// PagerOps shows content in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{program: program}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// Show runs ov on r, releasing the terminal for the duration
func (p *PagerOps) Show(r io.Reader) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(r)
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// ShowString runs ov on a string
func (p *PagerOps) ShowString(content string) error {
	return p.Show(strings.NewReader(content))
}
