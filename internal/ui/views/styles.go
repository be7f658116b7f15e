package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Scan          lipgloss.Style
	Help          lipgloss.Style
	Frame         lipgloss.Style
	PageTitle     lipgloss.Style
	PageBody      lipgloss.Style
	PageFooter    lipgloss.Style
	Empty         lipgloss.Style
	ActiveDot     lipgloss.Style
	InactiveDot   lipgloss.Style
	Indicator     lipgloss.Style
	StatusError   lipgloss.Style
	StatusAuto    lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Scan:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Help:   lipgloss.NewStyle().Faint(true),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")),
		PageTitle:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		PageBody:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		PageFooter:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Empty:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		ActiveDot:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		InactiveDot:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Indicator:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusAuto:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
