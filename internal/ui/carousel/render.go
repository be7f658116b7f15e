package carousel

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"pageloop/internal/scrollview"
	"pageloop/internal/scrollview/geom"
	"pageloop/internal/scrollview/layout"
)

// View renders the visible window of the three slots, followed by the
// page indicator
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	var body string
	if m.view.NumberOfPages() == 0 {
		body = m.renderEmpty()
	} else {
		body = m.renderWindow()
	}
	if m.zones != nil {
		body = m.zones.Mark(m.id, body)
	}
	if !m.showIndicator {
		return body
	}
	return body + "\n" + m.Indicator()
}

// Indicator renders the page dots, or a counter when the dots do not fit
func (m *Model) Indicator() string {
	n := m.view.NumberOfPages()
	if n == 0 {
		return ""
	}
	m.pager.TotalPages = n
	m.pager.Page = m.view.CurrentPageIndex()
	m.pager.Type = paginator.Dots
	if n > m.width/2 {
		m.pager.Type = paginator.Arabic
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.styles.Indicator.Render(m.pager.View()))
}

func (m *Model) renderEmpty() string {
	msg := m.styles.Empty.Render("no pages")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

// renderWindow lays the three slot pages out along the scroll axis and
// cuts the viewport out at the current content offset
func (m *Model) renderWindow() string {
	var blocks [layout.SlotCount][]string
	for _, s := range layout.Slots {
		blocks[s] = m.renderPage(m.view.SlotPage(s))
	}

	axis := m.view.ScrollDirection()
	offset := int(math.Round(m.view.ContentOffset().Along(axis)))

	if axis == geom.Vertical {
		offset = clamp(offset, 0, 2*m.height)
		rows := make([]string, 0, layout.SlotCount*m.height)
		for _, b := range blocks {
			rows = append(rows, b...)
		}
		return strings.Join(rows[offset:offset+m.height], "\n")
	}

	offset = clamp(offset, 0, 2*m.width)
	rows := make([]string, m.height)
	for r := range rows {
		strip := blocks[layout.SlotPrevious][r] + blocks[layout.SlotCurrent][r] + blocks[layout.SlotNext][r]
		rows[r] = ansi.Cut(strip, offset, offset+m.width)
	}
	return strings.Join(rows, "\n")
}

// renderPage returns exactly height lines, each exactly width cells wide
func (m *Model) renderPage(p *scrollview.Page) []string {
	w, h := m.width, m.height
	lines := make([]string, 0, h)
	if p == nil {
		for len(lines) < h {
			lines = append(lines, strings.Repeat(" ", w))
		}
		return lines
	}

	inner := max(w-2, 1)
	add := func(style lipgloss.Style, text string) {
		text = runewidth.Truncate(text, inner, "…")
		cell := " " + style.Render(text)
		lines = append(lines, pad(cell, w))
	}

	add(m.styles.PageTitle, p.Title)
	add(m.styles.PageBody, "")
	bodyRows := h - len(lines)
	if p.Footer != "" {
		bodyRows--
	}
	for _, line := range strings.Split(p.Body, "\n") {
		if bodyRows <= 0 {
			break
		}
		add(m.styles.PageBody, line)
		bodyRows--
	}
	for bodyRows > 0 {
		lines = append(lines, strings.Repeat(" ", w))
		bodyRows--
	}
	if p.Footer != "" && len(lines) < h {
		add(m.styles.PageFooter, p.Footer)
	}
	return lines[:h]
}

// pad cuts or fills s to exactly w cells
func pad(s string, w int) string {
	sw := ansi.StringWidth(s)
	if sw > w {
		return ansi.Truncate(s, w, "")
	}
	return s + strings.Repeat(" ", w-sw)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
