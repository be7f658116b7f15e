package carousel

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pageloop/internal/scrollview/geom"
)

// velocityWindow is how far back pointer samples count towards the
// release velocity
const velocityWindow = 100 * time.Millisecond

type sample struct {
	at  time.Time
	pos geom.Point
}

// drag tracks a pressed pointer. A press that never moves is a tap.
type drag struct {
	pressed bool
	moved   bool
	start   geom.Point
	last    geom.Point
	samples []sample
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
			if m.inBounds(msg) {
				m.view.ScrollNext(true)
			}
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
			if m.inBounds(msg) {
				m.view.ScrollPrevious(true)
			}
		case tea.MouseButtonLeft:
			m.press(msg)
		}
	case tea.MouseActionMotion:
		if m.drag.pressed {
			m.motion(msg)
		}
	case tea.MouseActionRelease:
		if m.drag.pressed {
			m.release(msg)
		}
	}
}

func (m *Model) press(msg tea.MouseMsg) {
	x, y, ok := m.locate(msg)
	if !ok {
		return
	}
	p := pointOf(msg)
	m.drag = drag{
		pressed: true,
		start:   geom.Point{X: float64(x), Y: float64(y)},
		last:    p,
		samples: []sample{{at: m.sched.Now(), pos: p}},
	}
}

func (m *Model) motion(msg tea.MouseMsg) {
	p := pointOf(msg)
	if p == m.drag.last {
		return
	}
	if !m.drag.moved {
		m.drag.moved = true
		m.view.BeginDrag()
	}
	// content follows the pointer, so the offset moves against it
	m.view.DragBy(m.drag.last.Sub(p))
	m.drag.last = p
	m.record(p)
}

func (m *Model) release(msg tea.MouseMsg) {
	if !m.drag.moved {
		start := m.drag.start
		m.drag = drag{}
		m.view.Tap(start)
		return
	}
	p := pointOf(msg)
	if p != m.drag.last {
		m.view.DragBy(m.drag.last.Sub(p))
		m.drag.last = p
	}
	m.record(p)
	vel := m.velocity()
	m.drag = drag{}
	m.view.EndDrag(vel)
}

func (m *Model) record(p geom.Point) {
	now := m.sched.Now()
	m.drag.samples = append(m.drag.samples, sample{at: now, pos: p})
	cut := 0
	for cut < len(m.drag.samples)-2 && now.Sub(m.drag.samples[cut].at) > velocityWindow {
		cut++
	}
	m.drag.samples = m.drag.samples[cut:]
}

// velocity is the offset velocity in cells per second over the recent samples
func (m *Model) velocity() geom.Point {
	s := m.drag.samples
	if len(s) < 2 {
		return geom.Point{}
	}
	first, last := s[0], s[len(s)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return geom.Point{}
	}
	d := first.pos.Sub(last.pos)
	return geom.Point{X: d.X / dt, Y: d.Y / dt}
}

// locate returns the position of msg inside the page area
func (m *Model) locate(msg tea.MouseMsg) (int, int, bool) {
	if m.zones != nil {
		z := m.zones.Get(m.id)
		if z == nil || !z.InBounds(msg) {
			return 0, 0, false
		}
		x, y := z.Pos(msg)
		return x, y, x >= 0 && y >= 0
	}
	if msg.X < 0 || msg.Y < 0 || msg.X >= m.width || msg.Y >= m.height {
		return 0, 0, false
	}
	return msg.X, msg.Y, true
}

func (m *Model) inBounds(msg tea.MouseMsg) bool {
	_, _, ok := m.locate(msg)
	return ok
}

func pointOf(msg tea.MouseMsg) geom.Point {
	return geom.Point{X: float64(msg.X), Y: float64(msg.Y)}
}
