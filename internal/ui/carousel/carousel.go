package carousel

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"pageloop/internal/scrollview"
	"pageloop/internal/scrollview/geom"
	"pageloop/internal/ui/views"
)

// frameInterval paces animation frames at about 60 per second
const frameInterval = time.Second / 60

// maxFrameStep bounds the time a single frame may advance, so a stalled
// terminal does not make animations jump
const maxFrameStep = 100 * time.Millisecond

var lastID atomic.Int64

// PageChangedMsg is emitted when the carousel commits a page change
type PageChangedMsg struct {
	Index     int
	Direction int
}

// TappedMsg is emitted when the visible page is clicked
type TappedMsg struct {
	Index int
}

type frameMsg struct {
	owner string
	at    time.Time
}

// Model is a bubbletea component showing a scrollview.ScrollView
type Model struct {
	id     string
	view   *scrollview.ScrollView
	sched  *Scheduler
	keys   KeyMap
	zones  *zone.Manager
	pager  paginator.Model
	styles *views.Styles

	width, height int
	showIndicator bool

	framing   bool
	lastFrame time.Time
	drag      drag
	outbox    []tea.Msg
	delegate  scrollview.Delegate
}

// Option configures a Model
type Option func(*Model)

// WithZones makes the carousel hit-test clicks with a bubblezone manager.
// The root view must be passed through the manager's Scan.
func WithZones(z *zone.Manager) Option {
	return func(m *Model) { m.zones = z }
}

// WithClock replaces the wall clock used for timers and drag velocity
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.sched.now = now }
}

// WithKeyMap replaces the default key bindings
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// WithStyles replaces the default styles
func WithStyles(st *views.Styles) Option {
	return func(m *Model) { m.styles = st }
}

// WithIndicator shows or hides the page indicator
func WithIndicator(show bool) Option {
	return func(m *Model) { m.showIndicator = show }
}

// New creates a carousel with the given widget settings
func New(cfg scrollview.Config, opts ...Option) *Model {
	id := fmt.Sprintf("carousel-%d", lastID.Add(1))
	m := &Model{
		id:            id,
		sched:         NewScheduler(id, nil),
		keys:          DefaultKeyMap(),
		pager:         paginator.New(),
		styles:        views.NewStyles(),
		showIndicator: true,
		delegate:      scrollview.NopDelegate{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.pager.Type = paginator.Dots
	m.pager.PerPage = 1
	m.pager.ActiveDot = m.styles.ActiveDot.Render("•")
	m.pager.InactiveDot = m.styles.InactiveDot.Render("•")

	m.view = scrollview.New(cfg, m.sched)
	m.view.SetDelegate(relay{m})
	return m
}

// ScrollView returns the widget being shown
func (m *Model) ScrollView() *scrollview.ScrollView {
	return m.view
}

// ZoneID is the bubblezone id of the page area
func (m *Model) ZoneID() string {
	return m.id
}

// SetDelegate installs a delegate that sees every widget callback. Page
// changes and taps are also reported as messages.
func (m *Model) SetDelegate(d scrollview.Delegate) {
	if d == nil {
		d = scrollview.NopDelegate{}
	}
	m.delegate = d
}

// SetDataSource replaces the pages
func (m *Model) SetDataSource(ds scrollview.DataSource) {
	m.view.SetDataSource(ds)
}

// SetSize sets the page area in cells. The indicator line is not included.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = max(width, 0), max(height, 0)
	m.view.SetSize(geom.Size{W: float64(m.width), H: float64(m.height)})
}

// SetShowIndicator shows or hides the page indicator
func (m *Model) SetShowIndicator(show bool) {
	m.showIndicator = show
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.Flush()
}

// Update handles key, mouse, timer and frame messages
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskMsg:
		if !m.sched.run(msg) {
			return m, nil
		}
	case frameMsg:
		if msg.owner != m.id {
			return m, nil
		}
		m.frame(msg.at)
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	default:
		return m, nil
	}
	return m, m.Flush()
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	v := m.view
	switch {
	case key.Matches(msg, m.keys.Next):
		v.ScrollNext(true)
	case key.Matches(msg, m.keys.Previous):
		v.ScrollPrevious(true)
	case key.Matches(msg, m.keys.First):
		_ = v.ScrollToPage(0, true)
	case key.Matches(msg, m.keys.Last):
		_ = v.ScrollToPage(v.NumberOfPages()-1, true)
	case key.Matches(msg, m.keys.AutoScroll):
		m.ToggleAutoScroll()
	}
}

// ToggleAutoScroll starts or stops automatic scrolling
func (m *Model) ToggleAutoScroll() {
	if m.view.AutoScrolling() {
		m.view.StopAutoScroll()
		return
	}
	m.view.StartAutoScroll()
}

// Flush returns the commands the widget needs after being driven from
// outside Update: pending timers, the frame loop and queued messages.
func (m *Model) Flush() tea.Cmd {
	cmds := []tea.Cmd{m.sched.Cmd()}
	if m.view.NeedsFrames() && !m.framing {
		m.framing = true
		m.lastFrame = m.sched.Now()
		cmds = append(cmds, m.nextFrame())
	}
	for _, out := range m.outbox {
		out := out
		cmds = append(cmds, func() tea.Msg { return out })
	}
	m.outbox = m.outbox[:0]
	return tea.Batch(cmds...)
}

func (m *Model) nextFrame() tea.Cmd {
	owner := m.id
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg{owner: owner, at: t}
	})
}

func (m *Model) frame(at time.Time) {
	dt := at.Sub(m.lastFrame)
	if dt > maxFrameStep {
		dt = maxFrameStep
	}
	m.lastFrame = at
	m.view.Step(dt)
	m.framing = false
}

// relay forwards widget callbacks to the installed delegate and turns page
// changes and taps into messages
type relay struct {
	m *Model
}

func (r relay) WillBeginDragging(v *scrollview.ScrollView) {
	r.m.delegate.WillBeginDragging(v)
}

func (r relay) WillEndDragging(v *scrollview.ScrollView, velocity, target geom.Point) geom.Point {
	return r.m.delegate.WillEndDragging(v, velocity, target)
}

func (r relay) DidScrollNextPage(v *scrollview.ScrollView, index int) {
	r.m.outbox = append(r.m.outbox, PageChangedMsg{Index: index, Direction: 1})
	r.m.delegate.DidScrollNextPage(v, index)
}

func (r relay) DidScrollPreviousPage(v *scrollview.ScrollView, index int) {
	r.m.outbox = append(r.m.outbox, PageChangedMsg{Index: index, Direction: -1})
	r.m.delegate.DidScrollPreviousPage(v, index)
}

func (r relay) DidTap(v *scrollview.ScrollView, index int) {
	r.m.outbox = append(r.m.outbox, TappedMsg{Index: index})
	r.m.delegate.DidTap(v, index)
}

func (r relay) DidPan(v *scrollview.ScrollView, pan scrollview.PanInfo) {
	r.m.delegate.DidPan(v, pan)
}

func (r relay) ShouldScrollNext(v *scrollview.ScrollView) bool {
	return r.m.delegate.ShouldScrollNext(v)
}

func (r relay) ShouldScrollPrevious(v *scrollview.ScrollView) bool {
	return r.m.delegate.ShouldScrollPrevious(v)
}
