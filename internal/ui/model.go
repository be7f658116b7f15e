package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"pageloop/internal/config"
	"pageloop/internal/deck"
	"pageloop/internal/discovery"
	"pageloop/internal/eventbus"
	"pageloop/internal/scrollview/geom"
	"pageloop/internal/ui/carousel"
	"pageloop/internal/ui/handlers"
	"pageloop/internal/ui/input"
	"pageloop/internal/ui/input/types"
	"pageloop/internal/ui/state"
	"pageloop/internal/ui/views"
)

// statusTimeout is how long a status message stays up
const statusTimeout = 3 * time.Second

var errNoProgram = errors.New("program not set")

// Model represents the UI state
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	cfgSvc  config.ConfigService
	scanner discovery.DiscoveryService
	ctx     context.Context
	state   *state.AppState // centralized state

	// UI-specific state not in AppState
	width       int
	height      int
	help        help.Model
	keys        KeyMap
	statusSeq   int
	autoStarted bool
	e2e         bool
	ready       bool

	// Components
	carousel   *carousel.Model
	snapshot   *deck.Snapshot
	zones      *zone.Manager
	renderer   *views.Renderer
	events     *handlers.EventHandler
	input      *input.Handler
	helpRender *HelpRenderer
	pager      *PagerOps
	clock      func() time.Time

	// Program reference for terminal management
	program *tea.Program
}

// Option configures a Model
type Option func(*Model)

// WithConfigService lets the model save settings
func WithConfigService(svc config.ConfigService) Option {
	return func(m *Model) { m.cfgSvc = svc }
}

// WithDiscovery lets the model rescan the deck directory
func WithDiscovery(svc discovery.DiscoveryService) Option {
	return func(m *Model) { m.scanner = svc }
}

// WithContext bounds the scans the model starts
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithZones enables mouse hit-testing
func WithZones(z *zone.Manager) Option {
	return func(m *Model) { m.zones = z }
}

// WithClock replaces the carousel clock
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.clock = now }
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, opts ...Option) *Model {
	m := &Model{
		bus:    bus,
		config: cfg,
		ctx:    context.Background(),
		state:  state.NewAppState(cfg.Deck.Dir),
		help:   help.New(),
		keys:   DefaultKeyMap(),
		e2e:    os.Getenv("PAGELOOP_E2E_TEST") == "1",
		pager:  NewPagerOps(nil),
	}
	for _, opt := range opts {
		opt(m)
	}

	styles := views.NewStyles()
	m.renderer = views.NewRenderer(styles)
	m.events = handlers.NewEventHandler(m.state)
	m.input = input.New()
	m.helpRender = NewHelpRenderer(m.keys)
	m.state.ShowHelp = cfg.UI.ShowHelp

	copts := []carousel.Option{
		carousel.WithKeyMap(m.keys.Carousel),
		carousel.WithStyles(styles),
		carousel.WithIndicator(cfg.UI.ShowIndicator),
	}
	if m.zones != nil {
		copts = append(copts, carousel.WithZones(m.zones))
	}
	if m.clock != nil {
		copts = append(copts, carousel.WithClock(m.clock))
	}
	m.carousel = carousel.New(cfg.ToScrollView(), copts...)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Carousel returns the carousel component
func (m *Model) Carousel() *carousel.Model {
	return m.carousel
}

// State returns the application state
func (m *Model) State() *state.AppState {
	return m.state
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.carousel.Init()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		if m.e2e && !m.ready {
			m.ready = true
			return m, tea.Batch(m.carousel.Flush(), announceReady)
		}
		return m, m.carousel.Flush()

	case tea.KeyMsg:
		if m.state.InPagerMode {
			return m, nil
		}
		if m.input.Active() {
			return m, m.handleInput(msg)
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
		return m.updateCarousel(msg)

	case tea.MouseMsg:
		if m.state.InPagerMode {
			return m, nil
		}
		return m.updateCarousel(msg)

	case carousel.PageChangedMsg:
		if m.bus != nil {
			m.bus.Publish(eventbus.PageChangedEvent{Index: msg.Index, Direction: msg.Direction})
		}
		return m, nil

	case carousel.TappedMsg:
		if m.bus != nil {
			m.bus.Publish(eventbus.PageTappedEvent{Index: msg.Index})
		}
		return m, m.openPage(msg.Index)

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case handlers.TickMsg:
		if m.state.Scanning && !m.state.InPagerMode {
			return m, handlers.Tick()
		}
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			log.Printf("%s pager failed: %v", msg.what, msg.err)
			return m, m.setStatus(state.StatusError, fmt.Sprintf("Could not open %s: %v", msg.what, msg.err))
		}
		return m, nil

	case pauseRenderingMsg:
		m.state.InPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.state.InPagerMode = false
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.state.ClearStatus()
		}
		return m, nil

	case quitMsg:
		if m.scanner != nil {
			m.scanner.StopScan()
		}
		m.carousel.ScrollView().Close()
		return m, tea.Quit
	}

	inputCmd := m.input.Update(msg)
	_, cmd := m.updateCarousel(msg)
	return m, tea.Batch(inputCmd, cmd)
}

func (m *Model) updateCarousel(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.carousel, cmd = m.carousel.Update(msg)
	return m, cmd
}

// handleKey processes application keys. Keys it does not own go to the
// carousel.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	v := m.carousel.ScrollView()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return func() tea.Msg { return quitMsg{} }, true

	case key.Matches(msg, m.keys.Help):
		content := m.helpRender.RenderHelpContent()
		return m.pagerCmd("help", func() error { return m.pager.ShowString(content) }), true

	case key.Matches(msg, m.keys.Open):
		return m.openPage(v.CurrentPageIndex()), true

	case key.Matches(msg, m.keys.Wrap):
		v.SetShouldWrap(!v.ShouldWrap())
		m.config.Scroll.Wrap = v.ShouldWrap()
		text := "Wrapping off"
		if v.ShouldWrap() {
			text = "Wrapping on"
		}
		return tea.Batch(m.carousel.Flush(), m.setStatus(state.StatusInfo, text)), true

	case key.Matches(msg, m.keys.Orientation):
		o := geom.Vertical
		if v.ScrollDirection() == geom.Vertical {
			o = geom.Horizontal
		}
		v.SetScrollDirection(o)
		m.config.Scroll.Orientation = o.String()
		return tea.Batch(m.carousel.Flush(), m.setStatus(state.StatusInfo, "Scrolling "+o.String())), true

	case key.Matches(msg, m.keys.Rescan):
		return m.rescan(), true

	case key.Matches(msg, m.keys.Search):
		return m.input.Start(types.ModeSearch), true

	case key.Matches(msg, m.keys.Goto):
		return m.input.Start(types.ModeGoto), true

	case key.Matches(msg, m.keys.Save):
		if err := m.saveConfig(); err != nil {
			return m.setStatus(state.StatusError, fmt.Sprintf("Failed to save config: %v", err)), true
		}
		return nil, true
	}
	return nil, false
}

// handleInput feeds a key to the open prompt and acts on what it submits
func (m *Model) handleInput(msg tea.KeyMsg) tea.Cmd {
	actions, cmd := m.input.HandleKey(msg)
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		switch a := action.(type) {
		case types.PromptSubmittedAction:
			cmds = append(cmds, m.submit(a))
		case types.QuitAction:
			cmds = append(cmds, func() tea.Msg { return quitMsg{} })
		}
	}
	return tea.Batch(cmds...)
}

// submit runs a search or a jump typed into the prompt
func (m *Model) submit(a types.PromptSubmittedAction) tea.Cmd {
	if a.Text == "" || m.snapshot == nil {
		return nil
	}
	v := m.carousel.ScrollView()
	target := -1
	switch a.Mode {
	case types.ModeSearch:
		target = m.snapshot.Find(a.Text, v.CurrentPageIndex())
		if target < 0 {
			return m.setStatus(state.StatusInfo, fmt.Sprintf("No slide matches %q", a.Text))
		}
	case types.ModeGoto:
		n, err := strconv.Atoi(a.Text)
		if err != nil || n < 1 || n > m.snapshot.NumberOfPages() {
			return m.setStatus(state.StatusError, fmt.Sprintf("No slide %s", a.Text))
		}
		target = n - 1
	}
	if target == v.CurrentPageIndex() {
		return nil
	}
	if err := v.ScrollToPage(target, true); err != nil {
		return m.setStatus(state.StatusError, err.Error())
	}
	return m.carousel.Flush()
}

// handleEvent applies a domain event and performs its follow-up
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	// bus handlers run concurrently, so a start can arrive after its completion
	if _, ok := event.(eventbus.ScanStartedEvent); ok && m.scanner != nil && !m.scanner.Scanning() {
		return nil
	}
	before := m.state.StatusMessage
	effect, cmd := m.events.HandleEvent(event)
	cmds := []tea.Cmd{cmd}
	if m.state.StatusMessage != before && m.state.StatusMessage != "" {
		cmds = append(cmds, m.expireStatus())
	}
	if effect.Has(handlers.Reload) {
		cmds = append(cmds, m.reload())
	}
	if effect.Has(handlers.Rescan) {
		cmds = append(cmds, m.rescan())
	}
	return tea.Batch(cmds...)
}

// reload installs the current deck, staying on the slide that was shown
// when it still exists
func (m *Model) reload() tea.Cmd {
	v := m.carousel.ScrollView()
	snap := m.state.Deck.Snapshot()

	if m.snapshot != nil && m.snapshot.NumberOfPages() > 0 {
		cur := v.CurrentPageIndex()
		idx := min(cur, max(snap.NumberOfPages()-1, 0))
		if slide, ok := m.snapshot.At(cur); ok {
			if i := snap.IndexOf(slide.Path); i >= 0 {
				idx = i
			}
		}
		v.SetPageIndex(idx)
	}
	m.snapshot = snap
	m.carousel.SetDataSource(snap)

	if m.config.Scroll.AutoStart && !m.autoStarted && snap.NumberOfPages() > 0 {
		m.autoStarted = true
		v.StartAutoScroll()
	}
	return m.carousel.Flush()
}

// rescan starts a scan, or queues one behind the scan already running
func (m *Model) rescan() tea.Cmd {
	if m.scanner == nil || m.state.DeckDir == "" {
		return nil
	}
	err := m.scanner.StartScan(m.ctx, m.state.DeckDir)
	if errors.Is(err, discovery.ErrScanInProgress) {
		m.state.RescanQueued = true
		return nil
	}
	if err != nil {
		return m.setStatus(state.StatusError, fmt.Sprintf("Failed to scan %s: %v", m.state.DeckDir, err))
	}
	return nil
}

// saveConfig writes the current widget settings, including the page shown,
// back to the config file
func (m *Model) saveConfig() error {
	if m.cfgSvc == nil {
		return errors.New("no config file")
	}
	v := m.carousel.ScrollView()
	m.config.Scroll.Orientation = v.ScrollDirection().String()
	m.config.Scroll.Wrap = v.ShouldWrap()
	m.config.Scroll.AutoStart = v.AutoScrolling()
	m.config.Scroll.StartPage = v.CurrentPageIndex()
	return m.cfgSvc.Save(m.config)
}

// openPage shows the slide file at index in the pager
func (m *Model) openPage(index int) tea.Cmd {
	if m.snapshot == nil {
		return nil
	}
	slide, ok := m.snapshot.At(index)
	if !ok {
		return nil
	}
	return m.pagerCmd(slide.Name, func() error {
		f, err := os.Open(slide.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		return m.pager.Show(f)
	})
}

// pagerCmd runs show with rendering paused
func (m *Model) pagerCmd(what string, show func() error) tea.Cmd {
	if m.program == nil {
		return func() tea.Msg { return pagerMsg{what: what, err: errNoProgram} }
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := show()
		m.program.Send(resumeRenderingMsg{})
		return pagerMsg{what: what, err: err}
	}
}

// setStatus shows a message and clears it after statusTimeout
func (m *Model) setStatus(kind state.StatusKind, msg string) tea.Cmd {
	m.state.SetStatus(kind, msg)
	return m.expireStatus()
}

func (m *Model) expireStatus() tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

// layout gives the carousel whatever the surrounding chrome leaves
func (m *Model) layout() {
	cols, rows := m.renderer.Chrome(m.viewState(""))
	if m.config.UI.ShowIndicator {
		rows++
	}
	m.carousel.SetSize(m.width-cols, m.height-rows)
}

func (m *Model) viewState(body string) views.ViewState {
	v := m.carousel.ScrollView()
	vs := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		DeckDir:       m.state.DeckDir,
		Scanning:      m.state.Scanning,
		Found:         m.state.Found,
		Slides:        v.NumberOfPages(),
		Current:       v.CurrentPageIndex(),
		AutoScrolling: v.AutoScrolling(),
		Wrap:          v.ShouldWrap(),
		Orientation:   v.ScrollDirection().String(),
		StatusMessage: m.state.StatusMessage,
		StatusKind:    int(m.state.StatusKind),
		ShowBorder:    m.config.UI.ShowBorder,
		Carousel:      body,
		Prompt:        m.input.View(),
	}
	if m.state.ShowHelp {
		vs.HelpView = m.help.View(m.keys)
	}
	return vs
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.state.InPagerMode {
		return ""
	}
	out := m.renderer.Render(m.viewState(m.carousel.View()))
	if m.zones != nil {
		out = m.zones.Scan(out)
	}
	return out
}

func announceReady() tea.Msg {
	fmt.Fprintln(os.Stderr, "__READY__")
	return nil
}
