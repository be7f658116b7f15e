package ui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pageloop/internal/config"
	"pageloop/internal/discovery"
	"pageloop/internal/domain"
	"pageloop/internal/eventbus"
	"pageloop/internal/scrollview/geom"
	"pageloop/internal/ui/carousel"
	"pageloop/internal/ui/state"
)

type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() { return func() {} }
func (b *recordingBus) Close()                                                   {}

type fakeScanner struct {
	scanning bool
	started  []string
}

func (s *fakeScanner) StartScan(_ context.Context, dir string) error {
	if s.scanning {
		return discovery.ErrScanInProgress
	}
	s.started = append(s.started, dir)
	return nil
}

func (s *fakeScanner) StopScan()      {}
func (s *fakeScanner) Scanning() bool { return s.scanning }

type memConfig struct {
	saved []config.Config
}

func (c *memConfig) Load() (*config.Config, error)                  { return config.DefaultConfig(), nil }
func (c *memConfig) LoadFromPath(string) (*config.Config, error)    { return config.DefaultConfig(), nil }
func (c *memConfig) SaveToPath(cfg *config.Config, _ string) error { return c.Save(cfg) }
func (c *memConfig) Path() string                                   { return "mem.toml" }
func (c *memConfig) Save(cfg *config.Config) error {
	c.saved = append(c.saved, *cfg)
	return nil
}

func slides(names ...string) []domain.Slide {
	out := make([]domain.Slide, len(names))
	for i, n := range names {
		out[i] = domain.Slide{Path: "/deck/" + n + ".md", Name: n, Title: "Title " + n, Body: "about " + n}
	}
	return out
}

type fixture struct {
	m       *Model
	bus     *recordingBus
	scanner *fakeScanner
	cfgs    *memConfig
	now     time.Time
}

func newModel(t *testing.T, tweak ...func(*config.Config)) *fixture {
	t.Helper()
	t.Setenv("PAGELOOP_E2E_TEST", "")
	cfg := config.DefaultConfig()
	cfg.Deck.Dir = "/deck"
	cfg.Scroll.AnimationSeconds = 0
	for _, fn := range tweak {
		fn(cfg)
	}
	f := &fixture{
		bus:     &recordingBus{},
		scanner: &fakeScanner{},
		cfgs:    &memConfig{},
		now:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	f.m = NewModel(f.bus, cfg,
		WithConfigService(f.cfgs),
		WithDiscovery(f.scanner),
		WithClock(func() time.Time { return f.now }),
	)
	f.m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	return f
}

func (f *fixture) event(e eventbus.DomainEvent) {
	f.m.Update(EventMsg{Event: e})
}

func (f *fixture) scanStarted() {
	f.scanner.scanning = true
	f.event(eventbus.ScanStartedEvent{Dir: "/deck"})
}

func (f *fixture) scanCompleted(e eventbus.ScanCompletedEvent) {
	f.scanner.scanning = false
	f.event(e)
}

func (f *fixture) load(names ...string) {
	f.scanStarted()
	f.scanCompleted(eventbus.ScanCompletedEvent{Dir: "/deck", Slides: slides(names...)})
}

func (f *fixture) key(s string) tea.Cmd {
	_, cmd := f.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return cmd
}

func (f *fixture) current() string {
	v := f.m.Carousel().ScrollView()
	return v.CurrentPage().Title
}

func TestScanCompletionLoadsDeck(t *testing.T) {
	f := newModel(t)

	f.scanStarted()
	assert.True(t, f.m.State().Scanning)
	f.event(eventbus.SlideDiscoveredEvent{Slide: slides("a")[0]})
	assert.Equal(t, 1, f.m.State().Found)

	f.scanCompleted(eventbus.ScanCompletedEvent{Dir: "/deck", Slides: slides("b", "a", "c")})
	assert.False(t, f.m.State().Scanning)
	assert.Equal(t, 3, f.m.Carousel().ScrollView().NumberOfPages())
	assert.Equal(t, "Title a", f.current())
	assert.Equal(t, "Loaded 3 slides", f.m.State().StatusMessage)
	assert.Equal(t, state.StatusSuccess, f.m.State().StatusKind)
}

func TestReloadKeepsCurrentSlide(t *testing.T) {
	f := newModel(t)
	f.load("a", "b", "c")
	f.key("l")
	require.Equal(t, "Title b", f.current())

	// a new slide sorts before b, so b's index moves
	f.load("a", "aa", "b", "c")
	assert.Equal(t, "Title b", f.current())
	assert.Equal(t, 2, f.m.Carousel().ScrollView().CurrentPageIndex())

	// b disappears: stay at the same index
	f.load("a", "aa", "c")
	assert.Equal(t, "Title c", f.current())
}

func TestCancelledScanKeepsDeck(t *testing.T) {
	f := newModel(t)
	f.load("a", "b")

	f.scanStarted()
	f.scanCompleted(eventbus.ScanCompletedEvent{Dir: "/deck", Cancelled: true})
	assert.Equal(t, 2, f.m.Carousel().ScrollView().NumberOfPages())
	assert.Equal(t, "Scan cancelled", f.m.State().StatusMessage)
}

func TestDeckChangesRescan(t *testing.T) {
	f := newModel(t)
	f.load("a")

	f.event(eventbus.DeckChangedEvent{Paths: []string{"/deck/b.md"}})
	assert.Equal(t, []string{"/deck"}, f.scanner.started)

	// a change during a scan waits for it to finish
	f.scanStarted()
	f.event(eventbus.DeckChangedEvent{Paths: []string{"/deck/c.md"}})
	assert.Len(t, f.scanner.started, 1)
	assert.True(t, f.m.State().RescanQueued)

	f.scanCompleted(eventbus.ScanCompletedEvent{Dir: "/deck", Slides: slides("a", "b")})
	assert.Len(t, f.scanner.started, 2)
	assert.Equal(t, 2, f.m.Carousel().ScrollView().NumberOfPages())
}

func TestRescanWhileBusyIsQueued(t *testing.T) {
	f := newModel(t)
	f.scanner.scanning = true
	f.key("r")
	assert.True(t, f.m.State().RescanQueued)
	assert.Empty(t, f.scanner.started)
}

func TestTogglesUpdateWidgetAndConfig(t *testing.T) {
	f := newModel(t)
	f.load("a", "b")
	v := f.m.Carousel().ScrollView()

	f.key("w")
	assert.False(t, v.ShouldWrap())
	assert.False(t, f.m.config.Scroll.Wrap)
	assert.Equal(t, "Wrapping off", f.m.State().StatusMessage)

	f.key("v")
	assert.Equal(t, geom.Vertical, v.ScrollDirection())
	assert.Equal(t, "vertical", f.m.config.Scroll.Orientation)

	f.key("a")
	assert.True(t, v.AutoScrolling())
}

func TestSaveWritesCurrentSettings(t *testing.T) {
	f := newModel(t)
	f.load("a", "b", "c")
	f.key("l")
	f.key("l")
	f.key("w")

	f.key("S")
	require.Len(t, f.cfgs.saved, 1)
	saved := f.cfgs.saved[0]
	assert.Equal(t, 2, saved.Scroll.StartPage)
	assert.False(t, saved.Scroll.Wrap)
	assert.Equal(t, "horizontal", saved.Scroll.Orientation)

	f.event(eventbus.ConfigSavedEvent{Path: "mem.toml"})
	assert.Equal(t, "Config saved to mem.toml", f.m.State().StatusMessage)
}

func TestPageMessagesArePublished(t *testing.T) {
	f := newModel(t)
	f.load("a", "b")

	f.m.Update(carousel.PageChangedMsg{Index: 1, Direction: 1})
	_, cmd := f.m.Update(carousel.TappedMsg{Index: 1})
	assert.Equal(t, []eventbus.DomainEvent{
		eventbus.PageChangedEvent{Index: 1, Direction: 1},
		eventbus.PageTappedEvent{Index: 1},
	}, f.bus.events)

	// no program to hand the terminal to
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, pagerMsg{}, msg)
	f.m.Update(msg)
	assert.Equal(t, state.StatusError, f.m.State().StatusKind)
	assert.Contains(t, f.m.State().StatusMessage, "Could not open b")
}

func TestLateScanStartIgnored(t *testing.T) {
	f := newModel(t)
	f.load("a")
	f.event(eventbus.ScanStartedEvent{Dir: "/deck"})
	assert.False(t, f.m.State().Scanning)
}

func (f *fixture) typeText(s string) {
	for _, r := range s {
		f.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (f *fixture) enter() {
	f.m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSearchJumpsToMatch(t *testing.T) {
	f := newModel(t)
	f.load("alpha", "beta", "gamma")

	f.key("/")
	f.typeText("gam")
	assert.Contains(t, ansi.Strip(f.m.View()), "Search: gam")
	// prompt keys do not reach the carousel
	assert.Equal(t, "Title alpha", f.current())

	f.enter()
	assert.Equal(t, "Title gamma", f.current())
	assert.NotContains(t, ansi.Strip(f.m.View()), "Search:")

	f.key("/")
	f.typeText("nothing")
	f.enter()
	assert.Equal(t, "Title gamma", f.current())
	assert.Equal(t, `No slide matches "nothing"`, f.m.State().StatusMessage)
}

func TestGotoSlide(t *testing.T) {
	f := newModel(t)
	f.load("a", "b", "c")

	f.key(":")
	f.typeText("3")
	f.enter()
	assert.Equal(t, "Title c", f.current())

	f.key(":")
	f.typeText("9")
	f.enter()
	assert.Equal(t, "Title c", f.current())
	assert.Equal(t, "No slide 9", f.m.State().StatusMessage)
	assert.Equal(t, state.StatusError, f.m.State().StatusKind)
}

func TestEscapeClosesPrompt(t *testing.T) {
	f := newModel(t)
	f.load("a", "b")

	f.key(":")
	f.m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	f.key("l")
	assert.Equal(t, "Title b", f.current())
}

func TestAutoStart(t *testing.T) {
	f := newModel(t, func(c *config.Config) { c.Scroll.AutoStart = true })
	assert.False(t, f.m.Carousel().ScrollView().AutoScrolling(), "nothing to scroll yet")
	f.load("a", "b")
	assert.True(t, f.m.Carousel().ScrollView().AutoScrolling())
}

func TestStaleStatusClearIgnored(t *testing.T) {
	f := newModel(t)
	f.event(eventbus.ErrorEvent{Message: "boom"})
	assert.Equal(t, "Error: boom", f.m.State().StatusMessage)
	seq := f.m.statusSeq

	f.m.Update(clearStatusMsg{seq: seq - 1})
	assert.NotEmpty(t, f.m.State().StatusMessage)
	f.m.Update(clearStatusMsg{seq: seq})
	assert.Empty(t, f.m.State().StatusMessage)
}

func TestViewLayout(t *testing.T) {
	f := newModel(t)
	f.load("a", "b")

	out := ansi.Strip(f.m.View())
	lines := strings.Split(out, "\n")
	assert.LessOrEqual(t, len(lines), 20)
	assert.True(t, strings.HasPrefix(lines[0], "pageloop"))
	assert.Contains(t, out, "Title a")
	assert.Contains(t, out, "Loaded 2 slides")
	assert.Contains(t, out, "next")
	for _, l := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(l), 60)
	}
}

func TestQuitClosesWidget(t *testing.T) {
	f := newModel(t)
	f.load("a")
	cmd := f.key("q")
	require.NotNil(t, cmd)
	_, cmd = f.m.Update(cmd())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
