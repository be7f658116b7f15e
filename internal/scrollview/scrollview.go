package scrollview

import (
	"fmt"
	"log"
	"time"

	"pageloop/internal/scrollview/autoscroll"
	"pageloop/internal/scrollview/geom"
	"pageloop/internal/scrollview/index"
	"pageloop/internal/scrollview/layout"
	"pageloop/internal/scrollview/pool"
)

// State is the phase of the scroll state machine
type State int

const (
	StateIdle State = iota
	StateDragging
	StateDecelerating
	StateAnimating
	StateAutoScrolling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateDecelerating:
		return "decelerating"
	case StateAnimating:
		return "animating"
	case StateAutoScrolling:
		return "auto-scrolling"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ScrollView is an endless paged scroll view backed by a finite data source.
// Three recycled pages sit in the previous, current and next slots; the
// content offset never leaves a window three pages long, and every committed
// page change recenters it.
//
// A ScrollView is not safe for concurrent use. Every method must be called
// from the event loop that owns the scheduler.
type ScrollView struct {
	cfg      Config
	ds       DataSource
	delegate Delegate
	sched    autoscroll.Scheduler
	timer    *autoscroll.Timer
	pool     *pool.Pool[*Page]
	lent     []*Page // dequeued by the data source during fetch
	fetching bool
	layout   layout.Engine
	resolver index.Resolver

	loaded  bool
	closed  bool
	count   int
	virtual int
	current int
	indices [layout.SlotCount]int

	offset float64
	state  State
	anim   *animation
	decel  *deceleration
	jump   *jump
	pan    geom.Point

	inTurn bool
	pageID int
}

// New creates a scroll view. A nil scheduler gets a ManualScheduler, which
// only runs tasks when the host drives it.
func New(cfg Config, sched autoscroll.Scheduler) *ScrollView {
	if sched == nil {
		sched = autoscroll.NewManualScheduler()
	}
	if cfg.FlickVelocity <= 0 {
		cfg.FlickVelocity = DefaultConfig().FlickVelocity
	}
	v := &ScrollView{
		cfg:      cfg,
		sched:    sched,
		delegate: NopDelegate{},
		layout:   layout.New(cfg.ScrollDirection, geom.Size{}),
		indices:  emptyIndices(),
	}
	v.pool = pool.New(v.newPage, (*Page).PrepareForReuse)
	v.timer = autoscroll.NewTimer(sched, cfg.Interval, func() {
		v.turn(v.autoAdvance)
	})
	return v
}

func emptyIndices() [layout.SlotCount]int {
	return [layout.SlotCount]int{-1, -1, -1}
}

func (v *ScrollView) newPage() *Page {
	v.pageID++
	return &Page{ID: v.pageID, Index: -1}
}

// SetDataSource replaces the data source. The pages are reloaded straight
// away when the view already has a size, otherwise on the first SetSize.
func (v *ScrollView) SetDataSource(ds DataSource) {
	v.ds = ds
	v.loaded = false
	if v.layout.Ready() {
		v.ReloadData()
	}
}

// SetDelegate replaces the delegate; nil restores the defaults
func (v *ScrollView) SetDelegate(d Delegate) {
	if d == nil {
		d = NopDelegate{}
	}
	v.delegate = d
}

// Scheduler returns the scheduler driving timers and deferred calls
func (v *ScrollView) Scheduler() autoscroll.Scheduler {
	return v.sched
}

// SetSize sets the viewport size, which is also the size of one page
func (v *ScrollView) SetSize(size geom.Size) {
	if size == v.layout.PageSize {
		return
	}
	v.turn(func() {
		v.layout = layout.New(v.cfg.ScrollDirection, size)
		if !v.loaded && v.ds != nil {
			v.reloadData()
			return
		}
		v.resetLayout()
	})
}

// Size returns the viewport size
func (v *ScrollView) Size() geom.Size {
	return v.layout.PageSize
}

// ReloadData discards every page, reads the page count again and shows
// the configured PageIndex
func (v *ScrollView) ReloadData() {
	v.turn(v.reloadData)
}

func (v *ScrollView) reloadData() {
	if v.closed {
		return
	}
	v.cancelMotion()
	v.pool.Reset()
	v.indices = emptyIndices()
	v.loaded = true

	v.count = v.countPages()
	v.resolver = index.New(v.count, v.cfg.ShouldWrap)
	v.layout = layout.New(v.cfg.ScrollDirection, v.layout.PageSize)
	v.offset = v.layout.RestOffset()

	if v.resolver.Empty() {
		v.debugf("reload: data source is empty")
		v.timer.Stop()
		v.current, v.virtual = 0, 0
		v.offset = 0
		v.state = StateIdle
		return
	}

	v.current, _ = v.resolver.Normalize(v.cfg.PageIndex)
	v.virtual = v.current
	v.fill(layout.SlotCurrent, v.current, true)
	v.fillNeighbours()
	v.debugf("reload: %d pages, current %d", v.count, v.current)
	v.settle()
}

// UpdateData asks the data source for fresh content for every live page,
// keeping the current index. A page the data source fails to supply keeps
// its previous content.
func (v *ScrollView) UpdateData() {
	v.turn(v.updateData)
}

func (v *ScrollView) updateData() {
	if v.closed || !v.loaded || v.resolver.Empty() {
		return
	}
	if n := v.countPages(); n != v.count {
		v.debugf("update: page count changed from %d to %d without a reload, skipping", v.count, n)
		return
	}
	for _, s := range layout.Slots {
		v.refresh(s)
	}
}

// ResetLayout recomputes geometry from the current size and configuration,
// keeping the current index
func (v *ScrollView) ResetLayout() {
	v.turn(v.resetLayout)
}

func (v *ScrollView) resetLayout() {
	if v.closed {
		return
	}
	v.snapMotion()
	v.layout = layout.New(v.cfg.ScrollDirection, v.layout.PageSize)
	v.resolver = index.New(v.count, v.cfg.ShouldWrap)
	if v.resolver.Empty() {
		v.offset = 0
		return
	}
	v.offset = v.layout.RestOffset()
	if v.indices[layout.SlotCurrent] != v.current {
		v.fill(layout.SlotCurrent, v.current, true)
	}
	for _, s := range []layout.Slot{layout.SlotPrevious, layout.SlotNext} {
		idx, ok := v.neighbour(s)
		if !ok || v.indices[s] != idx {
			v.fill(s, idx, ok)
		}
	}
	v.tracef("layout reset: %s, extent %.1f", v.layout.Orientation, v.layout.Extent())
}

// StartAutoScroll starts advancing one page every Interval. It does nothing
// when there are no pages or while the user is dragging.
func (v *ScrollView) StartAutoScroll() {
	v.turn(func() {
		if v.closed || v.resolver.Empty() {
			v.debugf("auto-scroll: nothing to scroll")
			return
		}
		if v.state == StateDragging {
			v.debugf("auto-scroll: refused while dragging")
			return
		}
		v.timer.SetInterval(v.cfg.Interval)
		v.timer.Start()
		if v.state == StateIdle {
			v.setState(StateAutoScrolling)
		}
	})
}

// StopAutoScroll cancels the timer. A page animation already under way
// finishes normally.
func (v *ScrollView) StopAutoScroll() {
	v.turn(func() {
		v.timer.Stop()
		if v.state == StateAutoScrolling {
			v.setState(StateIdle)
		}
	})
}

// AutoScrolling reports whether the auto-scroll timer is running
func (v *ScrollView) AutoScrolling() bool {
	return v.timer.Running()
}

// ScrollToPage moves to the page at index. Non-adjacent pages are reached
// through the neighbouring slot in the shorter direction, so the delegate
// sees a single page change.
func (v *ScrollView) ScrollToPage(index int, animated bool) error {
	if v.closed {
		return ErrClosed
	}
	if v.resolver.Empty() {
		return nil
	}
	if !v.resolver.Valid(index) {
		return fmt.Errorf("scroll to page %d of %d: %w", index, v.count, ErrInvalidIndex)
	}
	v.turn(func() {
		v.scrollToPage(index, animated)
	})
	return nil
}

// ScrollNext moves one page forward
func (v *ScrollView) ScrollNext(animated bool) {
	v.turn(func() { v.scrollBy(layout.Next, animated, true) })
}

// ScrollPrevious moves one page back
func (v *ScrollView) ScrollPrevious(animated bool) {
	v.turn(func() { v.scrollBy(layout.Previous, animated, true) })
}

// CurrentPage returns the page in the current slot, nil when there is none
func (v *ScrollView) CurrentPage() *Page {
	return v.pool.Attached(layout.SlotCurrent)
}

// CurrentPageIndex returns the data source index of the current page
func (v *ScrollView) CurrentPageIndex() int {
	return v.current
}

// VirtualIndex returns the unbounded page position
func (v *ScrollView) VirtualIndex() int {
	return v.virtual
}

// NumberOfPages returns the page count captured by the last reload
func (v *ScrollView) NumberOfPages() int {
	return v.count
}

// DequeueReusablePage returns a page not attached to any slot
func (v *ScrollView) DequeueReusablePage() *Page {
	page := v.pool.Dequeue()
	if v.fetching {
		v.lent = append(v.lent, page)
	}
	return page
}

// SlotPage returns the page bound to a slot
func (v *ScrollView) SlotPage(s layout.Slot) *Page {
	return v.pool.Attached(s)
}

// SlotIndex returns the data source index shown in a slot, -1 when empty
func (v *ScrollView) SlotIndex(s layout.Slot) int {
	return v.indices[s]
}

// SlotFrame returns a slot's frame relative to the viewport
func (v *ScrollView) SlotFrame(s layout.Slot) geom.Rect {
	return v.layout.OnScreen(s, v.offset)
}

// PagesCreated is the number of page objects the pool has built
func (v *ScrollView) PagesCreated() int {
	return v.pool.Created()
}

// State returns the state machine phase
func (v *ScrollView) State() State {
	return v.state
}

// ContentOffset returns the scroll offset inside the content window
func (v *ScrollView) ContentOffset() geom.Point {
	return geom.PointAlong(v.layout.Orientation, v.offset)
}

// ContentSize returns the size of the content window
func (v *ScrollView) ContentSize() geom.Size {
	return v.layout.ContentSize()
}

// NeedsFrames reports whether Step must keep being called
func (v *ScrollView) NeedsFrames() bool {
	return v.anim != nil || v.decel != nil
}

// Close stops the timer and releases every page. The view is inert afterwards.
func (v *ScrollView) Close() {
	v.turn(func() {
		v.timer.Stop()
		v.cancelMotion()
		v.pool.Reset()
		v.indices = emptyIndices()
		v.closed = true
		v.state = StateIdle
	})
}

// Config returns a copy of the current settings
func (v *ScrollView) Config() Config {
	return v.cfg
}

// PageIndex returns the index shown after a reload
func (v *ScrollView) PageIndex() int { return v.cfg.PageIndex }

// SetPageIndex sets the index shown after the next reload
func (v *ScrollView) SetPageIndex(i int) { v.cfg.PageIndex = i }

// ScrollDirection returns the scroll axis
func (v *ScrollView) ScrollDirection() geom.Orientation { return v.cfg.ScrollDirection }

// SetScrollDirection changes the scroll axis and resets the layout
func (v *ScrollView) SetScrollDirection(o geom.Orientation) {
	if o == v.cfg.ScrollDirection {
		return
	}
	v.cfg.ScrollDirection = o
	v.ResetLayout()
}

// AutoScrollDirection returns the direction auto-scroll moves the content
func (v *ScrollView) AutoScrollDirection() autoscroll.Direction { return v.cfg.AutoScrollDirection }

// SetAutoScrollDirection changes the direction of the next auto-scroll tick
func (v *ScrollView) SetAutoScrollDirection(d autoscroll.Direction) {
	v.cfg.AutoScrollDirection = d
}

// Interval returns the auto-scroll period
func (v *ScrollView) Interval() time.Duration { return v.timer.Interval() }

// SetInterval changes the auto-scroll period; a running timer restarts
func (v *ScrollView) SetInterval(d time.Duration) {
	v.cfg.Interval = d
	v.timer.SetInterval(d)
}

// ShouldWrap reports whether scrolling wraps around the data source ends
func (v *ScrollView) ShouldWrap() bool { return v.cfg.ShouldWrap }

// SetShouldWrap changes the wrap policy and rebinds the neighbouring pages
func (v *ScrollView) SetShouldWrap(wrap bool) {
	if wrap == v.cfg.ShouldWrap {
		return
	}
	v.cfg.ShouldWrap = wrap
	v.ResetLayout()
}

// TapEnabled reports whether taps reach the delegate
func (v *ScrollView) TapEnabled() bool { return v.cfg.TapEnabled }

// SetTapEnabled enables or disables tap notifications
func (v *ScrollView) SetTapEnabled(enabled bool) { v.cfg.TapEnabled = enabled }

// AnimationDuration returns the length of programmatic scroll animations
func (v *ScrollView) AnimationDuration() time.Duration { return v.cfg.AnimationDuration }

// SetAnimationDuration changes the length of programmatic scroll animations
func (v *ScrollView) SetAnimationDuration(d time.Duration) { v.cfg.AnimationDuration = d }

// TimingCurve returns the easing of programmatic scroll animations
func (v *ScrollView) TimingCurve() TimingCurve { return v.cfg.TimingCurve }

// SetTimingCurve changes the easing of programmatic scroll animations
func (v *ScrollView) SetTimingCurve(c TimingCurve) { v.cfg.TimingCurve = c }

// SetRestartAutoScrollAfterDrag chooses between a full interval and the
// interrupted one when a drag ends
func (v *ScrollView) SetRestartAutoScrollAfterDrag(restart bool) {
	v.cfg.RestartAutoScrollAfterDrag = restart
}

// Debug reports whether diagnostic logging is on
func (v *ScrollView) Debug() bool { return v.cfg.Debug }

// SetDebug toggles diagnostic logging
func (v *ScrollView) SetDebug(on bool) { v.cfg.Debug = on }

// VerboseDebug reports whether per-offset logging is on
func (v *ScrollView) VerboseDebug() bool { return v.cfg.VerboseDebug }

// SetVerboseDebug toggles per-offset logging
func (v *ScrollView) SetVerboseDebug(on bool) { v.cfg.VerboseDebug = on }

// turn runs fn as one atomic event turn. Calls arriving while a turn is in
// progress come from a collaborator callback and are queued to the next turn.
func (v *ScrollView) turn(fn func()) {
	if v.inTurn {
		v.tracef("re-entrant call queued to next turn")
		v.sched.Schedule(0, func() { v.turn(fn) })
		return
	}
	v.inTurn = true
	defer func() { v.inTurn = false }()
	fn()
}

func (v *ScrollView) countPages() (n int) {
	if v.ds == nil {
		return 0
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("scrollview: data source panicked counting pages: %v", r)
			n = 0
		}
	}()
	n = v.ds.NumberOfPages()
	if n < 0 {
		v.debugf("data source reported %d pages, treating as empty", n)
		n = 0
	}
	return n
}

func (v *ScrollView) debugf(format string, args ...interface{}) {
	if v.cfg.Debug || v.cfg.VerboseDebug {
		log.Printf("scrollview: "+format, args...)
	}
}

func (v *ScrollView) tracef(format string, args ...interface{}) {
	if v.cfg.VerboseDebug {
		log.Printf("scrollview: "+format, args...)
	}
}
