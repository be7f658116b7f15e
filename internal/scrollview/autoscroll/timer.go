package autoscroll

import (
	"fmt"
	"time"
)

// Direction is the way automatic scrolling moves the content
type Direction int

const (
	RightToLeft Direction = iota
	LeftToRight
	TopToBottom
	BottomToTop
)

func (d Direction) String() string {
	switch d {
	case RightToLeft:
		return "right-to-left"
	case LeftToRight:
		return "left-to-right"
	case TopToBottom:
		return "top-to-bottom"
	case BottomToTop:
		return "bottom-to-top"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection maps a config string onto a Direction
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "right-to-left", "rtl", "":
		return RightToLeft, nil
	case "left-to-right", "ltr":
		return LeftToRight, nil
	case "top-to-bottom", "ttb":
		return TopToBottom, nil
	case "bottom-to-top", "btt":
		return BottomToTop, nil
	default:
		return RightToLeft, fmt.Errorf("unknown auto-scroll direction %q", s)
	}
}

// Step is +1 when content moving this way reveals the next page and -1 when
// it reveals the previous one
func (d Direction) Step() int {
	switch d {
	case RightToLeft, BottomToTop:
		return 1
	default:
		return -1
	}
}

// DefaultInterval is used when a timer is configured with a non-positive interval
const DefaultInterval = 3 * time.Second

// Timer fires onTick every interval while running. Suspending keeps the
// timer alive but cancels the pending tick. Resume continues with whatever
// was left of the interval; Restart begins a full one.
type Timer struct {
	sched    Scheduler
	interval time.Duration
	onTick   func()

	running   bool
	suspended bool
	handle    Handle
	due       time.Time
	remaining time.Duration
	ticks     int
}

// NewTimer creates a stopped timer
func NewTimer(sched Scheduler, interval time.Duration, onTick func()) *Timer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Timer{sched: sched, interval: interval, onTick: onTick}
}

// Start begins ticking. Starting a running timer restarts its interval.
func (t *Timer) Start() {
	t.cancel()
	t.running = true
	t.suspended = false
	t.schedule(t.interval)
}

// Stop cancels any pending tick. No callback runs after Stop returns.
func (t *Timer) Stop() {
	t.cancel()
	t.running = false
	t.suspended = false
}

// Suspend pauses a running timer
func (t *Timer) Suspend() {
	if !t.running || t.suspended {
		return
	}
	t.remaining = t.due.Sub(t.sched.Now())
	t.cancel()
	t.suspended = true
}

// Resume continues a suspended timer with the rest of its interval
func (t *Timer) Resume() {
	if !t.running || !t.suspended {
		return
	}
	t.suspended = false
	d := t.remaining
	if d <= 0 || d > t.interval {
		d = t.interval
	}
	t.schedule(d)
}

// Restart continues a suspended timer with a full interval
func (t *Timer) Restart() {
	if !t.running {
		return
	}
	t.Start()
}

// SetInterval changes the period. A running timer restarts with it.
func (t *Timer) SetInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultInterval
	}
	t.interval = d
	if t.running && !t.suspended {
		t.cancel()
		t.schedule(t.interval)
	}
}

// Interval returns the period between ticks
func (t *Timer) Interval() time.Duration {
	return t.interval
}

// Running reports whether the timer has been started and not stopped
func (t *Timer) Running() bool {
	return t.running
}

// Suspended reports whether a running timer is paused
func (t *Timer) Suspended() bool {
	return t.running && t.suspended
}

// Active reports whether a tick is scheduled
func (t *Timer) Active() bool {
	return t.handle != nil
}

// Ticks counts callbacks fired since creation
func (t *Timer) Ticks() int {
	return t.ticks
}

func (t *Timer) schedule(d time.Duration) {
	t.due = t.sched.Now().Add(d)
	var h Handle
	h = t.sched.Schedule(d, func() {
		if t.handle != h {
			return
		}
		t.handle = nil
		if !t.running || t.suspended {
			return
		}
		t.ticks++
		t.schedule(t.interval)
		if t.onTick != nil {
			t.onTick()
		}
	})
	t.handle = h
}

func (t *Timer) cancel() {
	if t.handle != nil {
		t.handle.Cancel()
		t.handle = nil
	}
}
