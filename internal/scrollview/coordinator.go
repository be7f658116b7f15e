package scrollview

import (
	"log"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"pageloop/internal/scrollview/geom"
	"pageloop/internal/scrollview/layout"
)

const (
	springFrequency = 12.0
	springDamping   = 1.0
	maxDeceleration = 2 * time.Second
)

// a deceleration is settled once it is this close and this slow
const (
	settleDistance = 0.5
	settleVelocity = 2.0
)

// animation interpolates the offset with a timing curve
type animation struct {
	from, to     float64
	elapsed      time.Duration
	duration     time.Duration
	curve        TimingCurve
	programmatic bool
}

// deceleration settles a released drag on a page with a spring
type deceleration struct {
	target   float64
	velocity float64
	elapsed  time.Duration
}

// jump is a programmatic scroll to a page that is not adjacent. The target
// is preloaded into the slot on the side it is reached from.
type jump struct {
	index    int
	dir      layout.Direction
	distance int
}

// BeginDrag starts a manual drag. Animations freeze where they are and
// auto-scroll is suspended until the drag ends.
func (v *ScrollView) BeginDrag() {
	v.turn(func() {
		if v.closed || v.resolver.Empty() {
			return
		}
		v.anim = nil
		v.decel = nil
		v.pan = geom.Point{}
		v.timer.Suspend()
		v.setState(StateDragging)
		v.callDelegate("WillBeginDragging", func(d Delegate) { d.WillBeginDragging(v) })
		v.callDelegate("DidPan", func(d Delegate) { d.DidPan(v, PanInfo{State: PanBegan}) })
	})
}

// DragBy moves the content offset by delta during a drag
func (v *ScrollView) DragBy(delta geom.Point) {
	v.turn(func() {
		if v.state != StateDragging {
			return
		}
		v.pan = v.pan.Add(delta)
		v.setOffset(v.offset + delta.Along(v.layout.Orientation))
		pan := PanInfo{State: PanChanged, Translation: v.pan}
		v.callDelegate("DidPan", func(d Delegate) { d.DidPan(v, pan) })
	})
}

// EndDrag releases a drag with the given offset velocity in points per
// second. The view decelerates onto a page boundary the delegate may move.
func (v *ScrollView) EndDrag(velocity geom.Point) {
	v.turn(func() {
		if v.state != StateDragging {
			return
		}
		axis := v.layout.Orientation
		vel := velocity.Along(axis)
		target := v.layout.PageTarget(v.offset, vel, v.cfg.FlickVelocity*v.layout.Extent())
		rest := v.layout.RestOffset()
		if (target > rest && !v.canScroll(layout.Next)) || (target < rest && !v.canScroll(layout.Previous)) {
			target = rest
		}

		proposed := geom.PointAlong(axis, target)
		v.callDelegate("WillEndDragging", func(d Delegate) {
			proposed = d.WillEndDragging(v, velocity, proposed)
		})
		target = math.Max(0, math.Min(v.layout.MaxOffset(), proposed.Along(axis)))

		pan := PanInfo{State: PanEnded, Translation: v.pan, Velocity: velocity}
		v.callDelegate("DidPan", func(d Delegate) { d.DidPan(v, pan) })

		v.resumeTimer()

		if math.Abs(target-v.offset) < settleDistance && math.Abs(vel) < settleVelocity {
			v.setOffset(target)
			v.settle()
			return
		}
		v.decel = &deceleration{target: target, velocity: vel}
		v.setState(StateDecelerating)
	})
}

// Tap reports a tap on the viewport to the delegate
func (v *ScrollView) Tap(point geom.Point) {
	v.turn(func() {
		if v.closed || !v.cfg.TapEnabled || v.resolver.Empty() {
			return
		}
		if v.layout.Ready() && !v.layout.OnScreen(layout.SlotCurrent, v.layout.RestOffset()).Contains(point) {
			return
		}
		idx := v.current
		v.debugf("tap on page %d", idx)
		v.callDelegate("DidTap", func(d Delegate) { d.DidTap(v, idx) })
	})
}

// Step advances animations and deceleration by dt
func (v *ScrollView) Step(dt time.Duration) {
	if dt <= 0 {
		return
	}
	v.turn(func() {
		switch {
		case v.anim != nil:
			v.stepAnimation(dt)
		case v.decel != nil:
			v.stepDeceleration(dt)
		}
	})
}

func (v *ScrollView) stepAnimation(dt time.Duration) {
	a := v.anim
	a.elapsed += dt
	p := 1.0
	if a.duration > 0 {
		p = math.Min(1, float64(a.elapsed)/float64(a.duration))
	}
	v.setOffset(a.from + (a.to-a.from)*a.curve.Ease(p))
	if v.anim != a {
		return
	}
	if p >= 1 {
		v.anim = nil
		v.settle()
	}
}

func (v *ScrollView) stepDeceleration(dt time.Duration) {
	d := v.decel
	d.elapsed += dt
	spring := harmonica.NewSpring(dt.Seconds(), springFrequency, springDamping)
	pos, vel := spring.Update(v.offset, d.velocity, d.target)
	d.velocity = vel
	v.setOffset(pos)
	if v.decel != d {
		return
	}
	if (math.Abs(v.offset-d.target) < settleDistance && math.Abs(d.velocity) < settleVelocity) || d.elapsed >= maxDeceleration {
		v.setOffset(d.target)
		v.decel = nil
		v.settle()
	}
}

// autoAdvance is the auto-scroll tick: one page in the configured direction
func (v *ScrollView) autoAdvance() {
	if v.closed || v.resolver.Empty() || v.state == StateDragging {
		return
	}
	dir := layout.Direction(v.cfg.AutoScrollDirection.Step())
	v.debugf("auto-scroll tick towards %s", dir)
	v.scrollBy(dir, true, false)
}

// scrollBy moves one page in dir. Pending motion is completed first so
// every command starts from a page boundary.
func (v *ScrollView) scrollBy(dir layout.Direction, animated, programmatic bool) {
	if v.closed || v.resolver.Empty() {
		return
	}
	v.snapMotion()
	if !v.canScroll(dir) {
		v.debugf("scroll %s refused at page %d", dir, v.current)
		v.settle()
		return
	}
	if animated && v.layout.Ready() {
		v.animateTo(v.layout.RestOffset()+float64(dir)*v.layout.Extent(), programmatic)
		return
	}
	v.crossImmediately(dir)
	v.settle()
}

func (v *ScrollView) scrollToPage(index int, animated bool) {
	if v.closed || !v.resolver.Valid(index) {
		return
	}
	v.snapMotion()
	v.cancelJump()
	d := v.resolver.Distance(v.current, index)
	if d == 0 {
		v.offset = v.layout.RestOffset()
		v.settle()
		return
	}
	dir := layout.Next
	if d < 0 {
		dir = layout.Previous
	}
	if !animated || !v.layout.Ready() {
		if !v.shouldScroll(dir) {
			v.debugf("scroll to page %d vetoed", index)
			v.settle()
			return
		}
		v.virtual += d
		v.current = index
		v.fill(layout.SlotCurrent, index, true)
		v.fillNeighbours()
		v.offset = v.layout.RestOffset()
		v.debugf("jumped to page %d", index)
		v.notify(dir)
		v.settle()
		return
	}
	if d != int(dir) {
		v.jump = &jump{index: index, dir: dir, distance: d}
		v.fill(vacantSlot(dir), index, true)
	}
	if !v.canScroll(dir) {
		v.cancelJump()
		v.settle()
		return
	}
	v.animateTo(v.layout.RestOffset()+float64(dir)*v.layout.Extent(), true)
}

func (v *ScrollView) animateTo(to float64, programmatic bool) {
	v.anim = &animation{
		from:         v.offset,
		to:           to,
		duration:     v.cfg.AnimationDuration,
		curve:        v.cfg.TimingCurve,
		programmatic: programmatic,
	}
	switch {
	case programmatic:
		v.setState(StateAnimating)
	case v.timer.Running() && !v.timer.Suspended():
		v.setState(StateAutoScrolling)
	}
	if v.cfg.AnimationDuration <= 0 {
		v.stepAnimation(time.Nanosecond)
	}
}

// crossImmediately commits a page change without moving through the
// intermediate offsets
func (v *ScrollView) crossImmediately(dir layout.Direction) {
	if !v.allowCrossing(dir) {
		v.offset = v.layout.RestOffset()
		return
	}
	v.offset = v.commitCrossing(dir, v.layout.RestOffset()+float64(dir)*v.layout.Extent())
}

// setOffset is the scroll-offset handler. Boundary crossings it detects are
// committed, recentered and notified before it returns.
func (v *ScrollView) setOffset(o float64) {
	if !v.layout.Ready() {
		return
	}
	o = v.layout.Clamp(o, v.canScroll(layout.Previous), v.canScroll(layout.Next))
	for i := 0; i < layout.SlotCount; i++ {
		dir := v.layout.Crossing(o)
		if dir == layout.None {
			break
		}
		if !v.allowCrossing(dir) {
			o = v.layout.RestOffset()
			v.cancelMotion()
			v.settle()
			break
		}
		o = v.commitCrossing(dir, o)
		o = v.layout.Clamp(o, v.canScroll(layout.Previous), v.canScroll(layout.Next))
	}
	v.offset = o
	v.tracef("offset %.2f (%s)", o, v.state)
}

// allowCrossing checks structure first and then asks the delegate
func (v *ScrollView) allowCrossing(dir layout.Direction) bool {
	if !v.canScroll(dir) {
		v.debugf("crossing %s refused at page %d", dir, v.current)
		return false
	}
	if !v.shouldScroll(dir) {
		v.debugf("crossing %s vetoed at page %d", dir, v.current)
		return false
	}
	return true
}

// canScroll reports whether a page exists in dir and its slot is populated
func (v *ScrollView) canScroll(dir layout.Direction) bool {
	if v.resolver.Empty() {
		return false
	}
	if _, ok := v.resolver.Step(v.current, int(dir)); !ok {
		return false
	}
	return v.pool.Attached(vacantSlot(dir)) != nil
}

func (v *ScrollView) shouldScroll(dir layout.Direction) bool {
	allowed := true
	v.callDelegate("ShouldScroll", func(d Delegate) {
		if dir == layout.Next {
			allowed = d.ShouldScrollNext(v)
		} else {
			allowed = d.ShouldScrollPrevious(v)
		}
	})
	return allowed
}

// commitCrossing advances the index, recycles the page that fell out of
// range, recenters the offset and notifies the delegate, in that order.
// It returns the recentered offset.
func (v *ScrollView) commitCrossing(dir layout.Direction, o float64) float64 {
	j := v.jump
	if j != nil && j.dir == dir {
		v.current = j.index
		v.virtual += j.distance
	} else {
		v.current, _ = v.resolver.Step(v.current, int(dir))
		v.virtual += int(dir)
	}

	v.pool.Rotate(dir)
	layout.Rotate(&v.indices, dir)
	v.indices[vacantSlot(dir)] = -1
	idx, ok := v.neighbour(vacantSlot(dir))
	v.fill(vacantSlot(dir), idx, ok)
	if j != nil {
		v.jump = nil
		behind := vacantSlot(-dir)
		idx, ok := v.neighbour(behind)
		if !ok || v.indices[behind] != idx {
			v.fill(behind, idx, ok)
		}
	}

	o = v.layout.Recenter(o, dir)
	v.shiftMotion(-float64(dir) * v.layout.Extent())

	v.debugf("page %s: now %d (virtual %d)", dir, v.current, v.virtual)
	v.notify(dir)
	return o
}

func (v *ScrollView) notify(dir layout.Direction) {
	idx := v.current
	if dir == layout.Next {
		v.callDelegate("DidScrollNextPage", func(d Delegate) { d.DidScrollNextPage(v, idx) })
	} else {
		v.callDelegate("DidScrollPreviousPage", func(d Delegate) { d.DidScrollPreviousPage(v, idx) })
	}
}

// shiftMotion keeps in-flight motion targets aligned with a recentered offset
func (v *ScrollView) shiftMotion(delta float64) {
	if v.anim != nil {
		v.anim.from += delta
		v.anim.to += delta
	}
	if v.decel != nil {
		v.decel.target += delta
	}
}

// snapMotion completes any animation or deceleration at its target
func (v *ScrollView) snapMotion() {
	if a := v.anim; a != nil {
		v.setOffset(a.to)
		v.anim = nil
	}
	if d := v.decel; d != nil {
		v.setOffset(d.target)
		v.decel = nil
	}
}

func (v *ScrollView) cancelMotion() {
	v.anim = nil
	v.decel = nil
	v.cancelJump()
}

// cancelJump puts the proper neighbour back into the slot a jump preloaded
func (v *ScrollView) cancelJump() {
	j := v.jump
	if j == nil {
		return
	}
	v.jump = nil
	if v.resolver.Empty() || !v.loaded {
		return
	}
	idx, ok := v.neighbour(vacantSlot(j.dir))
	v.fill(vacantSlot(j.dir), idx, ok)
}

// settle leaves the motion states once nothing is moving
func (v *ScrollView) settle() {
	if v.anim != nil || v.decel != nil || v.state == StateDragging {
		return
	}
	if v.jump != nil {
		v.cancelJump()
	}
	v.resumeTimer()
	if v.timer.Running() && !v.timer.Suspended() {
		v.setState(StateAutoScrolling)
		return
	}
	v.setState(StateIdle)
}

// resumeTimer continues auto-scroll suspended by a drag
func (v *ScrollView) resumeTimer() {
	if !v.timer.Suspended() {
		return
	}
	if v.cfg.RestartAutoScrollAfterDrag {
		v.timer.Restart()
	} else {
		v.timer.Resume()
	}
}

func (v *ScrollView) setState(s State) {
	if v.state == s {
		return
	}
	v.tracef("state %s -> %s", v.state, s)
	v.state = s
}

// neighbour returns the index a side slot should show
func (v *ScrollView) neighbour(s layout.Slot) (int, bool) {
	switch s {
	case layout.SlotPrevious:
		return v.resolver.Previous(v.current)
	case layout.SlotNext:
		return v.resolver.Next(v.current)
	default:
		return v.current, v.resolver.Valid(v.current)
	}
}

func (v *ScrollView) fillNeighbours() {
	for _, s := range []layout.Slot{layout.SlotPrevious, layout.SlotNext} {
		idx, ok := v.neighbour(s)
		v.fill(s, idx, ok)
	}
}

// fill binds fresh content for idx to slot. On failure the slot stays empty.
func (v *ScrollView) fill(s layout.Slot, idx int, ok bool) {
	v.pool.Detach(s)
	v.indices[s] = -1
	if !ok {
		return
	}
	page := v.fetch(idx)
	if page == nil {
		return
	}
	if err := v.pool.Attach(page, s); err != nil {
		log.Printf("scrollview: page for index %d rejected for %s slot: %v", idx, s, err)
		return
	}
	page.Index = idx
	v.indices[s] = idx
}

// refresh asks again for the index a slot shows. On failure the previous
// content stays when the page has not been handed out in the meantime.
func (v *ScrollView) refresh(s layout.Slot) {
	idx := v.indices[s]
	if idx < 0 {
		want, ok := v.neighbour(s)
		v.fill(s, want, ok)
		return
	}
	old := v.pool.Detach(s)
	var saved Page
	if old != nil {
		saved = *old
	}
	page := v.fetch(idx)
	if page != nil {
		if err := v.pool.Attach(page, s); err == nil {
			page.Index = idx
			return
		}
		log.Printf("scrollview: page for index %d rejected for %s slot", idx, s)
	}
	if old != nil && v.pool.Reclaim(old) {
		// the data source may have dequeued and blanked it
		*old = saved
		_ = v.pool.Attach(old, s)
		return
	}
	v.indices[s] = -1
}

// fetch asks the data source for a page, treating panics as a missing page.
// Pages dequeued during a failed call go back to the pool.
func (v *ScrollView) fetch(idx int) (page *Page) {
	if v.ds == nil {
		return nil
	}
	v.fetching = true
	v.lent = v.lent[:0]
	defer func() {
		if r := recover(); r != nil {
			log.Printf("scrollview: data source panicked for index %d: %v", idx, r)
			page = nil
		}
		v.fetching = false
		if page == nil {
			for _, p := range v.lent {
				v.pool.Release(p)
			}
		}
		v.lent = v.lent[:0]
	}()
	page = v.ds.PageAt(v, idx)
	if page == nil {
		v.debugf("data source returned no page for index %d", idx)
	}
	return page
}

// callDelegate runs a delegate callback, recovering panics
func (v *ScrollView) callDelegate(name string, fn func(Delegate)) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("scrollview: delegate %s panicked: %v", name, r)
		}
	}()
	fn(v.delegate)
}

// vacantSlot is the slot a crossing in dir refills
func vacantSlot(dir layout.Direction) layout.Slot {
	if dir == layout.Previous {
		return layout.SlotPrevious
	}
	return layout.SlotNext
}
