package layout

import (
	"math"

	"pageloop/internal/scrollview/geom"
)

// Slot is the role a live page plays around the viewport
type Slot int

const (
	SlotPrevious Slot = iota
	SlotCurrent
	SlotNext
)

// SlotCount is the number of live pages kept around the viewport
const SlotCount = 3

// Slots lists every slot in layout order
var Slots = [SlotCount]Slot{SlotPrevious, SlotCurrent, SlotNext}

func (s Slot) String() string {
	switch s {
	case SlotPrevious:
		return "previous"
	case SlotCurrent:
		return "current"
	case SlotNext:
		return "next"
	default:
		return "invalid"
	}
}

// Direction of a boundary crossing
type Direction int

const (
	None     Direction = 0
	Next     Direction = 1
	Previous Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Previous:
		return "previous"
	default:
		return "none"
	}
}

// Engine positions the three live pages inside a content window three
// pages long. Offsets are measured along the configured axis only.
type Engine struct {
	Orientation geom.Orientation
	PageSize    geom.Size
}

// New creates a layout engine
func New(orientation geom.Orientation, pageSize geom.Size) Engine {
	return Engine{Orientation: orientation, PageSize: pageSize}
}

// Extent is the length of one page along the scroll axis
func (e Engine) Extent() float64 {
	return e.PageSize.Along(e.Orientation)
}

// Ready reports whether there is any geometry to lay out
func (e Engine) Ready() bool {
	return !e.PageSize.IsZero()
}

// ContentSize is the size of the scrollable window
func (e Engine) ContentSize() geom.Size {
	if e.Orientation == geom.Vertical {
		return geom.Size{W: e.PageSize.W, H: e.PageSize.H * SlotCount}
	}
	return geom.Size{W: e.PageSize.W * SlotCount, H: e.PageSize.H}
}

// RestOffset is the offset at which the current slot fills the viewport
func (e Engine) RestOffset() float64 {
	return e.Extent()
}

// MaxOffset is the largest offset inside the content window
func (e Engine) MaxOffset() float64 {
	return e.Extent() * (SlotCount - 1)
}

// FrameForSlot returns the frame of a slot in content coordinates
func (e Engine) FrameForSlot(s Slot) geom.Rect {
	return geom.Rect{
		Origin: geom.PointAlong(e.Orientation, float64(s)*e.Extent()),
		Size:   e.PageSize,
	}
}

// OnScreen returns the frame of a slot relative to the viewport at offset
func (e Engine) OnScreen(s Slot, offset float64) geom.Rect {
	return e.FrameForSlot(s).Offset(geom.PointAlong(e.Orientation, offset))
}

// Crossing reports whether offset has passed the midpoint to an adjacent page
func (e Engine) Crossing(offset float64) Direction {
	extent := e.Extent()
	if extent <= 0 {
		return None
	}
	rest := e.RestOffset()
	switch {
	case offset > rest+extent/2:
		return Next
	case offset < rest-extent/2:
		return Previous
	default:
		return None
	}
}

// Recenter moves offset back by one page in the direction it crossed. The
// caller must rotate the slots in the same turn so the visible content does
// not move.
func (e Engine) Recenter(offset float64, dir Direction) float64 {
	return offset - float64(dir)*e.Extent()
}

// Rotate shifts slot contents one role towards dir and returns the value that
// fell out of range. The vacated slot is set to the zero value.
func Rotate[T any](slots *[SlotCount]T, dir Direction) T {
	var zero, out T
	switch dir {
	case Next:
		out = slots[SlotPrevious]
		slots[SlotPrevious] = slots[SlotCurrent]
		slots[SlotCurrent] = slots[SlotNext]
		slots[SlotNext] = zero
	case Previous:
		out = slots[SlotNext]
		slots[SlotNext] = slots[SlotCurrent]
		slots[SlotCurrent] = slots[SlotPrevious]
		slots[SlotPrevious] = zero
	}
	return out
}

// Clamp keeps offset inside the content window. A side that cannot be
// scrolled to is bounded by the rest position of the current page.
func (e Engine) Clamp(offset float64, canPrevious, canNext bool) float64 {
	lo, hi := 0.0, e.MaxOffset()
	if !canPrevious {
		lo = e.RestOffset()
	}
	if !canNext {
		hi = e.RestOffset()
	}
	return math.Max(lo, math.Min(hi, offset))
}

// PageTarget returns the rest offset a released drag should settle on.
// A flick faster than threshold moves one page in its direction; slower
// releases settle on whichever page the offset is closest to.
func (e Engine) PageTarget(offset, velocity, threshold float64) float64 {
	rest := e.RestOffset()
	switch {
	case velocity > threshold && offset >= rest:
		return rest + e.Extent()
	case velocity < -threshold && offset <= rest:
		return rest - e.Extent()
	default:
		return rest
	}
}
