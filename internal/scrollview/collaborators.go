package scrollview

import "pageloop/internal/scrollview/geom"

// DataSource supplies the pages. Both methods are required.
//
// PageAt is called with an index in [0, NumberOfPages()-1] and should fill a
// page obtained from v.DequeueReusablePage. Returning nil leaves the slot as
// it was (refresh) or empty (rotation).
type DataSource interface {
	NumberOfPages() int
	PageAt(v *ScrollView, index int) *Page
}

// PanState is the phase of a drag gesture
type PanState int

const (
	PanBegan PanState = iota
	PanChanged
	PanEnded
)

func (s PanState) String() string {
	switch s {
	case PanBegan:
		return "began"
	case PanChanged:
		return "changed"
	case PanEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// PanInfo describes a drag gesture in content-offset terms
type PanInfo struct {
	State       PanState
	Translation geom.Point
	Velocity    geom.Point
}

// Delegate observes scrolling and may veto page changes. A nil delegate
// behaves like NopDelegate. Embed NopDelegate to implement only what you need.
//
// Callbacks run inside the widget's event turn. Calls back into the widget
// from a callback are queued to the next turn.
type Delegate interface {
	WillBeginDragging(v *ScrollView)
	// WillEndDragging returns the offset deceleration should settle on
	WillEndDragging(v *ScrollView, velocity, target geom.Point) geom.Point
	DidScrollNextPage(v *ScrollView, index int)
	DidScrollPreviousPage(v *ScrollView, index int)
	DidTap(v *ScrollView, index int)
	DidPan(v *ScrollView, pan PanInfo)
	ShouldScrollNext(v *ScrollView) bool
	ShouldScrollPrevious(v *ScrollView) bool
}

// NopDelegate is the default delegate: it observes nothing and allows every page change
type NopDelegate struct{}

func (NopDelegate) WillBeginDragging(*ScrollView) {}

func (NopDelegate) WillEndDragging(_ *ScrollView, _, target geom.Point) geom.Point {
	return target
}

func (NopDelegate) DidScrollNextPage(*ScrollView, int)     {}
func (NopDelegate) DidScrollPreviousPage(*ScrollView, int) {}
func (NopDelegate) DidTap(*ScrollView, int)                {}
func (NopDelegate) DidPan(*ScrollView, PanInfo)            {}
func (NopDelegate) ShouldScrollNext(*ScrollView) bool      { return true }
func (NopDelegate) ShouldScrollPrevious(*ScrollView) bool  { return true }
