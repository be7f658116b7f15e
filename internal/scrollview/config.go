package scrollview

import (
	"time"

	"pageloop/internal/scrollview/autoscroll"
	"pageloop/internal/scrollview/geom"
)

// Config holds the widget settings. Changing ScrollDirection on a live
// widget goes through SetScrollDirection, which resets the layout.
type Config struct {
	// PageIndex is the page shown after ReloadData
	PageIndex           int
	ScrollDirection     geom.Orientation
	AutoScrollDirection autoscroll.Direction
	Interval            time.Duration
	ShouldWrap          bool
	TapEnabled          bool
	AnimationDuration   time.Duration
	TimingCurve         TimingCurve
	// RestartAutoScrollAfterDrag starts a full interval when a drag ends
	// instead of continuing the interval the drag interrupted
	RestartAutoScrollAfterDrag bool
	// FlickVelocity is the release speed, in pages per second, above which a
	// drag moves on to the adjacent page
	FlickVelocity float64
	Debug         bool
	VerboseDebug  bool
}

// DefaultConfig returns the default widget settings
func DefaultConfig() Config {
	return Config{
		ScrollDirection:     geom.Horizontal,
		AutoScrollDirection: autoscroll.RightToLeft,
		Interval:            3 * time.Second,
		ShouldWrap:          true,
		TapEnabled:          true,
		AnimationDuration:   250 * time.Millisecond,
		TimingCurve:         EaseInEaseOut,
		FlickVelocity:       0.5,
	}
}
