package geom

import "fmt"

// Orientation is the axis pages are laid out along
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ParseOrientation maps a config string onto an Orientation
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "horizontal", "h", "":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	default:
		return Horizontal, fmt.Errorf("unknown orientation %q", s)
	}
}

// Point is a position or a vector in content coordinates
type Point struct {
	X, Y float64
}

// Along returns the component of p on the given axis
func (p Point) Along(o Orientation) float64 {
	if o == Vertical {
		return p.Y
	}
	return p.X
}

// PointAlong builds a point with v on the given axis and zero on the other
func PointAlong(o Orientation, v float64) Point {
	if o == Vertical {
		return Point{Y: v}
	}
	return Point{X: v}
}

// Add returns p+q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width/height pair
type Size struct {
	W, H float64
}

// Along returns the extent of s on the given axis
func (s Size) Along(o Orientation) float64 {
	if o == Vertical {
		return s.H
	}
	return s.W
}

// Across returns the extent of s perpendicular to the given axis
func (s Size) Across(o Orientation) float64 {
	if o == Vertical {
		return s.W
	}
	return s.H
}

// IsZero reports whether either dimension is empty
func (s Size) IsZero() bool {
	return s.W <= 0 || s.H <= 0
}

// Rect is an origin and a size
type Rect struct {
	Origin Point
	Size   Size
}

// Offset returns r translated by -p
func (r Rect) Offset(p Point) Rect {
	return Rect{Origin: r.Origin.Sub(p), Size: r.Size}
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Origin.X && p.X < r.Origin.X+r.Size.W &&
		p.Y >= r.Origin.Y && p.Y < r.Origin.Y+r.Size.H
}
