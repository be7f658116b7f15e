package scrollview

import (
	"fmt"
	"math"
)

// TimingCurve shapes programmatic scroll animations
type TimingCurve int

const (
	EaseInEaseOut TimingCurve = iota
	Linear
	EaseIn
	EaseOut
)

func (c TimingCurve) String() string {
	switch c {
	case Linear:
		return "linear"
	case EaseIn:
		return "ease-in"
	case EaseOut:
		return "ease-out"
	case EaseInEaseOut:
		return "ease-in-out"
	default:
		return fmt.Sprintf("TimingCurve(%d)", int(c))
	}
}

// ParseTimingCurve maps a config string onto a TimingCurve
func ParseTimingCurve(s string) (TimingCurve, error) {
	switch s {
	case "ease-in-out", "":
		return EaseInEaseOut, nil
	case "linear":
		return Linear, nil
	case "ease-in":
		return EaseIn, nil
	case "ease-out":
		return EaseOut, nil
	default:
		return EaseInEaseOut, fmt.Errorf("unknown timing curve %q", s)
	}
}

// control points of the cubic bezier for each curve
var curvePoints = map[TimingCurve][4]float64{
	Linear:        {0, 0, 1, 1},
	EaseIn:        {0.42, 0, 1, 1},
	EaseOut:       {0, 0, 0.58, 1},
	EaseInEaseOut: {0.42, 0, 0.58, 1},
}

// Ease maps animation progress t in [0,1] onto eased progress
func (c TimingCurve) Ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	p, ok := curvePoints[c]
	if !ok || c == Linear {
		return t
	}
	s := solveBezierX(t, p[0], p[2])
	return bezier(s, p[1], p[3])
}

// bezier evaluates one coordinate of a cubic bezier anchored at 0 and 1
func bezier(s, c1, c2 float64) float64 {
	u := 1 - s
	return 3*u*u*s*c1 + 3*u*s*s*c2 + s*s*s
}

func bezierSlope(s, c1, c2 float64) float64 {
	u := 1 - s
	return 3*u*u*c1 + 6*u*s*(c2-c1) + 3*s*s*(1-c2)
}

// solveBezierX finds the curve parameter whose x coordinate is x
func solveBezierX(x, c1, c2 float64) float64 {
	s := x
	for i := 0; i < 8; i++ {
		dx := bezier(s, c1, c2) - x
		if math.Abs(dx) < 1e-7 {
			return s
		}
		d := bezierSlope(s, c1, c2)
		if math.Abs(d) < 1e-6 {
			break
		}
		s -= dx / d
	}
	lo, hi := 0.0, 1.0
	s = x
	for i := 0; i < 50 && hi-lo > 1e-7; i++ {
		if bezier(s, c1, c2) < x {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return s
}
