package chart

import (
	"fmt"
	"math"
	"time"
)

// Easing names a CSS timing function.
type Easing string

const (
	Linear    Easing = "linear"
	Ease      Easing = "ease"
	EaseIn    Easing = "ease-in"
	EaseOut   Easing = "ease-out"
	EaseInOut Easing = "ease-in-out"
)

// Easings lists the supported timing functions.
func Easings() []Easing { return []Easing{Linear, Ease, EaseIn, EaseOut, EaseInOut} }

// bezier control points (x1, y1, x2, y2) per CSS Easing Functions Level 1.
var bezierPoints = map[Easing][4]float64{
	Ease:      {0.25, 0.1, 0.25, 1},
	EaseIn:    {0.42, 0, 1, 1},
	EaseOut:   {0, 0, 0.58, 1},
	EaseInOut: {0.42, 0, 0.58, 1},
}

// Valid reports whether e is a known easing. The empty easing is treated as linear.
func (e Easing) Valid() bool {
	if e == "" || e == Linear {
		return true
	}
	_, ok := bezierPoints[e]
	return ok
}

// At maps linear time t in [0,1] to eased progress in [0,1].
func (e Easing) At(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	p, ok := bezierPoints[e]
	if !ok {
		return t
	}
	return cubicBezier(p[0], p[1], p[2], p[3], t)
}

// cubicBezier evaluates y at the parameter s where x(s) = x, with the curve
// anchored at (0,0) and (1,1).
func cubicBezier(x1, y1, x2, y2, x float64) float64 {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	s := x
	for range 8 {
		dx := sampleX(s) - x
		if math.Abs(dx) < 1e-7 {
			return sampleY(s)
		}
		d := slopeX(s)
		if math.Abs(d) < 1e-6 {
			break
		}
		s -= dx / d
	}

	// Newton stalled; bisect. x(s) is monotone on [0,1] for CSS curves.
	lo, hi := 0.0, 1.0
	s = x
	for range 64 {
		v := sampleX(s)
		if math.Abs(v-x) < 1e-7 {
			break
		}
		if v < x {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return sampleY(s)
}

// Progress returns the eased completion after elapsed time, and whether the
// animation has finished. A zero duration completes immediately.
func (a Animation) Progress(elapsed time.Duration) (float64, bool) {
	if a.Duration <= 0 || elapsed >= a.Duration {
		return 1, true
	}
	if elapsed <= 0 {
		return 0, false
	}
	return a.Easing.At(float64(elapsed) / float64(a.Duration)), false
}

// UnmarshalText decodes an easing name from configuration, rejecting
// unknown names. An empty value leaves the easing unset.
func (e *Easing) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*e = ""
		return nil
	}
	v, err := ParseEasing(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ParseEasing validates a user supplied easing name.
func ParseEasing(s string) (Easing, error) {
	e := Easing(s)
	if !e.Valid() {
		return "", fmt.Errorf("unknown easing %q (expected one of %v)", s, Easings())
	}
	if e == "" {
		return Linear, nil
	}
	return e, nil
}
