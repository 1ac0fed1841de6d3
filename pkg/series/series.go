// Package series defines the immutable datasets trendline charts.
// Values are fixed at load time; accessors hand out copies so callers
// cannot mutate a shared dataset.
package series

// Point is a single categorical observation.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is an ordered, immutable run of points. Order is significant:
// categories render left to right in insertion order.
type Series struct {
	name   string
	points []Point
}

// New builds a series from points. The slice is copied.
func New(name string, points ...Point) Series {
	cp := make([]Point, len(points))
	copy(cp, points)
	return Series{name: name, points: cp}
}

// Sample returns the five-month demo dataset.
func Sample() Series {
	return New("value",
		Point{Label: "Jan", Value: 400},
		Point{Label: "Feb", Value: 300},
		Point{Label: "Mar", Value: 600},
		Point{Label: "Apr", Value: 800},
		Point{Label: "May", Value: 500},
	)
}

func (s Series) Name() string { return s.name }
func (s Series) Len() int     { return len(s.points) }

// At returns the i-th point. It panics when i is out of range, like a slice index.
func (s Series) At(i int) Point { return s.points[i] }

// Points returns a copy of the underlying points.
func (s Series) Points() []Point {
	cp := make([]Point, len(s.points))
	copy(cp, s.points)
	return cp
}

// Labels returns the category labels in order.
func (s Series) Labels() []string {
	out := make([]string, len(s.points))
	for i, p := range s.points {
		out[i] = p.Label
	}
	return out
}

// Values returns the numeric values in order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.Value
	}
	return out
}

// Max returns the largest value, or 0 for an empty series.
func (s Series) Max() float64 {
	if len(s.points) == 0 {
		return 0
	}
	m := s.points[0].Value
	for _, p := range s.points[1:] {
		if p.Value > m {
			m = p.Value
		}
	}
	return m
}

// Min returns the smallest value, or 0 for an empty series.
func (s Series) Min() float64 {
	if len(s.points) == 0 {
		return 0
	}
	m := s.points[0].Value
	for _, p := range s.points[1:] {
		if p.Value < m {
			m = p.Value
		}
	}
	return m
}
