package geometry

import "math"

// Point is a position in model units.
type Point struct {
	X, Y float64
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point { return Point{p.X + d.X, p.Y + d.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale divides both coordinates by factor. A non-positive factor returns p unchanged.
func (p Point) Scale(factor float64) Point {
	if factor <= 0 {
		return p
	}
	return Point{p.X / factor, p.Y / factor}
}

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }

// Size is a width and height in model units.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
// Width and height are never negative for rectangles produced by this package.
type Rect struct {
	X, Y, W, H float64
}

// RectAt builds the rectangle of the given size with its top-left corner at p.
func RectAt(p Point, s Size) Rect { return Rect{X: p.X, Y: p.Y, W: s.W, H: s.H} }

// RectFromCorners returns the normalised rectangle spanned by two opposite
// corners, whichever direction they were given in.
func RectFromCorners(a, b Point) Rect {
	return Rect{
		X: math.Min(a.X, b.X),
		Y: math.Min(a.Y, b.Y),
		W: math.Abs(b.X - a.X),
		H: math.Abs(b.Y - a.Y),
	}
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{r.X, r.Y} }

// Center returns the centre point.
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// ContainsPoint reports whether p lies inside r, edges included.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// ContainsRect reports whether o lies fully inside r. Touching edges count as inside.
func (r Rect) ContainsRect(o Rect) bool {
	return o.MinX() >= r.MinX() && o.MaxX() <= r.MaxX() &&
		o.MinY() >= r.MinY() && o.MaxY() <= r.MaxY()
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.MinX(), o.MinX())
	minY := math.Min(r.MinY(), o.MinY())
	maxX := math.Max(r.MaxX(), o.MaxX())
	maxY := math.Max(r.MaxY(), o.MaxY())
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Bounds returns the bounding rectangle of rs, or the zero Rect for none.
func Bounds(rs []Rect) Rect {
	if len(rs) == 0 {
		return Rect{}
	}
	b := rs[0]
	for _, r := range rs[1:] {
		b = b.Union(r)
	}
	return b
}

// Interval is the projection of a rectangle onto one axis.
type Interval struct {
	Min, Max float64
}

// XInterval projects r onto the horizontal axis.
func (r Rect) XInterval() Interval { return Interval{r.MinX(), r.MaxX()} }

// YInterval projects r onto the vertical axis.
func (r Rect) YInterval() Interval { return Interval{r.MinY(), r.MaxY()} }

// Segment is a straight line from (X1, Y1) to (X2, Y2).
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// SegmentBetween builds the segment from a to b.
func SegmentBetween(a, b Point) Segment { return Segment{a.X, a.Y, b.X, b.Y} }

func (s Segment) Start() Point { return Point{s.X1, s.Y1} }
func (s Segment) End() Point   { return Point{s.X2, s.Y2} }

// Mid returns the midpoint of the segment.
func (s Segment) Mid() Point { return Point{(s.X1 + s.X2) / 2, (s.Y1 + s.Y2) / 2} }

// Len returns the Euclidean length of the segment.
func (s Segment) Len() float64 { return math.Hypot(s.X2-s.X1, s.Y2-s.Y1) }

// Reverse swaps the start and end points.
func (s Segment) Reverse() Segment { return Segment{s.X2, s.Y2, s.X1, s.Y1} }

// Degenerate reports whether the segment has zero length.
func (s Segment) Degenerate() bool { return s.X1 == s.X2 && s.Y1 == s.Y2 }
