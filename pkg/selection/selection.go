// Package selection implements rubber-band (marquee) selection of nodes.
//
// A [Marquee] grows from the point where the pointer went down. Its
// rectangle is normalised on every update so that dragging up or to the left
// still yields a rectangle with non-negative width and height. On release,
// [Select] keeps the nodes whose bounding rectangle lies fully inside the
// marquee; a node that only overlaps the marquee is not selected.
package selection

import (
	"github.com/matzehuels/pipecanvas/pkg/geometry"
	"github.com/matzehuels/pipecanvas/pkg/graph"
)

// Marquee tracks an in-progress rubber-band gesture.
type Marquee struct {
	origin  geometry.Point
	current geometry.Point
	active  bool
}

// Begin starts a marquee at p.
func (m *Marquee) Begin(p geometry.Point) {
	m.origin, m.current, m.active = p, p, true
}

// Update moves the free corner to p and returns the normalised rectangle.
// It returns the zero Rect if no marquee is active.
func (m *Marquee) Update(p geometry.Point) geometry.Rect {
	if !m.active {
		return geometry.Rect{}
	}
	m.current = p
	return m.Rect()
}

// Rect returns the normalised rectangle of the marquee.
func (m *Marquee) Rect() geometry.Rect {
	return geometry.RectFromCorners(m.origin, m.current)
}

// Active reports whether a marquee gesture is in progress.
func (m *Marquee) Active() bool { return m.active }

// End finishes the gesture at p and returns the final rectangle.
func (m *Marquee) End(p geometry.Point) geometry.Rect {
	r := m.Update(p)
	m.Cancel()
	return r
}

// Cancel discards the gesture.
func (m *Marquee) Cancel() {
	*m = Marquee{}
}

// Kind tells the caller what a selection result means for the canvas.
type Kind int

const (
	// None: nothing was enclosed; the canvas state is unchanged.
	None Kind = iota
	// Single: one node becomes the primary selection.
	Single
	// Multi: every enclosed node joins the multi-select.
	Multi
)

func (k Kind) String() string {
	switch k {
	case Single:
		return "single"
	case Multi:
		return "multi"
	default:
		return "none"
	}
}

// Result is the outcome of a marquee release.
type Result struct {
	IDs []int
}

// Kind classifies the result by the number of enclosed nodes.
func (r Result) Kind() Kind {
	switch len(r.IDs) {
	case 0:
		return None
	case 1:
		return Single
	default:
		return Multi
	}
}

// Select returns the nodes whose full bounding rectangle lies inside r, in
// the order given.
func Select(r geometry.Rect, nodes []*graph.Node) Result {
	var res Result
	for _, n := range nodes {
		if r.ContainsRect(n.Bounds()) {
			res.IDs = append(res.IDs, n.ID)
		}
	}
	return res
}
