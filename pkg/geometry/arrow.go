package geometry

import "math"

// DefaultArrowLength is the wedge offset used when none is configured.
const DefaultArrowLength = 5.0

// Side selects one half of an arrowhead wedge.
type Side int

const (
	Left Side = iota
	Right
)

// ArrowHead returns one wedge line of the arrowhead at the end of seg. The
// returned segment starts at the wing point and ends at the tip.
//
// The wing sits length/|seg| of the way back along the segment and the same
// distance to the side. A zero-length segment collapses the wing onto the tip.
func ArrowHead(seg Segment, side Side, length float64) Segment {
	tip := seg.End()
	l := seg.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return SegmentBetween(tip, tip)
	}
	vx := seg.X2 - seg.X1
	vy := seg.Y2 - seg.Y1
	d := length / l
	var wing Point
	switch side {
	case Left:
		wing = Point{X: seg.X2 - d*vx + d*vy, Y: seg.Y2 - d*vy - d*vx}
	default:
		wing = Point{X: seg.X2 - d*vx - d*vy, Y: seg.Y2 - d*vy + d*vx}
	}
	return SegmentBetween(wing, tip)
}

// ArrowHeads returns both wedge lines of the arrowhead at the end of seg.
func ArrowHeads(seg Segment, length float64) (left, right Segment) {
	return ArrowHead(seg, Left, length), ArrowHead(seg, Right, length)
}
