package geometry

// AnchorCase classifies how the source and target intervals of one axis relate.
type AnchorCase int

const (
	// CaseBefore: the source interval ends at or before the target begins.
	CaseBefore AnchorCase = iota
	// CaseAfter: the source interval begins at or after the target ends.
	CaseAfter
	// CasePointTarget: the target interval has zero width.
	CasePointTarget
	// CaseSourceInside: the intervals overlap and the source starts strictly
	// after the target.
	CaseSourceInside
	// CaseOverlap: any other overlap.
	CaseOverlap
)

var anchorCaseNames = [...]string{
	CaseBefore:       "before",
	CaseAfter:        "after",
	CasePointTarget:  "point-target",
	CaseSourceInside: "source-inside",
	CaseOverlap:      "overlap",
}

func (c AnchorCase) String() string {
	if int(c) < len(anchorCaseNames) {
		return anchorCaseNames[c]
	}
	return "unknown"
}

// ClassifyAxis returns the case that applies to the intervals of one axis.
func ClassifyAxis(src, dst Interval) AnchorCase {
	switch {
	case src.Max <= dst.Min:
		return CaseBefore
	case src.Min >= dst.Max:
		return CaseAfter
	case dst.Min == dst.Max:
		return CasePointTarget
	case src.Min > dst.Min:
		return CaseSourceInside
	default:
		return CaseOverlap
	}
}

// AxisAnchors returns the start and end coordinate of a connection along one axis.
func AxisAnchors(src, dst Interval) (start, end float64) {
	switch ClassifyAxis(src, dst) {
	case CaseBefore:
		return src.Max, dst.Min
	case CaseAfter:
		return src.Min, dst.Max
	case CasePointTarget:
		return dst.Min, dst.Min
	case CaseSourceInside:
		mid := src.Min + (dst.Max-src.Min)/2
		return mid, mid
	default:
		mid := src.Max - (src.Max-dst.Min)/2
		return mid, mid
	}
}

// ConnectionAnchors returns the segment connecting the source rectangle to
// the target rectangle. The result depends only on the two rectangles.
//
// For two rectangles with distinct minima on both axes the result is
// symmetric: ConnectionAnchors(b, a) equals ConnectionAnchors(a, b).Reverse().
func ConnectionAnchors(src, dst Rect) Segment {
	x1, x2 := AxisAnchors(src.XInterval(), dst.XInterval())
	y1, y2 := AxisAnchors(src.YInterval(), dst.YInterval())
	return Segment{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// ConnectionToPoint returns the segment from the source rectangle to a free
// point, used for the preview line while a connection is being drawn.
func ConnectionToPoint(src Rect, p Point) Segment {
	return ConnectionAnchors(src, Rect{X: p.X, Y: p.Y})
}
