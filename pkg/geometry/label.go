package geometry

import "math"

// LabelOptions bounds the width of a connection label.
type LabelOptions struct {
	// MinWidth is the narrowest a label box may get.
	MinWidth float64
	// Padding is subtracted from the horizontal extent of the segment before
	// it caps the label width.
	Padding float64
}

// DefaultLabelOptions returns the label bounds used by the canvas.
func DefaultLabelOptions() LabelOptions {
	return LabelOptions{MinWidth: 40, Padding: 30}
}

// LabelBox is the placement of a data-unit label. Y is the vertical centre of
// the text line.
type LabelBox struct {
	X, Y, W float64
}

// LabelPlacement centres a label of the given measured width on the midpoint
// of seg. The width is min(|x2-x1| - padding, measured), raised to at least
// MinWidth.
func LabelPlacement(seg Segment, measured float64, opts LabelOptions) LabelBox {
	if math.IsNaN(measured) || measured < 0 {
		measured = 0
	}
	w := math.Min(math.Abs(seg.X2-seg.X1)-opts.Padding, measured)
	w = math.Max(opts.MinWidth, w)
	mid := seg.Mid()
	return LabelBox{X: mid.X - w/2, Y: mid.Y, W: w}
}
