package render

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/pipecanvas/pkg/geometry"
	"github.com/matzehuels/pipecanvas/pkg/graph"
)

// LabelTextPadding is added to the measured width of a data-unit label.
const LabelTextPadding = 12.0

// TextMetrics measures text set in Go Regular at a fixed size. It implements
// [graph.Sizer] and [Measurer].
//
// A TextMetrics is not safe for concurrent use.
type TextMetrics struct {
	face       font.Face
	nodeWidth  float64
	padding    float64
	lineHeight float64
}

// NewTextMetrics loads Go Regular at fontSize points (72 dpi, so one point
// is one model unit) for node boxes of the given width and inner padding.
func NewTextMetrics(fontSize, nodeWidth, padding float64) (*TextMetrics, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return &TextMetrics{
		face:       face,
		nodeWidth:  nodeWidth,
		padding:    padding,
		lineHeight: toFloat(face.Metrics().Height),
	}, nil
}

// DefaultTextMetrics returns metrics for the default 10pt, 120 unit boxes.
func DefaultTextMetrics() (*TextMetrics, error) {
	return NewTextMetrics(graph.DefaultFontSize, graph.DefaultNodeWidth, graph.DefaultTextPadding)
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

// TextWidth returns the advance width of a single line.
func (m *TextMetrics) TextWidth(s string) float64 {
	return toFloat(font.MeasureString(m.face, s))
}

// LabelWidth returns the width of a data-unit label including padding.
func (m *TextMetrics) LabelWidth(s string) float64 {
	return m.TextWidth(s) + LabelTextPadding
}

// LineHeight returns the height of one text line.
func (m *TextMetrics) LineHeight() float64 { return m.lineHeight }

// Wrap breaks a paragraph at word boundaries into lines no wider than width.
// A single word wider than width stays on its own line.
func (m *TextMetrics) Wrap(para string, width float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		next := cur + " " + w
		if m.TextWidth(next) <= width {
			cur = next
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

// WrapLabel wraps the full node label text to the inner box width.
func (m *TextMetrics) WrapLabel(l graph.Label) []string {
	var lines []string
	for _, para := range strings.Split(l.Text(), "\n") {
		lines = append(lines, m.Wrap(para, m.nodeWidth-2*m.padding)...)
	}
	return lines
}

// NodeSize implements graph.Sizer.
func (m *TextMetrics) NodeSize(l graph.Label) geometry.Size {
	lines := len(m.WrapLabel(l))
	h := float64(lines)*m.lineHeight + 2*m.padding
	return geometry.Size{W: m.nodeWidth, H: math.Ceil(h)}
}
