package graph

import (
	"math"
	"strings"

	"github.com/matzehuels/pipecanvas/pkg/geometry"
)

// Sizer computes the box size of a node from its label.
type Sizer interface {
	NodeSize(Label) geometry.Size
}

// Default node box metrics.
const (
	DefaultNodeWidth   = 120.0
	DefaultFontSize    = 10.0
	DefaultTextPadding = 6.0
)

// FixedSizer wraps label text assuming every character has the same advance.
type FixedSizer struct {
	Width      float64 // Box width
	CharWidth  float64 // Advance of one character
	LineHeight float64 // Height of one text line
	Padding    float64 // Inner padding on every side
}

// DefaultSizer returns a FixedSizer for a 10pt font in a 120 unit box.
func DefaultSizer() FixedSizer {
	return FixedSizer{
		Width:      DefaultNodeWidth,
		CharWidth:  DefaultFontSize * 0.6,
		LineHeight: DefaultFontSize * 1.2,
		Padding:    DefaultTextPadding,
	}
}

// NodeSize implements Sizer.
func (s FixedSizer) NodeSize(l Label) geometry.Size {
	inner := s.Width - 2*s.Padding
	perLine := 1
	if s.CharWidth > 0 && inner > s.CharWidth {
		perLine = int(math.Floor(inner / s.CharWidth))
	}
	lines := 0
	for _, para := range strings.Split(l.Text(), "\n") {
		lines += WrapCount(para, perLine)
	}
	return geometry.Size{W: s.Width, H: float64(lines)*s.LineHeight + 2*s.Padding}
}

// WrapCount returns how many lines a paragraph takes when wrapped at word
// boundaries to at most perLine characters. An empty paragraph is one line.
func WrapCount(para string, perLine int) int {
	words := strings.Fields(para)
	if len(words) == 0 {
		return 1
	}
	lines, cur := 1, 0
	for _, w := range words {
		n := len([]rune(w))
		switch {
		case cur == 0:
			cur = n
		case cur+1+n <= perLine:
			cur += 1 + n
		default:
			lines++
			cur = n
		}
		// Words longer than a line break mid-word.
		for cur > perLine {
			lines++
			cur -= perLine
		}
	}
	return lines
}
