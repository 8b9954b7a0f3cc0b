package render

import "github.com/matzehuels/pipecanvas/pkg/geometry"

// NodeView is everything a surface needs to draw one node box.
type NodeView struct {
	ID          int
	Bounds      geometry.Rect
	Name        string
	Description string
	Category    string
	Fill        string
	Valid       bool
	Primary     bool // primary selection
	Selected    bool // multi-select member
}

// EdgeView is everything a surface needs to draw one connection.
type EdgeView struct {
	ID         int
	Source     int
	Target     int
	Line       geometry.Segment
	ArrowLeft  geometry.Segment
	ArrowRight geometry.Segment
	Label      string
	LabelBox   geometry.LabelBox
	Valid      bool
	Highlight  bool
}

// Surface receives drawing instructions from the canvas engine.
type Surface interface {
	Resize(width, height float64)
	SetScale(factor float64)

	DrawNode(NodeView)
	EraseNode(id int)
	DrawEdge(EdgeView)
	EraseEdge(id int)

	DrawPreview(geometry.Segment)
	ClearPreview()
	DrawGhost(geometry.Rect)
	ClearGhost()
	DrawMarquee(geometry.Rect)
	ClearMarquee()
	ShowTooltip(node int, text string)
	HideTooltip()

	// Clear erases every node, edge and overlay.
	Clear()
	// Flush marks the end of one batch of changes.
	Flush()
}

// Measurer measures the drawn width of a single line of text.
type Measurer interface {
	TextWidth(s string) float64
}

// Nop is a Surface that draws nothing.
type Nop struct{}

func (Nop) Resize(float64, float64)       {}
func (Nop) SetScale(float64)              {}
func (Nop) DrawNode(NodeView)             {}
func (Nop) EraseNode(int)                 {}
func (Nop) DrawEdge(EdgeView)             {}
func (Nop) EraseEdge(int)                 {}
func (Nop) DrawPreview(geometry.Segment)  {}
func (Nop) ClearPreview()                 {}
func (Nop) DrawGhost(geometry.Rect)       {}
func (Nop) ClearGhost()                   {}
func (Nop) DrawMarquee(geometry.Rect)     {}
func (Nop) ClearMarquee()                 {}
func (Nop) ShowTooltip(int, string)       {}
func (Nop) HideTooltip()                  {}
func (Nop) Clear()                        {}
func (Nop) Flush()                        {}

// fixedMeasurer approximates text width from the rune count.
type fixedMeasurer float64

func (f fixedMeasurer) TextWidth(s string) float64 {
	return float64(len([]rune(s))) * float64(f)
}

// FixedMeasurer returns a Measurer that gives every rune the same advance.
func FixedMeasurer(advance float64) Measurer { return fixedMeasurer(advance) }
