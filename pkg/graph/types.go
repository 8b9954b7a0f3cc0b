package graph

import (
	"strings"

	"github.com/matzehuels/pipecanvas/pkg/geometry"
)

// Category classifies a processing unit. It only affects the fill colour.
type Category string

const (
	Extractor   Category = "EXTRACTOR"
	Transformer Category = "TRANSFORMER"
	Loader      Category = "LOADER"
	Quality     Category = "QUALITY"
)

// ParseCategory normalises a category name. Unknown names are kept as-is and
// are drawn with the default fill.
func ParseCategory(s string) Category {
	return Category(strings.ToUpper(strings.TrimSpace(s)))
}

// Fill returns the fill colour of the category as a hex string.
func (c Category) Fill() string {
	switch c {
	case Extractor:
		return "#F6D8CE"
	case Transformer:
		return "#CED8F6"
	case Loader:
		return "#CEF6D8"
	case Quality:
		return "#FFFFCC"
	default:
		return "#FFFFFF"
	}
}

// Label is the text shown inside a node box.
type Label struct {
	Name        string
	Description string
}

// Text returns the label as drawn: the name, a blank line, the description.
func (l Label) Text() string {
	return l.Name + "\n\n" + l.Description
}

// Node is a processing unit on the canvas.
//
// Position and Size are in model units. Outgoing and Incoming are maintained
// by the [Store] and must not be modified by callers.
type Node struct {
	ID       int
	Label    Label
	Category Category
	Position geometry.Point
	Size     geometry.Size

	// Valid is supplied by the server and never derived locally.
	Valid bool
	// Selected marks membership in the active multi-select.
	Selected bool

	Outgoing []int
	Incoming []int
}

// Bounds returns the node rectangle.
func (n *Node) Bounds() geometry.Rect { return geometry.RectAt(n.Position, n.Size) }

// Degree returns the number of edges touching the node.
func (n *Node) Degree() int { return len(n.Outgoing) + len(n.Incoming) }

// Edge is a data-flow connection between two nodes.
type Edge struct {
	ID     int
	Source int
	Target int
	// Label is the name of the data unit carried by the connection.
	Label string
	// Anchors is the drawn segment. It is derived from the endpoint
	// rectangles and recomputed whenever an endpoint moves.
	Anchors geometry.Segment
}

// Valid reports whether the connection carries a named data unit. Invalid
// connections are drawn in red.
func (e *Edge) Valid() bool { return e.Label != "" }

// Touches reports whether the edge starts or ends at the node.
func (e *Edge) Touches(node int) bool { return e.Source == node || e.Target == node }
