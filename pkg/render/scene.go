package render

import (
	"slices"

	"github.com/matzehuels/pipecanvas/pkg/geometry"
)

// Scene is a retained in-memory Surface. It keeps the latest view of every
// node and edge in draw order plus the active overlays.
//
// The zero value is not usable - use NewScene.
type Scene struct {
	Width  float64
	Height float64
	Scale  float64

	nodes     map[int]NodeView
	edges     map[int]EdgeView
	nodeOrder []int
	edgeOrder []int

	Preview *geometry.Segment
	Ghost   *geometry.Rect
	Marquee *geometry.Rect

	TooltipNode int
	Tooltip     string

	// Flushes counts completed batches.
	Flushes int
}

// NewScene creates an empty scene at scale 1.
func NewScene() *Scene {
	return &Scene{
		Scale: 1,
		nodes: make(map[int]NodeView),
		edges: make(map[int]EdgeView),
	}
}

func (s *Scene) Resize(width, height float64) {
	s.Width, s.Height = width, height
}

func (s *Scene) SetScale(factor float64) { s.Scale = factor }

func (s *Scene) DrawNode(v NodeView) {
	if _, ok := s.nodes[v.ID]; !ok {
		s.nodeOrder = append(s.nodeOrder, v.ID)
	}
	s.nodes[v.ID] = v
}

func (s *Scene) EraseNode(id int) {
	if _, ok := s.nodes[id]; !ok {
		return
	}
	delete(s.nodes, id)
	s.nodeOrder = slices.DeleteFunc(s.nodeOrder, func(v int) bool { return v == id })
}

func (s *Scene) DrawEdge(v EdgeView) {
	if _, ok := s.edges[v.ID]; !ok {
		s.edgeOrder = append(s.edgeOrder, v.ID)
	}
	s.edges[v.ID] = v
}

func (s *Scene) EraseEdge(id int) {
	if _, ok := s.edges[id]; !ok {
		return
	}
	delete(s.edges, id)
	s.edgeOrder = slices.DeleteFunc(s.edgeOrder, func(v int) bool { return v == id })
}

func (s *Scene) DrawPreview(seg geometry.Segment) { s.Preview = &seg }
func (s *Scene) ClearPreview()                    { s.Preview = nil }
func (s *Scene) DrawGhost(r geometry.Rect)        { s.Ghost = &r }
func (s *Scene) ClearGhost()                      { s.Ghost = nil }
func (s *Scene) DrawMarquee(r geometry.Rect)      { s.Marquee = &r }
func (s *Scene) ClearMarquee()                    { s.Marquee = nil }

func (s *Scene) ShowTooltip(node int, text string) {
	s.TooltipNode, s.Tooltip = node, text
}

func (s *Scene) HideTooltip() {
	s.TooltipNode, s.Tooltip = 0, ""
}

func (s *Scene) Clear() {
	s.nodes = make(map[int]NodeView)
	s.edges = make(map[int]EdgeView)
	s.nodeOrder, s.edgeOrder = nil, nil
	s.Preview, s.Ghost, s.Marquee = nil, nil, nil
	s.HideTooltip()
}

func (s *Scene) Flush() { s.Flushes++ }

// Node returns the current view of a node.
func (s *Scene) Node(id int) (NodeView, bool) {
	v, ok := s.nodes[id]
	return v, ok
}

// Edge returns the current view of an edge.
func (s *Scene) Edge(id int) (EdgeView, bool) {
	v, ok := s.edges[id]
	return v, ok
}

// Nodes returns the node views in draw order.
func (s *Scene) Nodes() []NodeView {
	out := make([]NodeView, 0, len(s.nodeOrder))
	for _, id := range s.nodeOrder {
		out = append(out, s.nodes[id])
	}
	return out
}

// Edges returns the edge views in draw order.
func (s *Scene) Edges() []EdgeView {
	out := make([]EdgeView, 0, len(s.edgeOrder))
	for _, id := range s.edgeOrder {
		out = append(out, s.edges[id])
	}
	return out
}

// Overlays reports whether any transient overlay is visible.
func (s *Scene) Overlays() bool {
	return s.Preview != nil || s.Ghost != nil || s.Marquee != nil
}
