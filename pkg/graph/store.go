package graph

import (
	"slices"

	"github.com/matzehuels/pipecanvas/pkg/errors"
	"github.com/matzehuels/pipecanvas/pkg/geometry"
)

var (
	// ErrUnknownEndpoint is returned by [Store.AddEdge] when the source or
	// target node is not in the store.
	ErrUnknownEndpoint = errors.New(errors.ErrCodeUnknownEndpoint, "edge endpoint is not a live node")

	// ErrDuplicateNodeID is returned by [Store.AddNode] when a node with the
	// same id already exists. Node ids are assigned by the server and unique.
	ErrDuplicateNodeID = errors.New(errors.ErrCodeDuplicateEntity, "duplicate node id")

	// ErrDuplicateEdgeID is returned by [Store.AddEdge] when an edge with the
	// same id already exists.
	ErrDuplicateEdgeID = errors.New(errors.ErrCodeDuplicateEntity, "duplicate edge id")

	// ErrBrokenIndex is returned by [Store.Validate] when an adjacency index
	// disagrees with the edge table. It indicates store corruption.
	ErrBrokenIndex = errors.New(errors.ErrCodeInternal, "adjacency index out of sync")
)

// Store owns the nodes and edges of one pipeline diagram.
//
// The zero value is not usable - use New to create a Store.
type Store struct {
	nodes     map[int]*Node
	edges     map[int]*Edge
	nodeOrder []int
	edgeOrder []int
	sizer     Sizer
}

// New creates an empty store. A nil sizer selects [DefaultSizer].
func New(sizer Sizer) *Store {
	if sizer == nil {
		sizer = DefaultSizer()
	}
	return &Store{
		nodes: make(map[int]*Node),
		edges: make(map[int]*Edge),
		sizer: sizer,
	}
}

// AddNode inserts a valid node at the given position and sizes it from its
// label. Returns ErrDuplicateNodeID if the id is taken.
func (s *Store) AddNode(id int, label Label, category Category, pos geometry.Point) (*Node, error) {
	if _, exists := s.nodes[id]; exists {
		return nil, ErrDuplicateNodeID
	}
	n := &Node{
		ID:       id,
		Label:    label,
		Category: category,
		Position: pos,
		Size:     s.sizer.NodeSize(label),
		Valid:    true,
	}
	s.nodes[id] = n
	s.nodeOrder = append(s.nodeOrder, id)
	return n, nil
}

// RemoveNode deletes a node together with every edge touching it. It returns
// the ids of the removed edges, outgoing first then incoming, each in index
// order, and whether the node existed.
func (s *Store) RemoveNode(id int) ([]int, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, false
	}
	cascade := make([]int, 0, n.Degree())
	for _, eid := range slices.Clone(n.Outgoing) {
		if s.RemoveEdge(eid) {
			cascade = append(cascade, eid)
		}
	}
	for _, eid := range slices.Clone(n.Incoming) {
		if s.RemoveEdge(eid) {
			cascade = append(cascade, eid)
		}
	}
	delete(s.nodes, id)
	s.nodeOrder = slices.DeleteFunc(s.nodeOrder, func(v int) bool { return v == id })
	return cascade, true
}

// AddEdge connects two live nodes. Returns ErrUnknownEndpoint if either end
// is absent and ErrDuplicateEdgeID if the id is taken. Multiple edges between
// the same pair of nodes are allowed.
func (s *Store) AddEdge(id, source, target int, label string) (*Edge, error) {
	if _, exists := s.edges[id]; exists {
		return nil, ErrDuplicateEdgeID
	}
	src, ok := s.nodes[source]
	if !ok {
		return nil, ErrUnknownEndpoint
	}
	dst, ok := s.nodes[target]
	if !ok {
		return nil, ErrUnknownEndpoint
	}
	e := &Edge{ID: id, Source: source, Target: target, Label: label}
	s.edges[id] = e
	s.edgeOrder = append(s.edgeOrder, id)
	src.Outgoing = append(src.Outgoing, id)
	dst.Incoming = append(dst.Incoming, id)
	return e, nil
}

// RemoveEdge deletes an edge and its index entries. Reports whether it existed.
func (s *Store) RemoveEdge(id int) bool {
	e, ok := s.edges[id]
	if !ok {
		return false
	}
	match := func(v int) bool { return v == id }
	if src, ok := s.nodes[e.Source]; ok {
		src.Outgoing = slices.DeleteFunc(src.Outgoing, match)
	}
	if dst, ok := s.nodes[e.Target]; ok {
		dst.Incoming = slices.DeleteFunc(dst.Incoming, match)
	}
	delete(s.edges, id)
	s.edgeOrder = slices.DeleteFunc(s.edgeOrder, match)
	return true
}

// UpdateNodeLabel replaces the label and recomputes the node size.
func (s *Store) UpdateNodeLabel(id int, label Label) bool {
	n, ok := s.nodes[id]
	if !ok {
		return false
	}
	n.Label = label
	n.Size = s.sizer.NodeSize(label)
	return true
}

// UpdateEdgeLabel replaces the data-unit name. An empty name makes the edge invalid.
func (s *Store) UpdateEdgeLabel(id int, label string) bool {
	e, ok := s.edges[id]
	if !ok {
		return false
	}
	e.Label = label
	return true
}

// SetNodeValidity records the server's validity verdict for a node.
func (s *Store) SetNodeValidity(id int, valid bool) bool {
	n, ok := s.nodes[id]
	if !ok {
		return false
	}
	n.Valid = valid
	return true
}

// MoveNode sets the top-left corner of a node. Edge anchors are not touched;
// the caller recomputes them.
func (s *Store) MoveNode(id int, pos geometry.Point) bool {
	n, ok := s.nodes[id]
	if !ok {
		return false
	}
	n.Position = pos
	return true
}

// SetSelected sets multi-select membership of a node.
func (s *Store) SetSelected(id int, selected bool) bool {
	n, ok := s.nodes[id]
	if !ok {
		return false
	}
	n.Selected = selected
	return true
}

// ClearSelection removes every node from the multi-select and returns their ids.
func (s *Store) ClearSelection() []int {
	var cleared []int
	for _, id := range s.nodeOrder {
		if n := s.nodes[id]; n.Selected {
			n.Selected = false
			cleared = append(cleared, id)
		}
	}
	return cleared
}

// Selected returns the multi-selected nodes in insertion order.
func (s *Store) Selected() []*Node {
	var out []*Node
	for _, id := range s.nodeOrder {
		if n := s.nodes[id]; n.Selected {
			out = append(out, n)
		}
	}
	return out
}

// SelectedIDs returns the ids of the multi-selected nodes in insertion order.
func (s *Store) SelectedIDs() []int {
	var out []int
	for _, n := range s.Selected() {
		out = append(out, n.ID)
	}
	return out
}

// Node returns the node with the given id.
func (s *Store) Node(id int) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Edge returns the edge with the given id.
func (s *Store) Edge(id int) (*Edge, bool) {
	e, ok := s.edges[id]
	return e, ok
}

// Nodes returns all nodes in insertion order. The pointers refer to the
// stored nodes.
func (s *Store) Nodes() []*Node {
	out := make([]*Node, 0, len(s.nodeOrder))
	for _, id := range s.nodeOrder {
		out = append(out, s.nodes[id])
	}
	return out
}

// Edges returns all edges in insertion order.
func (s *Store) Edges() []*Edge {
	out := make([]*Edge, 0, len(s.edgeOrder))
	for _, id := range s.edgeOrder {
		out = append(out, s.edges[id])
	}
	return out
}

// EdgesOf returns the ids of every edge touching the node, outgoing first.
func (s *Store) EdgesOf(id int) []int {
	n, ok := s.nodes[id]
	if !ok {
		return nil
	}
	out := make([]int, 0, n.Degree())
	out = append(out, n.Outgoing...)
	for _, eid := range n.Incoming {
		// Self-loops are already listed as outgoing.
		if e := s.edges[eid]; e.Source != id {
			out = append(out, eid)
		}
	}
	return out
}

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int { return len(s.edges) }

// HitTest returns the topmost node whose rectangle contains p. Nodes added
// later are drawn above earlier ones.
func (s *Store) HitTest(p geometry.Point) (*Node, bool) {
	for i := len(s.nodeOrder) - 1; i >= 0; i-- {
		n := s.nodes[s.nodeOrder[i]]
		if n.Bounds().ContainsPoint(p) {
			return n, true
		}
	}
	return nil, false
}

// Clear removes every node and edge.
func (s *Store) Clear() {
	s.nodes = make(map[int]*Node)
	s.edges = make(map[int]*Edge)
	s.nodeOrder = nil
	s.edgeOrder = nil
}

// Validate checks that every edge connects live nodes and that the
// adjacency indices are exactly the inverse of the edge table.
func (s *Store) Validate() error {
	out := make(map[int]int)
	in := make(map[int]int)
	for _, e := range s.edges {
		src, okS := s.nodes[e.Source]
		dst, okD := s.nodes[e.Target]
		if !okS || !okD {
			return errors.Wrap(errors.ErrCodeUnknownEndpoint, ErrBrokenIndex, "edge %d", e.ID)
		}
		if !slices.Contains(src.Outgoing, e.ID) || !slices.Contains(dst.Incoming, e.ID) {
			return errors.Wrap(errors.ErrCodeInternal, ErrBrokenIndex, "edge %d missing from index", e.ID)
		}
		out[e.Source]++
		in[e.Target]++
	}
	for id, n := range s.nodes {
		if len(n.Outgoing) != out[id] || len(n.Incoming) != in[id] {
			return errors.Wrap(errors.ErrCodeInternal, ErrBrokenIndex, "node %d has stale entries", id)
		}
	}
	return nil
}
