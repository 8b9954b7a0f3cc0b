package transform

import (
	"github.com/matzehuels/pipecanvas/pkg/geometry"
	"github.com/matzehuels/pipecanvas/pkg/graph"
)

// GroupDrag moves the multi-selection as one unit.
//
// Until Commit, only the ghost rectangle follows the pointer. Node
// positions in the store are untouched, so cancelling the gesture needs no
// restoration.
type GroupDrag struct {
	ids    []int
	start  geometry.Point
	bounds geometry.Rect
	delta  geometry.Point
}

// BeginGroupDrag starts a group drag of the current selection with the
// pointer at p. It returns false when nothing is selected.
func BeginGroupDrag(store *graph.Store, p geometry.Point) (*GroupDrag, bool) {
	nodes := store.Selected()
	if len(nodes) == 0 {
		return nil, false
	}
	g := &GroupDrag{start: p}
	rects := make([]geometry.Rect, 0, len(nodes))
	for _, n := range nodes {
		g.ids = append(g.ids, n.ID)
		rects = append(rects, n.Bounds())
	}
	g.bounds = geometry.Bounds(rects)
	return g, true
}

// Update records the pointer position and returns the translated ghost.
func (g *GroupDrag) Update(p geometry.Point) geometry.Rect {
	g.delta = p.Sub(g.start)
	return g.Ghost()
}

// Ghost returns the bounding box of the selection shifted by the current delta.
func (g *GroupDrag) Ghost() geometry.Rect { return g.bounds.Translate(g.delta) }

// Delta returns how far the pointer has travelled since the gesture began.
func (g *GroupDrag) Delta() geometry.Point { return g.delta }

// IDs returns the nodes captured when the gesture began.
func (g *GroupDrag) IDs() []int { return g.ids }

// Commit shifts every captured node that still exists by the delta and
// returns the moves. A zero delta moves nothing and returns nil.
func (g *GroupDrag) Commit(store *graph.Store) []Move {
	if g.delta.IsZero() {
		return nil
	}
	moves := make([]Move, 0, len(g.ids))
	for _, id := range g.ids {
		n, ok := store.Node(id)
		if !ok {
			continue
		}
		moves = append(moves, move(store, n, n.Position.Add(g.delta)))
	}
	return moves
}
