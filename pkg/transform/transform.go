package transform

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/pipecanvas/pkg/errors"
	"github.com/matzehuels/pipecanvas/pkg/geometry"
	"github.com/matzehuels/pipecanvas/pkg/graph"
)

// Axis selects the coordinate a layout operation works on.
type Axis int

const (
	Horizontal Axis = iota // x
	Vertical               // y
)

// Bound selects which extreme an alignment converges on.
type Bound int

const (
	Min Bound = iota // left or top
	Max              // right or bottom
)

// Move records one node position change.
type Move struct {
	ID   int
	From geometry.Point
	To   geometry.Point
}

// Changed reports whether the move actually displaced the node.
func (m Move) Changed() bool { return m.From != m.To }

func coord(p geometry.Point, axis Axis) float64 {
	if axis == Vertical {
		return p.Y
	}
	return p.X
}

func withCoord(p geometry.Point, axis Axis, v float64) geometry.Point {
	if axis == Vertical {
		p.Y = v
	} else {
		p.X = v
	}
	return p
}

func extent(s geometry.Size, axis Axis) float64 {
	if axis == Vertical {
		return s.H
	}
	return s.W
}

func move(store *graph.Store, n *graph.Node, to geometry.Point) Move {
	m := Move{ID: n.ID, From: n.Position, To: to}
	store.MoveNode(n.ID, to)
	return m
}

// Align sets the axis coordinate of every selected node to the minimum or
// maximum of that coordinate across the selection. An empty selection is a
// no-op.
func Align(store *graph.Store, axis Axis, bound Bound) []Move {
	nodes := store.Selected()
	if len(nodes) == 0 {
		return nil
	}
	target := coord(nodes[0].Position, axis)
	for _, n := range nodes[1:] {
		c := coord(n.Position, axis)
		if bound == Min {
			target = math.Min(target, c)
		} else {
			target = math.Max(target, c)
		}
	}
	moves := make([]Move, 0, len(nodes))
	for _, n := range nodes {
		moves = append(moves, move(store, n, withCoord(n.Position, axis, target)))
	}
	return moves
}

// Distribute spaces the selected nodes along axis. The nodes are sorted by
// coordinate; the first keeps its place and each next node starts one
// extent plus one gap after its predecessor, where
//
//	gap = (max + extent(last) - min - sum(extents)) / (n - 1)
//
// Fewer than two selected nodes is a no-op.
func Distribute(store *graph.Store, axis Axis) []Move {
	nodes := store.Selected()
	if len(nodes) < 2 {
		return nil
	}
	sorted := slices.Clone(nodes)
	slices.SortStableFunc(sorted, func(a, b *graph.Node) int {
		return cmp.Compare(coord(a.Position, axis), coord(b.Position, axis))
	})

	first, last := sorted[0], sorted[len(sorted)-1]
	lo := coord(first.Position, axis)
	hi := coord(last.Position, axis)
	var sum float64
	for _, n := range sorted {
		sum += extent(n.Size, axis)
	}
	gap := (hi + extent(last.Size, axis) - lo - sum) / float64(len(sorted)-1)

	placed := make(map[int]geometry.Point, len(sorted))
	pos := lo
	for _, n := range sorted {
		placed[n.ID] = withCoord(n.Position, axis, pos)
		pos += extent(n.Size, axis) + gap
	}

	moves := make([]Move, 0, len(nodes))
	for _, n := range nodes {
		moves = append(moves, move(store, n, placed[n.ID]))
	}
	return moves
}

// Action is a named layout operation.
type Action int

const (
	AlignLeft Action = iota
	AlignRight
	AlignTop
	AlignBottom
	DistributeHorizontal
	DistributeVertical
)

var actionNames = [...]string{
	AlignLeft:            "align-left",
	AlignRight:           "align-right",
	AlignTop:             "align-top",
	AlignBottom:          "align-bottom",
	DistributeHorizontal: "distribute-horizontal",
	DistributeVertical:   "distribute-vertical",
}

func (a Action) String() string {
	if int(a) >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Actions returns every layout action in declaration order.
func Actions() []Action {
	return []Action{AlignLeft, AlignRight, AlignTop, AlignBottom, DistributeHorizontal, DistributeVertical}
}

// ParseAction resolves an action name. Dashes and underscores are
// interchangeable and case is ignored, so "align_left" and "Align-Left" both
// resolve to AlignLeft.
func ParseAction(name string) (Action, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for i, n := range actionNames {
		if n == norm {
			return Action(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidAction, "unknown layout action %q", name)
}

// Apply runs a layout action on the current selection.
func Apply(store *graph.Store, a Action) []Move {
	switch a {
	case AlignLeft:
		return Align(store, Horizontal, Min)
	case AlignRight:
		return Align(store, Horizontal, Max)
	case AlignTop:
		return Align(store, Vertical, Min)
	case AlignBottom:
		return Align(store, Vertical, Max)
	case DistributeHorizontal:
		return Distribute(store, Horizontal)
	case DistributeVertical:
		return Distribute(store, Vertical)
	}
	return nil
}
