package transform

import (
	"testing"

	"github.com/matzehuels/pipecanvas/pkg/geometry"
)

func TestGroupDragGhostOnly(t *testing.T) {
	s := storeWith(t, geometry.Size{W: 100, H: 50}, map[int]geometry.Point{
		1: {X: 0, Y: 0},
		2: {X: 200, Y: 100},
		3: {X: 900, Y: 900},
	}, 1, 2)

	g, ok := BeginGroupDrag(s, geometry.Point{X: 50, Y: 25})
	if !ok {
		t.Fatal("BeginGroupDrag() = false")
	}
	ghost := g.Update(geometry.Point{X: 80, Y: 45})
	if want := (geometry.Rect{X: 30, Y: 20, W: 300, H: 150}); ghost != want {
		t.Errorf("ghost = %v, want %v", ghost, want)
	}
	if got := pos(t, s, 1); got != (geometry.Point{}) {
		t.Errorf("node moved during drag: %v", got)
	}
}

func TestGroupDragCommit(t *testing.T) {
	s := storeWith(t, geometry.Size{W: 100, H: 50}, map[int]geometry.Point{
		1: {X: 0, Y: 0},
		2: {X: 200, Y: 100},
		3: {X: 900, Y: 900},
	}, 1, 2)

	g, _ := BeginGroupDrag(s, geometry.Point{X: 50, Y: 25})
	g.Update(geometry.Point{X: 60, Y: 5})
	moves := g.Commit(s)

	if len(moves) != 2 {
		t.Fatalf("len(moves) = %d, want 2", len(moves))
	}
	if got := pos(t, s, 1); got != (geometry.Point{X: 10, Y: -20}) {
		t.Errorf("node 1 = %v, want (10,-20)", got)
	}
	if got := pos(t, s, 2); got != (geometry.Point{X: 210, Y: 80}) {
		t.Errorf("node 2 = %v, want (210,80)", got)
	}
	if got := pos(t, s, 3); got != (geometry.Point{X: 900, Y: 900}) {
		t.Errorf("unselected node moved to %v", got)
	}
}

func TestGroupDragZeroDelta(t *testing.T) {
	s := storeWith(t, geometry.Size{W: 100, H: 50}, map[int]geometry.Point{1: {X: 3, Y: 4}, 2: {X: 300, Y: 4}}, 1, 2)

	g, _ := BeginGroupDrag(s, geometry.Point{X: 10, Y: 10})
	g.Update(geometry.Point{X: 40, Y: 40})
	g.Update(geometry.Point{X: 10, Y: 10})
	if moves := g.Commit(s); moves != nil {
		t.Errorf("Commit() with zero delta = %v, want nil", moves)
	}
	if got := pos(t, s, 1); got != (geometry.Point{X: 3, Y: 4}) {
		t.Errorf("node moved to %v", got)
	}
}

func TestGroupDragSkipsRemovedNodes(t *testing.T) {
	s := storeWith(t, geometry.Size{W: 100, H: 50}, map[int]geometry.Point{1: {}, 2: {X: 300}}, 1, 2)

	g, _ := BeginGroupDrag(s, geometry.Point{})
	g.Update(geometry.Point{X: 5})
	s.RemoveNode(2)
	moves := g.Commit(s)
	if len(moves) != 1 || moves[0].ID != 1 {
		t.Errorf("moves = %v, want only node 1", moves)
	}
}

func TestBeginGroupDragEmpty(t *testing.T) {
	s := storeWith(t, geometry.Size{W: 100, H: 50}, map[int]geometry.Point{1: {}})
	if _, ok := BeginGroupDrag(s, geometry.Point{}); ok {
		t.Error("BeginGroupDrag() with empty selection = true")
	}
}
