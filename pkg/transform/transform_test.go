package transform

import (
	"testing"

	"github.com/matzehuels/pipecanvas/pkg/errors"
	"github.com/matzehuels/pipecanvas/pkg/geometry"
	"github.com/matzehuels/pipecanvas/pkg/graph"
)

// fixedSizer gives every node the same box.
type fixedSizer geometry.Size

func (f fixedSizer) NodeSize(graph.Label) geometry.Size { return geometry.Size(f) }

func storeWith(t *testing.T, size geometry.Size, positions map[int]geometry.Point, selected ...int) *graph.Store {
	t.Helper()
	s := graph.New(fixedSizer(size))
	for id := 1; id <= len(positions); id++ {
		if _, err := s.AddNode(id, graph.Label{Name: "n"}, graph.Transformer, positions[id]); err != nil {
			t.Fatalf("AddNode(%d): %v", id, err)
		}
	}
	for _, id := range selected {
		s.SetSelected(id, true)
	}
	return s
}

func pos(t *testing.T, s *graph.Store, id int) geometry.Point {
	t.Helper()
	n, ok := s.Node(id)
	if !ok {
		t.Fatalf("node %d missing", id)
	}
	return n.Position
}

func TestAlign(t *testing.T) {
	positions := map[int]geometry.Point{
		1: {X: 40, Y: 10},
		2: {X: 10, Y: 80},
		3: {X: 90, Y: 30},
		4: {X: 500, Y: 500},
	}
	tests := []struct {
		name   string
		action Action
		check  func(geometry.Point) float64
		want   float64
	}{
		{"left", AlignLeft, func(p geometry.Point) float64 { return p.X }, 10},
		{"right", AlignRight, func(p geometry.Point) float64 { return p.X }, 90},
		{"top", AlignTop, func(p geometry.Point) float64 { return p.Y }, 10},
		{"bottom", AlignBottom, func(p geometry.Point) float64 { return p.Y }, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := storeWith(t, geometry.Size{W: 120, H: 50}, positions, 1, 2, 3)
			moves := Apply(s, tt.action)
			if len(moves) != 3 {
				t.Fatalf("len(moves) = %d, want 3", len(moves))
			}
			for _, id := range []int{1, 2, 3} {
				if got := tt.check(pos(t, s, id)); got != tt.want {
					t.Errorf("node %d coordinate = %v, want %v", id, got, tt.want)
				}
			}
			if got := pos(t, s, 4); got != positions[4] {
				t.Errorf("unselected node moved to %v", got)
			}
		})
	}
}

func TestAlignKeepsOtherAxis(t *testing.T) {
	s := storeWith(t, geometry.Size{W: 120, H: 50}, map[int]geometry.Point{
		1: {X: 40, Y: 10},
		2: {X: 10, Y: 80},
	}, 1, 2)
	Align(s, Horizontal, Min)
	if got := pos(t, s, 1).Y; got != 10 {
		t.Errorf("node 1 y = %v, want 10", got)
	}
	if got := pos(t, s, 2).Y; got != 80 {
		t.Errorf("node 2 y = %v, want 80", got)
	}
}

func TestAlignEmptySelection(t *testing.T) {
	s := storeWith(t, geometry.Size{W: 120, H: 50}, map[int]geometry.Point{1: {X: 5, Y: 5}})
	if moves := Align(s, Horizontal, Max); moves != nil {
		t.Errorf("Align() on empty selection = %v, want nil", moves)
	}
}

func TestDistributeEvenGaps(t *testing.T) {
	s := storeWith(t, geometry.Size{W: 50, H: 20}, map[int]geometry.Point{
		1: {X: 200, Y: 0},
		2: {X: 0, Y: 0},
		3: {X: 10, Y: 0},
	}, 1, 2, 3)

	moves := Distribute(s, Horizontal)
	if len(moves) != 3 {
		t.Fatalf("len(moves) = %d, want 3", len(moves))
	}
	want := map[int]float64{2: 0, 3: 100, 1: 200}
	for id, x := range want {
		if got := pos(t, s, id).X; got != x {
			t.Errorf("node %d x = %v, want %v", id, got, x)
		}
	}
	// Gap between consecutive boxes: 50 each.
	if gap := pos(t, s, 3).X - (pos(t, s, 2).X + 50); gap != 50 {
		t.Errorf("first gap = %v, want 50", gap)
	}
	if gap := pos(t, s, 1).X - (pos(t, s, 3).X + 50); gap != 50 {
		t.Errorf("second gap = %v, want 50", gap)
	}
}

func TestDistributeVertical(t *testing.T) {
	s := storeWith(t, geometry.Size{W: 120, H: 40}, map[int]geometry.Point{
		1: {X: 0, Y: 0},
		2: {X: 30, Y: 20},
		3: {X: 60, Y: 300},
	}, 1, 2, 3)

	Distribute(s, Vertical)
	// gap = (300 + 40 - 0 - 120) / 2 = 110
	if got := pos(t, s, 2).Y; got != 150 {
		t.Errorf("middle node y = %v, want 150", got)
	}
	if got := pos(t, s, 2).X; got != 30 {
		t.Errorf("middle node x = %v, want 30", got)
	}
}

func TestDistributeNeedsTwo(t *testing.T) {
	s := storeWith(t, geometry.Size{W: 50, H: 20}, map[int]geometry.Point{1: {X: 7, Y: 9}, 2: {X: 70, Y: 9}}, 1)
	if moves := Distribute(s, Horizontal); moves != nil {
		t.Errorf("Distribute() with one node = %v, want nil", moves)
	}
	if got := pos(t, s, 1); got != (geometry.Point{X: 7, Y: 9}) {
		t.Errorf("node moved to %v", got)
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
	}{
		{"align-left", AlignLeft},
		{"align_right", AlignRight},
		{"ALIGN_TOP", AlignTop},
		{" align-bottom ", AlignBottom},
		{"distribute_horizontal", DistributeHorizontal},
		{"distribute-vertical", DistributeVertical},
	}
	for _, tt := range tests {
		got, err := ParseAction(tt.in)
		if err != nil {
			t.Errorf("ParseAction(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseAction("align-center"); !errors.Is(err, errors.ErrCodeInvalidAction) {
		t.Errorf("ParseAction(align-center) error = %v, want INVALID_ACTION", err)
	}
}
