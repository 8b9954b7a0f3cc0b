package geometry

import (
	"math"
	"testing"
)

func TestClassifyAxis(t *testing.T) {
	tests := []struct {
		name     string
		src, dst Interval
		want     AnchorCase
	}{
		{"before", Interval{0, 100}, Interval{200, 300}, CaseBefore},
		{"touching before", Interval{0, 100}, Interval{100, 200}, CaseBefore},
		{"after", Interval{200, 300}, Interval{0, 100}, CaseAfter},
		{"point target", Interval{0, 100}, Interval{50, 50}, CasePointTarget},
		{"source inside", Interval{50, 150}, Interval{0, 100}, CaseSourceInside},
		{"overlap", Interval{0, 100}, Interval{50, 150}, CaseOverlap},
		{"equal", Interval{0, 50}, Interval{0, 50}, CaseOverlap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyAxis(tt.src, tt.dst); got != tt.want {
				t.Errorf("ClassifyAxis(%v, %v) = %v, want %v", tt.src, tt.dst, got, tt.want)
			}
		})
	}
}

func TestConnectionAnchors(t *testing.T) {
	tests := []struct {
		name     string
		src, dst Rect
		want     Segment
	}{
		{
			name: "side by side",
			src:  Rect{0, 0, 100, 50},
			dst:  Rect{200, 0, 100, 50},
			want: Segment{100, 25, 200, 25},
		},
		{
			name: "stacked",
			src:  Rect{0, 0, 100, 50},
			dst:  Rect{0, 100, 100, 50},
			want: Segment{50, 50, 50, 100},
		},
		{
			name: "target to the left",
			src:  Rect{200, 0, 100, 50},
			dst:  Rect{0, 0, 100, 50},
			want: Segment{200, 25, 100, 25},
		},
		{
			name: "source shifted right above target",
			src:  Rect{50, 0, 100, 50},
			dst:  Rect{0, 100, 100, 50},
			want: Segment{75, 50, 75, 100},
		},
		{
			name: "diagonal",
			src:  Rect{0, 0, 100, 50},
			dst:  Rect{300, 200, 100, 50},
			want: Segment{100, 50, 300, 200},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConnectionAnchors(tt.src, tt.dst); got != tt.want {
				t.Errorf("ConnectionAnchors() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConnectionAnchorsDeterministic(t *testing.T) {
	a := Rect{12.5, 40, 120, 63}
	b := Rect{80, 10, 120, 41}
	first := ConnectionAnchors(a, b)
	for i := 0; i < 10; i++ {
		if got := ConnectionAnchors(a, b); got != first {
			t.Fatalf("call %d = %v, want %v", i, got, first)
		}
	}
}

func TestConnectionAnchorsSymmetric(t *testing.T) {
	rects := []Rect{
		{0, 0, 120, 50},
		{200, 5, 120, 70},
		{60, 120, 120, 50},
		{-40, 30, 120, 45},
		{310, 260, 120, 50},
	}
	for i, a := range rects {
		for j, b := range rects {
			if i == j {
				continue
			}
			ab := ConnectionAnchors(a, b)
			ba := ConnectionAnchors(b, a)
			if ba != ab.Reverse() {
				t.Errorf("anchors(%v,%v) = %v, reverse of %v", b, a, ba, ab)
			}
		}
	}
}

func TestConnectionToPoint(t *testing.T) {
	src := Rect{0, 0, 100, 50}

	got := ConnectionToPoint(src, Point{300, 25})
	if want := (Segment{100, 25, 300, 25}); got != want {
		t.Errorf("outside point = %v, want %v", got, want)
	}

	got = ConnectionToPoint(src, Point{50, 25})
	if !got.Degenerate() || got.End() != (Point{50, 25}) {
		t.Errorf("inside point = %v, want zero-length segment at (50,25)", got)
	}
}

func TestArrowHeads(t *testing.T) {
	left, right := ArrowHeads(Segment{0, 0, 10, 0}, DefaultArrowLength)

	if want := (Segment{5, -5, 10, 0}); left != want {
		t.Errorf("left = %v, want %v", left, want)
	}
	if want := (Segment{5, 5, 10, 0}); right != want {
		t.Errorf("right = %v, want %v", right, want)
	}
}

func TestArrowHeadDegenerate(t *testing.T) {
	seg := Segment{3, 4, 3, 4}
	left, right := ArrowHeads(seg, DefaultArrowLength)
	for _, s := range []Segment{left, right} {
		if s != seg {
			t.Errorf("wedge = %v, want %v", s, seg)
		}
		if math.IsNaN(s.X1) || math.IsNaN(s.Y1) {
			t.Errorf("wedge has NaN coordinates: %v", s)
		}
	}
}

func TestLabelPlacement(t *testing.T) {
	opts := DefaultLabelOptions()
	tests := []struct {
		name     string
		seg      Segment
		measured float64
		want     LabelBox
	}{
		{"fits", Segment{0, 0, 300, 0}, 80, LabelBox{X: 110, Y: 0, W: 80}},
		{"capped by gap", Segment{0, 0, 120, 40}, 200, LabelBox{X: 15, Y: 20, W: 90}},
		{"raised to minimum", Segment{0, 10, 50, 30}, 80, LabelBox{X: 5, Y: 20, W: 40}},
		{"empty label", Segment{0, 0, 300, 0}, 0, LabelBox{X: 130, Y: 0, W: 40}},
		{"reversed segment", Segment{300, 0, 0, 0}, 80, LabelBox{X: 110, Y: 0, W: 80}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LabelPlacement(tt.seg, tt.measured, opts); got != tt.want {
				t.Errorf("LabelPlacement() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectFromCorners(t *testing.T) {
	want := Rect{10, 20, 90, 60}
	corners := [][2]Point{
		{{10, 20}, {100, 80}},
		{{100, 80}, {10, 20}},
		{{100, 20}, {10, 80}},
		{{10, 80}, {100, 20}},
	}
	for _, c := range corners {
		if got := RectFromCorners(c[0], c[1]); got != want {
			t.Errorf("RectFromCorners(%v, %v) = %v, want %v", c[0], c[1], got, want)
		}
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := Rect{0, 0, 500, 500}
	if !outer.ContainsRect(Rect{10, 10, 120, 50}) {
		t.Error("inner rectangle should be contained")
	}
	if outer.ContainsRect(Rect{480, 480, 120, 50}) {
		t.Error("partially overlapping rectangle should not be contained")
	}
	if !outer.ContainsRect(outer) {
		t.Error("rectangle should contain itself")
	}
}

func TestBounds(t *testing.T) {
	got := Bounds([]Rect{{10, 10, 20, 20}, {50, 0, 10, 5}})
	if want := (Rect{10, 0, 50, 30}); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if got := Bounds(nil); got != (Rect{}) {
		t.Errorf("Bounds(nil) = %v, want zero", got)
	}
}
