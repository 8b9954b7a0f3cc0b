package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/pipecanvas/pkg/geometry"
	"github.com/matzehuels/pipecanvas/pkg/render"
)

func testScene() *render.Scene {
	s := render.NewScene()
	s.Resize(400, 200)
	s.DrawNode(render.NodeView{
		ID: 1, Name: "Extract", Description: "reads rows", Fill: "#F6D8CE", Valid: true,
		Bounds: geometry.Rect{X: 0, Y: 0, W: 144, H: 36},
	})
	s.DrawNode(render.NodeView{
		ID: 2, Name: "Load", Fill: "#CEF6D8", Valid: false,
		Bounds: geometry.Rect{X: 200, Y: 100, W: 144, H: 36},
	})
	s.DrawEdge(render.EdgeView{ID: 7, Source: 1, Target: 2, Label: "rows", Valid: true})
	s.DrawEdge(render.EdgeView{ID: 8, Source: 2, Target: 1})
	return s
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(testScene(), Options{})

	for _, want := range []string{
		"digraph G",
		`n1 [label="Extract"`,
		`fillcolor="#F6D8CE"`,
		"width=2",
		"height=0.5",
		`n1 -> n2 [id="e7", label="rows"]`,
		`n2 -> n1 [id="e8", color=red, style=dashed]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q\n%s", want, dot)
		}
	}
}

func TestToDOT_Positions(t *testing.T) {
	dot := ToDOT(testScene(), Options{})
	// Centre (72,18) with the y axis flipped against the 200pt canvas.
	if !strings.Contains(dot, `pos="72,182!"`) {
		t.Errorf("ToDOT() missing pinned position for node 1:\n%s", dot)
	}

	dot = ToDOT(testScene(), Options{Unpinned: true})
	if strings.Contains(dot, "pos=") {
		t.Error("ToDOT() with Unpinned still has positions")
	}
}

func TestToDOT_InvalidNode(t *testing.T) {
	dot := ToDOT(testScene(), Options{})
	if !strings.Contains(dot, "color=red, penwidth=2") {
		t.Error("ToDOT() missing invalid outline for node 2")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(testScene(), Options{Detailed: true})
	if !strings.Contains(dot, `label="Extract\n\nreads rows"`) {
		t.Errorf("ToDOT() detailed output missing description:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg></svg>")); string(got) != "<svg></svg>" {
		t.Errorf("normalizeViewBox() without viewBox changed input: %s", got)
	}
}
