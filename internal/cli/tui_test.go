package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/pipecanvas/pkg/bridge"
	"github.com/matzehuels/pipecanvas/pkg/canvas"
	"github.com/matzehuels/pipecanvas/pkg/geometry"
	"github.com/matzehuels/pipecanvas/pkg/render"
)

// newTestModel returns a model with node 1 "load" at (16,32), which covers
// cells x 2..16 and rows 3..5 (the first row is the header).
func newTestModel(t *testing.T) CanvasModel {
	t.Helper()
	scene := render.NewScene()
	out := &bridge.Recorder{}
	e := canvas.New(canvas.Options{Surface: scene, Sender: out})
	if err := e.Apply(bridge.AddNode{ID: 1, Name: "load", Category: "loader", X: 16, Y: 32}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	return NewCanvasModel(e, scene, out, nil)
}

func update(t *testing.T, m CanvasModel, msg tea.Msg) (CanvasModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	cm, ok := next.(CanvasModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return cm, cmd
}

func mouse(x, y int, action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSurfacePoint(t *testing.T) {
	x, y := surfacePoint(3, 3)
	if x != 28 || y != 40 {
		t.Errorf("surfacePoint(3, 3) = (%v, %v), want (28, 40)", x, y)
	}
}

func TestCanvasModelDrag(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, mouse(3, 3, tea.MouseActionPress))
	m, _ = update(t, m, mouse(13, 7, tea.MouseActionMotion))
	if g := m.Engine.Gesture(); g != canvas.GestureDragging {
		t.Fatalf("gesture = %v, want dragging", g)
	}
	m, _ = update(t, m, mouse(13, 7, tea.MouseActionRelease))

	msgs := m.Out.Messages()
	if len(msgs) != 1 {
		t.Fatalf("messages = %v, want one nodeMoved", msgs)
	}
	want := bridge.NodeMoved{ID: 1, X: 96, Y: 96}
	if msgs[0] != want {
		t.Errorf("got %+v, want %+v", msgs[0], want)
	}
}

func TestCanvasModelIgnoresOtherButtons(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if _, ok := m.Engine.Primary(); ok {
		t.Error("right click selected a node")
	}
}

func TestCanvasModelKeys(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, mouse(3, 3, tea.MouseActionPress))
	m, _ = update(t, m, mouse(3, 3, tea.MouseActionRelease))
	if id, ok := m.Engine.Primary(); !ok || id != 1 {
		t.Fatalf("Primary() = %d, %v, want 1, true", id, ok)
	}

	m, _ = update(t, m, key("d"))
	m, _ = update(t, m, key("x"))

	got := m.Out.Types()
	want := []string{"nodeDetailRequested", "nodeRemoved"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("types = %v, want %v", got, want)
	}
	if m.Engine.Store().NodeCount() != 0 {
		t.Error("node 1 still present")
	}
}

func TestCanvasModelConnectKey(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, mouse(3, 3, tea.MouseActionPress))
	m, _ = update(t, m, mouse(3, 3, tea.MouseActionRelease))
	m, _ = update(t, m, key("c"))

	if id, ok := m.Engine.ConnectionSource(); !ok || id != 1 {
		t.Errorf("ConnectionSource() = %d, %v, want 1, true", id, ok)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if mode := m.Engine.Mode(); mode != canvas.ModeDevelop {
		t.Errorf("mode after esc = %v, want develop", mode)
	}
}

func TestCanvasModelConnectKeyZoomed(t *testing.T) {
	m := newTestModel(t)
	if err := m.Engine.Apply(bridge.SetZoom{Factor: 2}); err != nil {
		t.Fatalf("SetZoom: %v", err)
	}
	// cell (5,5) is screen (44,72), model (22,36)
	m, _ = update(t, m, mouse(5, 5, tea.MouseActionPress))
	m, _ = update(t, m, mouse(5, 5, tea.MouseActionRelease))
	m, _ = update(t, m, key("c"))

	v, _ := m.Scene.Node(1)
	want := geometry.ConnectionToPoint(v.Bounds, v.Bounds.Center())
	if m.Scene.Preview == nil || *m.Scene.Preview != want {
		t.Errorf("preview = %v, want %v", m.Scene.Preview, want)
	}
}

func TestCanvasModelReadOnlyToggle(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, key("r"))
	if mode := m.Engine.Mode(); mode != canvas.ModeReadOnly {
		t.Fatalf("mode = %v, want read-only", mode)
	}
	m, _ = update(t, m, key("r"))
	if mode := m.Engine.Mode(); mode != canvas.ModeDevelop {
		t.Errorf("mode = %v, want develop", mode)
	}
}

func TestCanvasModelQuit(t *testing.T) {
	for _, k := range []tea.KeyMsg{key("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := update(t, newTestModel(t), k)
		if cmd == nil {
			t.Fatalf("%s: no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command did not quit", k)
		}
	}
}

func TestCanvasModelInbound(t *testing.T) {
	ch := make(chan bridge.Inbound, 1)
	m := newTestModel(t)
	m.Inbound = ch

	m, cmd := update(t, m, inboundMsg{msg: bridge.AddNode{ID: 2, Name: "store", X: 300, Y: 32}, ok: true})
	if m.Engine.Store().NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", m.Engine.Store().NodeCount())
	}
	if cmd == nil {
		t.Fatal("expected a command waiting for the next push")
	}

	ch <- bridge.ClearAll{}
	m, _ = update(t, m, cmd())
	if m.Engine.Store().NodeCount() != 0 {
		t.Errorf("NodeCount() after clearAll = %d, want 0", m.Engine.Store().NodeCount())
	}

	m, cmd = update(t, m, inboundMsg{ok: false})
	if m.Inbound != nil || cmd != nil {
		t.Error("closed channel should stop waiting")
	}
}

func TestCanvasModelView(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 12})
	view := m.View()

	for _, want := range []string{appName, "develop", "load", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
	if lines := strings.Count(view, "\n") + 1; lines != 12 {
		t.Errorf("View() has %d lines, want 12", lines)
	}
}

func TestCanvasModelStatus(t *testing.T) {
	m := newTestModel(t)
	if got := m.status(); got != "" {
		t.Errorf("status() = %q, want empty", got)
	}
	m.Engine.Handle(canvas.RequestDetail{ID: 1})
	if got := m.status(); !strings.Contains(got, "nodeDetailRequested node 1") {
		t.Errorf("status() = %q", got)
	}
	m.Scene.ShowTooltip(1, "load\n\nreads files")
	if got := m.status(); got != "load  reads files" {
		t.Errorf("status() = %q, want tooltip", got)
	}
}

func TestPaint(t *testing.T) {
	s := render.NewScene()
	s.DrawNode(render.NodeView{ID: 1, Bounds: geometry.Rect{X: 0, Y: 0, W: 80, H: 48}, Name: "src", Valid: true, Fill: "#FFFFFF", Primary: true})
	s.DrawNode(render.NodeView{ID: 2, Bounds: geometry.Rect{X: 160, Y: 0, W: 80, H: 48}, Name: "dst", Valid: false, Fill: "#FFFFFF"})
	s.DrawEdge(render.EdgeView{ID: 3, Source: 1, Target: 2, Valid: true, Line: geometry.Segment{X1: 80, Y1: 24, X2: 160, Y2: 24}})
	s.DrawMarquee(geometry.Rect{X: 0, Y: 96, W: 64, H: 32})

	out := paint(s, 40, 10)
	rows := strings.Split(out, "\n")
	if len(rows) != 10 {
		t.Fatalf("got %d rows, want 10", len(rows))
	}
	tests := []struct {
		row  int
		want string
	}{
		{0, "╔════════╗"},
		{1, "║src"},
		{1, "! dst"},
		{1, "▸"},
		{6, "........"},
	}
	for _, tt := range tests {
		if !strings.Contains(rows[tt.row], tt.want) {
			t.Errorf("row %d = %q, want it to contain %q", tt.row, rows[tt.row], tt.want)
		}
	}
}

func TestArrowHead(t *testing.T) {
	tests := []struct {
		seg  geometry.Segment
		want rune
	}{
		{geometry.Segment{X2: 100}, '▸'},
		{geometry.Segment{X1: 100}, '◂'},
		{geometry.Segment{Y2: 100}, '▾'},
		{geometry.Segment{Y1: 100}, '▴'},
	}
	for _, tt := range tests {
		if got := arrowHead(tt.seg); got != tt.want {
			t.Errorf("arrowHead(%+v) = %q, want %q", tt.seg, got, tt.want)
		}
	}
}
