package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pipecanvas/pkg/bridge"
	"github.com/matzehuels/pipecanvas/pkg/canvas"
	"github.com/matzehuels/pipecanvas/pkg/render"
	"github.com/matzehuels/pipecanvas/pkg/transform"
)

// Model units covered by one terminal cell.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

// headerRows is the number of lines above the canvas area.
const headerRows = 1

var (
	helpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	statusStyle = lipgloss.NewStyle().Foreground(colorGray)
	modeStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// layoutKeys maps number keys to layout actions.
var layoutKeys = map[string]transform.Action{
	"1": transform.AlignLeft,
	"2": transform.AlignRight,
	"3": transform.AlignTop,
	"4": transform.AlignBottom,
	"5": transform.DistributeHorizontal,
	"6": transform.DistributeVertical,
}

type tickMsg time.Time

type inboundMsg struct {
	msg bridge.Inbound
	ok  bool
}

// =============================================================================
// CanvasModel - Interactive diagram editing
// =============================================================================

// CanvasModel is the bubbletea model of the terminal canvas. Mouse input is
// translated to pointer events; server pushes arrive on Inbound.
type CanvasModel struct {
	Engine  *canvas.Engine
	Scene   *render.Scene
	Out     *bridge.Recorder
	Inbound <-chan bridge.Inbound

	Width  int
	Height int
	Err    error
}

// NewCanvasModel creates a canvas model. inbound may be nil.
func NewCanvasModel(e *canvas.Engine, scene *render.Scene, out *bridge.Recorder, inbound <-chan bridge.Inbound) CanvasModel {
	return CanvasModel{
		Engine:  e,
		Scene:   scene,
		Out:     out,
		Inbound: inbound,
		Width:   80,
		Height:  24,
	}
}

func (m CanvasModel) Init() tea.Cmd {
	return tea.Batch(tick(), waitInbound(m.Inbound))
}

func tick() tea.Cmd {
	return tea.Tick(canvas.TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func waitInbound(ch <-chan bridge.Inbound) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		return inboundMsg{msg: msg, ok: ok}
	}
}

// surfacePoint converts a terminal cell to surface coordinates at the
// centre of the cell.
func surfacePoint(x, y int) (float64, float64) {
	return float64(x)*cellWidth + cellWidth/2, float64(y-headerRows)*cellHeight + cellHeight/2
}

func (m CanvasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
	case tickMsg:
		m.Engine.Tick(time.Time(msg))
		return m, tick()
	case inboundMsg:
		if !msg.ok {
			m.Inbound = nil
			return m, nil
		}
		m.Err = m.Engine.Apply(msg.msg)
		return m, waitInbound(m.Inbound)
	}
	return m, nil
}

func (m CanvasModel) handleMouse(msg tea.MouseMsg) {
	x, y := surfacePoint(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		var mods canvas.Modifiers
		if msg.Shift {
			mods |= canvas.ModShift
		}
		if msg.Ctrl || msg.Alt {
			mods |= canvas.ModCtrl
		}
		m.Engine.Handle(canvas.PointerDown{X: x, Y: y, Mods: mods})
	case tea.MouseActionMotion:
		m.Engine.Handle(canvas.PointerMove{X: x, Y: y})
	case tea.MouseActionRelease:
		m.Engine.Handle(canvas.PointerUp{X: x, Y: y})
	}
}

func (m CanvasModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.Engine.Handle(canvas.Cancel{})
		return m, nil
	case "r":
		mode := "read-only"
		if m.Engine.Mode() == canvas.ModeReadOnly {
			mode = "develop"
		}
		m.Err = m.Engine.Apply(bridge.SetMode{Mode: mode})
		return m, nil
	}

	if a, ok := layoutKeys[key]; ok {
		m.Engine.Handle(canvas.RunLayout{Action: a})
		return m, nil
	}

	id, ok := m.Engine.Primary()
	if !ok {
		return m, nil
	}
	switch key {
	case "x", "delete":
		m.Engine.Handle(canvas.RemoveNode{ID: id})
	case "d", "enter":
		m.Engine.Handle(canvas.RequestDetail{ID: id})
	case "m":
		m.Engine.Handle(canvas.ToggleMultiselect{ID: id})
	case "c":
		if v, ok := m.Scene.Node(id); ok {
			c, s := v.Bounds.Center(), m.Engine.Scale()
			m.Engine.Handle(canvas.StartConnection{ID: id, X: c.X * s, Y: c.Y * s})
		}
	}
	return m, nil
}

func (m CanvasModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName))
	b.WriteString("  ")
	b.WriteString(modeStyle.Render(m.Engine.Mode().String()))
	if g := m.Engine.Gesture(); g != canvas.GestureNone {
		b.WriteString(StyleDim.Render(" · " + g.String()))
	}
	if n := len(m.Engine.Selection()); n > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf(" · %d selected", n)))
	}
	b.WriteString("\n")

	rows := max(m.Height-headerRows-2, 1)
	b.WriteString(paint(m.Scene, m.Width, rows))
	b.WriteString("\n")

	b.WriteString(statusStyle.Render(m.status()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("drag move  shift connect  ctrl select  x remove  d detail  c connect  m select  1-6 layout  r read-only  q quit"))
	return b.String()
}

// status describes the tooltip, the last error or the last notification.
func (m CanvasModel) status() string {
	switch {
	case m.Scene.Tooltip != "":
		return strings.ReplaceAll(m.Scene.Tooltip, "\n", " ")
	case m.Err != nil:
		return iconError + " " + m.Err.Error()
	}
	if m.Out == nil {
		return ""
	}
	msgs := m.Out.Messages()
	if len(msgs) == 0 {
		return ""
	}
	last := msgs[len(msgs)-1]
	return fmt.Sprintf("%s %s %s", iconInfo, last.Type(), describe(last))
}
