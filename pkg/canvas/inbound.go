package canvas

import (
	"strings"
	"time"

	"github.com/matzehuels/pipecanvas/pkg/bridge"
	"github.com/matzehuels/pipecanvas/pkg/errors"
	"github.com/matzehuels/pipecanvas/pkg/geometry"
	"github.com/matzehuels/pipecanvas/pkg/graph"
	"github.com/matzehuels/pipecanvas/pkg/observability"
	"github.com/matzehuels/pipecanvas/pkg/transform"
)

// Apply applies a push from the server. Pushes naming unknown nodes or
// edges leave the canvas unchanged and return an UNKNOWN_ENTITY error;
// callers are expected to log and carry on.
func (e *Engine) Apply(msg bridge.Inbound) error {
	start := time.Now()
	err := e.apply(msg)
	observability.Canvas().OnInbound(e.ctx, msg.Type(), time.Since(start), err)
	switch {
	case err == nil:
	case errors.Benign(err):
		e.logger.Debug("push ignored", "type", msg.Type(), "err", err)
	default:
		e.logger.Warn("push rejected", "type", msg.Type(), "err", err)
	}
	e.surface.Flush()
	return err
}

func (e *Engine) apply(msg bridge.Inbound) error {
	switch m := msg.(type) {
	case bridge.Initialize:
		return e.initialize(m)
	case bridge.AddNode:
		return e.addNode(m)
	case bridge.AddEdge:
		edge, err := e.store.AddEdge(m.ID, m.SourceID, m.TargetID, m.DataUnit)
		if err != nil {
			return err
		}
		e.route(edge)
	case bridge.UpdateNode:
		if !e.store.UpdateNodeLabel(m.ID, graph.Label{Name: m.Name, Description: m.Description}) {
			return unknownNode(m.ID)
		}
		e.drawNode(m.ID)
		e.reroute(m.ID)
	case bridge.UpdateEdgeLabel:
		if !e.store.UpdateEdgeLabel(m.ID, m.DataUnit) {
			return unknownEdge(m.ID)
		}
		e.routeEdge(m.ID)
	case bridge.SetNodeValidity:
		if !e.store.SetNodeValidity(m.ID, m.Valid) {
			return unknownNode(m.ID)
		}
		e.drawNode(m.ID)
		e.reroute(m.ID)
	case bridge.ResizeSurface:
		return e.resize(m.Width, m.Height)
	case bridge.GrowSurface:
		return e.grow(m.Direction, m.Pixels)
	case bridge.SetZoom:
		if m.Factor <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "zoom factor must be positive, got %g", m.Factor)
		}
		e.scale = m.Factor
		e.surface.SetScale(m.Factor)
	case bridge.ClearAll:
		e.clear()
	case bridge.SetMode:
		mode, err := ParseMode(m.Mode)
		if err != nil {
			return err
		}
		e.cancelGesture()
		e.cancelMultiselect()
		e.mode = mode
		e.redrawAll()
	case bridge.ApplyLayoutAction:
		a, err := transform.ParseAction(m.Action)
		if err != nil {
			return err
		}
		e.applyLayout(a)
	default:
		return errors.New(errors.ErrCodeInvalidMessage, "unsupported push %q", msg.Type())
	}
	return nil
}

func (e *Engine) initialize(m bridge.Initialize) error {
	e.clear()
	e.mode = ModeDevelop
	e.scale = 1
	e.surface.SetScale(1)
	e.locale = m.Locale
	e.theme = m.Theme
	e.debug = m.Debug
	if m.Width > 0 && m.Height > 0 {
		return e.resize(m.Width, m.Height)
	}
	return nil
}

func (e *Engine) addNode(m bridge.AddNode) error {
	pos := geometry.Point{X: m.X, Y: m.Y}
	if m.X < 0 || m.Y < 0 {
		pos = e.lastPointer
	}
	label := graph.Label{Name: m.Name, Description: m.Description}
	n, err := e.store.AddNode(m.ID, label, graph.ParseCategory(m.Category), pos)
	if err != nil {
		return err
	}
	e.surface.DrawNode(e.nodeView(n))
	if m.IsNew {
		e.emitMove(n.ID, n.Position, false)
	}
	return nil
}

func (e *Engine) resize(w, h float64) error {
	if w <= 0 || h <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "surface size must be positive, got %gx%g", w, h)
	}
	e.width, e.height = w, h
	e.surface.Resize(w, h)
	return nil
}

func (e *Engine) grow(direction string, px float64) error {
	if px < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cannot grow surface by %g", px)
	}
	switch strings.ToLower(direction) {
	case "left", "right":
		return e.resize(e.width+px, e.height)
	case "top", "bottom":
		return e.resize(e.width, e.height+px)
	}
	return errors.New(errors.ErrCodeInvalidInput, "unknown grow direction %q", direction)
}

// clear drops the whole diagram and any interaction state tied to it.
func (e *Engine) clear() {
	e.cancelGesture()
	e.cancelMultiselect()
	e.hover.task.Cancel()
	e.hover = hoverState{node: noNode}
	e.resetClick()
	e.primary = noNode
	e.store.Clear()
	e.surface.Clear()
}
