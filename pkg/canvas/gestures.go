package canvas

import (
	"time"

	"github.com/matzehuels/pipecanvas/pkg/bridge"
	"github.com/matzehuels/pipecanvas/pkg/geometry"
	"github.com/matzehuels/pipecanvas/pkg/graph"
	"github.com/matzehuels/pipecanvas/pkg/selection"
	"github.com/matzehuels/pipecanvas/pkg/transform"
)

// Handle processes one UI event. Events that the current mode does not
// allow, or that name nodes and edges that no longer exist, are ignored.
func (e *Engine) Handle(ev Event) {
	switch ev := ev.(type) {
	case PointerDown:
		e.pointerDown(ev)
	case PointerMove:
		e.pointerMove(ev)
	case PointerUp:
		e.pointerUp(ev)
	case Cancel:
		e.cancelGesture()
		e.cancelMultiselect()
	case RemoveNode:
		e.removeNode(ev.ID)
	case RemoveEdge:
		e.removeEdge(ev.ID)
	case RequestDetail:
		e.requestDetail(ev.ID)
	case RequestDebug:
		e.requestDebug(ev.ID)
	case RequestCopy:
		e.requestCopy(ev.ID, e.toModel(ev.X, ev.Y))
	case EditEdgeLabel:
		e.editEdgeLabel(ev.ID)
	case StartConnection:
		if e.gesture == GestureNone && e.permits(ActConnect) {
			if n, ok := e.store.Node(ev.ID); ok {
				e.beginConnection(n, e.toModel(ev.X, ev.Y))
			}
		}
	case ToggleMultiselect:
		if e.permits(ActMultiselect) {
			if e.mode == ModeMultiselect {
				e.toggleMember(ev.ID)
			} else if _, ok := e.store.Node(ev.ID); ok {
				e.enterMultiselect(ev.ID)
			}
		}
	case RunLayout:
		e.applyLayout(ev.Action)
	}
	e.surface.Flush()
}

// =============================================================================
// Pointer Down
// =============================================================================

func (e *Engine) pointerDown(ev PointerDown) {
	at := e.stamp(ev.At)
	e.sched.Advance(at)
	p := e.toModel(ev.X, ev.Y)
	e.lastPointer = p

	if e.gesture != GestureNone || e.mode == ModeNewConnection {
		return
	}
	if n, ok := e.store.HitTest(p); ok {
		e.pressNode(n, p, ev.Mods, at)
		return
	}
	e.pressCanvas(p)
}

func (e *Engine) pressCanvas(p geometry.Point) {
	e.cancelMultiselect()
	if !e.permits(ActSelect) {
		return
	}
	e.setPrimary(noNode)
	e.marquee.Begin(p)
	e.gesture = GestureMarquee
	e.surface.DrawMarquee(e.marquee.Rect())
	e.gestureEvent("marquee")
}

func (e *Engine) pressNode(n *graph.Node, p geometry.Point, mods Modifiers, at time.Time) {
	if e.mode == ModeMultiselect {
		switch {
		case mods.Ctrl():
			e.toggleMember(n.ID)
			return
		case n.Selected:
			e.beginGroupDrag(p)
			return
		}
		e.cancelMultiselect()
	}

	if e.isDoubleClick(n.ID, at) {
		e.resetClick()
		e.requestDetail(n.ID)
		return
	}

	switch {
	case mods.Ctrl() && Permits(e.mode, ActMultiselect):
		e.enterMultiselect(n.ID)
		return
	case mods.Shift() && Permits(e.mode, ActConnect):
		e.beginConnection(n, p)
		return
	}

	if !e.permits(ActSelect) {
		return
	}
	e.setPrimary(n.ID)
	e.recordClick(n.ID, at)
	if Permits(e.mode, ActDrag) {
		e.drag = dragState{id: n.ID, offset: p.Sub(n.Position), origin: n.Position}
		e.gesture = GestureDragging
		e.gestureEvent("drag")
	}
}

func (e *Engine) isDoubleClick(id int, at time.Time) bool {
	return e.click.node == id && e.click.expiry.Pending() && at.Sub(e.click.at) < e.doubleClick
}

func (e *Engine) recordClick(id int, at time.Time) {
	e.click.expiry.Cancel()
	e.click = clickState{node: id, at: at}
	e.click.expiry = e.sched.After(at, e.doubleClick, e.resetClick)
}

func (e *Engine) resetClick() {
	e.click.expiry.Cancel()
	e.click = clickState{node: noNode}
}

func (e *Engine) beginConnection(n *graph.Node, p geometry.Point) {
	e.source = n.ID
	e.mode = ModeNewConnection
	e.surface.DrawPreview(geometry.ConnectionToPoint(n.Bounds(), p))
	e.gestureEvent("connect")
}

func (e *Engine) beginGroupDrag(p geometry.Point) {
	if !e.permits(ActGroupDrag) {
		return
	}
	g, ok := transform.BeginGroupDrag(e.store, p)
	if !ok {
		return
	}
	e.group = g
	e.gesture = GestureGroupDragging
	e.surface.DrawGhost(g.Ghost())
	e.gestureEvent("group-drag")
}

// =============================================================================
// Pointer Move
// =============================================================================

func (e *Engine) pointerMove(ev PointerMove) {
	at := e.stamp(ev.At)
	e.sched.Advance(at)
	p := e.toModel(ev.X, ev.Y)
	e.lastPointer = p

	switch e.gesture {
	case GestureDragging:
		if _, ok := e.store.Node(e.drag.id); !ok {
			e.gesture = GestureNone
			return
		}
		e.store.MoveNode(e.drag.id, p.Sub(e.drag.offset))
		e.drawNode(e.drag.id)
		e.reroute(e.drag.id)
	case GestureGroupDragging:
		e.surface.DrawGhost(e.group.Update(p))
	case GestureMarquee:
		e.surface.DrawMarquee(e.marquee.Update(p))
	default:
		if e.mode == ModeNewConnection {
			e.updatePreview(p)
			return
		}
		e.hoverAt(p, at)
	}
}

func (e *Engine) updatePreview(p geometry.Point) {
	src, ok := e.store.Node(e.source)
	if !ok {
		e.endConnection()
		return
	}
	e.surface.DrawPreview(geometry.ConnectionToPoint(src.Bounds(), p))
}

func (e *Engine) hoverAt(p geometry.Point, at time.Time) {
	id := noNode
	if n, ok := e.store.HitTest(p); ok {
		id = n.ID
	}
	if id == e.hover.node {
		return
	}
	e.hover.task.Cancel()
	if e.hover.shown {
		e.surface.HideTooltip()
	}
	e.hover = hoverState{node: id}
	if id == noNode || !Permits(e.mode, ActHover) {
		return
	}
	e.hover.task = e.sched.After(at, e.tooltipDelay, func() {
		n, ok := e.store.Node(id)
		if !ok || e.hover.node != id {
			return
		}
		text := n.Label.Description
		if text == "" {
			text = n.Label.Name
		}
		e.surface.ShowTooltip(id, text)
		e.hover.shown = true
	})
}

// =============================================================================
// Pointer Up
// =============================================================================

func (e *Engine) pointerUp(ev PointerUp) {
	at := e.stamp(ev.At)
	e.sched.Advance(at)
	p := e.toModel(ev.X, ev.Y)
	e.lastPointer = p

	switch e.gesture {
	case GestureDragging:
		e.finishDrag(p)
	case GestureGroupDragging:
		e.finishGroupDrag(p)
	case GestureMarquee:
		e.finishMarquee(p)
	default:
		if e.mode == ModeNewConnection {
			e.finishConnection(p)
		}
	}
}

func (e *Engine) finishDrag(p geometry.Point) {
	d := e.drag
	e.gesture = GestureNone
	n, ok := e.store.Node(d.id)
	if !ok {
		return
	}
	if !e.inBounds(p) {
		e.store.MoveNode(d.id, d.origin)
		e.drawNode(d.id)
		e.reroute(d.id)
		return
	}
	if n.Position == d.origin {
		return
	}
	e.emitMove(d.id, n.Position, false)
}

func (e *Engine) finishGroupDrag(p geometry.Point) {
	g := e.group
	e.group = nil
	e.gesture = GestureNone
	e.surface.ClearGhost()
	if !e.inBounds(p) {
		return
	}
	e.commitMoves(g.Commit(e.store))
}

func (e *Engine) finishMarquee(p geometry.Point) {
	r := e.marquee.End(p)
	e.gesture = GestureNone
	e.surface.ClearMarquee()

	res := selection.Select(r, e.store.Nodes())
	switch res.Kind() {
	case selection.Single:
		e.setPrimary(res.IDs[0])
	case selection.Multi:
		if Permits(e.mode, ActMultiselect) {
			e.enterMultiselect(res.IDs...)
		}
	}
}

func (e *Engine) finishConnection(p geometry.Point) {
	src := e.source
	allowed := e.permits(ActCommitConnection)
	e.endConnection()
	if !allowed {
		return
	}
	target, ok := e.store.HitTest(p)
	if !ok || target.ID == src {
		return
	}
	if _, ok := e.store.Node(src); !ok {
		return
	}
	e.emit(bridge.EdgeAdded{SourceID: src, TargetID: target.ID})
	e.gestureEvent("commit-connection")
}

// endConnection leaves new-connection mode and removes the preview line.
func (e *Engine) endConnection() {
	if e.mode != ModeNewConnection {
		return
	}
	e.surface.ClearPreview()
	e.source = noNode
	e.mode = ModeDevelop
}

// cancelGesture aborts the gesture in progress and restores what it changed.
func (e *Engine) cancelGesture() {
	switch e.gesture {
	case GestureDragging:
		if e.store.MoveNode(e.drag.id, e.drag.origin) {
			e.drawNode(e.drag.id)
			e.reroute(e.drag.id)
		}
	case GestureGroupDragging:
		e.group = nil
		e.surface.ClearGhost()
	case GestureMarquee:
		e.marquee.Cancel()
		e.surface.ClearMarquee()
	}
	e.gesture = GestureNone
	e.endConnection()
}

// =============================================================================
// Commands
// =============================================================================

func (e *Engine) removeNode(id int) {
	if !e.permits(ActRemove) {
		return
	}
	cascade, ok := e.store.RemoveNode(id)
	if !ok {
		e.logger.Debug("remove of unknown node ignored", "id", id)
		return
	}
	for _, eid := range cascade {
		e.surface.EraseEdge(eid)
		e.emit(bridge.EdgeRemoved{ID: eid})
	}
	e.surface.EraseNode(id)
	e.emit(bridge.NodeRemoved{ID: id})
	if e.primary == id {
		e.primary = noNode
	}
	if e.click.node == id {
		e.resetClick()
	}
}

func (e *Engine) removeEdge(id int) {
	if !e.permits(ActRemove) {
		return
	}
	if !e.store.RemoveEdge(id) {
		e.logger.Debug("remove of unknown edge ignored", "id", id)
		return
	}
	e.surface.EraseEdge(id)
	e.emit(bridge.EdgeRemoved{ID: id})
}

func (e *Engine) requestDetail(id int) {
	if !e.permits(ActDetail) {
		return
	}
	if _, ok := e.store.Node(id); ok {
		e.emit(bridge.NodeDetailRequested{ID: id})
	}
}

func (e *Engine) requestDebug(id int) {
	if !e.debug || !e.permits(ActDebug) {
		return
	}
	if _, ok := e.store.Node(id); ok {
		e.emit(bridge.NodeDebugRequested{ID: id})
	}
}

func (e *Engine) requestCopy(id int, p geometry.Point) {
	if !e.permits(ActCopy) {
		return
	}
	if _, ok := e.store.Node(id); ok {
		e.emit(bridge.NodeCopyRequested{ID: id, X: round(p.X), Y: round(p.Y)})
	}
}

func (e *Engine) editEdgeLabel(id int) {
	if !e.permits(ActEditLabel) {
		return
	}
	if _, ok := e.store.Edge(id); ok {
		e.emit(bridge.EdgeLabelEditRequested{ID: id})
	}
}
