package canvas

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pipecanvas/pkg/bridge"
	"github.com/matzehuels/pipecanvas/pkg/errors"
	"github.com/matzehuels/pipecanvas/pkg/geometry"
	"github.com/matzehuels/pipecanvas/pkg/graph"
	"github.com/matzehuels/pipecanvas/pkg/observability"
	"github.com/matzehuels/pipecanvas/pkg/render"
	"github.com/matzehuels/pipecanvas/pkg/selection"
	"github.com/matzehuels/pipecanvas/pkg/transform"
)

// noNode marks the absence of a node id. Server-assigned ids are never negative.
const noNode = -1

// Defaults for Options fields left zero.
const (
	DefaultDoubleClick  = 500 * time.Millisecond
	DefaultTooltipDelay = 400 * time.Millisecond
	DefaultWidth        = 1200.0
	DefaultHeight       = 800.0
)

// Options configures an Engine. Zero fields take defaults.
type Options struct {
	Surface  render.Surface  // default render.Nop
	Sender   bridge.Sender   // default bridge.Discard
	Sizer    graph.Sizer     // default graph.DefaultSizer
	Measurer render.Measurer // default fixed 6 units per rune
	Logger   *log.Logger     // default discards

	DoubleClick  time.Duration
	TooltipDelay time.Duration
	ArrowLength  float64
	Label        geometry.LabelOptions
	Width        float64
	Height       float64

	// Now supplies timestamps for events that carry none.
	Now func() time.Time
}

type dragState struct {
	id     int
	offset geometry.Point
	origin geometry.Point
}

type clickState struct {
	node   int
	at     time.Time
	expiry *Task
}

type hoverState struct {
	node  int
	task  *Task
	shown bool
}

// Engine is the interaction state machine of one canvas.
type Engine struct {
	store   *graph.Store
	surface render.Surface
	out     bridge.Sender
	measure render.Measurer
	logger  *log.Logger
	sched   Scheduler
	now     func() time.Time
	ctx     context.Context

	doubleClick  time.Duration
	tooltipDelay time.Duration
	arrowLength  float64
	label        geometry.LabelOptions

	width, height, scale float64
	debug                bool
	locale, theme        string

	mode        Mode
	gesture     Gesture
	primary     int
	lastPointer geometry.Point

	drag    dragState
	source  int
	marquee selection.Marquee
	group   *transform.GroupDrag
	click   clickState
	hover   hoverState
}

// New creates an engine with an empty store in develop mode.
func New(opts Options) *Engine {
	e := &Engine{
		store:        graph.New(opts.Sizer),
		surface:      opts.Surface,
		out:          opts.Sender,
		measure:      opts.Measurer,
		logger:       opts.Logger,
		now:          opts.Now,
		ctx:          context.Background(),
		doubleClick:  opts.DoubleClick,
		tooltipDelay: opts.TooltipDelay,
		arrowLength:  opts.ArrowLength,
		label:        opts.Label,
		width:        opts.Width,
		height:       opts.Height,
		scale:        1,
		primary:      noNode,
		source:       noNode,
		click:        clickState{node: noNode},
		hover:        hoverState{node: noNode},
	}
	if e.surface == nil {
		e.surface = render.Nop{}
	}
	if e.out == nil {
		e.out = bridge.Discard
	}
	if e.measure == nil {
		e.measure = render.FixedMeasurer(graph.DefaultFontSize * 0.6)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.doubleClick <= 0 {
		e.doubleClick = DefaultDoubleClick
	}
	if e.tooltipDelay <= 0 {
		e.tooltipDelay = DefaultTooltipDelay
	}
	if e.arrowLength <= 0 {
		e.arrowLength = geometry.DefaultArrowLength
	}
	if e.label == (geometry.LabelOptions{}) {
		e.label = geometry.DefaultLabelOptions()
	}
	if e.width <= 0 {
		e.width = DefaultWidth
	}
	if e.height <= 0 {
		e.height = DefaultHeight
	}
	e.surface.Resize(e.width, e.height)
	return e
}

// =============================================================================
// Queries
// =============================================================================

// Store returns the diagram. Callers must not mutate it while the engine runs.
func (e *Engine) Store() *graph.Store { return e.store }

// Mode returns the current mode.
func (e *Engine) Mode() Mode { return e.mode }

// Gesture returns the gesture in progress.
func (e *Engine) Gesture() Gesture { return e.gesture }

// Primary returns the primary selection.
func (e *Engine) Primary() (int, bool) { return e.primary, e.primary != noNode }

// Selection returns the multi-selected node ids.
func (e *Engine) Selection() []int { return e.store.SelectedIDs() }

// ConnectionSource returns the node a connection is being drawn from.
func (e *Engine) ConnectionSource() (int, bool) { return e.source, e.mode == ModeNewConnection }

// Size returns the canvas size in model units.
func (e *Engine) Size() (width, height float64) { return e.width, e.height }

// Scale returns the zoom factor.
func (e *Engine) Scale() float64 { return e.scale }

// Debug reports whether debug requests are enabled.
func (e *Engine) Debug() bool { return e.debug }

// Locale returns the locale pushed at initialisation.
func (e *Engine) Locale() string { return e.locale }

// Theme returns the theme pushed at initialisation.
func (e *Engine) Theme() string { return e.theme }

// =============================================================================
// Clock
// =============================================================================

func (e *Engine) stamp(at time.Time) time.Time {
	if at.IsZero() {
		return e.now()
	}
	return at
}

// Tick fires scheduled tasks due at now.
func (e *Engine) Tick(now time.Time) {
	if e.sched.Advance(now) > 0 {
		e.surface.Flush()
	}
}

// NextDeadline returns when the next scheduled task is due.
func (e *Engine) NextDeadline() (time.Time, bool) { return e.sched.Next() }

// =============================================================================
// Helpers
// =============================================================================

func (e *Engine) toModel(x, y float64) geometry.Point {
	return geometry.Point{X: x, Y: y}.Scale(e.scale)
}

func (e *Engine) inBounds(p geometry.Point) bool {
	return geometry.Rect{W: e.width, H: e.height}.ContainsPoint(p)
}

func (e *Engine) permits(a Action) bool {
	if Permits(e.mode, a) {
		return true
	}
	e.logger.Debug("gesture rejected", "mode", e.mode, "action", a)
	observability.Canvas().OnRejected(e.ctx, e.mode.String(), a.String())
	return false
}

func (e *Engine) gestureEvent(name string) {
	observability.Canvas().OnGesture(e.ctx, e.mode.String(), name)
}

func (e *Engine) emit(msg bridge.Outbound) {
	observability.Canvas().OnOutbound(e.ctx, msg.Type())
	if err := e.out.Send(msg); err != nil {
		e.logger.Warn("outbound notification failed", "type", msg.Type(), "err", err)
	}
}

func (e *Engine) emitMove(id int, p geometry.Point, batch bool) {
	e.emit(bridge.NodeMoved{ID: id, X: round(p.X), Y: round(p.Y), Batch: batch})
}

func round(v float64) int { return int(math.Round(v)) }

func unknownNode(id int) error {
	return errors.New(errors.ErrCodeUnknownEntity, "node %d does not exist", id)
}

func unknownEdge(id int) error {
	return errors.New(errors.ErrCodeUnknownEntity, "edge %d does not exist", id)
}

// =============================================================================
// Drawing
// =============================================================================

func (e *Engine) nodeView(n *graph.Node) render.NodeView {
	return render.NodeView{
		ID:          n.ID,
		Bounds:      n.Bounds(),
		Name:        n.Label.Name,
		Description: n.Label.Description,
		Category:    string(n.Category),
		Fill:        n.Category.Fill(),
		Valid:       n.Valid,
		Primary:     n.ID == e.primary,
		Selected:    n.Selected,
	}
}

func (e *Engine) drawNode(id int) {
	if n, ok := e.store.Node(id); ok {
		e.surface.DrawNode(e.nodeView(n))
	}
}

// highlighted reports whether an edge belongs to the current selection.
func (e *Engine) highlighted(edge *graph.Edge) bool {
	if e.primary != noNode && edge.Touches(e.primary) {
		return true
	}
	src, okS := e.store.Node(edge.Source)
	dst, okD := e.store.Node(edge.Target)
	return okS && okD && src.Selected && dst.Selected
}

// route recomputes the anchors of an edge and draws it.
func (e *Engine) route(edge *graph.Edge) {
	src, okS := e.store.Node(edge.Source)
	dst, okD := e.store.Node(edge.Target)
	if !okS || !okD {
		return
	}
	edge.Anchors = geometry.ConnectionAnchors(src.Bounds(), dst.Bounds())
	left, right := geometry.ArrowHeads(edge.Anchors, e.arrowLength)
	measured := e.measure.TextWidth(edge.Label) + render.LabelTextPadding
	e.surface.DrawEdge(render.EdgeView{
		ID:         edge.ID,
		Source:     edge.Source,
		Target:     edge.Target,
		Line:       edge.Anchors,
		ArrowLeft:  left,
		ArrowRight: right,
		Label:      edge.Label,
		LabelBox:   geometry.LabelPlacement(edge.Anchors, measured, e.label),
		Valid:      edge.Valid(),
		Highlight:  e.highlighted(edge),
	})
}

func (e *Engine) routeEdge(id int) {
	if edge, ok := e.store.Edge(id); ok {
		e.route(edge)
	}
}

// reroute redraws every edge touching a node.
func (e *Engine) reroute(node int) {
	for _, id := range e.store.EdgesOf(node) {
		e.routeEdge(id)
	}
}

func (e *Engine) redrawAll() {
	for _, n := range e.store.Nodes() {
		e.surface.DrawNode(e.nodeView(n))
	}
	for _, edge := range e.store.Edges() {
		e.route(edge)
	}
}

// =============================================================================
// Selection
// =============================================================================

func (e *Engine) setPrimary(id int) {
	if e.primary == id {
		return
	}
	e.primary = id
	e.redrawAll()
}

// enterMultiselect adds nodes to the multi-select, absorbing the primary
// selection, and switches to multiselect mode.
func (e *Engine) enterMultiselect(ids ...int) {
	if e.primary != noNode {
		ids = append([]int{e.primary}, ids...)
		e.primary = noNode
	}
	for _, id := range ids {
		e.store.SetSelected(id, true)
	}
	if len(e.store.Selected()) == 0 {
		e.redrawAll()
		return
	}
	if e.mode != ModeMultiselect {
		e.mode = ModeMultiselect
		e.emit(bridge.MultiselectActive{Active: true})
	}
	e.redrawAll()
}

func (e *Engine) toggleMember(id int) {
	n, ok := e.store.Node(id)
	if !ok {
		return
	}
	e.store.SetSelected(id, !n.Selected)
	if len(e.store.Selected()) == 0 {
		e.cancelMultiselect()
		return
	}
	e.redrawAll()
}

func (e *Engine) cancelMultiselect() {
	if e.mode != ModeMultiselect {
		return
	}
	e.store.ClearSelection()
	e.mode = ModeDevelop
	e.emit(bridge.MultiselectActive{Active: false})
	e.redrawAll()
}

// =============================================================================
// Layout
// =============================================================================

func (e *Engine) applyLayout(a transform.Action) {
	if !e.permits(ActLayout) {
		return
	}
	moves := transform.Apply(e.store, a)
	e.commitMoves(moves)
	e.gestureEvent(a.String())
}

// commitMoves redraws moved nodes and reports the batch under one undo checkpoint.
func (e *Engine) commitMoves(moves []transform.Move) {
	if len(moves) == 0 {
		return
	}
	e.emit(bridge.BeginUndoCheckpoint{})
	for _, m := range moves {
		e.drawNode(m.ID)
		e.reroute(m.ID)
	}
	for _, m := range moves {
		e.emitMove(m.ID, m.To, true)
	}
}
