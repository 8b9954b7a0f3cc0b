package canvas

import (
	"time"

	"github.com/matzehuels/pipecanvas/pkg/transform"
)

// Modifiers is the set of keyboard modifiers held during a pointer event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }

// Event is an input to [Engine.Handle]. Coordinates are in surface pixels;
// the engine divides them by the zoom factor. A zero At is replaced by the
// engine's clock.
type Event interface {
	event()
}

// PointerDown is a primary button press.
type PointerDown struct {
	X, Y float64
	Mods Modifiers
	At   time.Time
}

// PointerMove is pointer motion with or without a button held.
type PointerMove struct {
	X, Y float64
	At   time.Time
}

// PointerUp is a primary button release.
type PointerUp struct {
	X, Y float64
	At   time.Time
}

// Cancel aborts the gesture in progress and leaves multi-select (Escape).
type Cancel struct{}

// The following events are the node and edge action-bar commands.

// RemoveNode deletes a node and its connections.
type RemoveNode struct{ ID int }

// RemoveEdge deletes a connection.
type RemoveEdge struct{ ID int }

// RequestDetail opens a node's detail view.
type RequestDetail struct{ ID int }

// RequestDebug starts debugging a node. It needs the debug capability.
type RequestDebug struct{ ID int }

// RequestCopy duplicates a node at the given surface position.
type RequestCopy struct {
	ID   int
	X, Y float64
}

// EditEdgeLabel opens the data-unit editor of a connection.
type EditEdgeLabel struct{ ID int }

// StartConnection begins drawing a connection from a node. The pointer
// position seeds the preview line.
type StartConnection struct {
	ID   int
	X, Y float64
}

// ToggleMultiselect adds a node to, or removes it from, the multi-select.
type ToggleMultiselect struct{ ID int }

// RunLayout applies a layout action to the multi-select.
type RunLayout struct{ Action transform.Action }

func (PointerDown) event()       {}
func (PointerMove) event()       {}
func (PointerUp) event()         {}
func (Cancel) event()            {}
func (RemoveNode) event()        {}
func (RemoveEdge) event()        {}
func (RequestDetail) event()     {}
func (RequestDebug) event()      {}
func (RequestCopy) event()       {}
func (EditEdgeLabel) event()     {}
func (StartConnection) event()   {}
func (ToggleMultiselect) event() {}
func (RunLayout) event()         {}
