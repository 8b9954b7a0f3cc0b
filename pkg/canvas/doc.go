// Package canvas is the interaction engine of the pipeline editor.
//
// # Overview
//
// An [Engine] owns a [graph.Store] and turns pointer events and commands
// into store mutations, drawing instructions for a [render.Surface] and
// notifications for a [bridge.Sender]. It also applies server pushes
// ([bridge.Inbound]) directly to the store.
//
// # Modes
//
// The engine is always in exactly one [Mode]:
//
//   - [ModeDevelop]: the default editing mode
//   - [ModeReadOnly]: structural edits are refused; hover feedback, detail
//     requests and single selection still work
//   - [ModeNewConnection]: a connection is being drawn from a source node
//   - [ModeMultiselect]: several nodes are selected and move or align together
//
// On top of the mode, at most one [Gesture] is in progress: dragging one
// node, dragging the multi-selection, or drawing a marquee. Which actions a
// mode allows is a fixed table, see [Permits]. A refused action is silently
// ignored and reported to observability hooks.
//
// # Gestures
//
// Pointer-down on a node starts a drag; with Shift it starts a connection
// and with Ctrl it adds the node to the multi-select. A second press on the
// same node within the double-click interval requests the node's detail view
// instead. Pointer-down on the empty canvas clears the selection and starts a
// marquee. Releasing the pointer outside the canvas cancels a drag and puts
// the node back.
//
// # Time
//
// The engine never reads the wall clock on its own. Events carry their
// timestamp and delayed work (the double-click window, the hover tooltip) is
// a one-shot task on a [Scheduler] that fires when an event or a tick with a
// later timestamp arrives.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. [Engine.Run] multiplexes UI
// events, server pushes and ticks onto one goroutine; callers that drive the
// engine directly must do the same.
package canvas
