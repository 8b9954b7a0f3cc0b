// Package graph holds the in-memory pipeline diagram edited on the canvas.
//
// # Overview
//
// A pipeline is a directed graph of processing units (nodes) connected by
// data-flow connections (edges). The [Store] owns every node and edge and
// keeps two adjacency indices per node: the ordered list of outgoing edge
// ids and the ordered list of incoming edge ids. Both indices are exactly the
// inverse of the edge table at all times.
//
// The store has no knowledge of pointers, modes or drawing. It is mutated by
// the canvas engine in response to gestures and to pushes from the server.
//
// # Basic Usage
//
//	s := graph.New(nil)
//	s.AddNode(1, graph.Label{Name: "Extract"}, graph.Extractor, geometry.Point{X: 10, Y: 10})
//	s.AddNode(2, graph.Label{Name: "Load"}, graph.Loader, geometry.Point{X: 200, Y: 10})
//	s.AddEdge(7, 1, 2, "rows")
//
//	removed, _ := s.RemoveNode(1) // [7]: the cascaded edge ids
//
// # Absent Identifiers
//
// Every mutation on an id that is not (or no longer) in the store is a no-op
// that reports false. Gestures and pushes can race with removals, so the
// store never treats a stale id as an error. [Store.AddEdge] is the one
// exception: connecting to an absent node fails with [ErrUnknownEndpoint].
//
// # Node Size
//
// Nodes have a fixed width and a height derived from their wrapped label
// text. The store asks a [Sizer] for the size whenever a label changes. The
// default [FixedSizer] estimates text width from a character width; the
// render package provides a font-backed implementation.
//
// # Concurrency
//
// Store is not safe for concurrent use. The canvas engine drives it from a
// single goroutine.
package graph
