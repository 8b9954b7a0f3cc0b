// Package render defines the drawing contract between the canvas engine and
// whatever actually paints pixels.
//
// # Overview
//
// The engine never draws. After every state change it describes what should
// be visible through the [Surface] interface: upserted node and edge views,
// removed ids, and transient overlays (the preview line of a connection in
// progress, the ghost box of a group drag, the marquee rectangle, a tooltip).
// A surface is free to batch calls until [Surface.Flush].
//
// # Implementations
//
//   - [Scene]: an in-memory retained model of the surface. The terminal
//     viewer paints from it, the exporters read it, and tests assert on it.
//   - [Nop]: discards everything.
//
// # Text Metrics
//
// [TextMetrics] measures text with the Go Regular font from
// golang.org/x/image. It sizes node boxes (fixed width, height from the
// wrapped label) and measures data-unit labels for placement on edges.
//
// # Export
//
// The [nodelink] subpackage turns a [Scene] into Graphviz DOT and SVG.
package render
