// Package nodelink exports the canvas as a Graphviz node-link diagram.
//
// # Usage
//
// Convert a scene to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(scene, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// [ToDOT] keeps the canvas geometry: every node carries a pinned pos
// attribute (in points, y flipped so the diagram is not upside down) and its
// box size in inches, so tools that honour positions (neato -n) reproduce
// the canvas. Nodes are filled with their category colour, invalid nodes get
// a red outline, and connections without a data unit are drawn red with a
// dashed line. The data-unit name becomes the edge label.
//
// [RenderSVG] lays the DOT out with the embedded Graphviz build from
// github.com/goccy/go-graphviz, which runs the dot engine and therefore
// produces a layered drawing rather than the canvas coordinates.
package nodelink
