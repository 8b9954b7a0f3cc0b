// Package geometry computes the drawing geometry of pipeline connections.
//
// Every function in this package is pure: given the same rectangles it
// returns the same segments, and it never keeps state between calls. The
// canvas engine calls these functions whenever an endpoint of an edge moves
// and hands the result to the render surface.
//
// # Connection anchors
//
// [ConnectionAnchors] picks the start and end points of a connection between
// two node rectangles. Each axis is solved independently by comparing the
// projection of the source rectangle onto that axis with the projection of
// the target rectangle:
//
//   - source entirely before target: leave the source at its far side and
//     enter the target at its near side
//   - source entirely after target: the mirror image
//   - target collapsed to a point: both ends sit on the point
//   - overlapping intervals: both ends share the midpoint of the overlap
//
// The result for overlapping intervals is a straight line along the other
// axis, which is what makes vertically stacked nodes connect with a vertical
// line and side-by-side nodes with a horizontal one.
//
// # Arrowheads and labels
//
// [ArrowHeads] returns the two wedge lines of an arrowhead at the end of a
// segment and [LabelPlacement] the box of the data-unit label centred on the
// segment. A zero-length segment yields a wedge collapsed onto its end point
// rather than NaN coordinates.
package geometry
