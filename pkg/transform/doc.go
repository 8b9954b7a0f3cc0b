// Package transform implements layout operations on the multi-selected nodes.
//
// # Operations
//
//   - [Align] moves every selected node to the smallest or largest
//     coordinate found in the selection along one axis.
//   - [Distribute] spaces the selected nodes along one axis so that the
//     outermost nodes keep their place and the gaps between them are equal.
//   - [GroupDrag] moves the whole selection by the distance the pointer
//     travelled. While the pointer moves only a ghost bounding box is
//     translated; the nodes themselves move once, on [GroupDrag.Commit].
//
// Every operation mutates node positions in the store and returns the list
// of [Move]s it made, one per node, in selection order. The caller
// recomputes edge anchors and reports the moves to the server.
//
// Named actions such as "align-left" are parsed by [ParseAction] and run by
// [Apply].
package transform
