// Package bridge defines the messages exchanged between the canvas and the
// server that owns the pipeline model.
//
// # Direction
//
// [Inbound] messages are pushed by the server: the initial load, nodes and
// edges created on the server, renamed labels, validity verdicts, mode
// changes. [Outbound] messages report user edits to the server: moved and
// removed nodes, requested connections, detail requests.
//
// Both sets are closed: every variant is a struct in this package and the
// interfaces carry an unexported marker method, so a type switch over them
// can be checked for completeness by linters.
//
// Outbound messages are fire-and-forget. The canvas updates its own state
// optimistically and never waits for a reply; the server corrects it with a
// later inbound push if it disagrees.
//
// # Wire Format
//
// [Encode] wraps a message in an [Envelope] with a fresh UUID and a type tag.
// [DecodeInbound] and [DecodeOutbound] reverse it. Transports in the
// subpackages (socketio, redisbus, httpbridge) move envelopes; [Recorder]
// keeps outbound messages in memory.
package bridge
