// Package pkg provides the core libraries of the pipecanvas diagram editor.
//
// # Overview
//
// Pipecanvas is the interaction engine behind a data pipeline canvas: boxes
// for extractors, transformers, loaders and quality checks, joined by arrows
// labelled with the data unit that flows along them. The engine turns pointer
// gestures into diagram edits and server notifications, and applies the
// server's pushes to the diagram. The pkg directory is organized into:
//
//  1. [geometry] - Pure math (anchors, arrow heads, label placement)
//  2. [graph] - The diagram store and its JSON snapshot
//  3. [selection], [transform] - Marquee hit-testing, group drag and layout actions
//  4. [canvas] - The interaction state machine and its timer scheduler
//  5. [render] - Drawing surfaces, text metrics and Graphviz export
//  6. [bridge] - Message types, the JSON envelope and server transports
//  7. [scenario] - HCL fixtures that script a diagram and a series of gestures
//  8. [config], [errors], [observability], [buildinfo] - Ambient support
//
// # Architecture
//
// Every change flows through one engine:
//
//	pointer events / server pushes
//	         ↓
//	    [canvas.Engine] (mode + gesture state machine)
//	         ↓                     ↓
//	    [graph.Store]         [bridge.Sender] → socket.io / Redis / HTTP
//	         ↓
//	    [render.Surface] (scene, terminal, Graphviz)
//
// # Quick Start
//
//	scene := render.NewScene()
//	out := &bridge.Recorder{}
//	e := canvas.New(canvas.Options{Surface: scene, Sender: out})
//
//	e.Apply(bridge.AddNode{ID: 1, Name: "orders", Category: "extractor", X: 100, Y: 100})
//	e.Apply(bridge.AddNode{ID: 2, Name: "dedupe", Category: "transformer", X: 400, Y: 100})
//
//	// Shift-drag from node 1 to node 2 asks the server for a connection.
//	e.Handle(canvas.PointerDown{X: 110, Y: 110, Mods: canvas.ModShift})
//	e.Handle(canvas.PointerUp{X: 410, Y: 110})
//	fmt.Println(out.Types()) // [edgeAdded]
//
// # Concurrency
//
// An Engine is single-threaded; [canvas.Engine.Run] serialises UI events,
// server pushes and timer ticks onto it. Transports deliver pushes on
// channels and are safe for concurrent use.
package pkg
