package bridge

// Inbound is a message pushed from the server to the canvas.
type Inbound interface {
	// Type returns the wire type tag.
	Type() string
	inbound()
}

// Outbound is a notification from the canvas to the server.
type Outbound interface {
	// Type returns the wire type tag.
	Type() string
	outbound()
}

// =============================================================================
// Inbound Messages
// =============================================================================

// Initialize sets up an empty canvas.
type Initialize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Locale string  `json:"locale,omitempty"`
	Theme  string  `json:"theme,omitempty"`
	// Debug enables debug requests on nodes.
	Debug bool `json:"debug,omitempty"`
}

// AddNode creates a node. IsNew marks nodes the user just dropped onto the
// canvas; the canvas echoes their position back with a NodeMoved. Negative
// coordinates place the node at the last pointer position.
type AddNode struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	IsNew       bool    `json:"is_new,omitempty"`
}

// AddEdge creates a connection between two existing nodes.
type AddEdge struct {
	ID       int    `json:"id"`
	SourceID int    `json:"source_id"`
	TargetID int    `json:"target_id"`
	DataUnit string `json:"data_unit,omitempty"`
}

// UpdateNode replaces a node's label.
type UpdateNode struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateEdgeLabel replaces a connection's data-unit name.
type UpdateEdgeLabel struct {
	ID       int    `json:"id"`
	DataUnit string `json:"data_unit"`
}

// ResizeSurface sets the canvas size.
type ResizeSurface struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// GrowSurface extends the canvas by Pixels towards Direction (left, right,
// top or bottom).
type GrowSurface struct {
	Direction string  `json:"direction"`
	Pixels    float64 `json:"pixels"`
}

// SetZoom sets the uniform zoom factor.
type SetZoom struct {
	Factor float64 `json:"factor"`
}

// ClearAll removes every node and edge.
type ClearAll struct{}

// SetMode forces the canvas into develop or read-only mode.
type SetMode struct {
	Mode string `json:"mode"`
}

// SetNodeValidity records whether a node's configuration is valid.
type SetNodeValidity struct {
	ID    int  `json:"id"`
	Valid bool `json:"valid"`
}

// ApplyLayoutAction runs a layout action on the multi-selection.
type ApplyLayoutAction struct {
	Action string `json:"action"`
}

func (Initialize) Type() string        { return "initialize" }
func (AddNode) Type() string           { return "addNode" }
func (AddEdge) Type() string           { return "addEdge" }
func (UpdateNode) Type() string        { return "updateNode" }
func (UpdateEdgeLabel) Type() string   { return "updateEdgeLabel" }
func (ResizeSurface) Type() string     { return "resizeSurface" }
func (GrowSurface) Type() string       { return "growSurface" }
func (SetZoom) Type() string           { return "setZoom" }
func (ClearAll) Type() string          { return "clearAll" }
func (SetMode) Type() string           { return "setMode" }
func (SetNodeValidity) Type() string   { return "setNodeValidity" }
func (ApplyLayoutAction) Type() string { return "applyLayoutAction" }

func (Initialize) inbound()        {}
func (AddNode) inbound()           {}
func (AddEdge) inbound()           {}
func (UpdateNode) inbound()        {}
func (UpdateEdgeLabel) inbound()   {}
func (ResizeSurface) inbound()     {}
func (GrowSurface) inbound()       {}
func (SetZoom) inbound()           {}
func (ClearAll) inbound()          {}
func (SetMode) inbound()           {}
func (SetNodeValidity) inbound()   {}
func (ApplyLayoutAction) inbound() {}

// =============================================================================
// Outbound Messages
// =============================================================================

// NodeMoved reports a node's new position, rounded to whole units. Batch is
// set when the move is one of several made under a single undo checkpoint.
type NodeMoved struct {
	ID    int  `json:"id"`
	X     int  `json:"x"`
	Y     int  `json:"y"`
	Batch bool `json:"batch"`
}

// NodeRemoved reports a node deleted by the user.
type NodeRemoved struct {
	ID int `json:"id"`
}

// EdgeAdded asks the server to connect two nodes. The server assigns the id
// and answers with an AddEdge push.
type EdgeAdded struct {
	SourceID int `json:"source_id"`
	TargetID int `json:"target_id"`
}

// EdgeRemoved reports a connection deleted by the user or by a node removal.
type EdgeRemoved struct {
	ID int `json:"id"`
}

// NodeDetailRequested asks the server to open a node's detail view.
type NodeDetailRequested struct {
	ID int `json:"id"`
}

// NodeDebugRequested asks the server to debug a node.
type NodeDebugRequested struct {
	ID int `json:"id"`
}

// NodeCopyRequested asks the server to duplicate a node at a position.
type NodeCopyRequested struct {
	ID int `json:"id"`
	X  int `json:"x"`
	Y  int `json:"y"`
}

// EdgeLabelEditRequested asks the server to edit a connection's data unit.
type EdgeLabelEditRequested struct {
	ID int `json:"id"`
}

// MultiselectActive reports entering or leaving multi-select.
type MultiselectActive struct {
	Active bool `json:"active"`
}

// BeginUndoCheckpoint precedes a batch of moves that undo as one step.
type BeginUndoCheckpoint struct{}

func (NodeMoved) Type() string              { return "nodeMoved" }
func (NodeRemoved) Type() string            { return "nodeRemoved" }
func (EdgeAdded) Type() string              { return "edgeAdded" }
func (EdgeRemoved) Type() string            { return "edgeRemoved" }
func (NodeDetailRequested) Type() string    { return "nodeDetailRequested" }
func (NodeDebugRequested) Type() string     { return "nodeDebugRequested" }
func (NodeCopyRequested) Type() string      { return "nodeCopyRequested" }
func (EdgeLabelEditRequested) Type() string { return "edgeLabelEditRequested" }
func (MultiselectActive) Type() string      { return "multiselectActive" }
func (BeginUndoCheckpoint) Type() string    { return "beginUndoCheckpoint" }

func (NodeMoved) outbound()              {}
func (NodeRemoved) outbound()            {}
func (EdgeAdded) outbound()              {}
func (EdgeRemoved) outbound()            {}
func (NodeDetailRequested) outbound()    {}
func (NodeDebugRequested) outbound()     {}
func (NodeCopyRequested) outbound()      {}
func (EdgeLabelEditRequested) outbound() {}
func (MultiselectActive) outbound()      {}
func (BeginUndoCheckpoint) outbound()    {}
