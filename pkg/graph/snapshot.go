package graph

import (
	"encoding/json"
	"fmt"
	"io"
)

// =============================================================================
// Snapshot - Serialization Format
// =============================================================================

// Snapshot is the JSON form of a store, used by the CLI and the HTTP bridge
// to show the current diagram. Anchors are included so clients can draw
// without recomputing geometry.
type Snapshot struct {
	Nodes []SnapshotNode `json:"nodes"`
	Edges []SnapshotEdge `json:"edges"`
}

// SnapshotNode is the serialized form of a [Node].
type SnapshotNode struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Valid       bool    `json:"valid"`
	Selected    bool    `json:"selected,omitempty"`
}

// SnapshotEdge is the serialized form of an [Edge].
type SnapshotEdge struct {
	ID       int        `json:"id"`
	Source   int        `json:"source"`
	Target   int        `json:"target"`
	DataUnit string     `json:"data_unit,omitempty"`
	Anchors  [4]float64 `json:"anchors"`
}

// Snapshot captures the store in insertion order.
func (s *Store) Snapshot() Snapshot {
	out := Snapshot{
		Nodes: make([]SnapshotNode, 0, s.NodeCount()),
		Edges: make([]SnapshotEdge, 0, s.EdgeCount()),
	}
	for _, n := range s.Nodes() {
		out.Nodes = append(out.Nodes, SnapshotNode{
			ID:          n.ID,
			Name:        n.Label.Name,
			Description: n.Label.Description,
			Category:    string(n.Category),
			X:           n.Position.X,
			Y:           n.Position.Y,
			Width:       n.Size.W,
			Height:      n.Size.H,
			Valid:       n.Valid,
			Selected:    n.Selected,
		})
	}
	for _, e := range s.Edges() {
		a := e.Anchors
		out.Edges = append(out.Edges, SnapshotEdge{
			ID:       e.ID,
			Source:   e.Source,
			Target:   e.Target,
			DataUnit: e.Label,
			Anchors:  [4]float64{a.X1, a.Y1, a.X2, a.Y2},
		})
	}
	return out
}

// WriteSnapshot writes the store as indented JSON.
func WriteSnapshot(s *Store, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Snapshot()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
