// Package scenario reads HCL fixtures describing a pipeline diagram and a
// script of user gestures, and plays them against a canvas engine.
//
// A scenario file looks like:
//
//	canvas {
//	  width  = 1200
//	  height = 800
//	}
//
//	node "1" {
//	  name     = "orders"
//	  category = "extractor"
//	  x        = 100
//	  y        = 100
//	}
//
//	node "2" {
//	  name = "dedupe"
//	  x    = 400
//	  y    = 100
//	}
//
//	edge "10" {
//	  source    = 1
//	  target    = 2
//	  data_unit = "rows"
//	}
//
//	step "drag" {
//	  x    = 110
//	  y    = 110
//	  to_x = 160
//	  to_y = 300
//	}
//
// Node and edge blocks become server pushes applied before the script. Each
// step expands to one or more engine events or pushes.
package scenario

import (
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/matzehuels/pipecanvas/pkg/bridge"
	"github.com/matzehuels/pipecanvas/pkg/canvas"
	"github.com/matzehuels/pipecanvas/pkg/errors"
)

// StepInterval is the virtual time between consecutive script entries.
const StepInterval = 50 * time.Millisecond

// Epoch is the virtual time of the first script entry.
var Epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

type file struct {
	Canvas *canvasBlock `hcl:"canvas,block"`
	Nodes  []nodeBlock  `hcl:"node,block"`
	Edges  []edgeBlock  `hcl:"edge,block"`
	Steps  []stepBlock  `hcl:"step,block"`
}

type canvasBlock struct {
	Width  float64 `hcl:"width,optional"`
	Height float64 `hcl:"height,optional"`
	Locale string  `hcl:"locale,optional"`
	Theme  string  `hcl:"theme,optional"`
	Debug  bool    `hcl:"debug,optional"`
	Mode   string  `hcl:"mode,optional"`
	Zoom   float64 `hcl:"zoom,optional"`
}

type nodeBlock struct {
	ID          string  `hcl:"id,label"`
	Name        string  `hcl:"name"`
	Description string  `hcl:"description,optional"`
	Category    string  `hcl:"category,optional"`
	X           float64 `hcl:"x"`
	Y           float64 `hcl:"y"`
	Valid       *bool   `hcl:"valid,optional"`
}

type edgeBlock struct {
	ID       string `hcl:"id,label"`
	Source   int    `hcl:"source"`
	Target   int    `hcl:"target"`
	DataUnit string `hcl:"data_unit,optional"`
}

type stepBlock struct {
	Kind   string  `hcl:"kind,label"`
	X      float64 `hcl:"x,optional"`
	Y      float64 `hcl:"y,optional"`
	ToX    float64 `hcl:"to_x,optional"`
	ToY    float64 `hcl:"to_y,optional"`
	Shift  bool    `hcl:"shift,optional"`
	Ctrl   bool    `hcl:"ctrl,optional"`
	Node   int     `hcl:"node,optional"`
	Edge   int     `hcl:"edge,optional"`
	Action string  `hcl:"action,optional"`
	Mode   string  `hcl:"mode,optional"`
	Factor float64 `hcl:"factor,optional"`
	Wait   string  `hcl:"wait,optional"`
}

// Entry is one item of a script: either a UI event or a server push.
type Entry struct {
	Event canvas.Event
	Push  bridge.Inbound
}

// Scenario is a decoded fixture.
type Scenario struct {
	// Setup holds the pushes that build the initial diagram.
	Setup []bridge.Inbound
	// Script holds the gestures in order. Events carry virtual timestamps
	// starting at Epoch.
	Script []Entry
	// End is the virtual time after the last script entry.
	End time.Time
}

// Load reads a scenario file. The extension must be .hcl or .json.
func Load(path string) (*Scenario, error) {
	var f file
	if err := hclsimple.DecodeFile(path, nil, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "decode %s", path)
	}
	return build(f)
}

// Parse decodes scenario source. filename is used in diagnostics and selects
// the syntax by extension.
func Parse(filename string, src []byte) (*Scenario, error) {
	var f file
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "decode %s", filename)
	}
	return build(f)
}

func build(f file) (*Scenario, error) {
	s := &Scenario{}
	if c := f.Canvas; c != nil {
		s.Setup = append(s.Setup, bridge.Initialize{
			Width: c.Width, Height: c.Height, Locale: c.Locale, Theme: c.Theme, Debug: c.Debug,
		})
		if c.Zoom != 0 {
			s.Setup = append(s.Setup, bridge.SetZoom{Factor: c.Zoom})
		}
	}
	for _, n := range f.Nodes {
		id, err := parseID("node", n.ID)
		if err != nil {
			return nil, err
		}
		s.Setup = append(s.Setup, bridge.AddNode{
			ID: id, Name: n.Name, Description: n.Description, Category: n.Category, X: n.X, Y: n.Y,
		})
		if n.Valid != nil && !*n.Valid {
			s.Setup = append(s.Setup, bridge.SetNodeValidity{ID: id, Valid: false})
		}
	}
	for _, e := range f.Edges {
		id, err := parseID("edge", e.ID)
		if err != nil {
			return nil, err
		}
		s.Setup = append(s.Setup, bridge.AddEdge{ID: id, SourceID: e.Source, TargetID: e.Target, DataUnit: e.DataUnit})
	}
	// The mode goes last so that setup is never blocked by read-only.
	if c := f.Canvas; c != nil && c.Mode != "" {
		s.Setup = append(s.Setup, bridge.SetMode{Mode: c.Mode})
	}

	at := Epoch
	for i, st := range f.Steps {
		if st.Wait != "" {
			d, err := time.ParseDuration(st.Wait)
			if err != nil || d < 0 {
				return nil, errors.New(errors.ErrCodeInvalidScenario, "step %d: invalid wait %q", i+1, st.Wait)
			}
			at = at.Add(d)
		}
		entries, err := expand(st, &at)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "step %d (%s)", i+1, st.Kind)
		}
		s.Script = append(s.Script, entries...)
	}
	s.End = at
	return s, nil
}

func parseID(kind, label string) (int, error) {
	id, err := strconv.Atoi(label)
	if err != nil || id < 0 {
		return 0, errors.New(errors.ErrCodeInvalidScenario, "%s id %q is not a non-negative integer", kind, label)
	}
	return id, nil
}

func (st stepBlock) mods() canvas.Modifiers {
	var m canvas.Modifiers
	if st.Shift {
		m |= canvas.ModShift
	}
	if st.Ctrl {
		m |= canvas.ModCtrl
	}
	return m
}

// expand turns one step into entries, advancing the virtual clock by
// StepInterval per pointer event.
func expand(st stepBlock, at *time.Time) ([]Entry, error) {
	tick := func() time.Time {
		t := *at
		*at = at.Add(StepInterval)
		return t
	}
	ev := func(e canvas.Event) Entry { return Entry{Event: e} }
	push := func(m bridge.Inbound) Entry { return Entry{Push: m} }

	switch st.Kind {
	case "down":
		return []Entry{ev(canvas.PointerDown{X: st.X, Y: st.Y, Mods: st.mods(), At: tick()})}, nil
	case "move":
		return []Entry{ev(canvas.PointerMove{X: st.X, Y: st.Y, At: tick()})}, nil
	case "up":
		return []Entry{ev(canvas.PointerUp{X: st.X, Y: st.Y, At: tick()})}, nil
	case "click":
		return []Entry{
			ev(canvas.PointerDown{X: st.X, Y: st.Y, Mods: st.mods(), At: tick()}),
			ev(canvas.PointerUp{X: st.X, Y: st.Y, At: tick()}),
		}, nil
	case "drag", "connect", "marquee":
		mods := st.mods()
		if st.Kind == "connect" {
			mods |= canvas.ModShift
		}
		return []Entry{
			ev(canvas.PointerDown{X: st.X, Y: st.Y, Mods: mods, At: tick()}),
			ev(canvas.PointerMove{X: st.ToX, Y: st.ToY, At: tick()}),
			ev(canvas.PointerUp{X: st.ToX, Y: st.ToY, At: tick()}),
		}, nil
	case "cancel":
		return []Entry{ev(canvas.Cancel{})}, nil
	case "remove-node":
		return []Entry{ev(canvas.RemoveNode{ID: st.Node})}, nil
	case "remove-edge":
		return []Entry{ev(canvas.RemoveEdge{ID: st.Edge})}, nil
	case "detail":
		return []Entry{ev(canvas.RequestDetail{ID: st.Node})}, nil
	case "debug":
		return []Entry{ev(canvas.RequestDebug{ID: st.Node})}, nil
	case "copy":
		return []Entry{ev(canvas.RequestCopy{ID: st.Node, X: st.X, Y: st.Y})}, nil
	case "edit-label":
		return []Entry{ev(canvas.EditEdgeLabel{ID: st.Edge})}, nil
	case "toggle":
		return []Entry{ev(canvas.ToggleMultiselect{ID: st.Node})}, nil
	case "layout":
		return []Entry{push(bridge.ApplyLayoutAction{Action: st.Action})}, nil
	case "mode":
		return []Entry{push(bridge.SetMode{Mode: st.Mode})}, nil
	case "zoom":
		return []Entry{push(bridge.SetZoom{Factor: st.Factor})}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidScenario, "unknown step kind %q", st.Kind)
}

// Play applies the setup and runs the script against e. Setup pushes must
// all succeed. Script pushes that only reference missing entities are
// tolerated the same way a live canvas tolerates them.
func Play(e *canvas.Engine, s *Scenario) error {
	for _, msg := range s.Setup {
		if err := e.Apply(msg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScenario, err, "setup %s", msg.Type())
		}
	}
	for _, entry := range s.Script {
		switch {
		case entry.Event != nil:
			e.Handle(entry.Event)
		case entry.Push != nil:
			if err := e.Apply(entry.Push); err != nil && !errors.Benign(err) {
				return errors.Wrap(errors.ErrCodeInvalidScenario, err, "push %s", entry.Push.Type())
			}
		}
	}
	return nil
}
