package canvas

import (
	"strings"

	"github.com/matzehuels/pipecanvas/pkg/errors"
)

// Mode is the top-level interaction mode.
type Mode int

const (
	ModeDevelop Mode = iota
	ModeReadOnly
	ModeNewConnection
	ModeMultiselect
	modeCount
)

var modeNames = [modeCount]string{
	ModeDevelop:       "develop",
	ModeReadOnly:      "read-only",
	ModeNewConnection: "new-connection",
	ModeMultiselect:   "multiselect",
}

func (m Mode) String() string {
	if m >= 0 && m < modeCount {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode resolves a mode name pushed by the server. Only the develop and
// read-only modes can be set from outside; the other modes are entered
// through gestures.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "develop", "develop_mode", "develop-mode", "edit":
		return ModeDevelop, nil
	case "read-only", "readonly", "read_only", "standard_mode", "standard-mode", "view":
		return ModeReadOnly, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidMode, "unknown mode %q", name)
}

// Gesture is the pointer gesture in progress.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureDragging
	GestureGroupDragging
	GestureMarquee
)

func (g Gesture) String() string {
	switch g {
	case GestureDragging:
		return "dragging"
	case GestureGroupDragging:
		return "group-dragging"
	case GestureMarquee:
		return "marquee"
	default:
		return "none"
	}
}

// Action is a user intent checked against the mode.
type Action int

const (
	ActHover Action = iota
	ActSelect
	ActDetail
	ActDebug
	ActDrag
	ActConnect
	ActCommitConnection
	ActRemove
	ActMultiselect
	ActGroupDrag
	ActLayout
	ActCopy
	ActEditLabel
	actionCount
)

var actionNames = [actionCount]string{
	ActHover:            "hover",
	ActSelect:           "select",
	ActDetail:           "detail",
	ActDebug:            "debug",
	ActDrag:             "drag",
	ActConnect:          "connect",
	ActCommitConnection: "commit-connection",
	ActRemove:           "remove",
	ActMultiselect:      "multiselect",
	ActGroupDrag:        "group-drag",
	ActLayout:           "layout",
	ActCopy:             "copy",
	ActEditLabel:        "edit-label",
}

func (a Action) String() string {
	if a >= 0 && a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

type actionSet uint32

func allow(actions ...Action) actionSet {
	var s actionSet
	for _, a := range actions {
		s |= 1 << a
	}
	return s
}

var permissions = [modeCount]actionSet{
	ModeDevelop: allow(ActHover, ActSelect, ActDetail, ActDebug, ActDrag, ActConnect,
		ActRemove, ActMultiselect, ActCopy, ActEditLabel),
	ModeReadOnly:      allow(ActHover, ActSelect, ActDetail, ActDebug),
	ModeNewConnection: allow(ActHover, ActCommitConnection),
	ModeMultiselect: allow(ActHover, ActSelect, ActDetail, ActDebug, ActMultiselect,
		ActGroupDrag, ActLayout),
}

// Permits reports whether mode m allows action a.
func Permits(m Mode, a Action) bool {
	if m < 0 || m >= modeCount || a < 0 || a >= actionCount {
		return false
	}
	return permissions[m]&(1<<a) != 0
}

// Structural reports whether an action changes the diagram.
func (a Action) Structural() bool {
	switch a {
	case ActDrag, ActConnect, ActCommitConnection, ActRemove, ActGroupDrag, ActLayout, ActCopy, ActEditLabel:
		return true
	}
	return false
}
