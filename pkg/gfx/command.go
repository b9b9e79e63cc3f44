package gfx

import "fmt"

// CommandKind identifies what a command does when interpreted.
type CommandKind uint8

const (
	// KindDrawLines draws the selected indices against the line vertices.
	KindDrawLines CommandKind = iota
	// KindDrawTriangles draws the selected indices against the triangle vertices.
	KindDrawTriangles
	// KindNoOp does nothing.
	KindNoOp
	// KindProgram selects a program slot.
	KindProgram
	// KindIndices selects an index buffer slot.
	KindIndices
	// KindRotation sets the rotation angle in radians.
	KindRotation
	// KindSceneScale sets the camera-level scale.
	KindSceneScale
	// KindObjectScale sets the per-mesh scale.
	KindObjectScale
	// KindTranslation sets the translation.
	KindTranslation
	// KindOrigin sets the camera focus point.
	KindOrigin
)

var kindNames = [...]string{
	KindDrawLines:     "draw-lines",
	KindDrawTriangles: "draw-triangles",
	KindNoOp:          "no-op",
	KindProgram:       "program",
	KindIndices:       "indices",
	KindRotation:      "rotation",
	KindSceneScale:    "scene-scale",
	KindObjectScale:   "object-scale",
	KindTranslation:   "translation",
	KindOrigin:        "origin",
}

func (k CommandKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsDraw reports whether the kind issues a draw call.
func (k CommandKind) IsDraw() bool {
	return k == KindDrawLines || k == KindDrawTriangles
}

// Flags is the per-command bit word.
type Flags uint32

// FlagSkip excludes a command from interpretation until it is cleared.
const FlagSkip Flags = 1 << 0

// Command is one entry of the command list. Which payload field is
// meaningful depends on Kind: Slot for program and indices, Value for
// rotation and the two scales, X and Y for translation and origin.
type Command struct {
	Kind  CommandKind
	Flags Flags
	Slot  int
	Value float32
	X, Y  float32
}

// Skipped reports whether the command carries FlagSkip.
func (c Command) Skipped() bool {
	return c.Flags&FlagSkip != 0
}

func (c Command) String() string {
	var s string
	switch c.Kind {
	case KindProgram, KindIndices:
		s = fmt.Sprintf("%s %d", c.Kind, c.Slot)
	case KindRotation, KindSceneScale, KindObjectScale:
		s = fmt.Sprintf("%s %g", c.Kind, c.Value)
	case KindTranslation, KindOrigin:
		s = fmt.Sprintf("%s %g %g", c.Kind, c.X, c.Y)
	default:
		s = c.Kind.String()
	}
	if c.Skipped() {
		s += " [skip]"
	}
	return s
}

// Handle addresses one command of one command list. Handles are returned by
// the append operations and stay valid for the lifetime of the list.
// The zero Handle addresses nothing.
type Handle struct {
	list  uint64
	index int
}

// Index returns the command's position in the list.
func (h Handle) Index() int {
	return h.index
}

// Valid reports whether h was returned by a command list.
func (h Handle) Valid() bool {
	return h.list != 0
}

func (h Handle) String() string {
	if !h.Valid() {
		return "handle(invalid)"
	}
	return fmt.Sprintf("handle(%d)", h.index)
}
