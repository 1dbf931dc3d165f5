package main

type Mode int

const (
	ModeDraw Mode = iota
	ModeFileInput
	ModeGallery
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpSaveSVG
	FileOpOpen
)

// Literal tags of the interchange format.
const (
	tagSymmetry = "symm"
	tagStyle    = "style"
	tagColor    = "color"
	tagLine     = "line"
	tagPolygon  = "polygon"
	tagBezier   = "bezier"
	tagCircle   = "circle"
)

const documentVersion = 1

// bootstrapOps is the number of context operations every history starts
// with: stroke colour, fill colour, style and symmetry.
const bootstrapOps = 4

// Tool names accepted by SelectTool.
const (
	ToolLine    = "line"
	ToolCircle  = "circle"
	ToolPolygon = "polygon"
	ToolBezier  = "bezier"
	ToolPencil  = "pencil"
	ToolGrid    = "grid"
)

// ToolState is the interaction state of point-accumulating tools.
type ToolState int

const (
	StateInit ToolState = iota
	StateOn
	StateOff
	StateMove
)

func (s ToolState) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateOn:
		return "ON"
	case StateOff:
		return "OFF"
	case StateMove:
		return "MOVE"
	default:
		return "?"
	}
}

const (
	defaultHitRadius  = 10.0
	defaultFrameSkip  = 3
	defaultCanvasW    = 640
	defaultCanvasH    = 400
	defaultGroup      = "p6m"
	defaultSpacing    = 120.0
	minLatticeSpacing = 16.0
	keyboardStep      = 4.0
	keyboardStepFast  = 16.0
)
