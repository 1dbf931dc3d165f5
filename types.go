package main

type model struct {
	width          int
	height         int
	cursorX        int
	cursorY        int
	pointer        Point
	showCursor     bool
	keyPointerDown bool
	mouseDown      bool
	mouseInside    bool
	editor         *Editor
	main           *rasterSurface
	overlay        *rasterSurface
	config         *Config
	gallery        *Gallery
	log            *Logger
	mode           Mode
	help           bool
	filename       string
	fileOp         FileOperation
	entries        []GalleryEntry
	selectedEntry  int
	strokeIndex    int
	fillIndex      int
	errorMessage   string
	successMessage string
}

// palette is cycled by the colour keys.
var palette = []Color{
	{R: 20, G: 20, B: 40, A: 1},
	{R: 200, G: 40, B: 60, A: 1},
	{R: 230, G: 150, B: 30, A: 1},
	{R: 40, G: 160, B: 90, A: 1},
	{R: 70, G: 130, B: 200, A: 1},
	{R: 130, G: 70, B: 180, A: 1},
	{R: 255, G: 255, B: 255, A: 1},
}

var toolKeys = map[string]string{
	"1": ToolLine,
	"2": ToolCircle,
	"3": ToolPolygon,
	"4": ToolBezier,
	"5": ToolPencil,
	"6": ToolGrid,
}
