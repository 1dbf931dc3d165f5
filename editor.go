package main

import (
	"errors"
	"fmt"
	"math"
)

var ErrUnknownTool = errors.New("unknown tool")

type PointerEvent struct {
	Pos   Point
	Shift bool
}

// Tool is an interactive tool. Beyond Name, a tool implements whichever of
// the handler interfaces below it needs; the editor ignores input for
// handlers a tool lacks.
type Tool interface {
	Name() string
}

type (
	toolEnterer   interface{ Enter() }
	toolExiter    interface{ Exit() }
	toolCanceler  interface{ Cancel() }
	pointerDowner interface{ PointerDown(PointerEvent) }
	pointerMover  interface{ PointerMove(PointerEvent) }
	pointerUpper  interface{ PointerUp(PointerEvent) }
	pointerLeaver interface{ PointerLeave(PointerEvent) }
	keyHandler    interface{ KeyDown(key string) }
	stateReporter interface{ State() ToolState }
	redrawer      interface{ Redraw() }
)

// Settings are the tuning constants of the interactive tools.
type Settings struct {
	HitRadius float64
	FrameSkip int
	Bootstrap ContextState
}

func DefaultSettings() Settings {
	return Settings{
		HitRadius: defaultHitRadius,
		FrameSkip: defaultFrameSkip,
		Bootstrap: ContextState{
			Stroke:  Color{R: 20, G: 20, B: 40, A: 1},
			Fill:    Color{R: 70, G: 130, B: 200, A: 0.5},
			Style:   LineStyle{Cap: CapRound, Join: JoinRound, MiterLimit: 10, Width: 2},
			Group:   defaultGroup,
			Lattice: Lattice{X: defaultCanvasW / 2, Y: defaultCanvasH / 2, Spacing: defaultSpacing},
		},
	}
}

// BootstrapOps returns the four context operations every drawing starts
// from.
func (s Settings) BootstrapOps() []Operation {
	b := s.Bootstrap
	return []Operation{
		ColorOp{Target: TargetStroke, Color: b.Stroke},
		ColorOp{Target: TargetFill, Color: b.Fill},
		StyleOp{Patch: FullStyle(b.Style)},
		SymmetryOp{Group: b.Group, Lattice: b.Lattice},
	}
}

// Editor routes input to the active tool and owns the drawing: context,
// command stack, the committed surface and the live preview overlay.
type Editor struct {
	ctx      *DrawingContext
	stack    *CommandStack
	main     Surface
	overlay  Surface
	tools    map[string]Tool
	order    []string
	current  Tool
	settings Settings
	log      *Logger
}

type EditorOptions struct {
	Source   TransformSource
	Width    int
	Height   int
	Main     Surface
	Overlay  Surface
	Settings Settings
	Log      *Logger
}

func NewEditor(opts EditorOptions) *Editor {
	if opts.Source == nil {
		opts.Source = NewSymmetryProvider()
	}
	if opts.Log == nil {
		opts.Log = DiscardLogger()
	}
	if opts.Settings.HitRadius <= 0 {
		opts.Settings.HitRadius = defaultHitRadius
	}
	if opts.Settings.FrameSkip <= 0 {
		opts.Settings.FrameSkip = 1
	}
	ed := &Editor{
		main:     opts.Main,
		overlay:  opts.Overlay,
		tools:    make(map[string]Tool),
		settings: opts.Settings,
		log:      opts.Log.WithPrefix("editor"),
	}
	ed.ctx = NewDrawingContext(opts.Source, opts.Width, opts.Height, opts.Log)
	ed.stack = NewCommandStack(ed.ctx, ed.main, opts.Settings.BootstrapOps, opts.Log)

	ed.register(newLineTool(ed))
	ed.register(newCircleTool(ed))
	ed.register(newPolygonTool(ed))
	ed.register(newBezierTool(ed))
	ed.register(newPencilTool(ed))
	ed.register(newGridTool(ed))
	ed.current = ed.tools[ToolBezier]
	ed.enter(ed.current)
	return ed
}

func (ed *Editor) register(t Tool) {
	ed.tools[t.Name()] = t
	ed.order = append(ed.order, t.Name())
}

func (ed *Editor) Context() *DrawingContext { return ed.ctx }

func (ed *Editor) Stack() *CommandStack { return ed.stack }

func (ed *Editor) Settings() Settings { return ed.settings }

func (ed *Editor) ToolNames() []string { return append([]string(nil), ed.order...) }

func (ed *Editor) CurrentTool() string { return ed.current.Name() }

// ToolState reports the active tool's interaction state, or StateInit for
// tools without one.
func (ed *Editor) ToolState() ToolState {
	if r, ok := ed.current.(stateReporter); ok {
		return r.State()
	}
	return StateInit
}

// SelectTool exits the active tool and enters the named one. An unknown
// name leaves the active tool in place.
func (ed *Editor) SelectTool(name string) error {
	next, ok := ed.tools[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	if x, ok := ed.current.(toolExiter); ok {
		x.Exit()
	}
	ed.overlay.Clear()
	ed.current = next
	ed.enter(next)
	ed.log.Info("tool %s", name)
	return nil
}

func (ed *Editor) enter(t Tool) {
	if e, ok := t.(toolEnterer); ok {
		e.Enter()
	}
}

func (ed *Editor) PointerDown(ev PointerEvent) {
	if h, ok := ed.current.(pointerDowner); ok {
		h.PointerDown(ev)
	}
}

func (ed *Editor) PointerMove(ev PointerEvent) {
	if h, ok := ed.current.(pointerMover); ok {
		h.PointerMove(ev)
	}
}

func (ed *Editor) PointerUp(ev PointerEvent) {
	if h, ok := ed.current.(pointerUpper); ok {
		h.PointerUp(ev)
	}
}

func (ed *Editor) PointerLeave(ev PointerEvent) {
	if h, ok := ed.current.(pointerLeaver); ok {
		h.PointerLeave(ev)
	}
}

func (ed *Editor) KeyDown(key string) {
	if h, ok := ed.current.(keyHandler); ok {
		h.KeyDown(key)
	}
}

// cancelTool discards the active tool's transient geometry. The overlay is
// cleared first so tools that repaint on Cancel, like the grid, keep their
// handles.
func (ed *Editor) cancelTool() {
	ed.overlay.Clear()
	if c, ok := ed.current.(toolCanceler); ok {
		c.Cancel()
	}
}

func (ed *Editor) Undo() bool {
	ed.cancelTool()
	return ed.stack.Undo()
}

func (ed *Editor) Redo() bool {
	ed.cancelTool()
	return ed.stack.Redo()
}

func (ed *Editor) Reset() {
	ed.cancelTool()
	ed.stack.Reset()
	ed.log.Info("reset")
}

// Load replaces the drawing with ops, e.g. from a saved document.
func (ed *Editor) Load(ops []Operation) {
	ed.cancelTool()
	ed.stack.Load(ops)
}

// refresh repaints the active tool's preview after the context changed
// underneath it.
func (ed *Editor) refresh() {
	if r, ok := ed.current.(redrawer); ok {
		r.Redraw()
	}
}

// commit pushes a finished shape or context change from a tool.
func (ed *Editor) commit(op Operation) {
	ed.overlay.Clear()
	ed.log.Info("commit %s", op.Kind())
	ed.stack.Push(op)
}

// preview clears the overlay and draws through every transform with the
// context's current colours and style.
func (ed *Editor) preview(draw func(t Affine, s Surface)) {
	ed.overlay.Clear()
	st := ed.ctx.Snapshot()
	ed.overlay.Save()
	ed.overlay.SetStrokeColor(st.Stroke)
	ed.overlay.SetFillColor(st.Fill)
	ed.overlay.SetLineStyle(st.Style)
	for _, t := range ed.ctx.Transforms() {
		draw(t, ed.overlay)
	}
	ed.overlay.Restore()
}

var (
	handleColor = Color{R: 220, G: 40, B: 90, A: 1}
	handleFill  = Color{R: 255, G: 255, B: 255, A: 1}
	guideColor  = Color{R: 150, G: 150, B: 150, A: 1}
)

// drawHandle marks an editable point on the overlay, untransformed.
func (ed *Editor) drawHandle(p Point) {
	s := ed.overlay
	s.Save()
	s.SetStrokeColor(handleColor)
	s.SetFillColor(handleFill)
	s.SetLineStyle(LineStyle{Cap: CapRound, Join: JoinRound, Width: 1})
	s.BeginPath()
	s.Arc(p.X, p.Y, ed.settings.HitRadius/2, 0, 2*math.Pi)
	s.Fill()
	s.Stroke()
	s.Restore()
}

// drawGuide draws a thin line between two handles on the overlay.
func (ed *Editor) drawGuide(a, b Point) {
	s := ed.overlay
	s.Save()
	s.SetStrokeColor(guideColor)
	s.SetLineStyle(LineStyle{Cap: CapButt, Join: JoinBevel, Width: 1})
	s.BeginPath()
	s.MoveTo(a.X, a.Y)
	s.LineTo(b.X, b.Y)
	s.Stroke()
	s.Restore()
}

func (ed *Editor) hit(a, b Point) bool {
	return a.Dist(b) < ed.settings.HitRadius
}

// frameSkip lets one in every n pointer moves redraw the preview.
type frameSkip struct {
	every int
	left  int
}

func (f *frameSkip) ready() bool {
	f.left--
	if f.left <= 0 {
		f.left = f.every
		return true
	}
	return false
}

func (f *frameSkip) reset() { f.left = 0 }
