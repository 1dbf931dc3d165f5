package main

import "math"

type gridHandle int

const (
	gridNone gridHandle = iota
	gridOrigin
	gridScale
)

// gridTool edits the lattice with two handles: the origin, and a second
// handle whose offset from the origin sets spacing and rotation. Releasing
// a handle commits a symmetry operation for the current group.
type gridTool struct {
	ed      *Editor
	group   string
	lattice Lattice
	drag    gridHandle
	grab    Point
	origin  Lattice
	frame   frameSkip
}

func newGridTool(ed *Editor) *gridTool {
	t := &gridTool{ed: ed, frame: frameSkip{every: ed.settings.FrameSkip}}
	ed.ctx.Subscribe(func(st ContextState) {
		if t.drag == gridNone {
			t.group, t.lattice = st.Group, st.Lattice
			if ed.current == Tool(t) {
				t.Redraw()
			}
		}
	})
	return t
}

func (t *gridTool) Name() string { return ToolGrid }

// Enter reloads the lattice from the drawing context.
func (t *gridTool) Enter() {
	st := t.ed.ctx.Snapshot()
	t.group, t.lattice = st.Group, st.Lattice
	t.drag = gridNone
	t.Redraw()
}

func (t *gridTool) Exit() {
	t.drag = gridNone
	t.ed.overlay.Clear()
}

func (t *gridTool) Cancel() { t.Enter() }

func (t *gridTool) originHandle() Point { return Point{t.lattice.X, t.lattice.Y} }

func (t *gridTool) scaleHandle() Point {
	sin, cos := math.Sincos(t.lattice.Rotation)
	return t.originHandle().Add(Point{cos, sin}.Scale(t.lattice.Spacing))
}

func (t *gridTool) PointerDown(ev PointerEvent) {
	switch {
	case t.ed.hit(t.originHandle(), ev.Pos):
		t.drag = gridOrigin
	case t.ed.hit(t.scaleHandle(), ev.Pos):
		t.drag = gridScale
	default:
		return
	}
	t.grab, t.origin = ev.Pos, t.lattice
	t.frame.reset()
}

func (t *gridTool) PointerMove(ev PointerEvent) {
	switch t.drag {
	case gridOrigin:
		d := ev.Pos.Sub(t.grab)
		t.lattice.X, t.lattice.Y = t.origin.X+d.X, t.origin.Y+d.Y
	case gridScale:
		v := ev.Pos.Sub(t.originHandle())
		t.lattice.Spacing = math.Max(minLatticeSpacing, v.Len())
		if v.Len() > 0 {
			t.lattice.Rotation = math.Atan2(v.Y, v.X)
		}
	default:
		return
	}
	if t.frame.ready() {
		t.Redraw()
	}
}

func (t *gridTool) PointerUp(PointerEvent) {
	if t.drag == gridNone {
		return
	}
	t.drag = gridNone
	if t.lattice == t.origin {
		return
	}
	t.ed.commit(SymmetryOp{Group: t.group, Lattice: t.lattice})
}

func (t *gridTool) PointerLeave(ev PointerEvent) { t.PointerUp(ev) }

func (t *gridTool) KeyDown(key string) {
	if key == "esc" {
		t.Cancel()
	}
}

// Redraw shows the lattice points for the edited parameters and both
// handles.
func (t *gridTool) Redraw() {
	ov := t.ed.overlay
	ov.Clear()
	w, h := t.ed.ctx.Size()
	points, err := t.ed.ctx.source.Lattice(LatticeKey{
		Group:    t.group,
		Width:    w,
		Height:   h,
		Spacing:  t.lattice.Spacing,
		Rotation: t.lattice.Rotation,
		X:        t.lattice.X,
		Y:        t.lattice.Y,
	})
	if err != nil {
		t.ed.log.Debug("grid preview: %v", err)
	}
	ov.Save()
	ov.SetFillColor(guideColor)
	for _, p := range points {
		ov.BeginPath()
		ov.Arc(p.X, p.Y, 1.5, 0, 2*math.Pi)
		ov.Fill()
	}
	ov.Restore()
	t.ed.drawGuide(t.originHandle(), t.scaleHandle())
	t.ed.drawHandle(t.originHandle())
	t.ed.drawHandle(t.scaleHandle())
}
