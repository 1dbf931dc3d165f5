package main

import "math"

// lineTool draws one straight segment per press-drag-release gesture.
type lineTool struct {
	ed     *Editor
	active bool
	start  Point
	end    Point
	frame  frameSkip
}

func newLineTool(ed *Editor) *lineTool {
	return &lineTool{ed: ed, frame: frameSkip{every: ed.settings.FrameSkip}}
}

func (t *lineTool) Name() string { return ToolLine }

func (t *lineTool) PointerDown(ev PointerEvent) {
	t.active, t.start, t.end = true, ev.Pos, ev.Pos
	t.frame.reset()
	t.Redraw()
}

func (t *lineTool) PointerMove(ev PointerEvent) {
	if !t.active {
		return
	}
	t.end = ev.Pos
	if t.frame.ready() {
		t.Redraw()
	}
}

func (t *lineTool) PointerUp(ev PointerEvent) {
	if !t.active {
		return
	}
	t.end = ev.Pos
	t.commit()
}

func (t *lineTool) PointerLeave(PointerEvent) { t.commit() }

func (t *lineTool) KeyDown(key string) {
	if key == "esc" {
		t.Cancel()
	}
}

func (t *lineTool) Exit() { t.commit() }

func (t *lineTool) Cancel() {
	t.active = false
	t.ed.overlay.Clear()
}

func (t *lineTool) commit() {
	if !t.active {
		return
	}
	t.active = false
	t.ed.commit(LineOp{Start: t.start, End: t.end})
}

func (t *lineTool) Redraw() {
	if !t.active {
		return
	}
	t.ed.preview(func(a Affine, s Surface) {
		p, q := a.Apply(t.start), a.Apply(t.end)
		s.BeginPath()
		s.MoveTo(p.X, p.Y)
		s.LineTo(q.X, q.Y)
		s.Stroke()
	})
}

// circleTool presses at the centre and drags out the radius.
type circleTool struct {
	ed     *Editor
	active bool
	center Point
	radius float64
	frame  frameSkip
}

func newCircleTool(ed *Editor) *circleTool {
	return &circleTool{ed: ed, frame: frameSkip{every: ed.settings.FrameSkip}}
}

func (t *circleTool) Name() string { return ToolCircle }

func (t *circleTool) PointerDown(ev PointerEvent) {
	t.active, t.center, t.radius = true, ev.Pos, 0
	t.frame.reset()
	t.Redraw()
}

func (t *circleTool) PointerMove(ev PointerEvent) {
	if !t.active {
		return
	}
	t.radius = t.center.Dist(ev.Pos)
	if t.frame.ready() {
		t.Redraw()
	}
}

func (t *circleTool) PointerUp(ev PointerEvent) {
	if !t.active {
		return
	}
	t.radius = t.center.Dist(ev.Pos)
	t.commit()
}

func (t *circleTool) PointerLeave(PointerEvent) { t.commit() }

func (t *circleTool) KeyDown(key string) {
	if key == "esc" {
		t.Cancel()
	}
}

func (t *circleTool) Exit() { t.commit() }

func (t *circleTool) Cancel() {
	t.active = false
	t.ed.overlay.Clear()
}

func (t *circleTool) commit() {
	if !t.active {
		return
	}
	t.active = false
	t.ed.commit(CircleOp{Center: t.center, Radius: t.radius})
}

func (t *circleTool) Redraw() {
	if !t.active {
		return
	}
	t.ed.preview(func(a Affine, s Surface) {
		c := a.Apply(t.center)
		s.BeginPath()
		s.Arc(c.X, c.Y, t.radius, 0, 2*math.Pi)
		s.Fill()
		s.Stroke()
	})
}

// pencilTool records a freehand stroke. Pointer moves arrive far faster
// than the preview can be repainted, so only every n-th move redraws.
type pencilTool struct {
	ed     *Editor
	active bool
	points []Point
	frame  frameSkip
}

func newPencilTool(ed *Editor) *pencilTool {
	return &pencilTool{ed: ed, frame: frameSkip{every: ed.settings.FrameSkip}}
}

func (t *pencilTool) Name() string { return ToolPencil }

func (t *pencilTool) PointerDown(ev PointerEvent) {
	t.active = true
	t.points = []Point{ev.Pos}
	t.frame.reset()
	t.Redraw()
}

func (t *pencilTool) PointerMove(ev PointerEvent) {
	if !t.active {
		return
	}
	if ev.Pos.Dist(t.points[len(t.points)-1]) < 1 {
		return
	}
	t.points = append(t.points, ev.Pos)
	if t.frame.ready() {
		t.Redraw()
	}
}

func (t *pencilTool) PointerUp(PointerEvent) { t.commit() }

func (t *pencilTool) PointerLeave(PointerEvent) { t.commit() }

func (t *pencilTool) KeyDown(key string) {
	if key == "esc" {
		t.Cancel()
	}
}

func (t *pencilTool) Exit() { t.commit() }

func (t *pencilTool) Cancel() {
	t.active = false
	t.points = nil
	t.ed.overlay.Clear()
}

func (t *pencilTool) commands() []PathCmd {
	cmds := make([]PathCmd, len(t.points))
	for i, p := range t.points {
		if i == 0 {
			cmds[i] = MoveCmd(p)
		} else {
			cmds[i] = LineCmd(p)
		}
	}
	return cmds
}

func (t *pencilTool) commit() {
	if !t.active {
		return
	}
	cmds := t.commands()
	t.Cancel()
	t.ed.commit(PathOp{Cmds: cmds})
}

func (t *pencilTool) Redraw() {
	if !t.active {
		return
	}
	cmds := t.commands()
	t.ed.preview(func(a Affine, s Surface) {
		tracePath(s, a, cmds)
		s.Fill()
		s.Stroke()
	})
}
