package main

// polygonTool places the vertices of a closed filled polygon one click at a
// time. Placed vertices can be dragged while idle.
type polygonTool struct {
	ed       *Editor
	state    ToolState
	points   []Point
	dragIdx  int
	grab     Point
	origin   Point
	hover    Point
	hovering bool
	frame    frameSkip
}

func newPolygonTool(ed *Editor) *polygonTool {
	return &polygonTool{ed: ed, dragIdx: -1, frame: frameSkip{every: ed.settings.FrameSkip}}
}

func (t *polygonTool) Name() string { return ToolPolygon }

func (t *polygonTool) State() ToolState { return t.state }

func (t *polygonTool) PointerDown(ev PointerEvent) {
	p := ev.Pos
	if t.state == StateOn {
		t.state = StateOff
	}
	if t.state == StateOff && ev.Shift {
		t.commit()
	}
	switch t.state {
	case StateInit:
		t.points = []Point{p}
		t.state = StateOn
	case StateOff, StateMove:
		if i := t.vertexAt(p); i >= 0 {
			t.dragIdx, t.grab, t.origin = i, p, t.points[i]
			t.state = StateMove
			break
		}
		t.points = append(t.points, p)
		t.state = StateOn
	}
	t.frame.reset()
	t.Redraw()
}

func (t *polygonTool) vertexAt(p Point) int {
	for i, v := range t.points {
		if t.ed.hit(v, p) {
			return i
		}
	}
	return -1
}

func (t *polygonTool) PointerMove(ev PointerEvent) {
	p := ev.Pos
	t.hover, t.hovering = p, true
	switch t.state {
	case StateOn:
		t.points[len(t.points)-1] = p
	case StateMove:
		t.points[t.dragIdx] = t.origin.Add(p.Sub(t.grab))
	}
	if t.frame.ready() {
		t.Redraw()
	}
}

func (t *polygonTool) PointerUp(PointerEvent) {
	if t.state == StateOn || t.state == StateMove {
		t.state = StateOff
		t.dragIdx = -1
	}
	t.Redraw()
}

func (t *polygonTool) PointerLeave(ev PointerEvent) {
	t.hovering = false
	t.PointerUp(ev)
}

func (t *polygonTool) KeyDown(key string) {
	switch key {
	case "enter":
		t.commit()
	case "esc":
		t.Cancel()
	case "d", "D":
		if t.state != StateOff {
			return
		}
		if len(t.points) <= 1 {
			t.Cancel()
			return
		}
		t.points = t.points[:len(t.points)-1]
		t.Redraw()
	}
}

func (t *polygonTool) Exit() { t.commit() }

func (t *polygonTool) Cancel() {
	t.points = nil
	t.dragIdx = -1
	t.state = StateInit
	t.ed.overlay.Clear()
}

// commit pushes the polygon if it has at least three vertices; anything
// smaller is discarded.
func (t *polygonTool) commit() {
	if len(t.points) < 3 {
		if len(t.points) > 0 {
			t.ed.log.Debug("polygon with %d vertices discarded", len(t.points))
		}
		t.Cancel()
		return
	}
	vertices := append([]Point(nil), t.points...)
	t.Cancel()
	t.ed.commit(PolygonOp{Vertices: vertices})
}

func (t *polygonTool) Redraw() {
	if len(t.points) == 0 {
		t.ed.overlay.Clear()
		return
	}
	pts := t.points
	if t.state == StateOff && t.hovering {
		pts = append(pts[:len(pts):len(pts)], t.hover)
	}
	t.ed.preview(func(a Affine, s Surface) {
		tracePolygon(s, a, pts)
		s.Fill()
		s.Stroke()
	})
	for _, v := range t.points {
		t.ed.drawHandle(v)
	}
}
