package main

// bezierTool builds a path of lines and cubic curves. Dragging while
// placing a point pulls out smooth handles through it; placed vertices and
// handles can be dragged afterwards with their partners following.
type bezierTool struct {
	ed         *Editor
	state      ToolState
	cmds       []PathCmd
	pending    Point
	hasPending bool
	drag       *dragGraph
	hover      Point
	hovering   bool
	frame      frameSkip
}

func newBezierTool(ed *Editor) *bezierTool {
	return &bezierTool{ed: ed, frame: frameSkip{every: ed.settings.FrameSkip}}
}

func (b *bezierTool) Name() string { return ToolBezier }

func (b *bezierTool) State() ToolState { return b.state }

func (b *bezierTool) point(ref PointRef) Point {
	if ref.Role == RolePending {
		return b.pending
	}
	c := b.cmds[ref.Cmd]
	switch ref.Role {
	case RoleC1:
		return c.C1
	case RoleC2:
		return c.C2
	}
	return c.End
}

func (b *bezierTool) setPoint(ref PointRef, p Point) {
	if ref.Role == RolePending {
		b.pending = p
		return
	}
	c := &b.cmds[ref.Cmd]
	switch ref.Role {
	case RoleC1:
		c.C1 = p
	case RoleC2:
		c.C2 = p
	default:
		c.End = p
	}
}

func (b *bezierTool) PointerDown(ev PointerEvent) {
	p := ev.Pos
	if b.state == StateOn {
		b.state = StateOff
	}
	if b.state == StateOff && ev.Shift {
		b.commit()
	}
	switch b.state {
	case StateInit:
		b.cmds = []PathCmd{MoveCmd(p)}
		b.hasPending = false
		b.state = StateOn
	case StateOff, StateMove:
		if g := b.hitTest(p); g != nil {
			b.drag = g
			b.state = StateMove
			break
		}
		if b.hasPending {
			b.cmds = append(b.cmds, CurveCmd(b.pending, p, p))
			b.hasPending = false
		} else {
			b.cmds = append(b.cmds, LineCmd(p))
		}
		b.state = StateOn
	}
	b.frame.reset()
	b.Redraw()
}

// hitTest finds the point under p, highest priority first: vertices, then
// arriving-side handles (C1), then C2 handles, then the dangling handle.
// It returns the drag graph for the hit or nil.
func (b *bezierTool) hitTest(p Point) *dragGraph {
	last := len(b.cmds) - 1
	for i, c := range b.cmds {
		if !b.ed.hit(c.End, p) {
			continue
		}
		g := newDragGraph(b, PointRef{i, RoleEnd}, p)
		if c.Kind == CmdCurve {
			g.translate(b, PointRef{i, RoleC2})
		}
		if i < last && b.cmds[i+1].Kind == CmdCurve {
			g.translate(b, PointRef{i + 1, RoleC1})
		}
		if i == last && b.hasPending {
			g.translate(b, pendingRef)
		}
		return g
	}
	for i, c := range b.cmds {
		if c.Kind != CmdCurve || !b.ed.hit(c.C1, p) {
			continue
		}
		g := newDragGraph(b, PointRef{i, RoleC1}, p)
		if i > 0 && b.cmds[i-1].Kind == CmdCurve {
			g.mirror(b, PointRef{i - 1, RoleC2}, PointRef{i - 1, RoleEnd})
		}
		return g
	}
	for i, c := range b.cmds {
		if c.Kind != CmdCurve || !b.ed.hit(c.C2, p) {
			continue
		}
		g := newDragGraph(b, PointRef{i, RoleC2}, p)
		switch {
		case i < last && b.cmds[i+1].Kind == CmdCurve:
			g.mirror(b, PointRef{i + 1, RoleC1}, PointRef{i, RoleEnd})
		case i == last && b.hasPending:
			g.mirror(b, pendingRef, PointRef{i, RoleEnd})
		}
		return g
	}
	if b.hasPending && b.ed.hit(b.pending, p) {
		g := newDragGraph(b, pendingRef, p)
		if last >= 0 && b.cmds[last].Kind == CmdCurve {
			g.mirror(b, PointRef{last, RoleC2}, PointRef{last, RoleEnd})
		}
		return g
	}
	return nil
}

func (b *bezierTool) PointerMove(ev PointerEvent) {
	p := ev.Pos
	b.hover, b.hovering = p, true
	switch b.state {
	case StateOn:
		b.sculpt(p)
	case StateMove:
		b.drag.apply(b, p)
	}
	if b.frame.ready() {
		b.Redraw()
	}
}

// sculpt shapes the most recent segment while its endpoint is being laid
// down: the pointer becomes the next segment's dangling handle and the
// segment's own arriving handle is its reflection through the endpoint.
func (b *bezierTool) sculpt(p Point) {
	last := len(b.cmds) - 1
	c := &b.cmds[last]
	b.pending, b.hasPending = p, true
	switch c.Kind {
	case CmdMove:
		return
	case CmdLine:
		c.Kind = CmdCurve
		c.C1 = b.cmds[last-1].End
	}
	c.C2 = p.ReflectThrough(c.End)
}

func (b *bezierTool) PointerUp(PointerEvent) {
	if b.state == StateOn || b.state == StateMove {
		b.state = StateOff
		b.drag = nil
	}
	b.Redraw()
}

func (b *bezierTool) PointerLeave(ev PointerEvent) {
	b.hovering = false
	b.PointerUp(ev)
}

func (b *bezierTool) KeyDown(key string) {
	switch key {
	case "enter":
		b.commit()
	case "esc":
		b.Cancel()
	case "d", "D":
		b.popPoint()
	}
}

// popPoint removes the most recently placed point while idle.
func (b *bezierTool) popPoint() {
	if b.state != StateOff {
		return
	}
	if len(b.cmds) <= 1 {
		b.Cancel()
		return
	}
	b.cmds = b.cmds[:len(b.cmds)-1]
	b.hasPending = false
	b.Redraw()
}

func (b *bezierTool) Exit() { b.commit() }

// Cancel drops the path being built.
func (b *bezierTool) Cancel() {
	b.cmds = nil
	b.hasPending = false
	b.drag = nil
	b.state = StateInit
	b.ed.overlay.Clear()
}

// commit pushes the path built so far. A trailing dangling handle has no
// segment to belong to and is dropped.
func (b *bezierTool) commit() {
	if len(b.cmds) == 0 {
		b.Cancel()
		return
	}
	cmds := append([]PathCmd(nil), b.cmds...)
	b.Cancel()
	b.ed.commit(PathOp{Cmds: cmds})
}

func (b *bezierTool) Redraw() {
	if len(b.cmds) == 0 {
		b.ed.overlay.Clear()
		return
	}
	cmds := b.cmds
	if b.state == StateOff && b.hovering {
		if b.hasPending {
			cmds = append(cmds[:len(cmds):len(cmds)], CurveCmd(b.pending, b.hover, b.hover))
		} else {
			cmds = append(cmds[:len(cmds):len(cmds)], LineCmd(b.hover))
		}
	}
	b.ed.preview(func(t Affine, s Surface) {
		tracePath(s, t, cmds)
		s.Fill()
		s.Stroke()
	})
	for i, c := range b.cmds {
		if c.Kind == CmdCurve {
			b.ed.drawGuide(b.cmds[i-1].End, c.C1)
			b.ed.drawGuide(c.C2, c.End)
			b.ed.drawHandle(c.C1)
			b.ed.drawHandle(c.C2)
		}
		b.ed.drawHandle(c.End)
	}
	if b.hasPending {
		b.ed.drawGuide(b.cmds[len(b.cmds)-1].End, b.pending)
		b.ed.drawHandle(b.pending)
	}
}
