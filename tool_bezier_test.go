package main

import (
	"math"
	"testing"
)

func bezierOf(ed *Editor) *bezierTool {
	return ed.tools[ToolBezier].(*bezierTool)
}

func TestBezierSculptAndCancel(t *testing.T) {
	ed, _, _ := newTestEditor(t, identitySource())
	b := bezierOf(ed)

	ed.PointerDown(PointerEvent{Pos: Point{0, 0}})
	if b.state != StateOn || len(b.cmds) != 1 || b.cmds[0].Kind != CmdMove {
		t.Fatalf("after first press: state %v, cmds %+v", b.state, b.cmds)
	}
	ed.PointerDown(PointerEvent{Pos: Point{20, 0}})
	if len(b.cmds) != 2 || b.cmds[1].Kind != CmdLine {
		t.Fatalf("second press should add a line, cmds %+v", b.cmds)
	}
	ed.PointerMove(PointerEvent{Pos: Point{20, 10}})

	c := b.cmds[1]
	if c.Kind != CmdCurve {
		t.Fatalf("drag did not upgrade the line, got kind %v", c.Kind)
	}
	if !near(c.C1, Point{0, 0}) {
		t.Errorf("C1 = %v, want the previous vertex", c.C1)
	}
	if !near(c.C2, Point{20, -10}) {
		t.Errorf("C2 = %v, want (20,-10)", c.C2)
	}
	if !near(c.End, Point{20, 0}) {
		t.Errorf("End = %v, want (20,0)", c.End)
	}
	if !b.hasPending || !near(b.pending, Point{20, 10}) {
		t.Errorf("pending = %v (%v), want (20,10)", b.pending, b.hasPending)
	}

	ed.KeyDown("esc")
	if len(b.cmds) != 0 || b.state != StateInit || b.hasPending {
		t.Errorf("esc left cmds %v, state %v", b.cmds, b.state)
	}
	if ed.Stack().Len() != bootstrapOps {
		t.Error("cancel committed something")
	}
}

func TestBezierEnterCommitsPath(t *testing.T) {
	ed, _, _ := newTestEditor(t, identitySource())
	ed.PointerDown(PointerEvent{Pos: Point{0, 0}})
	ed.PointerUp(PointerEvent{Pos: Point{0, 0}})
	ed.PointerDown(PointerEvent{Pos: Point{40, 0}})
	ed.PointerMove(PointerEvent{Pos: Point{40, 20}})
	ed.PointerUp(PointerEvent{Pos: Point{40, 20}})
	ed.KeyDown("enter")

	path, ok := lastOp(t, ed).(PathOp)
	if !ok {
		t.Fatalf("last op = %T, want PathOp", lastOp(t, ed))
	}
	if len(path.Cmds) != 2 || path.Cmds[1].Kind != CmdCurve {
		t.Errorf("committed %+v; the dangling handle must not add a segment", path.Cmds)
	}
	if ed.ToolState() != StateInit {
		t.Errorf("state after commit = %v", ed.ToolState())
	}
}

func TestBezierPressUsesDanglingHandle(t *testing.T) {
	ed, _, _ := newTestEditor(t, identitySource())
	b := bezierOf(ed)
	ed.PointerDown(PointerEvent{Pos: Point{0, 0}})
	ed.PointerMove(PointerEvent{Pos: Point{0, 30}})
	ed.PointerUp(PointerEvent{Pos: Point{0, 30}})
	ed.PointerDown(PointerEvent{Pos: Point{60, 0}})

	c := b.cmds[1]
	if c.Kind != CmdCurve || !near(c.C1, Point{0, 30}) {
		t.Errorf("segment = %+v, want a curve leaving through (0,30)", c)
	}
	if b.hasPending {
		t.Error("dangling handle was not consumed")
	}
}

// smoothPath is M(0,0) C(10,0 40,-20 50,0) C(60,20 90,20 100,0) with the
// joint at (50,0).
func smoothPath(b *bezierTool) {
	b.cmds = []PathCmd{
		MoveCmd(Point{0, 0}),
		CurveCmd(Point{10, 0}, Point{40, -20}, Point{50, 0}),
		CurveCmd(Point{60, 20}, Point{90, 20}, Point{100, 0}),
	}
	b.state = StateOff
}

func TestBezierVertexDragMovesHandlesRigidly(t *testing.T) {
	ed, _, _ := newTestEditor(t, identitySource())
	b := bezierOf(ed)
	smoothPath(b)

	ed.PointerDown(PointerEvent{Pos: Point{50, 0}})
	if b.state != StateMove {
		t.Fatalf("press on vertex: state %v, want MOVE", b.state)
	}
	ed.PointerMove(PointerEvent{Pos: Point{57, 4}})
	ed.PointerUp(PointerEvent{Pos: Point{57, 4}})

	if !near(b.cmds[1].End, Point{57, 4}) {
		t.Errorf("vertex = %v, want (57,4)", b.cmds[1].End)
	}
	if !near(b.cmds[1].C2, Point{47, -16}) {
		t.Errorf("arriving handle = %v, want (47,-16)", b.cmds[1].C2)
	}
	if !near(b.cmds[2].C1, Point{67, 24}) {
		t.Errorf("leaving handle = %v, want (67,24)", b.cmds[2].C1)
	}
	if !near(b.cmds[2].C2, Point{90, 20}) || !near(b.cmds[1].C1, Point{10, 0}) {
		t.Error("unlinked handles moved")
	}
	if b.state != StateOff {
		t.Errorf("state after release = %v", b.state)
	}
}

func TestBezierHandleDragMirrorsOpposite(t *testing.T) {
	ed, _, _ := newTestEditor(t, identitySource())
	b := bezierOf(ed)
	smoothPath(b)
	joint := Point{50, 0}
	r := joint.Dist(Point{40, -20})

	ed.PointerDown(PointerEvent{Pos: Point{60, 20}})
	ed.PointerMove(PointerEvent{Pos: Point{50, 40}})

	moved := b.cmds[2].C1
	if !near(moved, Point{50, 40}) {
		t.Fatalf("dragged handle = %v", moved)
	}
	opp := b.cmds[1].C2
	if d := opp.Dist(joint); math.Abs(d-r) > 1e-9 {
		t.Errorf("opposite handle distance = %g, want original %g", d, r)
	}
	theta := math.Atan2(moved.Y-joint.Y, moved.X-joint.X)
	phi := math.Atan2(opp.Y-joint.Y, opp.X-joint.X)
	diff := math.Mod(phi-theta+4*math.Pi, 2*math.Pi)
	if math.Abs(diff-math.Pi) > 1e-9 {
		t.Errorf("opposite handle angle differs by %g, want pi", diff)
	}
	if !near(b.cmds[1].End, joint) {
		t.Error("joint moved during a handle drag")
	}
}

func TestBezierPendingHandleMirrorsLastArriving(t *testing.T) {
	ed, _, _ := newTestEditor(t, identitySource())
	b := bezierOf(ed)
	ed.PointerDown(PointerEvent{Pos: Point{0, 0}})
	ed.PointerDown(PointerEvent{Pos: Point{20, 0}})
	ed.PointerMove(PointerEvent{Pos: Point{20, 10}})
	ed.PointerUp(PointerEvent{Pos: Point{20, 10}})

	ed.PointerDown(PointerEvent{Pos: Point{20, 10}})
	if b.state != StateMove {
		t.Fatalf("press on dangling handle: state %v", b.state)
	}
	ed.PointerMove(PointerEvent{Pos: Point{30, 0}})

	if !near(b.pending, Point{30, 0}) {
		t.Errorf("pending = %v", b.pending)
	}
	if !near(b.cmds[1].C2, Point{10, 0}) {
		t.Errorf("arriving handle = %v, want (10,0)", b.cmds[1].C2)
	}
}

func TestBezierShiftPressStartsNewPath(t *testing.T) {
	ed, _, _ := newTestEditor(t, identitySource())
	b := bezierOf(ed)
	ed.PointerDown(PointerEvent{Pos: Point{0, 0}})
	ed.PointerUp(PointerEvent{Pos: Point{0, 0}})
	ed.PointerDown(PointerEvent{Pos: Point{50, 0}})
	ed.PointerUp(PointerEvent{Pos: Point{50, 0}})

	ed.PointerDown(PointerEvent{Pos: Point{200, 200}, Shift: true})

	if _, ok := lastOp(t, ed).(PathOp); !ok {
		t.Fatal("shift press did not commit the open path")
	}
	if len(b.cmds) != 1 || !near(b.cmds[0].End, Point{200, 200}) || b.state != StateOn {
		t.Errorf("new path = %+v, state %v", b.cmds, b.state)
	}
}

func TestBezierPopPoint(t *testing.T) {
	ed, _, _ := newTestEditor(t, identitySource())
	b := bezierOf(ed)
	smoothPath(b)

	ed.KeyDown("d")
	if len(b.cmds) != 2 {
		t.Fatalf("cmds after pop = %d, want 2", len(b.cmds))
	}
	ed.KeyDown("d")
	ed.KeyDown("d")
	if len(b.cmds) != 0 || b.state != StateInit {
		t.Errorf("popping the move should cancel, got %v / %v", b.cmds, b.state)
	}
}

func TestDragGraphZeroDirectionKeepsTarget(t *testing.T) {
	store := &bezierTool{cmds: []PathCmd{
		MoveCmd(Point{0, 0}),
		CurveCmd(Point{1, 1}, Point{4, 0}, Point{5, 0}),
		CurveCmd(Point{6, 0}, Point{9, 0}, Point{10, 0}),
	}}
	g := newDragGraph(store, PointRef{2, RoleC1}, Point{6, 0})
	g.mirror(store, PointRef{1, RoleC2}, PointRef{1, RoleEnd})

	g.apply(store, Point{5, 0})
	if !near(store.cmds[1].C2, Point{4, 0}) {
		t.Errorf("handle on the joint moved the mirror to %v", store.cmds[1].C2)
	}
}

func TestBezierArrivingHandleDragMirrorsFollower(t *testing.T) {
	far := 50 + math.Sqrt(500)
	tests := []struct {
		name     string
		setup    func(b *bezierTool)
		follower func(b *bezierTool) Point
	}{
		{
			name:     "next segment leaving handle",
			setup:    smoothPath,
			follower: func(b *bezierTool) Point { return b.cmds[2].C1 },
		},
		{
			name: "dangling handle",
			setup: func(b *bezierTool) {
				b.cmds = []PathCmd{
					MoveCmd(Point{0, 0}),
					CurveCmd(Point{10, 0}, Point{40, -20}, Point{50, 0}),
				}
				b.pending, b.hasPending = Point{60, 20}, true
				b.state = StateOff
			},
			follower: func(b *bezierTool) Point { return b.pending },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, _, _ := newTestEditor(t, identitySource())
			b := bezierOf(ed)
			tt.setup(b)

			ed.PointerDown(PointerEvent{Pos: Point{40, -20}})
			if b.drag == nil || b.drag.node != (PointRef{1, RoleC2}) {
				t.Fatalf("press did not grab the arriving handle: %+v", b.drag)
			}
			ed.PointerMove(PointerEvent{Pos: Point{30, 0}})

			if !near(b.cmds[1].C2, Point{30, 0}) {
				t.Errorf("dragged handle = %v", b.cmds[1].C2)
			}
			if got := tt.follower(b); !near(got, Point{far, 0}) {
				t.Errorf("follower = %v, want (%g,0)", got, far)
			}
		})
	}
}

func TestBezierVertexDragCarriesDanglingHandle(t *testing.T) {
	tests := []struct {
		name        string
		cmds        []PathCmd
		grab, to    Point
		wantPending Point
	}{
		{
			name:        "last line vertex",
			cmds:        []PathCmd{MoveCmd(Point{0, 0}), LineCmd(Point{50, 0})},
			grab:        Point{50, 0},
			to:          Point{55, 5},
			wantPending: Point{65, 25},
		},
		{
			name:        "last curve vertex",
			cmds:        []PathCmd{MoveCmd(Point{0, 0}), CurveCmd(Point{10, 0}, Point{40, -20}, Point{50, 0})},
			grab:        Point{50, 0},
			to:          Point{57, 4},
			wantPending: Point{67, 24},
		},
		{
			name:        "earlier vertex leaves it alone",
			cmds:        []PathCmd{MoveCmd(Point{0, 0}), LineCmd(Point{50, 0})},
			grab:        Point{0, 0},
			to:          Point{5, 5},
			wantPending: Point{60, 20},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, _, _ := newTestEditor(t, identitySource())
			b := bezierOf(ed)
			b.cmds = tt.cmds
			b.pending, b.hasPending = Point{60, 20}, true
			b.state = StateOff

			ed.PointerDown(PointerEvent{Pos: tt.grab})
			ed.PointerMove(PointerEvent{Pos: tt.to})

			if !near(b.pending, tt.wantPending) {
				t.Errorf("pending = %v, want %v", b.pending, tt.wantPending)
			}
			if tt.cmds[len(tt.cmds)-1].Kind == CmdCurve && !near(b.cmds[1].C2, Point{47, -16}) {
				t.Errorf("arriving handle = %v, want (47,-16)", b.cmds[1].C2)
			}
		})
	}
}

func TestBezierHitPriority(t *testing.T) {
	tests := []struct {
		name    string
		cmds    []PathCmd
		pending *Point
		press   Point
		want    PointRef
	}{
		{
			name:  "vertex beats a closer arriving handle",
			cmds:  []PathCmd{MoveCmd(Point{0, 0}), CurveCmd(Point{10, 0}, Point{48, -3}, Point{50, 0})},
			press: Point{48.5, -2.5},
			want:  PointRef{1, RoleEnd},
		},
		{
			name:    "vertex beats the dangling handle",
			cmds:    []PathCmd{MoveCmd(Point{0, 0}), LineCmd(Point{50, 0})},
			pending: &Point{51, 1},
			press:   Point{51, 1},
			want:    PointRef{1, RoleEnd},
		},
		{
			name:  "leaving handle beats arriving handle",
			cmds:  []PathCmd{MoveCmd(Point{0, 0}), CurveCmd(Point{30, 5}, Point{32, 6}, Point{60, 0})},
			press: Point{32, 6},
			want:  PointRef{1, RoleC1},
		},
		{
			name:    "arriving handle beats the dangling handle",
			cmds:    []PathCmd{MoveCmd(Point{0, 0}), CurveCmd(Point{10, 0}, Point{40, -20}, Point{50, 0})},
			pending: &Point{41, -21},
			press:   Point{41, -21},
			want:    PointRef{1, RoleC2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, _, _ := newTestEditor(t, identitySource())
			b := bezierOf(ed)
			b.cmds = tt.cmds
			if tt.pending != nil {
				b.pending, b.hasPending = *tt.pending, true
			}
			b.state = StateOff

			ed.PointerDown(PointerEvent{Pos: tt.press})
			if b.state != StateMove || b.drag == nil {
				t.Fatalf("press grabbed nothing, state %v", b.state)
			}
			if b.drag.node != tt.want {
				t.Errorf("grabbed %+v, want %+v", b.drag.node, tt.want)
			}
		})
	}
}
