package main

import (
	"fmt"
	"math"
)

type OpKind int

const (
	KindSymmetry OpKind = iota
	KindStyle
	KindColor
	KindLine
	KindPolygon
	KindPath
	KindCircle
)

func (k OpKind) String() string {
	switch k {
	case KindSymmetry:
		return tagSymmetry
	case KindStyle:
		return tagStyle
	case KindColor:
		return tagColor
	case KindLine:
		return tagLine
	case KindPolygon:
		return tagPolygon
	case KindPath:
		return tagBezier
	case KindCircle:
		return tagCircle
	default:
		return "unknown"
	}
}

// Operation is one committed entry of the drawing history. Operations are
// values and are never modified after they are pushed.
type Operation interface {
	Kind() OpKind
	// Render paints the operation once per transform in the context's
	// current set. Context operations update the context instead.
	Render(ctx *DrawingContext, s Surface)
	Encode() Literal
}

type SymmetryOp struct {
	Group   string
	Lattice Lattice
}

func (SymmetryOp) Kind() OpKind { return KindSymmetry }

func (op SymmetryOp) Render(ctx *DrawingContext, _ Surface) {
	ctx.setSymmetry(op.Group, op.Lattice)
}

// StylePatch lists the style fields to overwrite. Nil fields keep the
// current value.
type StylePatch struct {
	Cap        *LineCap
	Join       *LineJoin
	MiterLimit *float64
	Width      *float64
}

func FullStyle(s LineStyle) StylePatch {
	return StylePatch{Cap: &s.Cap, Join: &s.Join, MiterLimit: &s.MiterLimit, Width: &s.Width}
}

type StyleOp struct {
	Patch StylePatch
}

func (StyleOp) Kind() OpKind { return KindStyle }

func (op StyleOp) Render(ctx *DrawingContext, _ Surface) {
	ctx.mergeStyle(op.Patch)
}

type ColorTarget string

const (
	TargetStroke ColorTarget = "stroke"
	TargetFill   ColorTarget = "fill"
)

type ColorOp struct {
	Target ColorTarget
	Color  Color
}

func (ColorOp) Kind() OpKind { return KindColor }

func (op ColorOp) Render(ctx *DrawingContext, _ Surface) {
	ctx.setColor(op.Target, op.Color)
}

func (c LineCap) valid() bool { return c == CapButt || c == CapRound || c == CapSquare }

func (j LineJoin) valid() bool { return j == JoinMiter || j == JoinRound || j == JoinBevel }

func (t ColorTarget) valid() bool { return t == TargetStroke || t == TargetFill }

// validate rejects context operations that could not be decoded again once
// encoded. Intents and the decoder share these checks.
func (op SymmetryOp) validate() error {
	if !IsKnownGroup(op.Group) {
		return fmt.Errorf("%w: %q", ErrUnknownGroup, op.Group)
	}
	if !(op.Lattice.Spacing > 0) {
		return fmt.Errorf("spacing must be positive, got %g", op.Lattice.Spacing)
	}
	return nil
}

func (op StyleOp) validate() error {
	p := op.Patch
	if p.Cap != nil && !p.Cap.valid() {
		return fmt.Errorf("bad cap %s", *p.Cap)
	}
	if p.Join != nil && !p.Join.valid() {
		return fmt.Errorf("bad join %s", *p.Join)
	}
	if p.MiterLimit != nil && (math.IsNaN(*p.MiterLimit) || math.IsInf(*p.MiterLimit, 0)) {
		return fmt.Errorf("miterLimit: %g is not finite", *p.MiterLimit)
	}
	if p.Width != nil && (math.IsNaN(*p.Width) || math.IsInf(*p.Width, 0)) {
		return fmt.Errorf("width: %g is not finite", *p.Width)
	}
	return nil
}

func (op ColorOp) validate() error {
	if !op.Target.valid() {
		return fmt.Errorf("bad colour target %q", op.Target)
	}
	if !(op.Color.A >= 0 && op.Color.A <= 1) {
		return fmt.Errorf("alpha out of range: %g", op.Color.A)
	}
	return nil
}

// beginShape frames a shape's paint calls and loads the context's current
// colours and style onto the surface.
func beginShape(ctx *DrawingContext, s Surface) {
	st := ctx.Snapshot()
	s.Save()
	s.SetStrokeColor(st.Stroke)
	s.SetFillColor(st.Fill)
	s.SetLineStyle(st.Style)
}

type LineOp struct {
	Start, End Point
}

func (LineOp) Kind() OpKind { return KindLine }

func (op LineOp) Render(ctx *DrawingContext, s Surface) {
	beginShape(ctx, s)
	defer s.Restore()
	for _, t := range ctx.Transforms() {
		a, b := t.Apply(op.Start), t.Apply(op.End)
		s.BeginPath()
		s.MoveTo(a.X, a.Y)
		s.LineTo(b.X, b.Y)
		s.Stroke()
	}
}

type PolygonOp struct {
	Vertices []Point
}

func (PolygonOp) Kind() OpKind { return KindPolygon }

func (op PolygonOp) Render(ctx *DrawingContext, s Surface) {
	beginShape(ctx, s)
	defer s.Restore()
	for _, t := range ctx.Transforms() {
		tracePolygon(s, t, op.Vertices)
		s.Fill()
		s.Stroke()
	}
}

func tracePolygon(s Surface, t Affine, vertices []Point) {
	s.BeginPath()
	for i, v := range vertices {
		p := t.Apply(v)
		if i == 0 {
			s.MoveTo(p.X, p.Y)
		} else {
			s.LineTo(p.X, p.Y)
		}
	}
	if len(vertices) > 0 {
		s.ClosePath()
	}
}

type CmdKind int

const (
	CmdMove CmdKind = iota
	CmdLine
	CmdCurve
)

// PathCmd is one path command. For a curve, C1 leaves the previous vertex
// and C2 arrives at End; both are ignored for moves and lines.
type PathCmd struct {
	Kind CmdKind
	C1   Point
	C2   Point
	End  Point
}

func MoveCmd(p Point) PathCmd { return PathCmd{Kind: CmdMove, End: p} }

func LineCmd(p Point) PathCmd { return PathCmd{Kind: CmdLine, End: p} }

func CurveCmd(c1, c2, end Point) PathCmd {
	return PathCmd{Kind: CmdCurve, C1: c1, C2: c2, End: end}
}

type PathOp struct {
	Cmds []PathCmd
}

func (PathOp) Kind() OpKind { return KindPath }

func (op PathOp) Render(ctx *DrawingContext, s Surface) {
	beginShape(ctx, s)
	defer s.Restore()
	for _, t := range ctx.Transforms() {
		tracePath(s, t, op.Cmds)
		s.Fill()
		s.Stroke()
	}
}

func tracePath(s Surface, t Affine, cmds []PathCmd) {
	s.BeginPath()
	for _, c := range cmds {
		end := t.Apply(c.End)
		switch c.Kind {
		case CmdMove:
			s.MoveTo(end.X, end.Y)
		case CmdLine:
			s.LineTo(end.X, end.Y)
		case CmdCurve:
			c1, c2 := t.Apply(c.C1), t.Apply(c.C2)
			s.BezierCurveTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
		}
	}
}

// CircleOp keeps its radius under every transform. Symmetry sets built from
// rotations, reflections and translations preserve it exactly; any scaling
// or skew would need an ellipse and is not handled.
type CircleOp struct {
	Center Point
	Radius float64
}

func (CircleOp) Kind() OpKind { return KindCircle }

func (op CircleOp) Render(ctx *DrawingContext, s Surface) {
	beginShape(ctx, s)
	defer s.Restore()
	for _, t := range ctx.Transforms() {
		c := t.Apply(op.Center)
		s.BeginPath()
		s.Arc(c.X, c.Y, op.Radius, 0, 2*math.Pi)
		s.Fill()
		s.Stroke()
	}
}
