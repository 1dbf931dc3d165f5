package main

import "fmt"

type Color struct {
	R, G, B uint8
	A       float64
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", c.R, c.G, c.B, c.A)
}

// Hex returns the colour as #rrggbb, dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

type LineCap string

const (
	CapButt   LineCap = "butt"
	CapRound  LineCap = "round"
	CapSquare LineCap = "square"
)

type LineJoin string

const (
	JoinMiter LineJoin = "miter"
	JoinRound LineJoin = "round"
	JoinBevel LineJoin = "bevel"
)

type LineStyle struct {
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Width      float64
}

// Lattice places the symmetry grid on the canvas: origin, cell spacing and
// rotation in radians.
type Lattice struct {
	X        float64
	Y        float64
	Spacing  float64
	Rotation float64
}

// ContextState is an immutable snapshot of the drawing context.
type ContextState struct {
	Stroke  Color
	Fill    Color
	Style   LineStyle
	Group   string
	Lattice Lattice
}

// DrawingContext is the single source of truth for the colours, line style
// and symmetry that operations paint with. It changes only while the command
// stack replays context operations.
type DrawingContext struct {
	state      ContextState
	width      int
	height     int
	source     TransformSource
	transforms []Affine
	lattice    []Point
	listeners  map[int]func(ContextState)
	nextID     int
	log        *Logger
}

func NewDrawingContext(source TransformSource, width, height int, log *Logger) *DrawingContext {
	if log == nil {
		log = DiscardLogger()
	}
	c := &DrawingContext{
		source:    source,
		width:     width,
		height:    height,
		listeners: make(map[int]func(ContextState)),
		log:       log.WithPrefix("context"),
	}
	c.clear()
	return c
}

// clear drops back to an empty context with only the identity transform.
// Replay starts from here so that history alone determines the result.
func (c *DrawingContext) clear() {
	c.state = ContextState{Group: "none", Lattice: Lattice{Spacing: 1}}
	c.transforms = []Affine{Identity()}
	c.lattice = nil
}

func (c *DrawingContext) Snapshot() ContextState { return c.state }

func (c *DrawingContext) Size() (int, int) { return c.width, c.height }

// Transforms returns the current transform set. Callers must not modify it.
func (c *DrawingContext) Transforms() []Affine { return c.transforms }

// LatticePoints returns the current lattice points for grid overlays.
func (c *DrawingContext) LatticePoints() []Point { return c.lattice }

// Subscribe registers fn to be called with the new snapshot whenever a
// replay changes the context. The returned func removes the listener.
func (c *DrawingContext) Subscribe(fn func(ContextState)) func() {
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

func (c *DrawingContext) publish() {
	for id := 0; id < c.nextID; id++ {
		if fn, ok := c.listeners[id]; ok {
			fn(c.state)
		}
	}
}

func (c *DrawingContext) setColor(target ColorTarget, col Color) {
	if target == TargetFill {
		c.state.Fill = col
	} else {
		c.state.Stroke = col
	}
}

func (c *DrawingContext) mergeStyle(p StylePatch) {
	if p.Cap != nil {
		c.state.Style.Cap = *p.Cap
	}
	if p.Join != nil {
		c.state.Style.Join = *p.Join
	}
	if p.MiterLimit != nil {
		c.state.Style.MiterLimit = *p.MiterLimit
	}
	if p.Width != nil {
		c.state.Style.Width = *p.Width
	}
}

// setSymmetry swaps in the transform set for the given group and lattice.
// If the provider rejects the arguments the previous set stays in effect.
func (c *DrawingContext) setSymmetry(group string, l Lattice) {
	key := LatticeKey{
		Group:    group,
		Width:    c.width,
		Height:   c.height,
		Spacing:  l.Spacing,
		Rotation: l.Rotation,
		X:        l.X,
		Y:        l.Y,
	}
	transforms, err := c.source.Transforms(key)
	if err != nil {
		c.log.Warn("keeping previous symmetry: %v", err)
		return
	}
	points, err := c.source.Lattice(key)
	if err != nil {
		c.log.Warn("keeping previous symmetry: %v", err)
		return
	}
	c.state.Group = group
	c.state.Lattice = l
	c.transforms = transforms
	c.lattice = points
}
