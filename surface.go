package main

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Surface is an immediate-mode 2D canvas. Colours and line style apply to
// the next Stroke or Fill.
type Surface interface {
	Clear()
	Save()
	Restore()
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
	Arc(x, y, r, angle1, angle2 float64)
	Stroke()
	Fill()
	SetStrokeColor(c Color)
	SetFillColor(c Color)
	SetLineStyle(s LineStyle)
}

type paintState struct {
	stroke Color
	fill   Color
	style  LineStyle
}

// rasterSurface paints onto a gg context. Stroke and Fill keep the current
// path so a shape can be filled and then outlined.
type rasterSurface struct {
	dc         *gg.Context
	background color.Color
	state      paintState
	stack      []paintState
}

func newRasterSurface(width, height int, background color.Color) *rasterSurface {
	s := &rasterSurface{
		dc:         gg.NewContext(width, height),
		background: background,
		state:      paintState{style: LineStyle{Width: 1}},
	}
	s.Clear()
	return s
}

func (s *rasterSurface) Image() image.Image { return s.dc.Image() }

func (s *rasterSurface) Context() *gg.Context { return s.dc }

func (s *rasterSurface) Clear() {
	s.dc.ClearPath()
	if s.background == nil {
		s.dc.SetColor(color.Transparent)
	} else {
		s.dc.SetColor(s.background)
	}
	s.dc.Clear()
}

func (s *rasterSurface) Save() {
	s.stack = append(s.stack, s.state)
	s.dc.Push()
}

func (s *rasterSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.dc.Pop()
}

func (s *rasterSurface) BeginPath() { s.dc.ClearPath() }

func (s *rasterSurface) MoveTo(x, y float64) { s.dc.MoveTo(x, y) }

func (s *rasterSurface) LineTo(x, y float64) { s.dc.LineTo(x, y) }

func (s *rasterSurface) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.dc.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

func (s *rasterSurface) ClosePath() { s.dc.ClosePath() }

func (s *rasterSurface) Arc(x, y, r, angle1, angle2 float64) {
	s.dc.NewSubPath()
	s.dc.DrawArc(x, y, r, angle1, angle2)
}

func (s *rasterSurface) Stroke() {
	setRGBA(s.dc, s.state.stroke)
	s.dc.SetLineWidth(s.state.style.Width)
	switch s.state.style.Cap {
	case CapRound:
		s.dc.SetLineCap(gg.LineCapRound)
	case CapSquare:
		s.dc.SetLineCap(gg.LineCapSquare)
	default:
		s.dc.SetLineCap(gg.LineCapButt)
	}
	// gg has no miter join; bevel is the closest match.
	if s.state.style.Join == JoinRound {
		s.dc.SetLineJoin(gg.LineJoinRound)
	} else {
		s.dc.SetLineJoin(gg.LineJoinBevel)
	}
	s.dc.StrokePreserve()
}

func (s *rasterSurface) Fill() {
	setRGBA(s.dc, s.state.fill)
	s.dc.FillPreserve()
}

func (s *rasterSurface) SetStrokeColor(c Color) { s.state.stroke = c }

func (s *rasterSurface) SetFillColor(c Color) { s.state.fill = c }

func (s *rasterSurface) SetLineStyle(style LineStyle) { s.state.style = style }

func setRGBA(dc *gg.Context, c Color) {
	dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, c.A)
}
