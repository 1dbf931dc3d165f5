package main

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
)

// svgSurface turns paint calls into SVG path elements. Every Fill and
// Stroke emits the current path once with the matching paint attributes.
type svgSurface struct {
	width, height int
	elements      bytes.Buffer
	d             strings.Builder
	hasCurrent    bool
	state         paintState
	stack         []paintState
}

func newSVGSurface(width, height int) *svgSurface {
	return &svgSurface{width: width, height: height, state: paintState{style: LineStyle{Width: 1}}}
}

func (s *svgSurface) Clear() {
	s.elements.Reset()
	s.BeginPath()
}

func (s *svgSurface) Save() { s.stack = append(s.stack, s.state) }

func (s *svgSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *svgSurface) BeginPath() {
	s.d.Reset()
	s.hasCurrent = false
}

func (s *svgSurface) MoveTo(x, y float64) {
	fmt.Fprintf(&s.d, "M%s %s ", num(x), num(y))
	s.hasCurrent = true
}

func (s *svgSurface) LineTo(x, y float64) {
	if !s.hasCurrent {
		s.MoveTo(x, y)
		return
	}
	fmt.Fprintf(&s.d, "L%s %s ", num(x), num(y))
}

func (s *svgSurface) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !s.hasCurrent {
		s.MoveTo(c1x, c1y)
	}
	fmt.Fprintf(&s.d, "C%s %s %s %s %s %s ", num(c1x), num(c1y), num(c2x), num(c2y), num(x), num(y))
}

func (s *svgSurface) ClosePath() {
	if s.hasCurrent {
		s.d.WriteString("Z ")
	}
}

// Arc appends a clockwise arc. Sweeps of a full turn or more are split in
// two half arcs since a single SVG arc cannot close on itself.
func (s *svgSurface) Arc(x, y, r, angle1, angle2 float64) {
	start := Point{x + r*math.Cos(angle1), y + r*math.Sin(angle1)}
	if s.hasCurrent {
		s.LineTo(start.X, start.Y)
	} else {
		s.MoveTo(start.X, start.Y)
	}
	sweep := angle2 - angle1
	if sweep >= 2*math.Pi {
		mid := Point{x + r*math.Cos(angle1+math.Pi), y + r*math.Sin(angle1+math.Pi)}
		fmt.Fprintf(&s.d, "A%s %s 0 0 1 %s %s ", num(r), num(r), num(mid.X), num(mid.Y))
		fmt.Fprintf(&s.d, "A%s %s 0 0 1 %s %s ", num(r), num(r), num(start.X), num(start.Y))
		return
	}
	end := Point{x + r*math.Cos(angle2), y + r*math.Sin(angle2)}
	large := 0
	if sweep > math.Pi {
		large = 1
	}
	fmt.Fprintf(&s.d, "A%s %s 0 %d 1 %s %s ", num(r), num(r), large, num(end.X), num(end.Y))
}

func (s *svgSurface) Fill() {
	if s.d.Len() == 0 {
		return
	}
	fmt.Fprintf(&s.elements, "  <path d=\"%s\" fill=\"%s\" fill-opacity=\"%s\" stroke=\"none\"/>\n",
		strings.TrimSpace(s.d.String()), s.state.fill.Hex(), num(s.state.fill.A))
}

func (s *svgSurface) Stroke() {
	if s.d.Len() == 0 {
		return
	}
	st := s.state.style
	fmt.Fprintf(&s.elements, "  <path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-opacity=\"%s\" stroke-width=\"%s\" stroke-linecap=\"%s\" stroke-linejoin=\"%s\" stroke-miterlimit=\"%s\"/>\n",
		strings.TrimSpace(s.d.String()), s.state.stroke.Hex(), num(s.state.stroke.A),
		num(st.Width), orDefault(string(st.Cap), string(CapButt)), orDefault(string(st.Join), string(JoinMiter)), num(math.Max(st.MiterLimit, 1)))
}

func (s *svgSurface) SetStrokeColor(c Color) { s.state.stroke = c }

func (s *svgSurface) SetFillColor(c Color) { s.state.fill = c }

func (s *svgSurface) SetLineStyle(style LineStyle) { s.state.style = style }

// WriteTo writes the complete SVG document.
func (s *svgSurface) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		s.width, s.height, s.width, s.height)
	fmt.Fprintf(&buf, "  <rect width=\"%d\" height=\"%d\" fill=\"#ffffff\"/>\n", s.width, s.height)
	buf.Write(s.elements.Bytes())
	buf.WriteString("</svg>\n")
	return buf.WriteTo(w)
}

func num(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
