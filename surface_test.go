package main

import (
	"fmt"
	"strings"
)

// recordingSurface logs every call as a line of text. Tests compare these
// logs to check what replay painted.
type recordingSurface struct {
	calls []string
}

func (r *recordingSurface) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingSurface) Calls() []string { return append([]string(nil), r.calls...) }

// Count returns how many recorded calls have the given name.
func (r *recordingSurface) Count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c == name || strings.HasPrefix(c, name+" ") {
			n++
		}
	}
	return n
}

func (r *recordingSurface) Clear() { r.calls = r.calls[:0] }

func (r *recordingSurface) Save() { r.record("save") }

func (r *recordingSurface) Restore() { r.record("restore") }

func (r *recordingSurface) BeginPath() { r.record("beginPath") }

func (r *recordingSurface) MoveTo(x, y float64) { r.record("moveTo %.3f %.3f", x, y) }

func (r *recordingSurface) LineTo(x, y float64) { r.record("lineTo %.3f %.3f", x, y) }

func (r *recordingSurface) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.record("bezierCurveTo %.3f %.3f %.3f %.3f %.3f %.3f", c1x, c1y, c2x, c2y, x, y)
}

func (r *recordingSurface) ClosePath() { r.record("closePath") }

func (r *recordingSurface) Arc(x, y, rad, angle1, angle2 float64) {
	r.record("arc %.3f %.3f %.3f %.3f %.3f", x, y, rad, angle1, angle2)
}

func (r *recordingSurface) Stroke() { r.record("stroke") }

func (r *recordingSurface) Fill() { r.record("fill") }

func (r *recordingSurface) SetStrokeColor(c Color) { r.record("strokeColor %s", c) }

func (r *recordingSurface) SetFillColor(c Color) { r.record("fillColor %s", c) }

func (r *recordingSurface) SetLineStyle(s LineStyle) {
	r.record("lineStyle %s %s %g %g", s.Cap, s.Join, s.MiterLimit, s.Width)
}
