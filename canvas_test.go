package main

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"strings"
	"testing"
)

func TestCellGeometry(t *testing.T) {
	g := newCellGeometry(640, 400, 80, 25)
	if g.sx != 8 || g.sy != 8 {
		t.Fatalf("scale = %g x %g, want 8 x 8", g.sx, g.sy)
	}
	if p := g.canvasPoint(0, 0); p != (Point{4, 8}) {
		t.Errorf("canvasPoint(0,0) = %v", p)
	}
	if p := g.canvasPoint(79, 24); p != (Point{636, 392}) {
		t.Errorf("canvasPoint(79,24) = %v", p)
	}
	if g.contains(80, 0) || g.contains(0, -1) || !g.contains(79, 24) {
		t.Error("contains disagrees with the grid size")
	}
	if z := newCellGeometry(640, 400, 0, 0); z.cols != 1 || z.rows != 1 {
		t.Errorf("empty terminal gave %dx%d cells", z.cols, z.rows)
	}
}

func TestSampleBlendsOverlay(t *testing.T) {
	committed := image.NewRGBA(image.Rect(0, 0, 2, 1))
	committed.Set(0, 0, color.White)
	committed.Set(1, 0, color.White)
	overlay := image.NewRGBA(image.Rect(0, 0, 2, 1))
	overlay.Set(1, 0, color.RGBA{R: 255, A: 255})

	if got := sample(committed, overlay, 0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("transparent overlay gave %v", got)
	}
	if got := sample(committed, overlay, 1, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("opaque overlay gave %v", got)
	}
	if got := sample(committed, nil, 1, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("no overlay gave %v", got)
	}
}

func TestRenderCanvasRows(t *testing.T) {
	main := newRasterSurface(64, 40, color.White)
	overlay := newRasterSurface(64, 40, nil)
	g := newCellGeometry(64, 40, 16, 5)

	lines := renderCanvas(main.Image(), overlay.Image(), g, 3, 2, true)
	if len(lines) != 5 {
		t.Fatalf("got %d rows, want 5", len(lines))
	}
	if !strings.Contains(lines[0], "▀") {
		t.Error("rows are not drawn with half blocks")
	}
	if !strings.Contains(lines[2], "+") || strings.Contains(lines[1], "+") {
		t.Error("cursor not on row 2 only")
	}
}

func TestSVGSurfaceFullCircle(t *testing.T) {
	s := newSVGSurface(10, 10)
	s.SetFillColor(Color{R: 255, A: 0.5})
	s.BeginPath()
	s.Arc(5, 5, 2, 0, 2*math.Pi)
	s.Fill()
	s.BeginPath()
	s.Stroke()

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if n := strings.Count(out, "<path"); n != 1 {
		t.Errorf("got %d paths, want 1 (empty paths are skipped)", n)
	}
	if !strings.Contains(out, `d="M7 5 A2 2 0 0 1 3 5 A2 2 0 0 1 7 5"`) {
		t.Errorf("full circle not split in two arcs:\n%s", out)
	}
	if !strings.Contains(out, `fill="#ff0000" fill-opacity="0.5"`) {
		t.Errorf("fill attributes missing:\n%s", out)
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{2: "2", 1.5: "1.5", 0.125: "0.125", 3.14159: "3.142", -4.25: "-4.25"}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%g) = %q, want %q", in, got, want)
		}
	}
}
