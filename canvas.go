package main

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellGeometry maps terminal cells onto the canvas. Each cell shows two
// vertically stacked samples using the upper half block.
type cellGeometry struct {
	cols, rows int
	sx, sy     float64
}

func newCellGeometry(canvasW, canvasH, cols, rows int) cellGeometry {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cellGeometry{
		cols: cols,
		rows: rows,
		sx:   float64(canvasW) / float64(cols),
		sy:   float64(canvasH) / float64(rows*2),
	}
}

// canvasPoint is the canvas position under the centre of a cell.
func (g cellGeometry) canvasPoint(cx, cy int) Point {
	return Point{(float64(cx) + 0.5) * g.sx, (float64(cy) + 0.5) * 2 * g.sy}
}

func (g cellGeometry) contains(cx, cy int) bool {
	return cx >= 0 && cy >= 0 && cx < g.cols && cy < g.rows
}

// renderCanvas composites the overlay over the committed image and returns
// one styled string per terminal row.
func renderCanvas(committed, overlay image.Image, g cellGeometry, cursorX, cursorY int, showCursor bool) []string {
	lines := make([]string, g.rows)
	styles := map[[2]string]lipgloss.Style{}
	for cy := 0; cy < g.rows; cy++ {
		var b strings.Builder
		for cx := 0; cx < g.cols; cx++ {
			x := int((float64(cx) + 0.5) * g.sx)
			top := sample(committed, overlay, x, int((float64(2*cy)+0.5)*g.sy))
			bottom := sample(committed, overlay, x, int((float64(2*cy+1)+0.5)*g.sy))
			if showCursor && cx == cursorX && cy == cursorY {
				b.WriteString(cursorStyle.Render("+"))
				continue
			}
			key := [2]string{hexColor(top), hexColor(bottom)}
			st, ok := styles[key]
			if !ok {
				st = lipgloss.NewStyle().Foreground(lipgloss.Color(key[0])).Background(lipgloss.Color(key[1]))
				styles[key] = st
			}
			b.WriteString(st.Render("▀"))
		}
		lines[cy] = b.String()
	}
	return lines
}

// sample blends the overlay pixel over the committed pixel. Both images are
// alpha-premultiplied.
func sample(committed, overlay image.Image, x, y int) color.RGBA {
	cr, cg, cb, _ := committed.At(x, y).RGBA()
	if overlay == nil {
		return color.RGBA{uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8), 255}
	}
	or, og, ob, oa := overlay.At(x, y).RGBA()
	inv := 0xffff - oa
	blend := func(o, c uint32) uint8 {
		return uint8((o + c*inv/0xffff) >> 8)
	}
	return color.RGBA{blend(or, cr), blend(og, cg), blend(ob, cb), 255}
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var (
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0066")).Background(lipgloss.Color("#ffffff")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#eeeeee")).Background(lipgloss.Color("#333344"))
	toolStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#111111")).Background(lipgloss.Color("#ffcc44")).Bold(true).Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#55dd77"))
	helpStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#8888aa")).Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc44")).Bold(true)
)
