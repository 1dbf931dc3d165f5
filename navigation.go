package main

import tea "github.com/charmbracelet/bubbletea"

// geometry lays the canvas over every row except the status line.
func (m *model) geometry() cellGeometry {
	cols, rows := m.width, m.height-1
	w, h := m.editor.Context().Size()
	return newCellGeometry(w, h, cols, rows)
}

func (m *model) ensureCursorInBounds() {
	w, h := m.editor.Context().Size()
	m.pointer.X = clamp(m.pointer.X, 0, float64(w-1))
	m.pointer.Y = clamp(m.pointer.Y, 0, float64(h-1))
	m.syncCursorCell()
}

func (m *model) syncCursorCell() {
	g := m.geometry()
	m.cursorX = int(m.pointer.X / g.sx)
	m.cursorY = int(m.pointer.Y / (2 * g.sy))
}

// moveCursor handles the crosshair keys and reports whether key was one.
func (m *model) moveCursor(key string) bool {
	step := keyboardStep
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		step = keyboardStepFast
	}
	switch key {
	case "h", "left", "H", "shift+left":
		m.pointer.X -= step
	case "l", "right", "L", "shift+right":
		m.pointer.X += step
	case "k", "up", "K", "shift+up":
		m.pointer.Y -= step
	case "j", "down", "J", "shift+down":
		m.pointer.Y += step
	default:
		return false
	}
	m.showCursor = true
	m.ensureCursorInBounds()
	m.editor.PointerMove(PointerEvent{Pos: m.pointer})
	return true
}

// toggleKeyPointer presses or releases the crosshair like a mouse button.
func (m *model) toggleKeyPointer() {
	m.showCursor = true
	ev := PointerEvent{Pos: m.pointer}
	if m.keyPointerDown {
		m.keyPointerDown = false
		m.editor.PointerUp(ev)
		return
	}
	m.keyPointerDown = true
	m.editor.PointerDown(ev)
}

func (m *model) releaseKeyPointer() {
	if m.keyPointerDown {
		m.keyPointerDown = false
		m.editor.PointerUp(PointerEvent{Pos: m.pointer})
	}
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	g := m.geometry()
	if !g.contains(msg.X, msg.Y) {
		if m.mouseInside {
			m.mouseInside = false
			m.mouseDown = false
			m.editor.PointerLeave(PointerEvent{Pos: m.pointer, Shift: msg.Shift})
		}
		return
	}
	m.mouseInside = true
	m.showCursor = false
	m.pointer = g.canvasPoint(msg.X, msg.Y)
	m.cursorX, m.cursorY = msg.X, msg.Y
	ev := PointerEvent{Pos: m.pointer, Shift: msg.Shift}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.mouseDown = true
		m.editor.PointerDown(ev)
	case tea.MouseActionRelease:
		if m.mouseDown {
			m.mouseDown = false
			m.editor.PointerUp(ev)
		}
	case tea.MouseActionMotion:
		m.editor.PointerMove(ev)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
