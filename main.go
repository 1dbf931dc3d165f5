package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	logger := DiscardLogger()
	if os.Getenv("KALEIDO_DEBUG") != "" {
		f, err := tea.LogToFile("kaleido.log", "kaleido")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logger = NewLogger(f, LevelDebug, "kaleido")
	}

	m := initialModel(loadConfig(), logger)
	if m.gallery != nil {
		defer m.gallery.Close()
	}
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(cfg *Config, logger *Logger) *model {
	committed := newRasterSurface(cfg.CanvasWidth, cfg.CanvasHeight, color.White)
	overlay := newRasterSurface(cfg.CanvasWidth, cfg.CanvasHeight, nil)
	m := &model{
		config:  cfg,
		log:     logger.WithPrefix("ui"),
		main:    committed,
		overlay: overlay,
		mode:    ModeDraw,
	}
	m.editor = NewEditor(EditorOptions{
		Width:    cfg.CanvasWidth,
		Height:   cfg.CanvasHeight,
		Main:     committed,
		Overlay:  overlay,
		Settings: cfg.Settings(),
		Log:      logger,
	})

	gallery, err := OpenGallery(context.Background(), cfg.GalleryPath)
	if err != nil {
		m.log.Warn("gallery unavailable: %v", err)
	} else {
		m.gallery = gallery
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "esc", "q", "?":
				m.help = false
			}
			return m, nil
		}
		switch m.mode {
		case ModeFileInput:
			return m.updateFileInput(msg)
		case ModeGallery:
			return m.updateGallery(msg)
		default:
			return m.updateDraw(msg)
		}

	case tea.MouseMsg:
		if m.mode == ModeDraw && !m.help {
			m.handleMouse(msg)
		}
		return m, nil
	}
	return m, nil
}

func (m *model) updateDraw(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.errorMessage = ""
	if m.moveCursor(key) {
		return m, nil
	}
	if name, ok := toolKeys[key]; ok {
		m.releaseKeyPointer()
		if err := m.editor.SelectTool(name); err != nil {
			m.errorMessage = err.Error()
		}
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		m.releaseKeyPointer()
		return m, tea.Quit
	case "?":
		m.help = true
	case " ":
		m.toggleKeyPointer()
	case "u":
		if !m.editor.Undo() {
			m.successMessage = "Nothing to undo"
		}
	case "U", "ctrl+r":
		if !m.editor.Redo() {
			m.successMessage = "Nothing to redo"
		}
	case "n":
		m.editor.Reset()
		m.successMessage = "New drawing"
	case "g", "G":
		m.cycleGroup(key == "g")
	case "[", "]":
		m.adjustWidth(key == "]")
	case "c":
		m.strokeIndex = (m.strokeIndex + 1) % len(palette)
		m.applyIntent(ColorIntent(TargetStroke, palette[m.strokeIndex]))
	case "C":
		m.fillIndex = (m.fillIndex + 1) % len(palette)
		fill := palette[m.fillIndex]
		fill.A = 0.5
		m.applyIntent(ColorIntent(TargetFill, fill))
	case "s":
		m.startFileInput(FileOpSave, "drawing.json")
	case "S":
		m.startFileInput(FileOpSavePNG, "drawing.png")
	case "V":
		m.startFileInput(FileOpSaveSVG, "drawing.svg")
	case "o":
		m.startFileInput(FileOpOpen, "drawing.json")
	case "y":
		m.yank()
	case "P":
		m.paste()
	case "w":
		m.saveToGallery()
	case "O":
		m.openGallery()
	default:
		m.editor.KeyDown(key)
	}
	return m, nil
}

func (m *model) cycleGroup(forward bool) {
	names := GroupNames()
	current := m.editor.Context().Snapshot().Group
	idx := 0
	for i, n := range names {
		if n == current {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(names)
	} else {
		idx = (idx + len(names) - 1) % len(names)
	}
	m.applyIntent(m.editor.SymmetryIntent(names[idx]))
}

func (m *model) adjustWidth(wider bool) {
	w := m.editor.Context().Snapshot().Style.Width
	if wider {
		w++
	} else if w > 1 {
		w--
	}
	m.applyIntent(WidthIntent(w))
}

func (m *model) applyIntent(in Intent) {
	if err := m.editor.Apply(in); err != nil {
		m.errorMessage = err.Error()
	}
}

func (m *model) startFileInput(op FileOperation, name string) {
	m.releaseKeyPointer()
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = name
	m.errorMessage = ""
	m.successMessage = ""
}

func (m *model) updateFileInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeDraw
		m.filename = ""
		return m, nil
	case tea.KeyEnter:
		m.finishFileInput()
		return m, nil
	case tea.KeyBackspace:
		if len(m.filename) > 0 {
			m.filename = m.filename[:len(m.filename)-1]
		}
		return m, nil
	case tea.KeySpace:
		m.filename += " "
	case tea.KeyRunes:
		m.filename += string(msg.Runes)
	}
	return m, nil
}

func (m *model) finishFileInput() {
	name := strings.TrimSpace(m.filename)
	m.mode = ModeDraw
	m.filename = ""
	if name == "" {
		m.errorMessage = "No filename given"
		return
	}
	path := m.config.GetSavePath(name)

	var err error
	done := "Exported "
	switch m.fileOp {
	case FileOpSave:
		err = m.editor.SaveDocument(path)
		done = "Saved "
	case FileOpSavePNG:
		err = m.editor.ExportRaster(path)
	case FileOpSaveSVG:
		err = m.editor.ExportVector(path)
	case FileOpOpen:
		err = m.editor.LoadDocument(path)
		done = "Opened "
	}
	if err != nil {
		m.errorMessage = err.Error()
		m.log.Warn("file %s: %v", path, err)
		return
	}
	m.successMessage = done + path
}

func (m *model) saveToGallery() {
	if m.gallery == nil {
		m.errorMessage = "Gallery unavailable"
		return
	}
	if !m.editor.Stack().CanUndo() {
		m.errorMessage = ErrNothingToExport.Error()
		return
	}
	name := fmt.Sprintf("%s %s", m.editor.Context().Snapshot().Group, time.Now().Format("2006-01-02 15:04:05"))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := m.gallery.Save(ctx, name, m.editor.Stack().Document()); err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.successMessage = "Saved to gallery: " + name
}

func (m *model) openGallery() {
	if m.gallery == nil {
		m.errorMessage = "Gallery unavailable"
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	entries, err := m.gallery.List(ctx)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	if len(entries) == 0 {
		m.successMessage = "Gallery is empty"
		return
	}
	m.releaseKeyPointer()
	m.entries = entries
	m.selectedEntry = 0
	m.mode = ModeGallery
}

func (m *model) updateGallery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch msg.String() {
	case "esc", "q":
		m.mode = ModeDraw
	case "j", "down":
		if m.selectedEntry < len(m.entries)-1 {
			m.selectedEntry++
		}
	case "k", "up":
		if m.selectedEntry > 0 {
			m.selectedEntry--
		}
	case "enter":
		entry := m.entries[m.selectedEntry]
		doc, err := m.gallery.Load(ctx, entry.ID)
		if err == nil {
			var ops []Operation
			ops, err = DecodeDocument(doc)
			if err == nil {
				m.editor.Load(ops)
			}
		}
		m.mode = ModeDraw
		if err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.successMessage = "Loaded " + entry.Name
	case "x", "delete":
		entry := m.entries[m.selectedEntry]
		if err := m.gallery.Delete(ctx, entry.ID); err != nil && !errors.Is(err, ErrNotFound) {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.entries = append(m.entries[:m.selectedEntry], m.entries[m.selectedEntry+1:]...)
		if m.selectedEntry >= len(m.entries) {
			m.selectedEntry = len(m.entries) - 1
		}
		if len(m.entries) == 0 {
			m.mode = ModeDraw
		}
	}
	return m, nil
}

func (m *model) View() string {
	if m.help {
		return m.helpView()
	}
	if m.mode == ModeGallery {
		return m.galleryView()
	}

	g := m.geometry()
	lines := renderCanvas(m.main.Image(), m.overlay.Image(), g, m.cursorX, m.cursorY, m.showCursor)
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(m.statusLine())
	return b.String()
}

func (m *model) statusLine() string {
	if m.mode == ModeFileInput {
		return statusStyle.Render(fmt.Sprintf(" %s: %s_ ", m.fileOpLabel(), m.filename))
	}
	st := m.editor.Context().Snapshot()
	stack := m.editor.Stack()
	info := fmt.Sprintf(" %s  %s  w%.0f  ops %d  %s ",
		m.editor.ToolState(), st.Group, st.Style.Width, stack.Len()-stack.Boundary(), st.Stroke.Hex())
	status := lipgloss.JoinHorizontal(lipgloss.Top, toolStyle.Render(m.editor.CurrentTool()), statusStyle.Render(info))
	switch {
	case m.errorMessage != "":
		status += " " + errorStyle.Render(m.errorMessage)
	case m.successMessage != "":
		status += " " + successStyle.Render(m.successMessage)
	default:
		status += " " + statusStyle.Render("? help")
	}
	return status
}

func (m *model) fileOpLabel() string {
	switch m.fileOp {
	case FileOpSavePNG:
		return "Export PNG"
	case FileOpSaveSVG:
		return "Export SVG"
	case FileOpOpen:
		return "Open"
	default:
		return "Save"
	}
}

func (m *model) galleryView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Gallery"))
	b.WriteString("\n\n")
	for i, e := range m.entries {
		line := fmt.Sprintf("%-32s %4d ops  %s", e.Name, e.Ops, e.CreatedAt.Local().Format("Jan 2 15:04"))
		if i == m.selectedEntry {
			b.WriteString(toolStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteByte('\n')
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(" enter load  x delete  esc back "))
	if m.errorMessage != "" {
		b.WriteString(" " + errorStyle.Render(m.errorMessage))
	}
	return b.String()
}

func (m *model) helpView() string {
	helpLines := []string{
		titleStyle.Render("Kaleido Help"),
		"",
		"Pointer:",
		"  mouse            Draw with the active tool",
		"  h/j/k/l, arrows  Move the crosshair (shift moves faster)",
		"  space            Press / release the crosshair pointer",
		"  shift+click      Finish the current shape and start a new one",
		"",
		"Tools:",
		"  1 line  2 circle  3 polygon  4 bezier  5 pencil  6 grid",
		"  enter            Finish polygon / bezier",
		"  esc              Cancel the shape in progress",
		"  d                Remove the last polygon / bezier point",
		"",
		"Drawing:",
		"  g / G            Next / previous symmetry group",
		"  [ / ]            Thinner / thicker lines",
		"  c / C            Cycle stroke / fill colour",
		"  u / U            Undo / redo",
		"  n                New drawing",
		"",
		"Files:",
		"  s                Save drawing (JSON)",
		"  o                Open drawing (JSON)",
		"  S / V            Export PNG / SVG",
		"  y / P            Copy / paste drawing via clipboard",
		"  w / O            Save to / browse the gallery",
		"",
		"  q                Quit",
	}
	return helpStyle.Render(strings.Join(helpLines, "\n"))
}
