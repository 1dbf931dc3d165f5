package main

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

var ErrNothingToExport = errors.New("nothing to export")

// ExportRaster replays the drawing onto a fresh white image, captions it
// with the symmetry in use and writes it as PNG.
func (ed *Editor) ExportRaster(filename string) error {
	if !ed.stack.CanUndo() {
		return ErrNothingToExport
	}
	w, h := ed.ctx.Size()
	surface := newRasterSurface(w, h, color.White)
	ed.stack.Replay(surface)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    10,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc := surface.Context()
	dc.SetFontFace(face)
	dc.SetColor(color.Gray{Y: 90})
	dc.DrawStringAnchored(ed.caption(), float64(w)-6, float64(h)-6, 1, 0)

	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	ed.log.Info("exported raster %s", filename)
	return nil
}

// ExportVector replays the drawing into an SVG document.
func (ed *Editor) ExportVector(filename string) error {
	if !ed.stack.CanUndo() {
		return ErrNothingToExport
	}
	w, h := ed.ctx.Size()
	surface := newSVGSurface(w, h)
	ed.stack.Replay(surface)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := surface.WriteTo(file); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	ed.log.Info("exported vector %s", filename)
	return nil
}

func (ed *Editor) caption() string {
	st := ed.ctx.Snapshot()
	return fmt.Sprintf("%s  spacing %.0f  rotation %.0f°", st.Group, st.Lattice.Spacing, st.Lattice.Rotation*180/math.Pi)
}

// SaveDocument writes the encoded history as JSON.
func (ed *Editor) SaveDocument(filename string) error {
	data, err := MarshalDocument(ed.stack.Document())
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return err
	}
	ed.log.Info("saved %s", filename)
	return nil
}

// LoadDocument reads a saved history. The current drawing is untouched if
// any operation fails to decode.
func (ed *Editor) LoadDocument(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return ed.loadBytes(data)
}

func (ed *Editor) loadBytes(data []byte) error {
	doc, err := UnmarshalDocument(data)
	if err != nil {
		return err
	}
	ops, err := DecodeDocument(doc)
	if err != nil {
		ed.log.Warn("load rejected: %v", err)
		return err
	}
	ed.Load(ops)
	return nil
}
