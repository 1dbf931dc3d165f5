package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig("/home/ada")
	if cfg.HitRadius != 10 || cfg.FrameSkip != 3 || cfg.Group != "p6m" || cfg.Spacing != 120 {
		t.Errorf("defaults = %+v", cfg)
	}
	if want := filepath.Join("/home/ada", ".kaleido", "gallery.db"); cfg.GalleryPath != want {
		t.Errorf("GalleryPath = %q, want %q", cfg.GalleryPath, want)
	}
}

func TestParseConfig(t *testing.T) {
	rc := `
# kaleido settings
SaveDir = ~/art
canvas_width=800
height = 500
hit_radius = 6.5
frameskip = 2
symmetry = p4m
spacing = 80
gallery = /tmp/g.db
`
	cfg := defaultConfig("/home/ada")
	cfg.parse(strings.NewReader(rc), "/home/ada")

	if cfg.SaveDirectory != filepath.Join("/home/ada", "art") {
		t.Errorf("SaveDirectory = %q", cfg.SaveDirectory)
	}
	if cfg.CanvasWidth != 800 || cfg.CanvasHeight != 500 {
		t.Errorf("canvas = %dx%d", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.HitRadius != 6.5 || cfg.FrameSkip != 2 {
		t.Errorf("tuning = %g / %d", cfg.HitRadius, cfg.FrameSkip)
	}
	if cfg.Group != "p4m" || cfg.Spacing != 80 {
		t.Errorf("symmetry = %q / %g", cfg.Group, cfg.Spacing)
	}
	if cfg.GalleryPath != "/tmp/g.db" {
		t.Errorf("GalleryPath = %q", cfg.GalleryPath)
	}
}

func TestParseConfigIgnoresBadValues(t *testing.T) {
	rc := `
width = wide
frameskip = 0
hitradius = -3
group = p5
spacing = 2
nonsense
colour = red
`
	cfg := defaultConfig("/home/ada")
	cfg.parse(strings.NewReader(rc), "/home/ada")

	want := defaultConfig("/home/ada")
	if *cfg != *want {
		t.Errorf("config = %+v, want defaults %+v", cfg, want)
	}
}

func TestConfigSettings(t *testing.T) {
	cfg := defaultConfig("/home/ada")
	cfg.CanvasWidth, cfg.CanvasHeight = 800, 600
	cfg.HitRadius, cfg.FrameSkip = 4, 5
	cfg.Group, cfg.Spacing = "p3", 64

	s := cfg.Settings()
	if s.HitRadius != 4 || s.FrameSkip != 5 {
		t.Errorf("tuning = %+v", s)
	}
	want := Lattice{X: 400, Y: 300, Spacing: 64}
	if s.Bootstrap.Group != "p3" || s.Bootstrap.Lattice != want {
		t.Errorf("bootstrap symmetry = %q %+v", s.Bootstrap.Group, s.Bootstrap.Lattice)
	}
	if ops := s.BootstrapOps(); len(ops) != bootstrapOps {
		t.Errorf("BootstrapOps() has %d ops", len(ops))
	}
}

func TestGetSavePath(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{}
	if got := cfg.GetSavePath("a.json"); got != "a.json" {
		t.Errorf("no save dir: %q", got)
	}
	cfg.SaveDirectory = filepath.Join(dir, "out")
	if got := cfg.GetSavePath("a.json"); got != filepath.Join(dir, "out", "a.json") {
		t.Errorf("with save dir: %q", got)
	}
}
