package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	SaveDirectory string
	CanvasWidth   int
	CanvasHeight  int
	HitRadius     float64
	FrameSkip     int
	Group         string
	Spacing       float64
	GalleryPath   string
}

func defaultConfig(homeDir string) *Config {
	return &Config{
		CanvasWidth:  defaultCanvasW,
		CanvasHeight: defaultCanvasH,
		HitRadius:    defaultHitRadius,
		FrameSkip:    defaultFrameSkip,
		Group:        defaultGroup,
		Spacing:      defaultSpacing,
		GalleryPath:  filepath.Join(homeDir, ".kaleido", "gallery.db"),
	}
}

func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig(".")
	}
	config := defaultConfig(homeDir)

	file, err := os.Open(filepath.Join(homeDir, ".kaleidorc"))
	if err != nil {
		return config
	}
	defer file.Close()

	config.parse(file, homeDir)
	return config
}

// parse reads key=value lines. Unknown keys and bad values are skipped.
func (c *Config) parse(r io.Reader, homeDir string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			c.SaveDirectory = expandPath(value, homeDir)
		case "gallery", "gallerypath", "gallery_path":
			c.GalleryPath = expandPath(value, homeDir)
		case "canvaswidth", "canvas_width", "width":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				c.CanvasWidth = n
			}
		case "canvasheight", "canvas_height", "height":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				c.CanvasHeight = n
			}
		case "hitradius", "hit_radius":
			if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
				c.HitRadius = f
			}
		case "frameskip", "frame_skip":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				c.FrameSkip = n
			}
		case "group", "symmetry":
			if IsKnownGroup(value) {
				c.Group = value
			}
		case "spacing":
			if f, err := strconv.ParseFloat(value, 64); err == nil && f >= minLatticeSpacing {
				c.Spacing = f
			}
		}
	}
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// Settings derives the editor tuning and bootstrap context from the
// config.
func (c *Config) Settings() Settings {
	s := DefaultSettings()
	s.HitRadius = c.HitRadius
	s.FrameSkip = c.FrameSkip
	s.Bootstrap.Group = c.Group
	s.Bootstrap.Lattice = Lattice{
		X:       float64(c.CanvasWidth) / 2,
		Y:       float64(c.CanvasHeight) / 2,
		Spacing: c.Spacing,
	}
	return s
}
