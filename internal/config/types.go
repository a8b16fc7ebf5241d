package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"image-lightbox/internal/core"
)

// Config is the top-level application configuration, corresponding to
// lightbox.yml.
type Config struct {
	Gallery GalleryConfig `yaml:"gallery" koanf:"gallery"`
	Zoom    ZoomConfig    `yaml:"zoom" koanf:"zoom"`
	Debug   bool          `yaml:"debug" koanf:"debug"`
}

// GalleryConfig controls what the gallery scans and how it renders cells.
type GalleryConfig struct {
	// Dir is the directory scanned for images.
	Dir string `yaml:"dir" koanf:"dir"`

	// Pattern is the doublestar glob matched against files under Dir.
	Pattern string `yaml:"pattern" koanf:"pattern"`

	// CellWidth and CellHeight size the gallery grid cells.
	CellWidth  float32 `yaml:"cell_width" koanf:"cell_width"`
	CellHeight float32 `yaml:"cell_height" koanf:"cell_height"`

	// Variants are the widths generated for each image's source set.
	Variants []int `yaml:"variants" koanf:"variants"`

	// Quality is the WebP encoding quality for generated variants.
	Quality float32 `yaml:"quality" koanf:"quality"`

	// VariantDir receives generated variants; empty means a per-run
	// directory under the system temp dir.
	VariantDir string `yaml:"variant_dir" koanf:"variant_dir"`
}

// ZoomConfig carries the zoom options in file-friendly form.
type ZoomConfig struct {
	Margin       float64 `yaml:"margin" koanf:"margin"`
	Background   string  `yaml:"background" koanf:"background"`
	ScrollOffset float64 `yaml:"scroll_offset" koanf:"scroll_offset"`
	DurationMs   int     `yaml:"duration_ms" koanf:"duration_ms"`
}

// Options converts the section into zoom option overrides.
func (c ZoomConfig) Options() ([]core.Option, error) {
	bg, err := ParseHexColor(c.Background)
	if err != nil {
		return nil, fmt.Errorf("zoom.background: %w", err)
	}
	return []core.Option{
		core.WithMargin(c.Margin),
		core.WithBackground(bg),
		core.WithScrollOffset(c.ScrollOffset),
		core.WithDuration(time.Duration(c.DurationMs) * time.Millisecond),
	}, nil
}

// ParseHexColor reads "#rgb", "#rrggbb" and "#rrggbbaa" notations.
func ParseHexColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(hex) {
	case 3:
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	case 6, 8:
	default:
		return nil, fmt.Errorf("invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid hex color %q", s)
	}

	c := color.NRGBA{A: 0xff}
	if len(hex) == 8 {
		c.A = uint8(v)
		v >>= 8
	}
	c.B = uint8(v)
	c.G = uint8(v >> 8)
	c.R = uint8(v >> 16)
	return c, nil
}
