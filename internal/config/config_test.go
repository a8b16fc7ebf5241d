package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"image-lightbox/internal/core"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Gallery.Dir != "." {
		t.Errorf("expected default gallery dir %q, got %q", ".", cfg.Gallery.Dir)
	}
	if cfg.Gallery.Pattern != DefaultPattern {
		t.Errorf("expected default pattern %q, got %q", DefaultPattern, cfg.Gallery.Pattern)
	}
	if cfg.Zoom.Background != "#ffffff" {
		t.Errorf("expected white background, got %q", cfg.Zoom.Background)
	}
	if cfg.Zoom.ScrollOffset != 48 {
		t.Errorf("expected scroll offset 48, got %v", cfg.Zoom.ScrollOffset)
	}
	if cfg.Zoom.DurationMs != 300 {
		t.Errorf("expected duration 300ms, got %d", cfg.Zoom.DurationMs)
	}
	if len(cfg.Gallery.Variants) != 3 {
		t.Errorf("expected three variant widths, got %v", cfg.Gallery.Variants)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lightbox.yml")

	original := DefaultConfig()
	original.Gallery.Dir = "/photos"
	original.Gallery.CellWidth = 300
	original.Gallery.Variants = []int{400, 800}
	original.Zoom.Margin = 24
	original.Zoom.Background = "#1a2b3c"
	original.Debug = true

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Gallery.Dir != original.Gallery.Dir {
		t.Errorf("gallery.dir: got %q, want %q", loaded.Gallery.Dir, original.Gallery.Dir)
	}
	if loaded.Gallery.CellWidth != original.Gallery.CellWidth {
		t.Errorf("gallery.cell_width: got %v, want %v", loaded.Gallery.CellWidth, original.Gallery.CellWidth)
	}
	if len(loaded.Gallery.Variants) != 2 || loaded.Gallery.Variants[0] != 400 {
		t.Errorf("gallery.variants: got %v, want %v", loaded.Gallery.Variants, original.Gallery.Variants)
	}
	if loaded.Zoom.Margin != original.Zoom.Margin {
		t.Errorf("zoom.margin: got %v, want %v", loaded.Zoom.Margin, original.Zoom.Margin)
	}
	if loaded.Zoom.Background != original.Zoom.Background {
		t.Errorf("zoom.background: got %q, want %q", loaded.Zoom.Background, original.Zoom.Background)
	}
	if !loaded.Debug {
		t.Error("debug flag should round-trip")
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Zoom.ScrollOffset != 48 {
		t.Errorf("expected default scroll offset, got %v", cfg.Zoom.ScrollOffset)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lightbox.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	os.Setenv("LIGHTBOX_ZOOM_MARGIN", "24")
	os.Setenv("LIGHTBOX_GALLERY_DIR", "/mnt/photos")
	os.Setenv("LIGHTBOX_DEBUG", "true")
	defer func() {
		os.Unsetenv("LIGHTBOX_ZOOM_MARGIN")
		os.Unsetenv("LIGHTBOX_GALLERY_DIR")
		os.Unsetenv("LIGHTBOX_DEBUG")
	}()

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Zoom.Margin != 24 {
		t.Errorf("env override failed: got %v, want 24", loaded.Zoom.Margin)
	}
	if loaded.Gallery.Dir != "/mnt/photos" {
		t.Errorf("env override failed: got %q, want %q", loaded.Gallery.Dir, "/mnt/photos")
	}
	if !loaded.Debug {
		t.Error("env override failed for debug flag")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty gallery dir", func(c *Config) { c.Gallery.Dir = "" }},
		{"empty pattern", func(c *Config) { c.Gallery.Pattern = "" }},
		{"malformed pattern", func(c *Config) { c.Gallery.Pattern = "photos/[" }},
		{"zero cell width", func(c *Config) { c.Gallery.CellWidth = 0 }},
		{"quality above range", func(c *Config) { c.Gallery.Quality = 150 }},
		{"zero quality", func(c *Config) { c.Gallery.Quality = 0 }},
		{"negative variant width", func(c *Config) { c.Gallery.Variants = []int{300, -600} }},
		{"negative margin", func(c *Config) { c.Zoom.Margin = -1 }},
		{"negative scroll offset", func(c *Config) { c.Zoom.ScrollOffset = -5 }},
		{"negative duration", func(c *Config) { c.Zoom.DurationMs = -100 }},
		{"bad background", func(c *Config) { c.Zoom.Background = "white" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#1a2b3c", color.NRGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 0xff}},
		{"#11223344", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
		{"  #000000  ", color.NRGBA{A: 0xff}},
	}
	for _, tc := range cases {
		got, err := ParseHexColor(tc.in)
		if err != nil {
			t.Errorf("ParseHexColor(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseHexColor(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"", "red", "#12345", "#zzzzzz", "#ffff"} {
		if _, err := ParseHexColor(in); err == nil {
			t.Errorf("ParseHexColor(%q) should fail", in)
		}
	}
}

func TestZoomOptions(t *testing.T) {
	zc := ZoomConfig{
		Margin:       12,
		Background:   "#000000",
		ScrollOffset: 80,
		DurationMs:   150,
	}

	opts, err := zc.Options()
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}

	applied := core.DefaultOptions().Apply(opts...)
	if applied.Margin != 12 {
		t.Errorf("margin: got %v, want 12", applied.Margin)
	}
	if applied.Background != (color.NRGBA{A: 0xff}) {
		t.Errorf("background: got %+v", applied.Background)
	}
	if applied.ScrollOffset != 80 {
		t.Errorf("scroll offset: got %v, want 80", applied.ScrollOffset)
	}
	if applied.Duration != 150*time.Millisecond {
		t.Errorf("duration: got %v, want 150ms", applied.Duration)
	}

	if _, err := (ZoomConfig{Background: "nope"}).Options(); err == nil {
		t.Error("bad background should fail")
	}
}
