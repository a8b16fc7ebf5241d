package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (LIGHTBOX_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: LIGHTBOX_ZOOM_MARGIN -> zoom.margin,
	// LIGHTBOX_DEBUG -> debug. The first underscore separates the section.
	if err := k.Load(env.Provider("LIGHTBOX_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "LIGHTBOX_")), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Gallery.Dir == "" {
		return fmt.Errorf("gallery.dir is required")
	}
	if c.Gallery.Pattern == "" {
		return fmt.Errorf("gallery.pattern is required")
	}
	if !doublestar.ValidatePattern(c.Gallery.Pattern) {
		return fmt.Errorf("invalid gallery.pattern %q", c.Gallery.Pattern)
	}
	if c.Gallery.CellWidth <= 0 || c.Gallery.CellHeight <= 0 {
		return fmt.Errorf("gallery cell sizes must be positive")
	}
	if c.Gallery.Quality <= 0 || c.Gallery.Quality > 100 {
		return fmt.Errorf("gallery.quality must be in (0, 100]")
	}
	for _, w := range c.Gallery.Variants {
		if w <= 0 {
			return fmt.Errorf("gallery.variants must be positive widths, got %d", w)
		}
	}

	if c.Zoom.Margin < 0 {
		return fmt.Errorf("zoom.margin must be non-negative")
	}
	if c.Zoom.ScrollOffset < 0 {
		return fmt.Errorf("zoom.scroll_offset must be non-negative")
	}
	if c.Zoom.DurationMs < 0 {
		return fmt.Errorf("zoom.duration_ms must be non-negative")
	}
	if _, err := ParseHexColor(c.Zoom.Background); err != nil {
		return fmt.Errorf("zoom.background: %w", err)
	}

	return nil
}
