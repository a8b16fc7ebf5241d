package config

// DefaultPattern matches the decodable raster formats under the gallery dir.
const DefaultPattern = "**/*.{jpg,jpeg,png,webp,bmp,tif,tiff}"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Gallery: GalleryConfig{
			Dir:        ".",
			Pattern:    DefaultPattern,
			CellWidth:  220,
			CellHeight: 160,
			Variants:   []int{300, 600, 1200},
			Quality:    85,
		},
		Zoom: ZoomConfig{
			Margin:       0,
			Background:   "#ffffff",
			ScrollOffset: 48,
			DurationMs:   300,
		},
	}
}
