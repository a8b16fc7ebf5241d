// Responsive variant generation for gallery images
package io

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// DefaultVariantWidths are the widths generated when none are configured.
var DefaultVariantWidths = []int{300, 600, 1200}

// DefaultVariantQuality is the webp encode quality.
const DefaultVariantQuality = 85

// VariantGenerator produces downscaled webp variants of a decoded image so a
// gallery can offer width-annotated sources.
type VariantGenerator struct {
	logger  *logrus.Logger
	outDir  string
	widths  []int
	quality float32
}

func NewVariantGenerator(logger *logrus.Logger, outDir string, widths []int, quality float32) *VariantGenerator {
	if len(widths) == 0 {
		widths = DefaultVariantWidths
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultVariantQuality
	}
	return &VariantGenerator{
		logger:  logger,
		outDir:  outDir,
		widths:  widths,
		quality: quality,
	}
}

// Generate writes one webp file per configured width that does not exceed the
// source width and returns the resulting source set. Widths that fail to
// encode are logged and skipped. File names share a ULID so one gallery
// entry's variants sort together.
func (g *VariantGenerator) Generate(src image.Image, name string) (Sources, error) {
	if src == nil {
		return nil, fmt.Errorf("cannot generate variants of a nil image")
	}

	fileID := ulid.Make().String()
	srcWidth := src.Bounds().Dx()

	var sources Sources
	for _, width := range g.widths {
		if width <= 0 || width > srcWidth {
			continue
		}

		resized := imaging.Resize(src, width, 0, imaging.Lanczos)
		path := filepath.Join(g.outDir, fmt.Sprintf("%s_%dw.webp", fileID, width))
		if err := webp.Save(path, resized, &webp.Options{Quality: g.quality}); err != nil {
			g.logger.WithError(err).WithFields(logrus.Fields{
				"name":  name,
				"width": width,
			}).Warn("Skipping variant that failed to encode")
			continue
		}

		sources = append(sources, Source{Path: path, Width: width})
	}

	g.logger.WithFields(logrus.Fields{
		"name":     name,
		"variants": len(sources),
		"fileID":   fileID,
	}).Info("Generated image variants")

	return sources, nil
}

// Thumbnail downscales an image to the given width preserving aspect ratio.
func Thumbnail(src image.Image, width int) image.Image {
	return imaging.Resize(src, width, 0, imaging.Lanczos)
}
