// Image loading backed by OpenCV
package io

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// LoadedImage is a decoded image together with its intrinsic dimensions.
type LoadedImage struct {
	Path   string
	Image  image.Image
	Width  int
	Height int
	Format string
}

// Result delivers the outcome of an asynchronous load.
type Result struct {
	Loaded *LoadedImage
	Err    error
}

// ImageLoader handles image file operations
type ImageLoader struct {
	logger *logrus.Logger
}

func NewImageLoader(logger *logrus.Logger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// LoadImage decodes the file at path and returns the image with its natural
// dimensions.
func (il *ImageLoader) LoadImage(path string) (*LoadedImage, error) {
	il.logger.WithField("filepath", path).Debug("Loading image")

	if !il.isSupportedImageFormat(path) {
		return nil, fmt.Errorf("unsupported image format: %s", path)
	}

	// Load image using OpenCV
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		return nil, fmt.Errorf("failed to load image: %s", path)
	}
	defer mat.Close()

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert image %s: %w", path, err)
	}

	loaded := &LoadedImage{
		Path:   path,
		Image:  img,
		Width:  mat.Cols(),
		Height: mat.Rows(),
		Format: strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    loaded.Width,
		"height":   loaded.Height,
	}).Info("Image loaded successfully")

	return loaded, nil
}

// LoadAsync decodes the file in the background and delivers exactly one
// Result on the returned channel when the load completes.
func (il *ImageLoader) LoadAsync(path string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		loaded, err := il.LoadImage(path)
		ch <- Result{Loaded: loaded, Err: err}
		close(ch)
	}()
	return ch
}

// ValidateImageFile checks that path names a readable file with a supported
// extension. It does not decode the file.
func (il *ImageLoader) ValidateImageFile(path string) error {
	if !il.isSupportedImageFormat(path) {
		return fmt.Errorf("unsupported image format: %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("inaccessible image file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("not an image file: %s", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("empty image file: %s", path)
	}
	return nil
}

func (il *ImageLoader) isSupportedImageFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedExtensions() {
		if ext == format {
			return true
		}
	}
	return false
}

// SupportedExtensions lists the file extensions the loader accepts.
func SupportedExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".webp", ".tiff", ".tif", ".bmp"}
}
