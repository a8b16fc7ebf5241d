// Gallery application wiring a zoom controller to a scrollable image grid
package gui

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"

	"image-lightbox/internal/config"
	"image-lightbox/internal/core"
	"image-lightbox/internal/io"
)

// Application represents the gallery window with its zoom controllers
type Application struct {
	app    fyne.App
	window fyne.Window
	logger *logrus.Logger
	cfg    *config.Config

	// Core components
	loader   *io.ImageLoader
	variants *io.VariantGenerator

	// Zoom controllers: the default one and an extended presentation one
	zoom  *Zoom
	focus *Zoom

	// GUI components
	menuHandler *MenuHandler

	images       []*Image
	presentation bool

	// Layout containers
	grid       *fyne.Container
	scroll     *container.Scroll
	statusCard *widget.Card
}

func NewApplication(app fyne.App, logger *logrus.Logger, cfg *config.Config) *Application {
	window := app.NewWindow("🖼️ Image Lightbox")
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()

	appInstance := &Application{
		app:    app,
		window: window,
		logger: logger,
		cfg:    cfg,
	}

	appInstance.initializeCore()
	appInstance.initializeGUI()
	appInstance.setupLayout()
	appInstance.setupCallbacks()

	return appInstance
}

func (a *Application) initializeCore() {
	a.loader = io.NewImageLoader(a.logger)

	variantDir := a.cfg.Gallery.VariantDir
	if variantDir == "" {
		variantDir = filepath.Join(os.TempDir(), "lightbox-variants")
	}
	if err := os.MkdirAll(variantDir, 0755); err != nil {
		a.logger.WithError(err).WithField("directory", variantDir).
			Warn("Cannot create variant directory, zoom stays at base resolution")
	}
	a.variants = io.NewVariantGenerator(a.logger, variantDir, a.cfg.Gallery.Variants, a.cfg.Gallery.Quality)
}

func (a *Application) initializeGUI() {
	cell := fyne.NewSize(a.cfg.Gallery.CellWidth, a.cfg.Gallery.CellHeight)
	a.grid = container.NewGridWrap(cell)
	a.scroll = container.NewScroll(a.grid)

	a.statusCard = widget.NewCard("📊 Status", "",
		widget.NewLabel("Choose File → Open Folder… to scan a gallery"))

	a.menuHandler = NewMenuHandler(a.window, a.logger)

	opts, err := a.cfg.Zoom.Options()
	if err != nil {
		a.logger.WithError(err).Warn("Invalid zoom options, falling back to defaults")
		opts = nil
	}
	a.zoom = New(a.window, a.logger, opts...)

	// Presentation mode reuses the configured options on a dark backdrop.
	a.focus = a.zoom.Extend(
		core.WithBackground(color.Black),
		core.WithMargin(48),
	)
}

func (a *Application) setupLayout() {
	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(container.NewBorder(
		nil,          // top
		a.statusCard, // bottom
		nil,          // left
		nil,          // right
		a.scroll,
	))
}

func (a *Application) setupCallbacks() {
	a.zoom.WatchScroll(a.scroll)
	a.focus.WatchScroll(a.scroll)

	a.menuHandler.SetCallbacks(
		// onFolderChosen
		func(dir string) {
			if err := a.LoadGallery(dir); err != nil {
				a.showError("Failed to Load Gallery", err)
			}
		},
		// onImageChosen
		func(path string) {
			if err := a.AddImage(path); err != nil {
				a.showError("Failed to Load Image", err)
			}
		},
		// onPresentation
		a.togglePresentation,
		// onToggleZoom
		func() {
			a.active().Toggle()
		},
		// onBackdrop
		a.setBackdrop,
	)

	for _, z := range []*Zoom{a.zoom, a.focus} {
		z.On(EventOpened, func(e Event) {
			a.updateStatusMessage(fmt.Sprintf("🔍 Viewing %s", e.Image.Name))
		})
		z.On(EventClosed, func(e Event) {
			a.updateStatusMessage(fmt.Sprintf("✅ %d images in the gallery", len(a.images)))
		})
	}
}

// active returns the controller currently owning the gallery images.
func (a *Application) active() *Zoom {
	if a.presentation {
		return a.focus
	}
	return a.zoom
}

func (a *Application) togglePresentation() {
	previous := a.active()
	a.presentation = !a.presentation

	if err := previous.Detach(); err != nil {
		a.logger.WithError(err).Warn("Detach failed while switching modes")
	}
	if err := a.active().Attach(a.images); err != nil {
		a.logger.WithError(err).Warn("Attach failed while switching modes")
	}

	if a.presentation {
		a.updateStatusMessage("🎞️ Presentation mode on")
	} else {
		a.updateStatusMessage(fmt.Sprintf("✅ %d images in the gallery", len(a.images)))
	}
}

// setBackdrop applies a named backdrop preset to the active controller.
func (a *Application) setBackdrop(name string) {
	var c color.Color
	switch name {
	case "light":
		c = color.White
	case "dark":
		c = color.Black
	case "dim":
		c = color.NRGBA{A: 0xd9}
	default:
		return
	}

	a.active().Update(core.WithBackground(c))
	a.updateStatusMessage(fmt.Sprintf("🎨 Backdrop set to %s", name))
}

// LoadGallery scans dir with the configured pattern, rebuilds the grid and
// attaches every image to the active controller.
func (a *Application) LoadGallery(dir string) error {
	matches, err := doublestar.FilepathGlob(filepath.Join(dir, a.cfg.Gallery.Pattern))
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}
	sort.Strings(matches)

	if err := a.active().Detach(); err != nil {
		a.logger.WithError(err).Warn("Detach failed while reloading the gallery")
	}
	a.grid.RemoveAll()
	a.images = nil

	for _, path := range matches {
		if err := a.addGalleryImage(path); err != nil {
			a.logger.WithError(err).WithField("filepath", path).Warn("Skipping unreadable image")
		}
	}
	a.grid.Refresh()

	if err := a.active().Attach(a.images); err != nil {
		return err
	}

	a.logger.WithFields(logrus.Fields{
		"directory": dir,
		"count":     len(a.images),
	}).Info("Gallery loaded")
	a.updateStatusMessage(fmt.Sprintf("✅ Loaded %d images from %s", len(a.images), dir))
	return nil
}

// AddImage loads a single file into the gallery.
func (a *Application) AddImage(path string) error {
	if err := a.addGalleryImage(path); err != nil {
		return err
	}
	a.grid.Refresh()

	added := a.images[len(a.images)-1]
	if err := a.active().Attach(added); err != nil {
		return err
	}

	a.updateStatusMessage(fmt.Sprintf("✅ Added %s", added.Name))
	return nil
}

// addGalleryImage decodes one file, generates its responsive variants and
// places the widget in the grid. Glob matches that cannot be images, such as
// directories with an image extension, are rejected before the decode.
func (a *Application) addGalleryImage(path string) error {
	if err := a.loader.ValidateImageFile(path); err != nil {
		return err
	}

	loaded, err := a.loader.LoadImage(path)
	if err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	thumb := io.Thumbnail(loaded.Image, int(a.cfg.Gallery.CellWidth)*2)
	img := NewImageFromImage(name, thumb)
	img.SetNaturalSize(loaded.Width, loaded.Height)
	img.SetMinSize(fyne.NewSize(a.cfg.Gallery.CellWidth, a.cfg.Gallery.CellHeight))
	img.AddTag(loaded.Format)

	sources, err := a.variants.Generate(loaded.Image, name)
	if err != nil {
		a.logger.WithError(err).WithField("image", name).
			Warn("Variant generation failed, zoom stays at base resolution")
	} else {
		img.SetSources(sources)
	}

	a.grid.Add(img)
	a.images = append(a.images, img)
	return nil
}

func (a *Application) updateStatusMessage(message string) {
	if a.statusCard != nil {
		a.statusCard.SetContent(widget.NewLabel(message))
	}
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing gallery window")

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	a.focus.Destroy()
	a.zoom.Destroy()
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error(title)
	dialog.ShowError(err, a.window)
	a.updateStatusMessage(fmt.Sprintf("❌ Error: %s", err.Error()))
}
