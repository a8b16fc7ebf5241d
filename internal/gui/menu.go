// Menu handler for gallery actions
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"image-lightbox/internal/io"
)

// MenuHandler handles menu actions
type MenuHandler struct {
	window fyne.Window
	logger *logrus.Logger

	onFolderChosen func(string)
	onImageChosen  func(string)
	onPresentation func()
	onToggleZoom   func()
	onBackdrop     func(string)
}

func NewMenuHandler(window fyne.Window, logger *logrus.Logger) *MenuHandler {
	return &MenuHandler{
		window: window,
		logger: logger,
	}
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	// File menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Folder...", mh.openFolder),
		fyne.NewMenuItem("Add Image...", mh.openImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Exit", func() {
			mh.window.Close()
		}),
	)

	// View menu
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Toggle Zoom", func() {
			if mh.onToggleZoom != nil {
				mh.onToggleZoom()
			}
		}),
		fyne.NewMenuItem("Toggle Presentation Mode", func() {
			if mh.onPresentation != nil {
				mh.onPresentation()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Light Backdrop", func() { mh.chooseBackdrop("light") }),
		fyne.NewMenuItem("Dark Backdrop", func() { mh.chooseBackdrop("dark") }),
		fyne.NewMenuItem("Dim Backdrop", func() { mh.chooseBackdrop("dim") }),
	)

	// Help menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, viewMenu, helpMenu)
}

func (mh *MenuHandler) openFolder() {
	mh.logger.Info("Opening folder dialog for gallery selection")

	folderDialog := dialog.NewFolderOpen(func(list fyne.ListableURI, err error) {
		if err != nil {
			mh.showError("Folder Dialog Error", err)
			return
		}
		if list == nil {
			return
		}

		dir := list.Path()
		mh.logger.WithField("directory", dir).Info("Gallery folder selected")

		if mh.onFolderChosen != nil {
			mh.onFolderChosen(dir)
		}
	}, mh.window)

	folderDialog.Show()
}

func (mh *MenuHandler) openImage() {
	mh.logger.Info("Opening file dialog for image selection")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		mh.logger.WithField("filepath", path).Info("Image selected")

		if mh.onImageChosen != nil {
			mh.onImageChosen(path)
		}
	}, mh.window)

	imageFilter := storage.NewExtensionFileFilter(io.SupportedExtensions())
	fileDialog.SetFilter(imageFilter)
	fileDialog.Show()
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("Image Lightbox v1.0"),
		widget.NewSeparator(),
		widget.NewLabel("Gallery viewer with zoom sessions"),
		widget.NewLabel("Click any image to enlarge it over a backdrop,"),
		widget.NewLabel("with progressive high-resolution swapping"),
		widget.NewLabel("from generated WebP variants."),
		widget.NewSeparator(),
		widget.NewLabel("Built with Go, Fyne v2.6, and OpenCV 4.11"),
		widget.NewSeparator(),
		widget.NewLabel("License: MIT"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(400, 300))
	aboutDialog.Show()
}

func (mh *MenuHandler) chooseBackdrop(name string) {
	mh.logger.WithField("backdrop", name).Info("Backdrop preset selected")
	if mh.onBackdrop != nil {
		mh.onBackdrop(name)
	}
}

func (mh *MenuHandler) showError(title string, err error) {
	mh.logger.WithError(err).Error(title)
	dialog.ShowError(err, mh.window)
}

func (mh *MenuHandler) SetCallbacks(onFolderChosen, onImageChosen func(string), onPresentation, onToggleZoom func(), onBackdrop func(string)) {
	mh.onFolderChosen = onFolderChosen
	mh.onImageChosen = onImageChosen
	mh.onPresentation = onPresentation
	mh.onToggleZoom = onToggleZoom
	mh.onBackdrop = onBackdrop
}
