// Tappable image widget that can participate in zoom sessions
package gui

import (
	"image"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"image-lightbox/internal/core"
	"image-lightbox/internal/io"
)

// Image is a gallery image that a zoom controller can enlarge. Name and tags
// address it in selector strings; the HD source and the source set feed the
// progressive enhancement after a session opens.
type Image struct {
	widget.BaseWidget

	// Name addresses this image in "#name" selectors.
	Name string

	raw      *canvas.Image
	tags     []string
	source   string
	hdSource string
	sources  io.Sources
	natural  core.Size
	vector   bool

	zoomable  bool
	concealed bool
	onTapped  func(*Image)

	listeners map[EventType][]listenerEntry
}

// NewImageFromFile creates an image widget backed by a file. The natural size
// stays unknown until a decode provides it; vector sources always report an
// unknown natural size.
func NewImageFromFile(path string) *Image {
	w := newImage(canvas.NewImageFromFile(path))
	w.source = path
	w.vector = strings.HasSuffix(strings.ToLower(path), ".svg")
	return w
}

// NewImageFromImage creates an image widget from decoded pixels. The natural
// size is taken from the image bounds.
func NewImageFromImage(name string, src image.Image) *Image {
	w := newImage(canvas.NewImageFromImage(src))
	w.Name = name
	if src != nil {
		b := src.Bounds()
		w.natural = core.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
	}
	return w
}

func newImage(raw *canvas.Image) *Image {
	raw.FillMode = canvas.ImageFillContain
	w := &Image{
		raw:       raw,
		listeners: make(map[EventType][]listenerEntry),
	}
	w.ExtendBaseWidget(w)
	return w
}

// AddTag registers the image under a ".tag" selector.
func (w *Image) AddTag(tag string) {
	for _, t := range w.tags {
		if t == tag {
			return
		}
	}
	w.tags = append(w.tags, tag)
}

// HasTag reports whether the image answers to a ".tag" selector.
func (w *Image) HasTag(tag string) bool {
	for _, t := range w.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SetHDSource declares an explicit higher-resolution variant to swap in after
// a session opens.
func (w *Image) SetHDSource(path string) {
	w.hdSource = path
}

// HDSource returns the explicit higher-resolution variant, if any.
func (w *Image) HDSource() string {
	return w.hdSource
}

// SetSources declares width-annotated variants for progressive enhancement.
func (w *Image) SetSources(s io.Sources) {
	w.sources = s
}

// SetSourceSet parses a "path 300w, other 600w" descriptor string into the
// source set.
func (w *Image) SetSourceSet(s string) {
	w.sources = io.ParseSourceSet(s)
}

// Sources returns the width-annotated variants.
func (w *Image) Sources() io.Sources {
	return w.sources
}

// SetNaturalSize records the intrinsic pixel dimensions once known.
func (w *Image) SetNaturalSize(width, height int) {
	w.natural = core.Size{Width: float64(width), Height: float64(height)}
}

// SetMinSize fixes the minimum on-screen size, which grid layouts use as the
// cell size.
func (w *Image) SetMinSize(size fyne.Size) {
	w.raw.SetMinSize(size)
	w.Refresh()
}

// naturalSize returns the intrinsic dimensions, or fallback when they are
// unknown or the source is vector.
func (w *Image) naturalSize(fallback core.Size) core.Size {
	if w.vector || w.natural.Width <= 0 || w.natural.Height <= 0 {
		return fallback
	}
	return w.natural
}

// snapshot copies the visual for a session clone. The clone stretches to the
// rect the animation drives.
func (w *Image) snapshot() *canvas.Image {
	var c *canvas.Image
	switch {
	case w.raw.Image != nil:
		c = canvas.NewImageFromImage(w.raw.Image)
	case w.raw.Resource != nil:
		c = canvas.NewImageFromResource(w.raw.Resource)
	case w.raw.File != "":
		c = canvas.NewImageFromFile(w.raw.File)
	default:
		c = &canvas.Image{}
	}
	c.FillMode = canvas.ImageFillStretch
	c.ScaleMode = w.raw.ScaleMode
	return c
}

func (w *Image) setZoomable(zoomable bool) {
	w.zoomable = zoomable
	w.Refresh()
}

// conceal hides the original without disturbing sibling layout.
func (w *Image) conceal() {
	w.concealed = true
	w.raw.Translucency = 1
	w.raw.Refresh()
}

func (w *Image) reveal() {
	w.concealed = false
	w.raw.Translucency = 0
	w.raw.Refresh()
}

// Tapped opens a session for an attached image.
func (w *Image) Tapped(_ *fyne.PointEvent) {
	if w.zoomable && w.onTapped != nil {
		w.onTapped(w)
	}
}

// Cursor signals eligibility: attached images get the pointer cursor.
func (w *Image) Cursor() desktop.Cursor {
	if w.zoomable {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

// CreateRenderer implements fyne.Widget.
func (w *Image) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(w.raw)
}

func (w *Image) addListenerIfAbsent(e listenerEntry) {
	for _, cur := range w.listeners[e.typ] {
		if cur.id == e.id {
			return
		}
	}
	w.listeners[e.typ] = append(w.listeners[e.typ], e)
}

func (w *Image) removeListener(id uint64) {
	for typ, list := range w.listeners {
		filtered := list[:0]
		for _, e := range list {
			if e.id != id {
				filtered = append(filtered, e)
			}
		}
		w.listeners[typ] = filtered
	}
}

// emit delivers the event to this image's listeners in registration order,
// pruning once-listeners that fired.
func (w *Image) emit(ev Event) {
	list := w.listeners[ev.Type]
	if len(list) == 0 {
		return
	}

	fired := make([]listenerEntry, len(list))
	copy(fired, list)

	var onceIDs []uint64
	for _, e := range fired {
		e.fn(ev)
		if e.once {
			onceIDs = append(onceIDs, e.id)
		}
	}

	for _, id := range onceIDs {
		w.removeListener(id)
	}
}
