// Session overlay: backdrop, template and animated clones
package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// overlay is the full-canvas surface a session lives on. One instance exists
// per controller and is mounted into the canvas overlay stack while a session
// is active.
type overlay struct {
	widget.BaseWidget

	z        *Zoom
	backdrop *canvas.Rectangle
	content  *fyne.Container

	lastSize fyne.Size
}

func newOverlay(z *Zoom) *overlay {
	ov := &overlay{
		z:        z,
		backdrop: canvas.NewRectangle(color.Transparent),
		content:  container.NewWithoutLayout(),
	}
	ov.ExtendBaseWidget(ov)
	return ov
}

// showTemplate mounts the decorative object under the clones, stretched over
// the whole overlay.
func (ov *overlay) showTemplate(tpl fyne.CanvasObject) {
	tpl.Show()
	tpl.Move(fyne.NewPos(0, 0))
	tpl.Resize(ov.Size())
	ov.content.Add(tpl)
}

// addClone mounts a clone above everything added before it.
func (ov *overlay) addClone(c *cloneView) {
	ov.content.Add(c)
}

// clearSession drops the session objects; the backdrop stays for reuse.
func (ov *overlay) clearSession() {
	ov.content.RemoveAll()
	ov.content.Refresh()
}

// reset forgets the mount-time size so a remount does not read a stale value
// as a live resize.
func (ov *overlay) reset() {
	ov.lastSize = fyne.Size{}
}

// Tapped closes the session when the backdrop is clicked.
func (ov *overlay) Tapped(_ *fyne.PointEvent) {
	ov.z.Close()
}

// CreateRenderer implements fyne.Widget.
func (ov *overlay) CreateRenderer() fyne.WidgetRenderer {
	return &overlayRenderer{
		ov:      ov,
		objects: []fyne.CanvasObject{ov.backdrop, ov.content},
	}
}

type overlayRenderer struct {
	ov      *overlay
	objects []fyne.CanvasObject
}

// Layout stretches the backdrop and doubles as resize detection: a size
// change while a session is at rest closes it.
func (r *overlayRenderer) Layout(size fyne.Size) {
	r.ov.backdrop.Resize(size)
	r.ov.content.Resize(size)

	if r.ov.lastSize != (fyne.Size{}) && size != r.ov.lastSize {
		r.ov.z.handleResize()
	}
	r.ov.lastSize = size
}

func (r *overlayRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

func (r *overlayRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *overlayRenderer) Refresh() {
	canvas.Refresh(r.ov.backdrop)
}

func (r *overlayRenderer) Destroy() {}

// cloneView mirrors the original image during a session. It stretches to the
// rect the transition drives and closes the session when tapped.
type cloneView struct {
	widget.BaseWidget

	img      *canvas.Image
	onTapped func()
}

func newCloneView(img *canvas.Image, onTapped func()) *cloneView {
	c := &cloneView{
		img:      img,
		onTapped: onTapped,
	}
	c.ExtendBaseWidget(c)
	return c
}

// Tapped closes the session.
func (c *cloneView) Tapped(_ *fyne.PointEvent) {
	if c.onTapped != nil {
		c.onTapped()
	}
}

// Cursor marks the clone as interactive.
func (c *cloneView) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

// CreateRenderer implements fyne.Widget.
func (c *cloneView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.img)
}
