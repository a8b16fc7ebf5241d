// Zoom controller owning the image set, the session state machine and the
// overlay
package gui

import (
	"context"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"image-lightbox/internal/core"
	"image-lightbox/internal/io"
)

// session tracks one zoom interaction from open to settled close.
type session struct {
	id       string
	original *Image
	clone    *cloneView
	hdClone  *cloneView
	template fyne.CanvasObject

	// from is the on-screen rect the clone grows out of and shrinks back to.
	from     core.Rect
	scrollAt float32

	openDone  chan struct{}
	closeDone chan struct{}
	cancelHD  context.CancelFunc
}

// settleOpen resolves the open deferred exactly once, including when a close
// aborts an in-flight opening.
func (s *session) settleOpen() {
	select {
	case <-s.openDone:
	default:
		close(s.openDone)
	}
}

// Zoom maintains a set of zoomable images and at most one active session.
// All methods must run on the fyne event goroutine; background work re-enters
// through fyne.Do.
type Zoom struct {
	canvas fyne.Canvas
	logger *logrus.Logger
	opts   core.Options

	images []*Image
	state  core.State
	sess   *session
	ov     *overlay

	registry []listenerEntry

	scroll       *container.Scroll
	prevScrolled func(fyne.Position)
	prevTypedKey func(*fyne.KeyEvent)

	fetch   hdFetcher
	anim    *fyne.Animation
	animAux *fyne.Animation
	fade    *fyne.Animation

	destroyed bool
}

// New creates a zoom controller for the window's canvas. The image set starts
// empty; Attach populates it.
func New(win fyne.Window, logger *logrus.Logger, opts ...core.Option) *Zoom {
	if logger == nil {
		logger = logrus.New()
	}
	return newZoom(win.Canvas(), logger, core.DefaultOptions().Apply(opts...))
}

func newZoom(cv fyne.Canvas, logger *logrus.Logger, opts core.Options) *Zoom {
	z := &Zoom{
		canvas: cv,
		logger: logger,
		opts:   opts,
		state:  core.StateIdle,
		fetch:  newAsyncFetcher(logger),
	}
	z.ov = newOverlay(z)
	z.wireKeys()

	z.logger.WithField("component", "zoom").Debug("Zoom controller created")
	return z
}

// wireKeys chains the canvas key handler so Escape closes a session and
// everything else reaches the previous handler. Destroy restores it.
func (z *Zoom) wireKeys() {
	z.prevTypedKey = z.canvas.OnTypedKey()
	prev := z.prevTypedKey
	z.canvas.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape && z.sess != nil {
			z.Close()
			return
		}
		if prev != nil {
			prev(ev)
		}
	})
}

// WatchScroll closes an open session when the scroll container drifts
// vertically past the configured offset. The previous OnScrolled callback
// keeps firing after the watcher.
func (z *Zoom) WatchScroll(sc *container.Scroll) {
	if z.scroll != nil {
		z.scroll.OnScrolled = z.prevScrolled
		z.prevScrolled = nil
	}
	z.scroll = sc
	if sc == nil {
		return
	}

	prev := sc.OnScrolled
	z.prevScrolled = prev
	sc.OnScrolled = func(pos fyne.Position) {
		z.handleScroll(pos)
		if prev != nil {
			prev(pos)
		}
	}
}

func (z *Zoom) handleScroll(pos fyne.Position) {
	if z.state.Animating() || z.sess == nil {
		return
	}
	if math.Abs(float64(pos.Y-z.sess.scrollAt)) > z.opts.ScrollOffset {
		z.logger.WithField("component", "zoom").Debug("Scrolled past offset, closing")
		z.Close()
	}
}

// handleResize is called by the overlay when the canvas changes size under an
// open session.
func (z *Zoom) handleResize() {
	if z.state.CanClose() {
		z.logger.WithField("component", "zoom").Debug("Canvas resized during session, closing")
		z.Close()
	}
}

// Attach resolves the targets and adds the unseen images to the zoomable set.
// Nothing is mutated when any target fails to resolve.
func (z *Zoom) Attach(targets ...any) error {
	if z.destroyed || len(targets) == 0 {
		return nil
	}

	resolved, err := z.resolveAll(targets)
	if err != nil {
		return err
	}

	added := 0
	for _, img := range resolved {
		if z.contains(img) {
			continue
		}
		img.setZoomable(true)
		img.onTapped = z.tapOpen
		for _, reg := range z.registry {
			img.addListenerIfAbsent(reg)
		}
		z.images = append(z.images, img)
		added++
	}

	z.logger.WithFields(logrus.Fields{
		"component": "zoom",
		"attached":  added,
		"total":     len(z.images),
	}).Debug("Images attached")
	return nil
}

// Detach removes the targeted images from the set, all of them when no
// targets are given. An active session is closed first. Each image loses its
// eligibility marker, receives a detach event and leaves the set; listeners
// registered on it stay.
func (z *Zoom) Detach(targets ...any) error {
	var resolved []*Image
	if len(targets) == 0 {
		resolved = append([]*Image(nil), z.images...)
	} else {
		var err error
		resolved, err = z.resolveAll(targets)
		if err != nil {
			return err
		}
	}

	if z.sess != nil && z.state != core.StateClosing {
		z.beginClose()
	}

	removed := 0
	for _, img := range resolved {
		if !z.contains(img) {
			continue
		}
		img.setZoomable(false)
		img.onTapped = nil
		z.emit(img, EventDetach)
		z.remove(img)
		removed++
	}

	z.logger.WithFields(logrus.Fields{
		"component": "zoom",
		"detached":  removed,
		"total":     len(z.images),
	}).Debug("Images detached")
	return nil
}

func (z *Zoom) tapOpen(img *Image) {
	z.Open(img)
}

// Open starts a session on the chosen image and returns a channel that closes
// once the sequence settles. Calls made while a session exists, or with no
// eligible image, are no-ops whose channel settles with the existing sequence
// or immediately.
func (z *Zoom) Open(target ...*Image) <-chan struct{} {
	if z.state == core.StateOpening {
		return z.sess.openDone
	}
	if z.destroyed || !z.state.CanOpen() {
		return settled()
	}

	original := z.pickTarget(target)
	if original == nil {
		z.logger.WithField("component", "zoom").Debug("Open requested with no eligible image")
		return settled()
	}
	return z.beginOpen(original)
}

// pickTarget prefers the first attached argument and falls back to the first
// image in the set.
func (z *Zoom) pickTarget(target []*Image) *Image {
	for _, t := range target {
		if t != nil && z.contains(t) {
			return t
		}
	}
	if len(z.images) == 0 {
		return nil
	}
	return z.images[0]
}

func (z *Zoom) beginOpen(original *Image) <-chan struct{} {
	s := &session{
		id:        ulid.Make().String(),
		original:  original,
		openDone:  make(chan struct{}),
		closeDone: make(chan struct{}),
	}
	if z.scroll != nil {
		s.scrollAt = z.scroll.Offset.Y
	}
	z.sess = s
	z.setState(core.StateOpening)
	z.emit(original, EventOpen)
	if z.sess != s {
		// a listener tore the session down
		return s.openDone
	}

	from := z.renderedRect(original)
	s.from = from

	z.mountOverlay()
	if z.opts.Template != nil {
		s.template = z.opts.Template
		z.ov.showTemplate(s.template)
	}

	cl := newCloneView(original.snapshot(), func() { z.Close() })
	s.clone = cl
	z.ov.addClone(cl)
	cl.Move(rectPos(from))
	cl.Resize(rectSize(from))

	original.conceal()

	eff := z.effectiveArea()
	natural := original.naturalSize(core.Size{Width: eff.Width, Height: eff.Height})
	tr := core.ComputeTransform(from, natural, eff)
	to := tr.TargetRect(from)

	z.logger.WithFields(logrus.Fields{
		"component": "zoom",
		"session":   s.id,
		"image":     original.Name,
		"scale":     tr.Scale,
	}).Info("Opening zoom session")

	z.fade = fadeColor(z.ov.backdrop, transparentOf(z.opts.Background), z.opts.Background, z.opts.Duration)
	z.anim = animateRect(cl, from, to, z.opts.Duration, z.finishOpen)

	z.startHD(s, eff)
	return s.openDone
}

func (z *Zoom) finishOpen() {
	if z.state != core.StateOpening || z.sess == nil {
		return
	}
	z.setState(core.StateOpen)
	z.emit(z.sess.original, EventOpened)
	z.sess.settleOpen()
}

// Close reverses an open session and returns a channel that closes once the
// image is back at rest. Calls while idle or opening are no-ops.
func (z *Zoom) Close() <-chan struct{} {
	switch {
	case z.state == core.StateClosing:
		return z.sess.closeDone
	case z.state.CanClose():
		return z.beginClose()
	default:
		return settled()
	}
}

// beginClose runs the close sequence. It is also entered from StateOpening
// when a detach or destroy forces an in-flight session down.
func (z *Zoom) beginClose() <-chan struct{} {
	s := z.sess
	z.setState(core.StateClosing)
	if s.cancelHD != nil {
		s.cancelHD()
	}
	z.emit(s.original, EventClose)

	z.stopRectAnims()
	if z.fade != nil {
		z.fade.Stop()
	}
	if s.template != nil {
		s.template.Hide()
	}

	z.logger.WithFields(logrus.Fields{
		"component": "zoom",
		"session":   s.id,
		"image":     s.original.Name,
	}).Info("Closing zoom session")

	if s.clone == nil {
		// torn down from an open listener before the clone mounted
		z.finishClose()
		return s.closeDone
	}

	z.fade = fadeColor(z.ov.backdrop, z.ov.backdrop.FillColor, transparentOf(z.opts.Background), z.opts.Duration)

	primary := s.clone
	if s.hdClone != nil {
		primary = s.hdClone
		z.animAux = animateRect(s.clone, objectRect(s.clone), s.from, z.opts.Duration, nil)
	}
	z.anim = animateRect(primary, objectRect(primary), s.from, z.opts.Duration, z.finishClose)

	return s.closeDone
}

func (z *Zoom) finishClose() {
	if z.state != core.StateClosing || z.sess == nil {
		return
	}
	s := z.sess

	s.original.reveal()
	z.unmountOverlay()
	z.sess = nil
	z.setState(core.StateIdle)
	z.emit(s.original, EventClosed)
	s.settleOpen()
	close(s.closeDone)
}

// Toggle closes an existing session and opens one otherwise.
func (z *Zoom) Toggle(target ...*Image) <-chan struct{} {
	if z.sess != nil {
		return z.Close()
	}
	return z.Open(target...)
}

// Update merges option overrides, refreshes live surfaces and emits an update
// event on every attached image.
func (z *Zoom) Update(opts ...core.Option) *Zoom {
	z.opts = z.opts.Apply(opts...)

	if z.sess != nil {
		switch z.state {
		case core.StateOpening:
			// the open fade is still running toward the old background
			if z.fade != nil {
				z.fade.Stop()
			}
			z.fade = fadeColor(z.ov.backdrop, z.ov.backdrop.FillColor, z.opts.Background, z.opts.Duration)
		case core.StateOpen:
			z.ov.backdrop.FillColor = z.opts.Background
			z.ov.backdrop.Refresh()
		}
	}
	for _, img := range z.images {
		z.emit(img, EventUpdate)
	}

	z.logger.WithField("component", "zoom").Debug("Options updated")
	return z
}

// Extend creates an independent controller on the same canvas with the merged
// options and an empty image set.
func (z *Zoom) Extend(opts ...core.Option) *Zoom {
	return newZoom(z.canvas, z.logger, z.opts.Apply(opts...))
}

// On registers a listener for the event type on every attached image; images
// attached later receive it as well. The subscription removes it again.
func (z *Zoom) On(typ EventType, fn Listener, opts ...ListenerOption) Subscription {
	if fn == nil {
		return Subscription{}
	}
	var cfg listenerConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	listenerSeq++
	entry := listenerEntry{id: listenerSeq, typ: typ, fn: fn, once: cfg.once}
	z.registry = append(z.registry, entry)
	for _, img := range z.images {
		img.addListenerIfAbsent(entry)
	}
	return Subscription{id: entry.id, typ: typ}
}

// Off removes a subscription from the registry and every attached image.
func (z *Zoom) Off(sub Subscription) {
	if sub.id == 0 {
		return
	}
	filtered := z.registry[:0]
	for _, e := range z.registry {
		if e.id != sub.id {
			filtered = append(filtered, e)
		}
	}
	z.registry = filtered
	for _, img := range z.images {
		img.removeListener(sub.id)
	}
}

// GetOptions returns the current options.
func (z *Zoom) GetOptions() core.Options {
	return z.opts
}

// GetImages returns a copy of the attached image set in attachment order.
func (z *Zoom) GetImages() []*Image {
	return append([]*Image(nil), z.images...)
}

// GetActive returns the original image of the current session, or nil.
func (z *Zoom) GetActive() *Image {
	if z.sess == nil {
		return nil
	}
	return z.sess.original
}

// Destroy tears the controller down: any session finishes instantly, all
// images detach, and the canvas and scroll handlers are restored. The
// controller is inert afterwards.
func (z *Zoom) Destroy() {
	if z.destroyed {
		return
	}

	if z.sess != nil {
		z.stopRectAnims()
		if z.fade != nil {
			z.fade.Stop()
			z.fade = nil
		}
		if z.state == core.StateClosing {
			z.finishClose()
		} else {
			d := z.opts.Duration
			z.opts.Duration = 0
			z.beginClose()
			z.opts.Duration = d
		}
	}

	z.Detach()
	z.canvas.SetOnTypedKey(z.prevTypedKey)
	if z.scroll != nil {
		z.scroll.OnScrolled = z.prevScrolled
		z.scroll = nil
		z.prevScrolled = nil
	}
	z.destroyed = true

	z.logger.WithField("component", "zoom").Info("Zoom controller destroyed")
}

// startHD begins the progressive enhancement for the session: explicit HD
// sources are probed until ready, source sets load on a completion signal.
func (z *Zoom) startHD(s *session, eff core.Rect) {
	var ctx context.Context
	ctx, s.cancelHD = context.WithCancel(context.Background())
	id := s.id

	switch {
	case s.original.hdSource != "":
		z.logger.WithFields(logrus.Fields{
			"component": "zoom",
			"session":   id,
			"filepath":  s.original.hdSource,
		}).Debug("Probing HD source")
		z.fetch.probe(ctx, s.original.hdSource, func(r io.Result) {
			z.applyHD(id, r)
		})

	case len(s.original.sources) > 0:
		src, ok := s.original.sources.Pick(eff.Width)
		if !ok {
			return
		}
		z.logger.WithFields(logrus.Fields{
			"component": "zoom",
			"session":   id,
			"filepath":  src.Path,
			"width":     src.Width,
		}).Debug("Loading source-set variant")
		z.fetch.load(ctx, src.Path, func(r io.Result) {
			z.applyHD(id, r)
		})
	}
}

// applyHD inserts the high-resolution clone above the base clone and corrects
// the transform with the true natural size. Failures log a warning and leave
// the session at base resolution; stale results are dropped.
func (z *Zoom) applyHD(sessionID string, r io.Result) {
	s := z.sess
	if s == nil || s.id != sessionID || z.state == core.StateClosing {
		z.logger.WithFields(logrus.Fields{
			"component": "zoom",
			"session":   sessionID,
		}).Debug("Dropping stale HD result")
		return
	}

	if r.Err != nil {
		z.logger.WithError(r.Err).WithFields(logrus.Fields{
			"component": "zoom",
			"session":   s.id,
			"image":     s.original.Name,
		}).Warn("HD image unavailable, continuing at base resolution")
		return
	}

	hdImg := canvas.NewImageFromImage(r.Loaded.Image)
	hdImg.FillMode = canvas.ImageFillStretch
	hd := newCloneView(hdImg, func() { z.Close() })
	s.hdClone = hd
	z.ov.addClone(hd)

	cur := objectRect(s.clone)
	hd.Move(rectPos(cur))
	hd.Resize(rectSize(cur))

	eff := z.effectiveArea()
	natural := core.Size{Width: float64(r.Loaded.Width), Height: float64(r.Loaded.Height)}
	tr := core.ComputeTransform(s.from, natural, eff)
	to := tr.TargetRect(s.from)

	z.logger.WithFields(logrus.Fields{
		"component": "zoom",
		"session":   s.id,
		"filepath":  r.Loaded.Path,
		"width":     r.Loaded.Width,
		"height":    r.Loaded.Height,
	}).Info("HD variant applied")

	z.stopRectAnims()
	var done func()
	if z.state == core.StateOpening {
		done = z.finishOpen
	}
	z.animAux = animateRect(s.clone, cur, to, z.opts.Duration, nil)
	z.anim = animateRect(hd, cur, to, z.opts.Duration, done)
}

// renderedRect measures an image widget's absolute on-screen rectangle.
func (z *Zoom) renderedRect(img *Image) core.Rect {
	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(img)
	size := img.Size()
	return core.Rect{
		Left:   float64(pos.X),
		Top:    float64(pos.Y),
		Width:  float64(size.Width),
		Height: float64(size.Height),
	}
}

// effectiveArea resolves the configured container against the canvas and
// shrinks it by the margin.
func (z *Zoom) effectiveArea() core.Rect {
	base := core.Size{
		Width:  float64(z.canvas.Size().Width),
		Height: float64(z.canvas.Size().Height),
	}

	var vp core.Rect
	switch c := z.opts.Container.(type) {
	case core.ObjectContainer:
		pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(c.Object)
		size := c.Object.Size()
		vp = core.Rect{
			Left:   float64(pos.X),
			Top:    float64(pos.Y),
			Width:  float64(size.Width),
			Height: float64(size.Height),
		}
	case core.BoxContainer:
		vp = core.ViewportFromBox(base, core.Box(c))
	default:
		vp = core.Rect{Width: base.Width, Height: base.Height}
	}
	return core.EffectiveArea(vp, z.opts.Margin)
}

func (z *Zoom) mountOverlay() {
	z.ov.backdrop.FillColor = transparentOf(z.opts.Background)
	z.canvas.Overlays().Add(z.ov)
	z.ov.Move(fyne.NewPos(0, 0))
	z.ov.Resize(z.canvas.Size())
	// Resize skips layout when the size is unchanged, so seed the tracker
	// directly; resize detection compares against it.
	z.ov.lastSize = z.canvas.Size()
}

func (z *Zoom) unmountOverlay() {
	z.ov.clearSession()
	z.canvas.Overlays().Remove(z.ov)
	z.ov.reset()
}

func (z *Zoom) stopRectAnims() {
	if z.anim != nil {
		z.anim.Stop()
		z.anim = nil
	}
	if z.animAux != nil {
		z.animAux.Stop()
		z.animAux = nil
	}
}

func (z *Zoom) setState(s core.State) {
	z.logger.WithFields(logrus.Fields{
		"component": "zoom",
		"from":      z.state.String(),
		"to":        s.String(),
	}).Debug("State transition")
	z.state = s
}

func (z *Zoom) emit(img *Image, typ EventType) {
	if img == nil {
		return
	}
	img.emit(Event{Type: typ, Image: img, Zoom: z})
}

func (z *Zoom) resolveAll(targets []any) ([]*Image, error) {
	var out []*Image
	seen := make(map[*Image]struct{})
	root := z.canvas.Content()

	for _, t := range targets {
		imgs, err := resolveTargets(root, t)
		if err != nil {
			return nil, err
		}
		for _, img := range imgs {
			if _, dup := seen[img]; dup {
				continue
			}
			seen[img] = struct{}{}
			out = append(out, img)
		}
	}
	return out, nil
}

func (z *Zoom) contains(img *Image) bool {
	for _, cur := range z.images {
		if cur == img {
			return true
		}
	}
	return false
}

func (z *Zoom) remove(img *Image) {
	for i, cur := range z.images {
		if cur == img {
			z.images = append(z.images[:i], z.images[i+1:]...)
			return
		}
	}
}

// settled returns an already-closed channel for no-op deferred results.
func settled() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
