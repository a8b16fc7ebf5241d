// Zoom options with defaults and functional overrides
package core

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
)

// Defaults applied by DefaultOptions.
const (
	DefaultMargin       = 0.0
	DefaultScrollOffset = 48.0
	DefaultDuration     = 300 * time.Millisecond
)

// DefaultBackground is the backdrop color used when none is configured.
var DefaultBackground color.Color = color.White

// Box is an explicit viewport override. Zero Width/Height inherit the canvas
// dimensions; Left/Top offset the origin; Right/Bottom are insets.
type Box struct {
	Width  float64
	Height float64
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// ContainerSpec restricts the zoom viewport. The two shapes are a live canvas
// object, measured at each computation, and an explicit box.
type ContainerSpec interface {
	containerSpec()
}

// ObjectContainer bounds the zoom to a canvas object's on-screen rectangle.
type ObjectContainer struct {
	Object fyne.CanvasObject
}

func (ObjectContainer) containerSpec() {}

// BoxContainer bounds the zoom to an explicit box.
type BoxContainer Box

func (BoxContainer) containerSpec() {}

// Options configures a zoom controller.
type Options struct {
	// Margin is the space in pixels kept between the zoomed image and the
	// effective viewport edge.
	Margin float64

	// Background fills the overlay backdrop.
	Background color.Color

	// ScrollOffset is the vertical scroll drift in pixels past which an open
	// session closes.
	ScrollOffset float64

	// Container restricts the viewport; nil means the whole canvas.
	Container ContainerSpec

	// Template is a decorative object shown between the backdrop and the
	// zoomed image.
	Template fyne.CanvasObject

	// Duration is the open/close transition length. Zero or negative runs
	// transitions synchronously.
	Duration time.Duration
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Margin:       DefaultMargin,
		Background:   DefaultBackground,
		ScrollOffset: DefaultScrollOffset,
		Duration:     DefaultDuration,
	}
}

// Option mutates Options. Invalid values leave the previous setting in place.
type Option func(*Options)

// Apply copies the options and applies each override to the copy.
func (o Options) Apply(opts ...Option) Options {
	out := o
	for _, opt := range opts {
		if opt != nil {
			opt(&out)
		}
	}
	return out
}

// WithMargin sets the viewport margin. Negative values are ignored.
func WithMargin(margin float64) Option {
	return func(o *Options) {
		if margin >= 0 {
			o.Margin = margin
		}
	}
}

// WithBackground sets the backdrop color. Nil is ignored.
func WithBackground(c color.Color) Option {
	return func(o *Options) {
		if c != nil {
			o.Background = c
		}
	}
}

// WithScrollOffset sets the scroll-close threshold. Negative values are
// ignored.
func WithScrollOffset(px float64) Option {
	return func(o *Options) {
		if px >= 0 {
			o.ScrollOffset = px
		}
	}
}

// WithContainer bounds the viewport to a canvas object. Nil restores the
// whole-canvas viewport.
func WithContainer(obj fyne.CanvasObject) Option {
	return func(o *Options) {
		if obj == nil {
			o.Container = nil
			return
		}
		o.Container = ObjectContainer{Object: obj}
	}
}

// WithContainerBox bounds the viewport to an explicit box. When the current
// container is already a box the non-zero fields of b are merged into it;
// otherwise b replaces the container.
func WithContainerBox(b Box) Option {
	return func(o *Options) {
		cur, ok := o.Container.(BoxContainer)
		if !ok {
			o.Container = BoxContainer(b)
			return
		}
		merged := Box(cur)
		if b.Width != 0 {
			merged.Width = b.Width
		}
		if b.Height != 0 {
			merged.Height = b.Height
		}
		if b.Left != 0 {
			merged.Left = b.Left
		}
		if b.Top != 0 {
			merged.Top = b.Top
		}
		if b.Right != 0 {
			merged.Right = b.Right
		}
		if b.Bottom != 0 {
			merged.Bottom = b.Bottom
		}
		o.Container = BoxContainer(merged)
	}
}

// WithTemplate sets the decorative overlay object.
func WithTemplate(obj fyne.CanvasObject) Option {
	return func(o *Options) {
		o.Template = obj
	}
}

// WithTemplateFunc resolves the factory immediately and stores its result as
// the template. Nil factories are ignored.
func WithTemplateFunc(fn func() fyne.CanvasObject) Option {
	return func(o *Options) {
		if fn != nil {
			o.Template = fn()
		}
	}
}

// WithDuration sets the transition duration. Negative values clamp to zero.
func WithDuration(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			d = 0
		}
		o.Duration = d
	}
}
