// Transition helpers driving fyne animations
package gui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"image-lightbox/internal/core"
)

func rectPos(r core.Rect) fyne.Position {
	return fyne.NewPos(float32(r.Left), float32(r.Top))
}

func rectSize(r core.Rect) fyne.Size {
	return fyne.NewSize(float32(r.Width), float32(r.Height))
}

// objectRect reads an object's current geometry in its parent's coordinates.
func objectRect(obj fyne.CanvasObject) core.Rect {
	pos := obj.Position()
	size := obj.Size()
	return core.Rect{
		Left:   float64(pos.X),
		Top:    float64(pos.Y),
		Width:  float64(size.Width),
		Height: float64(size.Height),
	}
}

func lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}

// animateRect moves and resizes obj between two rectangles. A non-positive
// duration applies the end state and calls done synchronously; otherwise the
// final animation tick calls done. The returned animation is nil in the
// synchronous case.
func animateRect(obj fyne.CanvasObject, from, to core.Rect, d time.Duration, done func()) *fyne.Animation {
	if d <= 0 {
		obj.Move(rectPos(to))
		obj.Resize(rectSize(to))
		canvas.Refresh(obj)
		if done != nil {
			done()
		}
		return nil
	}

	anim := fyne.NewAnimation(d, func(p float32) {
		f := float64(p)
		cur := core.Rect{
			Left:   lerp(from.Left, to.Left, f),
			Top:    lerp(from.Top, to.Top, f),
			Width:  lerp(from.Width, to.Width, f),
			Height: lerp(from.Height, to.Height, f),
		}
		obj.Move(rectPos(cur))
		obj.Resize(rectSize(cur))
		canvas.Refresh(obj)

		if p >= 1 && done != nil {
			done()
		}
	})
	anim.Curve = fyne.AnimationEaseInOut
	anim.Start()
	return anim
}

// fadeColor fades a rectangle's fill between two colors. The fade is purely
// visual; transition completion is owned by the rect animation running
// alongside it.
func fadeColor(rect *canvas.Rectangle, from, to color.Color, d time.Duration) *fyne.Animation {
	if d <= 0 {
		rect.FillColor = to
		rect.Refresh()
		return nil
	}

	anim := canvas.NewColorRGBAAnimation(from, to, d, func(c color.Color) {
		rect.FillColor = c
		canvas.Refresh(rect)
	})
	anim.Start()
	return anim
}

// transparentOf strips the alpha from a color so fades start and end
// invisible.
func transparentOf(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0
	return n
}
