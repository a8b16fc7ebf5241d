// Geometry for scaling and centering a zoomed image within a viewport
package core

import "math"

// Size holds floating point dimensions.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an on-screen rectangle in canvas coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Transform describes how a rendered rectangle is enlarged: a uniform scale
// followed by a translation expressed in pre-scale units, mirroring the
// scale-then-translate composition the zoom animation applies.
type Transform struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// Neutral is the identity transform.
var Neutral = Transform{Scale: 1}

// ViewportFromBox resolves an explicit viewport box against the canvas
// dimensions. Zero width or height inherit the canvas extent; left/top shift
// the origin and, together with right/bottom, shrink the usable area.
func ViewportFromBox(base Size, b Box) Rect {
	w := b.Width
	if w == 0 {
		w = base.Width
	}
	h := b.Height
	if h == 0 {
		h = base.Height
	}
	return Rect{
		Left:   b.Left,
		Top:    b.Top,
		Width:  w - b.Left - b.Right,
		Height: h - b.Top - b.Bottom,
	}
}

// EffectiveArea shrinks a viewport by the margin on every side. Degenerate
// results are returned as computed; ComputeTransform absorbs them.
func EffectiveArea(vp Rect, margin float64) Rect {
	return Rect{
		Left:   vp.Left + margin,
		Top:    vp.Top + margin,
		Width:  vp.Width - margin*2,
		Height: vp.Height - margin*2,
	}
}

// ComputeTransform calculates the zoom transform for an image currently
// rendered at rendered, with intrinsic dimensions natural, targeting the
// effective area eff. The scale is the largest uniform factor that keeps the
// result within both the effective area and the image's natural size; the
// translation centers the scaled image in the effective area.
func ComputeTransform(rendered Rect, natural Size, eff Rect) Transform {
	scaleX := math.Min(natural.Width, eff.Width) / rendered.Width
	scaleY := math.Min(natural.Height, eff.Height) / rendered.Height
	scale := math.Min(scaleX, scaleY)

	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return Neutral
	}

	return Transform{
		Scale:      scale,
		TranslateX: (-rendered.Left + (eff.Width-rendered.Width)/2 + eff.Left) / scale,
		TranslateY: (-rendered.Top + (eff.Height-rendered.Height)/2 + eff.Top) / scale,
	}
}

// TargetRect applies the transform to a rendered rectangle and returns the
// resulting on-screen rectangle: the rendered extent scaled about its center,
// then displaced by the scaled translation.
func (t Transform) TargetRect(rendered Rect) Rect {
	w := rendered.Width * t.Scale
	h := rendered.Height * t.Scale
	cx := rendered.Left + rendered.Width/2 + t.TranslateX*t.Scale
	cy := rendered.Top + rendered.Height/2 + t.TranslateY*t.Scale
	return Rect{
		Left:   cx - w/2,
		Top:    cy - h/2,
		Width:  w,
		Height: h,
	}
}

// IsNeutral reports whether the transform leaves geometry untouched.
func (t Transform) IsNeutral() bool {
	return t.Scale == 1 && t.TranslateX == 0 && t.TranslateY == 0
}
