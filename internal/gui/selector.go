// Target resolution for attach and detach
package gui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"image-lightbox/internal/core"
)

// walkImages visits every image widget reachable from obj, descending through
// containers, scroll areas and splits. Other widgets are opaque.
func walkImages(obj fyne.CanvasObject, visit func(*Image)) {
	switch o := obj.(type) {
	case *Image:
		visit(o)
	case *fyne.Container:
		for _, child := range o.Objects {
			walkImages(child, visit)
		}
	case *container.Scroll:
		walkImages(o.Content, visit)
	case *container.Split:
		walkImages(o.Leading, visit)
		walkImages(o.Trailing, visit)
	}
}

// resolveTargets expands one accepted target shape into image widgets.
// Non-image elements are skipped silently; unsupported shapes and malformed
// selector strings return an InvalidSelectorError.
func resolveTargets(root fyne.CanvasObject, target any) ([]*Image, error) {
	switch v := target.(type) {
	case *Image:
		if v == nil {
			return nil, core.NewInvalidSelector(target)
		}
		return []*Image{v}, nil

	case []*Image:
		out := make([]*Image, 0, len(v))
		for _, img := range v {
			if img != nil {
				out = append(out, img)
			}
		}
		return out, nil

	case []fyne.CanvasObject:
		var out []*Image
		for _, obj := range v {
			if obj == nil {
				continue
			}
			walkImages(obj, func(img *Image) {
				out = append(out, img)
			})
		}
		return out, nil

	case *fyne.Container:
		if v == nil {
			return nil, core.NewInvalidSelector(target)
		}
		var out []*Image
		walkImages(v, func(img *Image) {
			out = append(out, img)
		})
		return out, nil

	case string:
		return resolveSelectorString(root, v)

	case fyne.CanvasObject:
		// Any other element resolves to the images under it, which for a
		// leaf widget is none.
		var out []*Image
		walkImages(v, func(img *Image) {
			out = append(out, img)
		})
		return out, nil

	default:
		return nil, core.NewInvalidSelector(target)
	}
}

// resolveSelectorString matches "", "*", "#name" and ".tag" selectors plus
// comma-separated unions of them against the tree under root.
func resolveSelectorString(root fyne.CanvasObject, sel string) ([]*Image, error) {
	if strings.TrimSpace(sel) == "" {
		return nil, nil
	}

	var out []*Image
	for _, part := range strings.Split(sel, ",") {
		part = strings.TrimSpace(part)

		var match func(*Image) bool
		switch {
		case part == "*":
			match = func(*Image) bool { return true }
		case strings.HasPrefix(part, "#") && len(part) > 1:
			name := part[1:]
			match = func(img *Image) bool { return img.Name == name }
		case strings.HasPrefix(part, ".") && len(part) > 1:
			tag := part[1:]
			match = func(img *Image) bool { return img.HasTag(tag) }
		default:
			return nil, core.NewInvalidSelector(part)
		}

		walkImages(root, func(img *Image) {
			if match(img) {
				out = append(out, img)
			}
		})
	}
	return out, nil
}
