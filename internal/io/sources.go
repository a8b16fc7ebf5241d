// Width-annotated source sets for responsive images
package io

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Source is one variant of an image at a known pixel width.
type Source struct {
	Path  string
	Width int
}

// Sources is an ordered set of width-annotated variants.
type Sources []Source

// ParseSourceSet parses the "path 300w, other 600w" descriptor format.
// Malformed or non-positive descriptors are skipped.
func ParseSourceSet(s string) Sources {
	var sources Sources
	for _, entry := range strings.Split(s, ",") {
		fields := strings.Fields(entry)
		if len(fields) != 2 {
			continue
		}
		desc := fields[1]
		if !strings.HasSuffix(desc, "w") {
			continue
		}
		width, err := strconv.Atoi(strings.TrimSuffix(desc, "w"))
		if err != nil || width <= 0 {
			continue
		}
		sources = append(sources, Source{Path: fields[0], Width: width})
	}
	return sources
}

// String renders the set back into the descriptor format.
func (s Sources) String() string {
	parts := make([]string, 0, len(s))
	for _, src := range s {
		parts = append(parts, fmt.Sprintf("%s %dw", src.Path, src.Width))
	}
	return strings.Join(parts, ", ")
}

// Pick returns the smallest source wide enough to cover width, or the widest
// available when none is. The second return is false for an empty set.
func (s Sources) Pick(width float64) (Source, bool) {
	if len(s) == 0 {
		return Source{}, false
	}

	ordered := make(Sources, len(s))
	copy(ordered, s)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Width < ordered[j].Width
	})

	for _, src := range ordered {
		if float64(src.Width) >= width {
			return src, true
		}
	}
	return ordered[len(ordered)-1], true
}
