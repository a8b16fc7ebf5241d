// Typed errors shared across the lightbox packages
package core

import "fmt"

// InvalidSelectorError reports a zoom target that none of the accepted
// selector shapes can describe.
type InvalidSelectorError struct {
	Value string
}

// Error names the rejected value and the acceptable target shapes.
func (e *InvalidSelectorError) Error() string {
	return fmt.Sprintf("invalid zoom target %s: expected an image widget, a slice of canvas objects, a container, or a selector string (\"\", \"*\", \"#name\", \".tag\")", e.Value)
}

// NewInvalidSelector builds an InvalidSelectorError describing the value.
// Strings are quoted, everything else is reported by type.
func NewInvalidSelector(value any) *InvalidSelectorError {
	if s, ok := value.(string); ok {
		return &InvalidSelectorError{Value: fmt.Sprintf("%q", s)}
	}
	return &InvalidSelectorError{Value: fmt.Sprintf("of type %T", value)}
}
