// CLAUDE:SUMMARY Selection & color mutator — rewrites the color of the selected element, silent no-op on missing or dangling selection.
// Package mutate applies the color-picker action to an element list.
package mutate

import "github.com/hazyhaar/protoboard/element"

// ColorValue is the payload of the color picker. Only Hex is consumed; a nil
// Hex means the picker sent no usable color.
type ColorValue struct {
	Hex *string `json:"hex,omitempty"`
}

// Hex builds a ColorValue carrying hex.
func Hex(hex string) ColorValue {
	return ColorValue{Hex: &hex}
}

// UpdateColor returns a new list where the element whose id equals selection
// has its color set to hex. Other elements are copied unchanged. When
// selected is false, or no element matches, the result equals the input.
// hex is not validated.
func UpdateColor(elements []element.Element, selection string, selected bool, hex string) []element.Element {
	if !selected {
		return elements
	}
	out := make([]element.Element, len(elements))
	for i, el := range elements {
		if el.ID == selection {
			el = el.WithColor(hex)
		}
		out[i] = el
	}
	return out
}

// Apply is UpdateColor driven by a picker payload. A payload without hex
// leaves the list unchanged.
func Apply(elements []element.Element, selection string, selected bool, v ColorValue) []element.Element {
	if v.Hex == nil {
		return elements
	}
	return UpdateColor(elements, selection, selected, *v.Hex)
}

// Changed reports whether UpdateColor would modify the list.
func Changed(elements []element.Element, selection string, selected bool, hex string) bool {
	if !selected {
		return false
	}
	for _, el := range elements {
		if el.ID == selection && (!el.HasColor() || el.Color != hex) {
			return true
		}
	}
	return false
}
