// CLAUDE:SUMMARY Element model — positioned canvas items as a tagged variant (button, image, number) with an inert Unknown fallback.
// Package element defines the positioned UI items of a protoboard canvas.
//
// An Element carries the geometry and color shared by every item plus a
// Variant holding the type-specific field. Decoding never rejects an
// unrecognised type: such items become Unknown, keep their original JSON
// fields, and are skipped by the renderer.
package element

import "encoding/json"

// Type names an element variant.
type Type string

const (
	TypeButton Type = "button"
	TypeImage  Type = "image"
	TypeNumber Type = "number"
)

// DefaultColor is the background used when an element has no color.
const DefaultColor = "#ffffff"

// Known reports whether t is one of the renderable element types.
func (t Type) Known() bool {
	switch t {
	case TypeButton, TypeImage, TypeNumber:
		return true
	}
	return false
}

// Variant holds the type-specific fields of an Element.
type Variant interface {
	Type() Type
	isVariant()
}

// Button is a clickable label.
type Button struct {
	Label string
}

// Image is a non-interactive picture.
type Image struct {
	Src string
}

// Number is an editable numeric field.
type Number struct {
	Value float64
}

// Unknown is an element whose type is not recognised. Fields is the original
// JSON object in document order; it is written back verbatim except for color.
type Unknown struct {
	Kind   Type
	Fields []Field
}

func (Button) Type() Type    { return TypeButton }
func (Image) Type() Type     { return TypeImage }
func (Number) Type() Type    { return TypeNumber }
func (u Unknown) Type() Type { return u.Kind }

func (Button) isVariant()  {}
func (Image) isVariant()   {}
func (Number) isVariant()  {}
func (Unknown) isVariant() {}

// Field is one key of a JSON element object.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Element is one positioned, typed item on the canvas.
//
// X and Y are pixel offsets; the renderer maps X to top and Y to left.
type Element struct {
	ID    string
	Color string
	// EmptyColor records a color key present with an empty value, so that
	// "" survives serialization. It is false whenever Color is non-empty.
	EmptyColor bool
	X          int
	Y          int
	Width      int
	Height     int
	Variant    Variant

	// Extra holds keys a known variant does not model, in document order.
	Extra []Field
}

// Type returns the variant type, or "" when the element has no variant.
func (e Element) Type() Type {
	if e.Variant == nil {
		return ""
	}
	return e.Variant.Type()
}

// EffectiveColor returns Color, or DefaultColor when unset.
func (e Element) EffectiveColor() string {
	if e.Color == "" {
		return DefaultColor
	}
	return e.Color
}

// HasColor reports whether e carries a color key, possibly empty.
func (e Element) HasColor() bool {
	return e.Color != "" || e.EmptyColor
}

// WithColor returns a copy of e with its color replaced. Any string is
// accepted, including "".
func (e Element) WithColor(hex string) Element {
	e.Color = hex
	e.EmptyColor = hex == ""
	return e
}

// Clone returns a copy of list. Elements are values; the slice is new.
func Clone(list []Element) []Element {
	if list == nil {
		return nil
	}
	out := make([]Element, len(list))
	copy(out, list)
	return out
}

// IDs returns the element identifiers in list order.
func IDs(list []Element) []string {
	ids := make([]string, len(list))
	for i, e := range list {
		ids[i] = e.ID
	}
	return ids
}
