package element

import (
	"errors"
	"fmt"
)

var (
	// ErrNotObject is returned when an element is not a JSON object.
	ErrNotObject = errors.New("element: not an object")

	// ErrUnknownType is returned by Validate for types the renderer cannot draw.
	ErrUnknownType = errors.New("element: unknown type")

	// ErrMissingID is returned when an element has an empty id.
	ErrMissingID = errors.New("element: missing id")

	// ErrInvalidGeometry is returned for negative offsets or non-positive sizes.
	ErrInvalidGeometry = errors.New("element: invalid geometry")

	// ErrDuplicateID is returned when two elements of a list share an id.
	ErrDuplicateID = errors.New("element: duplicate id")
)

// Validate checks that e is one of the known variants with usable geometry.
func Validate(e Element) error {
	if e.ID == "" {
		return ErrMissingID
	}
	if !e.Type().Known() {
		return fmt.Errorf("%w %q (id %s)", ErrUnknownType, e.Type(), e.ID)
	}
	if e.X < 0 || e.Y < 0 {
		return fmt.Errorf("%w: %s: negative offset (%d,%d)", ErrInvalidGeometry, e.ID, e.X, e.Y)
	}
	if e.Width <= 0 || e.Height <= 0 {
		return fmt.Errorf("%w: %s: size %dx%d", ErrInvalidGeometry, e.ID, e.Width, e.Height)
	}
	return nil
}

// ValidateList validates every element and checks ids are unique.
func ValidateList(list []Element) error {
	seen := make(map[string]struct{}, len(list))
	for _, e := range list {
		if err := Validate(e); err != nil {
			return err
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}
