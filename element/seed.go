package element

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// Seed returns a fresh copy of the default session state: two buttons, one
// image and one number input.
func Seed() []Element {
	return []Element{
		{ID: "btn_picking", Variant: Button{Label: "Picking"}, Color: "#2196f3", X: 50, Y: 50, Width: 120, Height: 50},
		{ID: "btn_putaway", Variant: Button{Label: "Put Away"}, Color: "#4caf50", X: 200, Y: 50, Width: 120, Height: 50},
		{ID: "img_user", Variant: Image{Src: "https://via.placeholder.com/100"}, Color: "#ffffff", X: 50, Y: 150, Width: 100, Height: 100},
		{ID: "input_number", Variant: Number{Value: 0}, Color: "#ffffff", X: 200, Y: 150, Width: 120, Height: 50},
	}
}

var labelPolicy = bluemonday.StrictPolicy()

// SanitizeLabels returns a copy of list where button labels are reduced to
// plain text. Used on seeds read from configuration files.
func SanitizeLabels(list []Element) []Element {
	out := Clone(list)
	for i, e := range out {
		b, ok := e.Variant.(Button)
		if !ok {
			continue
		}
		b.Label = html.UnescapeString(labelPolicy.Sanitize(b.Label))
		out[i].Variant = b
	}
	return out
}
