// CLAUDE:SUMMARY Pure renderer — maps an element list to visual node descriptors (position, size, color, affordance); unknown types are skipped.
// Package render turns protoboard elements into visual node descriptors.
//
// Render is a pure function of its input. Output order follows input order;
// elements of an unrecognised type produce no node.
package render

import (
	"strconv"
	"strings"

	"github.com/hazyhaar/protoboard/element"
)

// Kind is the visual node type.
type Kind string

const (
	KindButton Kind = "button"
	KindImage  Kind = "image"
	KindNumber Kind = "number"
)

// Affordance describes how the user can interact with a node.
type Affordance string

const (
	Clickable Affordance = "clickable"
	Inert     Affordance = "none"
	Editable  Affordance = "editable"
)

// Style holds the CSS properties applied to a node, as CSS values.
type Style struct {
	Position        string `json:"position"`
	Top             string `json:"top"`
	Left            string `json:"left"`
	Width           string `json:"width"`
	Height          string `json:"height"`
	BackgroundColor string `json:"backgroundColor"`
	Border          string `json:"border"`
	Cursor          string `json:"cursor"`
	TextAlign       string `json:"textAlign"`
	LineHeight      string `json:"lineHeight"`
}

// CSS returns the style as a declaration list.
func (s Style) CSS() string {
	decls := []struct{ prop, val string }{
		{"position", s.Position},
		{"top", s.Top},
		{"left", s.Left},
		{"width", s.Width},
		{"height", s.Height},
		{"background-color", s.BackgroundColor},
		{"border", s.Border},
		{"cursor", s.Cursor},
		{"text-align", s.TextAlign},
		{"line-height", s.LineHeight},
	}
	var b strings.Builder
	for _, d := range decls {
		if d.val == "" {
			continue
		}
		b.WriteString(d.prop)
		b.WriteByte(':')
		b.WriteString(d.val)
		b.WriteByte(';')
	}
	return b.String()
}

// Node is one displayed element.
type Node struct {
	Kind       Kind       `json:"kind"`
	ID         string     `json:"id"`
	Style      Style      `json:"style"`
	Affordance Affordance `json:"affordance"`
	Text       string     `json:"text,omitempty"`
	Src        string     `json:"src,omitempty"`
	Value      *float64   `json:"value,omitempty"`
}

// Render maps elements to nodes in list order, skipping unknown types.
func Render(elements []element.Element) []Node {
	nodes := make([]Node, 0, len(elements))
	for _, el := range elements {
		if n, ok := renderOne(el); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func renderOne(el element.Element) (Node, bool) {
	style := baseStyle(el)
	switch v := el.Variant.(type) {
	case element.Button:
		return Node{Kind: KindButton, ID: el.ID, Style: style, Affordance: Clickable, Text: v.Label}, true
	case element.Image:
		style.Border = "none"
		return Node{Kind: KindImage, ID: el.ID, Style: style, Affordance: Inert, Src: v.Src}, true
	case element.Number:
		style.LineHeight = "normal"
		value := v.Value
		return Node{Kind: KindNumber, ID: el.ID, Style: style, Affordance: Editable, Value: &value}, true
	default:
		return Node{}, false
	}
}

// baseStyle places the element. X is the top offset and Y the left offset.
func baseStyle(el element.Element) Style {
	return Style{
		Position:        "absolute",
		Top:             px(el.X),
		Left:            px(el.Y),
		Width:           px(el.Width),
		Height:          px(el.Height),
		BackgroundColor: el.EffectiveColor(),
		Border:          "1px solid #000",
		Cursor:          "move",
		TextAlign:       "center",
		LineHeight:      px(el.Height),
	}
}

func px(n int) string {
	return strconv.Itoa(n) + "px"
}

// Count returns how many elements of list would produce a node.
func Count(elements []element.Element) int {
	n := 0
	for _, el := range elements {
		if el.Type().Known() {
			n++
		}
	}
	return n
}
