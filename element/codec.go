// CLAUDE:SUMMARY JSON and YAML codecs for Element — ordered field decoding, seed field order on output, verbatim Unknown objects.
package element

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalJSON decodes one element object. Known types are decoded strictly;
// unknown types keep every field and never fail on field types.
func (e *Element) UnmarshalJSON(data []byte) error {
	fields, err := decodeFields(data)
	if err != nil {
		return err
	}

	var kind Type
	for _, f := range fields {
		if f.Key == "type" {
			if err := json.Unmarshal(f.Value, &kind); err != nil {
				return fmt.Errorf("element: type: %w", err)
			}
		}
	}
	strict := kind.Known()

	var (
		out    Element
		button Button
		image  Image
		number Number
	)
	for _, f := range fields {
		var target any
		switch f.Key {
		case "type":
			continue
		case "id":
			target = &out.ID
		case "color":
			target = &out.Color
		case "x":
			target = &out.X
		case "y":
			target = &out.Y
		case "width":
			target = &out.Width
		case "height":
			target = &out.Height
		case "label":
			if kind == TypeButton {
				target = &button.Label
			}
		case "src":
			if kind == TypeImage {
				target = &image.Src
			}
		case "value":
			if kind == TypeNumber {
				target = &number.Value
			}
		}
		if target == nil {
			if strict {
				out.Extra = append(out.Extra, f)
			}
			continue
		}
		if err := json.Unmarshal(f.Value, target); err != nil {
			if strict {
				return fmt.Errorf("element %q: %s: %w", out.ID, f.Key, err)
			}
			continue
		}
		if f.Key == "color" {
			out.EmptyColor = out.Color == "" && bytes.HasPrefix(f.Value, []byte(`"`))
		}
	}

	switch kind {
	case TypeButton:
		out.Variant = button
	case TypeImage:
		out.Variant = image
	case TypeNumber:
		out.Variant = number
	default:
		out.Variant = Unknown{Kind: kind, Fields: fields}
	}
	*e = out
	return nil
}

// MarshalJSON writes id, type, the variant field, color, x, y, width, height,
// then any extra fields. Unknown elements are written back field for field.
func (e Element) MarshalJSON() ([]byte, error) {
	if u, ok := e.Variant.(Unknown); ok {
		return u.marshal(e.Color, e.HasColor())
	}

	w := newObjectWriter()
	w.value("id", e.ID)
	w.value("type", e.Type())
	switch v := e.Variant.(type) {
	case Button:
		w.value("label", v.Label)
	case Image:
		w.value("src", v.Src)
	case Number:
		w.value("value", v.Value)
	}
	if e.HasColor() {
		w.value("color", e.Color)
	}
	w.value("x", e.X)
	w.value("y", e.Y)
	w.value("width", e.Width)
	w.value("height", e.Height)
	for _, f := range e.Extra {
		w.raw(f.Key, f.Value)
	}
	return w.close()
}

// marshal writes the original fields. When the element has a color, it
// replaces the color field (kept byte for byte if unchanged) or is appended.
func (u Unknown) marshal(color string, hasColor bool) ([]byte, error) {
	w := newObjectWriter()
	seen := false
	for _, f := range u.Fields {
		if f.Key != "color" || !hasColor {
			w.raw(f.Key, f.Value)
			continue
		}
		seen = true
		var orig string
		if json.Unmarshal(f.Value, &orig) == nil && orig == color {
			w.raw(f.Key, f.Value)
		} else {
			w.value("color", color)
		}
	}
	if !seen && hasColor {
		w.value("color", color)
	}
	return w.close()
}

// UnmarshalYAML decodes an element from a YAML mapping, keeping key order,
// by re-encoding it as a JSON object.
func (e *Element) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("element: line %d: expected a mapping", node.Line)
	}
	w := newObjectWriter()
	for i := 0; i+1 < len(node.Content); i += 2 {
		var v any
		if err := node.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("element: line %d: %w", node.Content[i+1].Line, err)
		}
		w.value(node.Content[i].Value, v)
	}
	data, err := w.close()
	if err != nil {
		return err
	}
	return e.UnmarshalJSON(data)
}

// decodeFields splits a JSON object into its fields, in document order.
func decodeFields(data []byte) ([]Field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("element: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrNotObject
	}
	var fields []Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("element: %w", err)
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("element: %s: %w", key, err)
		}
		fields = append(fields, Field{Key: key, Value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("element: %w", err)
	}
	return fields, nil
}

// objectWriter builds a JSON object with keys in insertion order and no HTML
// escaping. The first error sticks.
type objectWriter struct {
	buf bytes.Buffer
	n   int
	err error
}

func newObjectWriter() *objectWriter {
	w := &objectWriter{}
	w.buf.WriteByte('{')
	return w
}

func (w *objectWriter) value(key string, v any) {
	if w.err != nil {
		return
	}
	data, err := encode(v)
	if err != nil {
		w.err = fmt.Errorf("element: %s: %w", key, err)
		return
	}
	w.raw(key, data)
}

func (w *objectWriter) raw(key string, data []byte) {
	if w.err != nil {
		return
	}
	k, err := encode(key)
	if err != nil {
		w.err = err
		return
	}
	if w.n > 0 {
		w.buf.WriteByte(',')
	}
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(data)
	w.n++
}

func (w *objectWriter) close() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}

func encode(v any) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(b.Bytes(), "\n"), nil
}
