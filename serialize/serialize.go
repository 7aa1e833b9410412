// CLAUDE:SUMMARY Serializer — pretty-printed JSON (2-space indent) of the element list, and its parser.
// Package serialize converts an element list to the text shown after a save
// action, and parses that text back.
package serialize

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hazyhaar/protoboard/element"
)

// Indent is the indentation unit of the serialized text.
const Indent = "  "

// Serialize returns the element list as indented JSON. The output keeps list
// order and every field, does not escape HTML characters, and is identical
// for identical input. A nil list serializes as [].
func Serialize(elements []element.Element) string {
	if elements == nil {
		elements = []element.Element{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	// Element values always encode: known variants are plain data and
	// Unknown fields were validated when decoded.
	if err := enc.Encode(elements); err != nil {
		return "[]"
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// Parse decodes text produced by Serialize.
func Parse(text string) ([]element.Element, error) {
	var list []element.Element
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, fmt.Errorf("serialize: parse: %w", err)
	}
	return list, nil
}
