package editor

import (
	"html/template"

	"github.com/hazyhaar/protoboard/element"
	"github.com/hazyhaar/protoboard/shield"
)

type pageView struct {
	Title      string
	Canvas     template.HTML
	Selected   string
	HasSelect  bool
	Options    []string
	PickerHex  string
	Output     string
	Flash      *shield.FlashMessage
	MCPEnabled bool
}

// pickerHex is the initial value of the color input: the selected element's
// effective color, or the default when nothing matches.
func pickerHex(list []element.Element, selected string) string {
	for _, e := range list {
		if e.ID == selected {
			return e.EffectiveColor()
		}
	}
	return element.DefaultColor
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="/static/editor.css">
</head>
<body>
<h1>{{.Title}}</h1>
{{with .Flash}}<div class="pb-flash pb-flash-{{.Type}}" role="status">{{.Message}}</div>{{end}}
<div class="pb-layout">
  <div id="canvas" class="pb-canvas">{{.Canvas}}</div>
  <aside class="pb-panel">
    <h3>Element Customization</h3>
    <form method="post" action="/select" class="pb-form">
      <label for="select-id">Element</label>
      <select id="select-id" name="id" onchange="this.form.submit()">
        <option value=""{{if not .HasSelect}} selected{{end}}>(none)</option>
        {{- $sel := .Selected}}
        {{- range .Options}}
        <option value="{{.}}"{{if eq . $sel}} selected{{end}}>{{.}}</option>
        {{- end}}
      </select>
      <noscript><button type="submit">Select</button></noscript>
    </form>
    <form method="post" action="/color" class="pb-form" id="color-form">
      <label for="color-picker">Change Color</label>
      <input type="color" id="color-picker" name="hex" value="{{.PickerHex}}"{{if not .HasSelect}} disabled{{end}}>
      <noscript><button type="submit">Apply</button></noscript>
    </form>
    <form method="post" action="/save" class="pb-form">
      <button type="submit" id="save-button">Save State</button>
    </form>
    <pre id="output">{{.Output}}</pre>
    <form method="post" action="/reset" class="pb-form">
      <button type="submit" class="pb-secondary">Reset</button>
    </form>
    {{if .MCPEnabled}}<p class="pb-hint">MCP endpoint: <code>/mcp</code></p>{{end}}
  </aside>
</div>
<script src="/static/editor.js"></script>
</body>
</html>
`))
