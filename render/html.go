package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
)

// Each style property is interpolated on its own so html/template filters it
// as a CSS value; an unsafe color degrades to ZgotmplZ instead of escaping
// the declaration.
var canvasTmpl = template.Must(template.New("canvas").Funcs(template.FuncMap{
	"num": func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	},
}).Parse(`{{define "style"}}position:{{.Position}};top:{{.Top}};left:{{.Left}};width:{{.Width}};height:{{.Height}};background-color:{{.BackgroundColor}};border:{{.Border}};cursor:{{.Cursor}};text-align:{{.TextAlign}};line-height:{{.LineHeight}}{{end}}
{{- range .Nodes}}
{{- if eq .Kind "button"}}
<button type="button" id="{{.ID}}" data-id="{{.ID}}" class="pb-node{{if eq .ID $.Selected}} pb-selected{{end}}" style="{{template "style" .Style}}">{{.Text}}</button>
{{- else if eq .Kind "image"}}
<img id="{{.ID}}" data-id="{{.ID}}" class="pb-node{{if eq .ID $.Selected}} pb-selected{{end}}" src="{{.Src}}" alt="" style="{{template "style" .Style}}">
{{- else if eq .Kind "number"}}
<input type="number" id="{{.ID}}" data-id="{{.ID}}" class="pb-node{{if eq .ID $.Selected}} pb-selected{{end}}" value="{{num .Value}}" style="{{template "style" .Style}}">
{{- end}}
{{- end}}
`))

// HTML renders nodes as absolutely positioned canvas markup. The node whose
// id equals selected gets the pb-selected class.
func HTML(nodes []Node, selected string) (template.HTML, error) {
	var buf bytes.Buffer
	err := canvasTmpl.Execute(&buf, struct {
		Nodes    []Node
		Selected string
	}{nodes, selected})
	if err != nil {
		return "", fmt.Errorf("render: canvas: %w", err)
	}
	return template.HTML(buf.String()), nil
}
