package editor

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/hazyhaar/protoboard/element"
	"github.com/hazyhaar/protoboard/journal"
)

func serve(t *testing.T, h http.Handler, method, path, contentType, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, h, "POST", path, "application/x-www-form-urlencoded", form.Encode())
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, h, "POST", path, "application/json", body)
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func TestPage_InitialLayout(t *testing.T) {
	ed := newTestEditor(t, nil)
	w := serve(t, ed.Handler(), "GET", "/", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /: %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"<h1>Dynamic GUI Prototype</h1>",
		"Element Customization",
		"Change Color",
		"Save State",
		`<pre id="output"></pre>`,
		`data-id="btn_picking"`,
		`data-id="img_user"`,
		`<input type="number"`,
		`src="https://via.placeholder.com/100"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, "pb-selected") {
		t.Error("node marked selected without a selection")
	}
}

func TestForms_SelectColorSave(t *testing.T) {
	ed := newTestEditor(t, nil)
	h := ed.Handler()

	w := postForm(t, h, "/select", url.Values{"id": {"btn_picking"}})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Fatalf("POST /select: %d %q", w.Code, w.Header().Get("Location"))
	}
	w = postForm(t, h, "/color", url.Values{"hex": {"#ff0000"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("POST /color: %d", w.Code)
	}
	if got := colorOf(t, ed, "btn_picking"); got != "#ff0000" {
		t.Fatalf("color: got %q", got)
	}

	postForm(t, h, "/save", nil)
	page := serve(t, h, "GET", "/", "", "").Body.String()
	if !strings.Contains(page, `&#34;color&#34;: &#34;#ff0000&#34;`) {
		t.Fatalf("saved output not shown in pane:\n%s", page)
	}
	if !strings.Contains(page, "pb-selected") {
		t.Fatal("selected node not marked")
	}
}

func TestForms_ColorWithoutHexIsNoop(t *testing.T) {
	ed := newTestEditor(t, nil)
	h := ed.Handler()
	postForm(t, h, "/select", url.Values{"id": {"btn_picking"}})
	postForm(t, h, "/color", url.Values{})
	if got := colorOf(t, ed, "btn_picking"); got != "#2196f3" {
		t.Fatalf("color changed: %q", got)
	}
}

func TestForms_FlashShownOnce(t *testing.T) {
	ed := newTestEditor(t, nil)
	h := ed.Handler()

	w := postForm(t, h, "/save", nil)
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no flash cookie")
	}
	page := serve(t, h, "GET", "/", "", "", cookies...)
	if !strings.Contains(page.Body.String(), "State saved") {
		t.Fatal("flash not rendered")
	}
}

func TestForms_EmptySelectClears(t *testing.T) {
	ed := newTestEditor(t, nil)
	h := ed.Handler()
	postForm(t, h, "/select", url.Values{"id": {"img_user"}})
	postForm(t, h, "/select", url.Values{"id": {""}})
	if _, ok := ed.Store().Selection(); ok {
		t.Fatal("selection not cleared")
	}
}

func TestAPI_State(t *testing.T) {
	ed := newTestEditor(t, nil)
	w := serve(t, ed.Handler(), "GET", "/api/state", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	resp := decodeBody[stateResponse](t, w)
	if len(resp.Elements) != 4 || resp.Selection != nil {
		t.Fatalf("state: %d elements, selection %v", len(resp.Elements), resp.Selection)
	}
	if resp.Elements[3].Variant != (element.Number{Value: 0}) {
		t.Fatalf("number element: %+v", resp.Elements[3])
	}
}

func TestAPI_SelectColorSave(t *testing.T) {
	ed := newTestEditor(t, nil)
	h := ed.Handler()

	w := postJSON(t, h, "/api/select", `{"id":"input_number"}`)
	resp := decodeBody[stateResponse](t, w)
	if resp.Selection == nil || *resp.Selection != "input_number" {
		t.Fatalf("selection: %v", resp.Selection)
	}

	w = postJSON(t, h, "/api/color", `{"hex":"#00ff00"}`)
	color := decodeBody[colorResponse](t, w)
	if !color.Changed {
		t.Fatal("color not changed")
	}

	w = postJSON(t, h, "/api/save", "")
	out := decodeBody[outputResponse](t, w)
	if !out.Saved || !strings.Contains(out.Output, `"color": "#00ff00"`) {
		t.Fatalf("save output:\n%s", out.Output)
	}

	w = serve(t, h, "GET", "/api/output", "", "")
	if got := decodeBody[outputResponse](t, w); got != out {
		t.Fatalf("output: got %+v", got)
	}
}

func TestAPI_SelectNullClears(t *testing.T) {
	ed := newTestEditor(t, nil)
	h := ed.Handler()
	postJSON(t, h, "/api/select", `{"id":"btn_putaway"}`)
	w := postJSON(t, h, "/api/select", `{"id":null}`)
	if resp := decodeBody[stateResponse](t, w); resp.Selection != nil {
		t.Fatalf("selection: %q", *resp.Selection)
	}
}

func TestAPI_ColorWithoutSelection(t *testing.T) {
	ed := newTestEditor(t, nil)
	w := postJSON(t, ed.Handler(), "/api/color", `{"hex":"#00ff00"}`)
	if resp := decodeBody[colorResponse](t, w); resp.Changed {
		t.Fatal("changed without selection")
	}
}

func TestAPI_InvalidJSON(t *testing.T) {
	ed := newTestEditor(t, nil)
	w := postJSON(t, ed.Handler(), "/api/select", `{"id":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
}

func TestAPI_Journal(t *testing.T) {
	ed := newTestEditor(t, nil)
	h := ed.Handler()
	postJSON(t, h, "/api/select", `{"id":"btn_picking"}`)
	postJSON(t, h, "/api/reset", "")

	w := serve(t, h, "GET", "/api/journal?limit=1", "", "")
	events := decodeBody[[]journal.Event](t, w)
	if len(events) != 1 || events[0].Action != journal.ActionReset {
		t.Fatalf("journal: %+v", events)
	}
	if events[0].Transport != "api" || events[0].TraceID == "" {
		t.Fatalf("event context: transport %q trace %q", events[0].Transport, events[0].TraceID)
	}
}

func TestAPI_Nodes(t *testing.T) {
	ed := newTestEditor(t, nil)
	w := serve(t, ed.Handler(), "GET", "/api/nodes", "", "")
	var nodes []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &nodes); err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 4 {
		t.Fatalf("nodes: %d", len(nodes))
	}
}

func TestStaticAndHealth(t *testing.T) {
	ed := newTestEditor(t, nil)
	h := ed.Handler()
	for _, path := range []string{"/health", "/static/editor.js", "/static/editor.css"} {
		if w := serve(t, h, "GET", path, "", ""); w.Code != http.StatusOK {
			t.Errorf("GET %s: %d", path, w.Code)
		}
	}
}

func TestMCPMount(t *testing.T) {
	off := newTestEditor(t, nil)
	if w := serve(t, off.Handler(), "POST", "/mcp", "application/json", "{}"); w.Code != http.StatusNotFound && w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("/mcp without MCP enabled: %d", w.Code)
	}
}

func TestAPI_SelectEmptyIDClears(t *testing.T) {
	// WHAT: {"id":""} clears the selection, as the form's empty option does.
	// WHY: an empty id is never a selection, whatever surface sends it.
	ed := newTestEditor(t, nil)
	h := ed.Handler()
	postJSON(t, h, "/api/select", `{"id":"btn_putaway"}`)
	w := postJSON(t, h, "/api/select", `{"id":""}`)
	if resp := decodeBody[stateResponse](t, w); resp.Selection != nil {
		t.Fatalf("selection: %q", *resp.Selection)
	}
	if _, ok := ed.Store().Selection(); ok {
		t.Fatal("store selection still set")
	}
}

func TestAPI_EmptyColorSaved(t *testing.T) {
	ed := newTestEditor(t, nil)
	h := ed.Handler()
	postJSON(t, h, "/api/select", `{"id":"btn_picking"}`)

	color := decodeBody[colorResponse](t, postJSON(t, h, "/api/color", `{"hex":""}`))
	if !color.Changed {
		t.Fatal("empty color not applied")
	}
	out := decodeBody[outputResponse](t, postJSON(t, h, "/api/save", ""))
	if strings.Contains(out.Output, "#2196f3") || !strings.Contains(out.Output, `"color": ""`) {
		t.Fatalf("saved text does not match state:\n%s", out.Output)
	}
}

func TestAPI_EndpointChainLogs(t *testing.T) {
	// WHAT: API calls run through the transport + logging chain.
	// WHY: logs and journal must tell API traffic apart from form posts.
	var buf bytes.Buffer
	ed, err := New(&Config{}, slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ed.Close() })

	postJSON(t, ed.Handler(), "/api/select", `{"id":"img_user"}`)
	for _, want := range []string{`"op":"select"`, `"transport":"api"`, `"trace_id":"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log missing %s: %s", want, buf.String())
		}
	}
}
