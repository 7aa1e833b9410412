// CLAUDE:SUMMARY HTTP surface of the editor — chi router, page, form actions (Post/Redirect/Get with flash), JSON API, static assets, MCP mount.
package editor

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/protoboard/element"
	"github.com/hazyhaar/protoboard/kit"
	"github.com/hazyhaar/protoboard/mutate"
	"github.com/hazyhaar/protoboard/render"
	"github.com/hazyhaar/protoboard/shield"
)

//go:embed static
var staticFS embed.FS

const maxJSONBody = 32 * 1024

// Handler returns the complete HTTP handler: shield stack, page, form
// actions, JSON API, static assets and, when enabled, the MCP endpoint.
func (e *Editor) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	for _, mw := range shield.DefaultStack(e.logger) {
		r.Use(mw)
	}
	e.Routes(r)
	if e.config.MCP {
		srv := e.MCPServer()
		r.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return srv }, nil))
	}
	return r
}

// Routes registers the page, form, API and static routes on r.
func (e *Editor) Routes(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/", e.handlePage)
	r.Post("/select", e.handleSelectForm)
	r.Post("/color", e.handleColorForm)
	r.Post("/save", e.handleSaveForm)
	r.Post("/reset", e.handleResetForm)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", e.handleState)
		r.Get("/nodes", e.handleNodes)
		r.Get("/output", e.handleOutput)
		r.Get("/journal", e.handleJournal)
		r.Post("/select", e.handleSelectJSON)
		r.Post("/color", e.handleColorJSON)
		r.Post("/save", e.handleSaveJSON)
		r.Post("/reset", e.handleResetJSON)
	})
}

// --- page and form actions ---

func (e *Editor) handlePage(w http.ResponseWriter, r *http.Request) {
	snap := e.store.Snapshot()
	selected := ""
	if snap.Selected {
		selected = snap.Selection
	}
	canvas, err := render.HTML(render.Render(snap.Elements), selected)
	if err != nil {
		shield.GetLogger(r.Context()).Error("render canvas", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	output, _ := e.Output()

	view := pageView{
		Title:      e.config.Title,
		Canvas:     canvas,
		Selected:   selected,
		HasSelect:  snap.Selected,
		Options:    element.IDs(snap.Elements),
		PickerHex:  pickerHex(snap.Elements, selected),
		Output:     output,
		Flash:      shield.GetFlash(r.Context()),
		MCPEnabled: e.config.MCP,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, view); err != nil {
		shield.GetLogger(r.Context()).Error("render page", "error", err)
	}
}

func (e *Editor) handleSelectForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		e.formError(w, r, err)
		return
	}
	if id := r.PostForm.Get("id"); id != "" {
		e.Select(r.Context(), id)
		shield.SetFlash(w, shield.FlashSuccess, "Selected "+id)
	} else {
		e.ClearSelection(r.Context())
		shield.SetFlash(w, shield.FlashSuccess, "Selection cleared")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (e *Editor) handleColorForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		e.formError(w, r, err)
		return
	}
	var v mutate.ColorValue
	if r.PostForm.Has("hex") {
		v = mutate.Hex(r.PostForm.Get("hex"))
	}
	if e.PickColor(r.Context(), v) {
		shield.SetFlash(w, shield.FlashSuccess, "Color updated")
	} else if _, ok := e.store.Selection(); !ok {
		shield.SetFlash(w, shield.FlashError, "Select an element first")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (e *Editor) handleSaveForm(w http.ResponseWriter, r *http.Request) {
	e.Save(r.Context())
	shield.SetFlash(w, shield.FlashSuccess, "State saved")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (e *Editor) handleResetForm(w http.ResponseWriter, r *http.Request) {
	e.Reset(r.Context())
	shield.SetFlash(w, shield.FlashSuccess, "Session reset")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (e *Editor) formError(w http.ResponseWriter, r *http.Request, err error) {
	shield.GetLogger(r.Context()).Warn("form", "error", err)
	shield.SetFlash(w, shield.FlashError, "Invalid form submission")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// --- JSON API ---

// stateResponse is the JSON form of a store snapshot. Selection is null when
// unset.
type stateResponse struct {
	Elements  []element.Element `json:"elements"`
	Selection *string           `json:"selection"`
}

func (e *Editor) stateResponse() stateResponse {
	snap := e.store.Snapshot()
	resp := stateResponse{Elements: snap.Elements}
	if resp.Elements == nil {
		resp.Elements = []element.Element{}
	}
	if snap.Selected {
		sel := snap.Selection
		resp.Selection = &sel
	}
	return resp
}

func (e *Editor) handleState(w http.ResponseWriter, r *http.Request) {
	e.serveAPI(w, r, "state", e.stateEndpoint, nil)
}

func (e *Editor) handleNodes(w http.ResponseWriter, r *http.Request) {
	e.serveAPI(w, r, "nodes", e.nodesEndpoint, nil)
}

func (e *Editor) handleOutput(w http.ResponseWriter, _ *http.Request) {
	out, saved := e.Output()
	writeJSON(w, http.StatusOK, outputResponse{Output: out, Saved: saved})
}

func (e *Editor) handleJournal(w http.ResponseWriter, r *http.Request) {
	events, err := e.Journal(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (e *Editor) handleSelectJSON(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	e.serveAPI(w, r, "select", e.selectEndpoint, &req)
}

func (e *Editor) handleColorJSON(w http.ResponseWriter, r *http.Request) {
	var v mutate.ColorValue
	if err := decodeJSON(w, r, &v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	e.serveAPI(w, r, "update_color", e.colorEndpoint, &v)
}

func (e *Editor) handleSaveJSON(w http.ResponseWriter, r *http.Request) {
	e.serveAPI(w, r, "save", e.saveEndpoint, nil)
}

func (e *Editor) handleResetJSON(w http.ResponseWriter, r *http.Request) {
	e.serveAPI(w, r, "reset", e.resetEndpoint, nil)
}

// serveAPI runs ep tagged with the api transport and writes its response.
func (e *Editor) serveAPI(w http.ResponseWriter, r *http.Request, op string, ep kit.Endpoint, req any) {
	resp, err := e.endpoint(kit.TransportAPI, op, ep)(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- helpers ---

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
