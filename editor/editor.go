// CLAUDE:SUMMARY Editor shell — owns the session store, dispatches select/color/save/reset one at a time, journals actions, serves HTTP and MCP.
// Package editor is the host of a protoboard session.
//
// It owns the state store, runs each user action (select, color pick, save,
// reset) to completion before the next one starts, keeps the display pane
// text produced by the last save, and records every action in the journal.
//
// Usage:
//
//	ed, err := editor.New(cfg, logger)
//	defer ed.Close()
//	http.ListenAndServe(cfg.Addr, ed.Handler())
package editor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hazyhaar/protoboard/dbopen"
	"github.com/hazyhaar/protoboard/element"
	"github.com/hazyhaar/protoboard/journal"
	"github.com/hazyhaar/protoboard/mutate"
	"github.com/hazyhaar/protoboard/render"
	"github.com/hazyhaar/protoboard/serialize"
	"github.com/hazyhaar/protoboard/store"
)

// Version is reported by the MCP server.
const Version = "1.0.0"

// ErrInvalidInput is returned when a request payload cannot be decoded.
var ErrInvalidInput = errors.New("editor: invalid input")

// Editor is one editing session.
type Editor struct {
	// mu serialises actions: each one updates the store and journals before
	// the next starts.
	mu     sync.Mutex
	store  *store.Store
	output string
	saved  bool

	db      *sql.DB
	journal *journal.Journal
	logger  *slog.Logger
	config  *Config
}

// New creates an Editor seeded from cfg and opens its journal.
func New(cfg *Config, logger *slog.Logger) (*Editor, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}
	if err := element.ValidateList(cfg.Seed); err != nil {
		return nil, fmt.Errorf("editor: seed: %w", err)
	}

	db, err := dbopen.Open(cfg.JournalPath, dbopen.WithMkdirAll(), dbopen.WithSchema(journal.Schema))
	if err != nil {
		return nil, fmt.Errorf("editor: journal: %w", err)
	}
	j := journal.New(db, journal.WithLogger(logger))

	ed := &Editor{
		store:   store.New(cfg.Seed),
		db:      db,
		journal: j,
		logger:  logger,
		config:  cfg,
	}
	if n, err := j.Cleanup(context.Background(), cfg.JournalRetention); err != nil {
		logger.Warn("editor: journal cleanup", "error", err)
	} else if n > 0 {
		logger.Info("editor: journal cleanup", "removed", n)
	}
	return ed, nil
}

// Close releases the journal database.
func (e *Editor) Close() error {
	return e.db.Close()
}

// Store returns the underlying state store (testing, admin).
func (e *Editor) Store() *store.Store {
	return e.store
}

// Config returns the effective configuration.
func (e *Editor) Config() *Config {
	return e.config
}

// State returns the current element list and selection.
func (e *Editor) State() store.Snapshot {
	return e.store.Snapshot()
}

// Nodes renders the current element list.
func (e *Editor) Nodes() []render.Node {
	return render.Render(e.store.Elements())
}

// Select sets the selection. Ids absent from the list are accepted.
func (e *Editor) Select(ctx context.Context, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev, had := e.store.Selection()
	e.store.Select(id)
	e.journal.Record(ctx, journal.Event{
		Action:    journal.ActionSelect,
		ElementID: id,
		Changed:   !had || prev != id,
	})
}

// ClearSelection unsets the selection.
func (e *Editor) ClearSelection(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, had := e.store.Selection()
	e.store.ClearSelection()
	e.journal.Record(ctx, journal.Event{Action: journal.ActionClear, Changed: had})
}

// PickColor applies a color picker value to the selected element and reports
// whether the state changed. A value without hex, an unset selection or a
// selection matching no element leave the state unchanged.
func (e *Editor) PickColor(ctx context.Context, v mutate.ColorValue) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := e.store.Snapshot()
	if v.Hex == nil {
		e.logger.DebugContext(ctx, "editor: color value without hex ignored")
		e.journal.Record(ctx, journal.Event{Action: journal.ActionColor, ElementID: snap.Selection})
		return false
	}

	changed := mutate.Changed(snap.Elements, snap.Selection, snap.Selected, *v.Hex)
	if changed {
		e.store.Replace(mutate.Apply(snap.Elements, snap.Selection, snap.Selected, v))
	}
	e.journal.Record(ctx, journal.Event{
		Action:    journal.ActionColor,
		ElementID: snap.Selection,
		Details:   *v.Hex,
		Changed:   changed,
	})
	return changed
}

// Save serializes the current state into the display pane and returns it.
func (e *Editor) Save(ctx context.Context) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	text := serialize.Serialize(e.store.Elements())
	changed := !e.saved || text != e.output
	e.output, e.saved = text, true
	e.journal.Record(ctx, journal.Event{Action: journal.ActionSave, Changed: changed})
	return text
}

// Output returns the display pane text and whether a save happened. The pane
// is empty before the first save.
func (e *Editor) Output() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.output, e.saved
}

// Reset restores the configured seed, clears the selection and empties the
// display pane, as a process restart would.
func (e *Editor) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.store.Replace(e.config.Seed)
	e.store.ClearSelection()
	e.output, e.saved = "", false
	e.journal.Record(ctx, journal.Event{Action: journal.ActionReset, Changed: true})
}

// Journal returns up to limit recorded actions, newest first.
func (e *Editor) Journal(ctx context.Context, limit int) ([]journal.Event, error) {
	return e.journal.Recent(ctx, limit)
}
