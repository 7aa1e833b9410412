// Package journal records the user actions of an editing session (select,
// color change, save, reset) in SQLite.
//
// The journal only describes what happened; it never stores the element
// state and is not read back into the editor. Recording is non-blocking:
// write errors are logged via slog and never fail the action.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hazyhaar/protoboard/kit"
)

// Schema is the journal DDL. All statements are idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS edit_events (
    event_id   TEXT PRIMARY KEY,
    action     TEXT NOT NULL,
    element_id TEXT NOT NULL DEFAULT '',
    details    TEXT NOT NULL DEFAULT '',
    transport  TEXT NOT NULL DEFAULT 'http',
    trace_id   TEXT NOT NULL DEFAULT '',
    changed    INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_edit_events_created ON edit_events(created_at DESC);
`

// Action names a user action.
type Action string

const (
	ActionSelect Action = "select"
	ActionClear  Action = "clear_selection"
	ActionColor  Action = "update_color"
	ActionSave   Action = "save"
	ActionReset  Action = "reset"
)

// Event is one journal row.
type Event struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	ElementID string    `json:"element_id,omitempty"`
	Details   string    `json:"details,omitempty"`
	Transport string    `json:"transport"`
	TraceID   string    `json:"trace_id,omitempty"`
	Changed   bool      `json:"changed"`
	CreatedAt time.Time `json:"created_at"`
}

// Journal writes and lists events.
type Journal struct {
	db     *sql.DB
	newID  func() string
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Journal.
type Option func(*Journal)

// WithIDGenerator sets the event ID generator.
func WithIDGenerator(gen func() string) Option {
	return func(j *Journal) { j.newID = gen }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) { j.now = now }
}

// WithLogger sets the logger used for write failures.
func WithLogger(l *slog.Logger) Option {
	return func(j *Journal) { j.logger = l }
}

// New creates a Journal on db. The edit_events table must exist: open db with
// dbopen.WithSchema(Schema), as the editor does, or call Init.
func New(db *sql.DB, opts ...Option) *Journal {
	j := &Journal{
		db:     db,
		newID:  func() string { return "evt_" + uuid.Must(uuid.NewV7()).String() },
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(j)
	}
	return j
}

// Init applies Schema to a database opened without it.
func (j *Journal) Init(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("journal: schema: %w", err)
	}
	return nil
}

// Record stores ev. ID and CreatedAt are filled when empty; Transport and
// TraceID default to the values carried by ctx.
func (j *Journal) Record(ctx context.Context, ev Event) Event {
	if ev.ID == "" {
		ev.ID = j.newID()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = j.now()
	}
	if ev.Transport == "" {
		ev.Transport = kit.GetTransport(ctx)
	}
	if ev.TraceID == "" {
		ev.TraceID = kit.GetTraceID(ctx)
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO edit_events (
			event_id, action, element_id, details, transport, trace_id, changed, created_at
		) VALUES (?,?,?,?,?,?,?,?)`,
		ev.ID, string(ev.Action), ev.ElementID, ev.Details, ev.Transport, ev.TraceID,
		ev.Changed, ev.CreatedAt.UnixMilli())
	if err != nil {
		j.logger.Error("journal record failed", "error", err, "action", ev.Action)
	}
	return ev
}

// Recent returns up to limit events, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT event_id, action, element_id, details, transport, trace_id, changed, created_at
		FROM edit_events ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: recent: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var (
			ev      Event
			action  string
			created int64
		)
		if err := rows.Scan(&ev.ID, &action, &ev.ElementID, &ev.Details, &ev.Transport, &ev.TraceID, &ev.Changed, &created); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		ev.Action = Action(action)
		ev.CreatedAt = time.UnixMilli(created)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Cleanup deletes events older than retention and returns how many were
// removed. A non-positive retention keeps everything.
func (j *Journal) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	cutoff := j.now().Add(-retention).UnixMilli()
	res, err := j.db.ExecContext(ctx, `DELETE FROM edit_events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("journal: cleanup: %w", err)
	}
	return res.RowsAffected()
}
