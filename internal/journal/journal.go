// Package journal records engine operations in an embedded SQLite database:
// one row per load, merge, rebuild, export, or bootstrap, with record counts,
// duration, and error text. The journal is an audit trail, not a backing
// store; ledger data lives only in the workbook.
package journal

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// Kind labels the engine operation an entry describes.
type Kind string

const (
	KindBootstrap Kind = "bootstrap"
	KindLoad      Kind = "load"
	KindMerge     Kind = "merge"
	KindRebuild   Kind = "rebuild"
	KindExport    Kind = "export"
)

// Op is one operation to journal.
type Op struct {
	Kind       Kind
	RecordsIn  int
	RecordsOut int
	Partitions int
	Duration   time.Duration
	Err        error
}

// Entry is a persisted journal row.
type Entry struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	RecordsIn  int       `json:"records_in"`
	RecordsOut int       `json:"records_out"`
	Partitions int       `json:"partitions"`
	DurationMS int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Journal is a SQLite-backed operation log.
type Journal struct {
	db *sql.DB
}

// Open opens (or creates) the journal database and configures WAL mode.
func Open(dsn string) (*Journal, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "journal: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "journal: exec %s", pragma)
		}
	}
	return &Journal{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS operations (
	id          TEXT PRIMARY KEY,
	kind        TEXT NOT NULL,
	records_in  INTEGER NOT NULL DEFAULT 0,
	records_out INTEGER NOT NULL DEFAULT 0,
	partitions  INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	error       TEXT,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_operations_kind ON operations(kind);
CREATE INDEX IF NOT EXISTS idx_operations_created_at ON operations(created_at);
`

// Migrate creates the schema.
func (j *Journal) Migrate(ctx context.Context) error {
	_, err := j.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "journal: migrate")
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record inserts one operation entry.
func (j *Journal) Record(ctx context.Context, op Op) error {
	errText := ""
	if op.Err != nil {
		errText = op.Err.Error()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO operations (id, kind, records_in, records_out, partitions, duration_ms, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), string(op.Kind), op.RecordsIn, op.RecordsOut,
		op.Partitions, op.Duration.Milliseconds(), errText, time.Now().UTC(),
	)
	return eris.Wrap(err, "journal: insert operation")
}

// List returns the most recent entries, newest first.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, kind, records_in, records_out, partitions, duration_ms, error, created_at
		 FROM operations ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "journal: list")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind, errText string
		if err := rows.Scan(&e.ID, &kind, &e.RecordsIn, &e.RecordsOut, &e.Partitions, &e.DurationMS, &errText, &e.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "journal: scan entry")
		}
		e.Kind = Kind(kind)
		e.Error = errText
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "journal: iterate")
}
