// Package audit records dedup runs in a SQLite database so removed rows
// can be reviewed before re-import.
package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite audit database.
type DB struct {
	db *sql.DB
}

// Open opens or creates an audit database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating audit schema: %w", err)
	}

	return &DB{db: db}, nil
}

// OpenExisting opens an audit database that must already exist, for the
// read-only stats and report commands.
func OpenExisting(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("audit database %s: %w", path, err)
	}
	return Open(path)
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at INTEGER NOT NULL,
			finished_at INTEGER,
			inputs_json TEXT NOT NULL,
			rows_in INTEGER NOT NULL,
			rows_out INTEGER
		);

		CREATE TABLE IF NOT EXISTS stages (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			seq INTEGER NOT NULL,
			stage TEXT NOT NULL,
			rows_in INTEGER NOT NULL,
			rows_kept INTEGER NOT NULL,
			rows_dropped INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		);

		CREATE TABLE IF NOT EXISTS drops (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			stage TEXT NOT NULL,
			row_index INTEGER NOT NULL,
			title TEXT NOT NULL,
			dup_of INTEGER,
			reason TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_drops_run ON drops(run_id);
	`
	_, err := db.Exec(schema)
	return err
}

// Drop reasons recorded for removed rows.
const (
	ReasonDuplicate  = "duplicate"
	ReasonShortTitle = "short-title"
)

// Run is an in-progress audit record for one dedup run.
type Run struct {
	db *DB
	id int64
}

// ID returns the run's database id.
func (r *Run) ID() int64 {
	return r.id
}

// BeginRun inserts a run record and returns a handle for recording drops
// and stage statistics against it.
func (d *DB) BeginRun(inputs []string, rowsIn int) (*Run, error) {
	inputsJSON, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("encoding inputs: %w", err)
	}
	res, err := d.db.Exec(
		"INSERT INTO runs (started_at, inputs_json, rows_in) VALUES (?, ?, ?)",
		time.Now().Unix(), string(inputsJSON), rowsIn,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("inserting run: %w", err)
	}
	return &Run{db: d, id: id}, nil
}

// RecordDrop records one removed row. dupOf is the dataset index of the
// surviving duplicate, or -1 for a short-title removal.
func (r *Run) RecordDrop(stage string, rowIndex int, title string, dupOf int) error {
	reason := ReasonDuplicate
	var dup interface{} = dupOf
	if dupOf < 0 {
		reason = ReasonShortTitle
		dup = nil
	}
	_, err := r.db.db.Exec(
		"INSERT INTO drops (run_id, stage, row_index, title, dup_of, reason) VALUES (?, ?, ?, ?, ?, ?)",
		r.id, stage, rowIndex, title, dup, reason,
	)
	if err != nil {
		return fmt.Errorf("recording drop: %w", err)
	}
	return nil
}

// RecordStage records one pass's row counts. seq preserves pass order.
func (r *Run) RecordStage(seq int, stage string, in, kept, dropped int) error {
	_, err := r.db.db.Exec(
		"INSERT INTO stages (run_id, seq, stage, rows_in, rows_kept, rows_dropped) VALUES (?, ?, ?, ?, ?, ?)",
		r.id, seq, stage, in, kept, dropped,
	)
	if err != nil {
		return fmt.Errorf("recording stage: %w", err)
	}
	return nil
}

// Finish marks the run complete with its final row count.
func (r *Run) Finish(rowsOut int) error {
	_, err := r.db.db.Exec(
		"UPDATE runs SET finished_at = ?, rows_out = ? WHERE id = ?",
		time.Now().Unix(), rowsOut, r.id,
	)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	return nil
}
