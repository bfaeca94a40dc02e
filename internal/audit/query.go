package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// RunInfo describes a recorded run.
type RunInfo struct {
	ID         int64     `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
	Inputs     []string  `json:"inputs"`
	RowsIn     int       `json:"rows_in"`
	RowsOut    int       `json:"rows_out"`
}

// StageSummary is one pass's recorded row counts.
type StageSummary struct {
	Stage   string `json:"stage"`
	In      int    `json:"rows_in"`
	Kept    int    `json:"rows_kept"`
	Dropped int    `json:"rows_dropped"`
}

// Drop is one recorded row removal. DupOf is -1 for short-title removals.
type Drop struct {
	Stage    string `json:"stage"`
	RowIndex int    `json:"row_index"`
	Title    string `json:"title"`
	DupOf    int    `json:"dup_of"`
	Reason   string `json:"reason"`
}

// LatestRun returns the most recently started run.
func (d *DB) LatestRun() (RunInfo, error) {
	row := d.db.QueryRow(
		"SELECT id, started_at, finished_at, inputs_json, rows_in, rows_out FROM runs ORDER BY id DESC LIMIT 1",
	)

	var info RunInfo
	var started int64
	var finished, rowsOut sql.NullInt64
	var inputsJSON string
	if err := row.Scan(&info.ID, &started, &finished, &inputsJSON, &info.RowsIn, &rowsOut); err != nil {
		if err == sql.ErrNoRows {
			return info, fmt.Errorf("audit database contains no runs")
		}
		return info, fmt.Errorf("reading run: %w", err)
	}

	info.StartedAt = time.Unix(started, 0)
	if finished.Valid {
		info.FinishedAt = time.Unix(finished.Int64, 0)
	}
	if rowsOut.Valid {
		info.RowsOut = int(rowsOut.Int64)
	}
	if err := json.Unmarshal([]byte(inputsJSON), &info.Inputs); err != nil {
		return info, fmt.Errorf("decoding run inputs: %w", err)
	}
	return info, nil
}

// Stages returns a run's per-pass statistics in pass order.
func (d *DB) Stages(runID int64) ([]StageSummary, error) {
	rows, err := d.db.Query(
		"SELECT stage, rows_in, rows_kept, rows_dropped FROM stages WHERE run_id = ? ORDER BY seq",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("reading stages: %w", err)
	}
	defer rows.Close()

	var stages []StageSummary
	for rows.Next() {
		var s StageSummary
		if err := rows.Scan(&s.Stage, &s.In, &s.Kept, &s.Dropped); err != nil {
			return nil, fmt.Errorf("reading stages: %w", err)
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}

// Drops returns a run's removed rows ordered by original row index.
func (d *DB) Drops(runID int64) ([]Drop, error) {
	rows, err := d.db.Query(
		"SELECT stage, row_index, title, dup_of, reason FROM drops WHERE run_id = ? ORDER BY row_index",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("reading drops: %w", err)
	}
	defer rows.Close()

	var drops []Drop
	for rows.Next() {
		var drop Drop
		var dupOf sql.NullInt64
		if err := rows.Scan(&drop.Stage, &drop.RowIndex, &drop.Title, &dupOf, &drop.Reason); err != nil {
			return nil, fmt.Errorf("reading drops: %w", err)
		}
		drop.DupOf = -1
		if dupOf.Valid {
			drop.DupOf = int(dupOf.Int64)
		}
		drops = append(drops, drop)
	}
	return drops, rows.Err()
}
