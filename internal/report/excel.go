// Package report writes an Excel review workbook from an audit database.
package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matsen/refsift/internal/audit"
)

const (
	summarySheet = "Summary"
	droppedSheet = "Dropped"
)

// Write builds a workbook for the latest recorded run: a Summary sheet with
// the run metadata and per-stage counts, and a Dropped sheet listing every
// removed row for screening review.
func Write(db *audit.DB, path string) error {
	run, err := db.LatestRun()
	if err != nil {
		return err
	}
	stages, err := db.Stages(run.ID)
	if err != nil {
		return err
	}
	drops, err := db.Drops(run.ID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("building workbook: %w", err)
	}
	if _, err := f.NewSheet(droppedSheet); err != nil {
		return fmt.Errorf("building workbook: %w", err)
	}

	writeSummary(f, run, stages)
	writeDropped(f, drops)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeSummary(f *excelize.File, run audit.RunInfo, stages []audit.StageSummary) {
	f.SetCellValue(summarySheet, "A1", "inputs")
	f.SetCellValue(summarySheet, "B1", strings.Join(run.Inputs, "; "))
	f.SetCellValue(summarySheet, "A2", "started")
	f.SetCellValue(summarySheet, "B2", run.StartedAt.Format("2006-01-02 15:04:05"))
	f.SetCellValue(summarySheet, "A3", "rows in")
	f.SetCellValue(summarySheet, "B3", run.RowsIn)
	f.SetCellValue(summarySheet, "A4", "rows out")
	f.SetCellValue(summarySheet, "B4", run.RowsOut)

	f.SetCellValue(summarySheet, "A6", "stage")
	f.SetCellValue(summarySheet, "B6", "rows in")
	f.SetCellValue(summarySheet, "C6", "rows kept")
	f.SetCellValue(summarySheet, "D6", "rows dropped")
	for i, s := range stages {
		rowNum := i + 7
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", rowNum), s.Stage)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", rowNum), s.In)
		f.SetCellValue(summarySheet, fmt.Sprintf("C%d", rowNum), s.Kept)
		f.SetCellValue(summarySheet, fmt.Sprintf("D%d", rowNum), s.Dropped)
	}
}

func writeDropped(f *excelize.File, drops []audit.Drop) {
	f.SetCellValue(droppedSheet, "A1", "row")
	f.SetCellValue(droppedSheet, "B1", "stage")
	f.SetCellValue(droppedSheet, "C1", "reason")
	f.SetCellValue(droppedSheet, "D1", "duplicate of row")
	f.SetCellValue(droppedSheet, "E1", "title")
	for i, d := range drops {
		rowNum := i + 2
		f.SetCellValue(droppedSheet, fmt.Sprintf("A%d", rowNum), d.RowIndex)
		f.SetCellValue(droppedSheet, fmt.Sprintf("B%d", rowNum), d.Stage)
		f.SetCellValue(droppedSheet, fmt.Sprintf("C%d", rowNum), d.Reason)
		if d.DupOf >= 0 {
			f.SetCellValue(droppedSheet, fmt.Sprintf("D%d", rowNum), d.DupOf)
		}
		f.SetCellValue(droppedSheet, fmt.Sprintf("E%d", rowNum), d.Title)
	}
}
