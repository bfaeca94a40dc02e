package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/refsift/internal/audit"
	"github.com/matsen/refsift/internal/dataset"
	"github.com/matsen/refsift/internal/dedup"
	"github.com/matsen/refsift/internal/split"
)

var (
	dedupConfigPath string
	dedupAuditPath  string
)

func init() {
	dedupCmd.Flags().StringVar(&dedupConfigPath, "config", "", "Config file (default: .refsift.yml if present)")
	dedupCmd.Flags().Int("max-mb", 0, "Maximum part file size in MB (default 90)")
	dedupCmd.Flags().String("title-col", "", "Title column name (default \"title\")")
	dedupCmd.Flags().String("abstract-col", "", "Abstract column name (default \"abstract\")")
	dedupCmd.Flags().String("out-dir", "", "Directory for part files (default: working directory)")
	dedupCmd.Flags().String("base", "", "Part file base name (default: first input file's stem)")
	dedupCmd.Flags().StringVar(&dedupAuditPath, "audit", "", "Record the run in a SQLite audit database at this path")
	rootCmd.AddCommand(dedupCmd)
}

var dedupCmd = &cobra.Command{
	Use:   "dedup <file.csv>...",
	Short: "Deduplicate CSV exports and write size-bounded part files",
	Long: `Deduplicate one or more CSV exports and split the result.

Rows are removed in six passes, each keeping the first row in input order:
exact title match, then titles matching after dropping the first, last,
second, or middle word, then exact abstract match (skipped when the export
has no abstract column). Surviving rows are written as
<base>_part_<N>.csv files, each within the size limit.

Usage:
  refsift dedup export.csv
  refsift dedup a.csv b.csv --max-mb 50 --out-dir cleaned
  refsift dedup export.csv --audit run.db`,
	Args: cobra.ArbitraryArgs,
	RunE: runDedup,
}

// PartInfo describes one written part file.
type PartInfo struct {
	Path  string `json:"path"`
	Rows  int    `json:"rows"`
	Bytes int    `json:"bytes"`
}

// DedupResult is the run summary for the dedup command.
type DedupResult struct {
	Inputs  []string           `json:"inputs"`
	RowsIn  int                `json:"rows_in"`
	RowsOut int                `json:"rows_out"`
	Stages  []dedup.StageStats `json:"stages"`
	Parts   []PartInfo         `json:"parts"`
}

func runDedup(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd, dedupConfigPath)

	// Selecting no input files is a benign no-op, not an error.
	if len(args) == 0 {
		if humanOutput {
			outputHuman("no input files\n")
		} else {
			outputJSON(StatusResponse{Status: "no input files"})
		}
		return nil
	}

	ds := loadDataset(args, cfg)
	titleCol := ds.ColumnIndex(cfg.TitleColumn)

	var run *audit.Run
	var auditErr error
	opts := dedup.Options{
		TitleColumn:    cfg.TitleColumn,
		AbstractColumn: cfg.AbstractColumn,
	}

	if dedupAuditPath != "" {
		db, err := audit.Open(dedupAuditPath)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		defer db.Close()

		run, err = db.BeginRun(args, ds.Len())
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		opts.OnDrop = func(stage string, row dataset.Row, dupOf int) {
			if auditErr != nil {
				return
			}
			auditErr = run.RecordDrop(stage, row.Index, row.Value(titleCol), dupOf)
		}
	}

	res := dedup.Run(ds, opts)
	if auditErr != nil {
		exitWithError(ExitError, "%v", auditErr)
	}

	if run != nil {
		for i, s := range res.Stages {
			if err := run.RecordStage(i, s.Stage, s.In, s.Kept, s.Dropped); err != nil {
				exitWithError(ExitError, "%v", err)
			}
		}
		if err := run.Finish(res.Dataset.Len()); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	chunks := split.Plan(res.Dataset, cfg.MaxBytes())
	paths, err := split.Write(res.Dataset, chunks, cfg.OutputDir, outputBase(cfg, args))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	result := DedupResult{
		Inputs:  args,
		RowsIn:  ds.Len(),
		RowsOut: res.Dataset.Len(),
		Stages:  res.Stages,
		Parts:   make([]PartInfo, len(chunks)),
	}
	for i, chunk := range chunks {
		result.Parts[i] = PartInfo{Path: paths[i], Rows: len(chunk.Rows), Bytes: chunk.Bytes}
	}

	if humanOutput {
		printDedupHuman(result)
		return nil
	}
	return outputJSON(result)
}

func printDedupHuman(r DedupResult) {
	outputHuman("%d rows in, %d rows out\n", r.RowsIn, r.RowsOut)
	for _, s := range r.Stages {
		outputHuman("  %-18s kept %d, dropped %d\n", s.Stage, s.Kept, s.Dropped)
	}
	for _, p := range r.Parts {
		outputHuman("wrote %s (%d rows, %s)\n", p.Path, p.Rows, formatBytes(int64(p.Bytes)))
	}
}
