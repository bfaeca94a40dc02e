package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/refsift/internal/split"
)

var splitConfigPath string

func init() {
	splitCmd.Flags().StringVar(&splitConfigPath, "config", "", "Config file (default: .refsift.yml if present)")
	splitCmd.Flags().Int("max-mb", 0, "Maximum part file size in MB (default 90)")
	splitCmd.Flags().String("title-col", "", "Title column name (default \"title\")")
	splitCmd.Flags().String("out-dir", "", "Directory for part files (default: working directory)")
	splitCmd.Flags().String("base", "", "Part file base name (default: first input file's stem)")
	rootCmd.AddCommand(splitCmd)
}

var splitCmd = &cobra.Command{
	Use:   "split <file.csv>...",
	Short: "Split CSV exports into size-bounded part files without deduplicating",
	Long: `Split one or more CSV exports into <base>_part_<N>.csv files, each
within the size limit, without running any dedup pass.

Usage:
  refsift split export.csv --max-mb 50`,
	Args: cobra.ArbitraryArgs,
	RunE: runSplit,
}

// SplitResult is the run summary for the split command.
type SplitResult struct {
	Inputs []string   `json:"inputs"`
	Rows   int        `json:"rows"`
	Parts  []PartInfo `json:"parts"`
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd, splitConfigPath)

	if len(args) == 0 {
		if humanOutput {
			outputHuman("no input files\n")
		} else {
			outputJSON(StatusResponse{Status: "no input files"})
		}
		return nil
	}

	ds := loadDataset(args, cfg)

	chunks := split.Plan(ds, cfg.MaxBytes())
	paths, err := split.Write(ds, chunks, cfg.OutputDir, outputBase(cfg, args))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	result := SplitResult{
		Inputs: args,
		Rows:   ds.Len(),
		Parts:  make([]PartInfo, len(chunks)),
	}
	for i, chunk := range chunks {
		result.Parts[i] = PartInfo{Path: paths[i], Rows: len(chunk.Rows), Bytes: chunk.Bytes}
	}

	if humanOutput {
		for _, p := range result.Parts {
			outputHuman("wrote %s (%d rows, %s)\n", p.Path, p.Rows, formatBytes(int64(p.Bytes)))
		}
		return nil
	}
	return outputJSON(result)
}
