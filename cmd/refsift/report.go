package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/refsift/internal/audit"
	"github.com/matsen/refsift/internal/report"
)

var reportOut string

func init() {
	reportCmd.Flags().StringVar(&reportOut, "out", "refsift_report.xlsx", "Output workbook path")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <run.db>",
	Short: "Write an Excel review workbook from an audit database",
	Long: `Build a review workbook from an audit database written by
"refsift dedup --audit": a Summary sheet with per-stage counts and a
Dropped sheet listing every removed row.

Usage:
  refsift report run.db
  refsift report run.db --out screening_review.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	db, err := audit.OpenExisting(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	defer db.Close()

	if err := report.Write(db, reportOut); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("wrote %s\n", reportOut)
		return nil
	}
	return outputJSON(StatusResponse{Status: "written", Path: reportOut})
}
