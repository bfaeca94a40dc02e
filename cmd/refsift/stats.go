package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/refsift/internal/audit"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats <run.db>",
	Short: "Show per-stage drop counts from an audit database",
	Long: `Show the latest recorded run from an audit database written by
"refsift dedup --audit".

Usage:
  refsift stats run.db`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

// StatsResult is the output of the stats command.
type StatsResult struct {
	Run    audit.RunInfo        `json:"run"`
	Stages []audit.StageSummary `json:"stages"`
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := audit.OpenExisting(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	defer db.Close()

	run, err := db.LatestRun()
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	stages, err := db.Stages(run.ID)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		outputHuman("run %d: %d rows in, %d rows out\n", run.ID, run.RowsIn, run.RowsOut)
		for _, s := range stages {
			outputHuman("  %-18s kept %d, dropped %d\n", s.Stage, s.Kept, s.Dropped)
		}
		return nil
	}
	return outputJSON(StatsResult{Run: run, Stages: stages})
}
