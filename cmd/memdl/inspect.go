package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gyeh/memdl/internal/exitcode"
	"github.com/gyeh/memdl/internal/logging"
	"github.com/gyeh/memdl/internal/model"
	"github.com/gyeh/memdl/internal/report"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <report.parquet>",
	Short: "Summarize a run report written with --report",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)

	rows, err := report.ReadAll(args[0])
	if err != nil {
		log.Error().Err(err).Msg("failed to read report")
		os.Exit(exitcode.UsageError)
	}
	s := summarizeReport(rows)

	fmt.Println("=== memdl report ===")
	fmt.Printf("Report:      %s\n", args[0])
	fmt.Printf("Runs:        %d\n", len(s.runs))
	fmt.Printf("Downloaded:  %d (%s)\n", s.statuses[model.StatusDownloaded], humanize.IBytes(uint64(s.bytes)))
	fmt.Printf("Skipped:     %d\n", s.statuses[model.StatusSkipped])
	fmt.Printf("Failed:      %d\n", s.statuses[model.StatusFailed])
	for _, f := range s.failures {
		fmt.Printf("  %s  %s\n", f.Filename, f.Error)
	}
	return nil
}

type reportSummary struct {
	runs     map[string]struct{}
	statuses map[string]int
	bytes    int64
	failures []model.OutcomeRow
}

func summarizeReport(rows []model.OutcomeRow) reportSummary {
	s := reportSummary{
		runs:     make(map[string]struct{}),
		statuses: make(map[string]int),
	}
	for _, row := range rows {
		s.runs[row.RunID] = struct{}{}
		s.statuses[row.Status]++
		s.bytes += row.Bytes
		if row.Status == model.StatusFailed {
			s.failures = append(s.failures, row)
		}
	}
	return s
}
