package cli

import (
	"github.com/spf13/cobra"

	"github.com/jasperwreed/ai-usage/internal/report"
	"github.com/jasperwreed/ai-usage/internal/stats"
)

func NewReportCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Summarize raw log entries",
		Long: `Print entry-level statistics for a log file or directory: message and session
counts, token usage from recorded usage blocks, model usage and the activity timeline.`,
		Example: `  # Text report
  ai-usage report conversations.jsonl

  # Machine-readable report
  ai-usage report conversations.jsonl --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			return runReport(rt, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the report as JSON")

	return cmd
}

func runReport(rt *runtime, path string, asJSON bool) error {
	batch, err := rt.loadEntries(rt.newCapturer(), path)
	if err != nil {
		return err
	}

	r := stats.ComputeEntryReport(batch.Entries)
	if asJSON {
		return report.WriteJSON(rt.out, r)
	}
	return report.WriteEntryReport(rt.out, r)
}
