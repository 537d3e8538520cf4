package cli

import (
	"github.com/spf13/cobra"

	"github.com/jasperwreed/ai-usage/internal/report"
)

func NewStatsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats <path>",
		Short: "Show statistics about reconstructed conversations",
		Long: `Reconstruct conversations from a log file or directory and display aggregate usage:
totals, per-model conversations and tokens, activity status, project context and daily usage.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			return runStats(rt, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the statistics as JSON")

	return cmd
}

func runStats(rt *runtime, path string, asJSON bool) error {
	a, err := rt.analyze(path)
	if err != nil {
		return err
	}

	if asJSON {
		return report.WriteJSON(rt.out, a.stats)
	}
	return report.WriteUsageStats(rt.out, a.stats)
}
