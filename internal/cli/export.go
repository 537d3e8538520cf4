package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jasperwreed/ai-usage/internal/report"
	"github.com/jasperwreed/ai-usage/internal/storage"
)

func NewExportCommand() *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export conversations and usage statistics",
		Long: `Export reconstructed conversations together with the aggregate usage statistics,
either as a JSON document or as a SQLite database that is recreated on every run.`,
		Example: `  # JSON to stdout
  ai-usage export conversations.jsonl

  # JSON to a file
  ai-usage export ~/claude_usage_data --output usage.json

  # SQLite database
  ai-usage export ~/claude_usage_data --format sqlite --output usage.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			return runExport(rt, args[0], format, output)
		},
	}

	cmd.Flags().StringVar(&format, "format", FormatJSON, "Export format (json or sqlite)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (required for sqlite, stdout for json when empty)")

	return cmd
}

func runExport(rt *runtime, path, format, output string) error {
	v := NewValidator()
	if err := v.ValidateFormat(format); err != nil {
		return err
	}
	if format == FormatSQLite || output != "" {
		if err := v.ValidateOutput(output); err != nil {
			return err
		}
	}

	a, err := rt.analyze(path)
	if err != nil {
		return err
	}

	if format == FormatSQLite {
		return exportSQLite(rt, a, output)
	}
	return exportJSON(rt, a, output)
}

func exportJSON(rt *runtime, a *analysis, output string) error {
	doc := report.Document{UsageStats: a.stats, Conversations: a.conversations}

	if output == "" {
		return report.WriteJSON(rt.out, doc)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := report.WriteJSON(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Fprintf(rt.errOut, "Exported %d conversations to %s\n", len(a.conversations), output)
	return nil
}

func exportSQLite(rt *runtime, a *analysis, output string) error {
	store, err := storage.NewSQLiteStore(output)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if err := store.SaveConversations(a.conversations); err != nil {
		return fmt.Errorf("failed to save conversations: %w", err)
	}
	if err := store.SaveUsageStats(a.stats); err != nil {
		return fmt.Errorf("failed to save usage stats: %w", err)
	}

	sum, err := store.Summary()
	if err != nil {
		return fmt.Errorf("failed to summarize export: %w", err)
	}

	fmt.Fprintf(rt.errOut, "Exported %s conversations, %s messages, %s tokens to %s\n",
		humanize.Comma(int64(sum.Conversations)),
		humanize.Comma(int64(sum.Messages)),
		humanize.Comma(int64(sum.Tokens)),
		store.Path())
	return nil
}
