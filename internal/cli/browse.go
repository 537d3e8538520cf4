package cli

import (
	"github.com/spf13/cobra"

	"github.com/jasperwreed/ai-usage/internal/tui"
)

func NewBrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [path]",
		Short: "Browse conversations in TUI",
		Long:  `Open an interactive terminal UI to browse and filter reconstructed conversations.`,
		Example: `  # Browse auto-discovered logs
  ai-usage browse

  # Browse a specific file or directory
  ai-usage browse ~/Downloads/claude_usage_data`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runBrowse(rt, path)
		},
	}

	return cmd
}

func runBrowse(rt *runtime, path string) error {
	input, err := rt.resolveInput(path)
	if err != nil {
		return err
	}

	a, err := rt.analyze(input)
	if err != nil {
		return err
	}

	return tui.NewBrowser(a.conversations, a.stats).Run()
}
