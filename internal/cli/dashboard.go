package cli

import (
	"fmt"
	"os"
	"os/exec"
	goruntime "runtime"

	"github.com/spf13/cobra"

	"github.com/jasperwreed/ai-usage/internal/report"
)

type dashboardFlags struct {
	auto    bool
	dataDir string
	output  string
	open    bool
}

func NewDashboardCommand() *cobra.Command {
	var flags dashboardFlags

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Generate an HTML usage dashboard",
		Long: `Build a self-contained HTML dashboard from Claude conversation logs. Without --data-dir
the usual Claude data locations for this OS are searched and the first one holding logs is used.`,
		Example: `  # Discover logs automatically
  ai-usage dashboard --auto

  # Use a specific export and open the result
  ai-usage dashboard --data-dir ~/Downloads/claude_usage_data --open

  # Custom output file
  ai-usage dashboard --data-dir conversations.json --output usage.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			if flags.output == "" {
				flags.output = rt.cfg.Dashboard.Output
			}
			return runDashboard(rt, flags, openBrowser)
		},
	}

	cmd.Flags().BoolVar(&flags.auto, "auto", false, "Auto-discover Claude data directories (default when --data-dir is not set)")
	cmd.Flags().StringVar(&flags.dataDir, "data-dir", "", "Log file (.json/.jsonl) or directory to analyze")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output HTML file (default from config: claude_dashboard.html)")
	cmd.Flags().BoolVar(&flags.open, "open", false, "Open the dashboard in a browser")
	cmd.MarkFlagsMutuallyExclusive("auto", "data-dir")

	return cmd
}

func runDashboard(rt *runtime, flags dashboardFlags, opener func(string) error) error {
	v := NewValidator()

	if flags.dataDir != "" {
		if err := v.ValidateDataPath(flags.dataDir); err != nil {
			return err
		}
	}
	if err := v.ValidateOutput(flags.output); err != nil {
		return err
	}

	input, err := rt.resolveInput(flags.dataDir)
	if err != nil {
		return err
	}

	a, err := rt.analyze(input)
	if err != nil {
		return err
	}

	f, err := os.Create(flags.output)
	if err != nil {
		return fmt.Errorf("failed to create dashboard file: %w", err)
	}

	opts := report.DashboardOptions{
		Title:            rt.cfg.Dashboard.Title,
		MaxConversations: rt.cfg.Dashboard.MaxConversations,
		PreviewChars:     rt.cfg.Dashboard.PreviewChars,
		GeneratedAt:      rt.now(),
	}
	if err := report.WriteDashboard(f, a.conversations, a.stats, opts); err != nil {
		f.Close()
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write dashboard: %w", err)
	}

	path, err := v.ResolvePath(flags.output)
	if err != nil {
		return err
	}
	fmt.Fprintf(rt.out, "Dashboard generated: %s\n", path)
	fmt.Fprintf(rt.out, "Conversations: %d, messages: %d, tokens: %d\n",
		a.stats.TotalConversations, a.stats.TotalMessages, a.stats.TotalTokens)

	if flags.open {
		if err := opener(path); err != nil {
			rt.warn.Printf("warning: could not open browser: %v", err)
		}
	}
	return nil
}

func openBrowser(path string) error {
	var cmd *exec.Cmd
	switch goruntime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
