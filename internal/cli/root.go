package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jasperwreed/ai-usage/internal/capture"
	"github.com/jasperwreed/ai-usage/internal/config"
)

const debugEnv = "AI_USAGE_DEBUG"

var (
	configPath string
	verbose    bool
)

// runtime carries what every command needs after flags are parsed.
type runtime struct {
	cfg    config.Config
	out    io.Writer
	errOut io.Writer
	warn   *log.Logger
	debug  *log.Logger
	now    func() time.Time
}

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ai-usage",
		Short: "Usage analytics for Claude conversation logs",
		Long: `AI Usage - Analyze Claude conversation logs (.json / .jsonl) and report token usage,
sessions, models and activity as text, JSON, SQLite or a self-contained HTML dashboard.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/ai-usage/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output on stderr")

	rootCmd.AddCommand(
		NewReportCommand(),
		NewStatsCommand(),
		NewDashboardCommand(),
		NewExportCommand(),
		NewBrowseCommand(),
		NewScanCommand(),
	)

	return rootCmd
}

func newRuntime(cmd *cobra.Command) (*runtime, error) {
	errOut := cmd.ErrOrStderr()

	var (
		res *config.LoadResult
		err error
	)
	if configPath != "" {
		res, err = config.LoadFrom(configPath)
	} else {
		res, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	warn := log.New(errOut, "ai-usage: ", 0)
	for _, w := range res.Warnings {
		warn.Printf("warning: %s", w)
	}

	debugOut := io.Discard
	if verbose || os.Getenv(debugEnv) != "" {
		debugOut = errOut
	}

	return &runtime{
		cfg:    res.Config,
		out:    cmd.OutOrStdout(),
		errOut: errOut,
		warn:   warn,
		debug:  log.New(debugOut, "ai-usage: debug: ", 0),
		now:    time.Now,
	}, nil
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		if errors.Is(err, capture.ErrNoData) {
			fmt.Fprintln(os.Stderr, "No valid data found")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
