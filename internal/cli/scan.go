package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/jasperwreed/ai-usage/internal/scanner"
)

func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan system for Claude usage data",
		Long: `List the directories searched when no input path is given, in priority order,
and the log files each one contributes. The first directory with logs is the one
dashboard and browse pick up automatically.`,
		Example: `  # Show discovered data directories
  ai-usage scan

  # Include missing candidates and per-file details
  ai-usage scan --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			return runScan(rt, scanner.NewClaudeScanner(rt.cfg.Discovery.ExtraPaths...))
		},
	}

	return cmd
}

func runScan(rt *runtime, s scanner.Scanner) error {
	fmt.Fprintf(rt.out, "🔍 Scanning for %s usage data...\n\n", s.Name())

	sessions, err := s.ScanForSessions()
	if err != nil {
		return fmt.Errorf("failed to scan: %w", err)
	}
	byDir := lo.GroupBy(sessions, func(si scanner.SessionInfo) string {
		return filepath.Dir(si.Path)
	})

	selected := ""
	for _, dir := range s.ScanPaths() {
		found := byDir[dir]
		if len(found) == 0 {
			if verbose {
				fmt.Fprintf(rt.out, "  · %s (no logs)\n", dir)
			}
			continue
		}

		marker := ""
		if selected == "" {
			selected = dir
			marker = "  <- used by default"
		}
		size := lo.SumBy(found, func(si scanner.SessionInfo) int64 { return si.Size })
		fmt.Fprintf(rt.out, "📁 %s (%d files, %s)%s\n", dir, len(found), humanize.Bytes(uint64(size)), marker)

		if verbose {
			for _, si := range found {
				fmt.Fprintf(rt.out, "    • %s  %s  %s\n", filepath.Base(si.Path), humanize.Bytes(uint64(si.Size)), si.ModTime)
			}
		}
	}

	total := lo.SumBy(sessions, func(si scanner.SessionInfo) int64 { return si.Size })
	fmt.Fprintln(rt.out)
	fmt.Fprintln(rt.out, "═══════════════════════════════════")
	fmt.Fprintf(rt.out, "Total log files found: %d (%s)\n", len(sessions), humanize.Bytes(uint64(total)))
	if selected == "" {
		fmt.Fprintln(rt.out, "No usage data found. Pass a path explicitly or add extra_paths to the config.")
	}

	return nil
}
