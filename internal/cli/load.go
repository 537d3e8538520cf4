package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/jasperwreed/ai-usage/internal/capture"
	"github.com/jasperwreed/ai-usage/internal/classify"
	"github.com/jasperwreed/ai-usage/internal/models"
	"github.com/jasperwreed/ai-usage/internal/scanner"
	"github.com/jasperwreed/ai-usage/internal/stats"
)

// analysis is one run of the conversation pipeline.
type analysis struct {
	batch         *capture.Batch
	conversations []models.Conversation
	stats         models.UsageStats
}

func (rt *runtime) newCapturer() *capture.Capturer {
	a := rt.cfg.Analysis
	th := classify.Thresholds{Active: a.ActiveWindow(), Recent: a.RecentWindow()}
	matcher := classify.NewContextMatcher(classify.DefaultRules, a.ContextMessages, a.ContextChars)

	return capture.NewCapturer(capture.Options{
		Logger:     rt.warn,
		Estimator:  capture.NewCharTokenEstimator(a.CharsPerToken),
		Classifier: classify.NewClassifier(th, matcher),
	})
}

// loadEntries reads path and reports what was found on stderr.
func (rt *runtime) loadEntries(c *capture.Capturer, path string) (*capture.Batch, error) {
	rt.debug.Printf("loading %s", path)

	batch, err := c.LoadPath(path)
	if batch != nil {
		jsonFiles := lo.CountBy(batch.Files, func(f string) bool {
			return strings.EqualFold(filepath.Ext(f), ".json")
		})
		fmt.Fprintf(rt.errOut, "Found %d JSON files and %d JSONL files\n", jsonFiles, len(batch.Files)-jsonFiles)
		rt.debug.Printf("%d entries loaded, %d skipped, %d files failed", len(batch.Entries), batch.Skipped, len(batch.Failed))
	}
	return batch, err
}

func (rt *runtime) analyze(path string) (*analysis, error) {
	c := rt.newCapturer()
	batch, err := rt.loadEntries(c, path)
	if err != nil {
		return nil, err
	}

	convs := c.Conversations(batch.Entries, rt.now())
	rt.debug.Printf("%d conversations reconstructed", len(convs))

	return &analysis{
		batch:         batch,
		conversations: convs,
		stats:         stats.NewCalculator().Compute(convs),
	}, nil
}

// resolveInput returns path, or the first auto-discovered data directory
// when path is empty.
func (rt *runtime) resolveInput(path string) (string, error) {
	if path != "" {
		return path, nil
	}

	s := scanner.NewClaudeScanner(rt.cfg.Discovery.ExtraPaths...)
	dir, ok := s.Discover()
	if !ok {
		return "", fmt.Errorf("no Claude usage data found in %d candidate locations; pass a path or --data-dir", len(s.ScanPaths()))
	}
	fmt.Fprintf(rt.errOut, "Using data directory: %s\n", dir)
	return dir, nil
}
