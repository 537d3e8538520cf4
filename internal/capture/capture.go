package capture

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"time"

	"github.com/jasperwreed/ai-usage/internal/classify"
	"github.com/jasperwreed/ai-usage/internal/models"
	"github.com/jasperwreed/ai-usage/internal/scanner"
)

// Batch is everything recovered from one load.
type Batch struct {
	Files   []string
	Failed  []string
	Entries []models.RawEntry
	Skipped int
}

type Options struct {
	// Logger receives per-record and per-file warnings.
	Logger     *log.Logger
	Estimator  TokenEstimator
	Classifier *classify.Classifier
}

// Capturer loads log files and turns them into classified conversations.
type Capturer struct {
	logger        *log.Logger
	parser        *RecordParser
	reconstructor *Reconstructor
	classifier    *classify.Classifier
}

func NewCapturer(opts Options) *Capturer {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	classifier := opts.Classifier
	if classifier == nil {
		classifier = classify.NewClassifier(classify.DefaultThresholds(), nil)
	}
	return &Capturer{
		logger:        logger,
		parser:        NewRecordParser(logger),
		reconstructor: NewReconstructor(opts.Estimator),
		classifier:    classifier,
	}
}

// LoadPath loads a single file or every log file below a directory. A
// file that cannot be read aborts a single-file load but is only skipped
// when loading a directory. ErrNoData is returned alongside the batch when
// nothing usable was found.
func (c *Capturer) LoadPath(path string) (*Batch, error) {
	sessions, err := scanner.ListInputs(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, &ReadError{Path: path, Err: err}
	}

	if len(sessions) == 1 && sessions[0].Path == path {
		result, err := c.parser.ParseFile(path)
		if err != nil {
			return nil, err
		}
		batch := &Batch{Files: []string{path}, Entries: result.Entries, Skipped: result.Skipped}
		return batch, batch.check()
	}

	files := make([]string, len(sessions))
	for i, s := range sessions {
		files[i] = s.Path
	}
	return c.LoadFiles(files)
}

// LoadFiles parses each file in turn, skipping any that cannot be read.
func (c *Capturer) LoadFiles(paths []string) (*Batch, error) {
	batch := &Batch{}
	for _, path := range paths {
		result, err := c.parser.ParseFile(path)
		if err != nil {
			c.logger.Printf("warning: skipping file: %v", err)
			batch.Failed = append(batch.Failed, path)
			continue
		}
		batch.Files = append(batch.Files, path)
		batch.Entries = append(batch.Entries, result.Entries...)
		batch.Skipped += result.Skipped
	}
	return batch, batch.check()
}

func (b *Batch) check() error {
	if len(b.Entries) == 0 {
		return ErrNoData
	}
	return nil
}

// Conversations reconstructs and classifies the batch as of now.
func (c *Capturer) Conversations(entries []models.RawEntry, now time.Time) []models.Conversation {
	return c.classifier.ClassifyAll(c.reconstructor.Reconstruct(entries), now)
}
