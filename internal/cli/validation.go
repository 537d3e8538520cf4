package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Export formats accepted by the export command.
const (
	FormatJSON   = "json"
	FormatSQLite = "sqlite"
)

// Validator provides methods for validating CLI inputs
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateDataPath checks that path exists and, when it is a file, that it
// is a .json or .jsonl log.
func (v *Validator) ValidateDataPath(path string) error {
	if path == "" {
		return fmt.Errorf("data path cannot be empty")
	}

	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("invalid data path: %w", err)
	}

	if stat.IsDir() {
		return nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonl":
		return nil
	default:
		return fmt.Errorf("unsupported file type %q: expected .json or .jsonl", filepath.Ext(path))
	}
}

// ValidateFormat checks an export format name.
func (v *Validator) ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatSQLite:
		return nil
	default:
		return fmt.Errorf("unsupported format %q: expected %s or %s", format, FormatJSON, FormatSQLite)
	}
}

// ValidateOutput checks that path can be written as a file.
func (v *Validator) ValidateOutput(path string) error {
	if path == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	if stat, err := os.Stat(path); err == nil && stat.IsDir() {
		return fmt.Errorf("output path is a directory: %s", path)
	}

	return nil
}

// ResolvePath resolves a path to an absolute path
func (v *Validator) ResolvePath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "." {
		return os.Getwd()
	}

	if filepath.IsAbs(path) {
		return path, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return filepath.Join(cwd, path), nil
}
