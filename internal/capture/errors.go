package capture

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when every input was read but no record survived.
var ErrNoData = errors.New("no valid data found")

type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("path does not exist: %s", e.Path)
}

type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// MalformedRecordError describes a single record that was skipped. Line is
// the 1-based line number, or the element index for whole-file documents.
type MalformedRecordError struct {
	Path string
	Line int
	Err  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s:%d: skipping invalid JSON: %v", e.Path, e.Line, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
