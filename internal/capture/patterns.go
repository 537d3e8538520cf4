package capture

import (
	"bytes"
	"path/filepath"
	"strings"
)

// MessageRole is the normalized role of a reconstructed message.
type MessageRole string

// RoleAssistant is the only role whose records set the conversation model.
const RoleAssistant MessageRole = "assistant"

// FormatType is the framing of an input file.
type FormatType int

const (
	// FormatJSONLines holds one JSON record per line.
	FormatJSONLines FormatType = iota
	// FormatDocument holds a single JSON document.
	FormatDocument
)

func (f FormatType) String() string {
	if f == FormatDocument {
		return "json"
	}
	return "jsonl"
}

// DetectFormat picks the framing from the extension. Files with neither
// extension are sniffed: content opening with an array, or a single
// non-blank line, is read as a document.
func DetectFormat(path string, data []byte) FormatType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl":
		return FormatJSONLines
	case ".json":
		return FormatDocument
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return FormatDocument
	}
	if countNonBlankLines(trimmed) <= 1 {
		return FormatDocument
	}
	return FormatJSONLines
}

func countNonBlankLines(data []byte) int {
	n := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}
