package capture

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jasperwreed/ai-usage/internal/models"
)

// ParseResult holds the records recovered from one input.
type ParseResult struct {
	Entries []models.RawEntry
	Skipped int
	Format  FormatType
}

// RecordParser turns file contents into raw entries. Malformed records are
// logged and counted, never fatal.
type RecordParser struct {
	logger *log.Logger
}

func NewRecordParser(logger *log.Logger) *RecordParser {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &RecordParser{logger: logger}
}

// ParseFile reads path and parses it with the framing DetectFormat picks.
func (p *RecordParser) ParseFile(path string) (ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ParseResult{}, &NotFoundError{Path: path}
		}
		return ParseResult{}, &ReadError{Path: path, Err: err}
	}

	if DetectFormat(path, data) == FormatDocument {
		return p.ParseDocument(data, path), nil
	}
	return p.ParseLines(data, path), nil
}

// ParseLines parses newline-delimited records. Blank lines are ignored and
// every record is tagged with its 1-based line number.
func (p *RecordParser) ParseLines(data []byte, source string) ParseResult {
	result := ParseResult{Format: FormatJSONLines}
	base := filepath.Base(source)

	for i, line := range bytes.Split(data, []byte("\n")) {
		lineNum := i + 1
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		entry, err := DecodeEntry(line)
		if err != nil {
			p.skip(&result, &MalformedRecordError{Path: source, Line: lineNum, Err: err})
			continue
		}
		entry.Source = source
		entry.Line = lineNum
		entry.FallbackKey = fmt.Sprintf("%s#%d", base, lineNum)
		result.Entries = append(result.Entries, entry)
	}

	return result
}

// ParseDocument parses a whole-file JSON document: an array of records, an
// object with a "messages" array, or a single record. Documents that fail
// to decode but span several lines are retried as JSON lines.
func (p *RecordParser) ParseDocument(data []byte, source string) ParseResult {
	trimmed := bytes.TrimSpace(data)
	result := ParseResult{Format: FormatDocument}
	if len(trimmed) == 0 {
		return result
	}

	var doc json.RawMessage
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		if countNonBlankLines(trimmed) > 1 {
			p.logger.Printf("%s: not a single JSON document, reading as JSON lines", source)
			return p.ParseLines(data, source)
		}
		p.skip(&result, &MalformedRecordError{Path: source, Line: 1, Err: err})
		return result
	}

	key := documentKey(source)

	switch trimmed[0] {
	case '[':
		var elems []json.RawMessage
		_ = json.Unmarshal(trimmed, &elems)
		p.appendElements(&result, elems, source, key)
	case '{':
		var fields map[string]json.RawMessage
		_ = json.Unmarshal(trimmed, &fields)
		var elems []json.RawMessage
		if raw, ok := fields["messages"]; ok && json.Unmarshal(raw, &elems) == nil && elems != nil {
			if id := stringField(fields, "sessionId"); id != "" {
				key = id
			}
			p.appendElements(&result, elems, source, key)
			break
		}
		entry, _ := DecodeEntry(trimmed)
		entry.Source = source
		entry.Line = 1
		entry.FallbackKey = key
		result.Entries = append(result.Entries, entry)
	default:
		p.skip(&result, &MalformedRecordError{Path: source, Line: 1, Err: errNotObject})
	}

	return result
}

func (p *RecordParser) appendElements(result *ParseResult, elems []json.RawMessage, source, key string) {
	for i, elem := range elems {
		entry, err := DecodeEntry(elem)
		if err != nil {
			p.skip(result, &MalformedRecordError{Path: source, Line: i + 1, Err: err})
			continue
		}
		entry.Source = source
		entry.Line = i + 1
		entry.FallbackKey = key
		result.Entries = append(result.Entries, entry)
	}
}

func (p *RecordParser) skip(result *ParseResult, err *MalformedRecordError) {
	result.Skipped++
	p.logger.Printf("warning: %v", err)
}

func documentKey(source string) string {
	if source == "" {
		return "document"
	}
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
