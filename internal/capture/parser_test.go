package capture

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasperwreed/ai-usage/internal/models"
)

func TestParseLines(t *testing.T) {
	var logs bytes.Buffer
	parser := NewRecordParser(log.New(&logs, "", 0))

	data := []byte(`{"type":"user","sessionId":"s1","timestamp":"2024-01-01T10:00:00Z","message":{"role":"user","content":"hi"}}

not json
{"type":"assistant","message":{"model":"claude-3","usage":{"input_tokens":10,"output_tokens":5}}}

[1,2]
null
`)

	result := parser.ParseLines(data, "/logs/a.jsonl")

	require.Len(t, result.Entries, 2)
	assert.Equal(t, 3, result.Skipped)
	assert.Equal(t, FormatJSONLines, result.Format)

	first := result.Entries[0]
	assert.Equal(t, "s1", first.SessionKey())
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, "/logs/a.jsonl", first.Source)

	second := result.Entries[1]
	assert.Equal(t, 4, second.Line)
	assert.Equal(t, "a.jsonl#4", second.SessionKey())
	assert.Equal(t, "claude-3", second.Model())
	require.NotNil(t, second.Usage())
	assert.Equal(t, 10, second.Usage().InputTokens)

	assert.Contains(t, logs.String(), "a.jsonl:3")
	assert.Contains(t, logs.String(), "warning")
}

func TestParseLinesCRLF(t *testing.T) {
	parser := NewRecordParser(nil)
	result := parser.ParseLines([]byte("{\"type\":\"user\"}\r\n{\"type\":\"assistant\"}\r\n"), "x.jsonl")
	assert.Len(t, result.Entries, 2)
	assert.Zero(t, result.Skipped)
}

func TestDecodeEntryTolerance(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, e models.RawEntry)
	}{
		{
			name:  "empty object",
			input: `{}`,
			check: func(t *testing.T, e models.RawEntry) {
				assert.Empty(t, e.Kind())
				assert.Nil(t, e.Message)
			},
		},
		{
			name:  "wrong field types are ignored",
			input: `{"sessionId":42,"timestamp":true,"message":"text","type":["user"]}`,
			check: func(t *testing.T, e models.RawEntry) {
				assert.Empty(t, e.SessionID)
				assert.Empty(t, e.Timestamp)
				assert.Empty(t, e.Type)
				assert.Nil(t, e.Message)
			},
		},
		{
			name:  "null usage is absent",
			input: `{"type":"assistant","message":{"usage":null}}`,
			check: func(t *testing.T, e models.RawEntry) {
				assert.Nil(t, e.Usage())
			},
		},
		{
			name:  "flat export shape",
			input: `{"role":"assistant","content":"hello","model":"claude-2"}`,
			check: func(t *testing.T, e models.RawEntry) {
				assert.Equal(t, "assistant", e.Kind())
				assert.Equal(t, "claude-2", e.Model())
				require.NotNil(t, e.Message)
				assert.JSONEq(t, `"hello"`, string(e.Message.Content))
			},
		},
		{
			name:  "type wins over role",
			input: `{"type":"summary","role":"user"}`,
			check: func(t *testing.T, e models.RawEntry) {
				assert.Equal(t, "summary", e.Kind())
			},
		},
		{
			name:  "fractional usage numbers",
			input: `{"message":{"usage":{"input_tokens":3.0,"output_tokens":"7"}}}`,
			check: func(t *testing.T, e models.RawEntry) {
				require.NotNil(t, e.Usage())
				assert.Equal(t, 3, e.Usage().InputTokens)
				assert.Equal(t, 0, e.Usage().OutputTokens)
			},
		},
		{
			name:  "negative usage numbers are dropped",
			input: `{"message":{"usage":{"input_tokens":-50,"output_tokens":3}}}`,
			check: func(t *testing.T, e models.RawEntry) {
				require.NotNil(t, e.Usage())
				assert.Equal(t, 0, e.Usage().InputTokens)
				assert.Equal(t, 3, e.Usage().OutputTokens)
			},
		},
		{
			name:  "oversized usage numbers are dropped",
			input: `{"message":{"usage":{"input_tokens":1e300,"output_tokens":3,"cache_read_input_tokens":1e10}}}`,
			check: func(t *testing.T, e models.RawEntry) {
				require.NotNil(t, e.Usage())
				assert.Equal(t, 0, e.Usage().InputTokens)
				assert.Equal(t, 3, e.Usage().OutputTokens)
				assert.Equal(t, 0, e.Usage().CacheReadInputTokens)
			},
		},
		{
			name:  "nested message is not flat",
			input: `{"type":"user","message":{"model":"m"}}`,
			check: func(t *testing.T, e models.RawEntry) {
				require.NotNil(t, e.Message)
				assert.False(t, e.Message.Flat)
			},
		},
		{name: "array", input: `[1]`, wantErr: true},
		{name: "null", input: `null`, wantErr: true},
		{name: "broken", input: `{"a":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := DecodeEntry([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, entry)
		})
	}
}

func TestParseDocument(t *testing.T) {
	parser := NewRecordParser(nil)

	t.Run("array", func(t *testing.T) {
		result := parser.ParseDocument([]byte(`[{"type":"user"},5,{"type":"assistant","sessionId":"s"}]`), "/x/export.json")
		require.Len(t, result.Entries, 2)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, "export", result.Entries[0].SessionKey())
		assert.Equal(t, "s", result.Entries[1].SessionKey())
		assert.Equal(t, 3, result.Entries[1].Line)
	})

	t.Run("object with messages", func(t *testing.T) {
		doc := `{"title":"t","messages":[{"role":"user","content":"a"},{"role":"assistant","content":"b"}]}`
		result := parser.ParseDocument([]byte(doc), "conv-1.json")
		require.Len(t, result.Entries, 2)
		assert.Equal(t, "conv-1", result.Entries[0].SessionKey())
		assert.Equal(t, "conv-1", result.Entries[1].SessionKey())
	})

	t.Run("container session id", func(t *testing.T) {
		doc := `{"sessionId":"abc","messages":[{"role":"user","content":"a"}]}`
		result := parser.ParseDocument([]byte(doc), "conv-1.json")
		require.Len(t, result.Entries, 1)
		assert.Equal(t, "abc", result.Entries[0].SessionKey())
	})

	t.Run("single record", func(t *testing.T) {
		result := parser.ParseDocument([]byte(`{"type":"user","messages":"nope"}`), "one.json")
		require.Len(t, result.Entries, 1)
		assert.Equal(t, "one", result.Entries[0].SessionKey())
	})

	t.Run("json lines saved as json", func(t *testing.T) {
		result := parser.ParseDocument([]byte("{\"type\":\"user\"}\n{\"type\":\"assistant\"}\n"), "lines.json")
		assert.Len(t, result.Entries, 2)
		assert.Equal(t, FormatJSONLines, result.Format)
	})

	t.Run("broken document", func(t *testing.T) {
		result := parser.ParseDocument([]byte(`{"type":`), "bad.json")
		assert.Empty(t, result.Entries)
		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("scalar document", func(t *testing.T) {
		result := parser.ParseDocument([]byte(`"hello"`), "s.json")
		assert.Empty(t, result.Entries)
		assert.Equal(t, 1, result.Skipped)
	})
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	parser := NewRecordParser(nil)

	_, err := parser.ParseFile(filepath.Join(dir, "missing.jsonl"))
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Contains(t, notFound.Path, "missing.jsonl")

	path := filepath.Join(dir, "export.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"type":"user"}]`), 0644))
	result, err := parser.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, FormatDocument, result.Format)
	assert.Len(t, result.Entries, 1)

	_, err = parser.ParseFile(dir)
	var readErr *ReadError
	assert.True(t, errors.As(err, &readErr))
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path     string
		data     string
		expected FormatType
	}{
		{"a.jsonl", `[1]`, FormatJSONLines},
		{"a.JSON", "{}\n{}", FormatDocument},
		{"stdin", "[{}]", FormatDocument},
		{"stdin", "{}", FormatDocument},
		{"stdin", "{}\n{}", FormatJSONLines},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DetectFormat(tt.path, []byte(tt.data)), "%s %q", tt.path, tt.data)
	}
}
