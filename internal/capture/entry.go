package capture

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"

	"github.com/jasperwreed/ai-usage/internal/models"
)

var errNotObject = errors.New("record is not a JSON object")

// DecodeEntry decodes one JSON object into a RawEntry. Any syntactically
// valid object succeeds; fields of an unexpected type are left empty.
func DecodeEntry(data []byte) (models.RawEntry, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return models.RawEntry{}, err
	}
	if fields == nil {
		return models.RawEntry{}, errNotObject
	}

	entry := models.RawEntry{
		SessionID: stringField(fields, "sessionId"),
		Type:      stringField(fields, "type"),
		Role:      stringField(fields, "role"),
		Timestamp: stringField(fields, "timestamp"),
		UserType:  stringField(fields, "userType"),
	}

	if msg := decodeMessage(fields["message"]); msg != nil {
		entry.Message = msg
	} else if _, ok := fields["content"]; ok || stringField(fields, "model") != "" {
		// flat exports carry content and model at the top level
		entry.Message = &models.EntryMessage{
			Content: fields["content"],
			Model:   stringField(fields, "model"),
			Flat:    true,
		}
	}

	return entry, nil
}

func decodeMessage(raw json.RawMessage) *models.EntryMessage {
	var fields map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil || fields == nil {
		return nil
	}

	msg := &models.EntryMessage{
		Content: fields["content"],
		Model:   stringField(fields, "model"),
	}

	var usage map[string]json.RawMessage
	if raw, ok := fields["usage"]; ok && json.Unmarshal(raw, &usage) == nil && usage != nil {
		msg.Usage = &models.Usage{
			InputTokens:              intField(usage, "input_tokens"),
			OutputTokens:             intField(usage, "output_tokens"),
			CacheCreationInputTokens: intField(usage, "cache_creation_input_tokens"),
			CacheReadInputTokens:     intField(usage, "cache_read_input_tokens"),
		}
	}
	return msg
}

func stringField(fields map[string]json.RawMessage, key string) string {
	s, _ := lookupString(fields, key)
	return s
}

func lookupString(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func intField(fields map[string]json.RawMessage, key string) int {
	raw, ok := fields[key]
	if !ok {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	// counts outside [0, MaxInt32] are treated as missing
	if math.IsNaN(f) || f < 0 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

// ParseContent classifies a raw content value.
func ParseContent(raw json.RawMessage) models.Content {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return models.Content{Kind: models.ContentAbsent}
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return models.Content{Kind: models.ContentText, Text: s, Raw: trimmed}
		}
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err == nil {
			parts := make([]models.ContentPart, 0, len(elems))
			for _, elem := range elems {
				parts = append(parts, parsePart(elem))
			}
			return models.Content{Kind: models.ContentParts, Parts: parts, Raw: trimmed}
		}
	}
	return models.Content{Kind: models.ContentOther, Raw: trimmed}
}

func parsePart(raw json.RawMessage) models.ContentPart {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return models.OtherPart{Raw: raw}
	}

	partType := stringField(fields, "type")
	switch partType {
	case "text":
		return models.TextPart{Text: stringField(fields, "text")}
	case "tool_use":
		name, named := lookupString(fields, "name")
		return models.ToolUsePart{ID: stringField(fields, "id"), Name: name, Named: named}
	default:
		return models.OtherPart{Type: partType, Raw: raw}
	}
}
