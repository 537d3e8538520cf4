package capture

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/jasperwreed/ai-usage/internal/models"
)

// normalizeEntry renders an entry's content according to its kind and
// returns the message together with the model it contributes, if any.
// Only assistant records name the conversation model, except for flat
// whole-file messages that carry no type.
func normalizeEntry(entry models.RawEntry, estimator TokenEstimator) (models.Message, string) {
	var content models.Content
	if entry.Message != nil {
		content = ParseContent(entry.Message.Content)
	}

	kind := entry.Kind()
	if kind == "" {
		kind = "unknown"
	}
	var text, model string
	switch MessageRole(kind) {
	case RoleAssistant:
		text = renderAssistantContent(content)
		model = entry.Model()
	default:
		text = stringifyContent(content)
		if entry.Type == "" && entry.Message != nil && entry.Message.Flat {
			model = entry.Model()
		}
	}

	msg := models.Message{
		Role:    kind,
		Content: text,
	}
	if entry.Timestamp != "" {
		ts := entry.Timestamp
		msg.Timestamp = &ts
	}

	if usage := entry.Usage(); usage != nil {
		msg.Tokens = max(0, usage.InputTokens+usage.OutputTokens)
	} else {
		msg.Tokens = estimator.EstimateTokens(text)
	}

	return msg, model
}

// renderAssistantContent keeps text parts and marks each tool call.
func renderAssistantContent(content models.Content) string {
	switch content.Kind {
	case models.ContentText:
		return content.Text
	case models.ContentParts:
		lines := make([]string, 0, len(content.Parts))
		for _, part := range content.Parts {
			switch p := part.(type) {
			case models.TextPart:
				lines = append(lines, p.Text)
			case models.ToolUsePart:
				lines = append(lines, "[Tool: "+p.DisplayName()+"]")
			case models.OtherPart:
			}
		}
		return strings.Join(lines, "\n")
	default:
		return ""
	}
}

// stringifyContent returns plain text as-is and anything structured as
// compact JSON.
func stringifyContent(content models.Content) string {
	switch content.Kind {
	case models.ContentText:
		return content.Text
	case models.ContentParts, models.ContentOther:
		var buf bytes.Buffer
		if err := json.Compact(&buf, content.Raw); err != nil {
			return string(content.Raw)
		}
		return buf.String()
	default:
		return ""
	}
}
