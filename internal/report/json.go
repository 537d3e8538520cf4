package report

import (
	"encoding/json"
	"io"

	"github.com/jasperwreed/ai-usage/internal/models"
)

// Document is the structured export of one run.
type Document struct {
	UsageStats    models.UsageStats     `json:"usage_stats"`
	Conversations []models.Conversation `json:"conversations"`
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
