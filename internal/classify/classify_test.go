package classify

import (
	"strings"
	"testing"
	"time"

	"github.com/jasperwreed/ai-usage/internal/models"
)

func ptr(s string) *string { return &s }

func TestStatus(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	th := DefaultThresholds()

	tests := []struct {
		name     string
		last     *string
		expected models.Status
	}{
		{"missing", nil, models.StatusUnknown},
		{"unparseable", ptr("yesterday"), models.StatusUnknown},
		{"one minute ago", ptr("2024-06-01T11:59:00Z"), models.StatusActive},
		{"exactly five minutes", ptr("2024-06-01T11:55:00Z"), models.StatusRecent},
		{"thirty minutes", ptr("2024-06-01T11:30:00Z"), models.StatusRecent},
		{"exactly one hour", ptr("2024-06-01T11:00:00Z"), models.StatusInactive},
		{"two days ago", ptr("2024-05-30T12:00:00Z"), models.StatusInactive},
		{"in the future", ptr("2024-06-01T13:00:00Z"), models.StatusActive},
		{"offset timestamp", ptr("2024-06-01T13:58:00+02:00"), models.StatusActive},
		{"naive timestamp is utc", ptr("2024-06-01T11:58:00"), models.StatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.last, now, th); got != tt.expected {
				t.Errorf("Status() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// One day idle must stay inactive even though it is under an hour past a
// whole day.
func TestStatusUsesFullDuration(t *testing.T) {
	now := time.Date(2024, 6, 2, 12, 1, 0, 0, time.UTC)
	if got := Status(ptr("2024-06-01T12:00:00Z"), now, DefaultThresholds()); got != models.StatusInactive {
		t.Errorf("Status() = %q, want inactive", got)
	}
}

func msgs(contents ...string) []models.Message {
	out := make([]models.Message, len(contents))
	for i, c := range contents {
		out[i] = models.Message{Role: "user", Content: c}
	}
	return out
}

func TestContextMatcher(t *testing.T) {
	m := NewContextMatcher(nil, 0, 0)

	tests := []struct {
		name     string
		messages []models.Message
		expected string
	}{
		{"empty", nil, GeneralContext},
		{"python keyword", msgs("How do I use pandas in Python?"), "python"},
		{"rule order beats later rules", msgs("fix the npm build"), "javascript"},
		{"case insensitive", msgs("REACT hooks"), "react"},
		{"web", msgs("my website layout"), "web"},
		{"debugging", msgs("there is a bug"), "debugging"},
		{"data", msgs("load the csv"), "data"},
		{"nothing matches", msgs("hello there"), GeneralContext},
		{"import needs trailing space", msgs("important stuff"), GeneralContext},
		{"only first three messages", msgs("hi", "hi", "hi", "python"), GeneralContext},
		{"keyword past 500 chars ignored", msgs(strings.Repeat("x", 500) + "python"), GeneralContext},
		{"messages are concatenated", msgs("de", "f main"), "python"},
		{"keyword within 500 chars", msgs(strings.Repeat("x", 494) + "python"), "python"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Match(tt.messages); got != tt.expected {
				t.Errorf("Match() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestClassifierDoesNotMutateInput(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), nil)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	in := []models.Conversation{{
		ID:           "a",
		Messages:     msgs("write a react component"),
		LastActivity: ptr("2024-06-01T11:59:30Z"),
		Status:       models.StatusUnknown,
	}}

	out := c.ClassifyAll(in, now)
	if out[0].Status != models.StatusActive || out[0].ProjectContext != "react" {
		t.Errorf("ClassifyAll() = %+v", out[0])
	}
	if in[0].Status != models.StatusUnknown || in[0].ProjectContext != "" {
		t.Errorf("input was modified: %+v", in[0])
	}
}

func TestCustomRulesAndWindows(t *testing.T) {
	m := NewContextMatcher([]Rule{{Label: "go", Keywords: []string{"goroutine"}}}, 1, 10)
	if got := m.Match(msgs("goroutine leak")); got != "go" {
		t.Errorf("Match() = %q, want go", got)
	}
	if got := m.Match(msgs("a long prefix then goroutine")); got != GeneralContext {
		t.Errorf("Match() = %q, want general", got)
	}

	th := Thresholds{Active: time.Minute, Recent: 2 * time.Minute}
	now := time.Date(2024, 1, 1, 0, 3, 0, 0, time.UTC)
	if got := Status(ptr("2024-01-01T00:01:30Z"), now, th); got != models.StatusRecent {
		t.Errorf("Status() = %q, want recent", got)
	}
}
