package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasperwreed/ai-usage/internal/models"
)

func ptr(s string) *string { return &s }

func TestWriteEntryReport(t *testing.T) {
	avg := 75.0
	minTokens, maxTokens := 50, 100
	avgMsgs := 2.0
	r := models.EntryReport{
		BasicStats: models.BasicStats{
			TotalMessages:  1234,
			UniqueSessions: 2,
			UserTypes:      map[string]int{"external": 3},
			MessageTypes:   map[string]int{"user": 2, "assistant": 2},
		},
		TokenStats: models.TokenStats{
			TotalInputTokens:    1500000,
			TotalOutputTokens:   20,
			MessagesWithUsage:   2,
			AvgTokensPerMessage: &avg,
			MinTokensInMessage:  &minTokens,
			MaxTokensInMessage:  &maxTokens,
		},
		Timeline: models.Timeline{
			DailyUsage:         map[string]int{"2024-01-02": 5, "2024-01-01": 5, "2024-01-03": 1},
			HourlyDistribution: map[int]int{9: 4, 14: 4, 22: 1},
		},
		Models: map[string]int{"claude-3-opus": 3, "claude-3-haiku": 7},
		SessionStats: models.SessionStats{
			TotalSessions:         2,
			AvgMessagesPerSession: &avgMsgs,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteEntryReport(&buf, r))
	out := buf.String()

	for _, want := range []string{
		"CLAUDE USAGE ANALYSIS REPORT",
		"BASIC STATISTICS",
		"Total Messages: 1,234",
		"Message Types: assistant: 2, user: 2",
		"Total Input Tokens: 1,500,000",
		"Average Tokens per Message: 75.0",
		"Token Range: 50 - 100",
		"Average Messages per Session: 2.0",
		"MODEL USAGE",
		"claude-3-haiku",
		"Date Range: 2024-01-01 to 2024-01-03",
		"Most Active Day: 2024-01-01 (5 messages)",
		"Peak Hour: 9:00 (4 messages)",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Average Session Duration")
	assert.Less(t, strings.Index(out, "claude-3-haiku"), strings.Index(out, "claude-3-opus"))
}

func TestWriteEntryReportMinimal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntryReport(&buf, models.EntryReport{}))
	out := buf.String()
	assert.Contains(t, out, "User Types: none")
	assert.NotContains(t, out, "MODEL USAGE")
	assert.NotContains(t, out, "USAGE TIMELINE")
}

func TestWriteUsageStats(t *testing.T) {
	s := models.UsageStats{
		TotalConversations: 3,
		TotalMessages:      9,
		TotalTokens:        4200,
		Models:             map[string]int{"opus": 2, "sonnet": 1},
		ModelTokens:        map[string]int{"opus": 4000, "sonnet": 200},
		Projects:           map[string]int{"python": 3},
		Statuses:           map[models.Status]int{models.StatusInactive: 3},
		DailyUsage: map[string]models.DailyUsage{
			"2024-02-01": {Conversations: 3, Tokens: 4200},
		},
		AvgTokensPerConversation:   1400,
		AvgMessagesPerConversation: 3,
		TokenDistribution:          models.TokenDistribution{Count: 4, Min: 10, Max: 4000, Avg: 1050},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteUsageStats(&buf, s))
	out := buf.String()

	for _, want := range []string{
		"Total Tokens: 4,200",
		"Average Tokens per Conversation: 1400.0",
		"Message Tokens: min 10, avg 1050.0, max 4,000",
		"MODELS", "opus", "4,000",
		"STATUS", "inactive",
		"PROJECT CONTEXT", "python",
		"DAILY USAGE", "2024-02-01",
	} {
		assert.Contains(t, out, want)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	doc := Document{
		UsageStats:    models.UsageStats{TotalConversations: 1, Statuses: map[models.Status]int{models.StatusActive: 1}},
		Conversations: []models.Conversation{{ID: "a", Messages: []models.Message{{Role: "user"}}}},
	}
	require.NoError(t, WriteJSON(&buf, doc))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	stats := decoded["usage_stats"].(map[string]any)
	assert.Equal(t, float64(1), stats["total_conversations"])
	assert.Equal(t, map[string]any{"active": float64(1)}, stats["statuses"])

	convs := decoded["conversations"].([]any)
	first := convs[0].(map[string]any)
	assert.Nil(t, first["created_at"])
	assert.Nil(t, first["messages"].([]any)[0].(map[string]any)["timestamp"])
}

func TestRecentConversations(t *testing.T) {
	long := strings.Repeat("é", 600)
	convs := []models.Conversation{
		{ID: "old", LastActivity: ptr("2024-01-01T00:00:00Z")},
		{ID: "none"},
		{ID: "new", LastActivity: ptr("2024-03-01T00:00:00Z"), Messages: []models.Message{{Content: long}}},
		{ID: "bad", LastActivity: ptr("??")},
		{ID: "mid", LastActivity: ptr("2024-02-01T00:00:00+05:00")},
	}

	got := RecentConversations(convs, 4, 500)
	ids := make([]string, len(got))
	for i, c := range got {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"new", "mid", "old", "none"}, ids)

	preview := []rune(got[0].Messages[0].Content)
	assert.Len(t, preview, 500)
	assert.True(t, strings.HasSuffix(got[0].Messages[0].Content, "..."))
	assert.Equal(t, long, convs[2].Messages[0].Content, "source conversation must not change")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 500))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "abcdefgh", truncate("abcdefgh", 0))
	assert.Equal(t, "ab", truncate("abcdefgh", 2))
}

func TestWriteDashboard(t *testing.T) {
	convs := []models.Conversation{{
		ID:             "sess-1",
		Model:          "opus",
		Status:         models.StatusActive,
		ProjectContext: "web",
		LastActivity:   ptr("2024-03-01T00:00:00Z"),
		Messages:       []models.Message{{Role: "user", Content: "</script><script>alert(1)</script>"}},
	}}
	stats := models.UsageStats{TotalConversations: 1, Models: map[string]int{"opus": 1}}

	var buf bytes.Buffer
	err := WriteDashboard(&buf, convs, stats, DashboardOptions{
		Title:            "Usage <Team>",
		MaxConversations: 50,
		PreviewChars:     500,
		GeneratedAt:      time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "<title>Usage &lt;Team&gt;</title>")
	assert.Contains(t, out, "Generated 2024-03-02 10:00:00")
	assert.Contains(t, out, `"id":"sess-1"`)
	assert.Contains(t, out, `"total_conversations":1`)
	assert.NotContains(t, out, "<script>alert(1)")
	assert.Equal(t, 1, strings.Count(out, "</script>"))
}

func TestWriteDashboardEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDashboard(&buf, nil, models.UsageStats{}, DashboardOptions{Title: "x"}))
	assert.Contains(t, buf.String(), "const conversations = [];")
}
