package report

import (
	_ "embed"
	"html/template"
	"io"
	"sort"
	"time"

	"github.com/jasperwreed/ai-usage/internal/models"
)

//go:embed dashboard.tmpl
var dashboardSource string

var dashboardTemplate = template.Must(template.New("dashboard").Parse(dashboardSource))

type DashboardOptions struct {
	Title            string
	MaxConversations int
	PreviewChars     int
	GeneratedAt      time.Time
}

type dashboardData struct {
	Title         string
	GeneratedAt   string
	Conversations []models.Conversation
	Stats         models.UsageStats
}

// WriteDashboard renders a self-contained HTML page embedding the most
// recently active conversations and the aggregate stats as JSON.
func WriteDashboard(w io.Writer, convs []models.Conversation, stats models.UsageStats, opts DashboardOptions) error {
	data := dashboardData{
		Title:         opts.Title,
		GeneratedAt:   opts.GeneratedAt.Format("2006-01-02 15:04:05"),
		Conversations: RecentConversations(convs, opts.MaxConversations, opts.PreviewChars),
		Stats:         stats,
	}
	return dashboardTemplate.Execute(w, data)
}

// RecentConversations returns copies of at most limit conversations,
// most recently active first, with message content cut to previewChars.
// Conversations without a usable lastActivity sort last. convs is not
// modified.
func RecentConversations(convs []models.Conversation, limit, previewChars int) []models.Conversation {
	type ranked struct {
		conv models.Conversation
		at   time.Time
		ok   bool
	}
	items := make([]ranked, len(convs))
	for i, conv := range convs {
		items[i].conv = conv
		if conv.LastActivity != nil {
			if t, err := models.ParseTimestamp(*conv.LastActivity); err == nil {
				items[i].at, items[i].ok = t, true
			}
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.ok != b.ok {
			return a.ok
		}
		return a.ok && a.at.After(b.at)
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	out := make([]models.Conversation, len(items))
	for i, item := range items {
		conv := item.conv
		msgs := make([]models.Message, len(conv.Messages))
		for j, msg := range conv.Messages {
			msg.Content = truncate(msg.Content, previewChars)
			msgs[j] = msg
		}
		conv.Messages = msgs
		out[i] = conv
	}
	return out
}

// truncate cuts s to n characters, the last three being an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
