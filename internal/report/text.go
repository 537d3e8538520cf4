// Package report renders usage statistics as text, JSON and an HTML
// dashboard.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/samber/lo"

	"github.com/jasperwreed/ai-usage/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	rule         = strings.Repeat("=", 60)
)

// printer remembers the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) title(text string) {
	p.printf("%s\n%s\n%s\n", rule, titleStyle.Render(text), rule)
}

func (p *printer) section(text string) {
	p.printf("\n%s\n", sectionStyle.Render(text))
}

func (p *printer) table(headers []string, rows [][]string, footer []string) {
	if p.err != nil {
		return
	}
	table := tablewriter.NewTable(p.w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.Off}},
		})))
	table.Header(headers)

	alignments := make([]tw.Align, len(headers))
	for i := range alignments {
		if i == 0 {
			alignments[i] = tw.AlignLeft
		} else {
			alignments[i] = tw.AlignRight
		}
	}
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.PerColumn = alignments
	})

	for _, row := range rows {
		if err := table.Append(row); err != nil {
			p.err = err
			return
		}
	}
	if footer != nil {
		table.Footer(footer)
	}
	p.err = table.Render()
}

// WriteEntryReport prints the per-record report for a single log file.
func WriteEntryReport(w io.Writer, r models.EntryReport) error {
	p := &printer{w: w}
	p.title("CLAUDE USAGE ANALYSIS REPORT")

	basic := r.BasicStats
	p.section("BASIC STATISTICS")
	p.printf("Total Messages: %s\n", humanize.Comma(int64(basic.TotalMessages)))
	p.printf("Unique Sessions: %s\n", humanize.Comma(int64(basic.UniqueSessions)))
	p.printf("User Types: %s\n", formatCounts(basic.UserTypes))
	p.printf("Message Types: %s\n", formatCounts(basic.MessageTypes))

	tokens := r.TokenStats
	p.section("TOKEN USAGE")
	p.printf("Total Input Tokens: %s\n", humanize.Comma(int64(tokens.TotalInputTokens)))
	p.printf("Total Output Tokens: %s\n", humanize.Comma(int64(tokens.TotalOutputTokens)))
	p.printf("Total Cache Tokens: %s\n", humanize.Comma(int64(tokens.TotalCacheTokens)))
	p.printf("Messages with Usage Data: %s\n", humanize.Comma(int64(tokens.MessagesWithUsage)))
	if tokens.AvgTokensPerMessage != nil {
		p.printf("Average Tokens per Message: %.1f\n", *tokens.AvgTokensPerMessage)
		p.printf("Token Range: %s - %s\n",
			humanize.Comma(int64(*tokens.MinTokensInMessage)),
			humanize.Comma(int64(*tokens.MaxTokensInMessage)))
	}

	sessions := r.SessionStats
	p.section("SESSION ANALYSIS")
	p.printf("Total Sessions: %s\n", humanize.Comma(int64(sessions.TotalSessions)))
	if sessions.AvgMessagesPerSession != nil {
		p.printf("Average Messages per Session: %.1f\n", *sessions.AvgMessagesPerSession)
	}
	if sessions.AvgSessionDurationMinutes != nil {
		p.printf("Average Session Duration: %.1f minutes\n", *sessions.AvgSessionDurationMinutes)
	}

	if len(r.Models) > 0 {
		p.section("MODEL USAGE")
		rows := lo.Map(sortedCounts(r.Models), func(e lo.Entry[string, int], _ int) []string {
			return []string{e.Key, humanize.Comma(int64(e.Value))}
		})
		p.table([]string{"Model", "Messages"}, rows, nil)
	}

	timeline := r.Timeline
	if len(timeline.DailyUsage) > 0 {
		days := lo.Keys(timeline.DailyUsage)
		sort.Strings(days)
		busiest := sortedCounts(timeline.DailyUsage)[0]

		p.section("USAGE TIMELINE")
		p.printf("Date Range: %s to %s\n", days[0], days[len(days)-1])
		p.printf("Most Active Day: %s (%s messages)\n", busiest.Key, humanize.Comma(int64(busiest.Value)))

		if len(timeline.HourlyDistribution) > 0 {
			hour, count := peakHour(timeline.HourlyDistribution)
			p.printf("Peak Hour: %d:00 (%s messages)\n", hour, humanize.Comma(int64(count)))
		}
	}

	return p.err
}

// WriteUsageStats prints the conversation-level aggregate.
func WriteUsageStats(w io.Writer, s models.UsageStats) error {
	p := &printer{w: w}
	p.title("CLAUDE CONVERSATION USAGE")

	p.section("OVERVIEW")
	p.printf("Total Conversations: %s\n", humanize.Comma(int64(s.TotalConversations)))
	p.printf("Total Messages: %s\n", humanize.Comma(int64(s.TotalMessages)))
	p.printf("Total Tokens: %s\n", humanize.Comma(int64(s.TotalTokens)))
	p.printf("Average Tokens per Conversation: %.1f\n", s.AvgTokensPerConversation)
	p.printf("Average Messages per Conversation: %.1f\n", s.AvgMessagesPerConversation)
	if d := s.TokenDistribution; d.Count > 0 {
		p.printf("Message Tokens: min %s, avg %.1f, max %s\n",
			humanize.Comma(int64(d.Min)), d.Avg, humanize.Comma(int64(d.Max)))
	}

	if len(s.Models) > 0 {
		p.section("MODELS")
		rows := lo.Map(sortedCounts(s.Models), func(e lo.Entry[string, int], _ int) []string {
			return []string{e.Key, humanize.Comma(int64(e.Value)), humanize.Comma(int64(s.ModelTokens[e.Key]))}
		})
		p.table([]string{"Model", "Conversations", "Tokens"}, rows,
			[]string{"Total", humanize.Comma(int64(s.TotalConversations)), humanize.Comma(int64(s.TotalTokens))})
	}

	if len(s.Statuses) > 0 {
		p.section("STATUS")
		statuses := lo.MapKeys(s.Statuses, func(_ int, k models.Status) string { return string(k) })
		p.table([]string{"Status", "Conversations"}, countRows(statuses), nil)
	}

	if len(s.Projects) > 0 {
		p.section("PROJECT CONTEXT")
		p.table([]string{"Context", "Conversations"}, countRows(s.Projects), nil)
	}

	if len(s.DailyUsage) > 0 {
		p.section("DAILY USAGE")
		days := lo.Keys(s.DailyUsage)
		sort.Strings(days)
		rows := lo.Map(days, func(day string, _ int) []string {
			u := s.DailyUsage[day]
			return []string{day, humanize.Comma(int64(u.Conversations)), humanize.Comma(int64(u.Tokens))}
		})
		p.table([]string{"Date", "Conversations", "Tokens"}, rows, nil)
	}

	return p.err
}

func countRows(counts map[string]int) [][]string {
	return lo.Map(sortedCounts(counts), func(e lo.Entry[string, int], _ int) []string {
		return []string{e.Key, humanize.Comma(int64(e.Value))}
	})
}

// sortedCounts orders by count descending, then key ascending.
func sortedCounts(counts map[string]int) []lo.Entry[string, int] {
	entries := lo.Entries(counts)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	parts := lo.Map(sortedCounts(counts), func(e lo.Entry[string, int], _ int) string {
		return e.Key + ": " + strconv.Itoa(e.Value)
	})
	return strings.Join(parts, ", ")
}

// peakHour returns the busiest hour, the earliest one on ties.
func peakHour(hours map[int]int) (int, int) {
	keys := lo.Keys(hours)
	sort.Ints(keys)
	best := keys[0]
	for _, h := range keys[1:] {
		if hours[h] > hours[best] {
			best = h
		}
	}
	return best, hours[best]
}
