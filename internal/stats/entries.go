package stats

import (
	"time"

	"github.com/samber/lo"

	"github.com/jasperwreed/ai-usage/internal/models"
)

const unknownLabel = "unknown"

// ComputeEntryReport summarises raw entries without reconstructing
// conversations. Timeline and session figures use every entry with a
// parseable timestamp.
func ComputeEntryReport(entries []models.RawEntry) models.EntryReport {
	return models.EntryReport{
		BasicStats:   computeBasicStats(entries),
		TokenStats:   computeTokenStats(entries),
		Timeline:     computeTimeline(entries),
		Models:       computeEntryModels(entries),
		SessionStats: computeSessionStats(entries),
	}
}

func computeBasicStats(entries []models.RawEntry) models.BasicStats {
	return models.BasicStats{
		TotalMessages:  len(entries),
		UniqueSessions: len(lo.Uniq(lo.Map(entries, func(e models.RawEntry, _ int) string { return e.SessionKey() }))),
		UserTypes: lo.CountValuesBy(entries, func(e models.RawEntry) string {
			return orUnknown(e.UserType)
		}),
		MessageTypes: lo.CountValuesBy(entries, func(e models.RawEntry) string {
			return orUnknown(e.Kind())
		}),
	}
}

func computeTokenStats(entries []models.RawEntry) models.TokenStats {
	stats := models.TokenStats{TokenDistribution: []int{}}
	for _, e := range entries {
		usage := e.Usage()
		if usage == nil {
			continue
		}
		stats.TotalInputTokens += usage.InputTokens
		stats.TotalOutputTokens += usage.OutputTokens
		stats.TotalCacheTokens += usage.CacheCreationInputTokens + usage.CacheReadInputTokens
		stats.MessagesWithUsage++
		if total := usage.InputTokens + usage.OutputTokens; total > 0 {
			stats.TokenDistribution = append(stats.TokenDistribution, total)
		}
	}

	if n := len(stats.TokenDistribution); n > 0 {
		avg := safeDiv(lo.Sum(stats.TokenDistribution), n)
		maxTokens := lo.Max(stats.TokenDistribution)
		minTokens := lo.Min(stats.TokenDistribution)
		stats.AvgTokensPerMessage = &avg
		stats.MaxTokensInMessage = &maxTokens
		stats.MinTokensInMessage = &minTokens
	}
	return stats
}

func computeTimeline(entries []models.RawEntry) models.Timeline {
	timeline := models.Timeline{
		DailyUsage:         make(map[string]int),
		HourlyDistribution: make(map[int]int),
	}
	for _, e := range entries {
		t, ok := entryTime(e)
		if !ok {
			continue
		}
		timeline.DailyUsage[t.Format("2006-01-02")]++
		timeline.HourlyDistribution[t.Hour()]++
	}
	return timeline
}

func computeEntryModels(entries []models.RawEntry) map[string]int {
	withModel := lo.Filter(entries, func(e models.RawEntry, _ int) bool { return e.Model() != "" })
	return lo.CountValuesBy(withModel, func(e models.RawEntry) string { return e.Model() })
}

// computeSessionStats reports sessions in order of first appearance. Only
// sessions with two or more timestamped entries contribute a duration.
func computeSessionStats(entries []models.RawEntry) models.SessionStats {
	keys := lo.Uniq(lo.Map(entries, func(e models.RawEntry, _ int) string { return e.SessionKey() }))
	groups := lo.GroupBy(entries, func(e models.RawEntry) string { return e.SessionKey() })

	stats := models.SessionStats{
		TotalSessions:      len(keys),
		MessagesPerSession: make([]int, 0, len(keys)),
		SessionDurations:   []float64{},
	}

	for _, key := range keys {
		group := groups[key]
		stats.MessagesPerSession = append(stats.MessagesPerSession, len(group))

		times := lo.FilterMap(group, func(e models.RawEntry, _ int) (time.Time, bool) {
			return entryTime(e)
		})
		if len(times) > 1 {
			first := lo.MinBy(times, func(a, b time.Time) bool { return a.Before(b) })
			last := lo.MaxBy(times, func(a, b time.Time) bool { return a.After(b) })
			stats.SessionDurations = append(stats.SessionDurations, last.Sub(first).Minutes())
		}
	}

	if len(stats.MessagesPerSession) > 0 {
		avg := safeDiv(lo.Sum(stats.MessagesPerSession), len(stats.MessagesPerSession))
		stats.AvgMessagesPerSession = &avg
	}
	if len(stats.SessionDurations) > 0 {
		avg := lo.Sum(stats.SessionDurations) / float64(len(stats.SessionDurations))
		stats.AvgSessionDurationMinutes = &avg
	}
	return stats
}

func entryTime(e models.RawEntry) (time.Time, bool) {
	if e.Timestamp == "" {
		return time.Time{}, false
	}
	t, err := models.ParseTimestamp(e.Timestamp)
	return t, err == nil
}

func orUnknown(s string) string {
	if s == "" {
		return unknownLabel
	}
	return s
}
