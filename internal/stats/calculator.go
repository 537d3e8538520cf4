// Package stats computes aggregate usage statistics from reconstructed
// conversations and raw log entries. All functions are pure.
package stats

import (
	"github.com/samber/lo"

	"github.com/jasperwreed/ai-usage/internal/models"
)

// Calculator computes UsageStats from a batch of conversations.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute aggregates convs. Breakdowns count one occurrence per
// conversation and averages are zero for an empty batch.
func (c *Calculator) Compute(convs []models.Conversation) models.UsageStats {
	stats := models.UsageStats{
		TotalConversations: len(convs),
		TotalMessages:      lo.SumBy(convs, func(conv models.Conversation) int { return len(conv.Messages) }),
		TotalTokens:        lo.SumBy(convs, func(conv models.Conversation) int { return conv.TotalTokens }),
	}

	stats.Models = lo.CountValuesBy(convs, func(conv models.Conversation) string { return conv.Model })
	stats.ModelTokens = c.computeModelTokens(convs)
	stats.Projects = lo.CountValuesBy(convs, func(conv models.Conversation) string { return conv.ProjectContext })
	stats.Statuses = lo.CountValuesBy(convs, func(conv models.Conversation) models.Status { return conv.Status })
	stats.DailyUsage = c.computeDailyUsage(convs)
	stats.TokenDistribution = Distribution(lo.FlatMap(convs, func(conv models.Conversation, _ int) []models.Message {
		return conv.Messages
	}))

	stats.AvgTokensPerConversation = safeDiv(stats.TotalTokens, stats.TotalConversations)
	stats.AvgMessagesPerConversation = safeDiv(stats.TotalMessages, stats.TotalConversations)

	return stats
}

func (c *Calculator) computeModelTokens(convs []models.Conversation) map[string]int {
	byModel := lo.GroupBy(convs, func(conv models.Conversation) string { return conv.Model })
	return lo.MapValues(byModel, func(group []models.Conversation, _ string) int {
		return lo.SumBy(group, func(conv models.Conversation) int { return conv.TotalTokens })
	})
}

// computeDailyUsage buckets conversations by the calendar date of their
// createdAt, in the timestamp's own offset. Conversations without a
// parseable createdAt are left out.
func (c *Calculator) computeDailyUsage(convs []models.Conversation) map[string]models.DailyUsage {
	daily := make(map[string]models.DailyUsage)
	for _, conv := range convs {
		if conv.CreatedAt == nil {
			continue
		}
		created, err := models.ParseTimestamp(*conv.CreatedAt)
		if err != nil {
			continue
		}
		day := created.Format("2006-01-02")
		bucket := daily[day]
		bucket.Conversations++
		bucket.Tokens += conv.TotalTokens
		daily[day] = bucket
	}
	return daily
}

func safeDiv(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
