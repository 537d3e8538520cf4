package stats

import (
	"github.com/samber/lo"

	"github.com/jasperwreed/ai-usage/internal/models"
)

// ConversationTokens is the sum of the message token counts.
func ConversationTokens(messages []models.Message) int {
	return lo.SumBy(messages, func(m models.Message) int { return m.Tokens })
}

// Distribution reports min, max and mean over messages with a positive
// token count. Zero-token messages are excluded.
func Distribution(messages []models.Message) models.TokenDistribution {
	counts := lo.FilterMap(messages, func(m models.Message, _ int) (int, bool) {
		return m.Tokens, m.Tokens > 0
	})
	if len(counts) == 0 {
		return models.TokenDistribution{}
	}
	return models.TokenDistribution{
		Count: len(counts),
		Min:   lo.Min(counts),
		Max:   lo.Max(counts),
		Avg:   safeDiv(lo.Sum(counts), len(counts)),
	}
}
