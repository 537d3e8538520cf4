// Package classify assigns activity status and a project context label to
// reconstructed conversations.
package classify

import (
	"time"

	"github.com/jasperwreed/ai-usage/internal/models"
)

type Classifier struct {
	thresholds Thresholds
	matcher    *ContextMatcher
}

func NewClassifier(th Thresholds, matcher *ContextMatcher) *Classifier {
	if matcher == nil {
		matcher = NewContextMatcher(nil, 0, 0)
	}
	return &Classifier{thresholds: th, matcher: matcher}
}

// Classify returns a copy of conv with Status and ProjectContext set.
func (c *Classifier) Classify(conv models.Conversation, now time.Time) models.Conversation {
	conv.Status = Status(conv.LastActivity, now, c.thresholds)
	conv.ProjectContext = c.matcher.Match(conv.Messages)
	return conv
}

func (c *Classifier) ClassifyAll(convs []models.Conversation, now time.Time) []models.Conversation {
	out := make([]models.Conversation, len(convs))
	for i, conv := range convs {
		out[i] = c.Classify(conv, now)
	}
	return out
}
