package classify

import (
	"strings"

	"github.com/jasperwreed/ai-usage/internal/models"
)

// GeneralContext is assigned when no rule matches.
const GeneralContext = "general"

const (
	DefaultSampleMessages = 3
	DefaultSampleChars    = 500
)

// Rule assigns Label when any keyword occurs in the lowercased sample.
type Rule struct {
	Label    string
	Keywords []string
}

// DefaultRules are evaluated in order; the first match wins.
var DefaultRules = []Rule{
	{Label: "python", Keywords: []string{"python", ".py", "import ", "def "}},
	{Label: "javascript", Keywords: []string{"javascript", ".js", "npm", "node"}},
	{Label: "react", Keywords: []string{"react", "jsx", "component"}},
	{Label: "web", Keywords: []string{"html", "css", "web", "website"}},
	{Label: "debugging", Keywords: []string{"debug", "error", "bug", "fix"}},
	{Label: "data", Keywords: []string{"data", "analysis", "csv", "pandas"}},
}

type ContextMatcher struct {
	rules    []Rule
	messages int
	chars    int
}

func NewContextMatcher(rules []Rule, messages, chars int) *ContextMatcher {
	if rules == nil {
		rules = DefaultRules
	}
	if messages <= 0 {
		messages = DefaultSampleMessages
	}
	if chars <= 0 {
		chars = DefaultSampleChars
	}
	return &ContextMatcher{rules: rules, messages: messages, chars: chars}
}

func (m *ContextMatcher) Match(messages []models.Message) string {
	sample := m.sample(messages)
	for _, rule := range m.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(sample, kw) {
				return rule.Label
			}
		}
	}
	return GeneralContext
}

// sample joins the leading characters of the first few messages.
func (m *ContextMatcher) sample(messages []models.Message) string {
	var b strings.Builder
	for i, msg := range messages {
		if i >= m.messages {
			break
		}
		b.WriteString(truncateRunes(msg.Content, m.chars))
	}
	return strings.ToLower(b.String())
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
