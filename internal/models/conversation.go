package models

// Status buckets a conversation by how recently it saw activity.
type Status string

const (
	StatusActive   Status = "active"
	StatusRecent   Status = "recent"
	StatusInactive Status = "inactive"
	StatusUnknown  Status = "unknown"
)

// UnknownModel is reported for conversations that never name a model.
const UnknownModel = "unknown"

type Conversation struct {
	ID             string    `json:"id"`
	FilePath       string    `json:"file_path,omitempty"`
	Messages       []Message `json:"messages"`
	TotalTokens    int       `json:"total_tokens"`
	Model          string    `json:"model"`
	CreatedAt      *string   `json:"created_at"`
	LastActivity   *string   `json:"last_activity"`
	Status         Status    `json:"status"`
	ProjectContext string    `json:"project_context"`
}

type Message struct {
	Role      string  `json:"role"`
	Content   string  `json:"content"`
	Timestamp *string `json:"timestamp"`
	Tokens    int     `json:"tokens"`
}

type DailyUsage struct {
	Conversations int `json:"conversations"`
	Tokens        int `json:"tokens"`
}

// TokenDistribution summarises per-message token counts above zero.
type TokenDistribution struct {
	Count int     `json:"count"`
	Min   int     `json:"min"`
	Max   int     `json:"max"`
	Avg   float64 `json:"avg"`
}

type UsageStats struct {
	TotalConversations         int                   `json:"total_conversations"`
	TotalMessages              int                   `json:"total_messages"`
	TotalTokens                int                   `json:"total_tokens"`
	Models                     map[string]int        `json:"models"`
	ModelTokens                map[string]int        `json:"model_tokens"`
	Projects                   map[string]int        `json:"projects"`
	Statuses                   map[Status]int        `json:"statuses"`
	DailyUsage                 map[string]DailyUsage `json:"daily_usage"`
	AvgTokensPerConversation   float64               `json:"avg_tokens_per_conversation"`
	AvgMessagesPerConversation float64               `json:"avg_messages_per_conversation"`
	TokenDistribution          TokenDistribution     `json:"token_distribution"`
}
