package models

// EntryReport is the per-record summary of a single log file.
type EntryReport struct {
	BasicStats   BasicStats     `json:"basic_stats"`
	TokenStats   TokenStats     `json:"token_stats"`
	Timeline     Timeline       `json:"timeline"`
	Models       map[string]int `json:"models"`
	SessionStats SessionStats   `json:"session_stats"`
}

type BasicStats struct {
	TotalMessages  int            `json:"total_messages"`
	UniqueSessions int            `json:"unique_sessions"`
	UserTypes      map[string]int `json:"user_types"`
	MessageTypes   map[string]int `json:"message_types"`
}

type TokenStats struct {
	TotalInputTokens    int      `json:"total_input_tokens"`
	TotalOutputTokens   int      `json:"total_output_tokens"`
	TotalCacheTokens    int      `json:"total_cache_tokens"`
	MessagesWithUsage   int      `json:"messages_with_usage"`
	TokenDistribution   []int    `json:"token_distribution"`
	AvgTokensPerMessage *float64 `json:"avg_tokens_per_message,omitempty"`
	MaxTokensInMessage  *int     `json:"max_tokens_in_message,omitempty"`
	MinTokensInMessage  *int     `json:"min_tokens_in_message,omitempty"`
}

type Timeline struct {
	DailyUsage         map[string]int `json:"daily_usage"`
	HourlyDistribution map[int]int    `json:"hourly_distribution"`
}

type SessionStats struct {
	TotalSessions             int       `json:"total_sessions"`
	MessagesPerSession        []int     `json:"messages_per_session"`
	SessionDurations          []float64 `json:"session_durations"`
	AvgMessagesPerSession     *float64  `json:"avg_messages_per_session,omitempty"`
	AvgSessionDurationMinutes *float64  `json:"avg_session_duration_minutes,omitempty"`
}
