package models

import "encoding/json"

// RawEntry is one decoded log record. Fields the record did not carry stay
// at their zero value; nothing here is validated.
type RawEntry struct {
	SessionID string
	Type      string
	Role      string
	Timestamp string
	UserType  string
	Message   *EntryMessage

	// Source and Line locate the record; Line is 1-based.
	Source      string
	Line        int
	FallbackKey string
}

type EntryMessage struct {
	Content json.RawMessage
	Model   string
	Usage   *Usage
	// Flat is set when content and model came from the top level of the
	// record instead of a nested message object.
	Flat bool
}

type Usage struct {
	InputTokens              int `json:"input_tokens"`
	OutputTokens             int `json:"output_tokens"`
	CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens"`
}

// SessionKey is the grouping key: the session id when present, otherwise
// the key the parser derived from the record's location.
func (e RawEntry) SessionKey() string {
	if e.SessionID != "" {
		return e.SessionID
	}
	return e.FallbackKey
}

// Kind reports the record type, falling back to the role for flat exports.
func (e RawEntry) Kind() string {
	if e.Type != "" {
		return e.Type
	}
	return e.Role
}

func (e RawEntry) Model() string {
	if e.Message == nil {
		return ""
	}
	return e.Message.Model
}

func (e RawEntry) Usage() *Usage {
	if e.Message == nil {
		return nil
	}
	return e.Message.Usage
}
