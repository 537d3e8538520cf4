package models

import (
	"fmt"
	"strings"
	"time"
)

type TimestampParseError struct {
	Value string
}

func (e *TimestampParseError) Error() string {
	return fmt.Sprintf("unparseable timestamp %q", e.Value)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02",
}

// ParseTimestamp reads an ISO-8601 timestamp. A trailing Z means UTC and
// values without an offset are taken as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, &TimestampParseError{Value: value}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &TimestampParseError{Value: value}
}
