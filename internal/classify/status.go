package classify

import (
	"time"

	"github.com/jasperwreed/ai-usage/internal/models"
)

const (
	DefaultActiveWindow = 5 * time.Minute
	DefaultRecentWindow = time.Hour
)

// Thresholds bound the active and recent buckets. A conversation idle for
// less than Active is active, less than Recent is recent.
type Thresholds struct {
	Active time.Duration
	Recent time.Duration
}

func DefaultThresholds() Thresholds {
	return Thresholds{Active: DefaultActiveWindow, Recent: DefaultRecentWindow}
}

// Status buckets lastActivity relative to now. Timestamps in the future
// count as active.
func Status(lastActivity *string, now time.Time, th Thresholds) models.Status {
	if lastActivity == nil {
		return models.StatusUnknown
	}
	last, err := models.ParseTimestamp(*lastActivity)
	if err != nil {
		return models.StatusUnknown
	}

	idle := now.Sub(last)
	switch {
	case idle < th.Active:
		return models.StatusActive
	case idle < th.Recent:
		return models.StatusRecent
	default:
		return models.StatusInactive
	}
}
