package storage

import (
	"fmt"
	"time"
)

// Config tunes the connection used while writing an export.
type Config struct {
	BusyTimeout time.Duration
	CacheSizeKB int
	// JournalMode DELETE leaves no -wal/-shm files next to the export.
	JournalMode string
	Synchronous string
}

func DefaultConfig() *Config {
	return &Config{
		BusyTimeout: 5 * time.Second,
		CacheSizeKB: 16000,
		JournalMode: "DELETE",
		Synchronous: "OFF",
	}
}

// pragmas are applied in order right after the database is opened.
func (c *Config) pragmas() []string {
	return []string{
		fmt.Sprintf("PRAGMA journal_mode = %s", c.JournalMode),
		fmt.Sprintf("PRAGMA synchronous = %s", c.Synchronous),
		fmt.Sprintf("PRAGMA busy_timeout = %d", c.BusyTimeout.Milliseconds()),
		fmt.Sprintf("PRAGMA cache_size = -%d", c.CacheSizeKB),
		"PRAGMA foreign_keys = ON",
	}
}
