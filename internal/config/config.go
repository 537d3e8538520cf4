package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Analysis  AnalysisConfig  `toml:"analysis"`
	Dashboard DashboardConfig `toml:"dashboard"`
	Discovery DiscoveryConfig `toml:"discovery"`
}

type AnalysisConfig struct {
	ActiveMinutes   int `toml:"active_minutes"`
	RecentMinutes   int `toml:"recent_minutes"`
	ContextMessages int `toml:"context_messages"`
	ContextChars    int `toml:"context_chars"`
	CharsPerToken   int `toml:"chars_per_token"`
}

type DashboardConfig struct {
	Output           string `toml:"output"`
	MaxConversations int    `toml:"max_conversations"`
	PreviewChars     int    `toml:"preview_chars"`
	Title            string `toml:"title"`
}

type DiscoveryConfig struct {
	ExtraPaths []string `toml:"extra_paths"`
}

type LoadResult struct {
	Config   Config
	Warnings []string
}

func DefaultConfig() Config {
	return Config{
		Analysis: AnalysisConfig{
			ActiveMinutes:   5,
			RecentMinutes:   60,
			ContextMessages: 3,
			ContextChars:    500,
			CharsPerToken:   4,
		},
		Dashboard: DashboardConfig{
			Output:           "claude_dashboard.html",
			MaxConversations: 50,
			PreviewChars:     500,
			Title:            "Claude Usage Dashboard",
		},
	}
}

// ActiveWindow and RecentWindow are the status thresholds as durations.
func (a AnalysisConfig) ActiveWindow() time.Duration {
	return time.Duration(a.ActiveMinutes) * time.Minute
}

func (a AnalysisConfig) RecentWindow() time.Duration {
	return time.Duration(a.RecentMinutes) * time.Minute
}

// DefaultPath is $XDG_CONFIG_HOME/ai-usage/config.toml, falling back to
// ~/.config/ai-usage/config.toml.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ai-usage", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ai-usage", "config.toml")
}

func Load() (*LoadResult, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads path over the defaults. A missing file is not an error.
func LoadFrom(path string) (*LoadResult, error) {
	if path == "" {
		return &LoadResult{Config: DefaultConfig()}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &LoadResult{Config: DefaultConfig()}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromString(string(data))
}

func LoadFromString(data string) (*LoadResult, error) {
	result := &LoadResult{Config: DefaultConfig()}

	meta, err := toml.Decode(data, &result.Config)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	for _, key := range meta.Undecoded() {
		result.Warnings = append(result.Warnings, fmt.Sprintf("unknown config key: %q", key.String()))
	}

	if err := validate(&result.Config); err != nil {
		return nil, err
	}
	return result, nil
}

func validate(cfg *Config) error {
	var errs []string

	a := cfg.Analysis
	if a.ActiveMinutes <= 0 {
		errs = append(errs, "analysis.active_minutes must be positive")
	}
	if a.RecentMinutes < a.ActiveMinutes {
		errs = append(errs, "analysis.recent_minutes must not be less than active_minutes")
	}
	if a.ContextMessages <= 0 {
		errs = append(errs, "analysis.context_messages must be positive")
	}
	if a.ContextChars <= 0 {
		errs = append(errs, "analysis.context_chars must be positive")
	}
	if a.CharsPerToken <= 0 {
		errs = append(errs, "analysis.chars_per_token must be positive")
	}

	d := cfg.Dashboard
	if strings.TrimSpace(d.Output) == "" {
		errs = append(errs, "dashboard.output must not be empty")
	}
	if d.MaxConversations <= 0 {
		errs = append(errs, "dashboard.max_conversations must be positive")
	}
	if d.PreviewChars < 4 {
		errs = append(errs, "dashboard.preview_chars must be at least 4")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}
