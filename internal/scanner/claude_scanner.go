package scanner

import (
	"os"
	"path/filepath"
	"runtime"
)

// ClaudeScanner knows where Claude clients keep usage logs on each OS.
type ClaudeScanner struct {
	goos       string
	home       string
	cwd        string
	getenv     func(string) string
	extraPaths []string
}

func NewClaudeScanner(extraPaths ...string) *ClaudeScanner {
	home, _ := GetHomeDir()
	cwd, _ := os.Getwd()
	return &ClaudeScanner{
		goos:       runtime.GOOS,
		home:       home,
		cwd:        cwd,
		getenv:     os.Getenv,
		extraPaths: extraPaths,
	}
}

func (s *ClaudeScanner) Name() string {
	return "Claude"
}

// ScanPaths lists candidate directories in priority order. Configured
// paths come first and the common download locations last.
func (s *ClaudeScanner) ScanPaths() []string {
	paths := append([]string{}, s.extraPaths...)
	home := s.home

	switch s.goos {
	case "darwin":
		support := filepath.Join(home, "Library", "Application Support")
		paths = append(paths,
			filepath.Join(support, "claude", "usage"),
			filepath.Join(support, "claude-desktop", "usage"),
			filepath.Join(support, "Anthropic", "Claude", "usage"),
			filepath.Join(home, ".claude", "usage"),
		)
	case "windows":
		appData := s.envOr("APPDATA", filepath.Join(home, "AppData", "Roaming"))
		localAppData := s.envOr("LOCALAPPDATA", filepath.Join(home, "AppData", "Local"))
		paths = append(paths,
			filepath.Join(appData, "claude", "usage"),
			filepath.Join(localAppData, "claude", "usage"),
			filepath.Join(appData, "Anthropic", "Claude", "usage"),
		)
	default:
		paths = append(paths,
			filepath.Join(home, ".config", "claude", "usage"),
			filepath.Join(home, ".claude", "usage"),
			filepath.Join(home, ".local", "share", "claude", "usage"),
		)
	}

	if s.cwd != "" {
		paths = append(paths, filepath.Join(s.cwd, "claude_usage_data"))
	}
	return append(paths,
		filepath.Join(home, "Downloads", "claude_usage_data"),
		filepath.Join(home, "Desktop", "claude_usage_data"),
	)
}

func (s *ClaudeScanner) envOr(key, fallback string) string {
	if v := s.getenv(key); v != "" {
		return v
	}
	return fallback
}

// Discover returns the first candidate directory holding any log file.
func (s *ClaudeScanner) Discover() (string, bool) {
	for _, path := range s.ScanPaths() {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		if files, _ := FindFiles(path, LogPatterns...); len(files) > 0 {
			return path, true
		}
	}
	return "", false
}

// ScanForSessions lists every log file under every existing candidate.
func (s *ClaudeScanner) ScanForSessions() ([]SessionInfo, error) {
	var sessions []SessionInfo
	seen := make(map[string]bool)

	for _, basePath := range s.ScanPaths() {
		if !FileExists(basePath) || seen[basePath] {
			continue
		}
		seen[basePath] = true

		found, err := ListInputs(basePath)
		if err != nil {
			continue
		}
		sessions = append(sessions, found...)
	}

	return sessions, nil
}
