package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LogPatterns match the usage log files the analyzer understands.
var LogPatterns = []string{"*.jsonl", "*.json"}

type Scanner interface {
	Name() string
	ScanPaths() []string
	ScanForSessions() ([]SessionInfo, error)
}

type SessionInfo struct {
	Path        string
	ProjectName string
	Size        int64
	ModTime     string
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FindFiles lists the files directly inside dir whose base name matches
// any of patterns, in lexical order. Subdirectories are not entered.
func FindFiles(dir string, patterns ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if matchesAny(path, patterns) {
			files = append(files, path)
		}
	}

	sort.Strings(files)
	return files, nil
}

func matchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchesPattern(path, pattern) {
			return true
		}
	}
	return false
}

func matchesPattern(path, pattern string) bool {
	matched, _ := filepath.Match(pattern, strings.ToLower(filepath.Base(path)))
	return matched
}

// ListInputs resolves path to the log files it names: the file itself, or
// every log file directly inside a directory.
func ListInputs(path string) ([]SessionInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []SessionInfo{sessionInfo(path, info)}, nil
	}

	files, err := FindFiles(path, LogPatterns...)
	if err != nil {
		return nil, err
	}

	sessions := make([]SessionInfo, 0, len(files))
	for _, file := range files {
		fi, err := os.Stat(file)
		if err != nil {
			continue
		}
		sessions = append(sessions, sessionInfo(file, fi))
	}
	return sessions, nil
}

func sessionInfo(path string, info os.FileInfo) SessionInfo {
	return SessionInfo{
		Path:        path,
		ProjectName: GetProjectFromPath(path),
		Size:        info.Size(),
		ModTime:     info.ModTime().Format("2006-01-02 15:04"),
	}
}

func GetProjectFromPath(path string) string {
	dir := filepath.Dir(path)
	parts := strings.Split(dir, string(filepath.Separator))

	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" && !strings.HasPrefix(parts[i], ".") {
			return extractProjectName(parts[i])
		}
	}

	return "unknown"
}

// extractProjectName undoes the path mangling Claude Code applies to
// project directory names.
func extractProjectName(dirName string) string {
	if !strings.HasPrefix(dirName, "-") {
		return dirName
	}
	parts := strings.Split(strings.ReplaceAll(dirName, "-", "/"), "/")
	return parts[len(parts)-1]
}
