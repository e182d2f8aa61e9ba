package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	HomeEnv    = "LOX_HOME"
	HistoryEnv = "LOX_HISTORY"
)

// Home returns the cache root: $LOX_HOME, or ~/.lox when unset.
func Home() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(HomeEnv)); dir != "" {
		return filepath.Abs(dir)
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(userHome, ".lox"), nil
}

// HistoryPath picks the REPL history file. $LOX_HISTORY wins, then the
// manifest's repl.history relative to the manifest, then <home>/history.
// An empty result disables history.
func HistoryPath(manifest *Manifest) string {
	if path := strings.TrimSpace(os.Getenv(HistoryEnv)); path != "" {
		return path
	}
	if manifest != nil && manifest.REPL.History != "" {
		if filepath.IsAbs(manifest.REPL.History) {
			return manifest.REPL.History
		}
		return filepath.Join(manifest.Dir(), manifest.REPL.History)
	}
	home, err := Home()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "history")
}

// sanitizePathSegment makes segment safe to use as one directory name.
func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	result := b.String()
	if result == "" || result == "." || result == ".." {
		return "head"
	}
	return result
}
