// Package fileutil provides filename sanitization and output-file
// helpers shared by the scraping and cataloging flows.
package fileutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// CleanFilename removes every character that is not alphanumeric or
// whitespace, then collapses whitespace runs to single underscores. It
// is the single filename-safety primitive for both scraped and manually
// entered records.
func CleanFilename(name string) string {
	var kept strings.Builder
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			kept.WriteRune(c)
		case c == ' ', c == '\t', c == '\n', c == '\r':
			kept.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(kept.String()), "_")
}

// FileExists checks if a regular file exists at the given path.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// WriteMARCFile writes serialized record bytes to path, appending the
// .mrc extension when missing and creating parent directories as needed.
// It returns the path actually written.
func WriteMARCFile(path string, data []byte) (string, error) {
	if filepath.Ext(path) == "" {
		path += ".mrc"
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write MARC file: %w", err)
	}

	slog.Info("MARC record saved", "filename", path, "bytes", len(data))
	return path, nil
}
