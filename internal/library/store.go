package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Store persists the ordered endpoint list as a JSON document. The
// list's order is stable and is the iteration order for full-catalog
// searches.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the endpoint list. A missing or malformed file yields an
// empty list, not an error.
func (s *Store) Load() []Endpoint {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("could not read library list", "path", s.path, "error", err)
		}
		return nil
	}

	var endpoints []Endpoint
	if err := json.Unmarshal(data, &endpoints); err != nil {
		slog.Warn("library list is malformed, starting with an empty list", "path", s.path, "error", err)
		return nil
	}
	return endpoints
}

// Save writes the whole endpoint list back to disk.
func (s *Store) Save(endpoints []Endpoint) error {
	data, err := json.MarshalIndent(endpoints, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal library list: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write library list: %w", err)
	}
	return nil
}
