// Package cache stores fetched catalog pages in a local SQLite database
// so repeated scrapes of the same URL do not hit the network. Search
// requests never use the cache; result pages must be fresh.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultTTL is the default time-to-live for cached pages.
const DefaultTTL = 24 * time.Hour

const pageSchema = `
CREATE TABLE IF NOT EXISTS page_cache (
	url TEXT PRIMARY KEY NOT NULL,
	body TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_page_cached_at ON page_cache(cached_at);
`

// DB manages the SQLite connection backing the page cache.
type DB struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

// Open opens (creating if needed) the page cache at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to cache database: %w", err), closeErr)
	}

	if _, err := db.Exec(pageSchema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create cache table: %w", err), closeErr)
	}

	return &DB{db: db, path: path}, nil
}

// GetPage returns the cached body for a URL when present and newer than
// the TTL.
func (d *DB) GetPage(url string, ttl time.Duration) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var body string
	var cachedAt time.Time
	err := d.db.QueryRow(
		"SELECT body, cached_at FROM page_cache WHERE url = ?", url,
	).Scan(&body, &cachedAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Warn("page cache lookup failed", "url", url, "error", err)
		}
		return "", false
	}

	if time.Since(cachedAt) > ttl {
		slog.Debug("page cache entry expired", "url", url, "cached_at", cachedAt)
		return "", false
	}

	slog.Debug("page cache hit", "url", url)
	return body, true
}

// PutPage stores a fetched page body for a URL, replacing any prior
// entry.
func (d *DB) PutPage(url, body string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.Exec(
		"INSERT OR REPLACE INTO page_cache (url, body, cached_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
		url, body,
	)
	if err != nil {
		return fmt.Errorf("failed to store page: %w", err)
	}
	return nil
}

// Purge deletes every cached page and returns the number removed.
func (d *DB) Purge() (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	result, err := d.db.Exec("DELETE FROM page_cache")
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged rows: %w", err)
	}
	slog.Debug("page cache purged", "rows_deleted", n)
	return n, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
