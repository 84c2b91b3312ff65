package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPageCacheRoundTrip(t *testing.T) {
	db := openTestDB(t)

	_, ok := db.GetPage("https://example.org/record/1", DefaultTTL)
	assert.False(t, ok, "miss before store")

	require.NoError(t, db.PutPage("https://example.org/record/1", "<html>body</html>"))

	body, ok := db.GetPage("https://example.org/record/1", DefaultTTL)
	require.True(t, ok)
	assert.Equal(t, "<html>body</html>", body)
}

func TestPageCacheReplace(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.PutPage("https://example.org/r", "old"))
	require.NoError(t, db.PutPage("https://example.org/r", "new"))

	body, ok := db.GetPage("https://example.org/r", DefaultTTL)
	require.True(t, ok)
	assert.Equal(t, "new", body)
}

func TestPageCacheExpiry(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.PutPage("https://example.org/r", "body"))

	_, ok := db.GetPage("https://example.org/r", -time.Second)
	assert.False(t, ok, "expired entries are misses")
}

func TestPurge(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.PutPage("https://example.org/a", "x"))
	require.NoError(t, db.PutPage("https://example.org/b", "y"))

	n, err := db.Purge()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, ok := db.GetPage("https://example.org/a", DefaultTTL)
	assert.False(t, ok)
}
