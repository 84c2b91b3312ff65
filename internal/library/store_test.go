package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcgrab/marcgrab/internal/testutil"
)

func TestStoreLoadMissingFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	store := NewStore(env.Path("libraries.json"))
	assert.Empty(t, store.Load())
}

func TestStoreLoadMalformedFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("libraries.json", "{not json")

	store := NewStore(env.Path("libraries.json"))
	assert.Empty(t, store.Load())
}

func TestStoreSaveAndLoad(t *testing.T) {
	env := testutil.NewTestEnv(t)
	store := NewStore(env.Path("config", "libraries.json"))

	endpoints := []Endpoint{
		{
			Name:           "First Library",
			ISBNURL:        "https://first.example.org/?isbn={isbn}",
			TitleAuthorURL: "https://first.example.org/?t={title}&a={author}",
		},
		{
			Name:           "Second Library",
			ISBNURL:        "https://second.example.org/?isbn={isbn}",
			TitleAuthorURL: "https://second.example.org/?t={title}&a={author}",
		},
	}

	require.NoError(t, store.Save(endpoints))
	env.RequireFileExists("config/libraries.json")
	env.AssertFileContains("config/libraries.json", `"isbn_url"`)

	loaded := store.Load()
	require.Len(t, loaded, 2)
	assert.Equal(t, endpoints, loaded, "order is preserved across the round trip")
}

func TestStorePath(t *testing.T) {
	store := NewStore("/tmp/libraries.json")
	assert.Equal(t, "/tmp/libraries.json", store.Path())
}
