package cmd

import (
	"fmt"

	"github.com/marcgrab/marcgrab/internal/cache"
	"github.com/marcgrab/marcgrab/internal/config"
)

// Run deletes every cached catalog page.
func (c *CacheClearCmd) Run() error {
	db, err := cache.Open(config.CacheDBFile)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer db.Close()

	removed, err := db.Purge()
	if err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	fmt.Printf("Removed %d cached pages\n", removed)
	return nil
}
