package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/marcgrab/marcgrab/internal/config"
	"github.com/marcgrab/marcgrab/internal/library"
)

// Run lists the configured libraries in their search order.
func (c *LibraryListCmd) Run() error {
	store := library.NewStore(config.LibrariesFile)
	endpoints := store.Load()
	if len(endpoints) == 0 {
		fmt.Println("No libraries configured. Add one with 'marcgrab library add'.")
		return nil
	}
	for i, e := range endpoints {
		fmt.Printf("%2d. %s\n    ISBN:           %s\n    Title & Author: %s\n", i+1, e.Name, e.ISBNURL, e.TitleAuthorURL)
	}
	return nil
}

// Run validates and appends a new library, then persists the whole
// list.
func (c *LibraryAddCmd) Run() error {
	endpoint := library.Endpoint{
		Name:           strings.TrimSpace(c.Name),
		ISBNURL:        strings.TrimSpace(c.ISBNURL),
		TitleAuthorURL: strings.TrimSpace(c.TitleAuthorURL),
	}
	if err := endpoint.Validate(); err != nil {
		return err
	}

	store := library.NewStore(config.LibrariesFile)
	endpoints := append(store.Load(), endpoint)
	if err := store.Save(endpoints); err != nil {
		return err
	}
	slog.Info("Library added", "name", endpoint.Name, "libraries", len(endpoints))
	return nil
}

// Run applies the provided changes to one library and persists the
// list. Flags left empty keep their current values.
func (c *LibraryEditCmd) Run() error {
	store := library.NewStore(config.LibrariesFile)
	endpoints := store.Load()
	if c.Position < 1 || c.Position > len(endpoints) {
		return fmt.Errorf("library position %d out of range (1-%d)", c.Position, len(endpoints))
	}

	edited := endpoints[c.Position-1]
	var changes []string
	if name := strings.TrimSpace(c.Name); name != "" && name != edited.Name {
		changes = append(changes, fmt.Sprintf("name %q -> %q", edited.Name, name))
		edited.Name = name
	}
	if u := strings.TrimSpace(c.ISBNURL); u != "" && u != edited.ISBNURL {
		changes = append(changes, fmt.Sprintf("ISBN URL %q -> %q", edited.ISBNURL, u))
		edited.ISBNURL = u
	}
	if u := strings.TrimSpace(c.TitleAuthorURL); u != "" && u != edited.TitleAuthorURL {
		changes = append(changes, fmt.Sprintf("Title & Author URL %q -> %q", edited.TitleAuthorURL, u))
		edited.TitleAuthorURL = u
	}

	if len(changes) == 0 {
		slog.Info("No changes made", "name", edited.Name)
		return nil
	}

	if err := edited.Validate(); err != nil {
		return err
	}

	endpoints[c.Position-1] = edited
	if err := store.Save(endpoints); err != nil {
		return err
	}
	slog.Info("Library updated", "name", edited.Name, "changes", strings.Join(changes, "; "))
	return nil
}

// Run removes one library and persists the list.
func (c *LibraryRemoveCmd) Run() error {
	store := library.NewStore(config.LibrariesFile)
	endpoints := store.Load()
	if c.Position < 1 || c.Position > len(endpoints) {
		return fmt.Errorf("library position %d out of range (1-%d)", c.Position, len(endpoints))
	}

	removed := endpoints[c.Position-1]
	endpoints = append(endpoints[:c.Position-1], endpoints[c.Position:]...)
	if err := store.Save(endpoints); err != nil {
		return err
	}
	slog.Info("Library removed", "name", removed.Name, "libraries", len(endpoints))
	return nil
}
