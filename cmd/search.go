package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/marcgrab/marcgrab/internal/config"
	"github.com/marcgrab/marcgrab/internal/fetch"
	"github.com/marcgrab/marcgrab/internal/library"
	"github.com/marcgrab/marcgrab/internal/ratelimit"
	"github.com/marcgrab/marcgrab/internal/search"
	"github.com/marcgrab/marcgrab/internal/tui"
)

// Run searches the configured catalogs by ISBN.
func (c *SearchISBNCmd) Run() error {
	if strings.TrimSpace(c.ISBN) == "" {
		return fmt.Errorf("ISBN is empty, cannot perform the search")
	}
	return runSearch(search.ISBNQuery(c.ISBN), c.Library, c.Plain)
}

// Run searches the configured catalogs by title and author.
func (c *SearchTitleCmd) Run() error {
	if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.Author) == "" {
		return fmt.Errorf("title or author is empty, cannot perform the search")
	}
	return runSearch(search.TitleAuthorQuery(c.Title, c.Author), c.Library, c.Plain)
}

func runSearch(query search.Query, libraryFlag string, plain bool) error {
	store := library.NewStore(config.LibrariesFile)
	endpoints := store.Load()
	if len(endpoints) == 0 {
		return fmt.Errorf("no libraries configured, add one with 'marcgrab library add'")
	}

	scope := search.AllEndpoints
	if libraryFlag != "" {
		idx, err := resolveEndpoint(endpoints, libraryFlag)
		if err != nil {
			return err
		}
		scope = idx
	}

	client := fetch.NewClient(config.SearchTimeout, config.UserAgent)
	limiter := ratelimit.New("catalog search", config.SearchRate)
	runner := search.NewRunner(client, limiter, slog.Default())

	task := runner.Start(endpoints, query, scope)

	if !plain {
		names := make([]string, len(endpoints))
		for i, e := range endpoints {
			names[i] = e.Name
		}
		return tui.RunSearch(names, task)
	}

	// Plain mode: print one line per terminal status; ctrl+c cancels
	// cooperatively.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		task.Cancel()
	}()

	for update := range task.Updates() {
		name := endpoints[update.Index].Name
		switch update.Outcome {
		case search.OutcomeSearching:
			slog.Info("Searching", "library", name, "url", update.URL)
		case search.OutcomeFound:
			fmt.Printf("%s: Found - %s\n", name, update.URL)
		case search.OutcomeNotFound:
			fmt.Printf("%s: Not Found\n", name)
		case search.OutcomeError:
			fmt.Printf("%s: Error - %s\n", name, update.Detail)
		case search.OutcomeCanceled:
			fmt.Printf("%s: Search canceled\n", name)
		}
	}
	return nil
}

// resolveEndpoint matches a --library value against a 1-based list
// position or a case-insensitive name.
func resolveEndpoint(endpoints []library.Endpoint, value string) (int, error) {
	if pos, err := strconv.Atoi(value); err == nil {
		if pos < 1 || pos > len(endpoints) {
			return 0, fmt.Errorf("library position %d out of range (1-%d)", pos, len(endpoints))
		}
		return pos - 1, nil
	}
	for i, e := range endpoints {
		if strings.EqualFold(e.Name, value) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no library named %q", value)
}
