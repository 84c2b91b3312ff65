package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/marcgrab/marcgrab/internal/cache"
	"github.com/marcgrab/marcgrab/internal/config"
	"github.com/marcgrab/marcgrab/internal/fetch"
	"github.com/marcgrab/marcgrab/internal/fileutil"
	"github.com/marcgrab/marcgrab/internal/scrape"
)

// Run scrapes the URL, prints the parsed record, and optionally writes
// it as a binary MARC file.
func (s *ScrapeCmd) Run() error {
	client := fetch.NewClient(config.ScrapeTimeout, config.UserAgent)

	var pages *cache.DB
	if !s.NoCache {
		db, err := cache.Open(config.CacheDBFile)
		if err != nil {
			slog.Warn("page cache unavailable, fetching directly", "error", err)
		} else {
			pages = db
			defer func() { _ = db.Close() }()
		}
	}

	fetcher := scrape.NewFetcher(client, pages, config.CacheTTL, slog.Default())

	slog.Info("Scraping URL", "url", s.URL)
	doc, err := fetcher.Scrape(context.Background(), s.URL)
	if err != nil {
		return err
	}

	rec, err := doc.Record(slog.Default())
	if err != nil {
		return err
	}
	fmt.Println(rec.String())

	if s.Output == "" && !s.Save {
		return nil
	}

	if err := scrape.ValidateRecord(rec); err != nil {
		if !s.Force {
			return fmt.Errorf("record failed validation: %w (use --force to write anyway)", err)
		}
		slog.Warn("record failed validation, writing anyway", "error", err)
	}

	out := s.Output
	if out == "" {
		out = doc.DefaultFilename()
	}

	data, err := rec.Bytes()
	if err != nil {
		return err
	}
	path, err := fileutil.WriteMARCFile(out, data)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", path)
	return nil
}
