package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/marcgrab/marcgrab/internal/cache"
	"github.com/marcgrab/marcgrab/internal/dialect"
	"github.com/marcgrab/marcgrab/internal/fetch"
)

const aggregatorHost = "primo.exlibrisgroup.com"

// ErrUnknownFormat means no known dialect marker was present in the
// fetched page.
var ErrUnknownFormat = errors.New("unable to identify the MARC format in the page")

// ErrMissingPlainView means the marc table dialect's mandatory "view
// plain" anchor was absent.
var ErrMissingPlainView = errors.New("view plain link not found")

// ParamError reports a known API-style source URL missing one of its
// required query parameters.
type ParamError struct {
	Source string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("unable to extract necessary parameters from the %s URL", e.Source)
}

// Fetcher resolves a user-supplied URL to a parsed Document, using an
// optional page cache for repeat scrapes.
type Fetcher struct {
	client *fetch.Client
	pages  *cache.DB
	ttl    time.Duration
	log    *slog.Logger
}

// NewFetcher creates a fetcher. The page cache may be nil to always hit
// the network.
func NewFetcher(client *fetch.Client, pages *cache.DB, ttl time.Duration, log *slog.Logger) *Fetcher {
	if log == nil {
		log = slog.Default()
	}
	return &Fetcher{client: client, pages: pages, ttl: ttl, log: log}
}

// Scrape fetches and parses the given URL. Known aggregator hosts and
// API paths are routed to the source-record API; everything else is
// fetched directly, classified, and dispatched to its dialect parser.
func (f *Fetcher) Scrape(ctx context.Context, rawURL string) (*Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	switch {
	case strings.Contains(u.Host, aggregatorHost):
		f.log.Info("detected aggregator URL", "host", u.Host)
		return f.fetchSourceRecord(ctx, u, "aggregator")
	case strings.Contains(u.Path, "discovery/sourceRecord"):
		f.log.Info("detected source-record API URL", "path", u.Path)
		return f.fetchSourceRecord(ctx, u, "source-record")
	}

	body, err := f.getPage(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	format := dialect.Detect(doc)
	f.log.Info("detected format", "format", format.String(), "url", rawURL)

	var fields []dialect.Field
	switch format {
	case dialect.FormatInline:
		fields = dialect.ParseInline(doc, f.log)
	case dialect.FormatMarcTable:
		return f.followPlainView(ctx, doc, u)
	case dialect.FormatPre:
		text := doc.Find(`pre[style="direction: ltr"]`).First().Text()
		fields = dialect.ParsePlainLines(text, f.log)
	case dialect.FormatCitation:
		fields, err = dialect.ParseCitation(doc, f.log)
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnknownFormat
	}

	return &Document{SourceURL: rawURL, Format: format, Fields: fields}, nil
}

// fetchSourceRecord extracts the document id, view id, and record-owner
// id from an API-style URL and fetches the record from the source-record
// endpoint, handing the plain text to the line parser. Any missing
// parameter aborts before the secondary request.
func (f *Fetcher) fetchSourceRecord(ctx context.Context, u *url.URL, source string) (*Document, error) {
	q := u.Query()
	docID := q.Get("docId")
	vid := q.Get("vid")
	owner := q.Get("recordOwner")
	if docID == "" || vid == "" || owner == "" {
		f.log.Warn("missing required query parameters", "source", source, "url", u.String())
		return nil, &ParamError{Source: source}
	}

	params := url.Values{}
	params.Set("docId", docID)
	params.Set("vid", vid)
	params.Set("recordOwner", owner)
	params.Set("lang", "en")
	apiURL := fmt.Sprintf("https://%s/primaws/rest/pub/sourceRecord?%s", u.Host, params.Encode())

	body, err := f.getPage(ctx, apiURL)
	if err != nil {
		return nil, err
	}

	fields := dialect.ParsePlainLines(body, f.log)
	return &Document{SourceURL: u.String(), Format: dialect.FormatPre, Fields: fields}, nil
}

// followPlainView resolves the "view plain" anchor against the page's
// origin, fetches it, and parses the plain-view table. A missing anchor
// is a hard parse failure.
func (f *Fetcher) followPlainView(ctx context.Context, doc *goquery.Document, page *url.URL) (*Document, error) {
	href, ok := doc.Find("a#switchview").First().Attr("href")
	if !ok {
		return nil, ErrMissingPlainView
	}

	plainURL := page.Scheme + "://" + page.Host + href
	f.log.Info("following view plain link", "url", plainURL)

	body, err := f.getPage(ctx, plainURL)
	if err != nil {
		return nil, err
	}

	plainDoc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse plain view: %w", err)
	}

	fields, err := dialect.ParsePlainTable(plainDoc, f.log)
	if err != nil {
		return nil, err
	}
	return &Document{SourceURL: plainURL, Format: dialect.FormatMarcTable, Fields: fields}, nil
}

// getPage returns the page body for a URL, consulting the page cache
// first when one is configured.
func (f *Fetcher) getPage(ctx context.Context, pageURL string) (string, error) {
	if f.pages != nil {
		if body, ok := f.pages.GetPage(pageURL, f.ttl); ok {
			return body, nil
		}
	}

	resp, err := f.client.Get(ctx, pageURL)
	if err != nil {
		return "", err
	}

	if f.pages != nil {
		if err := f.pages.PutPage(pageURL, resp.Body); err != nil {
			f.log.Warn("could not cache page", "url", pageURL, "error", err)
		}
	}
	return resp.Body, nil
}
