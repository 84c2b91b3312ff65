package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/marcgrab/marcgrab/internal/fetch"
)

// Result is the classifier's verdict for a fetched page.
type Result int

const (
	// ResultNotFound means the page shows no matching record.
	ResultNotFound Result = iota
	// ResultFound means the page shows at least one matching record.
	ResultFound
)

// Page bundles a fetched response with its parsed document and the
// page's visible text, computed once per classification.
type Page struct {
	Response *fetch.Response
	Doc      *goquery.Document
	Text     string
}

// NewPage parses a fetched response for classification.
func NewPage(resp *fetch.Response) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &Page{Response: resp, Doc: doc, Text: visibleText(doc)}, nil
}

// Rule is one independently testable classification signal.
type Rule struct {
	Name  string
	Match func(p *Page) bool
}

var notFoundPhrases = []string{
	"no results found",
	"no matches found",
	"no entries found",
	"search resulted in no hits",
	"no results!",
	"your search found no results.",
	"no records found",
}

var (
	noResultsHeading = regexp.MustCompile(`(?i)no results`)
	resultsCount     = regexp.MustCompile(`(?i)results:\s*\d+`)
	resultCountSpan  = regexp.MustCompile(`(?i)\d+\s+(?:results?|result|of\s+results?)\s*found`)
)

// NotFoundRules are the negative signals, checked before anything else.
// Any match short-circuits the classification to not found.
var NotFoundRules = []Rule{
	{
		Name: "negative phrase",
		Match: func(p *Page) bool {
			for _, phrase := range notFoundPhrases {
				if strings.Contains(p.Text, phrase) {
					return true
				}
			}
			return false
		},
	},
	{
		Name: "no-results heading",
		Match: func(p *Page) bool {
			return anyText(p.Doc.Find("h1"), noResultsHeading.MatchString)
		},
	},
	{
		Name: "no-results container",
		Match: func(p *Page) bool {
			return p.Doc.Find("div#documents.noresults").Length() > 0
		},
	},
	{
		Name: "placeholder row",
		Match: func(p *Page) bool {
			return p.Doc.Find("tr.yourEntryWouldBeHere").Length() > 0
		},
	},
}

// FoundRules are the structural positive signals, evaluated after the
// redirect shortcut. Any match means found.
var FoundRules = []Rule{
	{
		Name: "result rows",
		Match: func(p *Page) bool {
			return p.Doc.Find("tr.browseEntry").Length() > 0
		},
	},
	{
		Name: "record-count badge",
		Match: func(p *Page) bool {
			return p.Doc.Find("span.results-bar-item.results-bar-item-record-count").Length() > 0
		},
	},
	{
		Name: "total-results meta",
		Match: func(p *Page) bool {
			content, ok := p.Doc.Find(`meta[name="totalResults"]`).First().Attr("content")
			if !ok {
				return false
			}
			n, err := strconv.Atoi(strings.TrimSpace(content))
			return err == nil && n > 0
		},
	},
	{
		Name: "document class",
		Match: func(p *Page) bool {
			return p.Doc.Find(`div[class*="document"]`).Length() > 0
		},
	},
	{
		Name: "detail-page container",
		Match: func(p *Page) bool {
			return p.Doc.Find("div.bibDisplayContentMain").Length() > 0 ||
				p.Doc.Find("div.bibDisplayItemsMain").Length() > 0 ||
				p.Doc.Find("div.bibliographicData").Length() > 0
		},
	},
	{
		Name: "results-count text",
		Match: func(p *Page) bool {
			return resultsCount.MatchString(p.Text)
		},
	},
	{
		Name: "numresults element",
		Match: func(p *Page) bool {
			return p.Doc.Find("#numresults").Length() > 0
		},
	},
	{
		Name: "search-tool message",
		Match: func(p *Page) bool {
			return p.Doc.Find("div.browseSearchtoolMessage").Length() > 0
		},
	},
	{
		Name: "search-stats record total",
		Match: func(p *Page) bool {
			total, ok := p.Doc.Find("div.search-stats").First().Attr("data-record-total")
			if !ok {
				return false
			}
			n, err := strconv.Atoi(strings.TrimSpace(total))
			return err == nil && n > 0
		},
	},
	{
		Name: "result-count span",
		Match: func(p *Page) bool {
			return anyText(p.Doc.Find("span"), resultCountSpan.MatchString)
		},
	},
}

// fallbackPatterns are the loose textual regexes run against the raw
// lowercased body only when no structural signal matched.
var fallbackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:your\s+search\s+returned\s+|(\d+)\s+)(?:results?|result)\b`),
	regexp.MustCompile(`\bresults:\s*\d+`),
	regexp.MustCompile(`\b(\d+)\s+(?:results?|result)\s+found\b`),
	regexp.MustCompile(`\b(\d+)-(\d+)\s+of\s+(\d+)\b`),
}

// Classify decides found/not-found for a fetched page. Negative phrasing
// beats every structural heuristic, a redirect is treated as strong
// positive evidence, and the raw-body regexes are the last resort.
func Classify(resp *fetch.Response) (Result, error) {
	p, err := NewPage(resp)
	if err != nil {
		return ResultNotFound, err
	}

	for _, r := range NotFoundRules {
		if r.Match(p) {
			return ResultNotFound, nil
		}
	}

	if resp.Redirected {
		return ResultFound, nil
	}

	for _, r := range FoundRules {
		if r.Match(p) {
			return ResultFound, nil
		}
	}

	body := strings.ToLower(resp.Body)
	for _, re := range fallbackPatterns {
		if re.MatchString(body) {
			return ResultFound, nil
		}
	}

	return ResultNotFound, nil
}

// visibleText collects every text node trimmed and joined with single
// spaces, lowercased.
func visibleText(doc *goquery.Document) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// anyText reports whether any element in the selection has text matching
// the predicate.
func anyText(sel *goquery.Selection, match func(string) bool) bool {
	found := false
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if match(strings.TrimSpace(s.Text())) {
			found = true
			return false
		}
		return true
	})
	return found
}
