// Package search runs catalog searches across the configured endpoint
// list, classifying each response as found, not found, or error.
package search

import (
	"fmt"
	"strings"

	"github.com/marcgrab/marcgrab/internal/library"
)

// Outcome is the per-endpoint state of a search task.
type Outcome int

const (
	// OutcomePending means the endpoint has not been processed yet.
	OutcomePending Outcome = iota
	// OutcomeSearching means the endpoint's request is in flight.
	OutcomeSearching
	// OutcomeFound means the catalog reported at least one matching record.
	OutcomeFound
	// OutcomeNotFound means the catalog reported no matching record.
	OutcomeNotFound
	// OutcomeError means the request failed or the URL could not be built.
	OutcomeError
	// OutcomeCanceled means the search was stopped while this endpoint
	// was being processed.
	OutcomeCanceled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSearching:
		return "Searching..."
	case OutcomeFound:
		return "Found"
	case OutcomeNotFound:
		return "Not Found"
	case OutcomeError:
		return "Error"
	case OutcomeCanceled:
		return "Canceled"
	default:
		return "Pending"
	}
}

// Terminal reports whether the outcome is a final state for an endpoint.
func (o Outcome) Terminal() bool {
	switch o {
	case OutcomeFound, OutcomeNotFound, OutcomeError, OutcomeCanceled:
		return true
	}
	return false
}

// StatusUpdate is one ordered progress notification from a running task.
// URL carries the final resolved URL for found results and the requested
// URL otherwise; Detail carries the failure description for errors.
type StatusUpdate struct {
	Index   int
	Outcome Outcome
	URL     string
	Detail  string
}

// Query is either an ISBN or a title/author pair.
type Query struct {
	ISBN   string
	Title  string
	Author string
}

// ISBNQuery builds an ISBN query.
func ISBNQuery(isbn string) Query {
	return Query{ISBN: strings.TrimSpace(isbn)}
}

// TitleAuthorQuery builds a title/author query.
func TitleAuthorQuery(title, author string) Query {
	return Query{Title: strings.TrimSpace(title), Author: strings.TrimSpace(author)}
}

// ByISBN reports whether this is an ISBN query.
func (q Query) ByISBN() bool {
	return q.ISBN != ""
}

// BuildURL constructs the endpoint's search URL for this query. A
// missing required component is an error for that endpoint only.
func (q Query) BuildURL(e library.Endpoint) (string, error) {
	if q.ByISBN() {
		return e.ISBNSearchURL(q.ISBN), nil
	}
	if q.Title == "" || q.Author == "" {
		return "", fmt.Errorf("title or author is empty")
	}
	return e.TitleAuthorSearchURL(q.Title, q.Author), nil
}
