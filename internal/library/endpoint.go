// Package library manages the configured list of external catalog
// search endpoints and its JSON persistence.
package library

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoint is one configured external catalog, defined by a display
// name and two URL templates with fixed placeholders.
type Endpoint struct {
	Name           string `json:"name"`
	ISBNURL        string `json:"isbn_url"`
	TitleAuthorURL string `json:"title_author_url"`
}

// TemplateError reports a URL template that violates the placeholder
// rules for its search type.
type TemplateError struct {
	Field  string
	Reason string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks both templates against the placeholder-presence rules:
// the ISBN template must contain {isbn} and neither {title} nor
// {author}; the title/author template must contain both {title} and
// {author} and not {isbn}.
func (e Endpoint) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return &TemplateError{Field: "name", Reason: "library name cannot be empty"}
	}
	if strings.Contains(e.ISBNURL, "{title}") || strings.Contains(e.ISBNURL, "{author}") {
		return &TemplateError{Field: "isbn_url", Reason: "ISBN URL cannot contain {title} or {author}"}
	}
	if !strings.Contains(e.ISBNURL, "{isbn}") {
		return &TemplateError{Field: "isbn_url", Reason: "ISBN URL must include {isbn} as a placeholder"}
	}
	if strings.Contains(e.TitleAuthorURL, "{isbn}") {
		return &TemplateError{Field: "title_author_url", Reason: "Title & Author URL cannot contain {isbn}"}
	}
	if !strings.Contains(e.TitleAuthorURL, "{title}") || !strings.Contains(e.TitleAuthorURL, "{author}") {
		return &TemplateError{Field: "title_author_url", Reason: "Title & Author URL must include both {title} and {author}"}
	}
	return nil
}

// ISBNSearchURL builds the endpoint's ISBN search URL, percent-encoding
// the query value.
func (e Endpoint) ISBNSearchURL(isbn string) string {
	return strings.ReplaceAll(e.ISBNURL, "{isbn}", url.PathEscape(isbn))
}

// TitleAuthorSearchURL builds the endpoint's title/author search URL,
// percent-encoding both query values.
func (e Endpoint) TitleAuthorSearchURL(title, author string) string {
	out := strings.ReplaceAll(e.TitleAuthorURL, "{title}", url.PathEscape(title))
	return strings.ReplaceAll(out, "{author}", url.PathEscape(author))
}
