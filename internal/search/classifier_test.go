package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcgrab/marcgrab/internal/fetch"
)

func pageResponse(body string) *fetch.Response {
	return &fetch.Response{Body: body, StatusCode: 200, FinalURL: "https://catalog.example.org/search"}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Result
	}{
		{
			name: "negative phrase",
			body: `<html><body><p>Your search found no results.</p></body></html>`,
			want: ResultNotFound,
		},
		{
			name: "negative phrase case-insensitive",
			body: `<html><body><p>NO RESULTS FOUND</p></body></html>`,
			want: ResultNotFound,
		},
		{
			name: "no-results heading",
			body: `<html><body><h1>No Results!</h1></body></html>`,
			want: ResultNotFound,
		},
		{
			name: "no-results container",
			body: `<html><body><div id="documents" class="noresults"></div></body></html>`,
			want: ResultNotFound,
		},
		{
			name: "placeholder row",
			body: `<html><body><table><tr class="yourEntryWouldBeHere"><td>title</td></tr></table></body></html>`,
			want: ResultNotFound,
		},
		{
			name: "browse entry rows",
			body: `<html><body><table><tr class="browseEntry"><td>Moby Dick</td></tr></table></body></html>`,
			want: ResultFound,
		},
		{
			name: "record count badge",
			body: `<html><body><span class="results-bar-item results-bar-item-record-count">3</span></body></html>`,
			want: ResultFound,
		},
		{
			name: "total results meta positive",
			body: `<html><head><meta name="totalResults" content="12"></head><body></body></html>`,
			want: ResultFound,
		},
		{
			name: "total results meta zero",
			body: `<html><head><meta name="totalResults" content="0"></head><body></body></html>`,
			want: ResultNotFound,
		},
		{
			name: "document container",
			body: `<html><body><div class="document result"></div></body></html>`,
			want: ResultFound,
		},
		{
			name: "detail page container",
			body: `<html><body><div class="bibDisplayContentMain">record detail</div></body></html>`,
			want: ResultFound,
		},
		{
			name: "results count text",
			body: `<html><body><p>Results: 7</p></body></html>`,
			want: ResultFound,
		},
		{
			name: "search stats record total",
			body: `<html><body><div class="search-stats" data-record-total="4"></div></body></html>`,
			want: ResultFound,
		},
		{
			name: "search stats zero total",
			body: `<html><body><div class="search-stats" data-record-total="0"></div></body></html>`,
			want: ResultNotFound,
		},
		{
			name: "result count span",
			body: `<html><body><span>17 results found</span></body></html>`,
			want: ResultFound,
		},
		{
			name: "fallback range pattern",
			body: `<html><body><p>Showing 1-10 of 42</p></body></html>`,
			want: ResultFound,
		},
		{
			name: "fallback your search returned",
			body: `<html><body><p>Your search returned results</p></body></html>`,
			want: ResultFound,
		},
		{
			name: "nothing matches",
			body: `<html><body><p>Welcome to the catalog.</p></body></html>`,
			want: ResultNotFound,
		},
		{
			name: "negative phrase beats positive count",
			body: `<html><head><meta name="totalResults" content="12"></head><body><p>No matches found</p></body></html>`,
			want: ResultNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(pageResponse(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyRedirect(t *testing.T) {
	resp := pageResponse(`<html><body><p>Welcome to the record page.</p></body></html>`)
	resp.Redirected = true

	got, err := Classify(resp)
	require.NoError(t, err)
	assert.Equal(t, ResultFound, got, "a redirect is strong positive evidence")
}

func TestClassifyRedirectDoesNotBeatNegativePhrase(t *testing.T) {
	resp := pageResponse(`<html><body><p>No results found</p></body></html>`)
	resp.Redirected = true

	got, err := Classify(resp)
	require.NoError(t, err)
	assert.Equal(t, ResultNotFound, got)
}
