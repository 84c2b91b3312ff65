package dialect

import "github.com/PuerkitoBio/goquery"

// Format identifies which markup dialect a fetched page uses.
type Format int

const (
	// FormatUnknown means no known structural marker was present.
	FormatUnknown Format = iota
	// FormatInline is the div-per-field layout with inline tag,
	// indicator, and subfield spans.
	FormatInline
	// FormatMarcTable is the tabbed catalog view that only links to the
	// real data; parsing it requires following its "view plain" anchor.
	FormatMarcTable
	// FormatPre is line-oriented plain MARC text inside a preformatted
	// block.
	FormatPre
	// FormatCitation is the row-per-field citation table layout.
	FormatCitation
)

func (f Format) String() string {
	switch f {
	case FormatInline:
		return "inline"
	case FormatMarcTable:
		return "marc table"
	case FormatPre:
		return "preformatted"
	case FormatCitation:
		return "citation table"
	default:
		return "unknown"
	}
}

// Detect inspects a parsed page and returns the first dialect whose
// structural marker is present, in fixed priority order.
func Detect(doc *goquery.Document) Format {
	switch {
	case doc.Find("div.field").Length() > 0:
		return FormatInline
	case doc.Find("table#marc").Length() > 0:
		return FormatMarcTable
	case doc.Find(`pre[style="direction: ltr"]`).Length() > 0:
		return FormatPre
	case doc.Find("table.citation.table.table-striped").Length() > 0:
		return FormatCitation
	}
	return FormatUnknown
}
