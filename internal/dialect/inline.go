package dialect

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ParseInline extracts fields from the div-per-field layout: one
// "div.field" container per field, a "span.tag" for the tag, optional
// "div.ind1"/"div.ind2" indicator containers, and "span.sub_code"
// markers each immediately followed by the subfield's text.
func ParseInline(doc *goquery.Document, log *slog.Logger) []Field {
	var fields []Field

	doc.Find("div.field").Each(func(_ int, sel *goquery.Selection) {
		tagSpan := sel.Find("span.tag").First()
		if tagSpan.Length() == 0 {
			return
		}
		tag := strings.TrimSpace(tagSpan.Text())
		if tag == "" {
			return
		}

		ind1 := indicatorText(sel.Find("div.ind1"))
		ind2 := indicatorText(sel.Find("div.ind2"))

		var subs []SubField
		sel.Find("span.sub_code").Each(func(_ int, code *goquery.Selection) {
			c := strings.ReplaceAll(strings.TrimSpace(code.Text()), "|", "")
			subs = append(subs, SubField{Code: c, Value: nextSiblingText(code)})
		})

		if len(subs) == 0 {
			log.Warn("skipping field with no subfields", "tag", tag)
			return
		}

		fields = append(fields, Field{
			Tag:        tag,
			Control:    IsControlTag(tag),
			Indicator1: ind1,
			Indicator2: ind2,
			SubFields:  subs,
		})
	})

	return fields
}

// indicatorText returns the trimmed text of an indicator container, or a
// single space when the container is absent or empty.
func indicatorText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return " "
	}
	text := strings.TrimSpace(sel.First().Text())
	if text == "" {
		return " "
	}
	return text
}

// nextSiblingText returns the trimmed text node immediately following the
// selection's first node, or the empty string when there is none.
func nextSiblingText(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	n := sel.Nodes[0].NextSibling
	if n == nil || n.Type != html.TextNode {
		return ""
	}
	return strings.TrimSpace(n.Data)
}
