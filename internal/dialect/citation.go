package dialect

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseCitation extracts fields from the citation table layout: one
// table row per field, tag in the row header cell, indicators in the
// next two cells, and one emphasized code element per subfield in the
// remaining cell. Rows whose header is not numeric are structural rows
// (LEADER and friends) and are skipped.
func ParseCitation(doc *goquery.Document, log *slog.Logger) ([]Field, error) {
	table := doc.Find("table.citation.table.table-striped").First()
	if table.Length() == 0 {
		return nil, ErrNoTable
	}

	var fields []Field
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		header := row.Find("th").First()
		if header.Length() == 0 {
			return
		}
		tag := strings.TrimSpace(header.Text())
		if !isNumeric(tag) {
			return
		}

		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		ind1 := cellIndicator(cells.Eq(0))
		ind2 := cellIndicator(cells.Eq(1))

		var subs []SubField
		cells.Eq(2).Find("strong").Each(func(_ int, marker *goquery.Selection) {
			code := strings.ReplaceAll(strings.TrimSpace(marker.Text()), "|", "")
			value := nextSiblingText(marker)
			if code == "" || value == "" {
				return
			}
			subs = append(subs, SubField{Code: code, Value: value})
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

	return fields, nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
