package dialect

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoTable is returned when a table-based dialect page carries no
// table to parse.
var ErrNoTable = errors.New("no MARC table found in page")

// suppressedSubfields maps tags to subfield codes that are dropped when
// parsing the plain view: local control numbers not meant for reuse.
var suppressedSubfields = map[string]string{
	"100": "9",
	"600": "9",
	"650": "9",
	"700": "9",
	"830": "9",
}

// ParsePlainTable extracts fields from the "view plain" page the marc
// table dialect redirects to: one table row per field, the row header is
// the tag, the first two cells are indicators, and the third cell holds
// one emphasized "_x" code marker per subfield followed by its value.
func ParsePlainTable(doc *goquery.Document, log *slog.Logger) ([]Field, error) {
	table := doc.Find("table").First()
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
		if tag == "" {
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
			code := strings.TrimSpace(marker.Text())
			if !strings.HasPrefix(code, "_") || len(code) < 2 {
				return
			}
			sfCode := string(code[1])
			value := nextSiblingText(marker)

			if suppressedSubfields[tag] == sfCode {
				log.Info("discarding suppressed subfield", "tag", tag, "code", sfCode, "value", value)
				return
			}
			subs = append(subs, SubField{Code: sfCode, Value: value})
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

// cellIndicator returns the trimmed text of an indicator cell, or a
// single space when the cell is blank.
func cellIndicator(cell *goquery.Selection) string {
	text := strings.TrimSpace(cell.Text())
	if text == "" {
		return " "
	}
	return text
}
