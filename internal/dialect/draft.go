// Package dialect detects and parses the markup dialects that known
// library catalogs use to present MARC data, producing field drafts that
// are later committed to a marc.Record.
package dialect

import "strings"

// Blank is the placeholder for a blank indicator position as it appears
// in parsed drafts and display output. It is stored as a space once a
// draft is committed to a record.
const Blank = `\`

// SubField is one coded subfield extracted from source markup.
type SubField struct {
	Code  string
	Value string
}

// Field is the intermediate representation every parser produces: a tag,
// an indicator pair (absent for control fields), and an ordered subfield
// sequence.
type Field struct {
	Tag        string
	Control    bool
	Indicator1 string
	Indicator2 string
	SubFields  []SubField
}

// SubFieldValue returns the value of the first subfield with the given
// code, or the empty string when absent.
func (f Field) SubFieldValue(code string) string {
	for _, sf := range f.SubFields {
		if sf.Code == code {
			return sf.Value
		}
	}
	return ""
}

// ControlValue joins the extracted subfield values into the unstructured
// data a control field carries.
func (f Field) ControlValue() string {
	parts := make([]string, 0, len(f.SubFields))
	for _, sf := range f.SubFields {
		parts = append(parts, sf.Value)
	}
	return strings.Join(parts, " ")
}

var controlTags = map[string]bool{
	"001": true,
	"003": true,
	"005": true,
	"008": true,
}

// IsControlTag reports whether tag names a control field in the dialects
// this package parses.
func IsControlTag(tag string) bool {
	return controlTags[tag]
}
