// Package marc implements an in-memory MARC bibliographic record with
// ISO 2709 binary serialization.
package marc

import (
	"fmt"
	"strings"
)

// BlankIndicator is the storage form of a blank indicator position.
// The display form is a backslash.
const BlankIndicator = " "

// SubField contains a single-character Code and a Value.
type SubField struct {
	Code  string
	Value string
}

// Field is one tagged field of a record. Control fields (tags below 010)
// carry Value and no indicators or subfields; data fields carry two
// indicators and at least one subfield.
type Field struct {
	Tag        string
	Indicator1 string
	Indicator2 string
	SubFields  []SubField
	Value      string
}

// IsControl reports whether the field is a control field.
func (f Field) IsControl() bool {
	return f.Tag < "010"
}

// SubField returns the value of the first subfield with the given code,
// or the empty string when absent.
func (f Field) SubField(code string) string {
	for _, sf := range f.SubFields {
		if sf.Code == code {
			return sf.Value
		}
	}
	return ""
}

// String renders the field in the usual mnemonic form, with blank
// indicators shown as backslashes.
func (f Field) String() string {
	if f.IsControl() {
		return fmt.Sprintf("=%s  %s", f.Tag, f.Value)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "=%s  %s%s", f.Tag, displayIndicator(f.Indicator1), displayIndicator(f.Indicator2))
	for _, sf := range f.SubFields {
		fmt.Fprintf(&b, " $%s %s", sf.Code, sf.Value)
	}
	return b.String()
}

func displayIndicator(ind string) string {
	if ind == BlankIndicator || ind == "" {
		return `\`
	}
	return ind
}

// FieldError reports a field whose tag, indicator, or subfield shape is
// invalid. Callers recover from these per field; any other error from
// record construction is unexpected.
type FieldError struct {
	Tag    string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Tag, e.Reason)
}

// Record is an ordered sequence of fields. Insertion order is preserved
// in all queries and in the serialized output.
type Record struct {
	fields []Field
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{}
}

// AddControlField appends a control field. Tags 010 and above are
// rejected, as are malformed tags.
func (r *Record) AddControlField(tag, value string) error {
	if err := validateTag(tag); err != nil {
		return err
	}
	if tag >= "010" {
		return &FieldError{Tag: tag, Reason: "not a control field tag"}
	}
	r.fields = append(r.fields, Field{Tag: tag, Value: value})
	return nil
}

// AddDataField appends a data field. Indicators may be given as a space,
// an empty string, or a backslash for blank; they are stored as spaces.
// A data field must carry at least one subfield, and every subfield code
// must be exactly one character.
func (r *Record) AddDataField(tag, ind1, ind2 string, subfields []SubField) error {
	if err := validateTag(tag); err != nil {
		return err
	}
	if tag < "010" {
		return &FieldError{Tag: tag, Reason: "control field tag cannot carry indicators or subfields"}
	}
	i1, err := normalizeIndicator(tag, ind1)
	if err != nil {
		return err
	}
	i2, err := normalizeIndicator(tag, ind2)
	if err != nil {
		return err
	}
	if len(subfields) == 0 {
		return &FieldError{Tag: tag, Reason: "data field has no subfields"}
	}
	for _, sf := range subfields {
		if len(sf.Code) != 1 {
			return &FieldError{Tag: tag, Reason: fmt.Sprintf("invalid subfield code %q", sf.Code)}
		}
	}
	r.fields = append(r.fields, Field{
		Tag:        tag,
		Indicator1: i1,
		Indicator2: i2,
		SubFields:  subfields,
	})
	return nil
}

// Fields returns every field in insertion order.
func (r *Record) Fields() []Field {
	return r.fields
}

// FieldsByTag returns every field matching any of the given tags, in
// insertion order.
func (r *Record) FieldsByTag(tags ...string) []Field {
	var out []Field
	for _, f := range r.fields {
		for _, t := range tags {
			if f.Tag == t {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// Len returns the number of fields in the record.
func (r *Record) Len() int {
	return len(r.fields)
}

// String renders the whole record one field per line.
func (r *Record) String() string {
	lines := make([]string, 0, len(r.fields))
	for _, f := range r.fields {
		lines = append(lines, f.String())
	}
	return strings.Join(lines, "\n")
}

func validateTag(tag string) error {
	if len(tag) != 3 {
		return &FieldError{Tag: tag, Reason: "tag must be exactly 3 characters"}
	}
	for _, c := range tag {
		if c < '0' || c > '9' {
			return &FieldError{Tag: tag, Reason: "tag must be numeric"}
		}
	}
	return nil
}

func normalizeIndicator(tag, ind string) (string, error) {
	switch ind {
	case "", " ", `\`:
		return BlankIndicator, nil
	}
	if len(ind) != 1 {
		return "", &FieldError{Tag: tag, Reason: fmt.Sprintf("invalid indicator %q", ind)}
	}
	return ind, nil
}
