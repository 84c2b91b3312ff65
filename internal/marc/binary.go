package marc

import (
	"bytes"
	"fmt"
)

// ISO 2709 structural bytes.
const (
	fieldTerminator    = 0x1e
	recordTerminator   = 0x1d
	subfieldDelimiter  = 0x1f
	leaderLength       = 24
	directoryEntrySize = 12
)

// Bytes serializes the record to its ISO 2709 binary exchange form.
// The leader is generated for a monographic language-material record;
// record length and base address are computed from the field data.
func (r *Record) Bytes() ([]byte, error) {
	var dir bytes.Buffer
	var data bytes.Buffer

	for _, f := range r.fields {
		start := data.Len()
		if f.IsControl() {
			data.WriteString(f.Value)
		} else {
			data.WriteString(f.Indicator1)
			data.WriteString(f.Indicator2)
			for _, sf := range f.SubFields {
				data.WriteByte(subfieldDelimiter)
				data.WriteString(sf.Code)
				data.WriteString(sf.Value)
			}
		}
		data.WriteByte(fieldTerminator)
		length := data.Len() - start
		if length > 9999 {
			return nil, &FieldError{Tag: f.Tag, Reason: "field data exceeds 9999 bytes"}
		}
		fmt.Fprintf(&dir, "%s%04d%05d", f.Tag, length, start)
	}

	base := leaderLength + dir.Len() + 1
	total := base + data.Len() + 1
	if total > 99999 {
		return nil, fmt.Errorf("record length %d exceeds ISO 2709 limit", total)
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "%05dnam a22%05d a 4500", total, base)
	out.Write(dir.Bytes())
	out.WriteByte(fieldTerminator)
	out.Write(data.Bytes())
	out.WriteByte(recordTerminator)
	return out.Bytes(), nil
}
