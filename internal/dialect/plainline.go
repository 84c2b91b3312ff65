package dialect

import (
	"log/slog"
	"strings"
)

// ParsePlainLines extracts fields from line-oriented plain MARC text:
// one field per non-blank line, tag in the first three characters,
// indicators at fixed offsets 4 and 5, subfield data from offset 7
// onward split on '$'. The leader line and control-range tags (000-009)
// are discarded; '#' or space at an indicator position normalizes to the
// blank placeholder.
func ParsePlainLines(text string, log *slog.Logger) []Field {
	var fields []Field

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "leader") {
			continue
		}
		if len(line) < 3 {
			continue
		}

		tag := strings.TrimSpace(line[:3])
		if isControlRange(tag) {
			log.Debug("discarding control-range field", "tag", tag, "line", line)
			continue
		}

		ind1 := indicatorAt(line, 4)
		ind2 := indicatorAt(line, 5)

		var subs []SubField
		if len(line) > 7 {
			for _, part := range strings.Split(strings.TrimSpace(line[7:]), "$") {
				if part == "" {
					continue
				}
				subs = append(subs, SubField{
					Code:  part[:1],
					Value: strings.TrimSpace(part[1:]),
				})
			}
		}

		if len(subs) == 0 {
			log.Warn("skipping field with no subfields", "tag", tag)
			continue
		}

		fields = append(fields, Field{
			Tag:        tag,
			Indicator1: ind1,
			Indicator2: ind2,
			SubFields:  subs,
		})
	}

	return fields
}

// isControlRange reports whether tag is a numeric tag in 000-009.
func isControlRange(tag string) bool {
	if len(tag) != 3 {
		return false
	}
	for _, c := range tag {
		if c < '0' || c > '9' {
			return false
		}
	}
	return tag <= "009"
}

// indicatorAt reads the indicator character at the given offset. A
// missing position, a space, or a '#' yields the blank placeholder.
func indicatorAt(line string, pos int) string {
	if len(line) <= pos {
		return Blank
	}
	switch line[pos] {
	case ' ', '#':
		return Blank
	}
	return string(line[pos])
}
