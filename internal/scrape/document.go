// Package scrape resolves a user-supplied catalog URL to parsed MARC
// field drafts: routing known API sources, classifying fetched markup,
// and dispatching to the matching dialect parser.
package scrape

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/marcgrab/marcgrab/internal/dialect"
	"github.com/marcgrab/marcgrab/internal/fileutil"
	"github.com/marcgrab/marcgrab/internal/marc"
)

// Document is the working record built by a scrape: an ordered draft
// sequence plus the source it came from.
type Document struct {
	SourceURL string
	Format    dialect.Format
	Fields    []dialect.Field
}

// Record commits the drafts to a MARC record. A field whose shape the
// record model rejects is logged and skipped; any other failure aborts
// the commit.
func (d *Document) Record(log *slog.Logger) (*marc.Record, error) {
	rec := marc.NewRecord()
	for _, f := range d.Fields {
		var err error
		if f.Control {
			err = rec.AddControlField(f.Tag, f.ControlValue())
		} else {
			subs := make([]marc.SubField, 0, len(f.SubFields))
			for _, sf := range f.SubFields {
				subs = append(subs, marc.SubField{Code: sf.Code, Value: sf.Value})
			}
			err = rec.AddDataField(f.Tag, f.Indicator1, f.Indicator2, subs)
		}
		if err != nil {
			var fieldErr *marc.FieldError
			if errors.As(err, &fieldErr) {
				log.Warn("skipping invalid field", "tag", f.Tag, "error", err)
				continue
			}
			return nil, fmt.Errorf("adding field %s: %w", f.Tag, err)
		}
	}
	log.Info("finished parsing", "fields", rec.Len())
	return rec, nil
}

// DefaultFilename derives a safe output filename from the main title
// (first 245 $a) and the primary author (100 $a), falling back to
// "Untitled" and "UnknownAuthor" when absent.
func (d *Document) DefaultFilename() string {
	title := ""
	author := ""
	for _, f := range d.Fields {
		switch f.Tag {
		case "245":
			if title == "" {
				title = f.SubFieldValue("a")
			}
		case "100":
			if author == "" {
				author = f.SubFieldValue("a")
			}
		}
	}
	if author == "" {
		author = "UnknownAuthor"
	}
	if title == "" {
		title = "Untitled"
	}
	return fileutil.CleanFilename(author) + "_" + fileutil.CleanFilename(title)
}

// ValidationError reports a record that fails the required-field checks
// at create time.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ValidateRecord checks the committed record for the fields a usable
// bibliographic record requires: exactly one 001 control number and a
// 245 title with a main-title $a subfield.
func ValidateRecord(rec *marc.Record) error {
	control := rec.FieldsByTag("001")
	if len(control) == 0 {
		return &ValidationError{Reason: "required field 001 (control number) is missing"}
	}
	if len(control) > 1 {
		return &ValidationError{Reason: "multiple 001 fields found"}
	}

	titles := rec.FieldsByTag("245")
	if len(titles) == 0 {
		return &ValidationError{Reason: "required field 245 (title) is missing"}
	}
	if titles[0].SubField("a") == "" {
		return &ValidationError{Reason: "field 245 is missing subfield 'a' for the main title"}
	}
	return nil
}
