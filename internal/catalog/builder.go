// Package catalog maps manually entered bibliographic details to MARC
// fields. The mapping is deterministic: every provided value lands in a
// fixed tag with fixed indicators.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/marcgrab/marcgrab/internal/fileutil"
	"github.com/marcgrab/marcgrab/internal/marc"
)

// BookInput is a manually entered bibliographic description, usually
// loaded from a YAML file. Empty values are omitted from the record.
type BookInput struct {
	Title               string   `yaml:"title"`
	Subtitle            string   `yaml:"subtitle"`
	Author              string   `yaml:"author"`
	SecondAuthor        string   `yaml:"second_author"`
	ThirdAuthor         string   `yaml:"third_author"`
	Editor              string   `yaml:"editor"`
	SecondEditor        string   `yaml:"second_editor"`
	LCCN                string   `yaml:"lccn"`
	ISBN                string   `yaml:"isbn"`
	SecondISBN          string   `yaml:"second_isbn"`
	LOCCallNumber       string   `yaml:"loc_call_number"`
	PublisherLocation   string   `yaml:"publisher_location"`
	Publisher           string   `yaml:"publisher"`
	CopyrightYear       string   `yaml:"copyright_year"`
	Edition             string   `yaml:"edition"`
	Pages               string   `yaml:"pages"`
	BookHeight          string   `yaml:"book_height"`
	References          bool     `yaml:"references"`
	ReferencesPageRange string   `yaml:"references_page_range"`
	Index               bool     `yaml:"index"`
	Summary             string   `yaml:"summary"`
	Subjects            []string `yaml:"subjects"`
}

// Load reads a BookInput from a YAML file.
func Load(path string) (*BookInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read book description: %w", err)
	}
	var input BookInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse book description: %w", err)
	}
	return &input, nil
}

// Filename derives the default output filename from the author and
// title.
func (b *BookInput) Filename() string {
	author := b.Author
	if author == "" {
		author = "UnknownAuthor"
	}
	title := b.Title
	if title == "" {
		title = "Untitled"
	}
	return fileutil.CleanFilename(author) + "_" + fileutil.CleanFilename(title)
}

// Record builds the MARC record for the entered details.
func (b *BookInput) Record() (*marc.Record, error) {
	rec := marc.NewRecord()

	if b.Title != "" {
		subs := []marc.SubField{{Code: "a", Value: b.Title}}
		if b.Subtitle != "" {
			subs = append(subs, marc.SubField{Code: "b", Value: b.Subtitle})
		}
		if err := rec.AddDataField("245", "1", "0", subs); err != nil {
			return nil, err
		}
	}

	if b.Author != "" {
		if err := rec.AddDataField("100", "1", " ", nameSubfield(b.Author)); err != nil {
			return nil, err
		}
	}

	// Added entries: additional authors and editors all map to 700.
	for _, name := range []string{b.SecondAuthor, b.ThirdAuthor, b.Editor, b.SecondEditor} {
		if name == "" {
			continue
		}
		if err := rec.AddDataField("700", "1", " ", nameSubfield(name)); err != nil {
			return nil, err
		}
	}

	if b.LCCN != "" {
		if err := rec.AddDataField("010", " ", " ", []marc.SubField{{Code: "a", Value: b.LCCN}}); err != nil {
			return nil, err
		}
	}

	for _, isbn := range []string{b.ISBN, b.SecondISBN} {
		if isbn == "" {
			continue
		}
		if err := rec.AddDataField("020", " ", " ", []marc.SubField{{Code: "a", Value: isbn}}); err != nil {
			return nil, err
		}
	}

	if b.LOCCallNumber != "" {
		if err := rec.AddDataField("050", "0", "4", []marc.SubField{{Code: "a", Value: b.LOCCallNumber}}); err != nil {
			return nil, err
		}
	}

	if err := b.addPublication(rec); err != nil {
		return nil, err
	}

	if b.Edition != "" {
		if err := rec.AddDataField("250", " ", " ", []marc.SubField{{Code: "a", Value: b.Edition}}); err != nil {
			return nil, err
		}
	}

	if err := b.addPhysicalDescription(rec); err != nil {
		return nil, err
	}

	if b.References {
		text := "Includes bibliographical references"
		if b.ReferencesPageRange != "" {
			text += fmt.Sprintf(" (p. %s).", b.ReferencesPageRange)
		}
		if err := rec.AddDataField("504", " ", " ", []marc.SubField{{Code: "a", Value: text}}); err != nil {
			return nil, err
		}
	}

	if b.Index {
		if err := rec.AddDataField("500", " ", " ", []marc.SubField{{Code: "a", Value: "Includes index."}}); err != nil {
			return nil, err
		}
	}

	if b.Summary != "" {
		if err := rec.AddDataField("520", " ", " ", []marc.SubField{{Code: "a", Value: b.Summary}}); err != nil {
			return nil, err
		}
	}

	for _, subject := range b.Subjects {
		if subject == "" {
			continue
		}
		if err := rec.AddDataField("650", " ", "0", []marc.SubField{{Code: "a", Value: subject}}); err != nil {
			return nil, err
		}
	}

	return rec, nil
}

// addPublication maps publisher details to the 264 publication and
// copyright fields.
func (b *BookInput) addPublication(rec *marc.Record) error {
	var subs []marc.SubField
	if b.PublisherLocation != "" {
		subs = append(subs, marc.SubField{Code: "a", Value: b.PublisherLocation})
	}
	if b.Publisher != "" {
		subs = append(subs, marc.SubField{Code: "b", Value: b.Publisher})
	}
	if b.CopyrightYear != "" {
		subs = append(subs, marc.SubField{Code: "c", Value: b.CopyrightYear})
	}
	if len(subs) > 0 {
		if err := rec.AddDataField("264", " ", "1", subs); err != nil {
			return err
		}
	}
	if b.CopyrightYear != "" {
		copyrightSub := []marc.SubField{{Code: "c", Value: fmt.Sprintf("c%s.", b.CopyrightYear)}}
		if err := rec.AddDataField("264", " ", "4", copyrightSub); err != nil {
			return err
		}
	}
	return nil
}

// addPhysicalDescription maps page count and book height to the 300
// field.
func (b *BookInput) addPhysicalDescription(rec *marc.Record) error {
	var subs []marc.SubField
	if b.Pages != "" {
		subs = append(subs, marc.SubField{Code: "a", Value: fmt.Sprintf("%s p.", b.Pages)})
	}
	if b.BookHeight != "" {
		subs = append(subs, marc.SubField{Code: "c", Value: fmt.Sprintf("%s cm.", b.BookHeight)})
	}
	if len(subs) == 0 {
		return nil
	}
	return rec.AddDataField("300", " ", " ", subs)
}

func nameSubfield(name string) []marc.SubField {
	return []marc.SubField{{Code: "a", Value: name}}
}
