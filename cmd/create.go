package cmd

import (
	"fmt"

	"github.com/marcgrab/marcgrab/internal/catalog"
	"github.com/marcgrab/marcgrab/internal/fileutil"
)

// Run builds a MARC record from a YAML book description and writes it
// as a .mrc file.
func (c *CreateCmd) Run() error {
	book, err := catalog.Load(c.Input)
	if err != nil {
		return fmt.Errorf("loading book description: %w", err)
	}

	record, err := book.Record()
	if err != nil {
		return fmt.Errorf("building record: %w", err)
	}

	fmt.Println(record.String())

	filename := c.Output
	if filename == "" {
		filename = book.Filename()
	}

	data, err := record.Bytes()
	if err != nil {
		return fmt.Errorf("serializing record: %w", err)
	}
	path, err := fileutil.WriteMARCFile(filename, data)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", path)
	return nil
}
