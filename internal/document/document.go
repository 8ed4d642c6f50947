// Package document loads text documents as line sequences.
package document

import (
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/eq99/carbon"
	"github.com/eq99/carbon/internal/objstore"
)

// Document is one snapshot of a text file, split into lines without their terminators.
type Document struct {
	Lines []string
}

// Load reads path from fs.
func Load(fs afero.Fs, path string) (*Document, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return Parse(b), nil
}

// Read reads a document from r.
func Read(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(b), nil
}

// Parse splits b into lines.
func Parse(b []byte) *Document {
	return &Document{Lines: carbon.SplitLines(string(b))}
}

// Bytes returns the document text with every line newline-terminated.
func (d *Document) Bytes() []byte {
	return []byte(carbon.JoinLines(d.Lines))
}

// Hash is the key of the document in an objstore.Store.
func (d *Document) Hash() string {
	return objstore.Hash(d.Bytes())
}

// Show writes the lines numbered from 0, one per line:
//
//	0. A
//	1. B
func (d *Document) Show(w io.Writer) error {
	for i, line := range d.Lines {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i, line); err != nil {
			return err
		}
	}
	return nil
}
