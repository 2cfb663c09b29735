// Package source opens statement documents and exposes their per-page
// candidate tables. Table geometry is this package's job, not the pipeline's:
// the extraction core only ranks and consumes the RawTable grids produced
// here. Supported formats are XLSX, legacy XLS and CSV, sniffed from the
// content itself.
package source

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/tranvu/vnstatement/internal/domain/statement"
)

var (
	// ErrEmptyDocument is returned for nil or zero-length content.
	ErrEmptyDocument = errors.New("document content is empty")
	// ErrUnknownFormat is returned when the content matches no supported format.
	ErrUnknownFormat = errors.New("unrecognized document format")
)

// Document iterates a statement's pages. NextPage returns io.EOF after the
// last page. Callers must Close the document on every path.
type Document interface {
	NextPage() ([]statement.RawTable, error)
	Close() error
}

// Opener turns raw document content into a page iterator. It is the seam for
// swapping in other geometry extractors.
type Opener func(content []byte) (Document, error)

var (
	zipMagic = []byte{0x50, 0x4b, 0x03, 0x04}
	oleMagic = []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}
)

// Open sniffs the content format and returns the matching document reader.
func Open(content []byte) (Document, error) {
	if len(content) == 0 {
		return nil, ErrEmptyDocument
	}
	switch {
	case bytes.HasPrefix(content, zipMagic):
		return openXLSX(content)
	case bytes.HasPrefix(content, oleMagic):
		return openXLS(content)
	case looksLikeText(content):
		return openCSV(content)
	}
	return nil, ErrUnknownFormat
}

// looksLikeText accepts content that is valid UTF-8 with no NUL bytes in its
// first KiB, which covers the CSV exports banks hand out.
func looksLikeText(content []byte) bool {
	sample := content
	if len(sample) > 1024 {
		sample = sample[:1024]
	}
	if bytes.IndexByte(sample, 0x00) >= 0 {
		return false
	}
	return utf8.Valid(sample)
}

// memoryDocument serves pages that were materialized at open time.
type memoryDocument struct {
	pages [][]statement.RawTable
	next  int
}

func (d *memoryDocument) NextPage() ([]statement.RawTable, error) {
	if d.next >= len(d.pages) {
		return nil, io.EOF
	}
	page := d.pages[d.next]
	d.next++
	return page, nil
}

func (d *memoryDocument) Close() error { return nil }

// splitTables segments a page grid into candidate tables: each contiguous
// block of non-empty rows is one candidate. Blank rows are the separators
// banks put between the account summary, the transaction table and the fee
// schedule.
func splitTables(rows [][]string) []statement.RawTable {
	var tables []statement.RawTable
	var current statement.RawTable
	for _, row := range rows {
		if rowEmpty(row) {
			if len(current) > 0 {
				tables = append(tables, current)
				current = nil
			}
			continue
		}
		current = append(current, row)
	}
	if len(current) > 0 {
		tables = append(tables, current)
	}
	return tables
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
