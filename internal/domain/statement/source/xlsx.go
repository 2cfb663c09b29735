package source

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tranvu/vnstatement/internal/domain/statement"
)

// xlsxDocument reads an XLSX workbook lazily, one sheet per page.
type xlsxDocument struct {
	file   *excelize.File
	sheets []string
	next   int
}

func openXLSX(content []byte) (Document, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	return &xlsxDocument{file: f, sheets: f.GetSheetList()}, nil
}

func (d *xlsxDocument) NextPage() ([]statement.RawTable, error) {
	if d.next >= len(d.sheets) {
		return nil, io.EOF
	}
	name := d.sheets[d.next]
	d.next++
	rows, err := d.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}
	return splitTables(rows), nil
}

func (d *xlsxDocument) Close() error {
	return d.file.Close()
}
