package source

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/tranvu/vnstatement/internal/domain/statement"
)

// openCSV treats the whole file as a single page. Banks export one flat grid;
// blank lines still split it into candidate tables so a leading account
// summary block does not shadow the transaction table.
func openCSV(content []byte) (Document, error) {
	text := strings.TrimPrefix(string(content), "\uFEFF")

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = detectDelimiter(firstLine(text))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return &memoryDocument{pages: [][]statement.RawTable{splitTables(rows)}}, nil
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return strings.TrimRight(text[:i], "\r")
	}
	return text
}

// detectDelimiter picks the separator occurring most often in the first line.
func detectDelimiter(line string) rune {
	best := ','
	bestCount := 0
	for _, d := range []rune{';', '\t', ',', '|'} {
		if count := strings.Count(line, string(d)); count > bestCount {
			bestCount = count
			best = d
		}
	}
	return best
}
