// Package assembler walks a document's pages in order and assembles canonical
// transaction rows. It decides per page whether the first row is a header or a
// continuation of the previous page's table, carrying the last known-good
// column mapping across pages of the same document.
package assembler

import (
	"context"
	"log/slog"

	"github.com/tranvu/vnstatement/internal/domain/statement"
	"github.com/tranvu/vnstatement/internal/domain/statement/normalizer"
	"github.com/tranvu/vnstatement/internal/domain/statement/resolver"
	"github.com/tranvu/vnstatement/internal/domain/statement/selector"
)

// record holds the raw cells of one emitted row, keyed by canonical field.
type record map[statement.Field]string

// Assembler accumulates rows for a single document. It is not safe for
// concurrent use; create one per document and discard it after Finish.
type Assembler struct {
	sourceType statement.SourceType
	dayFirst   bool
	logger     *slog.Logger

	last    statement.ColumnMap
	records []record
}

// New creates an assembler for one document. A nil logger falls back to the
// process default.
func New(sourceType statement.SourceType, dayFirst bool, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		sourceType: sourceType,
		dayFirst:   dayFirst,
		logger:     logger,
	}
}

// ProcessPage selects the page's best candidate table, resolves or reuses a
// column mapping, and buffers the page's data rows. Pages without a usable
// table or a transaction-complete mapping are skipped without touching state.
func (a *Assembler) ProcessPage(tables []statement.RawTable) {
	raw := selector.Best(tables)
	if len(raw) == 0 {
		return
	}
	header := raw[0]
	ncols := len(header)

	var colMap statement.ColumnMap
	continuation := false
	switch {
	case a.last != nil && ncols >= a.last.Span() && firstCellDateShaped(header):
		// First row is data (date in the first cell), not a header.
		a.logger.Debug("continuation page, reusing previous column map", "ncols", ncols)
		colMap = a.last.Restrict(ncols)
		continuation = true
	default:
		colMap = resolver.Map(header)
		if len(colMap) == 0 {
			colMap = resolver.Fallback(header)
		}
		// A partial match (e.g. a stray "ngay" inside a description header
		// misread as a Date column) must not displace a known-good mapping.
		if !colMap.Complete() && a.last != nil && ncols >= a.last.Span() {
			a.logUnresolvedHeader(header)
			colMap = a.last.Restrict(ncols)
			continuation = true
		}
	}

	if len(colMap) == 0 || !colMap.Complete() {
		a.logger.Debug("skipping page without transaction-complete mapping", "ncols", ncols)
		return
	}
	a.last = colMap

	// On continuation pages row 0 is data and is kept; a freshly resolved
	// header row is excluded. Header-shaped rows admitted here have no
	// parseable debit and fall out at Finish.
	start := 1
	if continuation {
		start = 0
	}
	for _, r := range raw[start:] {
		if len(r) == 0 {
			continue
		}
		// Pad so column indices stay aligned when merged cells shorten a row.
		padded := r
		if len(padded) < ncols {
			padded = append(append(make([]string, 0, ncols), r...), make([]string, ncols-len(r))...)
		}
		rec := make(record, len(colMap))
		for i, field := range colMap {
			if i < len(padded) {
				rec[field] = padded[i]
			}
		}
		if len(rec) > 0 {
			a.records = append(a.records, rec)
		}
	}
}

// Finish normalizes the buffered rows into a canonical table. Rows whose
// normalized Debit is exactly 0 carry no expense signal (pure inflows or
// unparseable amounts) and are dropped.
func (a *Assembler) Finish() statement.Table {
	rows := make([]statement.Row, 0, len(a.records))
	for _, rec := range a.records {
		debit := normalizer.Amount(rec[statement.FieldDebit])
		if debit == 0 {
			continue
		}
		row := statement.Row{
			Description: normalizer.Text(rec[statement.FieldDescription]),
			Remitter:    normalizer.Text(rec[statement.FieldRemitter]),
			Debit:       debit,
			Credit:      normalizer.Amount(rec[statement.FieldCredit]),
			SourceType:  a.sourceType,
		}
		if t, ok := normalizer.Date(rec[statement.FieldDate], a.dayFirst); ok {
			row.Date = &t
		}
		rows = append(rows, row)
	}
	return statement.Table{Rows: rows}
}

func firstCellDateShaped(header []string) bool {
	return len(header) > 0 && normalizer.DateShaped(header[0])
}

// logUnresolvedHeader reports a header row that produced no complete mapping,
// with fuzzy nearest-alias hints to help diagnose new statement layouts.
func (a *Assembler) logUnresolvedHeader(header []string) {
	if !a.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for i, h := range header {
		if field, ok := resolver.Suggest(h); ok {
			a.logger.Debug("unresolved header cell", "index", i, "header", h, "closest", string(field))
		}
	}
	a.logger.Debug("reusing previous column map after incomplete resolution", "ncols", len(header))
}
