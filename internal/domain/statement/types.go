// Package statement defines the canonical transaction schema shared between the
// extraction pipeline and its consumers (filter engines, presentation layers).
// All types are plain values; nothing here owns external resources.
package statement

import "time"

// Field is a canonical column name in the normalized transaction schema.
type Field string

const (
	FieldDate        Field = "Date"
	FieldDescription Field = "Description"
	FieldRemitter    Field = "Remitter"
	FieldDebit       Field = "Debit"
	FieldCredit      Field = "Credit"
)

// Columns is the fixed canonical column order used for export and display.
// SourceType is stamped per document rather than mapped from headers, so it is
// not a Field.
var Columns = []string{"Date", "Description", "Remitter", "Debit", "Credit", "SourceType"}

// SourceType identifies the account kind a statement was issued for.
type SourceType string

const (
	SourceChecking   SourceType = "checking"
	SourceCreditCard SourceType = "credit_card"
)

// Valid reports whether s is one of the known source types.
func (s SourceType) Valid() bool {
	return s == SourceChecking || s == SourceCreditCard
}

// RawTable is a row-major grid of cell text as produced by a document source.
// The first row may or may not be a header; absent cells are empty strings.
type RawTable [][]string

// ColumnMap maps zero-based column indices to canonical fields. Indices not
// present are unmapped and their cells are dropped.
type ColumnMap map[int]Field

// Complete reports whether the map resolves both a Date and a Debit column,
// the minimum needed to keep transaction rows.
func (m ColumnMap) Complete() bool {
	var hasDate, hasDebit bool
	for _, f := range m {
		switch f {
		case FieldDate:
			hasDate = true
		case FieldDebit:
			hasDebit = true
		}
	}
	return hasDate && hasDebit
}

// Span is the number of mapped columns.
func (m ColumnMap) Span() int { return len(m) }

// Restrict returns a copy of the map limited to indices below ncols.
func (m ColumnMap) Restrict(ncols int) ColumnMap {
	out := make(ColumnMap, len(m))
	for i, f := range m {
		if i < ncols {
			out[i] = f
		}
	}
	return out
}

// Row is a single normalized transaction. Debit and Credit are statement-native
// amounts (VND-style, no fractional subunit); absent amounts are 0. A nil Date
// means the cell was missing or unparseable.
type Row struct {
	Date        *time.Time
	Description string
	Remitter    string
	Debit       float64
	Credit      float64
	SourceType  SourceType
}

// Table is an ordered collection of normalized transactions, the unit exchanged
// with downstream consumers.
type Table struct {
	Rows []Row
}

// Empty reports whether the table holds no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// Append returns a table with the rows of both tables, in order.
func (t Table) Append(other Table) Table {
	rows := make([]Row, 0, len(t.Rows)+len(other.Rows))
	rows = append(rows, t.Rows...)
	rows = append(rows, other.Rows...)
	return Table{Rows: rows}
}
