// Package loader runs the page assembler across a batch of statement
// documents, merges their rows and collects per-document failure diagnostics.
// One bad document never aborts the batch.
package loader

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tranvu/vnstatement/internal/domain/statement"
	"github.com/tranvu/vnstatement/internal/domain/statement/assembler"
	"github.com/tranvu/vnstatement/internal/domain/statement/source"
)

// Failure reasons surfaced to callers. Distinguishing "garbled document" from
// "document legitimately has no expenses" matters downstream.
const (
	ReasonInvalidFile = "invalid or empty file"
	ReasonNoDebitRows = "no transaction table found or no debit rows"
)

// Document is one batch item: raw statement content plus its declared account
// kind.
type Document struct {
	Content []byte
	Type    statement.SourceType
}

// Failure records why a document produced no rows. Index is the document's
// position in the input batch.
type Failure struct {
	Index  int
	Reason string
}

// Options configures a batch run.
type Options struct {
	// DayFirst interprets ambiguous dates as DD/MM rather than MM/DD.
	DayFirst bool
	// Deduplicate drops rows that are exact duplicates across the full
	// canonical tuple, keeping the first occurrence.
	Deduplicate bool
	// Open overrides the document opener; nil uses source.Open.
	Open source.Opener
	// Logger receives per-document progress; nil uses the process default.
	Logger *slog.Logger
}

// Result is the merged outcome of a batch run.
type Result struct {
	BatchID  uuid.UUID
	Table    statement.Table
	Failures []Failure
}

// Load processes documents in input order and concatenates the rows of every
// document that parsed. Failures are collected, never raised; the returned
// table may be empty.
func Load(docs []Document, opts Options) Result {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	open := opts.Open
	if open == nil {
		open = source.Open
	}

	result := Result{BatchID: uuid.New()}
	for i, doc := range docs {
		if len(doc.Content) == 0 {
			logger.Warn("skipping document", "index", i, "reason", ReasonInvalidFile)
			result.Failures = append(result.Failures, Failure{Index: i, Reason: ReasonInvalidFile})
			continue
		}
		table, err := extract(doc, opts.DayFirst, open, logger)
		if err != nil {
			reason := strings.TrimSpace(err.Error())
			if reason == "" {
				reason = "extraction failed"
			}
			logger.Warn("document failed to parse", "index", i, "error", err)
			result.Failures = append(result.Failures, Failure{Index: i, Reason: reason})
			continue
		}
		if table.Empty() {
			logger.Warn("skipping document", "index", i, "reason", ReasonNoDebitRows)
			result.Failures = append(result.Failures, Failure{Index: i, Reason: ReasonNoDebitRows})
			continue
		}
		logger.Info("document parsed", "index", i, "rows", len(table.Rows), "source_type", doc.Type)
		result.Table = result.Table.Append(table)
	}

	if opts.Deduplicate {
		result.Table = deduplicate(result.Table)
	}
	return result
}

// extract opens one document and feeds its pages to a fresh assembler. The
// document handle is released on both the success and failure paths.
func extract(doc Document, dayFirst bool, open source.Opener, logger *slog.Logger) (statement.Table, error) {
	d, err := open(doc.Content)
	if err != nil {
		return statement.Table{}, err
	}
	defer d.Close()

	asm := assembler.New(doc.Type, dayFirst, logger)
	for {
		tables, err := d.NextPage()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return statement.Table{}, err
		}
		asm.ProcessPage(tables)
	}
	return asm.Finish(), nil
}

// rowKey is the exact-duplicate identity: the full canonical column tuple.
type rowKey struct {
	date        string
	description string
	remitter    string
	debit       float64
	credit      float64
	sourceType  statement.SourceType
}

func deduplicate(t statement.Table) statement.Table {
	seen := make(map[rowKey]struct{}, len(t.Rows))
	rows := make([]statement.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		key := rowKey{
			description: r.Description,
			remitter:    r.Remitter,
			debit:       r.Debit,
			credit:      r.Credit,
			sourceType:  r.SourceType,
		}
		if r.Date != nil {
			key.date = r.Date.Format(time.DateOnly)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, r)
	}
	return statement.Table{Rows: rows}
}
