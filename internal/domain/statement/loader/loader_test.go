package loader

import (
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvu/vnstatement/internal/domain/statement"
	"github.com/tranvu/vnstatement/internal/domain/statement/source"
)

// fakeDocument serves canned pages and records whether it was closed.
type fakeDocument struct {
	pages  [][]statement.RawTable
	next   int
	failAt int // page index that returns an error, -1 to disable
	closed *bool
}

func (d *fakeDocument) NextPage() ([]statement.RawTable, error) {
	if d.failAt >= 0 && d.next == d.failAt {
		return nil, errors.New("page decode failed")
	}
	if d.next >= len(d.pages) {
		return nil, io.EOF
	}
	page := d.pages[d.next]
	d.next++
	return page, nil
}

func (d *fakeDocument) Close() error {
	if d.closed != nil {
		*d.closed = true
	}
	return nil
}

func singleTransactionPages() [][]statement.RawTable {
	return [][]statement.RawTable{{
		{
			{"Date", "Description", "Debit", "Credit"},
			{"01/12/2025", "Payment 1", "100,000", ""},
		},
	}}
}

func fakeOpener(pages [][]statement.RawTable, closed *bool) source.Opener {
	return func(content []byte) (source.Document, error) {
		return &fakeDocument{pages: pages, failAt: -1, closed: closed}, nil
	}
}

func TestLoad(t *testing.T) {
	t.Run("merges documents in input order", func(t *testing.T) {
		result := Load([]Document{
			{Content: []byte("a"), Type: statement.SourceChecking},
			{Content: []byte("b"), Type: statement.SourceCreditCard},
		}, Options{DayFirst: true, Open: fakeOpener(singleTransactionPages(), nil)})

		require.Empty(t, result.Failures)
		require.Len(t, result.Table.Rows, 2)
		assert.Equal(t, statement.SourceChecking, result.Table.Rows[0].SourceType)
		assert.Equal(t, statement.SourceCreditCard, result.Table.Rows[1].SourceType)
		assert.NotEqual(t, uuid.Nil, result.BatchID)
	})

	t.Run("empty content is a failure, batch continues", func(t *testing.T) {
		result := Load([]Document{
			{Content: nil, Type: statement.SourceChecking},
			{Content: []byte("ok"), Type: statement.SourceChecking},
		}, Options{DayFirst: true, Open: fakeOpener(singleTransactionPages(), nil)})

		require.Len(t, result.Table.Rows, 1)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, 0, result.Failures[0].Index)
		assert.Contains(t, result.Failures[0].Reason, "invalid or empty")
	})

	t.Run("document without debit rows is a distinct failure", func(t *testing.T) {
		pages := [][]statement.RawTable{{
			{
				{"Date", "Description", "Debit", "Credit"},
				{"01/12/2025", "Inflow only", "", "500,000"},
			},
		}}
		result := Load([]Document{
			{Content: []byte("x"), Type: statement.SourceChecking},
		}, Options{DayFirst: true, Open: fakeOpener(pages, nil)})

		assert.True(t, result.Table.Empty())
		require.Len(t, result.Failures, 1)
		assert.Equal(t, ReasonNoDebitRows, result.Failures[0].Reason)
	})

	t.Run("open error becomes a failure record", func(t *testing.T) {
		opener := func(content []byte) (source.Document, error) {
			return nil, source.ErrUnknownFormat
		}
		result := Load([]Document{
			{Content: []byte{0x01, 0x02}, Type: statement.SourceChecking},
		}, Options{Open: opener})

		require.Len(t, result.Failures, 1)
		assert.Equal(t, source.ErrUnknownFormat.Error(), result.Failures[0].Reason)
	})

	t.Run("page error closes the document and records the message", func(t *testing.T) {
		closed := false
		opener := func(content []byte) (source.Document, error) {
			return &fakeDocument{pages: singleTransactionPages(), failAt: 0, closed: &closed}, nil
		}
		result := Load([]Document{
			{Content: []byte("x"), Type: statement.SourceChecking},
		}, Options{Open: opener})

		require.Len(t, result.Failures, 1)
		assert.Equal(t, "page decode failed", result.Failures[0].Reason)
		assert.True(t, closed, "document must be released on the failure path")
	})

	t.Run("deduplicate keeps the first occurrence", func(t *testing.T) {
		docs := []Document{
			{Content: []byte("a"), Type: statement.SourceChecking},
			{Content: []byte("a"), Type: statement.SourceChecking},
		}
		deduped := Load(docs, Options{DayFirst: true, Deduplicate: true, Open: fakeOpener(singleTransactionPages(), nil)})
		kept := Load(docs, Options{DayFirst: true, Deduplicate: false, Open: fakeOpener(singleTransactionPages(), nil)})

		assert.Len(t, deduped.Table.Rows, 1)
		assert.Len(t, kept.Table.Rows, 2)
	})

	t.Run("same row from different source types survives dedupe", func(t *testing.T) {
		result := Load([]Document{
			{Content: []byte("a"), Type: statement.SourceChecking},
			{Content: []byte("a"), Type: statement.SourceCreditCard},
		}, Options{DayFirst: true, Deduplicate: true, Open: fakeOpener(singleTransactionPages(), nil)})

		assert.Len(t, result.Table.Rows, 2)
	})

	t.Run("empty batch yields empty table", func(t *testing.T) {
		result := Load(nil, Options{})
		assert.True(t, result.Table.Empty())
		assert.Empty(t, result.Failures)
	})

	t.Run("csv document through the real opener", func(t *testing.T) {
		csv := "Date,Description,Debit,Credit\n" +
			"01/12/2025,Payment 1,\"100,000\",\n" +
			"02/12/2025,Payment 2,\"200,000\",\n"
		result := Load([]Document{
			{Content: []byte(csv), Type: statement.SourceChecking},
		}, Options{DayFirst: true})

		require.Empty(t, result.Failures)
		require.Len(t, result.Table.Rows, 2)
		assert.Equal(t, 100000.0, result.Table.Rows[0].Debit)
		require.NotNil(t, result.Table.Rows[1].Date)
		assert.Equal(t, 2, result.Table.Rows[1].Date.Day())
	})
}
