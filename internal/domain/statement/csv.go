package statement

import (
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
)

// csvRow mirrors the canonical column order for gocsv marshaling.
type csvRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Remitter    string `csv:"Remitter"`
	Debit       string `csv:"Debit"`
	Credit      string `csv:"Credit"`
	SourceType  string `csv:"SourceType"`
}

// WriteCSV writes the table to w in the canonical column order. Absent dates
// are written as empty cells; amounts use plain decimal notation.
func (t Table) WriteCSV(w io.Writer) error {
	out := make([]csvRow, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := csvRow{
			Description: r.Description,
			Remitter:    r.Remitter,
			Debit:       formatAmount(r.Debit),
			Credit:      formatAmount(r.Credit),
			SourceType:  string(r.SourceType),
		}
		if r.Date != nil {
			row.Date = r.Date.Format("2006-01-02")
		}
		out = append(out, row)
	}
	return gocsv.Marshal(&out, w)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
