package source

import (
	"bytes"
	"fmt"

	"github.com/shakinm/xlsReader/xls"

	"github.com/tranvu/vnstatement/internal/domain/statement"
)

// openXLS reads a legacy BIFF workbook. xlsReader evaluates formulas and cell
// formatting properly, which excelize cannot do for this format. The whole
// workbook is materialized up front; legacy statements are small.
func openXLS(content []byte) (Document, error) {
	wb, err := xls.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	pages := make([][]statement.RawTable, 0, wb.GetNumberSheets())
	for i := 0; i < wb.GetNumberSheets(); i++ {
		sht, err := wb.GetSheet(i)
		if err != nil {
			return nil, fmt.Errorf("read xls sheet %d: %w", i, err)
		}
		if sht == nil {
			continue
		}
		var rows [][]string
		for _, r := range sht.GetRows() {
			var cells []string
			for _, c := range r.GetCols() {
				cells = append(cells, c.GetString())
			}
			rows = append(rows, cells)
		}
		pages = append(pages, splitTables(rows))
	}
	return &memoryDocument{pages: pages}, nil
}
