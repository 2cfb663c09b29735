// Package selector ranks the candidate tables extracted from one statement
// page and picks the one most likely to hold transactions, distinguishing the
// real transaction grid from fee schedules and terms tables that are also
// table-shaped.
package selector

import (
	"regexp"
	"strings"

	"github.com/tranvu/vnstatement/internal/domain/statement"
)

// numericCell matches cells built purely from digits, separators and signs.
var numericCell = regexp.MustCompile(`^[\d.,\s\-]+$`)

// looksLikeHeaderRow reports whether a row is mostly non-numeric text.
func looksLikeHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	numeric := 0
	for _, cell := range row {
		s := strings.TrimSpace(cell)
		if s != "" && numericCell.MatchString(s) {
			numeric++
		}
	}
	return numeric <= len(row)/2
}

// Score rates how likely a table is the transaction table. Higher is better;
// 0 means the table is not worth considering. The point values are a ranking
// heuristic: header-shaped first rows, three or more columns and many data
// rows all push a table ahead of small fee and terms grids.
func Score(t statement.RawTable) float64 {
	if len(t) < 2 {
		return 0
	}
	header := t[0]
	ncols := len(header)
	if ncols < 2 {
		return 0
	}
	var score float64
	if looksLikeHeaderRow(header) {
		score += 10
	}
	// Transaction tables carry at least Date, Description and Debit/Credit.
	if ncols >= 3 {
		score += 5
	} else {
		score += 2
	}
	dataRows := len(t) - 1
	if dataRows > 20 {
		dataRows = 20
	}
	score += float64(dataRows) * 0.5
	return score
}

// Best picks the highest-scoring table among the page's candidates. Tables
// with fewer than 2 rows or 2 columns are discarded outright. When nothing
// scores above 0 the largest remaining table by (rows, columns) is returned
// instead: continuation pages have no header-shaped first row and would score
// 0 everywhere, but still carry real transaction rows. Returns nil when the
// page has no usable table at all.
func Best(tables []statement.RawTable) statement.RawTable {
	var best statement.RawTable
	bestScore := 0.0
	var largest statement.RawTable
	largestRows, largestCols := 0, 0
	for _, t := range tables {
		if len(t) < 2 {
			continue
		}
		ncols := len(t[0])
		if ncols < 2 {
			continue
		}
		if s := Score(t); s > bestScore {
			bestScore = s
			best = t
		}
		if len(t) > largestRows || (len(t) == largestRows && ncols > largestCols) {
			largestRows, largestCols = len(t), ncols
			largest = t
		}
	}
	if best != nil {
		return best
	}
	return largest
}
