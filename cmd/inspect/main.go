// Command inspect dumps the candidate tables a statement document exposes,
// page by page, with their selector scores and the column map each header
// would resolve to. Useful when a new bank layout parses to nothing.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/tranvu/vnstatement/internal/domain/statement"
	"github.com/tranvu/vnstatement/internal/domain/statement/resolver"
	"github.com/tranvu/vnstatement/internal/domain/statement/selector"
	"github.com/tranvu/vnstatement/internal/domain/statement/source"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect statement.xlsx")
		os.Exit(2)
	}
	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "inspect:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := source.Open(content)
	if err != nil {
		return err
	}
	defer doc.Close()

	for page := 1; ; page++ {
		tables, err := doc.NextPage()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("page %d: %d candidate table(s)\n", page, len(tables))
		for i, t := range tables {
			printTable(i, t)
		}
		if best := selector.Best(tables); len(best) > 0 {
			fmt.Printf("  selected: %d rows, first row %q\n", len(best), best[0])
		}
	}
}

func printTable(index int, t statement.RawTable) {
	ncols := 0
	if len(t) > 0 {
		ncols = len(t[0])
	}
	fmt.Printf("  table %d: %d rows x %d cols, score %.1f\n", index, len(t), ncols, selector.Score(t))
	if len(t) == 0 {
		return
	}
	fmt.Printf("    first row: %q\n", t[0])
	colMap := resolver.Map(t[0])
	if len(colMap) == 0 {
		fmt.Println("    header resolution: no alias matches (positional fallback would apply)")
		return
	}
	indices := make([]int, 0, len(colMap))
	for i := range colMap {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	for _, i := range indices {
		fmt.Printf("    column %d -> %s\n", i, colMap[i])
	}
	fmt.Printf("    transaction-complete: %v\n", colMap.Complete())
}
