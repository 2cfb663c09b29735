// Command extract parses bank-statement documents into the canonical
// transaction CSV. Documents are given as file arguments; failures and VND
// totals are reported on stderr.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tranvu/vnstatement/internal/domain/statement"
	"github.com/tranvu/vnstatement/internal/domain/statement/loader"
	"github.com/tranvu/vnstatement/pkg/config"
	"github.com/tranvu/vnstatement/pkg/vnd"
)

func main() {
	var (
		sourceType = flag.String("type", string(statement.SourceChecking), "statement source type: checking or credit_card")
		output     = flag.String("o", "", "output CSV path (default stdout)")
		dayFirst   = flag.Bool("day-first", true, "interpret ambiguous dates as DD/MM")
		noDedupe   = flag.Bool("no-dedupe", false, "keep exact duplicate rows")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger()

	srcType := statement.SourceType(*sourceType)
	if !srcType.Valid() {
		fmt.Fprintf(os.Stderr, "unknown source type %q\n", *sourceType)
		os.Exit(2)
	}
	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: extract [flags] statement.xlsx [statement2.csv ...]")
		os.Exit(2)
	}

	docs := make([]loader.Document, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("unreadable file treated as empty document", "path", path, "error", err)
			content = nil
		}
		docs = append(docs, loader.Document{Content: content, Type: srcType})
	}

	result := loader.Load(docs, loader.Options{
		DayFirst:    *dayFirst && cfg.Extract.DayFirst,
		Deduplicate: cfg.Extract.Deduplicate && !*noDedupe,
		Logger:      logger,
	})

	for _, f := range result.Failures {
		logger.Warn("document failed", "batch_id", result.BatchID, "path", paths[f.Index], "reason", f.Reason)
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			logger.Error("create output", "path", *output, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := result.Table.WriteCSV(out); err != nil {
		logger.Error("write csv", "error", err)
		os.Exit(1)
	}

	debits := make([]float64, 0, len(result.Table.Rows))
	credits := make([]float64, 0, len(result.Table.Rows))
	for _, r := range result.Table.Rows {
		debits = append(debits, r.Debit)
		credits = append(credits, r.Credit)
	}
	logger.Info("batch finished",
		"batch_id", result.BatchID,
		"documents", len(docs),
		"failed", len(result.Failures),
		"rows", len(result.Table.Rows),
		"total_debit", vnd.Sum(debits).Display(),
		"total_credit", vnd.Sum(credits).Display(),
	)
}
