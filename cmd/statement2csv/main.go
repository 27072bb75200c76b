// Command statement2csv converts Norwegian bank statement PDFs into
// categorized CSV files from the command line, using the same pipeline as the
// HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/zayals35/My-economy-app/internal/domain/categorize"
	"github.com/zayals35/My-economy-app/internal/domain/ingest"
	"github.com/zayals35/My-economy-app/internal/domain/statement"
	"github.com/zayals35/My-economy-app/internal/extractor"
)

const version = "1.0.0"

func main() {
	outputFlag := flag.String("output", "", "Output CSV file path (defaults to input filename with .csv extension)")
	dedupFlag := flag.String("dedup", "row", "Deduplication policy: row, source, none")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Norwegian Bank Statement to CSV Converter

Extracts transactions from SpareBank-style statement PDFs or delimited
exports, classifies them by keyword, and writes categorized CSV.

Usage:
  statement2csv [flags] <input.pdf> [input2.pdf ...]

Flags:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement2csv v%s\n", version)
		os.Exit(0)
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	var policy ingest.DedupPolicy
	switch strings.ToLower(*dedupFlag) {
	case "row":
		policy = ingest.DedupRowEquality
	case "source":
		policy = ingest.DedupSourceKey
	case "none":
		policy = ingest.DedupNone
	default:
		fatalf("Unknown dedup policy %q. Supported: row, source, none\n", *dedupFlag)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	table := categorize.DefaultTable()
	parser := statement.NewParser(statement.DefaultConfig())
	svc := ingest.NewService(extractor.NewPDFExtractor(logger), parser, table, logger).WithDedupPolicy(policy)

	for _, inputPath := range flag.Args() {
		if err := processFile(svc, inputPath, *outputFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(svc *ingest.Service, inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	result, err := svc.Ingest(context.Background(), []ingest.File{
		{Name: filepath.Base(inputPath), Data: data},
	})
	if err != nil {
		return err
	}

	fmt.Printf("  Lines seen: %d, parsed: %d, duplicates skipped: %d\n",
		result.Stats.LinesSeen, result.Stats.Parsed, result.Stats.DuplicatesSkipped)
	for _, warning := range result.Warnings {
		fmt.Printf("  Warning: %s\n", warning)
	}
	if result.Stats.FilesFailed > 0 {
		return fmt.Errorf("no transactions could be extracted")
	}

	outPath := outputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".csv"
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	if err := statement.WriteExport(out, result.Transactions); err != nil {
		return err
	}

	fmt.Printf("  Output: %s (%d transactions)\n", outPath, len(result.Transactions))
	return nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
