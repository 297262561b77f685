// Command mte extracts markdown tables from a document in one shot and writes
// them to stdout or a file as CSV, JSON or markdown.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mdtex/mcp-table-extractor/internal/document"
	"github.com/mdtex/mcp-table-extractor/internal/export"
	"github.com/mdtex/mcp-table-extractor/internal/markdown"
)

var (
	outputFormat = flag.String("format", export.FormatMarkdown, "Output format: csv, json, markdown")
	strategy     = flag.String("strategy", "", "Continuation merge strategy: none, identical_headers, compatible_columns")
	noMerge      = flag.Bool("no-merge", false, "Disable continuation merging (same as -strategy none)")
	outputPath   = flag.String("o", "", "Write output to file instead of stdout")
	maxFileSize  = flag.Int64("max-file-size", 100*1024*1024, "Maximum input file size in bytes")
	quiet        = flag.Bool("quiet", false, "Suppress the anomaly report on stderr")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: input file required (use '-' for stdin)\n\n")
		printUsage()
		os.Exit(1)
	}

	opts, err := buildOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	text, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	result, err := markdown.Extract(text, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error extracting tables: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutput(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	if !*quiet {
		reportAnomalies(result)
	}
}

func buildOptions() (markdown.Options, error) {
	opts := markdown.DefaultOptions()

	if *noMerge {
		opts.Strategy = markdown.MergeNone
	}
	if *strategy != "" {
		s, err := markdown.ParseMergeStrategy(*strategy)
		if err != nil {
			return opts, err
		}
		opts.Strategy = s
	}

	return opts, nil
}

// readInput loads the document text from a file or, for "-", from stdin.
// Files go through the document reader so PDFs work here too.
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	reader := document.NewReader(*maxFileSize)
	content, _, err := reader.ReadDocument(path)
	return content, err
}

func writeOutput(result *markdown.ExtractionResult) error {
	out := os.Stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	return export.Write(out, result, *outputFormat)
}

func reportAnomalies(result *markdown.ExtractionResult) {
	if len(result.Errors) == 0 {
		return
	}

	fmt.Fprintf(os.Stderr, "%d anomalous line(s) skipped:\n", len(result.Errors))
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "  line %d: %s\n", e.Line, e.Message)
	}
}

func printHelp() {
	fmt.Println("mte - Extract markdown tables from documents")
	fmt.Println()
	fmt.Println("Scans markdown, plain text or PDF documents for pipe-delimited tables,")
	fmt.Println("attaches captions, merges continuation fragments split by page breaks,")
	fmt.Println("and writes the structured result to stdout or a file.")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -format         Output format: " + strings.Join(export.Formats(), ", ") + " (default markdown)")
	fmt.Println("  -strategy       Merge strategy: none, identical_headers (default), compatible_columns")
	fmt.Println("  -no-merge       Disable continuation merging")
	fmt.Println("  -o              Write output to file instead of stdout")
	fmt.Println("  -max-file-size  Maximum input file size in bytes")
	fmt.Println("  -quiet          Suppress the anomaly report on stderr")
	fmt.Println("  -help           Show this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  mte manuscript.md")
	fmt.Println("  mte -format csv -o tables.csv paper.pdf")
	fmt.Println("  cat notes.txt | mte -format json -")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  mte [OPTIONS] <file|->")
}

func init() {
	flag.Usage = func() {
		printHelp()
	}
}
