// Package markdown extracts tabular data embedded in free-form markdown and
// text documents, tolerating the artifacts common in converted academic
// manuscripts: tables split across page breaks with "(Continued)" captions,
// extended alignment syntax, inline HTML remnants, and sub-header rows.
package markdown

import (
	"fmt"
	"strings"
)

// Options configures one extraction run. Use DefaultOptions as the starting
// point; the zero value disables caption detection and sub-header folding.
type Options struct {
	// Strategy selects how continuation tables are merged. An empty value
	// means MergeIdenticalHeaders.
	Strategy MergeStrategy

	// DetectCaptions enables the backward scan for "Table N." captions
	// above each table. When false every table's caption is nil.
	DetectCaptions bool

	// SkipSubHeaders enables folding a mostly-empty row after the separator
	// into composite column names. When false that row is emitted as an
	// ordinary data row.
	SkipSubHeaders bool

	// SubHeaderThreshold is the fraction of empty cells a row must exceed
	// to qualify as a sub-header. Zero means DefaultSubHeaderThreshold.
	SubHeaderThreshold float64
}

// DefaultOptions returns the recommended configuration: merge on identical
// headers, detect captions, fold sub-headers.
func DefaultOptions() Options {
	return Options{
		Strategy:           MergeIdenticalHeaders,
		DetectCaptions:     true,
		SkipSubHeaders:     true,
		SubHeaderThreshold: DefaultSubHeaderThreshold,
	}
}

// normalized validates the options and fills defaulted zero values.
// Configuration problems are the only errors the pipeline can raise, and
// they surface here before any parsing starts.
func (o Options) normalized() (Options, error) {
	strategy, err := ParseMergeStrategy(string(o.Strategy))
	if err != nil {
		return Options{}, err
	}
	o.Strategy = strategy

	if o.SubHeaderThreshold == 0 {
		o.SubHeaderThreshold = DefaultSubHeaderThreshold
	}
	if o.SubHeaderThreshold < 0 || o.SubHeaderThreshold >= 1 {
		return Options{}, fmt.Errorf("sub-header threshold %v out of range [0, 1)", o.SubHeaderThreshold)
	}
	return o, nil
}

// Extract runs the full pipeline over one document: scan table blocks,
// detect captions, clean headers, build tables, merge continuations. Only an
// invalid configuration returns an error; per-line problems are recovered in
// place and collected in the result's Errors. An empty document or one with
// no tables yields an empty result, not an error.
func Extract(text string, opts Options) (*ExtractionResult, error) {
	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	blocks, errs := ScanBlocks(lines)

	result := &ExtractionResult{Errors: errs}
	for _, block := range blocks {
		var caption *Caption
		isContinuation := false
		if opts.DetectCaptions {
			caption, isContinuation = DetectCaption(lines, block.StartLine)
		}

		var firstRow []string
		if len(block.DataRows) > 0 {
			firstRow = block.DataRows[0].Cells
		}
		headers, consumed := CleanHeaders(block.Header, firstRow, opts.SubHeaderThreshold, opts.SkipSubHeaders)

		dataRows := block.DataRows
		if consumed {
			dataRows = dataRows[1:]
		}

		table, anomalies := BuildTable(block, headers, caption, isContinuation, dataRows)
		result.Tables = append(result.Tables, table)
		result.Errors = append(result.Errors, anomalies...)
	}

	result.Tables, result.MergedCount = MergeTables(result.Tables, opts.Strategy)
	return result, nil
}

// ExtractTables is the minimal-ceremony entry point: it extracts with
// DefaultOptions and returns only the headers-plus-rows pairs, discarding
// captions, anomalies, and the merge count.
func ExtractTables(text string) []TableData {
	result, err := Extract(text, DefaultOptions())
	if err != nil {
		// DefaultOptions always validates.
		return nil
	}
	out := make([]TableData, 0, len(result.Tables))
	for _, t := range result.Tables {
		out = append(out, TableData{Headers: t.Headers, Rows: t.Rows})
	}
	return out
}
