package markdown

import "fmt"

// MergeStrategy controls how adjacent tables split across page breaks are
// combined back into one logical table.
type MergeStrategy string

const (
	// MergeNone never merges tables.
	MergeNone MergeStrategy = "none"
	// MergeIdenticalHeaders merges continuation tables only when their
	// cleaned headers are exactly equal.
	MergeIdenticalHeaders MergeStrategy = "identical_headers"
	// MergeCompatibleColumns merges continuation tables when column counts
	// match and headers are equal after canonicalization, tolerating
	// whitespace, markup remnants, and trailing footnote markers.
	MergeCompatibleColumns MergeStrategy = "compatible_columns"
)

// ParseMergeStrategy converts a configuration string into a MergeStrategy.
// An empty string selects the default (identical_headers).
func ParseMergeStrategy(s string) (MergeStrategy, error) {
	switch MergeStrategy(s) {
	case "":
		return MergeIdenticalHeaders, nil
	case MergeNone, MergeIdenticalHeaders, MergeCompatibleColumns:
		return MergeStrategy(s), nil
	default:
		return "", fmt.Errorf("unknown merge strategy %q (must be one of: none, identical_headers, compatible_columns)", s)
	}
}

// ExtractionError records a non-fatal anomaly encountered while extracting,
// such as a data row whose length does not match the header.
type ExtractionError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e ExtractionError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ExtractedTable is a single table with its source metadata. Rows are always
// rectangular: every row has exactly len(Headers) cells.
type ExtractedTable struct {
	Headers        []string   `json:"headers"`
	Rows           [][]string `json:"rows"`
	Caption        *string    `json:"caption,omitempty"`
	IsContinuation bool       `json:"is_continuation"`
	StartLine      int        `json:"start_line"` // 1-based, inclusive
	EndLine        int        `json:"end_line"`   // 1-based, inclusive
	RawMarkdown    string     `json:"-"`
}

// ColumnCount returns the number of columns.
func (t *ExtractedTable) ColumnCount() int {
	return len(t.Headers)
}

// RowCount returns the number of data rows.
func (t *ExtractedTable) RowCount() int {
	return len(t.Rows)
}

// ExtractionResult is the complete outcome of extracting one document.
type ExtractionResult struct {
	Tables      []ExtractedTable  `json:"tables"`
	Errors      []ExtractionError `json:"errors,omitempty"`
	MergedCount int               `json:"merged_count"`
}

// HasErrors reports whether any non-fatal anomalies were recorded.
func (r *ExtractionResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// TableData is the minimal headers-plus-rows view returned by the simple API.
type TableData struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}
