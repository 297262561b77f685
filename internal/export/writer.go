// Package export serializes extraction results to CSV, JSON or markdown.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mdtex/mcp-table-extractor/internal/markdown"
)

// Supported output formats.
const (
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Formats returns the supported output format names.
func Formats() []string {
	return []string{FormatCSV, FormatJSON, FormatMarkdown}
}

// Write serializes the extraction result to w in the requested format.
func Write(w io.Writer, result *markdown.ExtractionResult, format string) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, result.Tables)
	case FormatJSON:
		return writeJSON(w, result)
	case FormatMarkdown:
		return writeMarkdown(w, result.Tables)
	default:
		return fmt.Errorf("unknown output format %q (must be one of: %s)",
			format, strings.Join(Formats(), ", "))
	}
}

// writeCSV emits one section per table, separated by a blank line. A caption
// becomes a leading comment line so the sections stay self-describing.
func writeCSV(w io.Writer, tables []markdown.ExtractedTable) error {
	for i, table := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		if table.Caption != nil {
			if _, err := fmt.Fprintf(w, "# %s\n", *table.Caption); err != nil {
				return err
			}
		}

		cw := csv.NewWriter(w)
		if err := cw.Write(table.Headers); err != nil {
			return err
		}
		for _, row := range table.Rows {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, result *markdown.ExtractionResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// writeMarkdown renders each table back to pipe-delimited markdown with its
// caption above it.
func writeMarkdown(w io.Writer, tables []markdown.ExtractedTable) error {
	for i, table := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		if table.Caption != nil {
			if _, err := fmt.Fprintf(w, "%s\n\n", *table.Caption); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w, renderRow(table.Headers)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, renderSeparator(len(table.Headers))); err != nil {
			return err
		}
		for _, row := range table.Rows {
			if _, err := fmt.Fprintln(w, renderRow(row)); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, cell := range cells {
		escaped[i] = strings.ReplaceAll(cell, "|", `\|`)
	}
	return "| " + strings.Join(escaped, " | ") + " |"
}

func renderSeparator(columns int) string {
	parts := make([]string, columns)
	for i := range parts {
		parts[i] = "---"
	}
	return "| " + strings.Join(parts, " | ") + " |"
}
