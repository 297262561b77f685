package markdown

import (
	"fmt"
	"strings"
)

// BuildTable assembles one scanned block plus its cleaned headers and caption
// metadata into an ExtractedTable. Rows shorter than the header are
// right-padded with empty cells, longer rows are right-truncated, and each
// mismatch is recorded as a non-fatal anomaly. BuildTable never fails; the
// worst case is a table with zero data rows.
func BuildTable(block TableBlock, headers []string, caption *Caption, isContinuation bool, dataRows []RowLine) (ExtractedTable, []ExtractionError) {
	var errs []ExtractionError

	rows := make([][]string, 0, len(dataRows))
	for _, dr := range dataRows {
		cells := make([]string, len(dr.Cells))
		for i, c := range dr.Cells {
			cells[i] = CleanCell(c)
		}

		if len(cells) != len(headers) {
			errs = append(errs, ExtractionError{
				Line:    dr.Line,
				Message: fmt.Sprintf("row length %d, expected %d", len(cells), len(headers)),
			})
			if len(cells) > len(headers) {
				cells = cells[:len(headers)]
			} else {
				for len(cells) < len(headers) {
					cells = append(cells, "")
				}
			}
		}
		rows = append(rows, cells)
	}

	table := ExtractedTable{
		Headers:        headers,
		Rows:           rows,
		IsContinuation: isContinuation,
		StartLine:      block.StartLine,
		EndLine:        block.EndLine,
		RawMarkdown:    strings.Join(block.Raw, "\n"),
	}
	if caption != nil {
		text := caption.Text
		table.Caption = &text
	}
	return table, errs
}
