package markdown

import "fmt"

// RowLine is one tokenized data row together with its 1-based source line.
type RowLine struct {
	Line  int
	Cells []string
}

// TableBlock is a maximal contiguous run of table lines: a header row, its
// separator, and zero or more data rows.
type TableBlock struct {
	StartLine int // 1-based line of the header row
	EndLine   int // 1-based line of the last row in the block
	Header    []string
	DataRows  []RowLine
	Raw       []string // the block's source lines, verbatim
}

// ScanBlocks walks the document once and returns every table block in
// document order. A plausible header whose separator has a different cell
// count is recorded as an anomaly and scanning resumes on the next line;
// a malformed block never aborts the document.
func ScanBlocks(lines []string) ([]TableBlock, []ExtractionError) {
	var blocks []TableBlock
	var errs []ExtractionError

	i := 0
	for i < len(lines) {
		if ClassifyLine(lines[i]) != LineRow {
			i++
			continue
		}
		if i+1 >= len(lines) || ClassifyLine(lines[i+1]) != LineSeparator {
			i++
			continue
		}

		header := ParseRow(lines[i])
		sep := ParseRow(lines[i+1])
		if len(sep) != len(header) {
			errs = append(errs, ExtractionError{
				Line:    i + 2,
				Message: fmt.Sprintf("separator has %d cells, header has %d", len(sep), len(header)),
			})
			i++
			continue
		}

		block := TableBlock{
			StartLine: i + 1,
			EndLine:   i + 2,
			Header:    header,
			Raw:       []string{lines[i], lines[i+1]},
		}

		// Data rows run until the first line that is not a plain row.
		j := i + 2
		for j < len(lines) && ClassifyLine(lines[j]) == LineRow {
			block.DataRows = append(block.DataRows, RowLine{Line: j + 1, Cells: ParseRow(lines[j])})
			block.Raw = append(block.Raw, lines[j])
			block.EndLine = j + 1
			j++
		}

		blocks = append(blocks, block)
		i = j
	}

	return blocks, errs
}
