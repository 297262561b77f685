package markdown

import (
	"regexp"
	"strings"
)

// LineKind is the classification of a single document line.
type LineKind int

const (
	// LineOther is prose, a blank line, or anything else that is not part
	// of a table.
	LineOther LineKind = iota
	// LineRow is a table row (header or data).
	LineRow
	// LineSeparator is the dash/colon row between header and data.
	LineSeparator
)

// Separator cells are dashes with optional alignment colons: ---, :---,
// ---:, :---:.
var separatorCellPattern = regexp.MustCompile(`^:?-+:?$`)

// ClassifyLine decides whether a line is a table row, a separator row, or
// neither. It is a pure function of the line's text.
func ClassifyLine(line string) LineKind {
	if !hasUnescapedPipe(strings.TrimSpace(line)) {
		return LineOther
	}
	cells := ParseRow(line)
	if isSeparatorCells(cells) {
		return LineSeparator
	}
	return LineRow
}

// ParseRow tokenizes a table row line into ordered cell strings. Enclosing
// pipes are discarded, each cell is trimmed, and escaped pipes (`\|`) become
// literal pipes in the cell value.
func ParseRow(line string) []string {
	s := strings.TrimSpace(line)
	cells := splitUnescaped(s)

	// Enclosing pipes produce one empty field at each end.
	if len(cells) > 1 && cells[0] == "" && strings.HasPrefix(s, "|") {
		cells = cells[1:]
	}
	if len(cells) > 1 && cells[len(cells)-1] == "" && strings.HasSuffix(s, "|") {
		cells = cells[:len(cells)-1]
	}

	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// splitUnescaped splits s on pipes that are not preceded by a backslash.
// The escape itself is consumed: `a\|b` yields one cell containing `a|b`.
func splitUnescaped(s string) []string {
	var cells []string
	var b strings.Builder
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			if r != '|' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			cells = append(cells, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		b.WriteByte('\\')
	}
	return append(cells, b.String())
}

func hasUnescapedPipe(s string) bool {
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			return true
		}
	}
	return false
}

// isSeparatorCells reports whether an already-parsed row is a separator row.
// A row with zero cells, or any cell that is not a dash/colon token, is not
// a separator.
func isSeparatorCells(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !separatorCellPattern.MatchString(strings.TrimSpace(c)) {
			return false
		}
	}
	return true
}
