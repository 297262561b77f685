package markdown

import (
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// DefaultSubHeaderThreshold is the fraction of empty cells above which a row
// following the separator is treated as a sub-header. Folding requires
// strictly more than this fraction, so the default means "more than half of
// the columns are empty".
const DefaultSubHeaderThreshold = 0.5

// CleanCell strips HTML artifacts from one cell and collapses the resulting
// whitespace. Line-break remnants such as "Wound<br>Dehiscence" become a
// single space-joined string. Entities are decoded along the way.
func CleanCell(s string) string {
	if strings.ContainsAny(s, "<&") {
		s = stripMarkup(s)
	}
	return collapseWhitespace(s)
}

// CleanHeaders cleans a raw header row and, when the row following the
// separator qualifies as a sub-header, folds it into composite column names.
// It returns the cleaned headers and whether the sub-header row was consumed.
func CleanHeaders(headerCells, nextRow []string, threshold float64, foldSubHeaders bool) ([]string, bool) {
	headers := make([]string, len(headerCells))
	for i, h := range headerCells {
		headers[i] = CleanCell(h)
	}

	if !foldSubHeaders || nextRow == nil || !isSubHeaderRow(nextRow, len(headers), threshold) {
		return headers, false
	}

	for i := range headers {
		if i >= len(nextRow) {
			break
		}
		sub := CleanCell(nextRow[i])
		switch {
		case sub == "":
			// keep the main header
		case headers[i] == "":
			headers[i] = sub
		default:
			headers[i] = headers[i] + " " + sub
		}
	}
	return headers, true
}

// isSubHeaderRow reports whether strictly more than threshold of the table's
// columns are empty in the given row. Cells beyond the column count are
// ignored; missing cells count as empty.
func isSubHeaderRow(cells []string, columns int, threshold float64) bool {
	if columns == 0 {
		return false
	}
	empty := 0
	for i := 0; i < columns; i++ {
		if i >= len(cells) || strings.TrimSpace(cells[i]) == "" {
			empty++
		}
	}
	return float64(empty)/float64(columns) > threshold
}

// NormalizeHeaders returns the canonical comparison form of each header:
// NFKC-folded, lower-cased, alphanumerics only. The canonical form is used
// for equality checks, never for display.
func NormalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = normalizeHeader(h)
	}
	return out
}

func normalizeHeader(s string) string {
	// NFKC folds superscript footnote markers (¹ ²) to plain digits so they
	// can be recognized as trailing suffixes.
	s = norm.NFKC.String(s)
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// HeadersCompatible reports whether two header sequences canonicalize to the
// same form, either directly or after stripping trailing digit suffixes
// (footnote markers glued to a header on one page but not the other). This
// is the comparison rule behind MergeCompatibleColumns.
func HeadersCompatible(h1, h2 []string) bool {
	if len(h1) != len(h2) {
		return false
	}
	n1 := NormalizeHeaders(h1)
	n2 := NormalizeHeaders(h2)
	equal := true
	for i := range n1 {
		if n1[i] != n2[i] {
			equal = false
			break
		}
	}
	if equal {
		return true
	}
	for i := range n1 {
		if stripFootnoteSuffix(n1[i]) != stripFootnoteSuffix(n2[i]) {
			return false
		}
	}
	return true
}

// stripFootnoteSuffix removes trailing digits from a normalized header.
// All-digit headers keep their digits: "2023" must not compare equal to
// "1999".
func stripFootnoteSuffix(s string) string {
	stripped := strings.TrimRight(s, "0123456789")
	if stripped == "" {
		return s
	}
	return stripped
}

// stripMarkup drops HTML tags and decodes entities, leaving a space where a
// tag stood so "A<br>B" keeps its word boundary.
func stripMarkup(s string) string {
	tz := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch tz.Next() {
		case html.ErrorToken:
			// An unterminated "<" at the end of the cell ("males<females")
			// is data, not a tag. The tokenizer buffers it as the raw bytes
			// of the EOF token; keep them.
			if tz.Err() == io.EOF {
				b.Write(tz.Raw())
			}
			return b.String()
		case html.TextToken:
			b.WriteString(tz.Token().Data)
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
