package markdown

import "strings"

// MergeTables collapses continuation tables into the table they continue,
// scanning left to right in document order. A chain of continuations folds
// into its head in one pass; a table that does not merge starts a new chain
// and is never merged backward. The returned count is the number of merge
// operations applied.
func MergeTables(tables []ExtractedTable, strategy MergeStrategy) ([]ExtractedTable, int) {
	if strategy == MergeNone || len(tables) == 0 {
		return tables, 0
	}

	merged := 0
	result := make([]ExtractedTable, 0, len(tables))
	current := tables[0]

	for _, next := range tables[1:] {
		if shouldMerge(&current, &next, strategy) {
			current = mergeTwo(current, next)
			merged++
			continue
		}
		result = append(result, current)
		current = next
	}

	return append(result, current), merged
}

// shouldMerge decides whether next continues prev. Both the continuation
// link (an explicit flag, or captions sharing the same leading table number)
// and the strategy's header rule must hold.
func shouldMerge(prev, next *ExtractedTable, strategy MergeStrategy) bool {
	if !continuationLink(prev, next) {
		return false
	}

	switch strategy {
	case MergeIdenticalHeaders:
		return headersEqual(prev.Headers, next.Headers)
	case MergeCompatibleColumns:
		return HeadersCompatible(prev.Headers, next.Headers)
	default: // MergeNone handled by the caller
		return false
	}
}

func continuationLink(prev, next *ExtractedTable) bool {
	if next.IsContinuation {
		return true
	}
	if prev.Caption == nil || next.Caption == nil {
		return false
	}
	pn := tableNumberKey(captionNumber(*prev.Caption))
	nn := tableNumberKey(captionNumber(*next.Caption))
	return pn != "" && pn == nn
}

// tableNumberKey reduces a caption number token to its digits, tolerating
// footnote or OCR noise glued to the number ("3a" compares as "3").
func tableNumberKey(num string) string {
	return strings.TrimRight(normalizeHeader(num), "abcdefghijklmnopqrstuvwxyz")
}

func headersEqual(h1, h2 []string) bool {
	if len(h1) != len(h2) {
		return false
	}
	for i := range h1 {
		if h1[i] != h2[i] {
			return false
		}
	}
	return true
}

// mergeTwo concatenates next onto head. The chain head keeps its caption and
// continuation flag; the line range grows to span both sources. Row order is
// preserved exactly: head's rows followed by next's rows.
func mergeTwo(head, next ExtractedTable) ExtractedTable {
	rows := make([][]string, 0, len(head.Rows)+len(next.Rows))
	rows = append(rows, head.Rows...)
	rows = append(rows, next.Rows...)

	return ExtractedTable{
		Headers:        head.Headers,
		Rows:           rows,
		Caption:        head.Caption,
		IsContinuation: head.IsContinuation,
		StartLine:      head.StartLine,
		EndLine:        next.EndLine,
		RawMarkdown:    head.RawMarkdown + "\n\n" + next.RawMarkdown,
	}
}
