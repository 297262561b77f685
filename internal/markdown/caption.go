package markdown

import (
	"regexp"
	"strings"
)

// captionLookback bounds the backward scan for a caption above a table.
const captionLookback = 5

var (
	// Manuscript captions: "Table 3. Results", "TABLE 2: Outcomes",
	// "Tbl. 4a - Complications". The number may carry a letter suffix.
	captionPattern = regexp.MustCompile(`(?i)^(?:table|tbl\.?)\s*(\d+[a-z]?)\s*[.:\-–—]?\s*(.*)$`)

	// Parenthesized "(Continued)" / "(cont.)" / "(cont'd)" in any casing.
	// The parentheses are required so that prose like "infection control"
	// does not read as a continuation marker.
	continuationPattern = regexp.MustCompile(`(?i)\(\s*(?:continued|cont\.?|cont'd)\s*\)`)

	// Same markers anchored at the end of a caption, including surrounding
	// punctuation, so they can be cut from the returned text.
	trailingContinuation = regexp.MustCompile(`(?i)(?:^|[\s([.:,;—–-])\s*(?:continued|cont\.?|cont'd)\s*[)\]]?\s*\.?\s*$`)
)

// Caption is a detected table caption.
type Caption struct {
	Text   string // original caption text, minus any trailing continuation marker
	Number string // the "N" of "Table N", e.g. "3" or "3a"
	Bare   bool   // caption is just "Table N" with no description
}

// DetectCaption looks backward from the line above a table block, skipping
// blank and unrelated prose lines within a bounded window, for a caption line
// and a continuation marker. startLine is the block's 1-based first line. Absence of a caption
// is not an error: the caption is nil and only the continuation flag is
// meaningful.
func DetectCaption(lines []string, startLine int) (*Caption, bool) {
	isContinuation := false

	low := startLine - 1 - captionLookback
	if low < 0 {
		low = 0
	}
	for i := startLine - 2; i >= low; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if ClassifyLine(line) != LineOther {
			// Still inside a previous table; captions sit in prose.
			continue
		}

		// Emphasis markers are stripped for matching only; the returned
		// text keeps the author's formatting.
		plain := strings.NewReplacer("**", "", "__", "", "*", "", "_", "").Replace(line)
		plain = strings.TrimSpace(plain)

		m := captionPattern.FindStringSubmatch(plain)
		if m == nil {
			// A plain prose line saying "(Continued)" marks the table as a
			// continuation even without a full caption. Any other prose is
			// skipped: footnotes often sit between a caption and its table.
			if continuationPattern.MatchString(plain) {
				isContinuation = true
			}
			continue
		}

		text := line
		if trailingContinuation.MatchString(text) {
			isContinuation = true
			text = trailingContinuation.ReplaceAllString(text, "")
		}

		desc := strings.TrimSpace(trailingContinuation.ReplaceAllString(m[2], ""))
		bare := desc == ""
		if bare {
			// A bare "Table N" above a table usually means the caption of a
			// split table lost its "(Continued)" marker.
			isContinuation = true
		}

		return &Caption{
			Text:   strings.TrimSpace(text),
			Number: strings.ToLower(m[1]),
			Bare:   bare,
		}, isContinuation
	}

	return nil, isContinuation
}

// captionNumber recovers the leading table number from a caption string,
// or "" when the caption does not follow the "Table N" pattern.
func captionNumber(caption string) string {
	plain := strings.NewReplacer("**", "", "__", "", "*", "", "_", "").Replace(caption)
	m := captionPattern.FindStringSubmatch(strings.TrimSpace(plain))
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}
