package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdtex/mcp-table-extractor/internal/markdown"
)

func sampleResult() *markdown.ExtractionResult {
	caption := "Table 1. Outcomes"
	return &markdown.ExtractionResult{
		Tables: []markdown.ExtractedTable{
			{
				Headers:   []string{"Study", "N"},
				Rows:      [][]string{{"A", "42"}, {"B", "17"}},
				Caption:   &caption,
				StartLine: 3,
				EndLine:   6,
			},
			{
				Headers:   []string{"X"},
				Rows:      [][]string{{"1"}},
				StartLine: 10,
				EndLine:   12,
			},
		},
		MergedCount: 0,
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), FormatCSV))

	want := "# Table 1. Outcomes\nStudy,N\nA,42\nB,17\n\nX\n1\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVQuoting(t *testing.T) {
	result := &markdown.ExtractionResult{
		Tables: []markdown.ExtractedTable{
			{
				Headers: []string{"Name", "Note"},
				Rows:    [][]string{{"A", `said "ok", left`}},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, result, FormatCSV))
	assert.Contains(t, buf.String(), `"said ""ok"", left"`)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), FormatJSON))

	var decoded markdown.ExtractionResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Tables, 2)
	assert.Equal(t, "Table 1. Outcomes", *decoded.Tables[0].Caption)
	assert.Equal(t, 3, decoded.Tables[0].StartLine)
	assert.Nil(t, decoded.Tables[1].Caption)
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), FormatMarkdown))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Table 1. Outcomes\n\n"), "caption should lead: %q", out)
	assert.Contains(t, out, "| Study | N |\n| --- | --- |\n| A | 42 |\n| B | 17 |\n")
	assert.Contains(t, out, "| X |\n| --- |\n| 1 |\n")
}

func TestWriteMarkdownEscapesPipes(t *testing.T) {
	result := &markdown.ExtractionResult{
		Tables: []markdown.ExtractedTable{
			{
				Headers: []string{"Expr"},
				Rows:    [][]string{{"a|b"}},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, result, FormatMarkdown))
	assert.Contains(t, buf.String(), `| a\|b |`)
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, sampleResult(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
