package markdown

import (
	"reflect"
	"strings"
	"testing"
)

func TestScanBlocksSingleTable(t *testing.T) {
	lines := []string{
		"Some introduction.",
		"| Name | Age |",
		"| --- | --- |",
		"| Alice | 30 |",
		"| Bob | 25 |",
		"",
		"Closing prose.",
	}

	blocks, errs := ScanBlocks(lines)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}

	b := blocks[0]
	if b.StartLine != 2 || b.EndLine != 5 {
		t.Errorf("block spans %d..%d, want 2..5", b.StartLine, b.EndLine)
	}
	if !reflect.DeepEqual(b.Header, []string{"Name", "Age"}) {
		t.Errorf("header = %#v", b.Header)
	}
	if len(b.DataRows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(b.DataRows))
	}
	if b.DataRows[0].Line != 4 || b.DataRows[1].Line != 5 {
		t.Errorf("data row lines = %d, %d, want 4, 5", b.DataRows[0].Line, b.DataRows[1].Line)
	}
}

func TestScanBlocksMultipleTables(t *testing.T) {
	text := `| A | B |
|---|---|
| 1 | 2 |

Some text between tables.

| X | Y | Z |
|---|---|---|
| a | b | c |`

	blocks, errs := ScanBlocks(strings.Split(text, "\n"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].StartLine != 1 || blocks[1].StartLine != 7 {
		t.Errorf("start lines = %d, %d, want 1, 7", blocks[0].StartLine, blocks[1].StartLine)
	}
	if len(blocks[1].Header) != 3 {
		t.Errorf("second header has %d cells, want 3", len(blocks[1].Header))
	}
}

func TestScanBlocksSeparatorMismatch(t *testing.T) {
	lines := []string{
		"| A | B |",
		"| --- |",
		"| 1 | 2 |",
	}

	blocks, errs := ScanBlocks(lines)
	if len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %d", len(blocks))
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Line != 2 {
		t.Errorf("error line = %d, want 2", errs[0].Line)
	}
	if !strings.Contains(errs[0].Message, "separator has 1 cells, header has 2") {
		t.Errorf("unexpected message: %s", errs[0].Message)
	}
}

func TestScanBlocksMismatchDoesNotLoseLaterTables(t *testing.T) {
	lines := []string{
		"| A | B |",
		"| --- |",
		"",
		"| C | D |",
		"| --- | --- |",
		"| 1 | 2 |",
	}

	blocks, errs := ScanBlocks(lines)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].StartLine != 4 {
		t.Errorf("block start = %d, want 4", blocks[0].StartLine)
	}
}

func TestScanBlocksHeaderAndSeparatorOnly(t *testing.T) {
	lines := []string{"| A | B |", "| --- | --- |"}

	blocks, _ := ScanBlocks(lines)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].EndLine != 2 {
		t.Errorf("end line = %d, want 2", blocks[0].EndLine)
	}
	if len(blocks[0].DataRows) != 0 {
		t.Errorf("expected no data rows, got %d", len(blocks[0].DataRows))
	}
}

func TestScanBlocksRowWithoutSeparatorIsNotATable(t *testing.T) {
	lines := []string{
		"| just | one | row |",
		"and prose right after",
	}

	blocks, errs := ScanBlocks(lines)
	if len(blocks) != 0 || len(errs) != 0 {
		t.Errorf("expected nothing, got %d blocks, %d errors", len(blocks), len(errs))
	}
}
