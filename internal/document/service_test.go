package document

import (
	"strings"
	"testing"

	"github.com/mdtex/mcp-table-extractor/internal/markdown"
)

func newTestService(t *testing.T) (string, *Service) {
	t.Helper()
	dir := t.TempDir()

	service, err := NewService(1024*1024, dir, markdown.DefaultOptions())
	if err != nil {
		t.Fatalf("NewService() error: %v", err)
	}
	return dir, service
}

func TestNewService(t *testing.T) {
	_, service := newTestService(t)

	if service.reader == nil {
		t.Error("reader component should not be nil")
	}
	if service.validator == nil {
		t.Error("validator component should not be nil")
	}
	if service.search == nil {
		t.Error("search component should not be nil")
	}
	if service.pathValidator == nil {
		t.Error("pathValidator component should not be nil")
	}
}

func TestNewServiceEmptyDirectory(t *testing.T) {
	if _, err := NewService(1024, "", markdown.DefaultOptions()); err == nil {
		t.Error("NewService() should reject an empty directory")
	}
}

func TestServiceExtractFile(t *testing.T) {
	dir, service := newTestService(t)
	path := writeTempFile(t, dir, "tables.md",
		"Table 1. Outcomes\n\n| Study | N |\n| --- | --- |\n| A | 42 |\n")

	result, err := service.ExtractFile(ExtractFileRequest{Path: path})
	if err != nil {
		t.Fatalf("ExtractFile() error: %v", err)
	}

	if result.TableCount != 1 {
		t.Fatalf("TableCount = %d, want 1", result.TableCount)
	}
	if result.Format != FormatMarkdown {
		t.Errorf("Format = %q, want %q", result.Format, FormatMarkdown)
	}
	table := result.Tables[0]
	if table.Caption == nil || *table.Caption != "Table 1. Outcomes" {
		t.Errorf("Caption = %v", table.Caption)
	}
	if len(table.Rows) != 1 || table.Rows[0][1] != "42" {
		t.Errorf("Rows = %v", table.Rows)
	}
}

func TestServiceExtractFileOutsideDirectory(t *testing.T) {
	_, service := newTestService(t)

	other := t.TempDir()
	path := writeTempFile(t, other, "outside.md", "| A |\n| --- |\n")

	_, err := service.ExtractFile(ExtractFileRequest{Path: path})
	if err == nil || !strings.Contains(err.Error(), "security validation failed") {
		t.Errorf("expected security error, got %v", err)
	}
}

func TestServiceExtractFileStrategyOverride(t *testing.T) {
	dir, service := newTestService(t)
	content := `Table 2. Events

| Event | N |
| --- | --- |
| Leak | 3 |

Table 2. Events (Continued)

| Event | N |
| --- | --- |
| Bleed | 5 |
`
	path := writeTempFile(t, dir, "split.md", content)

	// Default strategy merges the continuation.
	merged, err := service.ExtractFile(ExtractFileRequest{Path: path})
	if err != nil {
		t.Fatalf("ExtractFile() error: %v", err)
	}
	if merged.TableCount != 1 || merged.MergedCount != 1 {
		t.Errorf("default strategy: tables=%d merged=%d, want 1/1", merged.TableCount, merged.MergedCount)
	}

	// Per-request override disables merging.
	raw, err := service.ExtractFile(ExtractFileRequest{Path: path, MergeStrategy: "none"})
	if err != nil {
		t.Fatalf("ExtractFile() with override error: %v", err)
	}
	if raw.TableCount != 2 || raw.MergedCount != 0 {
		t.Errorf("none strategy: tables=%d merged=%d, want 2/0", raw.TableCount, raw.MergedCount)
	}

	// Unknown strategy is rejected.
	if _, err := service.ExtractFile(ExtractFileRequest{Path: path, MergeStrategy: "fuzzy"}); err == nil {
		t.Error("expected error for unknown merge strategy")
	}
}

func TestServiceExtractText(t *testing.T) {
	_, service := newTestService(t)

	result, err := service.ExtractText(ExtractTextRequest{Text: "| A | B |\n| --- | --- |\n| 1 | 2 |"})
	if err != nil {
		t.Fatalf("ExtractText() error: %v", err)
	}
	if result.TableCount != 1 {
		t.Errorf("TableCount = %d, want 1", result.TableCount)
	}
	if result.Format != FormatText {
		t.Errorf("Format = %q, want %q", result.Format, FormatText)
	}

	if _, err := service.ExtractText(ExtractTextRequest{}); err == nil {
		t.Error("expected error for empty text")
	}
}

func TestServiceValidateFile(t *testing.T) {
	dir, service := newTestService(t)
	path := writeTempFile(t, dir, "ok.md", "content")

	result, err := service.ValidateFile(ValidateFileRequest{Path: path})
	if err != nil {
		t.Fatalf("ValidateFile() error: %v", err)
	}
	if !result.Valid {
		t.Errorf("ValidateFile() valid = false, message: %s", result.Message)
	}
}

func TestServiceSearchDirectoryDefaultsToConfigured(t *testing.T) {
	dir, service := newTestService(t)
	writeTempFile(t, dir, "doc.md", "content")

	result, err := service.SearchDirectory(SearchDirectoryRequest{})
	if err != nil {
		t.Fatalf("SearchDirectory() error: %v", err)
	}
	if result.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", result.TotalCount)
	}
}

func TestServiceServerInfo(t *testing.T) {
	dir, service := newTestService(t)
	writeTempFile(t, dir, "doc.md", "content")

	info, err := service.ServerInfo(ServerInfoRequest{}, "mcp-table-extractor", "1.0.0", dir)
	if err != nil {
		t.Fatalf("ServerInfo() error: %v", err)
	}

	if info.ServerName != "mcp-table-extractor" || info.Version != "1.0.0" {
		t.Errorf("identity = %s/%s", info.ServerName, info.Version)
	}
	if info.MergeStrategy != "identical_headers" {
		t.Errorf("MergeStrategy = %q", info.MergeStrategy)
	}
	if len(info.AvailableTools) != 5 {
		t.Errorf("AvailableTools = %d, want 5", len(info.AvailableTools))
	}
	if len(info.DirectoryContents) != 1 {
		t.Errorf("DirectoryContents = %d, want 1", len(info.DirectoryContents))
	}
	if len(info.SupportedFormats) == 0 {
		t.Error("SupportedFormats should not be empty")
	}
}
