package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	TableExtractFileDescription = `Extract markdown tables from a document file with captions and source line ranges.

**When to use:** A manuscript, report, or converted document on disk contains pipe-delimited tables you need as structured data.

**Why it's useful:** Handles the messy reality of converted documents: tables split across page breaks are merged back together, "Table N." captions are attached, sub-header rows are folded into column names, and HTML remnants in cells are stripped.

**Examples:**
• Clinical manuscript: "Extract all tables from outcomes-study.md with their captions"
• Converted PDF: "Pull the complications table out of manuscript.pdf"
• Continuation handling: "Extract Table 3 from paper.md even though it spans two pages"

**Common workflows:**
1. Data Analysis: Extract tables → Review captions and line ranges → Feed rows downstream
2. Document QA: Extract → Check 'errors' for malformed rows → Fix the source
3. Split Tables: Extract with identical_headers (default) → Check merged_count

**Best practices:** Use absolute paths. Pass merge_strategy=compatible_columns when continuation headers carry footnote markers; merge_strategy=none to see the raw fragments.`

	TableExtractTextDescription = `Extract markdown tables from raw text provided directly in the request.

**When to use:** The document content is already in hand (pasted text, an earlier tool's output) and writing it to disk first would be a detour.

**Why it's useful:** Same extraction pipeline as table_extract_file (captions, continuation merging, sub-header folding, per-line anomaly reporting) without touching the filesystem.

**Examples:**
• Pasted content: "Extract the tables from this markdown I copied from a wiki page"
• Pipeline step: "Take the text another tool produced and structure its tables"

**Best practices:** Preserve the original line breaks so the reported line numbers stay meaningful.`

	TableValidateFileDescription = `Verify a document file is readable before attempting table extraction.

**When to use:** Before processing unknown files, especially in automated workflows or when handling user-supplied paths.

**Why it's useful:** Catches unsupported formats, empty or oversized files, non-UTF-8 text and structurally broken PDFs early, with a specific message instead of a mid-extraction failure.

**Examples:**
• Batch safety: "Validate every file in /manuscripts/ before bulk extraction"
• Upload check: "Confirm submitted-paper.pdf is a readable PDF"

**Best practices:** Run this first in automated workflows; a false result includes the reason in 'message'.`

	TableSearchDirectoryDescription = `Discover markdown, text and PDF documents in a directory with fuzzy filename search.

**When to use:** You need to find candidate documents by name fragments, or build an inventory of what is available for extraction.

**Why it's useful:** Walks the directory tree (within the configured bounds), skips unreadable and unsupported files, and supports word-based fuzzy matching on filenames.

**Examples:**
• Find studies: "Search the document directory for files matching 'outcomes 2024'"
• Inventory: "List every document under /manuscripts/"

**Best practices:** Leave 'directory' empty to search the server's configured directory; combine with table_validate_file before heavy processing.`

	TableServerInfoDescription = `Get server status, configuration, available tools, and usage guidance.

**When to use:** Starting a session with the table extraction server, or troubleshooting why files are not being found.

**Why it's useful:** Reports the configured directory and its contents, the active merge strategy, file size limits, and a walkthrough of the extraction workflow.

**Best practices:** Run at the start of a session; the directory listing is capped at 100 files for responsiveness.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"table_extract_file":     TableExtractFileDescription,
	"table_extract_text":     TableExtractTextDescription,
	"table_validate_file":    TableValidateFileDescription,
	"table_search_directory": TableSearchDirectoryDescription,
	"table_server_info":      TableServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
