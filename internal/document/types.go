package document

import "github.com/mdtex/mcp-table-extractor/internal/markdown"

// FileInfo represents information about a document file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// Request Types

// ExtractFileRequest represents a request to extract tables from a document file
type ExtractFileRequest struct {
	Path string `json:"path"`
	// MergeStrategy overrides the configured strategy for this request.
	// Empty means use the server default.
	MergeStrategy string `json:"merge_strategy,omitempty"`
}

// ExtractTextRequest represents a request to extract tables from raw text
type ExtractTextRequest struct {
	Text          string `json:"text"`
	MergeStrategy string `json:"merge_strategy,omitempty"`
}

// ValidateFileRequest represents a request to validate a document file
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// SearchDirectoryRequest represents a request to search for document files in a directory
type SearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// ServerInfoRequest represents a request to get server information and capabilities
type ServerInfoRequest struct {
	// No parameters needed for server info
}

// Response Types

// ExtractTablesResult represents the result of a table extraction operation
type ExtractTablesResult struct {
	Path        string                     `json:"path,omitempty"`
	Format      string                     `json:"format"` // "markdown", "text", "pdf"
	Tables      []markdown.ExtractedTable  `json:"tables"`
	TableCount  int                        `json:"table_count"`
	MergedCount int                        `json:"merged_count"`
	Errors      []markdown.ExtractionError `json:"errors,omitempty"`
}

// ValidateFileResult represents the result of a document validation operation
type ValidateFileResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Format  string `json:"format,omitempty"`
	Message string `json:"message,omitempty"`
}

// SearchDirectoryResult represents the result of a document search operation
type SearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}

// ServerInfoResult represents server information and usage guidance
type ServerInfoResult struct {
	ServerName        string     `json:"server_name"`
	Version           string     `json:"version"`
	DefaultDirectory  string     `json:"default_directory"`
	MaxFileSize       int64      `json:"max_file_size"`
	MergeStrategy     string     `json:"merge_strategy"`
	AvailableTools    []ToolInfo `json:"available_tools"`
	DirectoryContents []FileInfo `json:"directory_contents"`
	UsageGuidance     string     `json:"usage_guidance"`
	SupportedFormats  []string   `json:"supported_formats"`
}

// ToolInfo represents information about an available tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}
