// Package document provides the file-facing service behind the MCP tools:
// reading markdown, text and PDF manuscripts, validating them, searching the
// configured directory and running table extraction over their content.
package document

import (
	"fmt"
	"time"

	"github.com/mdtex/mcp-table-extractor/internal/document/security"
	"github.com/mdtex/mcp-table-extractor/internal/markdown"
)

// Service handles document operations by orchestrating the reader, validator
// and search components around the extraction pipeline
type Service struct {
	maxFileSize   int64
	options       markdown.Options
	reader        *Reader
	validator     *Validator
	search        *Search
	pathValidator *security.PathValidator
}

// NewService creates a new document service with all components
func NewService(maxFileSize int64, configuredDirectory string, options markdown.Options) (*Service, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		maxFileSize:   maxFileSize,
		options:       options,
		reader:        NewReader(maxFileSize),
		validator:     NewValidator(maxFileSize),
		search:        NewSearch(maxFileSize),
		pathValidator: pathValidator,
	}, nil
}

// ExtractFile reads a document file and extracts its tables
func (s *Service) ExtractFile(req ExtractFileRequest) (*ExtractTablesResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	content, format, err := s.reader.ReadDocument(req.Path)
	if err != nil {
		return nil, err
	}

	opts, err := s.requestOptions(req.MergeStrategy)
	if err != nil {
		return nil, err
	}

	extraction, err := markdown.Extract(content, opts)
	if err != nil {
		return nil, err
	}

	return &ExtractTablesResult{
		Path:        req.Path,
		Format:      format,
		Tables:      extraction.Tables,
		TableCount:  len(extraction.Tables),
		MergedCount: extraction.MergedCount,
		Errors:      extraction.Errors,
	}, nil
}

// ExtractText extracts tables from raw text provided by the caller
func (s *Service) ExtractText(req ExtractTextRequest) (*ExtractTablesResult, error) {
	if req.Text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	opts, err := s.requestOptions(req.MergeStrategy)
	if err != nil {
		return nil, err
	}

	extraction, err := markdown.Extract(req.Text, opts)
	if err != nil {
		return nil, err
	}

	return &ExtractTablesResult{
		Format:      FormatText,
		Tables:      extraction.Tables,
		TableCount:  len(extraction.Tables),
		MergedCount: extraction.MergedCount,
		Errors:      extraction.Errors,
	}, nil
}

// requestOptions applies a per-request merge strategy override
func (s *Service) requestOptions(strategyOverride string) (markdown.Options, error) {
	opts := s.options
	if strategyOverride != "" {
		strategy, err := markdown.ParseMergeStrategy(strategyOverride)
		if err != nil {
			return opts, err
		}
		opts.Strategy = strategy
	}
	return opts, nil
}

// ValidateFile performs validation on a document file
func (s *Service) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.validator.ValidateFile(req)
}

// SearchDirectory searches for document files in a directory
func (s *Service) SearchDirectory(req SearchDirectoryRequest) (*SearchDirectoryResult, error) {
	// If no directory specified, use configured directory
	if req.Directory == "" {
		req.Directory = s.pathValidator.GetConfiguredDirectory()
	}

	// Validate directory is within configured bounds
	if err := s.pathValidator.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	return s.search.SearchDirectory(req)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// Options returns the configured extraction options
func (s *Service) Options() markdown.Options {
	return s.options
}

// IsValidDocument performs a quick validation check on a file
func (s *Service) IsValidDocument(path string) bool {
	return s.validator.IsValidDocument(path)
}

// CountDocumentsInDirectory counts the readable document files in a directory
func (s *Service) CountDocumentsInDirectory(directory string) (int, error) {
	return s.search.CountDocumentsInDirectory(directory)
}

// ServerInfo returns comprehensive server information and usage guidance
func (s *Service) ServerInfo(_ ServerInfoRequest, serverName, version,
	defaultDirectory string,
) (*ServerInfoResult, error) {
	// Validate the default directory is within bounds
	validatedDir := defaultDirectory
	if err := s.pathValidator.ValidateDirectory(defaultDirectory); err != nil {
		// Use the configured directory if validation fails
		validatedDir = s.pathValidator.GetConfiguredDirectory()
	}

	// Get directory contents with a timeout to prevent hanging.
	// Limit to first 100 files for performance.
	directoryContents := []FileInfo{}

	resultChan := make(chan []FileInfo, 1)
	errorChan := make(chan error, 1)

	go func() {
		files, err := s.search.FindDocumentsInDirectoryLimited(validatedDir, 100)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- files
	}()

	select {
	case files := <-resultChan:
		directoryContents = files
	case <-errorChan:
		// Don't fail completely if directory scan fails, just return empty contents
		directoryContents = []FileInfo{}
	case <-time.After(5 * time.Second):
		directoryContents = []FileInfo{}
	}

	availableTools := []ToolInfo{
		{
			Name:        "table_extract_file",
			Description: "Extract markdown tables from a document file",
			Usage: "Use this tool to pull every table out of a markdown, text or PDF manuscript. " +
				"Continuation tables split across pages are merged automatically.",
			Parameters: "path (required): Full absolute path to the document, " +
				"merge_strategy (optional): none, identical_headers or compatible_columns",
		},
		{
			Name:        "table_extract_text",
			Description: "Extract markdown tables from raw text",
			Usage:       "Use this tool when the document content is already in hand, for example pasted text.",
			Parameters: "text (required): Document text to scan, " +
				"merge_strategy (optional): none, identical_headers or compatible_columns",
		},
		{
			Name:        "table_validate_file",
			Description: "Validate that a file is a readable document",
			Usage:       "Use this tool to check a file before attempting extraction.",
			Parameters:  "path (required): Full absolute path to the document",
		},
		{
			Name:        "table_search_directory",
			Description: "Search for document files in a directory with optional fuzzy search",
			Usage: "Use this tool to find markdown, text and PDF files in the default directory " +
				"or any specified directory. Supports fuzzy search by filename.",
			Parameters: "directory (optional): Directory path to search (uses default if empty), " +
				"query (optional): Search query for fuzzy matching",
		},
		{
			Name:        "table_server_info",
			Description: "Get server capabilities, configuration and usage guidance",
			Usage:       "Use this tool first to discover available documents and how to work with them.",
			Parameters:  "none",
		},
	}

	usageGuidance := `Table Extractor MCP Server Usage Guide:

1. START WITH DISCOVERY:
   - Use 'table_search_directory' to find available documents

2. VALIDATE FILES:
   - Use 'table_validate_file' to check a file is readable before extraction

3. EXTRACT TABLES:
   - Use 'table_extract_file' for files on disk, 'table_extract_text' for pasted content
   - Each table carries its caption (when one was found above it), 1-based
     line range in the source, headers and rows
   - 'merged_count' reports how many continuation fragments were folded in
   - 'errors' lists per-line anomalies (malformed separators, short rows);
     these never abort the extraction

4. IF NO TABLES COME BACK:
   - 'table_count' of 0 means the document holds no pipe-delimited tables;
     the content may need conversion to markdown first

IMPORTANT NOTES:
- Always use absolute file paths
- The server can handle files up to ` + fmt.Sprintf("%d", s.maxFileSize/(1024*1024)) + `MB
- PDF text extraction works on text-based PDFs only; scanned images are not OCRed`

	result := &ServerInfoResult{
		ServerName:        serverName,
		Version:           version,
		DefaultDirectory:  validatedDir,
		MaxFileSize:       s.maxFileSize,
		MergeStrategy:     string(s.options.Strategy),
		AvailableTools:    availableTools,
		DirectoryContents: directoryContents,
		UsageGuidance:     usageGuidance,
		SupportedFormats:  SupportedFormats(),
	}

	return result, nil
}
