// Package mcp exposes table extraction as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mdtex/mcp-table-extractor/internal/config"
	"github.com/mdtex/mcp-table-extractor/internal/descriptions"
	"github.com/mdtex/mcp-table-extractor/internal/document"
	"github.com/mdtex/mcp-table-extractor/internal/markdown"
)

// Server represents the MCP server instance
type Server struct {
	config          *config.Config
	documentService *document.Service
	mcpServer       *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, documentService *document.Service) (*Server, error) {
	if documentService == nil {
		return nil, fmt.Errorf("documentService cannot be nil")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:          cfg,
		documentService: documentService,
		mcpServer:       mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractFileTool := mcp.NewTool(
		"table_extract_file",
		mcp.WithDescription(descriptions.GetToolDescription("table_extract_file")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the document file (.md, .markdown, .txt or .pdf)"),
		),
		mcp.WithString("merge_strategy",
			mcp.Description("Continuation merge strategy: none, identical_headers or compatible_columns "+
				"(uses server default if empty)"),
		),
	)
	s.mcpServer.AddTool(extractFileTool, s.handleExtractFile)

	extractTextTool := mcp.NewTool(
		"table_extract_text",
		mcp.WithDescription(descriptions.GetToolDescription("table_extract_text")),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Document text to scan for markdown tables"),
		),
		mcp.WithString("merge_strategy",
			mcp.Description("Continuation merge strategy: none, identical_headers or compatible_columns "+
				"(uses server default if empty)"),
		),
	)
	s.mcpServer.AddTool(extractTextTool, s.handleExtractText)

	validateFileTool := mcp.NewTool(
		"table_validate_file",
		mcp.WithDescription(descriptions.GetToolDescription("table_validate_file")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the document file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)

	searchDirectoryTool := mcp.NewTool(
		"table_search_directory",
		mcp.WithDescription(descriptions.GetToolDescription("table_search_directory")),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy matching"),
		),
	)
	s.mcpServer.AddTool(searchDirectoryTool, s.handleSearchDirectory)

	serverInfoTool := mcp.NewTool(
		"table_server_info",
		mcp.WithDescription(descriptions.GetToolDescription("table_server_info")),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions

func (s *Server) handleExtractFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := document.ExtractFileRequest{Path: path}
	if strategy, ok := request.GetArguments()["merge_strategy"].(string); ok {
		req.MergeStrategy = strategy
	}

	result, err := s.documentService.ExtractFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatExtractResult(result)), nil
}

func (s *Server) handleExtractText(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := document.ExtractTextRequest{Text: text}
	if strategy, ok := request.GetArguments()["merge_strategy"].(string); ok {
		req.MergeStrategy = strategy
	}

	result, err := s.documentService.ExtractText(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatExtractResult(result)), nil
}

func (s *Server) handleValidateFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.documentService.ValidateFile(document.ValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("Document %s is valid and readable (%s)", result.Path, result.Format)
	} else {
		responseText = fmt.Sprintf("Document validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleSearchDirectory(_ context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.DocumentDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	req := document.SearchDirectoryRequest{
		Directory: directory,
		Query:     query,
	}

	result, err := s.documentService.SearchDirectory(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.TotalCount == 0 {
		responseText = fmt.Sprintf("No documents found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
	} else {
		responseText = s.formatSearchDirectoryResult(result)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleServerInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := document.ServerInfoRequest{}
	result, err := s.documentService.ServerInfo(req, s.config.ServerName, s.config.Version, s.config.DocumentDirectory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatServerInfoResult(result)), nil
}

// Formatting methods

func (s *Server) formatExtractResult(result *document.ExtractTablesResult) string {
	var text string
	if result.Path != "" {
		text = fmt.Sprintf("Extracted %d table(s) from %s (%s)\n", result.TableCount, result.Path, result.Format)
	} else {
		text = fmt.Sprintf("Extracted %d table(s) from provided text\n", result.TableCount)
	}

	if result.MergedCount > 0 {
		text += fmt.Sprintf("Merged %d continuation fragment(s)\n", result.MergedCount)
	}

	if result.TableCount == 0 {
		text += "\nNo pipe-delimited markdown tables were found. If the document holds tables in " +
			"another representation, convert it to markdown first or extract the values manually.\n"
	}

	for i, table := range result.Tables {
		text += fmt.Sprintf("\nTable %d (lines %d-%d", i+1, table.StartLine, table.EndLine)
		if table.Caption != nil {
			text += fmt.Sprintf(", caption: %s", *table.Caption)
		}
		text += ")\n"
		text += s.formatTable(table)
	}

	if len(result.Errors) > 0 {
		text += fmt.Sprintf("\nAnomalies (%d):\n", len(result.Errors))
		for _, e := range result.Errors {
			text += fmt.Sprintf("  line %d: %s\n", e.Line, e.Message)
		}
	}

	return text
}

func (s *Server) formatTable(table markdown.ExtractedTable) string {
	var b strings.Builder
	b.WriteString("  " + strings.Join(table.Headers, " | ") + "\n")
	for _, row := range table.Rows {
		b.WriteString("  " + strings.Join(row, " | ") + "\n")
	}
	return b.String()
}

func (s *Server) formatSearchDirectoryResult(result *document.SearchDirectoryResult) string {
	text := fmt.Sprintf("Found %d document(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf("Search query: %s\n", result.SearchQuery)
	}
	text += "\nFiles:\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(result.Files)-1 {
			text += "\n"
		}
	}

	return text
}

func (s *Server) formatServerInfoResult(result *document.ServerInfoResult) string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("📁 Default Directory: %s\n", result.DefaultDirectory)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n", result.MaxFileSize/(1024*1024))
	text += fmt.Sprintf("🔗 Merge Strategy: %s\n\n", result.MergeStrategy)

	// Directory contents
	if len(result.DirectoryContents) > 0 {
		text += fmt.Sprintf("📂 Directory Contents (%d documents found):\n", len(result.DirectoryContents))
		for i, file := range result.DirectoryContents {
			if i >= 10 { // Limit to first 10 files for readability
				text += fmt.Sprintf("   ... and %d more files\n", len(result.DirectoryContents)-10)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		text += "\n"
	} else {
		text += "📂 Directory Contents: No documents found in default directory\n\n"
	}

	// Available tools
	text += "🛠️  Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	// Supported formats
	if len(result.SupportedFormats) > 0 {
		text += "\n📄 Supported Document Formats:\n"
		for _, format := range result.SupportedFormats {
			text += fmt.Sprintf("  • %s\n", format)
		}
	}

	// Usage guidance
	text += "\n" + result.UsageGuidance

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting table extraction MCP server in stdio mode")
		log.Printf("Document directory: %s", s.config.DocumentDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// For now, we'll just use stdio mode since the mark3labs library
	// handles the transport differently
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
