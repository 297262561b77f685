package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Formats reported for extracted documents.
const (
	FormatMarkdown = "markdown"
	FormatText     = "text"
	FormatPDF      = "pdf"
)

// supportedExtensions maps file extensions to their document format.
var supportedExtensions = map[string]string{
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".txt":      FormatText,
	".pdf":      FormatPDF,
}

// SupportedFormats returns the file extensions the reader accepts.
func SupportedFormats() []string {
	return []string{".md", ".markdown", ".txt", ".pdf"}
}

// FormatForPath returns the document format for a file path, or "" when the
// extension is not supported.
func FormatForPath(path string) string {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Reader handles document file reading operations
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a new document reader with the specified constraints
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ReadDocument loads the text content of a markdown, plain-text or PDF file.
func (r *Reader) ReadDocument(path string) (string, string, error) {
	if path == "" {
		return "", "", fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", "", fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return "", "", fmt.Errorf("cannot access file: %w", err)
	}

	if err := r.validateDocumentFile(path, fileInfo); err != nil {
		return "", "", err
	}

	format := FormatForPath(path)
	var content string
	switch format {
	case FormatPDF:
		content, err = r.readPDF(path)
	default:
		content, err = r.readTextFile(path)
	}
	if err != nil {
		return "", "", err
	}

	return content, format, nil
}

// validateDocumentFile performs basic validation on a document file
func (r *Reader) validateDocumentFile(path string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	if FormatForPath(path) == "" {
		return fmt.Errorf("unsupported file type: %s (supported: %s)",
			path, strings.Join(SupportedFormats(), ", "))
	}

	if fileInfo.Size() > r.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	return nil
}

// readTextFile reads a markdown or plain-text file as UTF-8
func (r *Reader) readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8 text: %s", path)
	}

	return string(data), nil
}

// readPDF extracts plain text from a PDF, page by page
func (r *Reader) readPDF(path string) (string, error) {
	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var builder strings.Builder
	totalLength := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// Continue with other pages even if one fails
			continue
		}

		// Check if adding this content would exceed the limit
		if totalLength+len(content) > r.maxTextSize {
			remaining := r.maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}

		builder.WriteString(content)
		totalLength += len(content)

		// Blank line between pages so a table ending on one page does not
		// run into the next page's prose.
		if pageNum < pdfReader.NumPage() {
			builder.WriteString("\n\n")
		}
	}

	text := builder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content could be extracted from PDF")
	}

	return text, nil
}
