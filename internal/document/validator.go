package document

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Validator handles document file validation operations
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new document validator with the specified constraints
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidateFile performs comprehensive validation on a document file
func (v *Validator) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	result := &ValidateFileResult{
		Path:   req.Path,
		Valid:  false,
		Format: FormatForPath(req.Path),
	}

	err := v.validateDocumentFile(req.Path)
	if err != nil {
		result.Message = err.Error()
		return result, nil //nolint:nilerr // Return result with validation error, not a processing error
	}

	result.Valid = true
	return result, nil
}

// validateDocumentFile performs detailed validation on a document file
func (v *Validator) validateDocumentFile(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	if err := v.ValidateFileInfo(path, fileInfo); err != nil {
		return err
	}

	if FormatForPath(path) == FormatPDF {
		return v.validatePDF(path)
	}
	return v.validateTextFile(path)
}

// validatePDF runs a relaxed structural validation over the PDF
func (v *Validator) validatePDF(path string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ValidateFile(path, conf); err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}
	return nil
}

// validateTextFile checks that a markdown or text file holds UTF-8 content
func (v *Validator) validateTextFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("file is not valid UTF-8 text: %s", path)
	}
	return nil
}

// IsValidDocument performs a quick check to see if a file is a readable document
func (v *Validator) IsValidDocument(path string) bool {
	return v.validateDocumentFile(path) == nil
}

// ValidateFileInfo performs basic validation on file info without opening the file
func (v *Validator) ValidateFileInfo(path string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	if FormatForPath(path) == "" {
		return fmt.Errorf("unsupported file type: %s", path)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", path)
	}

	if fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), v.maxFileSize)
	}

	return nil
}
