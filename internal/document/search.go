package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Search handles document discovery operations
type Search struct {
	maxFileSize int64
	validator   *Validator
}

// NewSearch creates a new document search handler with the specified constraints
func NewSearch(maxFileSize int64) *Search {
	return &Search{
		maxFileSize: maxFileSize,
		validator:   NewValidator(maxFileSize),
	}
}

// isPathWithinDirectory checks if a path is within the specified directory
func (s *Search) isPathWithinDirectory(path, directory string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}

	absDir, err := filepath.Abs(directory)
	if err != nil {
		return false, fmt.Errorf("failed to resolve directory: %w", err)
	}

	// Evaluate any symlinks to get the real path
	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		// If the file doesn't exist yet, just use the absolute path
		if !os.IsNotExist(err) {
			return false, fmt.Errorf("failed to evaluate symlinks: %w", err)
		}
		realPath = absPath
	}

	realDir, err := filepath.EvalSymlinks(absDir)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate directory symlinks: %w", err)
	}

	realPath = filepath.Clean(realPath)
	realDir = filepath.Clean(realDir)

	if !strings.HasSuffix(realDir, string(filepath.Separator)) {
		realDir += string(filepath.Separator)
	}

	return strings.HasPrefix(realPath, realDir) || realPath == strings.TrimSuffix(realDir, string(filepath.Separator)), nil
}

// SearchDirectory searches for document files in the specified directory
func (s *Search) SearchDirectory(req SearchDirectoryRequest) (*SearchDirectoryResult, error) {
	if req.Directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	if _, err := os.Stat(req.Directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", req.Directory)
	}

	var files []FileInfo
	query := strings.ToLower(strings.TrimSpace(req.Query))

	// Resolve the search directory to prevent traversal
	absDirectory, err := filepath.Abs(req.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	err = filepath.Walk(absDirectory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Continue walking even if we encounter an error with a specific file
			return nil //nolint:nilerr // Intentionally continue on file errors
		}

		// Security check: ensure path is within the configured directory
		withinDir, err := s.isPathWithinDirectory(path, absDirectory)
		if err != nil || !withinDir {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if FormatForPath(info.Name()) == "" {
			return nil
		}

		// Quick validation without opening the file
		if err := s.validator.ValidateFileInfo(path, info); err != nil {
			return nil //nolint:nilerr // Intentionally continue on validation errors
		}

		// Apply query filter if provided
		if query != "" && !s.matchesQuery(info.Name(), query) {
			return nil
		}

		files = append(files, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	result := &SearchDirectoryResult{
		Files:       files,
		TotalCount:  len(files),
		Directory:   absDirectory,
		SearchQuery: req.Query,
	}

	return result, nil
}

// FindDocumentsInDirectory finds all document files in a directory without query filtering
func (s *Search) FindDocumentsInDirectory(directory string) ([]FileInfo, error) {
	result, err := s.SearchDirectory(SearchDirectoryRequest{Directory: directory})
	if err != nil {
		return nil, err
	}
	return result.Files, nil
}

// FindDocumentsInDirectoryLimited finds document files with a cap on the number of results
func (s *Search) FindDocumentsInDirectoryLimited(directory string, limit int) ([]FileInfo, error) {
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	if _, err := os.Stat(directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}

	var files []FileInfo
	foundCount := 0

	absDirectory, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	err = filepath.WalkDir(absDirectory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		withinDir, err := s.isPathWithinDirectory(path, absDirectory)
		if err != nil || !withinDir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			// Skip hidden directories to improve performance
			if strings.HasPrefix(d.Name(), ".") && path != absDirectory {
				return filepath.SkipDir
			}
			return nil
		}

		if limit > 0 && foundCount >= limit {
			return filepath.SkipAll
		}

		if FormatForPath(d.Name()) == "" {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		if err := s.validator.ValidateFileInfo(path, info); err != nil {
			return nil
		}

		files = append(files, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		foundCount++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	return files, nil
}

// CountDocumentsInDirectory counts the number of readable document files in a directory
func (s *Search) CountDocumentsInDirectory(directory string) (int, error) {
	files, err := s.FindDocumentsInDirectory(directory)
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

// matchesQuery performs fuzzy matching on the filename
func (s *Search) matchesQuery(filename, query string) bool {
	if query == "" {
		return true
	}

	fileName := strings.ToLower(filename)

	// Exact substring match
	if strings.Contains(fileName, query) {
		return true
	}

	// Remove extension for name-only matching
	nameWithoutExt := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if strings.Contains(nameWithoutExt, query) {
		return true
	}

	// Word-based matching: every query word must appear somewhere in the name
	words := s.splitIntoWords(nameWithoutExt)
	queryWords := s.splitIntoWords(query)

	for _, queryWord := range queryWords {
		found := false
		for _, word := range words {
			if strings.Contains(word, queryWord) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// splitIntoWords splits a string into words using common separators
func (s *Search) splitIntoWords(text string) []string {
	separators := []string{" ", "_", "-", ".", "(", ")", "[", "]"}

	words := []string{text}
	for _, sep := range separators {
		var newWords []string
		for _, word := range words {
			parts := strings.Split(word, sep)
			for _, part := range parts {
				if part != "" {
					newWords = append(newWords, strings.ToLower(part))
				}
			}
		}
		words = newWords
	}

	return words
}
