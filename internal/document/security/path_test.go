package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewPathValidator(t *testing.T) {
	if _, err := NewPathValidator(""); err == nil {
		t.Error("NewPathValidator should reject an empty directory")
	}

	v, err := NewPathValidator("/some/dir")
	if err != nil {
		t.Fatalf("NewPathValidator() error: %v", err)
	}
	if v.GetConfiguredDirectory() != "/some/dir" {
		t.Errorf("GetConfiguredDirectory() = %s", v.GetConfiguredDirectory())
	}
}

func TestValidatePathWithinDirectory(t *testing.T) {
	dir := t.TempDir()
	inside := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(inside, []byte("x"), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	v, err := NewPathValidator(dir)
	if err != nil {
		t.Fatalf("NewPathValidator() error: %v", err)
	}

	if err := v.ValidatePath(inside); err != nil {
		t.Errorf("ValidatePath(inside) error: %v", err)
	}
	if err := v.ValidatePath(dir); err != nil {
		t.Errorf("ValidatePath(root) error: %v", err)
	}
	if err := v.ValidatePath(""); err == nil {
		t.Error("ValidatePath should reject an empty path")
	}
}

func TestValidatePathOutsideDirectory(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()

	v, err := NewPathValidator(dir)
	if err != nil {
		t.Fatalf("NewPathValidator() error: %v", err)
	}

	outside := filepath.Join(other, "doc.md")
	if err := v.ValidatePath(outside); err == nil {
		t.Error("ValidatePath should reject a path outside the configured directory")
	}

	// Traversal out of the directory is caught after cleaning.
	traversal := filepath.Join(dir, "..", filepath.Base(other), "doc.md")
	if err := v.ValidatePath(traversal); err == nil {
		t.Error("ValidatePath should reject path traversal")
	}
}

func TestValidatePathNonexistentConfiguredDirectory(t *testing.T) {
	v, err := NewPathValidator("/does/not/exist/yet")
	if err != nil {
		t.Fatalf("NewPathValidator() error: %v", err)
	}

	// A missing configured directory confines nothing, so everything outside
	// it is still rejected.
	if err := v.ValidatePath("/anywhere/doc.md"); err == nil {
		t.Error("ValidatePath should reject paths outside a missing configured directory")
	}
	if err := v.ValidatePath("/does/not/exist/yet/doc.md"); err != nil {
		t.Errorf("ValidatePath(inside) error: %v", err)
	}
}

func TestValidateDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o750); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	v, err := NewPathValidator(dir)
	if err != nil {
		t.Fatalf("NewPathValidator() error: %v", err)
	}

	if err := v.ValidateDirectory(sub); err != nil {
		t.Errorf("ValidateDirectory(sub) error: %v", err)
	}
	if err := v.ValidateDirectory(file); err == nil {
		t.Error("ValidateDirectory should reject a regular file")
	}
	// A directory that does not exist yet inside the root is acceptable.
	if err := v.ValidateDirectory(filepath.Join(dir, "future")); err != nil {
		t.Errorf("ValidateDirectory(future) error: %v", err)
	}
}
