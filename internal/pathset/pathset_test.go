package pathset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeDedupsPreservingOrder(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	if err := os.Mkdir(a, 0o755); err != nil {
		t.Fatal(err)
	}

	set, err := Sanitize([]string{a, a, a})
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if len(set.Roots) != 1 {
		t.Fatalf("Roots = %v, want a single entry", set.Roots)
	}
}

func TestSanitizeRejectsOverlappingRoots(t *testing.T) {
	dir := t.TempDir()
	child := filepath.Join(dir, "child")
	if err := os.Mkdir(child, 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := Sanitize([]string{dir, child})
	if err == nil {
		t.Fatal("expected an overlap error, got nil")
	}
}

func TestSanitizeRejectsEmptyInput(t *testing.T) {
	if _, err := Sanitize(nil); err == nil {
		t.Fatal("expected an error for an empty root list")
	}
}

func TestSanitizeRejectsProtectedSystemDirectory(t *testing.T) {
	_, err := Sanitize([]string{"/etc"})
	if err == nil {
		t.Fatal("expected /etc to be rejected as protected")
	}
}
