package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qkzk/dired/internal/fileinfo"
	"github.com/qkzk/dired/internal/users"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDirectoryIndexInvariant(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a", "c")
	if err := os.WriteFile(filepath.Join(dir, ".b"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := New(dir, users.New(), 40)
	if err != nil {
		t.Fatal(err)
	}
	if d.Index < 0 || d.Index >= len(d.Content) {
		t.Fatalf("index %d out of range [0,%d)", d.Index, len(d.Content))
	}

	// hidden files excluded by default: ".", "..", "a", "c"
	if len(d.Content) != 4 {
		t.Fatalf("expected 4 entries, got %d: %+v", len(d.Content), d.Content)
	}

	d.ToggleHidden()
	if err := d.Refresh(users.New()); err != nil {
		t.Fatal(err)
	}
	if len(d.Content) != 5 {
		t.Fatalf("expected 5 entries after showing hidden, got %d", len(d.Content))
	}
	if d.Index < 0 || d.Index >= len(d.Content) {
		t.Fatalf("index %d out of range [0,%d) after refresh", d.Index, len(d.Content))
	}
}

func TestSortByNameIdempotentAndReversed(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b", "a", "c")

	d, err := New(dir, users.New(), 40)
	if err != nil {
		t.Fatal(err)
	}
	d.Sort.UpdateFromChar('n')
	if err := d.Refresh(users.New()); err != nil {
		t.Fatal(err)
	}
	first := namesOf(d.Content)

	d.Sort.UpdateFromChar('n')
	if err := d.Refresh(users.New()); err != nil {
		t.Fatal(err)
	}
	second := namesOf(d.Content)
	if !equal(first, second) {
		t.Fatalf("sort_by(n) not idempotent: %v vs %v", first, second)
	}

	d.Sort.UpdateFromChar('N')
	if err := d.Refresh(users.New()); err != nil {
		t.Fatal(err)
	}
	reversed := namesOf(d.Content)
	// first two entries are always "." and ".." regardless of sort
	if reversed[2] != first[len(first)-1] {
		t.Fatalf("uppercase sort should reverse ascending order: got %v vs %v", reversed, first)
	}
}

func namesOf(content []fileinfo.FileInfo) []string {
	names := make([]string, len(content))
	for i, fi := range content {
		names[i] = fi.Name
	}
	return names
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
