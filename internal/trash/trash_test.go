package trash

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestTrash(t *testing.T) *Trash {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_DATA_HOME", root)
	tr, err := Open()
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestMoveThenListThenRestore(t *testing.T) {
	tr := openTestTrash(t)
	srcDir := t.TempDir()

	origin := filepath.Join(srcDir, "x.txt")
	if err := os.WriteFile(origin, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	entry, err := tr.Move(origin)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if _, err := os.Stat(origin); !os.IsNotExist(err) {
		t.Fatal("origin should no longer exist after Move")
	}
	if _, err := os.Stat(filepath.Join(tr.filesDir, entry.StoredName)); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}

	entries, err := tr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].OriginalPath != origin {
		t.Fatalf("List() = %+v, want one entry for %q", entries, origin)
	}

	if err := tr.Restore(entries[0]); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if _, err := os.Stat(origin); err != nil {
		t.Fatalf("origin should exist after Restore: %v", err)
	}
	remaining, err := tr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected empty trash after restore, got %+v", remaining)
	}
}

func TestRestoreRecreatesMissingParent(t *testing.T) {
	tr := openTestTrash(t)
	srcDir := t.TempDir()
	nestedDir := filepath.Join(srcDir, "nested")
	if err := os.Mkdir(nestedDir, 0o755); err != nil {
		t.Fatal(err)
	}
	origin := filepath.Join(nestedDir, "y.txt")
	if err := os.WriteFile(origin, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	entry, err := tr.Move(origin)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(nestedDir); err != nil {
		t.Fatal(err)
	}

	if err := tr.Restore(entry); err != nil {
		t.Fatalf("Restore after parent removal: %v", err)
	}
	if _, err := os.Stat(origin); err != nil {
		t.Fatalf("expected origin restored with recreated parent: %v", err)
	}
}

func TestMoveTwiceWithSameBasenameGetsUniqueNames(t *testing.T) {
	tr := openTestTrash(t)
	dirA := t.TempDir()
	dirB := t.TempDir()
	a := filepath.Join(dirA, "dup.txt")
	b := filepath.Join(dirB, "dup.txt")
	if err := os.WriteFile(a, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}

	e1, err := tr.Move(a)
	if err != nil {
		t.Fatal(err)
	}
	e2, err := tr.Move(b)
	if err != nil {
		t.Fatal(err)
	}
	if e1.StoredName == e2.StoredName {
		t.Fatalf("expected distinct stored names, got %q twice", e1.StoredName)
	}
}

func TestEmptyRemovesEverything(t *testing.T) {
	tr := openTestTrash(t)
	srcDir := t.TempDir()
	origin := filepath.Join(srcDir, "z.txt")
	if err := os.WriteFile(origin, []byte("z"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Move(origin); err != nil {
		t.Fatal(err)
	}

	if err := tr.Empty(); err != nil {
		t.Fatalf("Empty: %v", err)
	}
	entries, err := tr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty trash, got %+v", entries)
	}
}
