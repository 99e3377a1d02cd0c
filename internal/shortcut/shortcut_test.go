package shortcut

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewIncludesStartFolder(t *testing.T) {
	l := New("/srv/project", "/trash")
	found := false
	for _, p := range l.Paths() {
		if p == "/srv/project" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected start folder in %v", l.Paths())
	}
}

func TestRefreshReplacesMountPointsOnly(t *testing.T) {
	l := New("/srv/project", "/trash")
	fixedCount := len(l.Paths())

	l.Refresh([]string{"/mnt/usb"})
	if len(l.Paths()) != fixedCount+1 {
		t.Fatalf("expected %d paths after first refresh, got %d", fixedCount+1, len(l.Paths()))
	}

	l.Refresh([]string{"/mnt/other1", "/mnt/other2"})
	if len(l.Paths()) != fixedCount+2 {
		t.Fatalf("expected %d paths after second refresh, got %d", fixedCount+2, len(l.Paths()))
	}
	last := l.Paths()[len(l.Paths())-1]
	if last != "/mnt/other2" {
		t.Fatalf("expected last path /mnt/other2, got %q", last)
	}
}

func TestGitRootFindsAncestorWithDotGit(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	if got := GitRoot(nested); got != root {
		t.Fatalf("GitRoot(%q) = %q, want %q", nested, got, root)
	}
}

func TestGitRootReturnsEmptyWhenNoneFound(t *testing.T) {
	root := t.TempDir()
	if got := GitRoot(root); got != "" {
		t.Fatalf("GitRoot(%q) = %q, want empty", root, got)
	}
}
