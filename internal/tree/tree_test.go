package tree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qkzk/dired/internal/users"
)

func mkTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(os.Mkdir(filepath.Join(root, "a"), 0o755))
	must(os.Mkdir(filepath.Join(root, "b"), 0o755))
	must(os.WriteFile(filepath.Join(root, "a", "1.txt"), []byte("x"), 0o644))
	must(os.WriteFile(filepath.Join(root, "a", "2.txt"), []byte("x"), 0o644))
	must(os.WriteFile(filepath.Join(root, "b", "3.txt"), []byte("x"), 0o644))
	must(os.WriteFile(filepath.Join(root, "z.txt"), []byte("x"), 0o644))
	return root
}

func TestBuildSelectsRoot(t *testing.T) {
	root := mkTree(t)
	tr, err := Build(root, users.New(), false, 40)
	if err != nil {
		t.Fatal(err)
	}
	if tr.SelectedPath != root {
		t.Fatalf("expected root selected, got %q", tr.SelectedPath)
	}
	n, ok := tr.Selected()
	if !ok || !n.Selected {
		t.Fatalf("root node should be marked selected")
	}
}

func TestFlattenOrderAndFold(t *testing.T) {
	root := mkTree(t)
	tr, err := Build(root, users.New(), false, 40)
	if err != nil {
		t.Fatal(err)
	}

	rows, _ := tr.Flatten()
	if len(rows) == 0 {
		t.Fatal("expected non-empty flatten")
	}
	if rows[0].Node.Path != root {
		t.Fatalf("first row should be root, got %q", rows[0].Node.Path)
	}

	total := len(rows)

	// fold the root: only the root row should remain.
	tr.ToggleFold(rows[0].Node)
	folded, _ := tr.Flatten()
	if len(folded) != 1 {
		t.Fatalf("expected 1 row after folding root, got %d", len(folded))
	}

	tr.ToggleFold(rows[0].Node) // unfold
	restored, _ := tr.Flatten()
	if len(restored) != total {
		t.Fatalf("unfolding should restore %d rows, got %d", total, len(restored))
	}
}

func TestNextPrevAreInverse(t *testing.T) {
	root := mkTree(t)
	tr, err := Build(root, users.New(), false, 40)
	if err != nil {
		t.Fatal(err)
	}

	start := tr.SelectedPath
	tr.Next()
	moved := tr.SelectedPath
	if moved == start {
		t.Fatal("Next should move off the root when it has children")
	}
	tr.Prev()
	if tr.SelectedPath != start {
		t.Fatalf("Prev after Next should return to %q, got %q", start, tr.SelectedPath)
	}
}

func TestNextStaysAtLastLeaf(t *testing.T) {
	root := mkTree(t)
	tr, err := Build(root, users.New(), false, 40)
	if err != nil {
		t.Fatal(err)
	}
	tr.LastLeaf()
	last := tr.SelectedPath
	tr.Next()
	if tr.SelectedPath != last {
		t.Fatalf("Next at the last leaf should stay put, moved to %q", tr.SelectedPath)
	}
}

func TestFoldAllThenUnfoldAll(t *testing.T) {
	root := mkTree(t)
	tr, err := Build(root, users.New(), false, 40)
	if err != nil {
		t.Fatal(err)
	}
	rows, _ := tr.Flatten()
	total := len(rows)

	tr.FoldAll()
	folded, _ := tr.Flatten()
	if len(folded) != 1 {
		t.Fatalf("FoldAll should collapse to 1 row, got %d", len(folded))
	}

	tr.UnfoldAll()
	restored, _ := tr.Flatten()
	if len(restored) != total {
		t.Fatalf("UnfoldAll should restore %d rows, got %d", total, len(restored))
	}
}

func TestSearchFirstMatch(t *testing.T) {
	root := mkTree(t)
	tr, err := Build(root, users.New(), false, 40)
	if err != nil {
		t.Fatal(err)
	}
	if !tr.SearchFirstMatch("3.txt") {
		t.Fatal("expected to find 3.txt somewhere in the tree")
	}
	n, ok := tr.Selected()
	if !ok || n.Info.Name != "3.txt" {
		t.Fatalf("expected selection on 3.txt, got %+v", n)
	}
}

func TestPrefixConnectorsForLastVsMiddleSibling(t *testing.T) {
	if got := buildPrefix([]bool{false}); got != "└── " {
		t.Errorf("last sibling at depth 1 should use corner connector, got %q", got)
	}
	if got := buildPrefix([]bool{true}); got != "├── " {
		t.Errorf("non-last sibling at depth 1 should use tee connector, got %q", got)
	}
	if got := buildPrefix([]bool{true, false}); got != "│  └── " {
		t.Errorf("nested prefix mismatch, got %q", got)
	}
}
