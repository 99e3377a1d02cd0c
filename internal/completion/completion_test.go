package completion

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGotoProposesMatchingSubdirectories(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"apple", "apricot", "banana"} {
		if err := os.Mkdir(filepath.Join(root, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "appfile"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New()
	c.Goto(filepath.Join(root, "ap"))

	proposals := c.Proposals()
	if len(proposals) != 2 {
		t.Fatalf("expected 2 directory proposals, got %d: %v", len(proposals), proposals)
	}
	for _, p := range proposals {
		if filepath.Base(p) != "apple" && filepath.Base(p) != "apricot" {
			t.Errorf("unexpected proposal %q", p)
		}
	}
}

func TestGotoEmptyLastNameResets(t *testing.T) {
	c := New()
	c.list.Replace([]string{"stale"})
	c.Goto("/tmp/")
	if len(c.Proposals()) != 0 {
		t.Fatalf("expected no proposals for trailing slash input, got %v", c.Proposals())
	}
}

func TestNextPrevCycleAndWrap(t *testing.T) {
	c := New()
	c.list.Replace([]string{"a", "b", "c"})

	if got := c.Current(); got != "a" {
		t.Fatalf("initial current = %q, want a", got)
	}
	c.Next()
	if got := c.Current(); got != "b" {
		t.Fatalf("after Next, current = %q, want b", got)
	}
	c.Next()
	c.Next()
	if got := c.Current(); got != "a" {
		t.Fatalf("Next should wrap to a, got %q", got)
	}
	c.Prev()
	if got := c.Current(); got != "c" {
		t.Fatalf("Prev should wrap back to c, got %q", got)
	}
}

func TestSearchEmptyInputResets(t *testing.T) {
	c := New()
	c.Search("", []string{"a", "b"})
	if len(c.Proposals()) != 0 {
		t.Fatalf("empty search input should reset proposals, got %v", c.Proposals())
	}
}

func TestSearchFuzzyMatchExcludesNonMatches(t *testing.T) {
	c := New()
	c.Search("rdm", []string{"readme.md", "random.txt", "other.go"})
	proposals := c.Proposals()
	if len(proposals) != 2 {
		t.Fatalf("expected readme.md and random.txt to match 'rdm', got %v", proposals)
	}
	for _, p := range proposals {
		if p == "other.go" {
			t.Errorf("other.go should not match 'rdm'")
		}
	}
}
