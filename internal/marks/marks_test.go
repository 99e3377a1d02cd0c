package marks

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewAndGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marks.cfg")
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.New('h', "/home/u"); err != nil {
		t.Fatal(err)
	}
	got, ok := m.Get('h')
	if !ok || got != "/home/u" {
		t.Fatalf("Get('h') = %q, %v; want /home/u, true", got, ok)
	}
}

func TestNewRejectsColonKey(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "marks.cfg"))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.New(':', "/x"); err == nil {
		t.Fatal("expected error binding ':' as a mark key")
	}
}

func TestLoadPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marks.cfg")
	m1, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := m1.New('d', "/downloads"); err != nil {
		t.Fatal(err)
	}

	m2, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := m2.Get('d')
	if !ok || got != "/downloads" {
		t.Fatalf("reloaded Get('d') = %q, %v; want /downloads, true", got, ok)
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marks.cfg")
	if err := os.WriteFile(path, []byte("h:/home\nbadline\nd:/downloads\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Entries()) != 2 {
		t.Fatalf("expected 2 valid entries, got %d: %v", len(m.Entries()), m.Entries())
	}
}

func TestTempMarksSetGetAndEmpty(t *testing.T) {
	tm := NewTempMarks()
	if _, ok := tm.Get(3); ok {
		t.Fatal("unset slot should report not-ok")
	}
	tm.Set(3, "/tmp/three")
	got, ok := tm.Get(3)
	if !ok || got != "/tmp/three" {
		t.Fatalf("Get(3) = %q, %v; want /tmp/three, true", got, ok)
	}
	if _, ok := tm.Get(10); ok {
		t.Fatal("out-of-range digit should report not-ok")
	}
}
