package copyqueue

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCopyJobDuplicatesFileAndLeavesSource(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "a.txt"), "hello")

	q := New()
	q.Enqueue(Job{Sources: []string{filepath.Join(src, "a.txt")}, Destination: dst, Kind: Copy})
	go q.Run()
	<-q.Progress()
	<-q.Complete()

	if _, err := os.Stat(filepath.Join(src, "a.txt")); err != nil {
		t.Fatalf("source should still exist after Copy: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	if err != nil || string(data) != "hello" {
		t.Fatalf("copied file mismatch: %v %q", err, data)
	}
}

func TestMoveJobRemovesSource(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "b.txt"), "bye")

	q := New()
	q.Enqueue(Job{Sources: []string{filepath.Join(src, "b.txt")}, Destination: dst, Kind: Move})
	go q.Run()
	<-q.Progress()
	<-q.Complete()

	if _, err := os.Stat(filepath.Join(src, "b.txt")); !os.IsNotExist(err) {
		t.Fatalf("source should be gone after Move, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "b.txt")); err != nil {
		t.Fatalf("destination should exist after Move: %v", err)
	}
}

func TestProgressReachesHundredBeforeComplete(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "one.txt"), "1")
	writeFile(t, filepath.Join(src, "two.txt"), "2")

	q := New()
	q.Enqueue(Job{
		Sources:     []string{filepath.Join(src, "one.txt"), filepath.Join(src, "two.txt")},
		Destination: dst,
		Kind:        Copy,
	})
	go q.Run()

	last := 0
	for p := range q.Progress() {
		if p.Percent < last {
			t.Fatalf("progress should be monotone non-decreasing, got %d after %d", p.Percent, last)
		}
		last = p.Percent
		if last == 100 {
			break
		}
	}
	<-q.Complete()
	if last != 100 {
		t.Fatalf("expected progress to reach 100, last = %d", last)
	}
}

func TestSecondJobEventsNeverPrecedeFirstComplete(t *testing.T) {
	srcA, dstA := t.TempDir(), t.TempDir()
	srcB, dstB := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(srcA, "a.txt"), "a")
	writeFile(t, filepath.Join(srcB, "b.txt"), "b")

	q := New()
	q.Enqueue(Job{Sources: []string{filepath.Join(srcA, "a.txt")}, Destination: dstA, Kind: Copy})
	q.Enqueue(Job{Sources: []string{filepath.Join(srcB, "b.txt")}, Destination: dstB, Kind: Copy})
	go q.Run()

	firstComplete := false
	for i := 0; i < 2; i++ {
		c := <-q.Complete()
		if c.JobIndex == 1 && !firstComplete {
			t.Fatal("job 1's complete event arrived before job 0's")
		}
		if c.JobIndex == 0 {
			firstComplete = true
		}
	}
}
