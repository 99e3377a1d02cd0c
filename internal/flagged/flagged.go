// Package flagged tracks the insertion-ordered set of paths marked for a
// batch action (copy, move, delete, compress).
package flagged

// Set is an insertion-ordered set of absolute paths.
type Set struct {
	order []string
	index map[string]int
}

// New returns an empty flagged set.
func New() *Set {
	return &Set{index: make(map[string]int)}
}

// Contains reports whether path is flagged.
func (s *Set) Contains(path string) bool {
	_, ok := s.index[path]
	return ok
}

// Toggle flags path if unflagged, unflags it otherwise. Calling it twice in
// a row on the same path is a no-op.
func (s *Set) Toggle(path string) {
	if s.Contains(path) {
		s.remove(path)
		return
	}
	s.index[path] = len(s.order)
	s.order = append(s.order, path)
}

func (s *Set) remove(path string) {
	i, ok := s.index[path]
	if !ok {
		return
	}
	s.order = append(s.order[:i], s.order[i+1:]...)
	delete(s.index, path)
	for j := i; j < len(s.order); j++ {
		s.index[s.order[j]] = j
	}
}

// Clear empties the set.
func (s *Set) Clear() {
	s.order = nil
	s.index = make(map[string]int)
}

// Paths returns every flagged path in insertion order.
func (s *Set) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of flagged paths.
func (s *Set) Len() int { return len(s.order) }

// IsEmpty reports whether the set has no flagged paths.
func (s *Set) IsEmpty() bool { return len(s.order) == 0 }

// ReverseWithin flips the flagged state of every path in dirPaths: flagged
// entries in that directory become unflagged and vice versa.
func (s *Set) ReverseWithin(dirPaths []string) {
	for _, p := range dirPaths {
		s.Toggle(p)
	}
}

// ReplaceFromClipboard discards the current set and toggles every path
// given, in order: a path listed an even number of times ends up unflagged.
func (s *Set) ReplaceFromClipboard(paths []string) {
	s.Clear()
	for _, p := range paths {
		s.Toggle(p)
	}
}

// DropMissing removes any flagged path that no longer exists, using exists
// to test each one; used by the Refresh action to reconcile with disk state.
func (s *Set) DropMissing(exists func(path string) bool) {
	var kept []string
	for _, p := range s.order {
		if exists(p) {
			kept = append(kept, p)
		}
	}
	s.ReplaceFromClipboard(kept)
}
