// Package selectable defines the Selectable and Content capabilities shared
// by the directory listing, the tree flattening, and every concrete menu.
//
// A single generic List[T] implementation backs every menu type (history,
// shortcuts, trash, marks, flagged, completions, ...) instead of duplicating
// the navigation logic per menu.
package selectable

// Selectable is the navigation capability every menu and listing provides.
type Selectable interface {
	Len() int
	IsEmpty() bool
	Index() int
	SetIndex(i int)
	Next()
	Prev()
	SelectedIsLast() bool
}

// Content exposes the underlying elements of a Selectable for rendering.
type Content[T any] interface {
	Selectable
	Selected() (T, bool)
	Items() []T
	Push(t T)
}

// List is a generic, reusable implementation of Content[T] backed by a
// slice, used by every concrete menu (history, shortcuts, trash, marks,
// flagged, completions, ...) instead of duplicating the navigation logic per
// menu type.
type List[T any] struct {
	items []T
	index int
}

// NewList builds a List from an initial slice (may be nil/empty).
func NewList[T any](items []T) *List[T] {
	return &List[T]{items: items}
}

func (l *List[T]) Len() int      { return len(l.items) }
func (l *List[T]) IsEmpty() bool { return len(l.items) == 0 }
func (l *List[T]) Index() int    { return l.index }

func (l *List[T]) SetIndex(i int) {
	if i >= 0 && i < len(l.items) {
		l.index = i
	}
}

// Next advances the selection, wrapping to 0 past the last element. On
// empty content the index stays at 0.
func (l *List[T]) Next() {
	if l.IsEmpty() {
		l.index = 0
		return
	}
	l.index = (l.index + 1) % len(l.items)
}

// Prev moves the selection back, wrapping to the last element before 0.
func (l *List[T]) Prev() {
	if l.IsEmpty() {
		l.index = 0
		return
	}
	if l.index > 0 {
		l.index--
	} else {
		l.index = len(l.items) - 1
	}
}

func (l *List[T]) SelectedIsLast() bool {
	return !l.IsEmpty() && l.index == len(l.items)-1
}

func (l *List[T]) Selected() (T, bool) {
	var zero T
	if l.IsEmpty() {
		return zero, false
	}
	return l.items[l.index], true
}

func (l *List[T]) Items() []T { return l.items }

func (l *List[T]) Push(t T) { l.items = append(l.items, t) }

// Replace swaps the entire backing slice and clamps the index into range.
func (l *List[T]) Replace(items []T) {
	l.items = items
	if l.index >= len(items) {
		l.index = max(0, len(items)-1)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
