// Package window implements the scroll viewport shared by Directory, Tree
// and every menu: it tracks which slice of a long list is visible given a
// terminal height, keeping the selected row inside a scroll margin instead
// of pinned to the top or bottom edge.
package window

// Margin constants controlling how much of the terminal is reserved for
// chrome versus content.
const (
	HeaderRows   = 1                           // path/title line
	FooterRows   = 1                           // metadata/hint line
	ReservedRows = HeaderRows + FooterRows + 1 // +1 for the bottom log line
	Padding      = 4
)

// Window is a scroll viewport over a sequence of length Len.
type Window struct {
	Top    int
	Bottom int
	Height int
	Len    int
}

// New creates a Window sized for termHeight rows of terminal height and len
// items of content.
func New(len, termHeight int) Window {
	h := usableHeight(termHeight)
	w := Window{Height: h, Len: len}
	w.Reset(len)
	return w
}

func usableHeight(termHeight int) int {
	h := termHeight - ReservedRows
	if h < 1 {
		h = 1
	}
	return h
}

// SetHeight updates the usable height from a new terminal height (resize).
func (w *Window) SetHeight(termHeight int) {
	w.Height = usableHeight(termHeight)
	w.clamp()
}

// Reset moves the window back to the top for a (possibly new) content length.
func (w *Window) Reset(len int) {
	w.Len = len
	w.Top = 0
	w.Bottom = min(len, w.Height)
}

// ScrollTo jumps directly to make index visible, placing it Padding rows
// below the top where possible. Used after a non-incremental selection
// change (e.g. jump to search match, menu Enter).
func (w *Window) ScrollTo(index int) {
	if index < w.Top || index >= w.Bottom {
		top := index - Padding
		if top < 0 {
			top = 0
		}
		w.Top = top
		w.Bottom = w.Top + min(w.Len, w.Height)
	}
	w.clamp()
}

// ScrollUpOne nudges the window up by one row if index is within Padding of
// the top. Used for single-step MoveUp.
func (w *Window) ScrollUpOne(index int) {
	if index < w.Top+Padding && w.Top > 0 {
		w.Top--
		w.Bottom--
	}
}

// ScrollDownOne nudges the window down by one row if index is within
// Padding of the bottom. Used for single-step MoveDown.
func (w *Window) ScrollDownOne(index int) {
	if w.Len < w.Height {
		return
	}
	if index > w.Bottom-Padding && w.Bottom <= w.Len {
		w.Top++
		w.Bottom++
	}
}

func (w *Window) clamp() {
	if w.Top < 0 {
		w.Top = 0
	}
	if w.Bottom > w.Len {
		w.Bottom = w.Len
	}
	if w.Bottom < w.Top {
		w.Bottom = w.Top
	}
	if w.Bottom-w.Top > w.Height {
		w.Bottom = w.Top + w.Height
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
