// Package menu implements the uniform navigable-list overlay shared by
// every concrete menu (history, shortcuts, trash, marks, flagged files,
// compression picker, launcher pickers, mounts, context actions,
// confirmations).
package menu

import (
	"github.com/qkzk/dired/internal/selectable"
	"github.com/qkzk/dired/internal/window"
)

// Kind names a concrete menu so the dispatcher can route Enter/Leave and
// the renderer can pick a title and row formatter.
type Kind int

const (
	KindHistory Kind = iota
	KindShortcut
	KindTrash
	KindFlagged
	KindMarksJump
	KindMarksNew
	KindTempMarksJump
	KindTempMarksNew
	KindCompress
	KindTuiApplication
	KindCliApplication
	KindMount
	KindContext
	KindConfirmCopy
	KindConfirmMove
	KindConfirmDelete
	KindConfirmEmptyTrash
	KindConfirmBulkAction
)

// NeedsConfirmation reports whether this kind only accepts 'y' to commit.
func (k Kind) NeedsConfirmation() bool {
	switch k {
	case KindConfirmCopy, KindConfirmMove, KindConfirmDelete, KindConfirmEmptyTrash, KindConfirmBulkAction:
		return true
	default:
		return false
	}
}

// Row is one displayable line of a menu: a label plus an opaque key the
// dispatcher's LeaveMenu handler uses to act on the right underlying value.
type Row struct {
	Label string
	Key   string
}

// Menu is a Kind-tagged, windowed, selectable list of rows.
type Menu struct {
	Kind   Kind
	Title  string
	list   *selectable.List[Row]
	Window window.Window
}

// New creates an empty menu of the given kind, titled for display.
func New(kind Kind, title string, termHeight int) *Menu {
	m := &Menu{Kind: kind, Title: title, list: selectable.NewList[Row](nil)}
	m.Window = window.New(0, termHeight)
	return m
}

// Replace swaps the row set, clamps the selection into the new range, and
// resets the window to the top.
func (m *Menu) Replace(rows []Row) {
	m.list.Replace(rows)
	m.Window.Reset(len(rows))
}

func (m *Menu) Len() int      { return m.list.Len() }
func (m *Menu) IsEmpty() bool { return m.list.IsEmpty() }
func (m *Menu) Index() int    { return m.list.Index() }

func (m *Menu) Rows() []Row { return m.list.Items() }

// Selected returns the currently highlighted row.
func (m *Menu) Selected() (Row, bool) { return m.list.Selected() }

// Next/Prev move the selection, wrapping, and keep the window following it.
func (m *Menu) Next() {
	m.list.Next()
	if m.list.Index() == 0 {
		m.Window.Reset(m.list.Len())
		return
	}
	m.Window.ScrollDownOne(m.list.Index())
}

func (m *Menu) Prev() {
	m.list.Prev()
	if m.list.SelectedIsLast() {
		m.Window.ScrollTo(m.list.Index())
		return
	}
	m.Window.ScrollUpOne(m.list.Index())
}

func (m *Menu) SelectedIsLast() bool { return m.list.SelectedIsLast() }

// Backend is implemented by every concrete menu's data source: it knows how
// to (re)build its rows and what Enter should do with the selected one.
type Backend interface {
	// Load (re)populates the menu's rows from current state.
	Load(m *Menu)
	// Commit runs the Enter action against the selected row's Key. It
	// returns the path to navigate to, if any, and whether the menu should
	// close afterward.
	Commit(key string) (target string, closeMenu bool, err error)
}
