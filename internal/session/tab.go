package session

import (
	"github.com/qkzk/dired/internal/completion"
	"github.com/qkzk/dired/internal/directory"
	"github.com/qkzk/dired/internal/input"
	"github.com/qkzk/dired/internal/menu"
	"github.com/qkzk/dired/internal/preview"
	"github.com/qkzk/dired/internal/shortcut"
	"github.com/qkzk/dired/internal/tree"
	"github.com/qkzk/dired/internal/users"
)

// DisplayMode is what a tab's main pane currently shows. It is a tagged
// variant, not a set of flags: exactly one of these is active at a time,
// and entering Preview remembers the mode it displaced so leaving it can
// restore exactly that, never a hardcoded Directory.
type DisplayMode int

const (
	DisplayDirectory DisplayMode = iota
	DisplayTree
	DisplayPreview
	DisplayFuzzy
)

// Tab is one of the two independent panes: its own directory, its own
// optional tree/preview/fuzzy overlay, its own menu, its own history.
type Tab struct {
	Display     DisplayMode
	SavedMode   DisplayMode // mode to restore when leaving DisplayPreview/DisplayFuzzy
	Menu        MenuMode

	Directory *directory.Directory
	Tree      *tree.Tree
	Preview   *preview.Preview

	ActiveMenu *menu.Menu
	Backend    menu.Backend
	Input      *input.Line
	completion *completion.Completion

	Shortcuts *shortcut.List
	History   []string // visited absolute paths, most recent last

	SearchQuery     string
	FuzzyCandidates []string // populated by actionFuzzyFind, consumed by refreshCompletion
}

// newTab opens dir as a freshly focused tab.
func newTab(dir string, uc *users.Cache, startFolder, trashTopDir string, termHeight int) (*Tab, error) {
	d, err := directory.New(dir, uc, termHeight)
	if err != nil {
		return nil, err
	}
	return &Tab{
		Display:   DisplayDirectory,
		SavedMode: DisplayDirectory,
		Menu:      MenuMode{Kind: MenuNothing},
		Directory: d,
		Shortcuts: shortcut.New(startFolder, trashTopDir),
		History:   []string{dir},
	}, nil
}

// CurrentPath returns the directory path a tab's directory/tree is rooted
// at, regardless of which DisplayMode is active.
func (t *Tab) CurrentPath() string {
	if t.Tree != nil && t.Display == DisplayTree {
		return t.Tree.RootPath
	}
	return t.Directory.Path
}

// SelectedPath returns the absolute path of the currently highlighted
// entry, across Directory and Tree display modes.
func (t *Tab) SelectedPath() string {
	switch t.Display {
	case DisplayTree:
		if n, ok := t.Tree.Selected(); ok {
			return n.Path
		}
		return ""
	default:
		if fi, ok := t.Directory.Selected(); ok {
			return fi.Path
		}
		return ""
	}
}

// pushHistory records dir as visited, deduplicating immediate repeats.
func (t *Tab) pushHistory(dir string) {
	if n := len(t.History); n > 0 && t.History[n-1] == dir {
		return
	}
	t.History = append(t.History, dir)
}

// SetWindowHeight resizes every window owned by the tab after a resize.
func (t *Tab) SetWindowHeight(h int) {
	t.Directory.Window.SetHeight(h)
	if t.Tree != nil {
		t.Tree.Window.SetHeight(h)
	}
	if t.ActiveMenu != nil {
		t.ActiveMenu.Window.SetHeight(h)
	}
}
