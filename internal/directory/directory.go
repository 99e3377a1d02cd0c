package directory

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/qkzk/dired/internal/fileinfo"
	"github.com/qkzk/dired/internal/users"
	"github.com/qkzk/dired/internal/window"
)

// Directory is an absolute path plus its ordered, filtered, sorted children.
// Content is always prefixed by "." and, if not root, "..".
//
// Invariant: 0 <= Index < len(Content).
type Directory struct {
	Path    string
	Content []fileinfo.FileInfo

	Sort   SortKey
	Filter Filter
	Hidden bool // show dotfiles

	Index  int
	Window window.Window

	UsedSpace   int64 // sum of sizes of non-directory children
	contentHash uint64
}

// New enumerates path for the first time.
func New(path string, uc *users.Cache, termHeight int) (*Directory, error) {
	d := &Directory{
		Path:   path,
		Sort:   DefaultSortKey(),
		Filter: NoFilter(),
	}
	if err := d.Refresh(uc); err != nil {
		return nil, err
	}
	d.Window = window.New(len(d.Content), termHeight)
	return d, nil
}

// Refresh re-enumerates the directory from disk, re-applies filter and sort,
// recomputes used space, clamps the selection index, and resets the window
// to the top, then scrolls it just enough to keep the selection visible.
func (d *Directory) Refresh(uc *users.Cache) error {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return err
	}

	selectedPath := d.selectedPath()

	var children []fileinfo.FileInfo
	var used int64
	for _, e := range entries {
		name := e.Name()
		if !d.Hidden && len(name) > 0 && name[0] == '.' {
			continue
		}
		fi, err := fileinfo.FromPath(filepath.Join(d.Path, name), name, uc)
		if err != nil {
			continue
		}
		if !d.Filter.Matches(fi) {
			continue
		}
		if fi.Kind != fileinfo.KindDirectory {
			used += fi.SizeBytes()
		}
		children = append(children, fi)
	}
	SortFiles(children, d.Sort)

	content := make([]fileinfo.FileInfo, 0, len(children)+2)
	dot, err := fileinfo.FromPath(d.Path, ".", uc)
	if err == nil {
		content = append(content, dot)
	}
	if parent := filepath.Dir(d.Path); parent != d.Path {
		dotdot, err := fileinfo.FromPath(parent, "..", uc)
		if err == nil {
			content = append(content, dotdot)
		}
	}
	content = append(content, children...)

	d.Content = content
	d.UsedSpace = used
	d.contentHash = hashContent(content)

	d.Index = d.reindex(selectedPath)
	d.Window.Reset(len(d.Content))
	d.Window.ScrollTo(d.Index)
	return nil
}

// ContentHash is a cheap xxhash digest of the current listing (path, size,
// mtime of every entry), used to skip re-flattening/re-rendering when a
// refresh produced an identical listing.
func (d *Directory) ContentHash() uint64 { return d.contentHash }

func hashContent(content []fileinfo.FileInfo) uint64 {
	h := xxhash.New()
	var buf [8]byte
	for _, fi := range content {
		_, _ = h.WriteString(fi.Path)
		_, _ = h.WriteString(fi.SizeColumn)
		binary.LittleEndian.PutUint64(buf[:], uint64(fi.ModTime.UnixNano()))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

func (d *Directory) selectedPath() string {
	if d.Index >= 0 && d.Index < len(d.Content) {
		return d.Content[d.Index].Path
	}
	return ""
}

// reindex finds the previously selected path in the new content; if it's
// gone, selection resets to 0.
func (d *Directory) reindex(selectedPath string) int {
	if selectedPath != "" {
		for i, fi := range d.Content {
			if fi.Path == selectedPath {
				return i
			}
		}
	}
	return 0
}

// Selected returns the currently selected FileInfo, if any.
func (d *Directory) Selected() (fileinfo.FileInfo, bool) {
	if d.Index < 0 || d.Index >= len(d.Content) {
		return fileinfo.FileInfo{}, false
	}
	return d.Content[d.Index], true
}

// MoveDown moves the selection one row down, clamped at the last entry, and
// scrolls the window if needed.
func (d *Directory) MoveDown() {
	if d.Index < len(d.Content)-1 {
		d.Index++
		d.Window.ScrollDownOne(d.Index)
	}
}

// MoveUp moves the selection one row up, clamped at 0.
func (d *Directory) MoveUp() {
	if d.Index > 0 {
		d.Index--
		d.Window.ScrollUpOne(d.Index)
	}
}

// ToggleHidden flips the hidden-dotfile flag; caller must call Refresh
// afterwards.
func (d *Directory) ToggleHidden() { d.Hidden = !d.Hidden }

// SetIndex jumps the selection directly (e.g. after a search match) and
// scrolls the window to keep it visible.
func (d *Directory) SetIndex(i int) {
	if i < 0 || i >= len(d.Content) {
		return
	}
	d.Index = i
	d.Window.ScrollTo(i)
}

// SearchNext selects the first entry at or after Index+1 whose name contains
// query, wrapping once to the top if nothing matches before the end. It
// never wraps a second time, so a miss leaves the selection unchanged.
func (d *Directory) SearchNext(query string) bool {
	if query == "" || len(d.Content) == 0 {
		return false
	}
	n := len(d.Content)
	needle := strings.ToLower(query)
	for step := 1; step <= n; step++ {
		i := (d.Index + step) % n
		if strings.Contains(strings.ToLower(d.Content[i].Name), needle) {
			d.SetIndex(i)
			return true
		}
	}
	return false
}
