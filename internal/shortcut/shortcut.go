// Package shortcut holds the hardcoded and mount-point jump targets offered
// by the Shortcut menu: $HOME, the config dir, the trash top-dir, a git
// root, the start folder, and currently mounted filesystems including MTP
// devices under /run/user/$UID/gvfs. Mount points enter the list only
// through Refresh, which internal/session never calls, so the Shortcut menu
// shows the fixed targets alone.
package shortcut

import (
	"fmt"
	"os"
	"strings"
)

// List holds the fixed shortcuts plus the currently refreshed mount points.
// nonMountCount marks where the fixed prefix ends so Refresh can drop and
// re-append only the mount-derived suffix.
type List struct {
	paths         []string
	nonMountCount int
}

// New builds the fixed portion of the shortcut list: $HOME, the config
// directory, the trash top-dir, the start folder's git root (if any), and
// the start folder.
func New(startFolder, trashTopDir string) *List {
	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
	}
	paths = append(paths, configDir())
	paths = append(paths, trashTopDir)
	if root := GitRoot(startFolder); startFolder != "" && root != "" {
		paths = append(paths, root)
	}
	if startFolder != "" {
		paths = append(paths, startFolder)
	}
	return &List{paths: paths, nonMountCount: len(paths)}
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg + "/dired"
	}
	home, _ := os.UserHomeDir()
	return home + "/.config/dired"
}

// Refresh drops any previously appended mount points and appends the
// current set, preserving the fixed prefix.
func (l *List) Refresh(mountPoints []string) {
	l.paths = append(l.paths[:l.nonMountCount:l.nonMountCount], mountPoints...)
}

// Paths returns every shortcut path in display order.
func (l *List) Paths() []string { return l.paths }

// GvfsMountRoot is the MTP/gvfs mount root for the current user. The Mount
// menu (lsblk-based) does not enumerate it.
func GvfsMountRoot() string {
	return fmt.Sprintf("/run/user/%d/gvfs", os.Getuid())
}

// GitRoot walks up from start looking for a ".git" directory and returns
// its parent, or "" if none is found before reaching "/".
func GitRoot(start string) string {
	dir := start
	for {
		if info, err := os.Stat(dir + "/.git"); err == nil && info.IsDir() {
			return dir
		}
		parent := parentOf(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func parentOf(path string) string {
	path = strings.TrimSuffix(path, "/")
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		return "/"
	}
	return path[:idx]
}
