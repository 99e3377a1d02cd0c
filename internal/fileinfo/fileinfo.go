// Package fileinfo builds immutable snapshots of filesystem entries: kind
// classification, permission string, and a prerendered size column whose
// format depends on kind (bytes for files, entry count for directories,
// major:minor for devices).
package fileinfo

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/qkzk/dired/internal/users"
)

// Kind classifies a filesystem entry the way `ls -l`'s leading column does.
type Kind int

const (
	KindNormalFile Kind = iota
	KindDirectory
	KindBlockDevice
	KindCharDevice
	KindFifo
	KindSocket
	KindSymlink
)

// DirSymbol returns the `ls -l` leading character for the kind.
func (k Kind) DirSymbol() byte {
	switch k {
	case KindDirectory:
		return 'd'
	case KindBlockDevice:
		return 'b'
	case KindCharDevice:
		return 'c'
	case KindFifo:
		return 'p'
	case KindSocket:
		return 's'
	case KindSymlink:
		return 'l'
	default:
		return '.'
	}
}

// SortableChar yields a stable byte used to group kinds during "sort by kind".
func (k Kind) SortableChar() byte {
	switch k {
	case KindDirectory:
		return 'a'
	case KindNormalFile:
		return 'b'
	case KindSymlink:
		return 'c'
	case KindBlockDevice:
		return 'd'
	case KindCharDevice:
		return 'e'
	case KindSocket:
		return 'f'
	case KindFifo:
		return 'g'
	default:
		return 'z'
	}
}

// FileInfo is an immutable snapshot of one path.
type FileInfo struct {
	Path      string // absolute
	Name      string // displayable basename, or "." / ".."
	Extension string // lowercase, without leading dot

	Kind         Kind
	SymlinkValid bool // only meaningful when Kind == KindSymlink

	Mode fs.FileMode

	Owner string
	Group string

	ModTime time.Time

	// Size column: bytes for files, entry count for directories,
	// major:minor for devices. Prerendered because the formatting rule
	// depends on Kind.
	SizeColumn string
	sizeBytes  int64 // raw byte size, 0 for directories/devices

	IsHidden bool
}

// FromPath builds a FileInfo for path, using displayName as the Name field
// (so callers can special-case "." and "..").
func FromPath(path, displayName string, uc *users.Cache) (FileInfo, error) {
	lst, err := os.Lstat(path)
	if err != nil {
		return FileInfo{}, err
	}

	kind, symlinkValid := classify(lst, path)

	var owner, group string
	var major, minor uint32
	if sys, ok := lst.Sys().(*syscall.Stat_t); ok {
		owner = uc.Username(sys.Uid)
		group = uc.Groupname(sys.Gid)
		major = uint32((sys.Rdev >> 8) & 0xff)
		minor = uint32(sys.Rdev & 0xff)
	}

	fi := FileInfo{
		Path:         path,
		Name:         displayName,
		Extension:    strings.ToLower(strings.TrimPrefix(filepath.Ext(displayName), ".")),
		Kind:         kind,
		SymlinkValid: symlinkValid,
		Mode:         lst.Mode(),
		Owner:        owner,
		Group:        group,
		ModTime:      lst.ModTime(),
		IsHidden:     strings.HasPrefix(displayName, ".") && displayName != "." && displayName != "..",
	}

	switch kind {
	case KindDirectory:
		fi.SizeColumn = directoryEntryCount(path)
	case KindBlockDevice, KindCharDevice:
		fi.SizeColumn = fmt.Sprintf("%d:%d", major, minor)
	default:
		fi.sizeBytes = lst.Size()
		fi.SizeColumn = humanize.Bytes(uint64(lst.Size()))
	}

	return fi, nil
}

// SizeBytes returns the raw byte size (0 for directories and devices), used
// for sort-by-size and used-space computation.
func (f FileInfo) SizeBytes() int64 { return f.sizeBytes }

// PermissionString renders the mode the way `ls -l` would, e.g. "drwxr-xr-x".
func (f FileInfo) PermissionString() string {
	return string(f.Kind.DirSymbol()) + f.Mode.Perm().String()[1:]
}

func classify(lst os.FileInfo, path string) (Kind, bool) {
	mode := lst.Mode()
	switch {
	case mode&fs.ModeDir != 0:
		return KindDirectory, false
	case mode&fs.ModeSocket != 0:
		return KindSocket, false
	case mode&fs.ModeDevice != 0 && mode&fs.ModeCharDevice != 0:
		return KindCharDevice, false
	case mode&fs.ModeDevice != 0:
		return KindBlockDevice, false
	case mode&fs.ModeNamedPipe != 0:
		return KindFifo, false
	case mode&fs.ModeSymlink != 0:
		_, err := os.Stat(path)
		return KindSymlink, err == nil
	default:
		return KindNormalFile, false
	}
}

func directoryEntryCount(path string) string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return "0"
	}
	return fmt.Sprintf("%d", len(entries))
}
