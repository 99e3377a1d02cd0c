// Package trash implements freedesktop.org Trash specification compliant
// trashing/restoration: files/ and info/ directories under
// $XDG_DATA_HOME/Trash, with one ".trashinfo" sidecar per trashed item.
// A cross-device trash move is rejected outright rather than silently
// falling back to copy-then-unlink, since that would leave the sidecar's
// recorded path and the Trash's filesystem boundary inconsistent.
package trash

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"
)

const infoHeader = "[Trash Info]"

// Trash tracks the two freedesktop directories.
type Trash struct {
	filesDir string
	infoDir  string
}

// Open ensures files/ and info/ exist under the XDG data trash top-dir and
// returns a handle to them.
func Open() (*Trash, error) {
	topDir := TopDir()
	t := &Trash{
		filesDir: filepath.Join(topDir, "files"),
		infoDir:  filepath.Join(topDir, "info"),
	}
	if err := os.MkdirAll(t.filesDir, 0o700); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(t.infoDir, 0o700); err != nil {
		return nil, err
	}
	return t, nil
}

// TopDir returns $XDG_DATA_HOME/Trash, defaulting XDG_DATA_HOME to
// ~/.local/share when unset.
func TopDir() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "Trash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "Trash")
}

// Entry is one parsed .trashinfo sidecar plus the stored-file name it
// describes.
type Entry struct {
	StoredName    string
	OriginalPath  string
	DeletionTime  time.Time
	trashinfoPath string
}

// ErrCrossDevice is returned when the origin and the trash top-dir are on
// different filesystems: freedesktop behavior is a no-op, never
// copy-then-unlink, so the caller should log a warning and leave the file
// in place.
var ErrCrossDevice = errors.New("trash: origin and trash directory are on different filesystems")

// Move trashes the absolute path origin, returning the info it wrote.
func (t *Trash) Move(origin string) (Entry, error) {
	if err := sameDevice(origin, t.filesDir); err != nil {
		return Entry{}, err
	}

	base := filepath.Base(origin)
	storedName, err := t.uniqueName(base)
	if err != nil {
		return Entry{}, err
	}

	infoPath := filepath.Join(t.infoDir, storedName+".trashinfo")
	deletedAt := time.Now()
	if err := writeTrashInfo(infoPath, origin, deletedAt); err != nil {
		return Entry{}, err
	}

	dest := filepath.Join(t.filesDir, storedName)
	if err := os.Rename(origin, dest); err != nil {
		_ = os.Remove(infoPath)
		return Entry{}, err
	}

	return Entry{StoredName: storedName, OriginalPath: origin, DeletionTime: deletedAt, trashinfoPath: infoPath}, nil
}

// uniqueName appends increasing numeric suffixes (.1, .2, ...) to base until
// a name is free in both files/ and info/.
func (t *Trash) uniqueName(base string) (string, error) {
	candidate := base
	for i := 1; ; i++ {
		_, errFiles := os.Lstat(filepath.Join(t.filesDir, candidate))
		_, errInfo := os.Lstat(filepath.Join(t.infoDir, candidate+".trashinfo"))
		if os.IsNotExist(errFiles) && os.IsNotExist(errInfo) {
			return candidate, nil
		}
		if i > 10000 {
			return "", fmt.Errorf("trash: could not find a free name for %q", base)
		}
		candidate = fmt.Sprintf("%s.%d", base, i)
	}
}

func writeTrashInfo(path, origin string, deletedAt time.Time) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	body := fmt.Sprintf("%s\nPath=%s\nDeletionDate=%s\n",
		infoHeader, (&url.URL{Path: origin}).EscapedPath(), deletedAt.Format("2006-01-02T15:04:05"))
	_, err = f.WriteString(body)
	return err
}

// List reads every .trashinfo sidecar and returns entries sorted by
// deletion date, newest first.
func (t *Trash) List() ([]Entry, error) {
	files, err := os.ReadDir(t.infoDir)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, f := range files {
		if !strings.HasSuffix(f.Name(), ".trashinfo") {
			continue
		}
		infoPath := filepath.Join(t.infoDir, f.Name())
		entry, err := parseTrashInfo(infoPath)
		if err != nil {
			continue
		}
		entry.StoredName = strings.TrimSuffix(f.Name(), ".trashinfo")
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DeletionTime.After(entries[j].DeletionTime)
	})
	return entries, nil
}

func parseTrashInfo(path string) (Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return Entry{}, err
	}
	defer f.Close()

	var entry Entry
	entry.trashinfoPath = path
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "Path="):
			decoded, err := url.PathUnescape(strings.TrimPrefix(line, "Path="))
			if err == nil {
				entry.OriginalPath = decoded
			}
		case strings.HasPrefix(line, "DeletionDate="):
			ts, err := time.ParseInLocation("2006-01-02T15:04:05", strings.TrimPrefix(line, "DeletionDate="), time.Local)
			if err == nil {
				entry.DeletionTime = ts
			}
		}
	}
	if entry.OriginalPath == "" {
		return Entry{}, fmt.Errorf("trash: %s has no Path entry", path)
	}
	return entry, scanner.Err()
}

// Restore moves a trashed entry back to its original location, recreating
// missing parent directories, and removes both trash files.
func (t *Trash) Restore(e Entry) error {
	if err := os.MkdirAll(filepath.Dir(e.OriginalPath), 0o755); err != nil {
		return err
	}
	storedPath := filepath.Join(t.filesDir, e.StoredName)
	if err := os.Rename(storedPath, e.OriginalPath); err != nil {
		return err
	}
	return os.Remove(e.trashinfoPath)
}

// Delete permanently removes a trashed entry without restoring it.
func (t *Trash) Delete(e Entry) error {
	storedPath := filepath.Join(t.filesDir, e.StoredName)
	if err := os.RemoveAll(storedPath); err != nil {
		return err
	}
	return os.Remove(e.trashinfoPath)
}

// Empty removes and recreates both trash directories.
func (t *Trash) Empty() error {
	if err := os.RemoveAll(t.filesDir); err != nil {
		return err
	}
	if err := os.RemoveAll(t.infoDir); err != nil {
		return err
	}
	if err := os.MkdirAll(t.filesDir, 0o700); err != nil {
		return err
	}
	return os.MkdirAll(t.infoDir, 0o700)
}

func sameDevice(a, b string) error {
	da, err := deviceOf(a)
	if err != nil {
		return err
	}
	db, err := deviceOf(filepath.Dir(b))
	if err != nil {
		return err
	}
	if da != db {
		return ErrCrossDevice
	}
	return nil
}

func deviceOf(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	sys, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, fmt.Errorf("trash: cannot determine device of %q", path)
	}
	return uint64(sys.Dev), nil
}
