package session

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/qkzk/dired/internal/fileinfo"
	"github.com/qkzk/dired/internal/shellcmd"
)

// commitRename renames the selected entry to newName within the same
// directory; a blank newName or one equal to the original is a no-op.
func (s *Status) commitRename(tab *Tab, newName string) {
	fi, ok := tab.Directory.Selected()
	if !ok || newName == "" || newName == fi.Name {
		return
	}
	dest := filepath.Join(tab.Directory.Path, newName)
	if err := os.Rename(fi.Path, dest); err != nil {
		s.LogLine = err.Error()
		return
	}
	s.ipc.Moved(fi.Path, dest)
	_ = tab.Directory.Refresh(s.Users)
}

// commitCreate makes a new file or directory named name inside the
// current directory.
func (s *Status) commitCreate(tab *Tab, name string, dir bool) {
	if name == "" {
		return
	}
	dest := filepath.Join(tab.Directory.Path, name)
	var err error
	if dir {
		err = os.MkdirAll(dest, 0o755)
	} else {
		var f *os.File
		f, err = os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if f != nil {
			f.Close()
		}
	}
	if err != nil {
		s.LogLine = err.Error()
		return
	}
	_ = tab.Directory.Refresh(s.Users)
}

// commitChmod parses value as an octal permission string (e.g. "755") and
// applies it to the selected entry.
func (s *Status) commitChmod(tab *Tab, value string) {
	fi, ok := tab.Directory.Selected()
	if !ok {
		return
	}
	mode, err := strconv.ParseUint(value, 8, 32)
	if err != nil {
		s.LogLine = "chmod: " + err.Error()
		return
	}
	if err := os.Chmod(fi.Path, os.FileMode(mode)); err != nil {
		s.LogLine = err.Error()
		return
	}
	_ = tab.Directory.Refresh(s.Users)
}

// commitExec runs value as a shell command against the selected file's
// context, synchronously (the caller is expected to route this through
// tea.ExecProcess at the dispatch layer for anything interactive; this
// covers the non-interactive "run and capture" case used by the Exec
// prompt).
func (s *Status) commitExec(tab *Tab, value string) {
	fi, _ := tab.Directory.Selected()
	env := &tabEnvironment{s: s, tab: tab, fi: fi}
	argv, err := shellcmd.Parse(value, env)
	if err != nil {
		s.LogLine = err.Error()
		return
	}
	if len(argv) == 0 {
		return
	}
	out, err := exec.Command(argv[0], argv[1:]...).CombinedOutput()
	if err != nil {
		s.LogLine = err.Error()
		return
	}
	s.LogLine = ansi.Strip(string(out))
	_ = tab.Directory.Refresh(s.Users)
}

// commitFuzzyFind resolves the path chosen from a fuzzy-find prompt: a
// directory is navigated into directly, a file is opened with the
// configured opener after restoring the tab's pre-fuzzy display mode.
func (s *Status) commitFuzzyFind(tab *Tab, value string) (tea.Model, tea.Cmd) {
	tab.Display = tab.SavedMode
	if value == "" {
		return s, nil
	}
	info, err := os.Stat(value)
	if err != nil {
		s.LogLine = err.Error()
		return s, nil
	}
	if info.IsDir() {
		s.actionGoto(tab, value)
		return s, nil
	}
	fi, err := fileinfo.FromPath(value, filepath.Base(value), s.Users)
	if err != nil {
		s.LogLine = err.Error()
		return s, nil
	}
	s.actionGoto(tab, filepath.Dir(value))
	tab.Directory.SearchNext(fi.Name)
	return s.openWithConfiguredOpener(tab, fi)
}

// commitCommand runs value as an action name through dispatchAction, the
// same entry point the context menu's rows use, so the `:` prompt and the
// context menu share one implementation instead of drifting apart. Any
// action name is accepted, not only the context menu's catalog.
func (s *Status) commitCommand(tab *Tab, value string) {
	if value == "" {
		return
	}
	if _, cmd := s.dispatchAction(value); cmd != nil {
		s.pendingCmd = cmd
	}
}

// commitMarksNew binds the first rune of value as a new persistent mark to
// the current directory.
func (s *Status) commitMarksNew(tab *Tab, value string) {
	if value == "" {
		return
	}
	ch := []rune(value)[0]
	if err := s.Marks.New(ch, tab.Directory.Path); err != nil {
		s.LogLine = err.Error()
	}
}

// commitTempMarksNew binds the first digit of value as a non-persistent
// mark slot (0-9) to the current directory.
func (s *Status) commitTempMarksNew(tab *Tab, value string) {
	if value == "" {
		return
	}
	digit := int(value[0] - '0')
	if digit < 0 || digit > 9 {
		s.LogLine = "temp marks: key must be a digit"
		return
	}
	s.TempMarks.Set(digit, tab.Directory.Path)
}
