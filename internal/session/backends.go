package session

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/qkzk/dired/internal/config"
	"github.com/qkzk/dired/internal/history"
	"github.com/qkzk/dired/internal/marks"
	"github.com/qkzk/dired/internal/menu"
	"github.com/qkzk/dired/internal/trash"
)

// closureBackend adapts a pair of load/commit closures to menu.Backend, so
// every concrete menu below can be a few lines of session-aware glue
// instead of its own named type.
type closureBackend struct {
	load   func(m *menu.Menu)
	commit func(key string) (string, bool, error)
}

func (b closureBackend) Load(m *menu.Menu) { b.load(m) }
func (b closureBackend) Commit(key string) (string, bool, error) { return b.commit(key) }

// historyBackend lists a tab's in-memory visited-directory stack plus, if
// a persisted store is attached, the cross-session SQLite history.
func historyBackend(t *Tab, store *history.Store) menu.Backend {
	return closureBackend{
		load: func(m *menu.Menu) {
			rows := make([]menu.Row, 0, len(t.History))
			for i := len(t.History) - 1; i >= 0; i-- {
				rows = append(rows, menu.Row{Label: t.History[i], Key: t.History[i]})
			}
			if store != nil {
				if entries, err := store.RecentVisits(50); err == nil {
					for _, e := range entries {
						rows = append(rows, menu.Row{Label: e.Path, Key: e.Path})
					}
				}
			}
			m.Replace(rows)
		},
		commit: func(key string) (string, bool, error) { return key, true, nil },
	}
}

// shortcutBackend lists the Shortcut menu's fixed targets plus mounts.
func shortcutBackend(t *Tab) menu.Backend {
	return closureBackend{
		load: func(m *menu.Menu) {
			paths := t.Shortcuts.Paths()
			rows := make([]menu.Row, len(paths))
			for i, p := range paths {
				rows[i] = menu.Row{Label: p, Key: p}
			}
			m.Replace(rows)
		},
		commit: func(key string) (string, bool, error) { return key, true, nil },
	}
}

// trashBackend lists trashed entries; Enter restores the selected one.
func trashBackend(tr *trash.Trash) menu.Backend {
	return closureBackend{
		load: func(m *menu.Menu) {
			entries, err := tr.List()
			if err != nil {
				m.Replace(nil)
				return
			}
			rows := make([]menu.Row, len(entries))
			for i, e := range entries {
				rows[i] = menu.Row{
					Label: fmt.Sprintf("%s  (from %s)", e.StoredName, e.OriginalPath),
					Key:   e.StoredName,
				}
			}
			m.Replace(rows)
		},
		commit: func(key string) (string, bool, error) {
			entries, err := tr.List()
			if err != nil {
				return "", true, err
			}
			for _, e := range entries {
				if e.StoredName == key {
					if err := tr.Restore(e); err != nil {
						return "", true, err
					}
					return e.OriginalPath, true, nil
				}
			}
			return "", true, fmt.Errorf("trash: %q not found", key)
		},
	}
}

// flaggedBackend lists every flagged path; Enter navigates to it.
func flaggedBackend(s *Status) menu.Backend {
	return closureBackend{
		load: func(m *menu.Menu) {
			paths := s.Flagged.Paths()
			rows := make([]menu.Row, len(paths))
			for i, p := range paths {
				rows[i] = menu.Row{Label: p, Key: p}
			}
			m.Replace(rows)
		},
		commit: func(key string) (string, bool, error) { return key, true, nil },
	}
}

// marksJumpBackend lists persistent marks; Enter jumps to the bound path.
func marksJumpBackend(mk *marks.Marks) menu.Backend {
	return closureBackend{
		load: func(m *menu.Menu) {
			entries := mk.Entries()
			rows := make([]menu.Row, len(entries))
			for i, e := range entries {
				rows[i] = menu.Row{Label: fmt.Sprintf("%c  %s", e.Key, e.Path), Key: e.Path}
			}
			m.Replace(rows)
		},
		commit: func(key string) (string, bool, error) { return key, true, nil },
	}
}

// tempMarksJumpBackend is marksJumpBackend's digit-keyed, non-persistent
// counterpart.
func tempMarksJumpBackend(tm *marks.TempMarks) menu.Backend {
	return closureBackend{
		load: func(m *menu.Menu) {
			entries := tm.Entries()
			rows := make([]menu.Row, len(entries))
			for i, e := range entries {
				rows[i] = menu.Row{Label: fmt.Sprintf("%c  %s", e.Key, e.Path), Key: e.Path}
			}
			m.Replace(rows)
		},
		commit: func(key string) (string, bool, error) { return key, true, nil },
	}
}

// launcherBackend lists configured TUI/CLI application launchers (tuis.yaml
// or cli.yaml); Enter hands the selected command to run, which the caller
// wires to tea.ExecProcess (TUI launchers) or exec.Command (CLI launchers
// whose output is captured rather than taking over the terminal).
func launcherBackend(launchers []config.Launcher, run func(command string) error) menu.Backend {
	return closureBackend{
		load: func(m *menu.Menu) {
			rows := make([]menu.Row, len(launchers))
			for i, l := range launchers {
				rows[i] = menu.Row{Label: l.Name, Key: l.Command}
			}
			m.Replace(rows)
		},
		commit: func(key string) (string, bool, error) { return "", true, run(key) },
	}
}

// confirmBackend wraps a single committed action behind the
// NeedConfirmation variant: its one row is the prompt text, and Enter runs
// action. The boolean-keyed Key field carries nothing useful here since
// NeedConfirmation never shows more than one row.
func confirmBackend(prompt string, action func() error) menu.Backend {
	return closureBackend{
		load: func(m *menu.Menu) {
			m.Replace([]menu.Row{{Label: prompt, Key: "y"}})
		},
		commit: func(key string) (string, bool, error) {
			if err := action(); err != nil {
				return "", true, err
			}
			return "", true, nil
		},
	}
}

// confirmCmdBackend is confirmBackend's variant for actions that need to
// suspend the TUI (tea.ExecProcess) rather than just return an error, e.g.
// launching $EDITOR for a bulk rename. The tea.Cmd it produces is handed
// back to commitMenu through the *pending field.
func confirmCmdBackend(prompt string, action func() (tea.Cmd, error), pending *tea.Cmd) menu.Backend {
	return closureBackend{
		load: func(m *menu.Menu) {
			m.Replace([]menu.Row{{Label: prompt, Key: "y"}})
		},
		commit: func(key string) (string, bool, error) {
			cmd, err := action()
			*pending = cmd
			if err != nil {
				return "", true, err
			}
			return "", true, nil
		},
	}
}

// compressBackend offers the fixed set of archive formats; Enter runs the
// compression and returns no navigation target.
func compressBackend(run func(format string) error) menu.Backend {
	formats := []string{"zip", "tar.gz", "tar", "gz", "zlib"}
	return closureBackend{
		load: func(m *menu.Menu) {
			rows := make([]menu.Row, len(formats))
			for i, f := range formats {
				rows[i] = menu.Row{Label: f, Key: f}
			}
			m.Replace(rows)
		},
		commit: func(key string) (string, bool, error) {
			return "", true, run(key)
		},
	}
}

// contextBackend is the action picker opened by right-click or the Context
// action: a fixed catalog of
// action names the dispatcher already knows how to run, reused here so the
// menu and the keymap never drift out of sync.
func contextBackend(run func(action string) error) menu.Backend {
	actions := []string{
		"OpenFile", "Rename", "Chmod", "CopyPaste", "CutPaste", "DeleteFile",
		"TrashMoveFile", "NewFile", "NewDir", "Symlink", "Exec", "Compress",
	}
	return closureBackend{
		load: func(m *menu.Menu) {
			rows := make([]menu.Row, len(actions))
			for i, a := range actions {
				rows[i] = menu.Row{Label: a, Key: a}
			}
			m.Replace(rows)
		},
		commit: func(key string) (string, bool, error) {
			return "", true, run(key)
		},
	}
}
