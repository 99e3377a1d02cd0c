// Package bulkrename implements the bulk-edit workflow: write the flagged
// (or current directory's) file names one per line to a temp file, let the
// user edit it in their $EDITOR, then diff the edited list against the
// original line-for-line to produce a rename/delete plan.
package bulkrename

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// WriteTempFile creates a temp file listing names (one per line, in
// order) and returns its path. The caller is responsible for removing it.
func WriteTempFile(names []string) (string, error) {
	f, err := os.CreateTemp("", "dired-bulk-*.txt")
	if err != nil {
		return "", err
	}
	defer f.Close()
	for _, n := range names {
		if _, err := fmt.Fprintln(f, n); err != nil {
			return "", err
		}
	}
	return f.Name(), nil
}

// EditorCommand returns the argv to run the user's editor against path,
// preferring $EDITOR, then $VISUAL, then falling back to vi.
func EditorCommand(path string) []string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if v := os.Getenv(env); v != "" {
			return []string{v, path}
		}
	}
	return []string{"vi", path}
}

// Run launches the editor synchronously (it needs the terminal) and
// returns once the user closes it.
func Run(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	return cmd.Run()
}

// ReadLines reads path back after editing, dropping the trailing blank
// line most editors add.
func ReadLines(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}

// Action is one planned filesystem change: either a rename (NewName set)
// or a deletion (NewName empty, meaning the user removed that line).
type Action struct {
	Dir     string
	OldName string
	NewName string // empty means the line was deleted: the file should be removed
}

// Plan compares the original and edited name lists positionally — line N
// of the edited file is what happens to line N of the original — and
// returns the set of actions that differ from a no-op. A line count
// mismatch is an error: the user must not add or remove lines, only edit
// or blank them out to mark a deletion.
func Plan(dir string, original, edited []string) ([]Action, error) {
	if len(original) != len(edited) {
		return nil, fmt.Errorf("bulkrename: expected %d lines, got %d: do not add or remove lines", len(original), len(edited))
	}
	var actions []Action
	for i, old := range original {
		newName := strings.TrimSpace(edited[i])
		if newName == old {
			continue
		}
		actions = append(actions, Action{Dir: dir, OldName: old, NewName: newName})
	}
	return actions, nil
}

// Apply executes a plan: renames where NewName is set, removes where it
// isn't, applied in order so a chain of swaps doesn't clobber itself
// (rename A->tmp, tmp->B style plans are the caller's responsibility to
// avoid; this applies literally).
func Apply(actions []Action) []error {
	var errs []error
	for _, a := range actions {
		oldPath := filepath.Join(a.Dir, a.OldName)
		if a.NewName == "" {
			if err := os.RemoveAll(oldPath); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		newPath := filepath.Join(a.Dir, a.NewName)
		if err := os.Rename(oldPath, newPath); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
