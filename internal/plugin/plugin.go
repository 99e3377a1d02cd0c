// Package plugin manages the flat list of external TUI/CLI launchers a user
// has registered with diredctl: a name and a git remote, one per line in
// plugins.list, installed by shelling out to git the same way dired itself
// spawns openers and editors rather than vendoring a git implementation.
package plugin

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one registered plugin: a name and the git remote it was added
// from.
type Entry struct {
	Name   string
	Remote string
}

// List is the full set of registered plugins, keyed by name.
type List struct {
	path    string
	entries map[string]string // name -> remote
}

// Load reads plugins.list from dir (a directory, typically config.Dir()),
// returning an empty List if the file does not exist yet.
func Load(dir string) (*List, error) {
	l := &List{path: filepath.Join(dir, "plugins.list"), entries: make(map[string]string)}
	f, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return l, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name, remote, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		l.entries[name] = remote
	}
	return l, scanner.Err()
}

func parseLine(line string) (name, remote string, ok bool) {
	parts := strings.SplitN(line, "\t", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// Add registers name->remote and persists the list, without cloning it.
func (l *List) Add(name, remote string) error {
	l.entries[name] = remote
	return l.save()
}

// Remove drops name from the list (and, if installDir is non-empty, deletes
// its clone under installDir) and persists the list.
func (l *List) Remove(name, installDir string) error {
	if _, ok := l.entries[name]; !ok {
		return fmt.Errorf("plugin: %q is not registered", name)
	}
	delete(l.entries, name)
	if installDir != "" {
		if err := os.RemoveAll(filepath.Join(installDir, name)); err != nil {
			return err
		}
	}
	return l.save()
}

// Entries returns every registered plugin, sorted by name.
func (l *List) Entries() []Entry {
	names := make([]string, 0, len(l.entries))
	for n := range l.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]Entry, len(names))
	for i, n := range names {
		out[i] = Entry{Name: n, Remote: l.entries[n]}
	}
	return out
}

// Install clones name's registered remote into installDir/name, or pulls
// the latest commit if it's already cloned.
func (l *List) Install(name, installDir string) error {
	remote, ok := l.entries[name]
	if !ok {
		return fmt.Errorf("plugin: %q is not registered", name)
	}
	dest := filepath.Join(installDir, name)
	if _, err := os.Stat(dest); err == nil {
		cmd := exec.Command("git", "-C", dest, "pull", "--ff-only")
		return runQuiet(cmd)
	}
	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return err
	}
	cmd := exec.Command("git", "clone", "--depth", "1", remote, dest)
	return runQuiet(cmd)
}

func runQuiet(cmd *exec.Cmd) error {
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", strings.Join(cmd.Args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (l *List) save() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(l.path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, e := range l.Entries() {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", e.Name, e.Remote); err != nil {
			return err
		}
	}
	return w.Flush()
}
