// Package completion proposes and cycles through path, executable, and
// filename completions for the command and search prompts.
package completion

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/qkzk/dired/internal/selectable"
)

// Completion holds the current proposal list and lets the user cycle
// through it with Next/Prev.
type Completion struct {
	list *selectable.List[string]
}

// New returns an empty Completion.
func New() *Completion {
	return &Completion{list: selectable.NewList[string](nil)}
}

// Next cycles to the next proposal, wrapping.
func (c *Completion) Next() { c.list.Next() }

// Prev cycles to the previous proposal, wrapping.
func (c *Completion) Prev() { c.list.Prev() }

// Current returns the proposal under the cursor, or "" if there are none.
func (c *Completion) Current() string {
	s, ok := c.list.Selected()
	if !ok {
		return ""
	}
	return s
}

// Proposals returns every current proposal, in order.
func (c *Completion) Proposals() []string { return c.list.Items() }

// Reset clears every proposal.
func (c *Completion) Reset() { c.list.Replace(nil) }

// Goto proposes subdirectories of the parent of input whose name starts
// with the last path segment, for cd/path commands.
func (c *Completion) Goto(input string) {
	parent, lastName := splitInputPath(input)
	if lastName == "" {
		c.Reset()
		return
	}
	resolved, err := filepath.Abs(expandTilde(parent))
	if err != nil {
		c.Reset()
		return
	}
	entries, err := os.ReadDir(resolved)
	if err != nil {
		c.Reset()
		return
	}
	var proposals []string
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), lastName) {
			continue
		}
		proposals = append(proposals, filepath.Join(resolved, e.Name()))
	}
	c.list.Replace(proposals)
}

// Exec proposes executables on PATH whose name starts with input.
func (c *Completion) Exec(input string) {
	var proposals []string
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasPrefix(e.Name(), input) {
				continue
			}
			proposals = append(proposals, filepath.Join(dir, e.Name()))
		}
	}
	c.list.Replace(proposals)
}

// Search fuzzy-matches input against names and keeps the hits ordered by
// match quality, for the incremental filename search prompt.
func (c *Completion) Search(input string, names []string) {
	if input == "" {
		c.Reset()
		return
	}
	matches := fuzzy.Find(input, names)
	proposals := make([]string, len(matches))
	for i, m := range matches {
		proposals[i] = m.Str
	}
	c.list.Replace(proposals)
}

// SetProposals installs an already-ranked proposal list, bypassing
// Completion's own fuzzy matching — used by callers (e.g. fuzzy find over a
// whole directory tree) that rank candidates themselves.
func (c *Completion) SetProposals(names []string) { c.list.Replace(names) }

// ActionNames fuzzy-matches input against a fixed catalog of command names,
// for the `:` command prompt.
func (c *Completion) ActionNames(input string, catalog []string) {
	c.Search(input, catalog)
}

func splitInputPath(input string) (parent, lastName string) {
	steps := strings.Split(input, "/")
	lastName = steps[len(steps)-1]
	steps = steps[:len(steps)-1]
	switch {
	case len(steps) == 0:
		parent = "/"
	case len(steps) == 1 && steps[0] == "":
		parent = "/"
	case len(steps) == 1 && steps[0] == "~":
		parent = "~"
	default:
		parent = strings.Join(steps, "/")
		if !strings.HasPrefix(parent, "/") && !strings.HasPrefix(parent, "~") {
			parent = "/" + parent
		}
	}
	return parent, lastName
}

func expandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
