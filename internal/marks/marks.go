// Package marks implements persistent named bookmarks (a single-character
// key to an absolute path, saved to marks.cfg) and the fixed ten-slot
// digit-keyed temporary marks used for quick back-and-forth jumps.
package marks

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Marks is the persistent char->path bookmark table, backed by a
// "char:path" line-per-entry file (marks.cfg).
type Marks struct {
	savePath string
	entries  map[rune]string
}

// Load reads marks.cfg, ignoring malformed lines (mirroring the original's
// "parse what we can, resave" tolerance).
func Load(savePath string) (*Marks, error) {
	m := &Marks{savePath: savePath, entries: make(map[rune]string)}
	f, err := os.Open(savePath)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	dirty := false
	for scanner.Scan() {
		ch, path, ok := parseLine(scanner.Text())
		if !ok {
			dirty = true
			continue
		}
		m.entries[ch] = path
	}
	if dirty {
		_ = m.save()
	}
	return m, scanner.Err()
}

func parseLine(line string) (rune, string, bool) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return 0, "", false
	}
	ch := []rune(parts[0])[0]
	return ch, parts[1], true
}

// Get returns the path bound to ch, if any.
func (m *Marks) Get(ch rune) (string, bool) {
	path, ok := m.entries[ch]
	return path, ok
}

// New binds ch to path and persists immediately. ':' is rejected since it's
// the field separator.
func (m *Marks) New(ch rune, path string) error {
	if ch == ':' {
		return fmt.Errorf("marks: %q cannot be used as a mark key", ch)
	}
	m.entries[ch] = path
	return m.save()
}

// Delete removes a binding and persists.
func (m *Marks) Delete(ch rune) error {
	delete(m.entries, ch)
	return m.save()
}

func (m *Marks) save() error {
	f, err := os.Create(m.savePath)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, ch := range m.sortedKeys() {
		if _, err := fmt.Fprintf(w, "%c:%s\n", ch, m.entries[ch]); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (m *Marks) sortedKeys() []rune {
	keys := make([]rune, 0, len(m.entries))
	for ch := range m.entries {
		keys = append(keys, ch)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Entry pairs a mark's key and target for display in the marks menu.
type Entry struct {
	Key  rune
	Path string
}

// Entries returns every mark sorted by key, for populating the marks menu.
func (m *Marks) Entries() []Entry {
	keys := m.sortedKeys()
	out := make([]Entry, len(keys))
	for i, ch := range keys {
		out[i] = Entry{Key: ch, Path: m.entries[ch]}
	}
	return out
}

// TempMarkCount is the number of digit-keyed temporary mark slots.
const TempMarkCount = 10

// TempMarks is a fixed-size, in-memory, non-persistent set of quick jump
// slots keyed by digit 0-9.
type TempMarks struct {
	slots [TempMarkCount]string
}

// NewTempMarks returns an empty set of temp marks.
func NewTempMarks() *TempMarks { return &TempMarks{} }

// Set binds digit (0-9) to path.
func (t *TempMarks) Set(digit int, path string) {
	if digit < 0 || digit >= TempMarkCount {
		return
	}
	t.slots[digit] = path
}

// Get returns the path at digit, if any was set.
func (t *TempMarks) Get(digit int) (string, bool) {
	if digit < 0 || digit >= TempMarkCount {
		return "", false
	}
	path := t.slots[digit]
	return path, path != ""
}

// Entries returns the set slots in digit order.
func (t *TempMarks) Entries() []Entry {
	var out []Entry
	for i, path := range t.slots {
		if path != "" {
			out = append(out, Entry{Key: rune('0' + i), Path: path})
		}
	}
	return out
}
