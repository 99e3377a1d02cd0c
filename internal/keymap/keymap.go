// Package keymap maps terminal key events to named actions, with a
// built-in default table overridable per-key from config.yaml.
package keymap

import (
	"sort"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Table is a key-name -> action-name map. An empty Overrides entry for a
// key removes its default binding.
type Table struct {
	defaults  map[string]string
	overrides map[string]string
}

// Default returns the built-in key table, grounded on the original
// implementation's default bindings.
func Default() *Table {
	return &Table{
		defaults: map[string]string{
			"esc":       "Quit",
			"up":        "MoveUp",
			"down":      "MoveDown",
			"left":      "MoveLeft",
			"right":     "MoveRight",
			"backspace": "Backspace",
			"delete":    "Delete",
			"home":      "KeyHome",
			"end":       "End",
			"pgdown":    "PageDown",
			"pgup":      "PageUp",
			"enter":     "Enter",
			"tab":       "Tab",
			"shift+tab": "BackTab",
			"space":     "ToggleFlag",
			"/":         "Search",
			"*":         "FlagAll",
			"'":         "MarksJump",
			"-":         "Back",
			"~":         "Home",
			":":         "Command",
			"B":         "Bulk",
			"C":         "Compress",
			"F":         "Filter",
			"G":         "Shortcut",
			"H":         "History",
			"M":         "MarksNew",
			"O":         "Sort",
			"P":         "Preview",
			"X":         "TrashMoveFile",
			"a":         "ToggleHidden",
			"c":         "CopyPaste",
			"d":         "NewDir",
			"e":         "Exec",
			"f":         "SearchNext",
			"g":         "Goto",
			"h":         "Help",
			"j":         "Jump",
			"l":         "Symlink",
			"m":         "Chmod",
			"n":         "NewFile",
			"o":         "OpenFile",
			"p":         "CutPaste",
			"q":         "Quit",
			"r":         "Rename",
			"s":         "Shell",
			"t":         "Tree",
			"u":         "ClearFlags",
			"v":         "ReverseFlags",
			"w":         "RegexMatch",
			"x":         "DeleteFile",
			"z":         "TreeFold",
			"Z":         "TreeUnfoldAll",
			"alt+z":     "TreeFoldAll",
			"alt+e":     "ToggleDisplayFull",
			"alt+f":     "ToggleDualPane",
			"alt+p":     "TogglePreviewSecond",
			"alt+x":     "TrashEmpty",
			"alt+o":     "TrashOpen",
			"ctrl+c":    "CopyFilename",
			"ctrl+d":    "Delete",
			"ctrl+f":    "FuzzyFind",
			"ctrl+p":    "CopyFilepath",
			"ctrl+r":    "RefreshView",
			"alt+t":     "TuiApplication",
			"alt+c":     "CliApplication",
			"alt+m":     "Mount",
			"ctrl+e":    "Context",
			"T":         "TempMarksJump",
			"N":         "TempMarksNew",
		},
		overrides: map[string]string{},
	}
}

// SetOverride remaps key to action, taking precedence over the default
// table. Passing an empty action removes the binding entirely.
func (t *Table) SetOverride(key, action string) {
	t.overrides[key] = action
}

// Action returns the action bound to key, preferring a user override over
// the default table. The second result is false if key is unbound.
func (t *Table) Action(key string) (string, bool) {
	if action, ok := t.overrides[key]; ok {
		return action, action != ""
	}
	action, ok := t.defaults[key]
	return action, ok
}

// ActionForKey resolves a tea.KeyMsg straight to an action name.
func (t *Table) ActionForKey(msg tea.KeyMsg) (string, bool) {
	return t.Action(KeyName(msg))
}

// Bindings returns every key -> action pair currently in effect (defaults
// overlaid by overrides), used by the --keybinds companion-CLI report.
func (t *Table) Bindings() map[string]string {
	out := make(map[string]string, len(t.defaults))
	for k, v := range t.defaults {
		out[k] = v
	}
	for k, v := range t.overrides {
		if v == "" {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// HelpBindings converts the active table into bubbles/key.Binding values,
// sorted by key name, for the Help screen's renderer to format.
func (t *Table) HelpBindings() []key.Binding {
	all := t.Bindings()
	names := make([]string, 0, len(all))
	for k := range all {
		names = append(names, k)
	}
	sort.Strings(names)

	bindings := make([]key.Binding, 0, len(names))
	for _, k := range names {
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, all[k]),
		))
	}
	return bindings
}

// KeyName converts a tea.KeyMsg into the string form used as a table key.
func KeyName(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyRunes:
		return string(msg.Runes)
	case tea.KeyEsc:
		return "esc"
	case tea.KeySpace:
		return "space"
	case tea.KeyEnter:
		return "enter"
	case tea.KeyTab:
		return "tab"
	case tea.KeyShiftTab:
		return "shift+tab"
	case tea.KeyBackspace:
		return "backspace"
	case tea.KeyDelete:
		return "delete"
	case tea.KeyUp:
		return "up"
	case tea.KeyDown:
		return "down"
	case tea.KeyLeft:
		return "left"
	case tea.KeyRight:
		return "right"
	case tea.KeyHome:
		return "home"
	case tea.KeyEnd:
		return "end"
	case tea.KeyPgUp:
		return "pgup"
	case tea.KeyPgDown:
		return "pgdown"
	default:
		return msg.String()
	}
}
