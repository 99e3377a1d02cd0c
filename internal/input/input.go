// Package input wraps bubbles/textinput with the single-line editing modes
// the file manager needs: command entry, incremental search, renaming, and
// password prompts (mount passphrases).
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode selects the prompt glyph and echo behavior of a Line.
type Mode int

const (
	ModeCommand Mode = iota
	ModeSearch
	ModeRename
	ModeFilter
	ModePassword
)

func (m Mode) prompt() string {
	switch m {
	case ModeSearch:
		return "/"
	case ModeFilter:
		return "filter: "
	case ModeRename:
		return "rename: "
	case ModePassword:
		return "passphrase: "
	default:
		return ":"
	}
}

// Line is a single-line editor bound to one Mode.
type Line struct {
	Mode  Mode
	model textinput.Model
}

// New creates a focused Line in the given mode, optionally prefilled.
func New(mode Mode, prefill string) *Line {
	m := textinput.New()
	m.Prompt = mode.prompt()
	m.SetValue(prefill)
	m.CursorEnd()
	if mode == ModePassword {
		m.EchoMode = textinput.EchoPassword
		m.EchoCharacter = '*'
	}
	m.Focus()
	return &Line{Mode: mode, model: m}
}

// SetWidth resizes the visible scrolled window of the line.
func (l *Line) SetWidth(w int) { l.model.Width = w }

// Value returns the current buffer contents.
func (l *Line) Value() string { return l.model.Value() }

// SetValue replaces the buffer and moves the cursor to the end.
func (l *Line) SetValue(s string) {
	l.model.SetValue(s)
	l.model.CursorEnd()
}

// View renders the prompt plus the scrolled, cursor-marked buffer.
func (l *Line) View() string { return l.model.View() }

// Update forwards a key message to the underlying editor. Enter and Escape
// are not consumed here: callers inspect the original tea.KeyMsg for those
// and decide whether to submit, cancel, or keep editing (e.g. completion
// cycling on Tab happens one layer up, in the completion package).
func (l *Line) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.model, cmd = l.model.Update(msg)
	return cmd
}

// Clear resets the buffer to empty.
func (l *Line) Clear() { l.SetValue("") }
