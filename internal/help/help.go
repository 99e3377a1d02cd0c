// Package help renders the keybinding reference shown by the Help action:
// the active keymap's bindings formatted as markdown and rendered through
// glamour for consistent styling with everything else backed by the
// charmbracelet stack.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
)

// Render produces the glamour-rendered help text for bindings, wrapped to
// width columns. A glamour failure (e.g. no TTY color profile detected)
// falls back to the plain markdown source rather than failing the Help
// action outright.
func Render(bindings []key.Binding, width int) string {
	md := Markdown(bindings)
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// Markdown builds the raw markdown table of keybindings, in the order
// bindings was given (the caller, keymap.Table.HelpBindings, sorts by key).
func Markdown(bindings []key.Binding) string {
	var b strings.Builder
	b.WriteString("# Keybindings\n\n| Key | Action |\n| --- | --- |\n")
	for _, bnd := range bindings {
		h := bnd.Help()
		b.WriteString("| `")
		b.WriteString(h.Key)
		b.WriteString("` | ")
		b.WriteString(h.Desc)
		b.WriteString(" |\n")
	}
	return b.String()
}
