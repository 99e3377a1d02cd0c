package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultBindingsResolve(t *testing.T) {
	table := Default()
	cases := map[string]string{
		"q":     "Quit",
		"space": "ToggleFlag",
		"c":     "CopyPaste",
		"t":     "Tree",
	}
	for key, want := range cases {
		got, ok := table.Action(key)
		if !ok || got != want {
			t.Fatalf("Action(%q) = %q, %v; want %q", key, got, ok, want)
		}
	}
}

func TestSetOverrideTakesPrecedence(t *testing.T) {
	table := Default()
	table.SetOverride("c", "CustomCopy")
	got, ok := table.Action("c")
	if !ok || got != "CustomCopy" {
		t.Fatalf("Action(c) = %q, %v; want CustomCopy", got, ok)
	}
}

func TestSetOverrideEmptyRemovesBinding(t *testing.T) {
	table := Default()
	table.SetOverride("q", "")
	if _, ok := table.Action("q"); ok {
		t.Fatal("expected q to be unbound after empty override")
	}
}

func TestActionForKeyHandlesRunesAndSpecialKeys(t *testing.T) {
	table := Default()
	if got, ok := table.ActionForKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")}); !ok || got != "Tree" {
		t.Fatalf("ActionForKey(t) = %q, %v", got, ok)
	}
	if got, ok := table.ActionForKey(tea.KeyMsg{Type: tea.KeyEsc}); !ok || got != "Quit" {
		t.Fatalf("ActionForKey(esc) = %q, %v", got, ok)
	}
}

func TestBindingsOverlaysOverridesOnDefaults(t *testing.T) {
	table := Default()
	table.SetOverride("z", "CustomFold")
	bindings := table.Bindings()
	if bindings["z"] != "CustomFold" {
		t.Fatalf("Bindings()[z] = %q", bindings["z"])
	}
	if bindings["q"] != "Quit" {
		t.Fatalf("Bindings()[q] = %q", bindings["q"])
	}
}
