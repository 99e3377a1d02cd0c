package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewPrefillsAndPromptsByMode(t *testing.T) {
	tests := []struct {
		mode       Mode
		wantPrompt string
	}{
		{ModeCommand, ":"},
		{ModeSearch, "/"},
		{ModeFilter, "filter: "},
		{ModeRename, "rename: "},
		{ModePassword, "passphrase: "},
	}
	for _, tt := range tests {
		l := New(tt.mode, "")
		if l.model.Prompt != tt.wantPrompt {
			t.Errorf("mode %d: prompt = %q, want %q", tt.mode, l.model.Prompt, tt.wantPrompt)
		}
	}
}

func TestRenamePrefillsValue(t *testing.T) {
	l := New(ModeRename, "report.txt")
	if l.Value() != "report.txt" {
		t.Errorf("Value() = %q, want %q", l.Value(), "report.txt")
	}
}

func TestUpdateAppendsRunes(t *testing.T) {
	l := New(ModeCommand, "")
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("cd")})
	if l.Value() != "cd" {
		t.Errorf("Value() after typing = %q, want %q", l.Value(), "cd")
	}
}

func TestClearEmptiesBuffer(t *testing.T) {
	l := New(ModeSearch, "needle")
	l.Clear()
	if l.Value() != "" {
		t.Errorf("Value() after Clear = %q, want empty", l.Value())
	}
}
