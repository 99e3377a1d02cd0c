package session

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qkzk/dired/internal/completion"
	"github.com/qkzk/dired/internal/directory"
	"github.com/qkzk/dired/internal/fuzzyfind"
	"github.com/qkzk/dired/internal/input"
	"github.com/qkzk/dired/internal/menu"
)

// openMenu transitions a tab into MenuNavigate (or MenuNeedConfirmation,
// chosen automatically from kind) backed by backend, loading its rows
// immediately.
func (s *Status) openMenu(tab *Tab, kind menu.Kind, title string, backend menu.Backend) {
	state := MenuNavigate
	if kind.NeedsConfirmation() {
		state = MenuNeedConfirmation
	}
	m := menu.New(kind, title, tab.Directory.Window.Height)
	backend.Load(m)
	tab.ActiveMenu = m
	tab.Backend = backend
	tab.Menu = MenuMode{Kind: state, NavigateKind: kind}
}

// openInput transitions a tab into MenuInputSimple for the given prompt
// kind, with an empty buffer (Rename starts from the selected entry's name).
func (s *Status) openInput(tab *Tab, kind InputKind) {
	tab.Input = input.New(inputMode(kind), prefillFor(tab, kind))
	tab.Menu = MenuMode{Kind: MenuInputSimple, InputKind: kind}
}

// openInputCompleted is openInput's counterpart for prompts that drive a
// live completion list (path/command completion, fuzzy search).
func (s *Status) openInputCompleted(tab *Tab, kind InputKind) {
	s.openInput(tab, kind)
	tab.Menu.Kind = MenuInputCompleted
}

func inputMode(kind InputKind) input.Mode {
	switch kind {
	case InputSearch:
		return input.ModeSearch
	case InputFilter:
		return input.ModeFilter
	case InputRename:
		return input.ModeRename
	case InputMountPassword:
		return input.ModePassword
	default:
		return input.ModeCommand
	}
}

func prefillFor(tab *Tab, kind InputKind) string {
	if kind == InputRename {
		if fi, ok := tab.Directory.Selected(); ok {
			return fi.Name
		}
	}
	return ""
}

// closeMenu resets a tab to MenuNothing, dropping any in-progress input or
// completion state so reopening a menu never inherits stale rows.
func (s *Status) closeMenu(tab *Tab) {
	tab.Menu = MenuMode{Kind: MenuNothing}
	tab.Input = nil
	tab.ActiveMenu = nil
	tab.Backend = nil
	tab.completion = nil
}

// commitMenu runs the active menu's backend against the selected row and
// applies its result: navigation, or a tea.Cmd left behind via
// Status.pendingCmd (bulk rename's $EDITOR suspend).
func (s *Status) commitMenu(tab *Tab) (tea.Model, tea.Cmd) {
	row, ok := tab.ActiveMenu.Selected()
	if !ok {
		s.closeMenu(tab)
		return s, nil
	}
	target, shouldClose, err := tab.Backend.Commit(row.Key)
	if err != nil {
		s.LogLine = err.Error()
	}
	cmd := s.pendingCmd
	s.pendingCmd = nil
	if shouldClose {
		s.closeMenu(tab)
	}
	if target != "" {
		s.actionGoto(tab, target)
	}
	return s, cmd
}

// submitInput handles Enter inside an input prompt: it runs the prompt's
// effect against the buffer's current value, then closes the menu. Goto
// and Exec prompts prefer the highlighted completion over the raw buffer
// when one exists, matching Tab-to-accept behavior.
func (s *Status) submitInput(tab *Tab) (tea.Model, tea.Cmd) {
	kind := tab.Menu.InputKind
	value := tab.Input.Value()
	if tab.Menu.Kind == MenuInputCompleted && tab.completion != nil {
		if cur := tab.completion.Current(); cur != "" {
			value = cur
		}
	}
	s.closeMenu(tab)

	switch kind {
	case InputSearch:
		if tab.Display == DisplayFuzzy {
			return s.commitFuzzyFind(tab, value)
		}
		tab.SearchQuery = value
		tab.Directory.SearchNext(value)
	case InputFilter:
		tab.Directory.Filter = directory.Filter{Kind: directory.FilterByName, Arg: value}
		_ = tab.Directory.Refresh(s.Users)
	case InputRegexMatch:
		// Substring matching stands in for a full regex engine here;
		// path/filepath.Match's glob semantics aren't a fit either.
		tab.Directory.Filter = directory.Filter{Kind: directory.FilterByName, Arg: value}
		_ = tab.Directory.Refresh(s.Users)
	case InputRename:
		s.commitRename(tab, value)
	case InputNewFile:
		s.commitCreate(tab, value, false)
	case InputNewDir:
		s.commitCreate(tab, value, true)
	case InputChmod:
		s.commitChmod(tab, value)
	case InputGoto:
		s.actionGoto(tab, value)
	case InputExec:
		s.commitExec(tab, value)
	case InputCommand:
		s.commitCommand(tab, value)
	case InputMarksNewKey:
		s.commitMarksNew(tab, value)
	case InputTempMarksNewKey:
		s.commitTempMarksNew(tab, value)
	}
	return s, nil
}

func (s *Status) cycleCompletion(tab *Tab) {
	if tab.completion == nil {
		tab.completion = completion.New()
	}
	tab.completion.Next()
	if cur := tab.completion.Current(); cur != "" {
		tab.Input.SetValue(cur)
	}
}

func (s *Status) refreshCompletion(tab *Tab) {
	if tab.completion == nil {
		tab.completion = completion.New()
	}
	switch tab.Menu.InputKind {
	case InputGoto:
		tab.completion.Goto(tab.Input.Value())
	case InputExec:
		tab.completion.Exec(tab.Input.Value())
	case InputSearch:
		if tab.Display == DisplayFuzzy {
			tab.completion.SetProposals(fuzzyfind.Match(tab.Input.Value(), tab.FuzzyCandidates))
		} else {
			tab.completion.Search(tab.Input.Value(), entryNames(tab.Directory))
		}
	}
}

func entryNames(d *directory.Directory) []string {
	out := make([]string, 0, len(d.Content))
	for _, fi := range d.Content {
		out = append(out, fi.Name)
	}
	return out
}
