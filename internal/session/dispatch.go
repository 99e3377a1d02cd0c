package session

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qkzk/dired/internal/keymap"
	"github.com/qkzk/dired/internal/mouse"
)

// Update satisfies tea.Model. It is the single place Status is mutated:
// background workers only ever reach here by posting a tea.Msg.
func (s *Status) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		s.handleResize(m)
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(m)

	case tea.MouseMsg:
		return s.handleMouse(m)

	case tickMsg:
		return s, tickCmd()

	case watchEventMsg:
		s.handleWatchEvent(m)
		return s, watchCmd(s.watcher)

	case copyProgressMsg:
		s.LogLine = m.line()
		return s, listenCopyProgress(s.CopyQueue)

	case copyCompleteMsg:
		s.handleCopyComplete(m)
		return s, listenCopyComplete(s.CopyQueue)
	}
	return s, nil
}

func (s *Status) handleResize(m tea.WindowSizeMsg) {
	s.TermWidth, s.TermHeight = m.Width, m.Height
	paneHeight := m.Height
	for _, t := range s.Tabs {
		t.SetWindowHeight(paneHeight)
	}
}

// handleKey is the heart of the (display_mode x menu_mode) state machine:
// an active input/menu always gets first refusal at a keystroke, and only
// a fully closed menu lets a key resolve through the global keymap.
func (s *Status) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tab := s.ActiveTab()

	switch tab.Menu.Kind {
	case MenuInputSimple, MenuInputCompleted:
		return s.handleInputKey(tab, msg)
	case MenuNavigate, MenuNeedConfirmation:
		return s.handleMenuKey(tab, msg)
	}

	action, ok := s.Keys.ActionForKey(msg)
	if !ok {
		return s, nil
	}
	return s.dispatchAction(action)
}

func (s *Status) handleInputKey(tab *Tab, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		s.closeMenu(tab)
		return s, nil
	case tea.KeyEnter:
		return s.submitInput(tab)
	case tea.KeyTab:
		if tab.Menu.Kind == MenuInputCompleted {
			s.cycleCompletion(tab)
		}
		return s, nil
	}
	cmd := tab.Input.Update(msg)
	if tab.Menu.Kind == MenuInputCompleted {
		s.refreshCompletion(tab)
	}
	return s, cmd
}

func (s *Status) handleMenuKey(tab *Tab, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := keymap.KeyName(msg)
	switch {
	case msg.Type == tea.KeyEsc:
		s.closeMenu(tab)
		return s, nil
	case tab.Menu.Kind == MenuNeedConfirmation:
		if key == "y" {
			return s.commitMenu(tab)
		}
		s.closeMenu(tab)
		return s, nil
	case msg.Type == tea.KeyEnter:
		return s.commitMenu(tab)
	case key == "down" || key == "j":
		tab.ActiveMenu.Next()
	case key == "up" || key == "k":
		tab.ActiveMenu.Prev()
	}
	return s, nil
}

func (s *Status) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ev, ok := mouse.Route(msg, s.HitMap)
	if !ok {
		return s, nil
	}
	s.Focus = ev.Quadrant
	tab := s.Tabs[ev.Quadrant.TabIndex()]

	switch ev.Kind {
	case mouse.WheelUp:
		if ev.Quadrant.MenuPane() {
			tab.ActiveMenu.Prev()
		} else {
			s.moveUp(tab)
		}
	case mouse.WheelDown:
		if ev.Quadrant.MenuPane() {
			tab.ActiveMenu.Next()
		} else {
			s.moveDown(tab)
		}
	case mouse.Click:
		if ev.Quadrant.FilePane() {
			s.clickRow(tab, ev.Row)
		}
	case mouse.RightClick:
		if ev.Quadrant.FilePane() && tab.Menu.Kind == MenuNothing {
			return s.dispatchAction("Context")
		}
	}
	return s, nil
}

// clickRow moves the selection directly to the clicked row, local to the
// tab's current window scroll offset.
func (s *Status) clickRow(tab *Tab, row int) {
	index := tab.Directory.Window.Top + row
	tab.Directory.SetIndex(index)
}

func (s *Status) handleWatchEvent(m watchEventMsg) {
	for _, t := range s.Tabs {
		if t.Directory.Path == m.path {
			_ = t.Directory.Refresh(s.Users)
		}
	}
}
