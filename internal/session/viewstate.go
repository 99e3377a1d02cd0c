package session

import (
	"fmt"

	"github.com/qkzk/dired/internal/gitinfo"
	"github.com/qkzk/dired/internal/render"
)

// renderStatus projects Status into render.State and hands it to the pure
// renderer. It is the only place session data crosses into internal/render.
func renderStatus(s *Status) string {
	state := render.State{
		TermWidth:  s.TermWidth,
		TermHeight: s.TermHeight,
		Dual:       s.Display.Dual,
		FooterLine: s.footerLine(),
		HitMap:     s.HitMap,
	}
	for i, tab := range s.Tabs {
		state.Panes[i] = s.paneFor(tab, i == s.ActiveTabIndex())
	}
	return render.Draw(state)
}

func (s *Status) paneFor(tab *Tab, active bool) render.Pane {
	p := render.Pane{
		Active:     active,
		Display:    displayKind(tab.Display),
		Directory:  tab.Directory,
		Tree:       tab.Tree,
		Preview:    tab.Preview,
		HeaderLine: s.headerLineFor(tab),
		IsFlagged:  s.Flagged.Contains,
	}
	switch tab.Menu.Kind {
	case MenuInputSimple, MenuInputCompleted:
		p.Overlay = render.OverlayInput
		p.Input = tab.Input
	case MenuNavigate, MenuNeedConfirmation:
		p.Overlay = render.OverlayMenu
		p.Menu = tab.ActiveMenu
	}
	return p
}

func displayKind(d DisplayMode) render.DisplayKind {
	switch d {
	case DisplayTree:
		return render.DisplayTree
	case DisplayPreview:
		return render.DisplayPreview
	case DisplayFuzzy:
		return render.DisplayFuzzy
	default:
		return render.DisplayDirectory
	}
}

func (s *Status) headerLineFor(tab *Tab) string {
	line := tab.CurrentPath()
	if git := gitinfo.For(tab.Directory.Path); git.IsRepo {
		line += "  " + git.Line()
	}
	return line
}

func (s *Status) footerLine() string {
	if s.LogLine != "" {
		return s.LogLine
	}
	tab := s.ActiveTab()
	if n := s.Flagged.Len(); n > 0 {
		return fmt.Sprintf("%d flagged", n)
	}
	if fi, ok := tab.Directory.Selected(); ok {
		return fmt.Sprintf("%s  %s  %s", fi.PermissionString(), fi.SizeColumn, fi.Owner)
	}
	return ""
}
