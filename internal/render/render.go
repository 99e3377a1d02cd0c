// Package render projects a read-only snapshot of the running program into
// a terminal frame: header line, one or two file panes (each optionally
// overlaid by a menu or input prompt), and a footer line. It depends only
// on the same leaf packages internal/session itself depends on (directory,
// tree, preview, menu, input, mouse, styles) so internal/session can call
// into it without an import cycle.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/qkzk/dired/internal/directory"
	"github.com/qkzk/dired/internal/fileinfo"
	"github.com/qkzk/dired/internal/input"
	"github.com/qkzk/dired/internal/menu"
	"github.com/qkzk/dired/internal/mouse"
	"github.com/qkzk/dired/internal/preview"
	"github.com/qkzk/dired/internal/styles"
	"github.com/qkzk/dired/internal/tree"
)

// minPaneWidthForDual is the narrowest a single pane may get before dual
// pane mode folds back to single pane.
const minPaneWidthForDual = 30

var (
	paneActiveBorder   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("212")).Padding(0, 1)
	paneInactiveBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	headerStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	footerStyle        = lipgloss.NewStyle().Faint(true)
	flaggedGlyph       = "● "
)

// DisplayKind mirrors session.DisplayMode. A plain copy rather than a
// shared type, since session imports render (for View) and render must
// not import session back.
type DisplayKind int

const (
	DisplayDirectory DisplayKind = iota
	DisplayTree
	DisplayPreview
	DisplayFuzzy
)

// OverlayKind tags what, if anything, a pane draws beneath its listing.
type OverlayKind int

const (
	OverlayNone OverlayKind = iota
	OverlayInput
	OverlayMenu
)

// Pane is everything one tab contributes to a frame.
type Pane struct {
	Active     bool
	Display    DisplayKind
	Directory  *directory.Directory
	Tree       *tree.Tree
	Preview    *preview.Preview
	Overlay    OverlayKind
	Input      *input.Line
	Menu       *menu.Menu
	HeaderLine string
	IsFlagged  func(path string) bool
}

// State is the single read-only snapshot Draw needs to produce one frame.
// HitMap is mutated in place: Draw clears it and records the rectangles
// this layout pass actually used, so the next mouse event routes
// correctly.
type State struct {
	TermWidth, TermHeight int
	Dual                  bool
	Panes                 [2]Pane
	FooterLine            string
	HitMap                *mouse.HitMap
}

// Draw renders one full frame.
func Draw(s State) string {
	s.HitMap.Clear()
	if s.TermWidth == 0 || s.TermHeight == 0 {
		return ""
	}

	dual := s.Dual && s.TermWidth >= minPaneWidthForDual*2
	leftWidth := s.TermWidth
	if dual {
		leftWidth = s.TermWidth / 2
	}
	paneHeight := s.TermHeight - 2
	if paneHeight < 3 {
		paneHeight = 3
	}

	left := renderPane(s.Panes[0], leftWidth, paneHeight, mouse.LeftFile, mouse.LeftMenu, 0, s.HitMap)
	body := left
	header := s.Panes[activePaneIndex(s)].HeaderLine
	if dual {
		rightWidth := s.TermWidth - leftWidth
		right := renderPane(s.Panes[1], rightWidth, paneHeight, mouse.RightFile, mouse.RightMenu, leftWidth, s.HitMap)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	headerLine := headerStyle.Width(s.TermWidth).Render(header)
	footerLine := footerStyle.Width(s.TermWidth).Render(s.FooterLine)

	return lipgloss.JoinVertical(lipgloss.Top, headerLine, body, footerLine)
}

func activePaneIndex(s State) int {
	if s.Panes[0].Active {
		return 0
	}
	return 1
}

// renderPane draws one tab's content plus, if active, its menu/input
// overlay, inside a focus-colored border, and records the quadrants this
// layout pass actually used in hitmap.
func renderPane(p Pane, width, height int, fileQuad, menuQuad mouse.Quadrant, xOffset int, hitmap *mouse.HitMap) string {
	border := paneInactiveBorder
	if p.Active {
		border = paneActiveBorder
	}

	innerWidth := width - 4
	innerHeight := height - 2
	if innerWidth < 1 {
		innerWidth = 1
	}
	if innerHeight < 1 {
		innerHeight = 1
	}

	content := renderPaneBody(p, innerWidth, innerHeight)
	pane := border.Width(innerWidth).Height(innerHeight).Render(content)

	hitmap.Set(fileQuad, mouse.Rect{X: xOffset + 1, Y: 2, W: innerWidth, H: innerHeight})

	if p.Overlay == OverlayNone {
		return pane
	}

	overlay := renderOverlay(p, innerWidth)
	hitmap.Set(menuQuad, mouse.Rect{X: xOffset + 1, Y: 2 + innerHeight + 2, W: innerWidth, H: lipgloss.Height(overlay)})
	return lipgloss.JoinVertical(lipgloss.Top, pane, border.Width(innerWidth).Render(overlay))
}

// renderPaneBody builds the plain-text content for a pane's current
// display mode, then lets a viewport clip/scroll it to the available
// height — the same widget bubbletea programs use for any body taller
// than its frame.
func renderPaneBody(p Pane, width, height int) string {
	var body string
	switch p.Display {
	case DisplayTree:
		body = renderTreeBody(p.Tree, width, height)
	case DisplayPreview:
		body = renderPreviewBody(p.Preview, width, height)
	default:
		body = renderDirectoryBody(p.Directory, p.IsFlagged, width, height)
	}

	vp := viewport.New(width, height)
	vp.SetContent(body)
	return vp.View()
}

func renderDirectoryBody(d *directory.Directory, flagged func(string) bool, width, height int) string {
	if d == nil || len(d.Content) == 0 {
		return footerStyle.Render("(empty)")
	}
	pal := styles.Shared()
	top := d.Window.Top
	end := top + height
	if end > len(d.Content) {
		end = len(d.Content)
	}
	lines := make([]string, 0, end-top)
	for i := top; i < end; i++ {
		fi := d.Content[i]
		lines = append(lines, renderFileRow(fi, i == d.Index, flagged(fi.Path), pal, width))
	}
	return strings.Join(lines, "\n")
}

func renderFileRow(fi fileinfo.FileInfo, selected, flagged bool, pal styles.Palette, width int) string {
	glyph := "  "
	if flagged {
		glyph = flaggedGlyph
	}
	label := fmt.Sprintf("%s%s %s  %s", glyph, fi.PermissionString(), fi.SizeColumn, fi.Name)
	label = runewidth.Truncate(label, width, "…")
	return styles.RowStyle(fi, pal, selected, flagged).Render(label)
}

func renderTreeBody(t *tree.Tree, width, height int) string {
	if t == nil {
		return footerStyle.Render("(no tree)")
	}
	rows, selected := t.Flatten()
	pal := styles.Shared()
	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	end := start + height
	if end > len(rows) {
		end = len(rows)
	}
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		r := rows[i]
		label := runewidth.Truncate(r.Prefix+r.Node.Info.Name, width, "…")
		lines = append(lines, styles.RowStyle(r.Node.Info, pal, i == selected, false).Render(label))
	}
	return strings.Join(lines, "\n")
}

func renderPreviewBody(p *preview.Preview, width, height int) string {
	if p == nil || len(p.Lines) == 0 {
		return footerStyle.Render("(no preview)")
	}
	end := height
	if end > len(p.Lines) {
		end = len(p.Lines)
	}
	lines := make([]string, 0, end)
	for i := 0; i < end; i++ {
		lines = append(lines, runewidth.Truncate(p.Lines[i], width, "…"))
	}
	return strings.Join(lines, "\n")
}

// renderOverlay draws either the active input prompt or the active
// navigable menu under the file pane it belongs to.
func renderOverlay(p Pane, width int) string {
	if p.Overlay == OverlayInput {
		return runewidth.Truncate(p.Input.View(), width, "…")
	}
	return renderMenuRows(p.Menu, width)
}

func renderMenuRows(m *menu.Menu, width int) string {
	if m == nil || m.IsEmpty() {
		return footerStyle.Render("(no entries)")
	}
	rows := m.Rows()
	top := m.Window.Top
	end := top + m.Window.Height
	if end > len(rows) {
		end = len(rows)
	}
	lines := make([]string, 0, end-top)
	for i := top; i < end; i++ {
		label := runewidth.Truncate(rows[i].Label, width, "…")
		if i == m.Index() {
			label = paneActiveBorder.Render(label)
		}
		lines = append(lines, label)
	}
	return strings.Join(lines, "\n")
}
