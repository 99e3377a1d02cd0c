package session

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/atotto/clipboard"

	"github.com/qkzk/dired/internal/bulkrename"
	"github.com/qkzk/dired/internal/config"
	"github.com/qkzk/dired/internal/copyqueue"
	"github.com/qkzk/dired/internal/directory"
	"github.com/qkzk/dired/internal/fileinfo"
	"github.com/qkzk/dired/internal/fuzzyfind"
	"github.com/qkzk/dired/internal/help"
	"github.com/qkzk/dired/internal/menu"
	"github.com/qkzk/dired/internal/mouse"
	"github.com/qkzk/dired/internal/preview"
	"github.com/qkzk/dired/internal/shellcmd"
	"github.com/qkzk/dired/internal/trash"
	"github.com/qkzk/dired/internal/tree"
)

// dispatchAction runs the named action against the focused tab. Actions
// that only ever make sense with a menu/input closed have already been
// filtered by handleKey; this is reached only when Tab.Menu.Kind ==
// MenuNothing.
func (s *Status) dispatchAction(action string) (tea.Model, tea.Cmd) {
	tab := s.ActiveTab()
	switch action {
	case "Quit":
		s.Internal.Quit = true
		return s, tea.Quit

	case "MoveUp":
		s.moveUp(tab)
	case "MoveDown":
		s.moveDown(tab)
	case "MoveLeft":
		if tab.Display == DisplayTree {
			tab.Tree.SelectParent()
		} else if s.Display.Dual {
			s.Focus = mouse.LeftFile
		}
	case "MoveRight":
		if tab.Display == DisplayTree {
			tab.Tree.FirstChild()
		} else if s.Display.Dual {
			s.Focus = mouse.RightFile
		}

	case "Enter":
		return s.actionEnter(tab)
	case "Esc":
		s.Internal.Quit = true
		return s, tea.Quit

	case "ToggleFlag":
		s.actionToggleFlag(tab)
	case "FlagAll":
		s.actionFlagAll(tab)
	case "ClearFlags":
		s.Flagged.Clear()
	case "ReverseFlags":
		s.Flagged.ReverseWithin(dirPaths(tab.Directory))

	case "ToggleHidden":
		tab.Directory.ToggleHidden()
		_ = tab.Directory.Refresh(s.Users)
	case "RefreshView":
		_ = tab.Directory.Refresh(s.Users)
		s.Flagged.DropMissing(pathExists)

	case "ToggleDualPane":
		s.Display.Dual = !s.Display.Dual
	case "TogglePreviewSecond":
		s.Display.PreviewSecond = !s.Display.PreviewSecond
	case "ToggleDisplayFull":
		s.Display.Metadata = !s.Display.Metadata

	case "CopyPaste":
		return s.actionStageTransfer(copyqueue.Copy)
	case "CutPaste":
		return s.actionStageTransfer(copyqueue.Move)
	case "DeleteFile":
		return s.openConfirmDelete(tab)
	case "TrashMoveFile":
		s.actionTrashMove(tab)
	case "TrashOpen":
		s.openMenu(tab, menu.KindTrash, "Trash", trashBackend(s.Trash))
	case "TrashEmpty":
		s.openMenu(tab, menu.KindConfirmEmptyTrash, "Empty trash?",
			confirmBackend("empty trash permanently", s.Trash.Empty))

	case "Search":
		s.openInput(tab, InputSearch)
	case "SearchNext":
		tab.Directory.SearchNext(tab.SearchQuery)
	case "Filter":
		s.openInput(tab, InputFilter)
	case "RegexMatch":
		s.openInput(tab, InputRegexMatch)

	case "Bulk":
		return s.actionBulk(tab)

	case "Tree":
		s.actionToggleTree(tab)
	case "TreeFold":
		if n, ok := tab.Tree.Selected(); ok {
			tab.Tree.ToggleFold(n)
		}
	case "TreeUnfoldAll":
		tab.Tree.UnfoldAll()
	case "TreeFoldAll":
		tab.Tree.FoldAll()

	case "Shortcut":
		s.openMenu(tab, menu.KindShortcut, "Shortcuts", shortcutBackend(tab))
	case "History":
		s.openMenu(tab, menu.KindHistory, "History", historyBackend(tab, nil))
	case "MarksJump":
		s.openMenu(tab, menu.KindMarksJump, "Marks", marksJumpBackend(s.Marks))
	case "MarksNew":
		s.openInput(tab, InputMarksNewKey)
	case "TempMarksJump":
		s.openMenu(tab, menu.KindTempMarksJump, "Temp marks", tempMarksJumpBackend(s.TempMarks))
	case "TempMarksNew":
		s.openInput(tab, InputTempMarksNewKey)
	case "Mount":
		s.openMenu(tab, menu.KindMount, "Removable media", mountBackend())
	case "Context":
		s.openMenu(tab, menu.KindContext, "Actions", contextBackend(func(action string) error {
			_, cmd := s.dispatchAction(action)
			s.pendingCmd = cmd
			return nil
		}))
	case "Goto":
		s.openInputCompleted(tab, InputGoto)
	case "Exec":
		s.openInputCompleted(tab, InputExec)
	case "Command":
		s.openInputCompleted(tab, InputCommand)

	case "NewFile":
		s.openInput(tab, InputNewFile)
	case "NewDir":
		s.openInput(tab, InputNewDir)
	case "Rename":
		s.openInput(tab, InputRename)
	case "Chmod":
		s.openInput(tab, InputChmod)
	case "Symlink":
		s.actionSymlink(tab)

	case "OpenFile":
		return s.actionOpenFile(tab)

	case "Sort":
		s.actionCycleSort(tab)
	case "Compress":
		s.openMenu(tab, menu.KindCompress, "Compress", compressBackend(func(format string) error {
			return s.runCompress(tab, format)
		}))
	case "FuzzyFind":
		s.actionFuzzyFind(tab)
	case "Preview":
		s.actionTogglePreview(tab)
	case "Help":
		s.actionHelp(tab)
	case "TuiApplication":
		return s.openLauncherMenu(tab, menu.KindTuiApplication, "TUI applications", "tuis.yaml", true)
	case "CliApplication":
		return s.openLauncherMenu(tab, menu.KindCliApplication, "CLI applications", "cli.yaml", false)

	case "CopyFilename":
		if fi, ok := tab.Directory.Selected(); ok {
			_ = clipboard.WriteAll(fi.Name)
		}
	case "CopyFilepath":
		if fi, ok := tab.Directory.Selected(); ok {
			_ = clipboard.WriteAll(fi.Path)
		}

	case "Back":
		s.actionBack(tab)
	case "Home":
		s.actionGoto(tab, homeOr(tab.Directory.Path))
	case "Backspace":
		s.actionGoto(tab, filepath.Dir(tab.Directory.Path))
	case "Delete":
		return s.openConfirmDelete(tab)

	case "PageDown", "KeyHome", "End", "PageUp", "Tab", "BackTab", "Jump":
		// Pure navigation niceties with no state-machine impact beyond the
		// window/selection already handled by directory/tree/menu; no-op
		// at the session layer until bound to a concrete widget.
	}
	return s, nil
}

func dirPaths(d *directory.Directory) []string {
	out := make([]string, 0, len(d.Content))
	for _, fi := range d.Content {
		out = append(out, fi.Path)
	}
	return out
}

func pathExists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}

func homeOr(fallback string) string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return fallback
}

func (s *Status) moveUp(tab *Tab) {
	if tab.Display == DisplayTree {
		tab.Tree.Prev()
	} else {
		tab.Directory.MoveUp()
	}
}

func (s *Status) moveDown(tab *Tab) {
	if tab.Display == DisplayTree {
		tab.Tree.Next()
	} else {
		tab.Directory.MoveDown()
	}
}

// actionEnter implements the concrete-menu-to-Enter-semantics table: in
// DisplayDirectory/DisplayTree it descends into a directory or opens a
// file; in an open menu it commits the selected row.
func (s *Status) actionEnter(tab *Tab) (tea.Model, tea.Cmd) {
	switch tab.Display {
	case DisplayTree:
		if n, ok := tab.Tree.Selected(); ok && n.Info.Kind == fileinfo.KindDirectory {
			tab.Tree.EnsureExpanded(n, s.Users)
			tab.Tree.ToggleFold(n)
		}
		return s, nil
	case DisplayFuzzy:
		return s, nil
	default:
		fi, ok := tab.Directory.Selected()
		if !ok {
			return s, nil
		}
		if fi.Kind == fileinfo.KindDirectory {
			s.actionGoto(tab, fi.Path)
			return s, nil
		}
		return s.openWithConfiguredOpener(tab, fi)
	}
}

// actionGoto navigates tab's directory listing to dir, pushing history.
func (s *Status) actionGoto(tab *Tab, dir string) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return
	}
	if tab.Directory.Path == abs {
		return
	}
	d, err := directory.New(abs, s.Users, tab.Directory.Window.Height)
	if err != nil {
		s.LogLine = err.Error()
		return
	}
	tab.Directory = d
	tab.Display = DisplayDirectory
	tab.pushHistory(abs)
}

func (s *Status) actionBack(tab *Tab) {
	if len(tab.History) < 2 {
		return
	}
	tab.History = tab.History[:len(tab.History)-1]
	target := tab.History[len(tab.History)-1]
	d, err := directory.New(target, s.Users, tab.Directory.Window.Height)
	if err != nil {
		return
	}
	tab.Directory = d
}

func (s *Status) actionToggleFlag(tab *Tab) {
	if fi, ok := tab.Directory.Selected(); ok {
		s.Flagged.Toggle(fi.Path)
		tab.Directory.MoveDown()
	}
}

func (s *Status) actionFlagAll(tab *Tab) {
	for _, p := range dirPaths(tab.Directory) {
		if !s.Flagged.Contains(p) {
			s.Flagged.Toggle(p)
		}
	}
}

func (s *Status) actionToggleTree(tab *Tab) {
	if tab.Display == DisplayTree {
		tab.Display = tab.SavedMode
		return
	}
	t, err := tree.Build(tab.Directory.Path, s.Users, tab.Directory.Hidden, tab.Directory.Window.Height)
	if err != nil {
		s.LogLine = err.Error()
		return
	}
	tab.Tree = t
	tab.SavedMode = tab.Display
	tab.Display = DisplayTree
}

// actionTogglePreview implements the Design Notes' preview-persistence
// rule: entering preview always remembers the mode it displaced, and
// leaving it restores exactly that, never a hardcoded directory listing.
func (s *Status) actionTogglePreview(tab *Tab) {
	if tab.Display == DisplayPreview {
		tab.Display = tab.SavedMode
		return
	}
	fi, ok := tab.Directory.Selected()
	if !ok {
		return
	}
	p, err := preview.Build(fi.Path, fi, s.TermWidth/2)
	if err != nil {
		p = preview.Empty()
	}
	tab.Preview = p
	tab.SavedMode = tab.Display
	tab.Display = DisplayPreview
}

// actionHelp shows the active keymap as a preview, reusing the Preview
// display mode and its saved-mode restore rule rather than a dedicated
// overlay.
func (s *Status) actionHelp(tab *Tab) {
	if tab.Display == DisplayPreview && tab.Preview != nil && tab.Preview.Variant == preview.VariantLog {
		tab.Display = tab.SavedMode
		return
	}
	text := help.Render(s.Keys.HelpBindings(), s.TermWidth/2)
	tab.Preview = preview.FromLog(text)
	tab.SavedMode = tab.Display
	tab.Display = DisplayPreview
}

func (s *Status) actionSymlink(tab *Tab) {
	fi, ok := tab.Directory.Selected()
	if !ok {
		return
	}
	dest := filepath.Join(tab.Directory.Path, fi.Name+".link")
	_ = os.Symlink(fi.Path, dest)
	_ = tab.Directory.Refresh(s.Users)
}

func (s *Status) actionTrashMove(tab *Tab) {
	fi, ok := tab.Directory.Selected()
	if !ok {
		return
	}
	entry, err := s.Trash.Move(fi.Path)
	if err != nil {
		s.LogLine = err.Error()
		return
	}
	s.ipc.Moved(fi.Path, filepath.Join(trash.TopDir(), "files", entry.StoredName))
	_ = tab.Directory.Refresh(s.Users)
}

func (s *Status) openConfirmDelete(tab *Tab) (tea.Model, tea.Cmd) {
	targets := s.Flagged.Paths()
	if len(targets) == 0 {
		if fi, ok := tab.Directory.Selected(); ok {
			targets = []string{fi.Path}
		}
	}
	s.openMenu(tab, menu.KindConfirmDelete, fmt.Sprintf("Delete %d item(s)?", len(targets)),
		confirmBackend("delete permanently", func() error {
			for _, p := range targets {
				if err := os.RemoveAll(p); err != nil {
					return err
				}
				s.ipc.Deleted(p)
			}
			s.Flagged.Clear()
			return tab.Directory.Refresh(s.Users)
		}))
	return s, nil
}

// actionStageTransfer stages the flagged set (or, with nothing flagged, the
// other tab's selection) for a copy/move into tab's current directory, handing it to the
// background copy queue and arming the event-loop listeners.
func (s *Status) actionStageTransfer(kind copyqueue.Kind) (tea.Model, tea.Cmd) {
	tab := s.ActiveTab()
	sources := s.Flagged.Paths()
	if len(sources) == 0 {
		if fi, ok := s.InactiveTab().Directory.Selected(); ok {
			sources = []string{fi.Path}
		}
	}
	if len(sources) == 0 {
		return s, nil
	}
	cmd := s.startCopy(copyqueue.Job{Sources: sources, Destination: tab.Directory.Path, Kind: kind})
	s.Flagged.Clear()
	return s, cmd
}

func (s *Status) actionBulk(tab *Tab) (tea.Model, tea.Cmd) {
	names := make([]string, 0, len(tab.Directory.Content))
	for _, fi := range tab.Directory.Content {
		if fi.Name == "." || fi.Name == ".." {
			continue
		}
		if !s.Flagged.IsEmpty() && !s.Flagged.Contains(fi.Path) {
			continue
		}
		names = append(names, fi.Name)
	}
	s.openMenu(tab, menu.KindConfirmBulkAction, fmt.Sprintf("Bulk-edit %d name(s)?", len(names)),
		confirmCmdBackend("open $EDITOR on the name list", func() (tea.Cmd, error) {
			return s.runBulkRename(tab, names)
		}, &s.pendingCmd))
	return s, nil
}

func (s *Status) runCompress(tab *Tab, format string) error {
	targets := s.Flagged.Paths()
	if len(targets) == 0 {
		if fi, ok := tab.Directory.Selected(); ok {
			targets = []string{fi.Path}
		}
	}
	if len(targets) == 0 {
		return fmt.Errorf("compress: nothing selected")
	}
	dest := filepath.Join(tab.Directory.Path, "archive."+format)
	argv := compressArgv(format, dest, targets)
	if argv == nil {
		return fmt.Errorf("compress: unsupported format %q", format)
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Run(); err != nil {
		return err
	}
	return tab.Directory.Refresh(s.Users)
}

func compressArgv(format, dest string, sources []string) []string {
	switch format {
	case "zip":
		return append([]string{"zip", "-r", dest}, sources...)
	case "tar.gz", "tar":
		flags := "-cf"
		if format == "tar.gz" {
			flags = "-czf"
		}
		return append([]string{"tar", flags, dest}, sources...)
	case "gz":
		if len(sources) != 1 {
			return nil
		}
		return []string{"gzip", "-k", sources[0]}
	case "zlib":
		return nil
	default:
		return nil
	}
}

// openLauncherMenu lists the launchers from a config file (tuis.yaml or
// cli.yaml) and wires Enter to either suspend the TUI for an in-window
// program (takesOver) or run and capture output for a background CLI
// tool.
func (s *Status) openLauncherMenu(tab *Tab, kind menu.Kind, title, file string, takesOver bool) (tea.Model, tea.Cmd) {
	launchers, err := config.LoadLaunchers(file)
	if err != nil {
		s.LogLine = err.Error()
		return s, nil
	}
	env := &tabEnvironment{s: s, tab: tab}
	s.openMenu(tab, kind, title, launcherBackend(launchers, func(command string) error {
		argv, err := shellcmd.Parse(command, env)
		if err != nil || len(argv) == 0 {
			return err
		}
		c := exec.Command(argv[0], argv[1:]...)
		if takesOver {
			s.pendingCmd = tea.ExecProcess(c, func(err error) tea.Msg {
				if err != nil {
					s.LogLine = err.Error()
				}
				return nil
			})
			return nil
		}
		out, err := c.CombinedOutput()
		s.LogLine = ansi.Strip(string(out))
		return err
	}))
	return s, nil
}

// actionFuzzyFind collects every path under the current directory once
// (bounded by fuzzyfind.MaxCandidates) and opens an incremental fuzzy
// search prompt over it; refreshCompletion re-ranks the same candidate
// list against each keystroke instead of re-walking the tree.
func (s *Status) actionFuzzyFind(tab *Tab) {
	tab.FuzzyCandidates = fuzzyfind.Collect(tab.Directory.Path)
	tab.SavedMode = tab.Display
	tab.Display = DisplayFuzzy
	s.openInputCompleted(tab, InputSearch)
}

// actionOpenFile and openWithConfiguredOpener resolve opener.yaml's
// per-extension command, falling back to $EDITOR for anything unknown.
func (s *Status) actionOpenFile(tab *Tab) (tea.Model, tea.Cmd) {
	fi, ok := tab.Directory.Selected()
	if !ok {
		return s, nil
	}
	return s.openWithConfiguredOpener(tab, fi)
}

func (s *Status) openWithConfiguredOpener(tab *Tab, fi fileinfo.FileInfo) (tea.Model, tea.Cmd) {
	entry, ok := s.Internal.Opener[fi.Extension]
	command := entry.Command
	if !ok || command == "" {
		command = os.Getenv("EDITOR")
		if command == "" {
			command = "vi"
		}
		command += " %s"
	}
	env := &tabEnvironment{s: s, tab: tab, fi: fi}
	argv, err := shellcmd.Parse(command, env)
	if err != nil {
		s.LogLine = err.Error()
		return s, nil
	}
	if len(argv) == 0 {
		return s, nil
	}
	c := exec.Command(argv[0], argv[1:]...)
	return s, tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			s.LogLine = err.Error()
		}
		return nil
	})
}

// tabEnvironment adapts Status+Tab to shellcmd.Environment.
type tabEnvironment struct {
	s   *Status
	tab *Tab
	fi  fileinfo.FileInfo
}

func (e *tabEnvironment) SelectedPath() string      { return e.fi.Path }
func (e *tabEnvironment) SelectedFilename() string  { return e.fi.Name }
func (e *tabEnvironment) SelectedExtension() string { return e.fi.Extension }
func (e *tabEnvironment) CurrentDirectory() string  { return e.tab.Directory.Path }
func (e *tabEnvironment) FlaggedPaths() []string    { return e.s.Flagged.Paths() }

// actionCycleSort rotates the active directory's sort dimension through
// kind -> name -> date -> size -> extension -> kind, ascending each time;
// 'O' cycles forward, there is no dedicated reverse binding, "v" already
// reverses flags and R is free for future use.
func (s *Status) actionCycleSort(tab *Tab) {
	order := []directory.SortBy{
		directory.SortByKind, directory.SortByName, directory.SortByDate,
		directory.SortBySize, directory.SortByExtension,
	}
	next := order[0]
	for i, by := range order {
		if by == tab.Directory.Sort.By {
			next = order[(i+1)%len(order)]
			break
		}
	}
	tab.Directory.Sort = directory.SortKey{By: next, Order: directory.Ascending}
	_ = tab.Directory.Refresh(s.Users)
}

// runBulkRename writes the current name list to a temp file and suspends
// the TUI to let the user edit it in their $EDITOR, applying the resulting
// rename/delete plan once they exit.
func (s *Status) runBulkRename(tab *Tab, names []string) (tea.Cmd, error) {
	path, err := bulkrename.WriteTempFile(names)
	if err != nil {
		return nil, err
	}
	argv := bulkrename.EditorCommand(path)
	c := exec.Command(argv[0], argv[1:]...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		defer os.Remove(path)
		if err != nil {
			return nil
		}
		edited, err := bulkrename.ReadLines(path)
		if err != nil {
			return nil
		}
		plan, err := bulkrename.Plan(tab.Directory.Path, names, edited)
		if err != nil {
			s.LogLine = err.Error()
			return nil
		}
		bulkrename.Apply(plan)
		_ = tab.Directory.Refresh(s.Users)
		return nil
	}), nil
}
