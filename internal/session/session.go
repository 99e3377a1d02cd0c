// Package session owns the top-level event loop: Status, the two Tabs it
// juggles, the four-quadrant focus state machine, and the action
// dispatcher that turns a terminal key, mouse or background-worker event
// into a mutation of exactly one Tab's state.
//
// The event loop itself is the only writer of Status. Background workers
// (internal/copyqueue, internal/watcher) never
// touch Status directly; they post tea.Msg values into bubbletea's queue,
// and Update applies them here, in order, one at a time.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/qkzk/dired/internal/config"
	"github.com/qkzk/dired/internal/copyqueue"
	"github.com/qkzk/dired/internal/flagged"
	"github.com/qkzk/dired/internal/ipcnotify"
	"github.com/qkzk/dired/internal/keymap"
	"github.com/qkzk/dired/internal/marks"
	"github.com/qkzk/dired/internal/mouse"
	"github.com/qkzk/dired/internal/styles"
	"github.com/qkzk/dired/internal/trash"
	"github.com/qkzk/dired/internal/users"
	"github.com/qkzk/dired/internal/watcher"
)

// DisplaySettings are user-toggleable layout options shared by both tabs.
type DisplaySettings struct {
	Dual          bool // side-by-side two panes vs a single full-width pane
	PreviewSecond bool // flipped by TogglePreviewSecond; the renderer does not read it
	Metadata      bool // flipped by ToggleDisplayFull; the renderer does not read it
}

// InternalSettings are process-level knobs that aren't display state.
type InternalSettings struct {
	Opener       config.Opener
	NvimServer   string
	OutputSocket string
	Quit         bool
}

// Status is the whole program state: both tabs, the cross-tab selections
// (flags, marks, trash, copy queue), and the focus pointer that routes
// every input event to exactly one quadrant.
type Status struct {
	Tabs  [2]*Tab
	Focus mouse.Quadrant

	Flagged   *flagged.Set
	Marks     *marks.Marks
	TempMarks *marks.TempMarks
	Trash     *trash.Trash
	CopyQueue *copyqueue.Queue

	Display  DisplaySettings
	Internal InternalSettings

	Config *config.Config
	Users  *users.Cache
	Keys   *keymap.Table

	HitMap *mouse.HitMap

	TermWidth, TermHeight int
	LogLine               string

	watcher    *watcher.Watcher
	ipc        *ipcnotify.Notifier
	pendingCmd tea.Cmd // set by a menu backend that needs commitMenu to return a tea.Cmd
}

// New builds a Status rooted at startPath in tab 0 and the user's home
// directory in tab 1, loading config, marks and the trash index.
// nvimServer and outputSocket come from the TUI's --server/--output-socket
// flags and may both be empty.
func New(startPath, nvimServer, outputSocket string) (*Status, error) {
	abs, err := filepath.Abs(startPath)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.Default()
	}
	opener, err := config.LoadOpener()
	if err != nil {
		opener = config.Opener{}
	}

	uc := users.Shared()

	tr, err := trash.Open()
	if err != nil {
		return nil, fmt.Errorf("session: opening trash: %w", err)
	}
	mk, err := marks.Load(filepath.Join(config.Dir(), "marks.cfg"))
	if err != nil {
		return nil, fmt.Errorf("session: loading marks: %w", err)
	}

	keys := keymap.Default()
	for k, v := range cfg.Keybindings {
		keys.SetOverride(k, v)
	}

	const initialHeight = 40
	left, err := newTab(abs, uc, abs, trash.TopDir(), initialHeight)
	if err != nil {
		return nil, err
	}
	home, err := homeDir()
	if err != nil {
		home = abs
	}
	right, err := newTab(home, uc, abs, trash.TopDir(), initialHeight)
	if err != nil {
		return nil, err
	}

	styles.SetShared(paletteFromConfig(cfg))

	s := &Status{
		Tabs:      [2]*Tab{left, right},
		Focus:     mouse.LeftFile,
		Flagged:   flagged.New(),
		Marks:     mk,
		TempMarks: marks.NewTempMarks(),
		Trash:     tr,
		CopyQueue: copyqueue.New(),
		Display:   DisplaySettings{Dual: true, Metadata: true},
		Internal:  InternalSettings{Opener: opener, NvimServer: nvimServer, OutputSocket: outputSocket},
		Config:    cfg,
		Users:     uc,
		Keys:      keys,
		HitMap:    mouse.NewHitMap(),
		ipc:       ipcnotify.New(outputSocket),
	}
	s.watcher, _ = watcher.New()
	if s.watcher != nil {
		_ = s.watcher.Add(left.Directory.Path)
	}
	return s, nil
}

func homeDir() (string, error) {
	return os.UserHomeDir()
}

func paletteFromConfig(cfg *config.Config) styles.Palette {
	return styles.Default()
}

// ActiveTabIndex derives the focused tab from Focus.
func (s *Status) ActiveTabIndex() int { return s.Focus.TabIndex() }

// ActiveTab returns the currently focused Tab.
func (s *Status) ActiveTab() *Tab { return s.Tabs[s.ActiveTabIndex()] }

// InactiveTab returns the tab that is not focused.
func (s *Status) InactiveTab() *Tab { return s.Tabs[1-s.ActiveTabIndex()] }

// Init satisfies tea.Model. It starts the periodic refresh ticker and, if
// a filesystem watcher was created successfully, its event listener.
func (s *Status) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if s.watcher != nil {
		cmds = append(cmds, watchCmd(s.watcher))
	}
	return tea.Batch(cmds...)
}

// View satisfies tea.Model by delegating to the pure renderer.
func (s *Status) View() string {
	return renderStatus(s)
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type watchEventMsg struct{ path string }

func watchCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		path, ok := <-w.Events()
		if !ok {
			return nil
		}
		return watchEventMsg{path: path}
	}
}
