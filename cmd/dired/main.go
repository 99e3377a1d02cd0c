package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/qkzk/dired/internal/session"
)

// Version is set at build time via ldflags.
var Version = ""

var (
	path         = flag.String("path", ".", "starting folder")
	pathShort    = flag.String("P", "", "starting folder (short for --path)")
	nvimServer   = flag.String("server", "", "neovim RPC address, falls back to $NVIM_LISTEN_ADDRESS")
	outputSocket = flag.String("output-socket", "", "unix socket receiving delete/move notifications")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	shortVersion = flag.Bool("v", false, "print version and exit (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *shortVersion {
		fmt.Printf("dired version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *debugFlag || os.Getenv("FM_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	startPath := *path
	if *pathShort != "" {
		startPath = *pathShort
	}

	server := *nvimServer
	if server == "" {
		server = os.Getenv("NVIM_LISTEN_ADDRESS")
	}

	status, err := session.New(startPath, server, *outputSocket)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dired: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(status, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "dired: %v\n", err)
		os.Exit(1)
	}
}

// effectiveVersion falls back to the module's build info when no version
// was baked in at link time.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision == "" {
		return "devel"
	}
	ver := "devel+" + revision
	if len(ver) > 20 {
		ver = ver[:20]
	}
	if dirty {
		ver += "+dirty"
	}
	return ver
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dired [options]\n\n")
		fmt.Fprintf(os.Stderr, "A two-pane terminal file manager.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}
