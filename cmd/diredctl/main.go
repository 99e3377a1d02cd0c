// Command diredctl is the one-shot companion to dired: it edits config
// files and manages the registered plugin list without ever starting the
// interactive session.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	xterm "golang.org/x/term"

	"github.com/qkzk/dired/internal/config"
	"github.com/qkzk/dired/internal/help"
	"github.com/qkzk/dired/internal/keymap"
	"github.com/qkzk/dired/internal/plugin"
)

var (
	keybinds    = flag.Bool("keybinds", false, "print the active keybinding table and exit")
	cloudconfig = flag.Bool("cloudconfig", false, "edit the cloud remotes config in $EDITOR")
	clearCache  = flag.Bool("clear-cache", false, "remove cached user/group and thumbnail data")
	resetConfig = flag.Bool("reset-config", false, "overwrite config.yaml with built-in defaults")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	switch {
	case *keybinds:
		runKeybinds()
	case *cloudconfig:
		runCloudConfig()
	case *clearCache:
		runClearCache()
	case *resetConfig:
		runResetConfig()
	default:
		runSubcommand(flag.Args())
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: diredctl [options]\n       diredctl plugin {add|install|remove|list} ...\n\n")
	flag.PrintDefaults()
}

func runSubcommand(args []string) {
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	switch args[0] {
	case "plugin":
		runPlugin(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "diredctl: unknown subcommand %q\n", args[0])
		flag.Usage()
		os.Exit(2)
	}
}

func runKeybinds() {
	keys := keymap.Default()
	cfg, err := config.LoadConfig()
	if err == nil {
		for k, v := range cfg.Keybindings {
			keys.SetOverride(k, v)
		}
	}
	fmt.Print(help.Markdown(keys.HelpBindings()))
}

func runCloudConfig() {
	path := filepath.Join(config.Dir(), "cloud.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fatal(err)
		}
		seed := "# remotes:\n#   name: rclone-remote-string\n"
		if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
			fatal(err)
		}
	}
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	if !xterm.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Println(path)
		return
	}
	cmd := exec.Command(editor, path)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		fatal(err)
	}
}

func cacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "dired")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "dired")
}

func runClearCache() {
	if err := os.RemoveAll(cacheDir()); err != nil {
		fatal(err)
	}
	fmt.Println("cache cleared:", cacheDir())
}

func runResetConfig() {
	if err := config.Write(config.Default()); err != nil {
		fatal(err)
	}
	fmt.Println("config reset:", filepath.Join(config.Dir(), "config.yaml"))
}

func runPlugin(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "diredctl plugin: expected add|install|remove|list")
		os.Exit(2)
	}
	installDir := filepath.Join(config.Dir(), "plugins")
	list, err := plugin.Load(config.Dir())
	if err != nil {
		fatal(err)
	}

	switch args[0] {
	case "add":
		if len(args) != 3 {
			fmt.Fprintln(os.Stderr, "diredctl plugin add <name> <git-remote>")
			os.Exit(2)
		}
		if err := list.Add(args[1], args[2]); err != nil {
			fatal(err)
		}
	case "install":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "diredctl plugin install <name>")
			os.Exit(2)
		}
		if err := list.Install(args[1], installDir); err != nil {
			fatal(err)
		}
	case "remove":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "diredctl plugin remove <name>")
			os.Exit(2)
		}
		if err := list.Remove(args[1], installDir); err != nil {
			fatal(err)
		}
	case "list":
		for _, e := range list.Entries() {
			fmt.Printf("%s\t%s\n", e.Name, e.Remote)
		}
	default:
		fmt.Fprintf(os.Stderr, "diredctl plugin: unknown action %q\n", args[0])
		os.Exit(2)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "diredctl:", err)
	os.Exit(1)
}
