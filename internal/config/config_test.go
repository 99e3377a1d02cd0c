package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigMissingFileReturnsDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TerminalProgram != Default().TerminalProgram {
		t.Fatalf("expected default terminal program, got %q", cfg.TerminalProgram)
	}
}

func TestLoadConfigParsesScalarsMapsAndLists(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	configDir := filepath.Join(dir, "dired")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfigFile(t, configDir, "config.yaml", `icons: false
terminal: alacritty
gradient:
  - 10
  - 20
colors:
  directory: blue
  symlink: cyan
keybindings:
  j: MoveDown
  k: MoveUp
`)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Icons {
		t.Fatal("expected icons: false to be parsed")
	}
	if cfg.TerminalProgram != "alacritty" {
		t.Fatalf("TerminalProgram = %q", cfg.TerminalProgram)
	}
	if len(cfg.Gradient) != 2 || cfg.Gradient[0] != "10" {
		t.Fatalf("Gradient = %v", cfg.Gradient)
	}
	if cfg.Colors["directory"] != "blue" {
		t.Fatalf("Colors[directory] = %q", cfg.Colors["directory"])
	}
	if cfg.Keybindings["j"] != "MoveDown" {
		t.Fatalf("Keybindings[j] = %q", cfg.Keybindings["j"])
	}
}

func TestLoadOpenerParsesPerExtensionSections(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	configDir := filepath.Join(dir, "dired")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfigFile(t, configDir, "opener.yaml", `mp4:
  command: mpv
  requires-terminal: false
txt:
  command: vim
  requires-terminal: true
`)

	opener, err := LoadOpener()
	if err != nil {
		t.Fatal(err)
	}
	if opener["mp4"].Command != "mpv" || opener["mp4"].RequiresTerminal {
		t.Fatalf("opener[mp4] = %+v", opener["mp4"])
	}
	if opener["txt"].Command != "vim" || !opener["txt"].RequiresTerminal {
		t.Fatalf("opener[txt] = %+v", opener["txt"])
	}
}

func TestLoadLaunchersMissingFileReturnsNil(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	launchers, err := LoadLaunchers("tuis.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if launchers != nil {
		t.Fatalf("expected nil launchers, got %v", launchers)
	}
}

func TestWriteThenLoadRoundTrips(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := Default()
	cfg.TerminalProgram = "kitty"
	cfg.Colors["directory"] = "green"
	if err := Write(cfg); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if got.TerminalProgram != "kitty" || got.Colors["directory"] != "green" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
