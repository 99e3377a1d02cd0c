// Package config defines the Go types for dired's configuration files
// (config.yaml, opener.yaml, tuis.yaml, cli.yaml) and loads them with a
// small hand-rolled indentation reader rather than a YAML library.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Config is config.yaml: colors, icon flag, the gradient used for disk-usage
// bars, the key->action remap table, and the terminal program used to spawn
// in-window TUI applications.
type Config struct {
	Colors          map[string]string
	Icons           bool
	Gradient        []string
	Keybindings     map[string]string // key name -> action name
	TerminalProgram string
}

// Default returns the built-in configuration used when no config.yaml
// exists yet.
func Default() *Config {
	return &Config{
		Colors:          map[string]string{},
		Icons:           true,
		Gradient:        []string{"22", "28", "34", "40", "46"},
		Keybindings:     map[string]string{},
		TerminalProgram: "xterm",
	}
}

// OpenerEntry is one extension's entry in opener.yaml.
type OpenerEntry struct {
	Command         string
	RequiresTerminal bool
}

// Opener maps a lowercase extension (without the leading dot) to the
// program that opens it.
type Opener map[string]OpenerEntry

// Launcher is one entry of tuis.yaml or cli.yaml: a named command offered
// by the TuiApplication/CliApplication menu.
type Launcher struct {
	Name    string
	Command string
}

// Dir returns the directory config files live under, honoring
// XDG_CONFIG_HOME.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dired")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dired")
}

// LoadConfig reads config.yaml from Dir(), or returns Default() if it
// doesn't exist.
func LoadConfig() (*Config, error) {
	path := filepath.Join(Dir(), "config.yaml")
	doc, err := readDocument(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if v, ok := doc.scalars["icons"]; ok {
		cfg.Icons = v == "true"
	}
	if v, ok := doc.scalars["terminal"]; ok {
		cfg.TerminalProgram = v
	}
	if m, ok := doc.maps["colors"]; ok {
		cfg.Colors = m
	}
	if m, ok := doc.maps["keybindings"]; ok {
		cfg.Keybindings = m
	}
	if l, ok := doc.lists["gradient"]; ok {
		cfg.Gradient = l
	}
	return cfg, nil
}

// LoadOpener reads opener.yaml from Dir(). A missing file yields an empty
// Opener, not an error.
func LoadOpener() (Opener, error) {
	path := filepath.Join(Dir(), "opener.yaml")
	doc, err := readDocument(path)
	if os.IsNotExist(err) {
		return Opener{}, nil
	}
	if err != nil {
		return nil, err
	}

	opener := make(Opener, len(doc.nested))
	for ext, fields := range doc.nested {
		opener[strings.ToLower(ext)] = OpenerEntry{
			Command:          fields["command"],
			RequiresTerminal: fields["requires-terminal"] == "true",
		}
	}
	return opener, nil
}

// LoadLaunchers reads a tuis.yaml/cli.yaml-shaped file: a flat list of
// top-level "name: command" pairs, returned sorted by name.
func LoadLaunchers(filename string) ([]Launcher, error) {
	path := filepath.Join(Dir(), filename)
	doc, err := readDocument(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(doc.scalars))
	for name := range doc.scalars {
		names = append(names, name)
	}
	sort.Strings(names)

	launchers := make([]Launcher, 0, len(names))
	for _, name := range names {
		launchers = append(launchers, Launcher{Name: name, Command: doc.scalars[name]})
	}
	return launchers, nil
}

// document is the parsed shape of one indentation-based config file:
// top-level scalars, one level of nested maps (section: / key: value),
// and top-level "- item" lists.
type document struct {
	scalars map[string]string
	maps    map[string]map[string]string
	nested  map[string]map[string]string // same shape as maps; used for opener.yaml sections
	lists   map[string][]string
}

// readDocument parses a minimal indentation-based key:value file. It
// supports three shapes under a top-level key: a scalar ("key: value"), a
// two-space-indented map ("key:\n  sub: value"), and a two-space-indented
// list ("key:\n  - value"). Comments ("#") and blank lines are ignored.
func readDocument(path string) (*document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc := &document{
		scalars: map[string]string{},
		maps:    map[string]map[string]string{},
		nested:  map[string]map[string]string{},
		lists:   map[string][]string{},
	}

	var currentKey string
	for _, raw := range strings.Split(string(data), "\n") {
		line := stripComment(raw)
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, " ") {
			key, value, hasValue := splitKeyValue(line)
			currentKey = key
			if hasValue {
				doc.scalars[key] = value
			}
			continue
		}
		if currentKey == "" {
			continue
		}
		trimmed := strings.TrimLeft(line, " ")
		if strings.HasPrefix(trimmed, "- ") {
			doc.lists[currentKey] = append(doc.lists[currentKey], strings.TrimSpace(trimmed[2:]))
			continue
		}
		k, v, ok := splitKeyValue(trimmed)
		if !ok {
			continue
		}
		if doc.maps[currentKey] == nil {
			doc.maps[currentKey] = map[string]string{}
		}
		doc.maps[currentKey][k] = v
		if doc.nested[currentKey] == nil {
			doc.nested[currentKey] = map[string]string{}
		}
		doc.nested[currentKey][k] = v
	}
	return doc, nil
}

func stripComment(line string) string {
	if i := strings.Index(line, "#"); i >= 0 {
		return line[:i]
	}
	return line
}

func splitKeyValue(line string) (key, value string, hasValue bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	return key, value, value != ""
}

// Write serializes cfg back to config.yaml in Dir(), creating the
// directory if needed.
func Write(cfg *Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "icons: %t\n", cfg.Icons)
	fmt.Fprintf(&b, "terminal: %s\n", cfg.TerminalProgram)
	b.WriteString("gradient:\n")
	for _, g := range cfg.Gradient {
		fmt.Fprintf(&b, "  - %s\n", g)
	}
	b.WriteString("colors:\n")
	for _, k := range sortedKeys(cfg.Colors) {
		fmt.Fprintf(&b, "  %s: %s\n", k, cfg.Colors[k])
	}
	b.WriteString("keybindings:\n")
	for _, k := range sortedKeys(cfg.Keybindings) {
		fmt.Fprintf(&b, "  %s: %s\n", k, cfg.Keybindings[k])
	}

	return os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(b.String()), 0o644)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
