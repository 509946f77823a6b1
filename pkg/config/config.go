package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Actions that can be rebound from the config file.
const (
	ActionQuit   = "quit"
	ActionSave   = "save"
	ActionSearch = "search"
)

// Keybinding represents a single key combination.
type Keybinding struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// Config holds user configuration values.
type Config struct {
	Keymap map[string]Keybinding
	Theme  Theme
}

// file mirrors the on-disk layout of config.yaml / config.toml.
type file struct {
	Theme     string            `yaml:"theme" toml:"theme"`
	ThemeFile string            `yaml:"theme_file" toml:"theme_file"`
	Keymap    map[string]string `yaml:"keymap" toml:"keymap"`
}

// Default returns a Config with default key mappings and theme.
func Default() *Config {
	return &Config{Keymap: DefaultKeymap(), Theme: DefaultTheme()}
}

// DefaultKeymap provides builtin command bindings.
func DefaultKeymap() map[string]Keybinding {
	return map[string]Keybinding{
		ActionQuit:   mustParse("Ctrl+Q"),
		ActionSave:   mustParse("Ctrl+S"),
		ActionSearch: mustParse("Ctrl+F"),
	}
}

// Dir is where LoadDefault looks for config files.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".termedit")
}

// Load loads configuration from path. The format follows the extension:
// .toml is TOML, anything else YAML. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	var raw file
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.apply(raw, filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("apply config %q: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault reads config.yaml or, failing that, config.toml from Dir.
func LoadDefault() (*Config, error) {
	dir := Dir()
	if dir == "" {
		return Default(), nil
	}
	for _, name := range []string{"config.yaml", "config.toml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

func (c *Config) apply(raw file, base string) error {
	if raw.Theme != "" {
		th, ok := ThemeByName(raw.Theme)
		if !ok {
			return fmt.Errorf("unknown theme %q", raw.Theme)
		}
		c.Theme = th
	}
	if raw.ThemeFile != "" {
		path := raw.ThemeFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(base, path)
		}
		th, err := ImportTheme(path)
		if err != nil {
			return err
		}
		c.Theme = th
	}
	for action, binding := range raw.Keymap {
		if _, ok := c.Keymap[action]; !ok {
			return fmt.Errorf("unknown action %q", action)
		}
		kb, err := ParseKeybinding(binding)
		if err != nil {
			return err
		}
		c.Keymap[action] = kb
	}
	return nil
}

// ParseKeybinding converts a textual key description like "Ctrl+S" into a
// Keybinding. Only Ctrl+<letter> is supported.
func ParseKeybinding(s string) (Keybinding, error) {
	parts := strings.Split(strings.TrimSpace(s), "+")
	if len(parts) != 2 {
		return Keybinding{}, errors.New("invalid keybinding: " + s)
	}
	if !strings.EqualFold(parts[0], "ctrl") {
		return Keybinding{}, errors.New("invalid modifier in keybinding: " + s)
	}
	r := []rune(strings.ToLower(parts[1]))
	if len(r) != 1 || r[0] < 'a' || r[0] > 'z' {
		return Keybinding{}, errors.New("invalid key in keybinding: " + s)
	}
	// Terminals send Ctrl+H, Ctrl+I and Ctrl+M as Backspace, Tab and Enter.
	switch r[0] {
	case 'h', 'i', 'm':
		return Keybinding{}, errors.New("keybinding shadows an editing key: " + s)
	}
	return Keybinding{Key: tcell.KeyRune, Rune: r[0], Mod: tcell.ModCtrl}, nil
}

func mustParse(s string) Keybinding {
	kb, err := ParseKeybinding(s)
	if err != nil {
		panic(err)
	}
	return kb
}

// String renders the binding the way the message bar shows it, e.g. "Ctrl-Q".
func (k Keybinding) String() string {
	if k.Key == tcell.KeyRune && k.Mod == tcell.ModCtrl {
		return "Ctrl-" + strings.ToUpper(string(k.Rune))
	}
	return tcell.KeyNames[k.Key]
}

// Matches returns true if the binding matches the provided event. Terminals
// report Ctrl+<letter> either as a rune with ModCtrl or as a control key.
func (k Keybinding) Matches(ev *tcell.EventKey) bool {
	if k.Key == ev.Key() && k.Rune == ev.Rune() && k.Mod == ev.Modifiers() {
		return true
	}
	if k.Key == tcell.KeyRune && k.Mod == tcell.ModCtrl && k.Rune >= 'a' && k.Rune <= 'z' {
		return ev.Key() == tcell.KeyCtrlA+tcell.Key(k.Rune-'a')
	}
	return false
}
