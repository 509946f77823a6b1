package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

// ImportTheme reads a Base16 YAML scheme (keys base00..base0F) and maps it
// onto a Theme. Missing keys fall back to the default theme.
func ImportTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme %q: %w", path, err)
	}
	var scheme map[string]string
	if err := yaml.Unmarshal(data, &scheme); err != nil {
		return Theme{}, fmt.Errorf("parse theme %q: %w", path, err)
	}
	colors := make(map[string]tcell.Color, len(scheme))
	for k, v := range scheme {
		k = strings.ToLower(k)
		if !strings.HasPrefix(k, "base") {
			continue
		}
		colors[k] = parseHexToColor(v)
	}
	if len(colors) == 0 {
		return Theme{}, fmt.Errorf("theme %q: no base16 colors", path)
	}
	pick := func(key string, fallback tcell.Color) tcell.Color {
		if c, ok := colors[key]; ok && c != tcell.ColorDefault {
			return c
		}
		return fallback
	}
	th := DefaultTheme()
	th.TextBackground = pick("base00", th.TextBackground)
	th.TextForeground = pick("base05", th.TextForeground)
	th.StatusBackground = pick("base02", th.StatusBackground)
	th.StatusForeground = pick("base07", th.StatusForeground)
	th.MessageBackground = pick("base01", th.MessageBackground)
	th.MessageForeground = pick("base04", th.MessageForeground)
	return th, nil
}

// parseHexToColor accepts "rrggbb", "#rrggbb" or "0xrrggbb".
func parseHexToColor(v string) tcell.Color {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "0x")
	v = strings.TrimPrefix(v, "#")
	if len(v) != 6 {
		return tcell.ColorDefault
	}
	return tcell.GetColor("#" + v)
}
