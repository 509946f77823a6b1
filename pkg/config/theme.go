package config

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Theme represents configurable colors for the text area and the bars.
type Theme struct {
	// Text area
	TextForeground tcell.Color
	TextBackground tcell.Color

	// Status bar (drawn inverted) and message/command bar
	StatusForeground  tcell.Color
	StatusBackground  tcell.Color
	MessageForeground tcell.Color
	MessageBackground tcell.Color
}

// DefaultTheme returns the built-in light-on-dark theme.
func DefaultTheme() Theme {
	return Theme{
		TextForeground: tcell.ColorWhite,
		TextBackground: tcell.ColorBlack,

		StatusForeground:  tcell.ColorBlack,
		StatusBackground:  tcell.ColorWhite,
		MessageForeground: tcell.ColorWhite,
		MessageBackground: tcell.ColorBlack,
	}
}

// TerminalTheme leverages terminal-provided defaults so the editor follows
// the user's terminal colors.
func TerminalTheme() Theme {
	return Theme{
		TextForeground: tcell.ColorDefault,
		TextBackground: tcell.ColorDefault,

		StatusForeground:  tcell.ColorDefault,
		StatusBackground:  tcell.ColorDefault,
		MessageForeground: tcell.ColorDefault,
		MessageBackground: tcell.ColorDefault,
	}
}

// ThemeByName resolves a builtin theme.
func ThemeByName(name string) (Theme, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return DefaultTheme(), true
	case "terminal":
		return TerminalTheme(), true
	default:
		return Theme{}, false
	}
}

// TextStyle is used for document rows.
func (t Theme) TextStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(t.TextForeground).Background(t.TextBackground)
}

// StatusStyle is used for the inverted status bar.
func (t Theme) StatusStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(t.StatusForeground).Background(t.StatusBackground).Reverse(t.StatusBackground == tcell.ColorDefault)
}

// MessageStyle is used for the message and command bars.
func (t Theme) MessageStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(t.MessageForeground).Background(t.MessageBackground)
}
