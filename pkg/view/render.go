package view

import (
	"fmt"
	"strings"

	"example.com/termedit/pkg/terminal"
	"github.com/mattn/go-runewidth"
)

const (
	Name    = "termedit"
	Version = "0.1.0"
)

// Render draws the viewport starting at screen row originRow. It draws
// nothing unless a redraw is pending and the viewport has an area.
func (v *View) Render(t terminal.Terminal, originRow int) {
	if !v.needsRedraw || v.size.IsZero() {
		return
	}
	width, height := v.size.Width, v.size.Height
	placeholderRow := originRow + height/3
	left := v.offset.Col
	for row := originRow; row < originRow+height; row++ {
		index := row - originRow + v.offset.Row
		switch l, ok := v.buf.Line(index); {
		case ok:
			renderLine(t, row, l.VisibleGraphemes(left, left+width))
		case row == placeholderRow && v.buf.IsEmpty():
			renderLine(t, row, welcomeMessage(width))
		default:
			renderLine(t, row, "~")
		}
	}
	v.needsRedraw = false
}

func renderLine(t terminal.Terminal, row int, text string) {
	err := t.PrintRow(row, text)
	assertRendered(err)
}

func welcomeMessage(width int) string {
	if width <= 0 {
		return " "
	}
	msg := fmt.Sprintf("%s editor -- version %s", Name, Version)
	n := runewidth.StringWidth(msg)
	if width <= n {
		return "~"
	}
	padding := (width - n - 1) / 2
	full := "~" + strings.Repeat(" ", padding) + msg
	return runewidth.Truncate(full, width, "")
}
