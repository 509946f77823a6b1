package app

import (
	"example.com/termedit/pkg/command"
	"example.com/termedit/pkg/line"
	"example.com/termedit/pkg/terminal"
	"github.com/mattn/go-runewidth"
)

// commandBar is the one-line prompt shown in place of the message bar while
// the runner waits for a file name or a search query. Input only ever grows
// or shrinks at the end.
type commandBar struct {
	prompt string
	value  *line.Line
	width  int
}

func newCommandBar(prompt string, width int) *commandBar {
	return &commandBar{prompt: prompt, value: line.New(""), width: width}
}

func (c *commandBar) handleEdit(e command.Edit) {
	n := c.value.GraphemeCount()
	switch e.Kind {
	case command.EditInsertChar:
		c.value.InsertChar(e.Char, n)
	case command.EditDeleteBackward:
		if n > 0 {
			c.value.Delete(n - 1)
		}
	}
}

func (c *commandBar) resize(width int) {
	c.width = width
}

// Value is the text typed so far.
func (c *commandBar) Value() string {
	return c.value.String()
}

func (c *commandBar) valueWidth() int {
	return c.value.WidthUntil(c.value.GraphemeCount())
}

// caretCol sits just after the input, pinned to the last column when the
// input is wider than the bar.
func (c *commandBar) caretCol() int {
	return min(runewidth.StringWidth(c.prompt)+c.valueWidth(), c.width)
}

// render shows the prompt followed by as much of the end of the input as
// fits.
func (c *commandBar) render(t terminal.Terminal, row int) {
	area := max(c.width-runewidth.StringWidth(c.prompt), 0)
	end := c.valueWidth()
	start := max(end-area, 0)
	_ = t.PrintMessageRow(row, c.prompt+c.value.VisibleGraphemes(start, end))
}
