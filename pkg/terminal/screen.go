package terminal

import (
	"fmt"

	"example.com/termedit/internal/grapheme"
	"example.com/termedit/pkg/config"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Screen implements Terminal on top of a tcell screen.
type Screen struct {
	screen tcell.Screen
	theme  config.Theme
	caret  Position
	hidden bool
	active bool
}

// NewScreen wraps s. A nil s makes Init open the real terminal.
func NewScreen(s tcell.Screen, theme config.Theme) *Screen {
	return &Screen{screen: s, theme: theme, hidden: true}
}

// Init initializes the tcell screen if it is not already active.
func (t *Screen) Init() error {
	if t.active {
		return nil
	}
	if t.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		t.screen = s
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	t.screen.SetStyle(t.theme.TextStyle())
	t.screen.HideCursor()
	t.screen.Clear()
	t.active = true
	return nil
}

// Fini finalizes the screen if initialized.
func (t *Screen) Fini() {
	if !t.active {
		return
	}
	t.active = false
	t.screen.Fini()
}

// Screen exposes the underlying tcell screen, mainly for tests reading back
// cell contents.
func (t *Screen) Screen() tcell.Screen {
	return t.screen
}

func (t *Screen) Size() (Size, error) {
	if !t.active {
		return Size{}, ErrNotActive
	}
	w, h := t.screen.Size()
	return Size{Width: w, Height: h}, nil
}

func (t *Screen) ClearScreen() {
	if t.active {
		t.screen.Clear()
	}
}

func (t *Screen) ClearLine(row int) {
	if t.active {
		t.fill(row, 0, t.theme.TextStyle())
	}
}

func (t *Screen) MoveCaretTo(p Position) {
	t.caret = p
	if t.active && !t.hidden {
		t.screen.ShowCursor(p.Col, p.Row)
	}
}

func (t *Screen) HideCaret() {
	t.hidden = true
	if t.active {
		t.screen.HideCursor()
	}
}

func (t *Screen) ShowCaret() {
	t.hidden = false
	if t.active {
		t.screen.ShowCursor(t.caret.Col, t.caret.Row)
	}
}

// PrintRow clears row and draws text from column 0.
func (t *Screen) PrintRow(row int, text string) error {
	if !t.active {
		return ErrNotActive
	}
	style := t.theme.TextStyle()
	t.fill(row, 0, style)
	t.put(row, text, style)
	return nil
}

// PrintInvertedRow draws text across the whole row in the status style.
func (t *Screen) PrintInvertedRow(row int, text string) error {
	if !t.active {
		return ErrNotActive
	}
	style := t.theme.StatusStyle()
	t.fill(row, 0, style)
	t.put(row, text, style)
	return nil
}

func (t *Screen) PrintMessageRow(row int, text string) error {
	if !t.active {
		return ErrNotActive
	}
	style := t.theme.MessageStyle()
	t.fill(row, 0, style)
	t.put(row, text, style)
	return nil
}

func (t *Screen) Flush() error {
	if !t.active {
		return ErrNotActive
	}
	t.screen.Show()
	return nil
}

func (t *Screen) PollEvent() tcell.Event {
	if !t.active {
		return nil
	}
	return t.screen.PollEvent()
}

func (t *Screen) fill(row, from int, style tcell.Style) {
	w, _ := t.screen.Size()
	for x := from; x < w; x++ {
		t.screen.SetContent(x, row, ' ', nil, style)
	}
}

// put draws one grapheme cluster per cell group, advancing by its display
// width, and stops at the right edge.
func (t *Screen) put(row int, text string, style tcell.Style) {
	w, _ := t.screen.Size()
	x := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() && x < w {
		runes := g.Runes()
		cw := max(grapheme.Width(g.Str()), 1)
		if x+cw > w {
			break
		}
		t.screen.SetContent(x, row, runes[0], runes[1:], style)
		x += cw
	}
}
