// Package terminal is the screen service the editor draws through. The
// session controller acquires it once, and releases it on every exit path.
package terminal

import (
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// ErrNotActive is returned when drawing on a terminal that is not
// initialised.
var ErrNotActive = errors.New("terminal not active")

// Size is a rectangle measured in columns and rows.
type Size struct {
	Width  int
	Height int
}

// IsZero reports whether nothing can be drawn in the rectangle.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Position is a cell on screen, or a column/row offset into the document.
type Position struct {
	Col int
	Row int
}

// Sub subtracts o from p, saturating at zero.
func (p Position) Sub(o Position) Position {
	return Position{Col: max(p.Col-o.Col, 0), Row: max(p.Row-o.Row, 0)}
}

// Terminal is the set of primitives the editor needs from the screen.
type Terminal interface {
	// Init enters raw mode and the alternate screen. Calling it on an
	// active terminal is a no-op.
	Init() error
	// Fini restores the terminal. Calling it more than once is a no-op.
	Fini()
	Size() (Size, error)
	ClearScreen()
	ClearLine(row int)
	MoveCaretTo(p Position)
	HideCaret()
	ShowCaret()
	PrintRow(row int, text string) error
	PrintInvertedRow(row int, text string) error
	// PrintMessageRow draws a row of the message or command bar.
	PrintMessageRow(row int, text string) error
	Flush() error
	// PollEvent blocks for the next input event. It returns nil once the
	// terminal has been released.
	PollEvent() tcell.Event
}

// Acquire initialises t and returns the function that releases it. Callers
// defer the release so it also runs when the session unwinds from a panic.
func Acquire(t Terminal) (release func(), err error) {
	if err := t.Init(); err != nil {
		t.Fini()
		return func() {}, err
	}
	var once sync.Once
	return func() { once.Do(t.Fini) }, nil
}
