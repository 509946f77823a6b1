// Package terminaltest provides a recording Terminal for tests.
package terminaltest

import (
	"example.com/termedit/pkg/terminal"
	"github.com/gdamore/tcell/v2"
)

// Recorder is an in-memory terminal.Terminal. Printed rows are kept by row
// index; events are handed out in order and PollEvent returns nil once they
// run out.
type Recorder struct {
	Width, Height int

	// Failure injection.
	InitErr  error
	SizeErr  error
	PrintErr error
	// PollPanic, when set, is raised by PollEvent after Events are drained.
	PollPanic any

	Events []tcell.Event

	Rows         map[int]string
	Inverted     map[int]bool
	Message      map[int]bool
	Caret        terminal.Position
	CaretVisible bool

	InitCalls  int
	FiniCalls  int
	Flushes    int
	PrintCalls int
	Active     bool
}

// New returns a Recorder of the given size.
func New(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) Init() error {
	r.InitCalls++
	if r.InitErr != nil {
		return r.InitErr
	}
	r.Active = true
	return nil
}

func (r *Recorder) Fini() {
	r.FiniCalls++
	r.Active = false
}

func (r *Recorder) Size() (terminal.Size, error) {
	if r.SizeErr != nil {
		return terminal.Size{}, r.SizeErr
	}
	return terminal.Size{Width: r.Width, Height: r.Height}, nil
}

func (r *Recorder) ClearScreen() {
	r.Rows = nil
	r.Inverted = nil
	r.Message = nil
}

func (r *Recorder) ClearLine(row int) {
	delete(r.Rows, row)
	delete(r.Inverted, row)
	delete(r.Message, row)
}

func (r *Recorder) MoveCaretTo(p terminal.Position) { r.Caret = p }
func (r *Recorder) HideCaret()                      { r.CaretVisible = false }
func (r *Recorder) ShowCaret()                      { r.CaretVisible = true }

func (r *Recorder) PrintRow(row int, text string) error {
	return r.print(row, text, false)
}

func (r *Recorder) PrintInvertedRow(row int, text string) error {
	return r.print(row, text, true)
}

func (r *Recorder) PrintMessageRow(row int, text string) error {
	if err := r.print(row, text, false); err != nil {
		return err
	}
	r.Message[row] = true
	return nil
}

func (r *Recorder) print(row int, text string, inverted bool) error {
	r.PrintCalls++
	if r.PrintErr != nil {
		return r.PrintErr
	}
	if r.Rows == nil {
		r.Rows = make(map[int]string)
		r.Inverted = make(map[int]bool)
		r.Message = make(map[int]bool)
	}
	r.Rows[row] = text
	r.Inverted[row] = inverted
	r.Message[row] = false
	return nil
}

func (r *Recorder) Flush() error {
	r.Flushes++
	return nil
}

func (r *Recorder) PollEvent() tcell.Event {
	if len(r.Events) == 0 {
		if r.PollPanic != nil {
			panic(r.PollPanic)
		}
		return nil
	}
	ev := r.Events[0]
	r.Events = r.Events[1:]
	return ev
}

// Row returns the text last printed on row, or "" if it was never printed.
func (r *Recorder) Row(row int) string {
	return r.Rows[row]
}

var _ terminal.Terminal = (*Recorder)(nil)
