// Package view maps a buffer onto a rectangular viewport. It owns the
// caret, keeps it on screen with minimal scrolling, and turns Move and Edit
// commands into caret motion and buffer mutations.
package view

import (
	"example.com/termedit/pkg/buffer"
	"example.com/termedit/pkg/command"
	"example.com/termedit/pkg/terminal"
)

// View is the editing surface for one buffer.
type View struct {
	buf         *buffer.Buffer
	size        terminal.Size
	location    buffer.Location
	offset      terminal.Position
	needsRedraw bool
}

// New returns a view over an empty buffer.
func New(size terminal.Size) *View {
	return &View{buf: buffer.New(), size: size, needsRedraw: true}
}

// Buffer returns the document being edited.
func (v *View) Buffer() *buffer.Buffer {
	return v.buf
}

// Load replaces the document with the contents of path. On error the
// current document is kept as is.
func (v *View) Load(path string) error {
	b, err := buffer.Load(path)
	if err != nil {
		return err
	}
	v.buf = b
	v.location = buffer.Location{}
	v.offset = terminal.Position{}
	v.needsRedraw = true
	return nil
}

// Save writes the document to its file. It does nothing for an unnamed
// document; see IsFileLoaded.
func (v *View) Save() error {
	return v.buf.Save()
}

// SaveAs binds the document to path and writes it.
func (v *View) SaveAs(path string) error {
	if err := v.buf.SaveAs(path); err != nil {
		return err
	}
	v.needsRedraw = true
	return nil
}

// IsFileLoaded reports whether the document has a file to save to.
func (v *View) IsFileLoaded() bool {
	return v.buf.IsFileLoaded()
}

// Resize changes the viewport and scrolls the caret back into it.
func (v *View) Resize(size terminal.Size) {
	v.size = size
	v.scrollTextLocationIntoView()
	v.needsRedraw = true
}

// Size returns the viewport size.
func (v *View) Size() terminal.Size { return v.size }

// TextLocation is the caret as (grapheme index, row).
func (v *View) TextLocation() buffer.Location { return v.location }

// ScrollOffset is the document column and row shown at the top-left cell.
func (v *View) ScrollOffset() terminal.Position { return v.offset }

// NeedsRedraw reports whether Render will draw.
func (v *View) NeedsRedraw() bool { return v.needsRedraw }

// SetNeedsRedraw forces or suppresses the next Render.
func (v *View) SetNeedsRedraw(on bool) { v.needsRedraw = on }

// CaretPosition is where the terminal caret goes, relative to the
// viewport's top-left cell.
func (v *View) CaretPosition() terminal.Position {
	return v.textLocationToPosition().Sub(v.offset)
}

// HandleCommand dispatches Move and Edit commands. Other commands are
// ignored.
func (v *View) HandleCommand(cmd command.Command) {
	switch cmd := cmd.(type) {
	case command.Move:
		v.HandleMove(cmd)
	case command.Edit:
		v.HandleEdit(cmd)
	}
}

// HandleMove moves the caret and scrolls it into view.
func (v *View) HandleMove(m command.Move) {
	v.moveTextLocation(m)
	v.scrollTextLocationIntoView()
}

// HandleEdit applies e at the caret.
func (v *View) HandleEdit(e command.Edit) {
	switch e.Kind {
	case command.EditInsertChar:
		v.insertChar(e.Char)
	case command.EditDelete:
		v.delete()
	case command.EditDeleteBackward:
		v.deleteBackward()
	case command.EditInsertNewline:
		v.insertNewline()
	}
}

func (v *View) insertChar(ch rune) {
	before := v.buf.GraphemeCount(v.location.LineIndex)
	v.buf.InsertChar(ch, v.location)
	// A combining mark merges into the previous cluster and does not move
	// the caret.
	if v.buf.GraphemeCount(v.location.LineIndex) > before {
		v.moveTextLocation(command.MoveRight)
	}
	v.scrollTextLocationIntoView()
	v.needsRedraw = true
}

func (v *View) delete() {
	v.buf.Delete(v.location)
	v.scrollTextLocationIntoView()
	v.needsRedraw = true
}

func (v *View) deleteBackward() {
	if v.location.GraphemeIndex == 0 && v.location.LineIndex == 0 {
		return
	}
	v.moveTextLocation(command.MoveLeft)
	v.delete()
}

func (v *View) insertNewline() {
	v.buf.InsertNewline(v.location)
	v.moveTextLocation(command.MoveRight)
	v.scrollTextLocationIntoView()
	v.needsRedraw = true
}

func (v *View) moveTextLocation(m command.Move) {
	page := max(v.size.Height-1, 0)
	switch m {
	case command.MoveUp:
		v.moveUp(1)
	case command.MoveDown:
		v.moveDown(1)
	case command.MoveLeft:
		v.moveLeft()
	case command.MoveRight:
		v.moveRight()
	case command.MovePageUp:
		v.moveUp(page)
	case command.MovePageDown:
		v.moveDown(page)
	case command.MoveStartOfLine:
		v.location.GraphemeIndex = 0
	case command.MoveEndOfLine:
		v.moveToEndOfLine()
	}
}

func (v *View) moveUp(n int) {
	v.location.LineIndex = max(v.location.LineIndex-n, 0)
	v.snapToValidGrapheme()
}

func (v *View) moveDown(n int) {
	v.location.LineIndex += n
	v.snapToValidGrapheme()
	v.snapToValidLine()
}

func (v *View) moveLeft() {
	switch {
	case v.location.GraphemeIndex > 0:
		v.location.GraphemeIndex--
	case v.location.LineIndex > 0:
		v.moveUp(1)
		v.moveToEndOfLine()
	}
}

func (v *View) moveRight() {
	if v.location.GraphemeIndex < v.buf.GraphemeCount(v.location.LineIndex) {
		v.location.GraphemeIndex++
		return
	}
	v.location.GraphemeIndex = 0
	v.moveDown(1)
}

func (v *View) moveToEndOfLine() {
	v.location.GraphemeIndex = v.buf.GraphemeCount(v.location.LineIndex)
}

// snapToValidGrapheme keeps the caret within its row; a row that does not
// exist has length 0.
func (v *View) snapToValidGrapheme() {
	v.location.GraphemeIndex = min(v.location.GraphemeIndex, v.buf.GraphemeCount(v.location.LineIndex))
}

// snapToValidLine allows the caret one row past the last, where typing
// starts a new row.
func (v *View) snapToValidLine() {
	v.location.LineIndex = min(v.location.LineIndex, v.buf.Height())
}

// textLocationToPosition converts the caret to document cells: the
// rendered column within its row, and the row itself.
func (v *View) textLocationToPosition() terminal.Position {
	col := 0
	if l, ok := v.buf.Line(v.location.LineIndex); ok {
		col = l.WidthUntil(v.location.GraphemeIndex)
	}
	return terminal.Position{Col: col, Row: v.location.LineIndex}
}

func (v *View) scrollTextLocationIntoView() {
	pos := v.textLocationToPosition()
	changed := scrollAxis(pos.Row, &v.offset.Row, v.size.Height)
	changed = scrollAxis(pos.Col, &v.offset.Col, v.size.Width) || changed
	if changed {
		v.needsRedraw = true
	}
}

// scrollAxis moves *offset the least amount that brings pos into
// [*offset, *offset+extent). It reports whether *offset changed.
func scrollAxis(pos int, offset *int, extent int) bool {
	if extent <= 0 {
		return false
	}
	switch {
	case pos < *offset:
		*offset = pos
	case pos >= *offset+extent:
		*offset = pos - extent + 1
	default:
		return false
	}
	return true
}
