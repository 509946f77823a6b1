package app

import (
	"fmt"

	"example.com/termedit/pkg/terminal"
	"example.com/termedit/pkg/view"
	"github.com/mattn/go-runewidth"
)

// refresh repaints the screen bottom-up: message or command bar on the last
// row, status bar above it, document in the rest. Rows that do not fit are
// skipped.
func (r *Runner) refresh() {
	if r.size.IsZero() {
		return
	}
	r.Term.HideCaret()
	bottom := r.size.Height - 1
	if r.prompt != nil {
		r.prompt.render(r.Term, bottom)
	} else {
		_ = r.Term.PrintMessageRow(bottom, r.message)
	}
	if r.size.Height > 1 {
		_ = r.Term.PrintInvertedRow(r.size.Height-2, statusLine(r.View.Status(), r.size.Width))
	}
	if r.size.Height > 2 {
		r.View.Render(r.Term, 0)
	}
	r.Term.MoveCaretTo(r.caretPosition())
	r.Term.ShowCaret()
	_ = r.Term.Flush()
}

func (r *Runner) caretPosition() terminal.Position {
	if r.prompt != nil {
		return terminal.Position{Col: r.prompt.caretCol(), Row: r.size.Height - 1}
	}
	return r.View.CaretPosition()
}

// statusLine puts the file summary on the left and the caret row on the
// right. A bar that cannot hold both is left blank.
func statusLine(s view.DocumentStatus, width int) string {
	left := fmt.Sprintf("%s - %s %s", s.FileName, s.LineCount(), s.ModifiedIndicator())
	right := s.PositionIndicator()
	pad := max(width-runewidth.StringWidth(left)-runewidth.StringWidth(right), 0)
	text := left + fmt.Sprintf("%*s", pad+len(right), right)
	if runewidth.StringWidth(text) > width {
		return ""
	}
	return text
}
