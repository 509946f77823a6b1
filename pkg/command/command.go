// Package command defines the abstract commands the session controller
// receives from the key decoder: cursor moves, edits, and system requests.
package command

import (
	"fmt"

	"example.com/termedit/pkg/terminal"
)

// Command is one of Move, Edit or System.
type Command interface {
	isCommand()
}

// Move is a cursor motion.
type Move int

const (
	MoveUp Move = iota
	MoveDown
	MoveLeft
	MoveRight
	MovePageUp
	MovePageDown
	MoveStartOfLine
	MoveEndOfLine
)

var moveNames = [...]string{"Up", "Down", "Left", "Right", "PageUp", "PageDown", "StartOfLine", "EndOfLine"}

func (m Move) String() string {
	if m < 0 || int(m) >= len(moveNames) {
		return fmt.Sprintf("Move(%d)", int(m))
	}
	return moveNames[m]
}

// EditKind selects the edit operation.
type EditKind int

const (
	EditInsertChar EditKind = iota
	EditDelete
	EditDeleteBackward
	EditInsertNewline
)

// Edit is a text mutation. Char is only meaningful for EditInsertChar.
type Edit struct {
	Kind EditKind
	Char rune
}

// InsertChar builds the edit that types ch.
func InsertChar(ch rune) Edit {
	return Edit{Kind: EditInsertChar, Char: ch}
}

var (
	Delete         = Edit{Kind: EditDelete}
	DeleteBackward = Edit{Kind: EditDeleteBackward}
	InsertNewline  = Edit{Kind: EditInsertNewline}
)

func (e Edit) String() string {
	switch e.Kind {
	case EditInsertChar:
		return fmt.Sprintf("InsertChar(%q)", e.Char)
	case EditDelete:
		return "Delete"
	case EditDeleteBackward:
		return "DeleteBackward"
	case EditInsertNewline:
		return "InsertNewline"
	}
	return fmt.Sprintf("Edit(%d)", int(e.Kind))
}

// SystemKind selects the system request.
type SystemKind int

const (
	SystemSave SystemKind = iota
	SystemSearch
	SystemQuit
	SystemDismiss
	SystemResize
)

// System is a request aimed at the session rather than the text. Size is
// only meaningful for SystemResize.
type System struct {
	Kind SystemKind
	Size terminal.Size
}

var (
	Save    = System{Kind: SystemSave}
	Search  = System{Kind: SystemSearch}
	Quit    = System{Kind: SystemQuit}
	Dismiss = System{Kind: SystemDismiss}
)

// Resize builds the request sent when the terminal changes size.
func Resize(size terminal.Size) System {
	return System{Kind: SystemResize, Size: size}
}

func (s System) String() string {
	switch s.Kind {
	case SystemSave:
		return "Save"
	case SystemSearch:
		return "Search"
	case SystemQuit:
		return "Quit"
	case SystemDismiss:
		return "Dismiss"
	case SystemResize:
		return fmt.Sprintf("Resize(%dx%d)", s.Size.Width, s.Size.Height)
	}
	return fmt.Sprintf("System(%d)", int(s.Kind))
}

func (Move) isCommand()   {}
func (Edit) isCommand()   {}
func (System) isCommand() {}
