package app

import (
	"example.com/termedit/pkg/command"
	"example.com/termedit/pkg/config"
	"github.com/gdamore/tcell/v2"
)

// boundActions are checked before the fixed keys so a rebinding always
// wins.
var boundActions = []struct {
	action string
	cmd    command.Command
}{
	{config.ActionQuit, command.Quit},
	{config.ActionSave, command.Save},
	{config.ActionSearch, command.Search},
}

// decodeKey maps a key event to a command. Keys with no meaning report
// false.
func (r *Runner) decodeKey(ev *tcell.EventKey) (command.Command, bool) {
	for _, b := range boundActions {
		if r.binding(b.action).Matches(ev) {
			return b.cmd, true
		}
	}
	switch ev.Key() {
	case tcell.KeyUp:
		return command.MoveUp, true
	case tcell.KeyDown:
		return command.MoveDown, true
	case tcell.KeyLeft:
		return command.MoveLeft, true
	case tcell.KeyRight:
		return command.MoveRight, true
	case tcell.KeyPgUp:
		return command.MovePageUp, true
	case tcell.KeyPgDn:
		return command.MovePageDown, true
	case tcell.KeyHome:
		return command.MoveStartOfLine, true
	case tcell.KeyEnd:
		return command.MoveEndOfLine, true
	case tcell.KeyEnter:
		return command.InsertNewline, true
	case tcell.KeyTab:
		return command.InsertChar('\t'), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return command.DeleteBackward, true
	case tcell.KeyDelete:
		return command.Delete, true
	case tcell.KeyEsc:
		return command.Dismiss, true
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			return command.InsertChar(ev.Rune()), true
		}
	}
	return nil, false
}
