package app

import (
	"fmt"

	"example.com/termedit/pkg/config"
)

// handleQuit quits a clean document at once. A modified one needs
// quitTimes presses in a row; each press but the last shows a warning.
func (r *Runner) handleQuit() {
	if !r.View.Status().IsModified || r.quitPresses+1 == quitTimes {
		r.shouldQuit = true
		return
	}
	r.quitPresses++
	r.setMessage(fmt.Sprintf("WARNING! File has unsaved changes. Press %s %d more times to quit.",
		r.binding(config.ActionQuit), quitTimes-r.quitPresses))
}

// resetQuitTimes abandons a pending quit and clears its warning.
func (r *Runner) resetQuitTimes() {
	if r.quitPresses > 0 {
		r.quitPresses = 0
		r.setMessage("")
	}
}
