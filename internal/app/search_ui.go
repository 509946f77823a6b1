package app

import (
	"fmt"

	"example.com/termedit/pkg/command"
)

// processSearchPrompt collects a query. Submitting it only reports the
// query; there is no matching yet.
func (r *Runner) processSearchPrompt(cmd command.Command) {
	switch cmd := cmd.(type) {
	case command.System:
		if cmd.Kind == command.SystemDismiss {
			r.dismissPrompt()
			r.setMessage("Search aborted.")
		}
	case command.Edit:
		if cmd.Kind == command.EditInsertNewline {
			query := r.prompt.Value()
			r.dismissPrompt()
			r.Logger.Event("action", map[string]any{"name": "search", "query": query})
			r.setMessage(fmt.Sprintf("Search %s successfully.", query))
			return
		}
		r.prompt.handleEdit(cmd)
	}
}
