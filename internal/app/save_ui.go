package app

import "example.com/termedit/pkg/command"

// handleSave writes a named document straight away and asks for a name
// otherwise.
func (r *Runner) handleSave() {
	if r.View.IsFileLoaded() {
		r.save("")
		return
	}
	r.showPrompt(ModeAwaitingSave)
}

// save writes the document, to path when one is given.
func (r *Runner) save(path string) {
	var err error
	if path == "" {
		err = r.View.Save()
	} else {
		err = r.View.SaveAs(path)
	}
	file := r.View.Buffer().FilePath()
	if err != nil {
		r.Logger.Event("save.error", map[string]any{"file": file, "error": err.Error()})
		r.setMessage("Error writing file!")
		return
	}
	r.FilePath = file
	r.Logger.Event("save.success", map[string]any{"file": file, "lines": r.View.Buffer().Height()})
	r.setMessage("File saved successfully.")
}

func (r *Runner) processSavePrompt(cmd command.Command) {
	switch cmd := cmd.(type) {
	case command.System:
		if cmd.Kind == command.SystemDismiss {
			r.dismissPrompt()
			r.setMessage("Save aborted.")
		}
	case command.Edit:
		if cmd.Kind == command.EditInsertNewline {
			name := r.prompt.Value()
			r.dismissPrompt()
			r.save(name)
			return
		}
		r.prompt.handleEdit(cmd)
	}
}
