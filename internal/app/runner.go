package app

import (
	"fmt"

	"example.com/termedit/pkg/command"
	"example.com/termedit/pkg/config"
	"example.com/termedit/pkg/logs"
	"example.com/termedit/pkg/terminal"
	"example.com/termedit/pkg/view"
	"github.com/gdamore/tcell/v2"
)

// Mode decides where commands are routed.
type Mode int

const (
	// ModeNormal sends moves and edits to the view.
	ModeNormal Mode = iota
	// ModeAwaitingSearch sends edits to the "Search: " prompt.
	ModeAwaitingSearch
	// ModeAwaitingSave sends edits to the "Save as: " prompt.
	ModeAwaitingSave
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeAwaitingSearch:
		return "search"
	case ModeAwaitingSave:
		return "save"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// quitTimes is how many consecutive quit presses discard unsaved changes.
const quitTimes = 3

// Runner owns the terminal lifecycle and the event loop.
type Runner struct {
	Term     terminal.Terminal
	View     *view.View
	Logger   *logs.Logger
	Keymap   map[string]config.Keybinding
	FilePath string
	Mode     Mode

	size        terminal.Size
	quitPresses int
	message     string
	prompt      *commandBar
	shouldQuit  bool
}

// New creates a Runner with an empty document on term.
func New(term terminal.Terminal) *Runner {
	r := &Runner{Term: term, View: view.New(terminal.Size{}), Keymap: config.DefaultKeymap()}
	r.message = r.helpMessage()
	return r
}

// SetKeymap replaces the key bindings and rebuilds the help message so it
// names the keys actually bound.
func (r *Runner) SetKeymap(km map[string]config.Keybinding) {
	r.Keymap = km
	r.message = r.helpMessage()
}

func (r *Runner) helpMessage() string {
	return fmt.Sprintf("HELP: %s = search | %s = save | %s = quit",
		r.binding(config.ActionSearch), r.binding(config.ActionSave), r.binding(config.ActionQuit))
}

func (r *Runner) binding(action string) config.Keybinding {
	if kb, ok := r.Keymap[action]; ok {
		return kb
	}
	return config.DefaultKeymap()[action]
}

// Message is the text on the message bar.
func (r *Runner) Message() string {
	return r.message
}

// ShouldQuit reports whether the user asked to quit, as opposed to the
// event source running dry.
func (r *Runner) ShouldQuit() bool {
	return r.shouldQuit
}

func (r *Runner) setMessage(msg string) {
	r.message = msg
}

// LoadFile loads path into the view. On failure the current document is
// kept and the message bar reports the error.
func (r *Runner) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	r.Logger.Event("open.attempt", map[string]any{"file": path})
	if err := r.View.Load(path); err != nil {
		r.Logger.Event("open.error", map[string]any{"file": path, "error": err.Error()})
		r.setMessage(fmt.Sprintf("ERR: Could not open file: %s", path))
		return err
	}
	r.FilePath = path
	r.Logger.Event("open.success", map[string]any{"file": path, "lines": r.View.Buffer().Height()})
	return nil
}

// Run acquires the terminal and processes events until the user quits or
// the terminal stops delivering events. The terminal is released on every
// exit path, including a panic.
func (r *Runner) Run() error {
	release, err := terminal.Acquire(r.Term)
	if err != nil {
		return err
	}
	defer release()

	r.Logger.Event("run.start", map[string]any{"file": r.FilePath})
	defer r.Logger.Event("run.end", map[string]any{"file": r.FilePath})

	r.resize(r.querySize())
	r.refresh()
	for !r.shouldQuit {
		ev := r.Term.PollEvent()
		if ev == nil {
			return nil
		}
		r.handleEvent(ev)
		if !r.shouldQuit {
			r.refresh()
		}
	}
	r.Logger.Event("action", map[string]any{"name": "quit"})
	return nil
}

// querySize treats a failed size query as a zero-sized terminal; nothing is
// drawn until a resize event reports a real size.
func (r *Runner) querySize() terminal.Size {
	size, err := r.Term.Size()
	if err != nil {
		return terminal.Size{}
	}
	return size
}

func (r *Runner) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		r.Logger.Event("key", map[string]any{
			"key":       int(ev.Key()),
			"rune":      string(ev.Rune()),
			"modifiers": int(ev.Modifiers()),
		})
		if cmd, ok := r.decodeKey(ev); ok {
			r.processCommand(cmd)
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		r.processCommand(command.Resize(terminal.Size{Width: w, Height: h}))
	}
}

func (r *Runner) processCommand(cmd command.Command) {
	if sys, ok := cmd.(command.System); ok && sys.Kind == command.SystemResize {
		r.resize(sys.Size)
		return
	}
	switch r.Mode {
	case ModeNormal:
		r.processNormal(cmd)
	case ModeAwaitingSearch:
		r.processSearchPrompt(cmd)
	case ModeAwaitingSave:
		r.processSavePrompt(cmd)
	}
}

func (r *Runner) processNormal(cmd command.Command) {
	if cmd == command.Quit {
		r.handleQuit()
		return
	}
	r.resetQuitTimes()
	switch cmd := cmd.(type) {
	case command.System:
		switch cmd.Kind {
		case command.SystemSave:
			r.handleSave()
		case command.SystemSearch:
			r.showPrompt(ModeAwaitingSearch)
		}
	case command.Move, command.Edit:
		r.View.HandleCommand(cmd)
	}
}

func (r *Runner) resize(size terminal.Size) {
	r.size = size
	r.Term.ClearScreen()
	r.View.Resize(terminal.Size{Width: size.Width, Height: max(size.Height-2, 0)})
	if r.prompt != nil {
		r.prompt.resize(size.Width)
	}
}

// showPrompt switches to a prompt mode with an empty command bar.
func (r *Runner) showPrompt(mode Mode) {
	text := "Search: "
	if mode == ModeAwaitingSave {
		text = "Save as: "
	}
	r.Mode = mode
	r.prompt = newCommandBar(text, r.size.Width)
}

func (r *Runner) dismissPrompt() {
	r.Mode = ModeNormal
	r.prompt = nil
	r.View.SetNeedsRedraw(true)
}
