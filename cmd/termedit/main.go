// Command termedit is a small terminal text editor.
//
//	termedit [file]
//
// Ctrl+S saves, Ctrl+F opens the search prompt and Ctrl+Q quits. Keys and
// colours can be changed in ~/.termedit/config.yaml (or config.toml).
package main

import (
	"fmt"
	"os"

	"example.com/termedit/internal/app"
	"example.com/termedit/pkg/config"
	"example.com/termedit/pkg/logs"
	"example.com/termedit/pkg/terminal"
	"golang.org/x/term"
)

func main() {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "termedit: stdin is not a terminal")
		os.Exit(1)
	}
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := logs.NewFromEnv()
	defer logger.Close()

	cfg := loadConfig(logger)
	r := newRunner(terminal.NewScreen(nil, cfg.Theme), cfg, logger, args)
	if err := r.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "termedit: %v\n", err)
		return 1
	}
	if r.ShouldQuit() {
		fmt.Println("Goodbye.")
	}
	return 0
}

// loadConfig falls back to the defaults when the config file is unusable.
// The error only goes to the event log; the screen is about to be taken
// over.
func loadConfig(logger *logs.Logger) *config.Config {
	cfg, err := config.LoadDefault()
	if err != nil {
		logger.Event("config.error", map[string]any{"error": err.Error()})
		return config.Default()
	}
	return cfg
}

func newRunner(t terminal.Terminal, cfg *config.Config, logger *logs.Logger, args []string) *app.Runner {
	r := app.New(t)
	r.Logger = logger
	r.SetKeymap(cfg.Keymap)
	if len(args) > 0 {
		// A failed load is reported on the message bar and editing starts on
		// an empty document.
		_ = r.LoadFile(args[0])
	}
	return r
}
