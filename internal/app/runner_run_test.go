package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"example.com/termedit/pkg/config"
	"example.com/termedit/pkg/terminal"
	"example.com/termedit/pkg/terminal/terminaltest"
	"example.com/termedit/pkg/view"
	"github.com/gdamore/tcell/v2"
)

// TestRun_TypingSaveQuit_Simulation types into a loaded file, saves with
// Ctrl+S and quits with Ctrl+Q on a tcell simulation screen.
func TestRun_TypingSaveQuit_Simulation(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	scr := terminal.NewScreen(sim, config.DefaultTheme())
	if err := scr.Init(); err != nil {
		t.Fatalf("initializing simulation screen failed: %v", err)
	}
	sim.SetSize(40, 8)

	path := writeFile(t, "doc.txt", "world")
	r := New(scr)
	if err := r.LoadFile(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- r.Run() }()

	// Give the loop a moment to start
	time.Sleep(10 * time.Millisecond)

	sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'H', 0))
	sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'i', 0))
	sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, ' ', 0))
	sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModCtrl))
	sim.PostEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, 0))

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runner returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for runner to quit")
	}

	if !r.ShouldQuit() {
		t.Fatalf("runner should have stopped on Ctrl+Q")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "Hi world\n" {
		t.Fatalf("saved file=%q, want %q", data, "Hi world\n")
	}
	if _, err := scr.Size(); !errors.Is(err, terminal.ErrNotActive) {
		t.Fatalf("screen should be released after Run, got %v", err)
	}
}

func TestRun_DrawsLayout(t *testing.T) {
	rec := terminaltest.New(40, 6)
	rec.Events = []tcell.Event{ch('H'), ch('i'), key(tcell.KeyEnter), ch('x')}
	r := New(rec)

	if err := r.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if r.ShouldQuit() {
		t.Fatalf("running out of events is not a quit request")
	}
	if rec.Row(0) != "Hi" || rec.Row(1) != "x" || rec.Row(2) != "~" || rec.Row(3) != "~" {
		t.Fatalf("document rows=%q %q %q %q", rec.Row(0), rec.Row(1), rec.Row(2), rec.Row(3))
	}
	status := rec.Row(4)
	if !rec.Inverted[4] || !strings.HasPrefix(status, "[No Name] - 2 lines (modified)") || !strings.HasSuffix(status, " 2/2") {
		t.Fatalf("status row=%q inverted=%v", status, rec.Inverted[4])
	}
	if !rec.Message[5] || !strings.HasPrefix(rec.Row(5), "HELP:") {
		t.Fatalf("message row=%q", rec.Row(5))
	}
	if rec.Caret != (terminal.Position{Col: 1, Row: 1}) || !rec.CaretVisible {
		t.Fatalf("caret=%v visible=%v", rec.Caret, rec.CaretVisible)
	}
	if rec.InitCalls != 1 || rec.FiniCalls != 1 {
		t.Fatalf("init=%d fini=%d, want 1/1", rec.InitCalls, rec.FiniCalls)
	}
	if rec.Flushes == 0 {
		t.Fatalf("expected at least one flush")
	}
}

func TestRun_WelcomeOnEmptyDocument(t *testing.T) {
	rec := terminaltest.New(40, 8)
	r := New(rec)
	if err := r.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "~   " + view.Name + " editor -- version " + view.Version
	if rec.Row(2) != want {
		t.Fatalf("welcome row=%q, want %q", rec.Row(2), want)
	}
	if rec.Row(0) != "~" || rec.Row(5) != "~" {
		t.Fatalf("blank rows should show ~")
	}
}

func TestRun_PromptOwnsBottomRowAndCaret(t *testing.T) {
	rec := terminaltest.New(40, 6)
	rec.Events = []tcell.Event{ch('a'), ctrl('s'), ch('f'), ch('o')}
	r := New(rec)
	if err := r.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if rec.Row(5) != "Save as: fo" || !rec.Message[5] {
		t.Fatalf("command bar row=%q", rec.Row(5))
	}
	if rec.Caret != (terminal.Position{Col: 11, Row: 5}) {
		t.Fatalf("caret=%v, want end of prompt input", rec.Caret)
	}
	if rec.Row(0) != "a" {
		t.Fatalf("prompt input leaked into the document: %q", rec.Row(0))
	}
}

func TestRun_QuitStopsPolling(t *testing.T) {
	rec := terminaltest.New(20, 5)
	rec.Events = []tcell.Event{ctrl('q'), ch('z')}
	r := New(rec)
	if err := r.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !r.ShouldQuit() {
		t.Fatalf("expected quit")
	}
	if len(rec.Events) != 1 {
		t.Fatalf("events after quit should not be consumed, %d left", len(rec.Events))
	}
	if rec.FiniCalls != 1 {
		t.Fatalf("fini=%d, want 1", rec.FiniCalls)
	}
}

func TestRun_ReleasesTerminalOnPanic(t *testing.T) {
	rec := terminaltest.New(20, 5)
	rec.Events = []tcell.Event{ch('a')}
	rec.PollPanic = "event source exploded"
	r := New(rec)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic to propagate")
			}
		}()
		_ = r.Run()
	}()
	if rec.FiniCalls != 1 || rec.Active {
		t.Fatalf("terminal not released after panic: fini=%d active=%v", rec.FiniCalls, rec.Active)
	}
}

func TestRun_InitFailure(t *testing.T) {
	rec := terminaltest.New(20, 5)
	rec.InitErr = errors.New("not a tty")
	r := New(rec)
	if err := r.Run(); !errors.Is(err, rec.InitErr) {
		t.Fatalf("run err=%v, want %v", err, rec.InitErr)
	}
	if rec.PrintCalls != 0 {
		t.Fatalf("nothing should be drawn")
	}
	if rec.FiniCalls != 1 {
		t.Fatalf("a half-initialised terminal must still be restored")
	}
}

func TestRun_SizeFailureSuppressesRendering(t *testing.T) {
	rec := terminaltest.New(20, 5)
	rec.SizeErr = errors.New("ioctl failed")
	rec.Events = []tcell.Event{ch('a')}
	r := New(rec)
	if err := r.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if rec.PrintCalls != 0 {
		t.Fatalf("expected no drawing with an unknown size, got %d prints", rec.PrintCalls)
	}

	rec = terminaltest.New(20, 5)
	rec.SizeErr = errors.New("ioctl failed")
	rec.Events = []tcell.Event{ch('a'), tcell.NewEventResize(20, 5)}
	r = New(rec)
	if err := r.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if rec.Row(0) != "a" {
		t.Fatalf("expected drawing after resize, row0=%q", rec.Row(0))
	}
}

func TestRun_LogsSession(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "session.jsonl")
	t.Setenv("TERMEDIT_LOG_FILE", logPath)

	rec := terminaltest.New(20, 5)
	rec.Events = []tcell.Event{ch('a'), ctrl('q'), ctrl('q'), ctrl('q')}
	r := New(rec)
	r.Logger = logsFromEnv(t)
	if err := r.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	r.Logger.Close()

	events := readEvents(t, logPath)
	var names []string
	for _, e := range events {
		names = append(names, e["event"].(string))
	}
	got := strings.Join(names, ",")
	if got != "run.start,key,key,key,key,action,run.end" {
		t.Fatalf("events=%s", got)
	}
	if events[1]["rune"] != "a" {
		t.Fatalf("key event=%v", events[1])
	}
	if events[5]["name"] != "quit" {
		t.Fatalf("action event=%v", events[5])
	}
}
