package terminal

import (
	"errors"
	"testing"

	"example.com/termedit/pkg/config"
	"github.com/gdamore/tcell/v2"
)

func newSim(t *testing.T) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	scr := NewScreen(sim, config.DefaultTheme())
	if err := scr.Init(); err != nil {
		t.Fatalf("initializing simulation screen failed: %v", err)
	}
	sim.SetSize(20, 5)
	return scr, sim
}

func rowText(sim tcell.SimulationScreen, row, width int) string {
	var out []rune
	for x := 0; x < width; x++ {
		r, comb, _, w := sim.GetContent(x, row)
		out = append(out, r)
		out = append(out, comb...)
		if w == 2 {
			x++
		}
	}
	return string(out)
}

func TestScreen_PrintRow(t *testing.T) {
	scr, sim := newSim(t)
	defer scr.Fini()

	if err := scr.PrintRow(1, "hello"); err != nil {
		t.Fatalf("print: %v", err)
	}
	if got := rowText(sim, 1, 7); got != "hello  " {
		t.Fatalf("unexpected row %q", got)
	}
	// a shorter print clears what was there before
	_ = scr.PrintRow(1, "hi")
	if got := rowText(sim, 1, 5); got != "hi   " {
		t.Fatalf("row not cleared: %q", got)
	}
}

func TestScreen_PrintRowWideAndCombining(t *testing.T) {
	scr, sim := newSim(t)
	defer scr.Fini()

	_ = scr.PrintRow(0, "a\u4e16e\u0301b")
	r, _, _, w := sim.GetContent(1, 0)
	if r != '\u4e16' || w != 2 {
		t.Fatalf("expected wide rune at col 1, got %q width %d", r, w)
	}
	r, comb, _, _ := sim.GetContent(3, 0)
	if r != 'e' || len(comb) != 1 || comb[0] != '\u0301' {
		t.Fatalf("expected e + combining at col 3, got %q %q", r, comb)
	}
	r, _, _, _ = sim.GetContent(4, 0)
	if r != 'b' {
		t.Fatalf("expected b at col 4, got %q", r)
	}
}

func TestScreen_PrintInvertedRowUsesStatusStyle(t *testing.T) {
	scr, sim := newSim(t)
	defer scr.Fini()

	_ = scr.PrintInvertedRow(4, "status")
	want := config.DefaultTheme().StatusStyle()
	for x := 0; x < 20; x++ {
		_, _, style, _ := sim.GetContent(x, 4)
		if style != want {
			t.Fatalf("expected status style at col %d", x)
		}
	}
}

func TestScreen_PrintMessageRowUsesMessageStyle(t *testing.T) {
	scr, sim := newSim(t)
	defer scr.Fini()

	_ = scr.PrintMessageRow(4, "saved")
	want := config.DefaultTheme().MessageStyle()
	r, _, style, _ := sim.GetContent(0, 4)
	if r != 's' || style != want {
		t.Fatalf("expected message text in message style, got %q", r)
	}
	_, _, style, _ = sim.GetContent(19, 4)
	if style != want {
		t.Fatalf("expected the rest of the row filled with message style")
	}
}

func TestScreen_Caret(t *testing.T) {
	scr, sim := newSim(t)
	defer scr.Fini()

	scr.MoveCaretTo(Position{Col: 3, Row: 2})
	scr.ShowCaret()
	_ = scr.Flush()
	x, y, visible := sim.GetCursor()
	if !visible || x != 3 || y != 2 {
		t.Fatalf("expected visible caret at (3,2), got (%d,%d) visible=%v", x, y, visible)
	}
	scr.HideCaret()
	_ = scr.Flush()
	if _, _, visible := sim.GetCursor(); visible {
		t.Fatalf("expected hidden caret")
	}
}

func TestScreen_Size(t *testing.T) {
	scr, _ := newSim(t)
	size, err := scr.Size()
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	if size != (Size{Width: 20, Height: 5}) {
		t.Fatalf("unexpected size %+v", size)
	}
	scr.Fini()
	if _, err := scr.Size(); !errors.Is(err, ErrNotActive) {
		t.Fatalf("expected ErrNotActive after Fini, got %v", err)
	}
	if err := scr.PrintRow(0, "x"); !errors.Is(err, ErrNotActive) {
		t.Fatalf("expected ErrNotActive from PrintRow, got %v", err)
	}
	if ev := scr.PollEvent(); ev != nil {
		t.Fatalf("expected nil event after Fini")
	}
	scr.Fini()
}

type fakeTerm struct {
	Terminal
	initErr error
	inits   int
	finis   int
}

func (f *fakeTerm) Init() error { f.inits++; return f.initErr }
func (f *fakeTerm) Fini()       { f.finis++ }

func TestAcquireReleasesOnce(t *testing.T) {
	f := &fakeTerm{}
	release, err := Acquire(f)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	release()
	release()
	if f.inits != 1 || f.finis != 1 {
		t.Fatalf("expected one init and one fini, got %d/%d", f.inits, f.finis)
	}
}

func TestAcquireRestoresOnInitFailure(t *testing.T) {
	f := &fakeTerm{initErr: errors.New("no tty")}
	release, err := Acquire(f)
	if err == nil {
		t.Fatalf("expected error")
	}
	release()
	if f.finis != 1 {
		t.Fatalf("expected cleanup after failed init, got %d", f.finis)
	}
}

func TestAcquireReleasesOnPanic(t *testing.T) {
	f := &fakeTerm{}
	func() {
		defer func() { _ = recover() }()
		release, _ := Acquire(f)
		defer release()
		panic("boom")
	}()
	if f.finis != 1 {
		t.Fatalf("expected release during unwind, got %d", f.finis)
	}
}

func TestPositionSub(t *testing.T) {
	p := Position{Col: 5, Row: 2}.Sub(Position{Col: 2, Row: 4})
	if p != (Position{Col: 3, Row: 0}) {
		t.Fatalf("unexpected %+v", p)
	}
}
