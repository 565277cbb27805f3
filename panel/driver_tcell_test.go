package panel

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newSimPanel(t *testing.T, cols, rows int, opts Options) (*Panel, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	driver := NewTcellDriverFromScreen(sim)
	opts.StartPaused = true
	opts.OnFatal = func(err error) { t.Errorf("unexpected fatal fault: %v", err) }
	p, err := New(driver, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sim.SetSize(cols, rows)
	t.Cleanup(p.Exit)
	return p, sim
}

func TestTcellDriverRendersToSimulationScreen(t *testing.T) {
	p, sim := newSimPanel(t, 10, 5, Options{})
	cycle(t, p) // adopt the simulated size

	if err := p.WriteTextColor(1, 2, "ok", ColorBrightGreen, ColorBlue); err != nil {
		t.Fatalf("WriteTextColor: %v", err)
	}
	cycle(t, p)

	cells, w, _ := sim.GetContents()
	idx := 1*w + 2
	if string(cells[idx].Runes) != "o" {
		t.Fatalf("expected 'o' at (1,2), got %q", cells[idx].Runes)
	}
	fg, bg, _ := cells[idx].Style.Decompose()
	if fg != ColorBrightGreen.Tcell() || bg != ColorBlue.Tcell() {
		t.Fatalf("style not applied: fg=%v bg=%v", fg, bg)
	}
}

func TestTcellDriverKeyPath(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	driver := NewTcellDriverFromScreen(sim)
	p, err := New(driver, Options{UpdateRate: MinUpdateRate})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Exit()

	got := make(chan rune, 1)
	if _, err := p.OnKeyPressed(func(f *Frame, ev *tcell.EventKey) {
		select {
		case got <- ev.Rune():
		default:
		}
	}); err != nil {
		t.Fatalf("OnKeyPressed: %v", err)
	}

	sim.InjectKey(tcell.KeyRune, 'z', tcell.ModNone)

	select {
	case r := <-got:
		if r != 'z' {
			t.Fatalf("dispatched %q", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("injected key never dispatched")
	}
}

func TestTcellDriverInterruptStopsPolling(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	d := NewTcellDriverFromScreen(sim)
	if err := d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer d.Fini()

	done := make(chan bool, 1)
	go func() {
		_, ok := d.PollKey()
		done <- ok
	}()

	d.Interrupt()
	select {
	case ok := <-done:
		if ok {
			t.Fatalf("interrupted PollKey reported a key")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("PollKey still blocked after Interrupt")
	}
}
