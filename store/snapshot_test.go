package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/FrostbiteXSW/CUIPanel/panel"
)

// quietDriver is the minimal Driver a panel needs for snapshot tests.
type quietDriver struct {
	cols, rows int
	quit       chan struct{}
	quitOnce   sync.Once
}

func newQuietDriver(cols, rows int) *quietDriver {
	return &quietDriver{cols: cols, rows: rows, quit: make(chan struct{})}
}

func (d *quietDriver) Init() error                                        { return nil }
func (d *quietDriver) Fini()                                              {}
func (d *quietDriver) Size() (int, int)                                   { return d.cols, d.rows }
func (d *quietDriver) SetSize(cols, rows int) error                       { d.cols, d.rows = cols, rows; return nil }
func (d *quietDriver) SetTitle(string)                                    {}
func (d *quietDriver) Clear()                                             {}
func (d *quietDriver) WriteRun(int, int, string, panel.Color, panel.Color) {}
func (d *quietDriver) ShowCursor(int, int)                                {}
func (d *quietDriver) HideCursor()                                        {}
func (d *quietDriver) Flush()                                             {}

func (d *quietDriver) PollKey() (*tcell.EventKey, bool) {
	<-d.quit
	return nil, false
}

func (d *quietDriver) Interrupt() {
	d.quitOnce.Do(func() { close(d.quit) })
}

func newSnapshotPanel(t *testing.T) *panel.Panel {
	t.Helper()
	p, err := panel.New(newQuietDriver(10, 5), panel.Options{
		StartPaused: true,
		OnFatal:     func(err error) { t.Errorf("fatal fault: %v", err) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(p.Exit)
	return p
}

func TestSnapshotSaveLoadRestore(t *testing.T) {
	p := newSnapshotPanel(t)
	if err := p.FillRectCell(1, 1, 2, 6, '#', panel.ColorBrightRed, panel.ColorBlue); err != nil {
		t.Fatalf("FillRectCell: %v", err)
	}
	if err := p.WriteTextColor(0, 0, "title", panel.ColorYellow, panel.ColorBlack); err != nil {
		t.Fatalf("WriteTextColor: %v", err)
	}

	snap, err := Capture(p)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if snap.Width != 9 || snap.Height != 4 {
		t.Fatalf("snapshot dims %dx%d", snap.Width, snap.Height)
	}

	path := filepath.Join(t.TempDir(), "panel", "snapshot.json")
	st := NewSnapshotStore(path)
	if err := st.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := p.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := loaded.Restore(p); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	chars, err := p.CharBuffer()
	if err != nil {
		t.Fatalf("CharBuffer: %v", err)
	}
	fg, bg, err := p.ColorBuffers()
	if err != nil {
		t.Fatalf("ColorBuffers: %v", err)
	}
	if chars[1][3] != '#' || fg[1][3] != panel.ColorBrightRed || bg[1][3] != panel.ColorBlue {
		t.Fatalf("restored cell wrong: %q fg=%v bg=%v", chars[1][3], fg[1][3], bg[1][3])
	}
	if chars[0][0] != 't' {
		t.Fatalf("restored text wrong: %q", chars[0][0])
	}
}

func TestSnapshotDetectsCorruption(t *testing.T) {
	p := newSnapshotPanel(t)
	if err := p.WriteText(0, 0, "data"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	snap, err := Capture(p)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}

	path := filepath.Join(t.TempDir(), "snapshot.json")
	st := NewSnapshotStore(path)
	if err := st.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	tampered := []byte(string(data))
	for i := range tampered {
		if tampered[i] == 'd' {
			tampered[i] = 'D'
			break
		}
	}
	if err := os.WriteFile(path, tampered, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := st.Load(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	st := NewSnapshotStore(filepath.Join(t.TempDir(), "absent.json"))
	if _, err := st.Load(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
