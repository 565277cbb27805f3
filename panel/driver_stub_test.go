package panel

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

type recordedRun struct {
	row, col int
	text     string
	fg, bg   Color
}

// stubDriver records every driver call for assertions and lets tests feed
// key events and change the reported terminal size.
type stubDriver struct {
	mu       sync.Mutex
	cols     int
	rows     int
	runs     []recordedRun
	clears   int
	flushes  int
	shows    int
	hides    int
	inited   bool
	finished bool
	title    string

	keys     chan *tcell.EventKey
	quit     chan struct{}
	quitOnce sync.Once
}

func newStubDriver(cols, rows int) *stubDriver {
	return &stubDriver{
		cols: cols,
		rows: rows,
		keys: make(chan *tcell.EventKey, 8),
		quit: make(chan struct{}),
	}
}

func (d *stubDriver) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inited = true
	return nil
}

func (d *stubDriver) Fini() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.finished = true
}

func (d *stubDriver) Size() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cols, d.rows
}

func (d *stubDriver) SetSize(cols, rows int) error {
	d.resize(cols, rows)
	return nil
}

func (d *stubDriver) resize(cols, rows int) {
	d.mu.Lock()
	d.cols, d.rows = cols, rows
	d.mu.Unlock()
}

func (d *stubDriver) SetTitle(title string) {
	d.mu.Lock()
	d.title = title
	d.mu.Unlock()
}

func (d *stubDriver) Clear() {
	d.mu.Lock()
	d.clears++
	d.mu.Unlock()
}

func (d *stubDriver) WriteRun(row, col int, text string, fg, bg Color) {
	d.mu.Lock()
	d.runs = append(d.runs, recordedRun{row: row, col: col, text: text, fg: fg, bg: bg})
	d.mu.Unlock()
}

func (d *stubDriver) ShowCursor(row, col int) {
	d.mu.Lock()
	d.shows++
	d.mu.Unlock()
}

func (d *stubDriver) HideCursor() {
	d.mu.Lock()
	d.hides++
	d.mu.Unlock()
}

func (d *stubDriver) Flush() {
	d.mu.Lock()
	d.flushes++
	d.mu.Unlock()
}

func (d *stubDriver) PollKey() (*tcell.EventKey, bool) {
	select {
	case ev := <-d.keys:
		return ev, true
	case <-d.quit:
		return nil, false
	}
}

func (d *stubDriver) Interrupt() {
	d.quitOnce.Do(func() { close(d.quit) })
}

func (d *stubDriver) runCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.runs)
}

func (d *stubDriver) takeRuns() []recordedRun {
	d.mu.Lock()
	defer d.mu.Unlock()
	runs := d.runs
	d.runs = nil
	return runs
}
