// Copyright © 2026 CUIPanel contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/panel.go
// Summary: The panel manager: lifecycle, background workers, callbacks.

package panel

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Panel owns the terminal through its driver and maintains the frame
// buffer behind it. Two background workers drive it: the update scheduler
// repaints on a fixed cadence, the input monitor blocks on key presses.
// Any number of caller goroutines may issue drawing operations
// concurrently; a single bounded-wait lock serialises every touch of the
// grid and the callback registries.
//
// A process should construct at most one Panel at a time: the terminal
// device is exclusively owned and concurrent direct terminal access
// produces undefined interleaving.
type Panel struct {
	driver Driver
	lock   *timedMutex
	fatal  func(error)

	updateRate          atomic.Int64 // nanoseconds
	lockTimeoutOverride time.Duration
	paused              atomic.Bool
	dirty               atomic.Bool

	quit     chan struct{}
	quitOnce sync.Once
	exitOnce sync.Once
	wg       sync.WaitGroup

	// Everything below is guarded by lock.
	buf           *buffer
	passive       bool
	cursorRow     int
	cursorCol     int
	cursorVisible bool
	title         string
	beforeUpdate  handlerList[UpdateFunc]
	afterUpdate   handlerList[UpdateFunc]
	afterResize   handlerList[UpdateFunc]
	keyPressed    handlerList[KeyFunc]
}

// New initialises the driver, allocates the grid at the current terminal
// size (one row and one column are reserved to avoid auto-scroll on the
// final cell), starts both workers paused, then unpauses unless
// Options.StartPaused is set.
func New(driver Driver, opts Options) (*Panel, error) {
	rate, err := opts.updateRate()
	if err != nil {
		return nil, err
	}
	if err := driver.Init(); err != nil {
		return nil, fmt.Errorf("init driver: %w", err)
	}

	p := &Panel{
		driver:              driver,
		lock:                newTimedMutex(),
		lockTimeoutOverride: opts.LockTimeout,
		quit:                make(chan struct{}),
		passive:             opts.PassiveUpdate,
		cursorVisible:       opts.CursorVisible,
		title:               opts.Title,
	}
	p.updateRate.Store(int64(rate))
	p.fatal = opts.OnFatal
	if p.fatal == nil {
		p.fatal = p.defaultFatal
	}

	cols, rows := driver.Size()
	p.buf = newBuffer(cols-1, rows-1)
	if opts.Title != "" {
		driver.SetTitle(opts.Title)
	}
	p.applyCursor()
	p.driver.Flush()

	p.paused.Store(true)
	p.wg.Add(2)
	go p.updateLoop()
	go p.inputLoop()
	if !opts.StartPaused {
		p.paused.Store(false)
	}
	return p, nil
}

// Pause suppresses repaints and key dispatch. The workers keep cycling;
// keys pressed while paused are consumed and discarded.
func (p *Panel) Pause() { p.paused.Store(true) }

// Resume re-enables repaints and key dispatch.
func (p *Panel) Resume() { p.paused.Store(false) }

func (p *Panel) Paused() bool { return p.paused.Load() }

// UpdateRate returns the current worker cycle interval.
func (p *Panel) UpdateRate() time.Duration {
	return time.Duration(p.updateRate.Load())
}

// SetUpdateRate changes the worker cycle interval. Rates outside
// [MinUpdateRate, MaxUpdateRate] are rejected and the previous rate stays
// in effect.
func (p *Panel) SetUpdateRate(d time.Duration) error {
	if d < MinUpdateRate || d > MaxUpdateRate {
		return fmt.Errorf("%w: %v", ErrUpdateRate, d)
	}
	p.updateRate.Store(int64(d))
	return nil
}

// Done is closed once an exit has been requested, either through Exit or
// from within a callback. Hosts typically block on it before calling Exit.
func (p *Panel) Done() <-chan struct{} { return p.quit }

// Exit stops both workers, clears the screen and releases the terminal.
// Safe to call more than once. Must not be called from inside a callback;
// callbacks use Frame.Exit, which requests the shutdown without blocking.
func (p *Panel) Exit() {
	p.shutdown()
	p.exitOnce.Do(func() {
		p.wg.Wait()
		if err := p.lock.lock(p.lockTimeout()); err == nil {
			p.buf = newBuffer(p.panelSize())
			p.driver.Clear()
			p.lock.unlock()
		}
		p.driver.Fini()
	})
}

func (p *Panel) shutdown() {
	p.quitOnce.Do(func() {
		close(p.quit)
		p.driver.Interrupt()
	})
}

// Size returns the current panel dimensions in columns and rows. Zero
// values are returned in the pathological case where the panel lock cannot
// be acquired; the workers will have reported the fault by then.
func (p *Panel) Size() (cols, rows int) {
	if p.lock.lock(p.lockTimeout()) != nil {
		return 0, 0
	}
	defer p.lock.unlock()
	return p.buf.width, p.buf.height
}

// PassiveUpdate reports which update strategy is active.
func (p *Panel) PassiveUpdate() bool {
	if p.lock.lock(p.lockTimeout()) != nil {
		return false
	}
	defer p.lock.unlock()
	return p.passive
}

// SetPassiveUpdate swaps the update strategy. The swap is atomic with
// respect to scheduler cycles: a cycle runs entirely under one strategy.
func (p *Panel) SetPassiveUpdate(passive bool) error {
	if err := p.lock.lock(p.lockTimeout()); err != nil {
		return err
	}
	p.passive = passive
	p.lock.unlock()
	return nil
}

func (p *Panel) Title() string {
	if p.lock.lock(p.lockTimeout()) != nil {
		return ""
	}
	defer p.lock.unlock()
	return p.title
}

func (p *Panel) SetTitle(title string) error {
	if err := p.lock.lock(p.lockTimeout()); err != nil {
		return err
	}
	p.title = title
	p.driver.SetTitle(title)
	p.lock.unlock()
	return nil
}

func (p *Panel) CursorVisible() bool {
	if p.lock.lock(p.lockTimeout()) != nil {
		return false
	}
	defer p.lock.unlock()
	return p.cursorVisible
}

func (p *Panel) SetCursorVisible(visible bool) error {
	if err := p.lock.lock(p.lockTimeout()); err != nil {
		return err
	}
	p.cursorVisible = visible
	p.applyCursor()
	p.driver.Flush()
	p.lock.unlock()
	return nil
}

func (p *Panel) CursorPosition() (row, col int) {
	if p.lock.lock(p.lockTimeout()) != nil {
		return 0, 0
	}
	defer p.lock.unlock()
	return p.cursorRow, p.cursorCol
}

// SetCursorPosition moves the terminal cursor. Coordinates outside the
// panel are rejected with ErrOutOfRange.
func (p *Panel) SetCursorPosition(row, col int) error {
	if err := p.lock.lock(p.lockTimeout()); err != nil {
		return err
	}
	defer p.lock.unlock()
	if row < 0 || col < 0 || row >= p.buf.height || col >= p.buf.width {
		return fmt.Errorf("%w: cursor (%d,%d)", ErrOutOfRange, row, col)
	}
	p.cursorRow, p.cursorCol = row, col
	p.applyCursor()
	p.driver.Flush()
	return nil
}

// SetWindowSize requests a terminal resize and immediately reconciles the
// grid and repaints, without waiting for the next scheduled cycle.
func (p *Panel) SetWindowSize(cols, rows int) error {
	if cols < 2 || rows < 2 {
		return fmt.Errorf("%w: window %dx%d", ErrOutOfRange, cols, rows)
	}
	if err := p.driver.SetSize(cols, rows); err != nil {
		return fmt.Errorf("set window size: %w", err)
	}
	if err := p.lock.lock(p.lockTimeout()); err != nil {
		return err
	}
	f := &Frame{p: p}
	p.reconcile(f)
	p.repaint()
	p.lock.unlock()
	return nil
}

// Clear reconciles the grid against the terminal size, resets every cell
// to the default color pair and repaints.
func (p *Panel) Clear() error {
	if err := p.lock.lock(p.lockTimeout()); err != nil {
		return err
	}
	f := &Frame{p: p}
	p.reconcile(f)
	p.buf = newBuffer(p.panelSize())
	p.driver.Clear()
	p.repaint()
	p.dirty.Store(false)
	p.lock.unlock()
	return nil
}

// CharBuffer returns an independent copy of the character layer.
func (p *Panel) CharBuffer() ([][]rune, error) {
	if err := p.lock.lock(p.lockTimeout()); err != nil {
		return nil, err
	}
	defer p.lock.unlock()
	return p.buf.chars(), nil
}

// ColorBuffers returns independent copies of the foreground and background
// layers.
func (p *Panel) ColorBuffers() (fg, bg [][]Color, err error) {
	if err := p.lock.lock(p.lockTimeout()); err != nil {
		return nil, nil, err
	}
	defer p.lock.unlock()
	fg, bg = p.buf.colors()
	return fg, bg, nil
}

// Callback registration. Handlers fire in registration order; the returned
// id removes them again. Registration and removal take the panel lock, so
// a firing callback never sees the lists half-mutated.

func (p *Panel) OnBeforeUpdate(fn UpdateFunc) (int, error) {
	return p.register(&p.beforeUpdate, fn)
}

func (p *Panel) RemoveBeforeUpdate(id int) error {
	return p.unregister(&p.beforeUpdate, id)
}

func (p *Panel) OnAfterUpdate(fn UpdateFunc) (int, error) {
	return p.register(&p.afterUpdate, fn)
}

func (p *Panel) RemoveAfterUpdate(id int) error {
	return p.unregister(&p.afterUpdate, id)
}

func (p *Panel) OnAfterResize(fn UpdateFunc) (int, error) {
	return p.register(&p.afterResize, fn)
}

func (p *Panel) RemoveAfterResize(id int) error {
	return p.unregister(&p.afterResize, id)
}

func (p *Panel) OnKeyPressed(fn KeyFunc) (int, error) {
	if err := p.lock.lock(p.lockTimeout()); err != nil {
		return 0, err
	}
	defer p.lock.unlock()
	return p.keyPressed.add(fn), nil
}

func (p *Panel) RemoveKeyPressed(id int) error {
	if err := p.lock.lock(p.lockTimeout()); err != nil {
		return err
	}
	defer p.lock.unlock()
	p.keyPressed.remove(id)
	return nil
}

func (p *Panel) register(l *handlerList[UpdateFunc], fn UpdateFunc) (int, error) {
	if err := p.lock.lock(p.lockTimeout()); err != nil {
		return 0, err
	}
	defer p.lock.unlock()
	return l.add(fn), nil
}

func (p *Panel) unregister(l *handlerList[UpdateFunc], id int) error {
	if err := p.lock.lock(p.lockTimeout()); err != nil {
		return err
	}
	defer p.lock.unlock()
	l.remove(id)
	return nil
}

// lockTimeout is the acquisition bound: max(30s, 30×updateRate) unless an
// explicit override was configured.
func (p *Panel) lockTimeout() time.Duration {
	if p.lockTimeoutOverride > 0 {
		return p.lockTimeoutOverride
	}
	t := 30 * p.UpdateRate()
	if t < 30*time.Second {
		t = 30 * time.Second
	}
	return t
}

// updateLoop is the update scheduler worker. Each cycle sleeps for one
// update interval, then runs before-update callbacks, the active update
// strategy and after-update callbacks as one atomic lock hold.
func (p *Panel) updateLoop() {
	defer p.wg.Done()
	for {
		if !p.sleep(p.UpdateRate()) {
			return
		}
		if p.paused.Load() {
			continue
		}
		if err := p.lock.lock(p.lockTimeout()); err != nil {
			p.fatal(fmt.Errorf("update scheduler: %w", err))
			return
		}
		p.runUpdateCycle()
		p.lock.unlock()
	}
}

// runUpdateCycle executes one scheduler cycle. Lock held.
func (p *Panel) runUpdateCycle() {
	f := &Frame{p: p}
	for _, fn := range p.beforeUpdate.snapshot() {
		fn(f)
	}
	if p.passive {
		changed := p.reconcile(f)
		if changed || p.dirty.Load() {
			p.repaint()
			p.dirty.Store(false)
		}
	} else {
		p.reconcile(f)
		p.repaint()
	}
	for _, fn := range p.afterUpdate.snapshot() {
		fn(f)
	}
}

// inputLoop is the input monitor worker. The blocking key read lives on
// its own goroutine precisely so it can never stall repaints.
func (p *Panel) inputLoop() {
	defer p.wg.Done()
	for {
		if !p.sleep(p.UpdateRate()) {
			return
		}
		ev, ok := p.driver.PollKey()
		if !ok {
			return
		}
		if p.paused.Load() {
			// Consumed and discarded; not buffered for resume.
			continue
		}
		if err := p.lock.lock(p.lockTimeout()); err != nil {
			p.fatal(fmt.Errorf("input monitor: %w", err))
			return
		}
		f := &Frame{p: p}
		for _, fn := range p.keyPressed.snapshot() {
			fn(f, ev)
		}
		p.lock.unlock()
	}
}

// reconcile detects a terminal size change and migrates the grid. Lock
// held. Returns true when the dimensions changed.
//
// On a change it first waits for the size to settle: interactive
// drag-resizes report a burst of intermediate sizes, so it resamples at
// resizeSettleInterval until two consecutive samples agree.
func (p *Panel) reconcile(f *Frame) bool {
	w, h := p.panelSize()
	if w == p.buf.width && h == p.buf.height {
		return false
	}
	for {
		if !p.sleep(resizeSettleInterval) {
			return false
		}
		w2, h2 := p.panelSize()
		if w2 == w && h2 == h {
			break
		}
		w, h = w2, h2
	}

	p.driver.Clear()
	old := p.buf
	p.buf = newBuffer(w, h)
	p.buf.copyFrom(old)
	p.clampCursor()
	p.applyCursor()
	for _, fn := range p.afterResize.snapshot() {
		fn(f)
	}
	return true
}

// repaint pushes the whole grid to the terminal. Lock held. The cursor is
// hidden for the duration and afterwards restored to its tracked position,
// clamped to the new bounds, with its configured visibility; without this
// a repaint would strand the cursor at the last written cell.
func (p *Panel) repaint() {
	p.driver.HideCursor()
	renderBuffer(p.driver, p.buf)
	p.driver.Flush()
	p.clampCursor()
	p.applyCursor()
}

func (p *Panel) clampCursor() {
	if p.cursorRow >= p.buf.height {
		p.cursorRow = p.buf.height - 1
	}
	if p.cursorCol >= p.buf.width {
		p.cursorCol = p.buf.width - 1
	}
	if p.cursorRow < 0 {
		p.cursorRow = 0
	}
	if p.cursorCol < 0 {
		p.cursorCol = 0
	}
}

func (p *Panel) applyCursor() {
	if p.cursorVisible {
		p.driver.ShowCursor(p.cursorRow, p.cursorCol)
	} else {
		p.driver.HideCursor()
	}
}

// panelSize is the terminal size minus the reserved row and column.
func (p *Panel) panelSize() (cols, rows int) {
	c, r := p.driver.Size()
	return max(c-1, 1), max(r-1, 1)
}

// sleep waits for d or until shutdown. Returns false on shutdown.
func (p *Panel) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-p.quit:
		return false
	}
}

// defaultFatal is the unrecoverable-fault path: clear the terminal, report
// the fault, wait for acknowledgment and terminate with a non-zero status.
func (p *Panel) defaultFatal(err error) {
	p.shutdown()
	p.driver.Clear()
	p.driver.Fini()
	log.Printf("panel: fatal fault: %v", err)
	fmt.Fprintf(os.Stderr, "panel: fatal fault: %v\npress enter to exit", err)
	reader := bufio.NewReader(os.Stdin)
	_, _ = reader.ReadString('\n')
	os.Exit(1)
}
