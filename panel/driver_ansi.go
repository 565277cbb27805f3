// Copyright © 2026 CUIPanel contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/driver_ansi.go
// Summary: Raw escape-code terminal driver over an arbitrary reader/writer pair.

package panel

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

// AnsiDriver talks to the terminal with raw escape sequences. Each run the
// renderer hands over costs at most one cursor move, one color switch and
// one text write, which is the whole point of run coalescing.
//
// When the output is a real terminal the driver switches it to raw mode and
// the alternate screen; on other writers (pipes, buffers in tests) it only
// emits the sequences.
type AnsiDriver struct {
	in  io.Reader
	out *bufio.Writer

	fd       int
	oldState *term.State

	// last color pair sent, to skip redundant SGR switches
	haveColor bool
	lastFg    Color
	lastBg    Color

	keys     chan *tcell.EventKey
	quit     chan struct{}
	quitOnce sync.Once

	fallbackCols int
	fallbackRows int
}

// NewAnsiDriver builds a driver over stdin/stdout.
func NewAnsiDriver() *AnsiDriver {
	return NewAnsiDriverFrom(os.Stdin, os.Stdout)
}

// NewAnsiDriverFrom builds a driver over the given streams. Raw mode and
// size queries engage only when out is a terminal file descriptor.
func NewAnsiDriverFrom(in io.Reader, out io.Writer) *AnsiDriver {
	d := &AnsiDriver{
		in:           in,
		out:          bufio.NewWriterSize(out, 32*1024),
		fd:           -1,
		keys:         make(chan *tcell.EventKey, 8),
		quit:         make(chan struct{}),
		fallbackCols: 80,
		fallbackRows: 24,
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		d.fd = int(f.Fd())
	}
	return d
}

func (d *AnsiDriver) Init() error {
	if d.fd >= 0 {
		state, err := term.MakeRaw(d.fd)
		if err != nil {
			return fmt.Errorf("enter raw mode: %w", err)
		}
		d.oldState = state
	}
	d.out.WriteString("\x1b[?1049h") // alternate screen
	d.out.WriteString("\x1b[?25l")
	d.out.WriteString("\x1b[2J\x1b[H")
	d.out.Flush()
	go d.readLoop()
	return nil
}

func (d *AnsiDriver) Fini() {
	d.Interrupt()
	d.out.WriteString("\x1b[0m")
	d.out.WriteString("\x1b[?25h")
	d.out.WriteString("\x1b[?1049l")
	d.out.Flush()
	if d.oldState != nil {
		_ = term.Restore(d.fd, d.oldState)
		d.oldState = nil
	}
}

func (d *AnsiDriver) Size() (int, int) {
	if d.fd >= 0 {
		if cols, rows, err := term.GetSize(d.fd); err == nil {
			return cols, rows
		}
	}
	return d.fallbackCols, d.fallbackRows
}

// SetSize asks the terminal to resize itself (XTWINOPS). Terminals that
// ignore the request simply keep reporting the old size.
func (d *AnsiDriver) SetSize(cols, rows int) error {
	fmt.Fprintf(d.out, "\x1b[8;%d;%dt", rows, cols)
	d.out.Flush()
	if d.fd < 0 {
		d.fallbackCols, d.fallbackRows = cols, rows
	}
	return nil
}

func (d *AnsiDriver) SetTitle(title string) {
	fmt.Fprintf(d.out, "\x1b]0;%s\x07", title)
	d.out.Flush()
}

func (d *AnsiDriver) Clear() {
	d.out.WriteString("\x1b[0m\x1b[2J\x1b[H")
	d.haveColor = false
	d.out.Flush()
}

func (d *AnsiDriver) WriteRun(row, col int, text string, fg, bg Color) {
	fmt.Fprintf(d.out, "\x1b[%d;%dH", row+1, col+1)
	if !d.haveColor || fg != d.lastFg || bg != d.lastBg {
		fmt.Fprintf(d.out, "\x1b[%d;%dm", fg.sgr(false), bg.sgr(true))
		d.haveColor = true
		d.lastFg, d.lastBg = fg, bg
	}
	d.out.WriteString(text)
}

func (d *AnsiDriver) ShowCursor(row, col int) {
	fmt.Fprintf(d.out, "\x1b[%d;%dH\x1b[?25h", row+1, col+1)
	d.out.Flush()
}

func (d *AnsiDriver) HideCursor() {
	d.out.WriteString("\x1b[?25l")
}

// Flush ends the repaint: reset colors and push everything out in one write.
func (d *AnsiDriver) Flush() {
	d.out.WriteString("\x1b[0m")
	d.haveColor = false
	d.out.Flush()
}

func (d *AnsiDriver) PollKey() (*tcell.EventKey, bool) {
	select {
	case ev, ok := <-d.keys:
		if !ok {
			return nil, false
		}
		return ev, true
	case <-d.quit:
		return nil, false
	}
}

func (d *AnsiDriver) Interrupt() {
	d.quitOnce.Do(func() { close(d.quit) })
}

// readLoop decodes the input byte stream into key events until the reader
// drains or the driver is interrupted.
func (d *AnsiDriver) readLoop() {
	dec := newKeyDecoder(d.in)
	for {
		ev, err := dec.next()
		if err != nil {
			close(d.keys)
			return
		}
		select {
		case d.keys <- ev:
		case <-d.quit:
			return
		}
	}
}
