// Copyright © 2026 CUIPanel contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/frame.go
// Summary: The view of the panel handed to callbacks while the lock is held.

package panel

// Frame is the panel as seen from inside a callback. The dispatcher
// already holds the panel lock when a callback runs, so Frame methods
// operate on the grid directly instead of re-acquiring it; a callback can
// draw, move the cursor or request an exit without deadlocking.
//
// A Frame is only valid for the duration of the callback it was passed to.
// Do not retain it or hand it to another goroutine.
type Frame struct {
	p *Panel
}

func (f *Frame) Size() (cols, rows int) {
	return f.p.buf.width, f.p.buf.height
}

func (f *Frame) FillRect(top, left, bottom, right int, ch rune) error {
	return f.mark(f.p.fillLocked(top, left, bottom, right, func(c *Cell) { c.Ch = ch }))
}

func (f *Frame) FillRectColor(top, left, bottom, right int, fg, bg Color) error {
	if err := checkColors(fg, bg); err != nil {
		return err
	}
	return f.mark(f.p.fillLocked(top, left, bottom, right, func(c *Cell) { c.Fg, c.Bg = fg, bg }))
}

func (f *Frame) FillRectCell(top, left, bottom, right int, ch rune, fg, bg Color) error {
	if err := checkColors(fg, bg); err != nil {
		return err
	}
	return f.mark(f.p.fillLocked(top, left, bottom, right, func(c *Cell) { c.Ch, c.Fg, c.Bg = ch, fg, bg }))
}

func (f *Frame) BlitChars(row, col int, block [][]rune) error {
	return f.mark(f.p.blitCharsLocked(row, col, block))
}

func (f *Frame) BlitColors(row, col int, fg, bg [][]Color) error {
	if !sameShape(fg, bg) {
		return ErrSizeMismatch
	}
	return f.mark(f.p.blitColorsLocked(row, col, fg, bg))
}

func (f *Frame) BlitCharsColor(row, col int, block [][]rune, fg, bg Color) error {
	if err := checkColors(fg, bg); err != nil {
		return err
	}
	return f.mark(f.p.blitCharsColorLocked(row, col, block, fg, bg))
}

func (f *Frame) BlitCells(row, col int, block [][]rune, fg, bg [][]Color) error {
	if len(block) != len(fg) || !sameShape(fg, bg) {
		return ErrSizeMismatch
	}
	for r := range block {
		if len(block[r]) != len(fg[r]) {
			return ErrSizeMismatch
		}
	}
	return f.mark(f.p.blitCellsLocked(row, col, block, fg, bg))
}

func (f *Frame) WriteText(row, col int, text string) error {
	return f.mark(f.p.writeTextLocked(row, col, text, 0, 0, false))
}

func (f *Frame) WriteTextColor(row, col int, text string, fg, bg Color) error {
	if err := checkColors(fg, bg); err != nil {
		return err
	}
	return f.mark(f.p.writeTextLocked(row, col, text, fg, bg, true))
}

func (f *Frame) CharBuffer() [][]rune {
	return f.p.buf.chars()
}

func (f *Frame) ColorBuffers() (fg, bg [][]Color) {
	return f.p.buf.colors()
}

func (f *Frame) CursorPosition() (row, col int) {
	return f.p.cursorRow, f.p.cursorCol
}

func (f *Frame) SetCursorPosition(row, col int) error {
	if row < 0 || col < 0 || row >= f.p.buf.height || col >= f.p.buf.width {
		return ErrOutOfRange
	}
	f.p.cursorRow, f.p.cursorCol = row, col
	return nil
}

func (f *Frame) Title() string { return f.p.title }

func (f *Frame) SetTitle(title string) {
	f.p.title = title
	f.p.driver.SetTitle(title)
}

func (f *Frame) Paused() bool { return f.p.paused.Load() }

// Pause takes effect from the next worker cycle onwards.
func (f *Frame) Pause() { f.p.paused.Store(true) }

func (f *Frame) Resume() { f.p.paused.Store(false) }

// Exit requests shutdown without blocking. The workers observe it after
// the current callback returns; the host completes the teardown with
// Panel.Exit.
func (f *Frame) Exit() { f.p.shutdown() }

func (f *Frame) mark(err error) error {
	if err == nil {
		f.p.dirty.Store(true)
	}
	return err
}
