// Copyright © 2026 CUIPanel contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/draw.go
// Summary: Caller-facing grid mutation: rectangle fills, block blits, text.

package panel

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Rectangle fills are strict: any coordinate outside the panel rejects the
// whole call with ErrOutOfRange and nothing is written. Blits are lenient:
// a valid start position is required, but oversized content is silently
// truncated at the panel edge. Callers rely on that asymmetry to blit
// sprites near edges without bounds-checking every call.

// FillRect sets the character of every cell in the inclusive rectangle,
// leaving colors untouched.
func (p *Panel) FillRect(top, left, bottom, right int, ch rune) error {
	return p.drawOp(func() error {
		return p.fillLocked(top, left, bottom, right, func(c *Cell) { c.Ch = ch })
	})
}

// FillRectColor sets the color pair of every cell in the inclusive
// rectangle, leaving characters untouched.
func (p *Panel) FillRectColor(top, left, bottom, right int, fg, bg Color) error {
	if err := checkColors(fg, bg); err != nil {
		return err
	}
	return p.drawOp(func() error {
		return p.fillLocked(top, left, bottom, right, func(c *Cell) { c.Fg, c.Bg = fg, bg })
	})
}

// FillRectCell sets character and colors of every cell in the inclusive
// rectangle.
func (p *Panel) FillRectCell(top, left, bottom, right int, ch rune, fg, bg Color) error {
	if err := checkColors(fg, bg); err != nil {
		return err
	}
	return p.drawOp(func() error {
		return p.fillLocked(top, left, bottom, right, func(c *Cell) { c.Ch, c.Fg, c.Bg = ch, fg, bg })
	})
}

// BlitChars copies a character block onto the grid, truncating at the
// panel edge. Colors are untouched.
func (p *Panel) BlitChars(row, col int, block [][]rune) error {
	return p.drawOp(func() error { return p.blitCharsLocked(row, col, block) })
}

// BlitColors copies foreground and background blocks onto the grid,
// truncating at the panel edge. The two blocks must share a shape.
func (p *Panel) BlitColors(row, col int, fg, bg [][]Color) error {
	if !sameShape(fg, bg) {
		return fmt.Errorf("%w: fg %s vs bg %s", ErrSizeMismatch, shape(fg), shape(bg))
	}
	return p.drawOp(func() error { return p.blitColorsLocked(row, col, fg, bg) })
}

// BlitCharsColor copies a character block painted in one uniform color
// pair, truncating at the panel edge.
func (p *Panel) BlitCharsColor(row, col int, block [][]rune, fg, bg Color) error {
	if err := checkColors(fg, bg); err != nil {
		return err
	}
	return p.drawOp(func() error { return p.blitCharsColorLocked(row, col, block, fg, bg) })
}

// BlitCells copies a character block with per-cell colors, truncating at
// the panel edge. All three blocks must share a shape.
func (p *Panel) BlitCells(row, col int, block [][]rune, fg, bg [][]Color) error {
	if len(block) != len(fg) || !sameShape(fg, bg) {
		return fmt.Errorf("%w: chars %dx?, fg %s, bg %s", ErrSizeMismatch, len(block), shape(fg), shape(bg))
	}
	for r := range block {
		if len(block[r]) != len(fg[r]) {
			return fmt.Errorf("%w: row %d", ErrSizeMismatch, r)
		}
	}
	return p.drawOp(func() error { return p.blitCellsLocked(row, col, block, fg, bg) })
}

// WriteText places a string on one row, truncating at the right edge.
// Cell colors are untouched. Wide runes occupy two columns; a wide rune
// that would straddle the edge is dropped.
func (p *Panel) WriteText(row, col int, text string) error {
	return p.drawOp(func() error { return p.writeTextLocked(row, col, text, 0, 0, false) })
}

// WriteTextColor places a string on one row in the given colors,
// truncating at the right edge.
func (p *Panel) WriteTextColor(row, col int, text string, fg, bg Color) error {
	if err := checkColors(fg, bg); err != nil {
		return err
	}
	return p.drawOp(func() error { return p.writeTextLocked(row, col, text, fg, bg, true) })
}

// drawOp wraps a mutation core with the lock and, on success, the
// best-effort dirty mark. The mark lives outside the lock: it only gates
// the passive-mode repaint optimisation, never correctness.
func (p *Panel) drawOp(core func() error) error {
	if err := p.lock.lock(p.lockTimeout()); err != nil {
		return err
	}
	err := core()
	p.lock.unlock()
	if err == nil {
		p.dirty.Store(true)
	}
	return err
}

// Mutation cores. Lock held by the caller.

func (p *Panel) fillLocked(top, left, bottom, right int, apply func(*Cell)) error {
	if top < 0 || left < 0 || top > bottom || left > right ||
		bottom >= p.buf.height || right >= p.buf.width {
		return fmt.Errorf("%w: rectangle (%d,%d)-(%d,%d) on %dx%d panel",
			ErrOutOfRange, top, left, bottom, right, p.buf.width, p.buf.height)
	}
	for r := top; r <= bottom; r++ {
		row := p.buf.cells[r]
		for c := left; c <= right; c++ {
			apply(&row[c])
		}
	}
	return nil
}

func (p *Panel) checkStart(row, col int) error {
	if row < 0 || col < 0 || row >= p.buf.height || col >= p.buf.width {
		return fmt.Errorf("%w: start (%d,%d) on %dx%d panel",
			ErrOutOfRange, row, col, p.buf.width, p.buf.height)
	}
	return nil
}

func (p *Panel) blitCharsLocked(row, col int, block [][]rune) error {
	if err := p.checkStart(row, col); err != nil {
		return err
	}
	for r, line := range block {
		gr := row + r
		if gr >= p.buf.height {
			break
		}
		dst := p.buf.cells[gr]
		for c, ch := range line {
			gc := col + c
			if gc >= p.buf.width {
				break
			}
			dst[gc].Ch = ch
		}
	}
	return nil
}

func (p *Panel) blitColorsLocked(row, col int, fg, bg [][]Color) error {
	if err := p.checkStart(row, col); err != nil {
		return err
	}
	for r := range fg {
		gr := row + r
		if gr >= p.buf.height {
			break
		}
		dst := p.buf.cells[gr]
		for c := range fg[r] {
			gc := col + c
			if gc >= p.buf.width {
				break
			}
			dst[gc].Fg = fg[r][c] & 0x0f
			dst[gc].Bg = bg[r][c] & 0x0f
		}
	}
	return nil
}

func (p *Panel) blitCharsColorLocked(row, col int, block [][]rune, fg, bg Color) error {
	if err := p.checkStart(row, col); err != nil {
		return err
	}
	for r, line := range block {
		gr := row + r
		if gr >= p.buf.height {
			break
		}
		dst := p.buf.cells[gr]
		for c, ch := range line {
			gc := col + c
			if gc >= p.buf.width {
				break
			}
			dst[gc] = Cell{Ch: ch, Fg: fg, Bg: bg}
		}
	}
	return nil
}

func (p *Panel) blitCellsLocked(row, col int, block [][]rune, fg, bg [][]Color) error {
	if err := p.checkStart(row, col); err != nil {
		return err
	}
	for r, line := range block {
		gr := row + r
		if gr >= p.buf.height {
			break
		}
		dst := p.buf.cells[gr]
		for c, ch := range line {
			gc := col + c
			if gc >= p.buf.width {
				break
			}
			dst[gc] = Cell{Ch: ch, Fg: fg[r][c] & 0x0f, Bg: bg[r][c] & 0x0f}
		}
	}
	return nil
}

func (p *Panel) writeTextLocked(row, col int, text string, fg, bg Color, color bool) error {
	if err := p.checkStart(row, col); err != nil {
		return err
	}
	dst := p.buf.cells[row]
	c := col
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if c+w > p.buf.width {
			break
		}
		if color {
			dst[c] = Cell{Ch: ch, Fg: fg, Bg: bg}
		} else {
			dst[c].Ch = ch
		}
		for k := 1; k < w; k++ {
			cont := Cell{Ch: 0, Fg: dst[c].Fg, Bg: dst[c].Bg}
			dst[c+k] = cont
		}
		c += w
	}
	return nil
}

func checkColors(fg, bg Color) error {
	if !fg.valid() {
		return fmt.Errorf("%w: foreground %d", ErrOutOfRange, uint8(fg))
	}
	if !bg.valid() {
		return fmt.Errorf("%w: background %d", ErrOutOfRange, uint8(bg))
	}
	return nil
}

func sameShape(a, b [][]Color) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
	}
	return true
}

func shape(b [][]Color) string {
	if len(b) == 0 {
		return "0x0"
	}
	return fmt.Sprintf("%dx%d", len(b), len(b[0]))
}
