// Copyright © 2026 CUIPanel contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/buffer.go
// Summary: The in-memory cell grid backing the panel.

package panel

// buffer is the frame buffer: a row-major grid of cells, origin top-left.
// It carries no locking of its own; the owning panel serialises access.
type buffer struct {
	width  int
	height int
	cells  [][]Cell
}

func newBuffer(width, height int) *buffer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	cells := make([][]Cell, height)
	for r := range cells {
		row := make([]Cell, width)
		for c := range row {
			row[c] = defaultCell
		}
		cells[r] = row
	}
	return &buffer{width: width, height: height, cells: cells}
}

// copyFrom copies every cell of old that falls inside the overlap of the
// two grids. Cells outside the overlap keep their default value.
func (b *buffer) copyFrom(old *buffer) {
	if old == nil {
		return
	}
	h := min(b.height, old.height)
	w := min(b.width, old.width)
	for r := 0; r < h; r++ {
		copy(b.cells[r][:w], old.cells[r][:w])
	}
}

// chars returns an independent copy of the character layer.
func (b *buffer) chars() [][]rune {
	out := make([][]rune, b.height)
	for r, row := range b.cells {
		line := make([]rune, b.width)
		for c, cell := range row {
			line[c] = cell.Ch
		}
		out[r] = line
	}
	return out
}

// colors returns independent copies of the foreground and background layers.
func (b *buffer) colors() (fg, bg [][]Color) {
	fg = make([][]Color, b.height)
	bg = make([][]Color, b.height)
	for r, row := range b.cells {
		fgLine := make([]Color, b.width)
		bgLine := make([]Color, b.width)
		for c, cell := range row {
			fgLine[c] = cell.Fg
			bgLine[c] = cell.Bg
		}
		fg[r] = fgLine
		bg[r] = bgLine
	}
	return fg, bg
}
