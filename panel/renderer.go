// Copyright © 2026 CUIPanel contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/renderer.go
// Summary: Converts the grid into a minimal sequence of colored runs.

package panel

import "strings"

// renderBuffer repaints the whole grid through the driver. It always emits
// every cell; the economy comes from coalescing, not skipping. Walking
// row-major, consecutive cells sharing a color pair accumulate into one
// run; a color change or a row end closes the run. Continuation cells of
// wide runes contribute no rune of their own but keep their run open.
func renderBuffer(d Driver, b *buffer) {
	var sb strings.Builder
	for r, row := range b.cells {
		runCol := 0
		runFg, runBg := DefaultForeground, DefaultBackground
		open := false
		for c, cell := range row {
			if cell.Ch == 0 {
				if open && cell.Fg == runFg && cell.Bg == runBg {
					continue
				}
				// Orphaned continuation cell; render as a blank.
				cell.Ch = ' '
			}
			if open && (cell.Fg != runFg || cell.Bg != runBg) {
				d.WriteRun(r, runCol, sb.String(), runFg, runBg)
				sb.Reset()
				open = false
			}
			if !open {
				runCol = c
				runFg, runBg = cell.Fg, cell.Bg
				open = true
			}
			sb.WriteRune(cell.Ch)
		}
		if open {
			d.WriteRun(r, runCol, sb.String(), runFg, runBg)
			sb.Reset()
		}
	}
}
