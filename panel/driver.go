// Copyright © 2026 CUIPanel contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/driver.go
// Summary: Terminal backend abstraction injected into the panel.

package panel

import "github.com/gdamore/tcell/v2"

// Driver is the terminal control surface the panel draws through. Exactly
// one panel owns a driver at a time; the panel is the sole writer, callers
// never touch the terminal directly. Injecting the driver keeps the panel
// testable with a stub or a simulation screen.
type Driver interface {
	// Init claims the terminal. The panel calls it once, before anything else.
	Init() error

	// Fini releases the terminal and restores its previous state.
	Fini()

	// Size returns the terminal dimensions in columns and rows.
	Size() (cols, rows int)

	// SetSize requests a terminal resize. Not every terminal honours it;
	// the panel picks the change up through Size on the next cycle.
	SetSize(cols, rows int) error

	// SetTitle sets the terminal title.
	SetTitle(title string)

	// Clear erases the whole screen and resets the active colors.
	Clear()

	// WriteRun writes one run of same-colored text starting at the given
	// cell. Runs never span rows.
	WriteRun(row, col int, text string, fg, bg Color)

	// ShowCursor makes the cursor visible at the given cell.
	ShowCursor(row, col int)

	// HideCursor makes the cursor invisible.
	HideCursor()

	// Flush pushes buffered output to the terminal.
	Flush()

	// PollKey blocks until the next key press. It returns ok == false once
	// the driver is interrupted or closed; the input monitor exits on that.
	PollKey() (ev *tcell.EventKey, ok bool)

	// Interrupt unblocks a pending PollKey during shutdown.
	Interrupt()
}
