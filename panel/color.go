// Copyright © 2026 CUIPanel contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/color.go
// Summary: Fixed 16-entry color palette shared by the grid and the drivers.

package panel

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Color selects one entry of the fixed 16-color palette: the eight base
// colors plus their intensified variants. Foreground and background use the
// same palette independently.
type Color uint8

const (
	ColorBlack Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightBlack
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite

	numColors = 16
)

// Default color pair for freshly allocated and cleared cells.
const (
	DefaultForeground = ColorWhite
	DefaultBackground = ColorBlack
)

var colorNames = [numColors]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright-black", "bright-red", "bright-green", "bright-yellow",
	"bright-blue", "bright-magenta", "bright-cyan", "bright-white",
}

func (c Color) String() string {
	if c < numColors {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

func (c Color) valid() bool { return c < numColors }

// Tcell maps the palette entry onto the terminal's standard 16-color
// palette as tcell understands it.
func (c Color) Tcell() tcell.Color {
	return tcell.PaletteColor(int(c & 0x0f))
}

// sgr returns the SGR parameter selecting this color, for the raw
// escape-code backend. Base colors map to 30-37/40-47, intensified ones
// to 90-97/100-107.
func (c Color) sgr(background bool) int {
	n := int(c & 0x0f)
	code := 30 + n
	if n >= 8 {
		code = 90 + n - 8
	}
	if background {
		code += 10
	}
	return code
}
