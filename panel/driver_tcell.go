// Copyright © 2026 CUIPanel contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/driver_tcell.go
// Summary: tcell-backed terminal driver, the default backend.

package panel

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type styleKey struct {
	fg, bg Color
}

// TcellDriver adapts a tcell.Screen to the Driver interface.
type TcellDriver struct {
	screen     tcell.Screen
	styleCache map[styleKey]tcell.Style
}

// NewTcellDriver allocates a driver on the process terminal.
func NewTcellDriver() (*TcellDriver, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTcellDriverFromScreen(screen), nil
}

// NewTcellDriverFromScreen wraps the provided screen. Useful with
// tcell.NewSimulationScreen in tests.
func NewTcellDriverFromScreen(screen tcell.Screen) *TcellDriver {
	return &TcellDriver{
		screen:     screen,
		styleCache: make(map[styleKey]tcell.Style),
	}
}

func (d *TcellDriver) Init() error {
	if err := d.screen.Init(); err != nil {
		return err
	}
	d.screen.SetStyle(d.style(DefaultForeground, DefaultBackground))
	d.screen.HideCursor()
	d.screen.Clear()
	return nil
}

func (d *TcellDriver) Fini() {
	d.screen.Fini()
}

func (d *TcellDriver) Size() (int, int) {
	return d.screen.Size()
}

func (d *TcellDriver) SetSize(cols, rows int) error {
	d.screen.SetSize(cols, rows)
	return nil
}

func (d *TcellDriver) SetTitle(title string) {
	d.screen.SetTitle(title)
}

func (d *TcellDriver) Clear() {
	d.screen.Fill(' ', d.style(DefaultForeground, DefaultBackground))
	d.screen.Show()
}

func (d *TcellDriver) WriteRun(row, col int, text string, fg, bg Color) {
	style := d.style(fg, bg)
	x := col
	for _, r := range text {
		d.screen.SetContent(x, row, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func (d *TcellDriver) ShowCursor(row, col int) {
	d.screen.ShowCursor(col, row)
}

func (d *TcellDriver) HideCursor() {
	d.screen.HideCursor()
}

func (d *TcellDriver) Flush() {
	d.screen.Show()
}

// PollKey pumps the tcell event stream, surfacing key presses only. Resize
// events are dropped here; the panel watches Size directly.
func (d *TcellDriver) PollKey() (*tcell.EventKey, bool) {
	for {
		switch ev := d.screen.PollEvent().(type) {
		case *tcell.EventKey:
			return ev, true
		case *tcell.EventInterrupt:
			return nil, false
		case nil:
			return nil, false
		}
	}
}

func (d *TcellDriver) Interrupt() {
	_ = d.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (d *TcellDriver) style(fg, bg Color) tcell.Style {
	key := styleKey{fg: fg, bg: bg}
	if st, ok := d.styleCache[key]; ok {
		return st
	}
	st := tcell.StyleDefault.Foreground(fg.Tcell()).Background(bg.Tcell())
	d.styleCache[key] = st
	return st
}
