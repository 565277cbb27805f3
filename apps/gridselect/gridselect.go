// Package gridselect draws a grid of cells and moves a highlighted
// selection cursor with the arrow keys. Enter "presses" the selected cell.
package gridselect

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/FrostbiteXSW/CUIPanel/panel"
)

const cellWidth, cellHeight = 6, 3

type selector struct {
	row, col     int
	gridRows     int
	gridCols     int
	lastSelected string
}

// Attach registers the grid demo on the panel.
func Attach(p *panel.Panel) error {
	s := &selector{}
	if _, err := p.OnBeforeUpdate(s.draw); err != nil {
		return err
	}
	if _, err := p.OnKeyPressed(s.handleKey); err != nil {
		return err
	}
	return nil
}

func (s *selector) draw(f *panel.Frame) {
	cols, rows := f.Size()
	s.gridCols = max(cols/cellWidth, 1)
	s.gridRows = max((rows-1)/cellHeight, 1)
	s.clamp()

	f.FillRectCell(0, 0, rows-1, cols-1, ' ', panel.ColorWhite, panel.ColorBlack)
	for gr := 0; gr < s.gridRows; gr++ {
		for gc := 0; gc < s.gridCols; gc++ {
			bg := panel.ColorBlue
			fg := panel.ColorWhite
			if gr == s.row && gc == s.col {
				bg = panel.ColorBrightYellow
				fg = panel.ColorBlack
			}
			top := gr * cellHeight
			left := gc * cellWidth
			f.FillRectCell(top, left, top+cellHeight-2, left+cellWidth-2, ' ', fg, bg)
			f.WriteTextColor(top+(cellHeight-1)/2, left+1, fmt.Sprintf("%d,%d", gr, gc), fg, bg)
		}
	}
	status := "arrows: move  enter: select  ctrl+q: quit"
	if s.lastSelected != "" {
		status = "selected " + s.lastSelected + "  |  " + status
	}
	f.WriteTextColor(rows-1, 0, status, panel.ColorBrightWhite, panel.ColorBlack)
}

func (s *selector) handleKey(f *panel.Frame, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		s.row--
	case tcell.KeyDown:
		s.row++
	case tcell.KeyLeft:
		s.col--
	case tcell.KeyRight:
		s.col++
	case tcell.KeyEnter:
		s.lastSelected = fmt.Sprintf("%d,%d", s.row, s.col)
	}
	s.clamp()
}

func (s *selector) clamp() {
	if s.gridRows > 0 && s.row >= s.gridRows {
		s.row = s.gridRows - 1
	}
	if s.gridCols > 0 && s.col >= s.gridCols {
		s.col = s.gridCols - 1
	}
	if s.row < 0 {
		s.row = 0
	}
	if s.col < 0 {
		s.col = 0
	}
}
