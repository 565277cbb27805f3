// Package textbox is a minimal line editor inside a bordered box,
// exercising text placement, cursor tracking and key dispatch.
package textbox

import (
	"github.com/gdamore/tcell/v2"

	"github.com/FrostbiteXSW/CUIPanel/panel"
)

type box struct {
	lines   []string
	current string
}

// Attach registers the text box on the panel and makes the cursor visible
// at the insertion point.
func Attach(p *panel.Panel) error {
	b := &box{}
	if _, err := p.OnBeforeUpdate(b.draw); err != nil {
		return err
	}
	if _, err := p.OnKeyPressed(b.handleKey); err != nil {
		return err
	}
	return p.SetCursorVisible(true)
}

func (b *box) draw(f *panel.Frame) {
	cols, rows := f.Size()
	f.FillRectCell(0, 0, rows-1, cols-1, ' ', panel.ColorWhite, panel.ColorBlack)

	// Border
	f.FillRectCell(0, 0, 0, cols-1, '─', panel.ColorBrightBlack, panel.ColorBlack)
	f.FillRectCell(rows-1, 0, rows-1, cols-1, '─', panel.ColorBrightBlack, panel.ColorBlack)
	f.FillRectCell(0, 0, rows-1, 0, '│', panel.ColorBrightBlack, panel.ColorBlack)
	f.FillRectCell(0, cols-1, rows-1, cols-1, '│', panel.ColorBrightBlack, panel.ColorBlack)
	f.WriteTextColor(0, 2, " type; enter for a new line ", panel.ColorBrightWhite, panel.ColorBlack)

	inner := rows - 2
	visible := b.lines
	if len(visible) > inner-1 {
		visible = visible[len(visible)-(inner-1):]
	}
	row := 1
	for _, line := range visible {
		f.WriteText(row, 2, line)
		row++
	}
	if row < rows-1 {
		f.WriteTextColor(row, 2, b.current, panel.ColorBrightGreen, panel.ColorBlack)
		f.SetCursorPosition(row, min(2+len(b.current), cols-1))
	}
}

func (b *box) handleKey(f *panel.Frame, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		b.lines = append(b.lines, b.current)
		b.current = ""
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(b.current) > 0 {
			b.current = b.current[:len(b.current)-1]
		}
	case tcell.KeyRune:
		b.current += string(ev.Rune())
	}
}
